package model

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/sjwhitworth/golearn/base"
	"github.com/sjwhitworth/golearn/ensemble"
	"github.com/sjwhitworth/golearn/filters"
	"github.com/sjwhitworth/golearn/meta"
	"github.com/sjwhitworth/golearn/trees"
)

// The golearn adapters below wrap the library's tree learners behind the
// harness Classifier interface. Fitting and prediction both run on the same
// attribute header, built once from the training call, so train and test
// instances share one class encoding.

// glHeader carries the feature names and class values an adapter was fitted
// with.
type glHeader struct {
	featureNames []string
	classValues  []int
}

func newHeader(nFeatures int, names []string, y []int) (*glHeader, error) {
	if len(y) == 0 {
		return nil, errors.New("model: empty training labels")
	}
	if names == nil {
		names = make([]string, nFeatures)
		for j := range names {
			names[j] = fmt.Sprintf("x%d", j)
		}
	}
	if len(names) != nFeatures {
		return nil, fmt.Errorf("model: %d feature names for %d features", len(names), nFeatures)
	}
	seen := make(map[int]bool)
	for _, c := range y {
		seen[c] = true
	}
	values := make([]int, 0, len(seen))
	for c := range seen {
		values = append(values, c)
	}
	sort.Ints(values)
	return &glHeader{featureNames: names, classValues: values}, nil
}

// instances converts a feature matrix (and optional labels) into golearn
// DenseInstances under the adapter's header. With nil labels every row gets
// the first class value; prediction ignores it.
func (h *glHeader) instances(X [][]float64, y []int) (*base.DenseInstances, error) {
	if len(X) == 0 {
		return nil, errors.New("model: empty feature matrix")
	}
	p := len(h.featureNames)
	for i := range X {
		if len(X[i]) != p {
			return nil, fmt.Errorf("model: row %d has %d features, want %d", i, len(X[i]), p)
		}
	}

	inst := base.NewDenseInstances()
	specs := make([]base.AttributeSpec, p)
	for j, name := range h.featureNames {
		specs[j] = inst.AddAttribute(base.NewFloatAttribute(name))
	}
	classAttr := base.NewCategoricalAttribute()
	classAttr.SetName("target")
	for _, c := range h.classValues {
		classAttr.GetSysValFromString(strconv.Itoa(c))
	}
	classSpec := inst.AddAttribute(classAttr)
	if err := inst.AddClassAttribute(classAttr); err != nil {
		return nil, fmt.Errorf("model: class attribute: %w", err)
	}
	if err := inst.Extend(len(X)); err != nil {
		return nil, fmt.Errorf("model: allocate instances: %w", err)
	}

	for i := range X {
		for j := range specs {
			inst.Set(specs[j], i, base.PackFloatToBytes(X[i][j]))
		}
		label := h.classValues[0]
		if y != nil {
			label = y[i]
		}
		inst.Set(classSpec, i, classAttr.GetSysValFromString(strconv.Itoa(label)))
	}
	return inst, nil
}

// labels converts a golearn prediction grid back into integer class labels.
func labels(pred base.FixedDataGrid, n int) ([]int, error) {
	out := make([]int, n)
	for i := 0; i < n; i++ {
		c, err := strconv.Atoi(base.GetClass(pred, i))
		if err != nil {
			return nil, fmt.Errorf("model: non-integer predicted class: %w", err)
		}
		out[i] = c
	}
	return out, nil
}

// discretize trains a ChiMerge filter over the float attributes. golearn's
// trees split on discrete attribute values, so every adapter bins its
// features through the same filter at fit time and reuses it at predict time.
func discretize(inst *base.DenseInstances) (*filters.ChiMergeFilter, error) {
	filter := filters.NewChiMergeFilter(inst, 0.999)
	for _, a := range base.NonClassFloatAttributes(inst) {
		if err := filter.AddAttribute(a); err != nil {
			return nil, fmt.Errorf("model: discretize: %w", err)
		}
	}
	if err := filter.Train(); err != nil {
		return nil, fmt.Errorf("model: discretize: %w", err)
	}
	return filter, nil
}

// DecisionTree is a single classification tree (golearn ID3 over ChiMerge
// discretized features).
type DecisionTree struct {
	// PruneSplit is the fraction of training data golearn holds out for
	// reduced-error pruning.
	PruneSplit float64
	// FeatureNames, when set, must match the fitted matrix width.
	FeatureNames []string

	header *glHeader
	filter *filters.ChiMergeFilter
	tree   *trees.ID3DecisionTree
}

// NewDecisionTree returns an unfitted tree with the given pruning fraction.
func NewDecisionTree(pruneSplit float64) *DecisionTree {
	return &DecisionTree{PruneSplit: pruneSplit}
}

// Fit trains the tree.
func (t *DecisionTree) Fit(X [][]float64, y []int) error {
	header, err := newHeader(width(X), t.FeatureNames, y)
	if err != nil {
		return err
	}
	inst, err := header.instances(X, y)
	if err != nil {
		return err
	}
	filter, err := discretize(inst)
	if err != nil {
		return err
	}

	tree := trees.NewID3DecisionTree(t.PruneSplit)
	if err := tree.Fit(base.NewLazilyFilteredInstances(inst, filter)); err != nil {
		return fmt.Errorf("model: fit tree: %w", err)
	}
	t.header, t.filter, t.tree = header, filter, tree
	return nil
}

// Predict classifies the rows of X.
func (t *DecisionTree) Predict(X [][]float64) ([]int, error) {
	if t.tree == nil {
		return nil, errors.New("model: decision tree not fitted")
	}
	inst, err := t.header.instances(X, nil)
	if err != nil {
		return nil, err
	}
	pred, err := t.tree.Predict(base.NewLazilyFilteredInstances(inst, t.filter))
	if err != nil {
		return nil, fmt.Errorf("model: predict tree: %w", err)
	}
	return labels(pred, len(X))
}

// BaggedTrees is a bootstrap aggregate of random trees (golearn meta
// bagging), the m = p case of a random forest.
type BaggedTrees struct {
	// Trees is the ensemble size.
	Trees int
	// Attributes is the per-tree attribute sample; 0 means two attributes,
	// golearn's RandomTree default.
	Attributes   int
	FeatureNames []string

	header *glHeader
	filter *filters.ChiMergeFilter
	bag    *meta.BaggedModel
}

// NewBaggedTrees returns an unfitted bagging ensemble.
func NewBaggedTrees(trees, attributes int) *BaggedTrees {
	return &BaggedTrees{Trees: trees, Attributes: attributes}
}

// Fit trains the ensemble.
func (b *BaggedTrees) Fit(X [][]float64, y []int) error {
	header, err := newHeader(width(X), b.FeatureNames, y)
	if err != nil {
		return err
	}
	inst, err := header.instances(X, y)
	if err != nil {
		return err
	}
	filter, err := discretize(inst)
	if err != nil {
		return err
	}
	attrs := b.Attributes
	if attrs <= 0 {
		attrs = 2
	}
	bag := new(meta.BaggedModel)
	for i := 0; i < b.Trees; i++ {
		bag.AddModel(trees.NewRandomTree(attrs))
	}
	bag.Fit(base.NewLazilyFilteredInstances(inst, filter))
	b.header, b.filter, b.bag = header, filter, bag
	return nil
}

// Predict classifies the rows of X by majority vote.
func (b *BaggedTrees) Predict(X [][]float64) ([]int, error) {
	if b.bag == nil {
		return nil, errors.New("model: bagged trees not fitted")
	}
	inst, err := b.header.instances(X, nil)
	if err != nil {
		return nil, err
	}
	pred, err := b.bag.Predict(base.NewLazilyFilteredInstances(inst, b.filter))
	if err != nil {
		return nil, fmt.Errorf("model: predict bagged trees: %w", err)
	}
	return labels(pred, len(X))
}

// RandomForest wraps golearn's random forest.
type RandomForest struct {
	// Trees is the forest size; Features the attribute sample per split.
	Trees        int
	Features     int
	FeatureNames []string

	header *glHeader
	filter *filters.ChiMergeFilter
	forest *ensemble.RandomForest
}

// NewRandomForest returns an unfitted forest.
func NewRandomForest(trees, features int) *RandomForest {
	return &RandomForest{Trees: trees, Features: features}
}

// Fit trains the forest.
func (f *RandomForest) Fit(X [][]float64, y []int) error {
	header, err := newHeader(width(X), f.FeatureNames, y)
	if err != nil {
		return err
	}
	inst, err := header.instances(X, y)
	if err != nil {
		return err
	}
	filter, err := discretize(inst)
	if err != nil {
		return err
	}
	forest := ensemble.NewRandomForest(f.Trees, f.Features)
	if err := forest.Fit(base.NewLazilyFilteredInstances(inst, filter)); err != nil {
		return fmt.Errorf("model: fit forest: %w", err)
	}
	f.header, f.filter, f.forest = header, filter, forest
	return nil
}

// Predict classifies the rows of X.
func (f *RandomForest) Predict(X [][]float64) ([]int, error) {
	if f.forest == nil {
		return nil, errors.New("model: random forest not fitted")
	}
	inst, err := f.header.instances(X, nil)
	if err != nil {
		return nil, err
	}
	pred, err := f.forest.Predict(base.NewLazilyFilteredInstances(inst, f.filter))
	if err != nil {
		return nil, fmt.Errorf("model: predict forest: %w", err)
	}
	return labels(pred, len(X))
}

func width(X [][]float64) int {
	if len(X) == 0 {
		return 0
	}
	return len(X[0])
}
