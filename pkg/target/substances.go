package target

import "sort"

// Substance maps one substance onto its codebook columns.
type Substance struct {
	Name string

	// RecencyColumn codes how recently the substance was last used.
	RecencyColumn string
	// BucketColumn is the ordinal days-of-use frequency bucket.
	BucketColumn string
	// CountColumn is the number of days used in the reference period.
	CountColumn string

	// LeakColumns are additional columns that encode (nearly) the same
	// information as a derived target, e.g. ever-used flags and imputed
	// yearly frequencies. They are excluded from every predictor set for
	// this substance.
	LeakColumns []string
}

// targetColumns returns every column that must be removed from the predictor
// set: all three target sources plus the declared leak columns. Deriving any
// one target drops all of them, since each is a recoding of the others.
func (s Substance) targetColumns() []string {
	cols := []string{s.RecencyColumn, s.BucketColumn, s.CountColumn}
	return append(cols, s.LeakColumns...)
}

var registry = map[string]Substance{
	"marijuana": {
		Name:          "marijuana",
		RecencyColumn: "mjrec",
		BucketColumn:  "mrjmdays",
		CountColumn:   "mjday30a",
		LeakColumns:   []string{"mrjflag", "mrjydays", "irmjfy", "irmjfm"},
	},
	"alcohol": {
		Name:          "alcohol",
		RecencyColumn: "alcrec",
		BucketColumn:  "almdays",
		CountColumn:   "alday30a",
		LeakColumns:   []string{"alcflag", "alcydays", "iralcfy", "iralcfm"},
	},
	"tobacco": {
		Name:          "tobacco",
		RecencyColumn: "cigrec",
		BucketColumn:  "cigmdays",
		CountColumn:   "cig30use",
		LeakColumns:   []string{"tobflag", "cigflag", "ircigfm"},
	},
}

// Lookup resolves a substance identifier against the codebook registry.
func Lookup(name string) (Substance, error) {
	sub, ok := registry[name]
	if !ok {
		return Substance{}, &ConfigurationError{Substance: name}
	}
	return sub, nil
}

// Substances lists the registered substance identifiers in sorted order.
func Substances() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
