package dataset

import (
	"fmt"
	"math"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// LoadOption adjusts how the raw survey file is interpreted.
type LoadOption func(*loadConfig)

type loadConfig struct {
	missing map[string][]float64
	unknown map[string]float64
}

// WithMissingCodes marks per-column sentinel codes (refused, blank, bad data)
// that are recoded to missing at load time.
func WithMissingCodes(codes map[string][]float64) LoadOption {
	return func(c *loadConfig) { c.missing = codes }
}

// WithUnknownCategory keeps missingness in the named columns as an explicit
// category instead: any missing value is rewritten to the given code.
func WithUnknownCategory(codes map[string]float64) LoadOption {
	return func(c *loadConfig) { c.unknown = codes }
}

// Load reads the survey CSV once at process start and materializes it as an
// immutable Table. Column identifiers come from the header row and follow the
// survey codebook. Non-numeric cells become missing.
func Load(path string, opts ...LoadOption) (*Table, error) {
	var cfg loadConfig
	for _, o := range opts {
		o(&cfg)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %s: %w", path, err)
	}
	defer f.Close()

	df := dataframe.ReadCSV(f,
		dataframe.HasHeader(true),
		dataframe.DefaultType(series.Float),
		dataframe.DetectTypes(false),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("dataset: read %s: %w", path, df.Err)
	}
	if df.Nrow() == 0 {
		return nil, fmt.Errorf("dataset: %s contains no records", path)
	}

	names := df.Names()
	rows := make([][]float64, df.Nrow())
	for i := range rows {
		rows[i] = make([]float64, len(names))
	}
	for j, name := range names {
		col := df.Col(name).Float()
		for i, v := range col {
			rows[i][j] = v
		}
	}

	tbl, err := New(names, rows)
	if err != nil {
		return nil, err
	}
	return recode(tbl, cfg)
}

func recode(tbl *Table, cfg loadConfig) (*Table, error) {
	var err error
	for name, codes := range cfg.missing {
		for _, code := range codes {
			tbl, err = tbl.Replace(name, code, math.NaN())
			if err != nil {
				return nil, fmt.Errorf("dataset: recode missing: %w", err)
			}
		}
	}
	for name, code := range cfg.unknown {
		tbl, err = tbl.Replace(name, math.NaN(), code)
		if err != nil {
			return nil, fmt.Errorf("dataset: recode unknown: %w", err)
		}
	}
	return tbl, nil
}
