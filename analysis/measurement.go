// Package analysis provides statistical measurements over dataset columns and
// executors that memoise their computation.
package analysis

import (
	"math"
	"sort"

	"github.com/go-gota/gota/series"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

// Measurement is a representation for how a column statistic fits into a
// report.
type Measurement interface {
	// Name is the name of the measurement in the output. It should not contain any spaces.
	Name() string
	// Execute computes the implemented measurement for a column.
	Execute(s series.Series) (float64, error)
}

type missingFraction struct{}
type uniqueValues struct{}
type mean struct{}
type median struct{}
type mode struct{}
type standardDeviation struct{}
type skewness struct{}

var (
	// MissingFraction measures the fraction of values missing from a column.
	MissingFraction = missingFraction{}
	// UniqueValues counts the distinct observed values of a column.
	UniqueValues = uniqueValues{}
	// Mean measures the average observed value of a numeric column.
	Mean = mean{}
	// Median measures the middle observed value of a numeric column.
	Median = median{}
	// Mode measures the most common observed value of a numeric column.
	Mode = mode{}
	// StandardDeviation measures the spread of a numeric column.
	StandardDeviation = standardDeviation{}
	// Skewness measures the asymmetry of a numeric column.
	Skewness = skewness{}
)

func (missingFraction) Name() string {
	return "MissingFraction"
}

func (missingFraction) Execute(s series.Series) (float64, error) {
	if s.Len() == 0 {
		return 0, nil
	}
	missing := 0
	for _, m := range s.IsNaN() {
		if m {
			missing++
		}
	}
	return float64(missing) / float64(s.Len()), nil
}

func (uniqueValues) Name() string {
	return "UniqueValues"
}

func (uniqueValues) Execute(s series.Series) (float64, error) {
	mask := s.IsNaN()
	seen := map[string]bool{}
	for i, r := range s.Records() {
		if !mask[i] {
			seen[r] = true
		}
	}
	return float64(len(seen)), nil
}

func (mean) Name() string {
	return "Mean"
}

func (mean) Execute(s series.Series) (float64, error) {
	observed, err := observed(s)
	if err != nil {
		return 0, err
	}
	return stat.Mean(observed, nil), nil
}

func (median) Name() string {
	return "Median"
}

func (median) Execute(s series.Series) (float64, error) {
	observed, err := observed(s)
	if err != nil {
		return 0, err
	}
	sort.Float64s(observed)
	return stat.Quantile(0.5, stat.Empirical, observed, nil), nil
}

func (mode) Name() string {
	return "Mode"
}

func (mode) Execute(s series.Series) (float64, error) {
	observed, err := observed(s)
	if err != nil {
		return 0, err
	}
	counts := make(map[float64]int, len(observed))
	for _, v := range observed {
		counts[v]++
	}
	best := observed[0]
	for v, n := range counts {
		if n > counts[best] || (n == counts[best] && v < best) {
			best = v
		}
	}
	return best, nil
}

func (standardDeviation) Name() string {
	return "StandardDeviation"
}

func (standardDeviation) Execute(s series.Series) (float64, error) {
	observed, err := observed(s)
	if err != nil {
		return 0, err
	}
	if len(observed) < 2 {
		return 0, nil
	}
	return stat.StdDev(observed, nil), nil
}

func (skewness) Name() string {
	return "Skewness"
}

func (skewness) Execute(s series.Series) (float64, error) {
	observed, err := observed(s)
	if err != nil {
		return 0, err
	}
	if len(observed) < 3 {
		return 0, nil
	}
	return stat.Skew(observed, nil), nil
}

// observed extracts the non-missing numeric values of a column.
func observed(s series.Series) ([]float64, error) {
	var values []float64
	for _, v := range s.Float() {
		if !math.IsNaN(v) {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return nil, errors.Errorf("column %s has no observed numeric values", s.Name)
	}
	return values, nil
}
