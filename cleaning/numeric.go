package cleaning

import (
	"log"
	"math"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Strategy names the summary statistic used to impute numeric columns.
type Strategy string

const (
	// StrategyMean imputes with the average value of the column.
	StrategyMean Strategy = "mean"
	// StrategyMedian imputes with the middle value of the column.
	StrategyMedian Strategy = "median"
	// StrategyMostCommon imputes with the most common value of the column.
	StrategyMostCommon Strategy = "most_frequent"
)

// ReplaceMissingMeanMedianMode imputes missing numeric values with a summary
// statistic computed over the observed values of the training column. Test
// columns are imputed with the training statistic so both tables see the same
// replacement.
func ReplaceMissingMeanMedianMode(train dataframe.DataFrame, test *dataframe.DataFrame, strategy Strategy, cols ...string) (dataframe.DataFrame, *dataframe.DataFrame, error) {
	resolved, err := ResolveColumns(train, cols, true)
	if err != nil {
		return train, test, err
	}

	for _, name := range resolved {
		v, err := columnStatistic(train.Col(name), strategy)
		if err != nil {
			return train, test, err
		}
		value := interface{}(v)
		if v == math.Trunc(v) && train.Col(name).Type() == series.Int {
			value = int(v)
		}

		train, err = fillColumn(train, name, value)
		if err != nil {
			return train, test, err
		}
		if test != nil {
			filled, err := fillColumn(*test, name, value)
			if err != nil {
				return train, test, err
			}
			test = &filled
		}
	}
	return train, test, nil
}

func fillColumn(df dataframe.DataFrame, name string, value interface{}) (dataframe.DataFrame, error) {
	s := df.Col(name)
	if s.Err != nil {
		return df, errors.Wrapf(s.Err, "imputing column %s", name)
	}
	filled, err := FillSeries(s, value)
	if err != nil {
		return df, err
	}
	df = df.Mutate(filled)
	if df.Err != nil {
		return df, errors.Wrapf(df.Err, "imputing column %s", name)
	}
	return df, nil
}

// columnStatistic computes the imputation statistic over the observed values
// of a column.
func columnStatistic(s series.Series, strategy Strategy) (float64, error) {
	observed := observedValues(s)
	if len(observed) == 0 {
		return 0, errors.Errorf("column %s has no observed values", s.Name)
	}
	switch strategy {
	case StrategyMean:
		return stat.Mean(observed, nil), nil
	case StrategyMedian:
		sort.Float64s(observed)
		return stat.Quantile(0.5, stat.Empirical, observed, nil), nil
	case StrategyMostCommon:
		return mode(observed), nil
	}
	return 0, errors.Errorf("unknown imputation strategy %s", strategy)
}

func observedValues(s series.Series) []float64 {
	var observed []float64
	for _, v := range s.Float() {
		if !math.IsNaN(v) {
			observed = append(observed, v)
		}
	}
	return observed
}

// mode returns the most common value, preferring the smallest on ties.
func mode(values []float64) float64 {
	counts := make(map[float64]int, len(values))
	for _, v := range values {
		counts[v]++
	}
	best := values[0]
	for v, n := range counts {
		if n > counts[best] || (n == counts[best] && v < best) {
			best = v
		}
	}
	return best
}

// ReplaceMissingRandomDiscrete replaces missing values with values sampled
// from the empirical distribution of the observed training column. Missing
// test values are sampled from the training distribution too.
func ReplaceMissingRandomDiscrete(train dataframe.DataFrame, test *dataframe.DataFrame, src rand.Source, cols ...string) (dataframe.DataFrame, *dataframe.DataFrame, error) {
	resolved, err := ResolveColumns(train, cols, false)
	if err != nil {
		return train, test, err
	}

	for _, name := range resolved {
		s := train.Col(name)
		if s.Err != nil {
			return train, test, errors.Wrapf(s.Err, "imputing column %s", name)
		}
		values, weights := valueCounts(s)
		if len(values) == 0 {
			return train, test, errors.Errorf("column %s has no observed values", name)
		}
		dist := distuv.NewCategorical(weights, src)

		train, err = sampleColumn(train, name, values, dist)
		if err != nil {
			return train, test, err
		}
		if test != nil {
			sampled, err := sampleColumn(*test, name, values, dist)
			if err != nil {
				return train, test, err
			}
			test = &sampled
		}
	}
	return train, test, nil
}

// valueCounts tallies the observed values of a column into a categorical
// weight vector.
func valueCounts(s series.Series) ([]string, []float64) {
	recs := s.Records()
	mask := s.IsNaN()
	counts := map[string]float64{}
	var values []string
	for i, r := range recs {
		if mask[i] {
			continue
		}
		if _, ok := counts[r]; !ok {
			values = append(values, r)
		}
		counts[r]++
	}
	weights := make([]float64, len(values))
	for i, v := range values {
		weights[i] = counts[v]
	}
	return values, weights
}

func sampleColumn(df dataframe.DataFrame, name string, values []string, dist distuv.Categorical) (dataframe.DataFrame, error) {
	s := df.Col(name)
	if s.Err != nil {
		return df, errors.Wrapf(s.Err, "imputing column %s", name)
	}
	idx := MissingIndices(s)
	if len(idx) == 0 {
		return df, nil
	}
	repl := make([]string, len(idx))
	for i := range repl {
		repl[i] = values[int(dist.Rand())]
	}
	out := s.Copy()
	out = out.Set(idx, series.New(repl, s.Type(), name))
	if out.Err != nil {
		return df, errors.Wrapf(out.Err, "imputing column %s", name)
	}
	df = df.Mutate(out)
	if df.Err != nil {
		return df, errors.Wrapf(df.Err, "imputing column %s", name)
	}
	return df, nil
}

// ReplaceMissingKNN imputes missing numeric values with the mean of the k
// nearest rows under a missing-aware Euclidean distance. The test table is
// imputed against its own rows.
func ReplaceMissingKNN(train dataframe.DataFrame, test *dataframe.DataFrame, k int) (dataframe.DataFrame, *dataframe.DataFrame, error) {
	if k <= 0 {
		return train, test, errors.Errorf("k must be positive, got %d", k)
	}

	train, err := knnTable(train, k)
	if err != nil {
		return train, test, err
	}
	if test != nil {
		log.Println("imputing test data against its own rows; results may differ if it is not drawn from the training distribution")
		imputed, err := knnTable(*test, k)
		if err != nil {
			return train, test, err
		}
		test = &imputed
	}
	return train, test, nil
}

func knnTable(df dataframe.DataFrame, k int) (dataframe.DataFrame, error) {
	cols, err := ResolveColumns(df, nil, true)
	if err != nil || len(cols) == 0 {
		return df, err
	}

	rows := df.Nrow()
	matrix := make([][]float64, rows)
	for i := range matrix {
		matrix[i] = make([]float64, len(cols))
	}
	for c, name := range cols {
		for i, v := range df.Col(name).Float() {
			matrix[i][c] = v
		}
	}

	// Imputed values are written to a copy so neighbours are always found
	// against the original data.
	for c, name := range cols {
		column := make([]float64, rows)
		changed := false
		for i := range matrix {
			column[i] = matrix[i][c]
			if !math.IsNaN(column[i]) {
				continue
			}
			v, err := knnValue(matrix, i, c, k)
			if err != nil {
				return df, errors.Wrapf(err, "imputing column %s", name)
			}
			column[i] = v
			changed = true
		}
		if !changed {
			continue
		}
		df = df.Mutate(series.New(column, series.Float, name))
		if df.Err != nil {
			return df, errors.Wrapf(df.Err, "imputing column %s", name)
		}
	}
	return df, nil
}

// knnValue computes the replacement for one missing cell from the k nearest
// rows with an observed value in the same column. Rows sharing no observed
// dimensions are skipped; when no neighbour qualifies the column mean is used.
func knnValue(matrix [][]float64, row, col, k int) (float64, error) {
	type neighbour struct {
		dist  float64
		value float64
	}
	var neighbours []neighbour
	var observed []float64
	for j := range matrix {
		if j == row || math.IsNaN(matrix[j][col]) {
			continue
		}
		observed = append(observed, matrix[j][col])
		if d := nanEuclidean(matrix[row], matrix[j], col); !math.IsNaN(d) {
			neighbours = append(neighbours, neighbour{dist: d, value: matrix[j][col]})
		}
	}
	if len(observed) == 0 {
		return 0, errors.New("no observed values")
	}
	if len(neighbours) == 0 {
		return stat.Mean(observed, nil), nil
	}

	sort.Slice(neighbours, func(i, j int) bool { return neighbours[i].dist < neighbours[j].dist })
	if len(neighbours) > k {
		neighbours = neighbours[:k]
	}
	values := make([]float64, len(neighbours))
	for i, n := range neighbours {
		values[i] = n.value
	}
	return stat.Mean(values, nil), nil
}

// nanEuclidean computes the distance between two rows over the dimensions
// observed in both, excluding the target column and scaling up for the
// dimensions skipped. NaN is returned when no dimension is shared.
func nanEuclidean(a, b []float64, col int) float64 {
	n := len(a) - 1
	if n == 0 {
		// Single-column tables compare on position alone.
		return 0
	}
	shared := 0
	sum := 0.0
	for i := range a {
		if i == col || math.IsNaN(a[i]) || math.IsNaN(b[i]) {
			continue
		}
		d := a[i] - b[i]
		sum += d * d
		shared++
	}
	if shared == 0 {
		return math.NaN()
	}
	return math.Sqrt(sum * float64(n) / float64(shared))
}

// ReplaceMissingInterpolate fills gaps in numeric columns by piecewise-linear
// interpolation over the row index. Trailing gaps take the last observed
// value; leading gaps are left missing since there is nothing to anchor the
// left end of a segment.
func ReplaceMissingInterpolate(train dataframe.DataFrame, test *dataframe.DataFrame, cols ...string) (dataframe.DataFrame, *dataframe.DataFrame, error) {
	resolved, err := ResolveColumns(train, cols, true)
	if err != nil {
		return train, test, err
	}

	train, err = interpolateTable(train, resolved)
	if err != nil {
		return train, test, err
	}
	if test != nil {
		filled, err := interpolateTable(*test, resolved)
		if err != nil {
			return train, test, err
		}
		test = &filled
	}
	return train, test, nil
}

func interpolateTable(df dataframe.DataFrame, cols []string) (dataframe.DataFrame, error) {
	for _, name := range cols {
		s := df.Col(name)
		if s.Err != nil {
			return df, errors.Wrapf(s.Err, "interpolating column %s", name)
		}
		values := s.Float()

		var xs, ys []float64
		for i, v := range values {
			if !math.IsNaN(v) {
				xs = append(xs, float64(i))
				ys = append(ys, v)
			}
		}
		if len(xs) == 0 {
			return df, errors.Errorf("column %s has no observed values", name)
		}
		if len(MissingIndices(s)) == 0 {
			continue
		}

		first, last := int(xs[0]), int(xs[len(xs)-1])
		if len(xs) == 1 {
			for i := range values {
				if i > first && math.IsNaN(values[i]) {
					values[i] = ys[0]
				}
			}
		} else {
			var pl interp.PiecewiseLinear
			if err := pl.Fit(xs, ys); err != nil {
				return df, errors.Wrapf(err, "interpolating column %s", name)
			}
			for i := range values {
				if !math.IsNaN(values[i]) {
					continue
				}
				if i > last {
					values[i] = ys[len(ys)-1]
				} else if i > first {
					values[i] = pl.Predict(float64(i))
				}
			}
		}

		df = df.Mutate(series.New(values, series.Float, name))
		if df.Err != nil {
			return df, errors.Wrapf(df.Err, "interpolating column %s", name)
		}
	}
	return df, nil
}
