// Package cleaning provides stateless missing-value transformations over gota
// dataframes. Each transformation operates on a training table and an optional
// paired test table so that split datasets stay aligned.
package cleaning

import (
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/pkg/errors"
)

// FillMethod selects the direction observed values are carried when filling.
type FillMethod string

const (
	// ForwardFill replaces missing values with the last known data point.
	ForwardFill FillMethod = "ffill"
	// BackFill replaces missing values with the next known data point.
	BackFill FillMethod = "bfill"
)

// IsNumeric reports whether a series type holds numeric values.
func IsNumeric(t series.Type) bool {
	return t == series.Int || t == series.Float
}

// ResolveColumns resolves a column selector against a table. An empty selector
// resolves to every column of the applicable kind. Explicit selectors are
// validated against the table schema.
func ResolveColumns(df dataframe.DataFrame, cols []string, numericOnly bool) ([]string, error) {
	names := df.Names()
	types := df.Types()

	if len(cols) == 0 {
		var resolved []string
		for i, name := range names {
			if !numericOnly || IsNumeric(types[i]) {
				resolved = append(resolved, name)
			}
		}
		return resolved, nil
	}

	index := make(map[string]series.Type, len(names))
	for i, name := range names {
		index[name] = types[i]
	}
	for _, col := range cols {
		t, ok := index[col]
		if !ok {
			return nil, errors.Errorf("column %s does not exist", col)
		}
		if numericOnly && !IsNumeric(t) {
			return nil, errors.Errorf("column %s is not numeric", col)
		}
	}
	return cols, nil
}

// MissingIndices returns the row indices of missing values in s.
func MissingIndices(s series.Series) []int {
	var idx []int
	for i, missing := range s.IsNaN() {
		if missing {
			idx = append(idx, i)
		}
	}
	return idx
}

// FillSeries returns a copy of s with missing values replaced by value. The
// column is rebuilt with a wider type when the existing one cannot store the
// replacement; a string fill of a numeric column produces a string column.
func FillSeries(s series.Series, value interface{}) (series.Series, error) {
	idx := MissingIndices(s)
	if len(idx) == 0 {
		return s.Copy(), nil
	}

	t := fillType(s.Type(), value)
	if t == s.Type() {
		repl := make([]string, len(idx))
		for i := range repl {
			repl[i] = formatValue(value)
		}
		out := s.Copy()
		out = out.Set(idx, series.New(repl, t, s.Name))
		if out.Err != nil {
			return out, errors.Wrapf(out.Err, "filling column %s", s.Name)
		}
		return out, nil
	}

	recs := s.Records()
	for _, i := range idx {
		recs[i] = formatValue(value)
	}
	out := series.New(recs, t, s.Name)
	if out.Err != nil {
		return out, errors.Wrapf(out.Err, "rebuilding column %s", s.Name)
	}
	return out, nil
}

// fillType computes the narrowest series type able to hold both the existing
// column values and the replacement value.
func fillType(t series.Type, value interface{}) series.Type {
	switch value.(type) {
	case int:
		if t == series.Int || t == series.Float {
			return t
		}
	case float64:
		if t == series.Float {
			return t
		}
		if t == series.Int {
			return series.Float
		}
	case string:
		return series.String
	case bool:
		if t == series.Bool {
			return t
		}
	}
	return series.String
}

func formatValue(value interface{}) string {
	switch v := value.(type) {
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case string:
		return v
	}
	return ""
}

// ReplaceMissingFill carries observed values into missing positions in the
// chosen direction. Values at the boundary with nothing to carry remain
// missing.
func ReplaceMissingFill(train dataframe.DataFrame, test *dataframe.DataFrame, method FillMethod, cols ...string) (dataframe.DataFrame, *dataframe.DataFrame, error) {
	resolved, err := ResolveColumns(train, cols, false)
	if err != nil {
		return train, test, err
	}

	train, err = fillTable(train, resolved, method)
	if err != nil {
		return train, test, err
	}
	if test != nil {
		filled, err := fillTable(*test, resolved, method)
		if err != nil {
			return train, test, err
		}
		test = &filled
	}
	return train, test, nil
}

func fillTable(df dataframe.DataFrame, cols []string, method FillMethod) (dataframe.DataFrame, error) {
	for _, name := range cols {
		s := df.Col(name)
		if s.Err != nil {
			return df, errors.Wrapf(s.Err, "filling column %s", name)
		}
		recs := s.Records()
		mask := s.IsNaN()
		switch method {
		case ForwardFill:
			last := -1
			for i := range recs {
				if !mask[i] {
					last = i
					continue
				}
				if last >= 0 {
					recs[i] = recs[last]
				}
			}
		case BackFill:
			next := -1
			for i := len(recs) - 1; i >= 0; i-- {
				if !mask[i] {
					next = i
					continue
				}
				if next >= 0 {
					recs[i] = recs[next]
				}
			}
		default:
			return df, errors.Errorf("unknown fill method %s", method)
		}
		df = df.Mutate(series.New(recs, s.Type(), name))
		if df.Err != nil {
			return df, errors.Wrapf(df.Err, "filling column %s", name)
		}
	}
	return df, nil
}

// ReplaceMissingIndicator appends a <column>_missing indicator column per
// target column, coding the row-wise null mask with the supplied indicator
// values. When keepCol is false the source column is removed afterwards.
func ReplaceMissingIndicator(train dataframe.DataFrame, test *dataframe.DataFrame, missing, valid interface{}, keepCol bool, cols ...string) (dataframe.DataFrame, *dataframe.DataFrame, error) {
	resolved, err := ResolveColumns(train, cols, false)
	if err != nil {
		return train, test, err
	}

	train, err = indicateTable(train, resolved, missing, valid, keepCol)
	if err != nil {
		return train, test, err
	}
	if test != nil {
		indicated, err := indicateTable(*test, resolved, missing, valid, keepCol)
		if err != nil {
			return train, test, err
		}
		test = &indicated
	}
	return train, test, nil
}

func indicateTable(df dataframe.DataFrame, cols []string, missing, valid interface{}, keepCol bool) (dataframe.DataFrame, error) {
	for _, name := range cols {
		s := df.Col(name)
		if s.Err != nil {
			return df, errors.Wrapf(s.Err, "indicating column %s", name)
		}
		df = df.Mutate(indicatorSeries(s.IsNaN(), missing, valid, name+"_missing"))
		if df.Err != nil {
			return df, errors.Wrapf(df.Err, "indicating column %s", name)
		}
		if !keepCol {
			df = df.Drop(name)
			if df.Err != nil {
				return df, errors.Wrapf(df.Err, "dropping column %s", name)
			}
		}
	}
	return df, nil
}

func indicatorSeries(mask []bool, missing, valid interface{}, name string) series.Series {
	t := series.String
	if _, ok := missing.(int); ok {
		if _, ok := valid.(int); ok {
			t = series.Int
		}
	}
	values := make([]string, len(mask))
	for i, m := range mask {
		if m {
			values[i] = formatValue(missing)
		} else {
			values[i] = formatValue(valid)
		}
	}
	return series.New(values, t, name)
}
