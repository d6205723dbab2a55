package scrub

import (
	"log"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/pkg/errors"

	"github.com/scrubml/scrub/analysis"
	"github.com/scrubml/scrub/cleaning"
)

// DropColumnsMissingThreshold removes columns whose fraction of missing
// values is greater than or equal to threshold. Example: threshold 0.5 drops
// columns where at least half the data is missing. A threshold of 0 matches
// every column and latches an error, since a dataset cannot be left without
// columns.
func (d *Dataset) DropColumnsMissingThreshold(threshold float64) *Dataset {
	if d.Err != nil {
		return d
	}
	if threshold < 0 || threshold > 1 {
		d.Err = errors.Errorf("threshold must be between 0 and 1, got %f", threshold)
		return d
	}

	var keep []string
	for _, name := range d.train.Names() {
		v, err := d.executor.Execute(d.train.Col(name), analysis.MissingFraction)
		if err != nil {
			d.Err = errors.Wrapf(err, "measuring column %s", name)
			return d
		}
		if v[0] < threshold {
			keep = append(keep, name)
		}
	}
	return d.selectColumns(keep)
}

// DropRowsMissingThreshold removes rows whose fraction of missing values is
// greater than or equal to threshold. Rows are dropped from each table
// independently.
func (d *Dataset) DropRowsMissingThreshold(threshold float64) *Dataset {
	if d.Err != nil {
		return d
	}
	if threshold < 0 || threshold > 1 {
		d.Err = errors.Errorf("threshold must be between 0 and 1, got %f", threshold)
		return d
	}
	return d.apply(func() (dataframe.DataFrame, *dataframe.DataFrame, error) {
		train, err := dropRowsMissing(d.train, threshold)
		if err != nil {
			return d.train, d.test, err
		}
		test := d.test
		if test != nil {
			dropped, err := dropRowsMissing(*test, threshold)
			if err != nil {
				return d.train, d.test, err
			}
			test = &dropped
		}
		return train, test, nil
	})
}

func dropRowsMissing(df dataframe.DataFrame, threshold float64) (dataframe.DataFrame, error) {
	masks := make([][]bool, df.Ncol())
	for i, name := range df.Names() {
		masks[i] = df.Col(name).IsNaN()
	}
	keep := make([]int, 0, df.Nrow())
	for r := 0; r < df.Nrow(); r++ {
		missing := 0
		for c := range masks {
			if masks[c][r] {
				missing++
			}
		}
		if float64(missing)/float64(df.Ncol()) < threshold {
			keep = append(keep, r)
		}
	}
	return subsetRows(df, keep)
}

// DropConstantColumns removes columns with zero or one unique observed value.
// Columns that cannot be measured are logged and excluded rather than
// aborting the operation.
func (d *Dataset) DropConstantColumns() *Dataset {
	if d.Err != nil {
		return d
	}
	var keep []string
	for _, name := range d.train.Names() {
		v, err := d.executor.Execute(d.train.Col(name), analysis.UniqueValues)
		if err != nil {
			log.Printf("column %s could not be processed: %v", name, err)
			continue
		}
		if n := int(v[0]); n != 0 && n != 1 {
			keep = append(keep, name)
		}
	}
	return d.selectColumns(keep)
}

// DropUniqueColumns removes columns where every row holds a distinct value.
func (d *Dataset) DropUniqueColumns() *Dataset {
	if d.Err != nil {
		return d
	}
	var keep []string
	for _, name := range d.train.Names() {
		v, err := d.executor.Execute(d.train.Col(name), analysis.UniqueValues)
		if err != nil {
			d.Err = errors.Wrapf(err, "measuring column %s", name)
			return d
		}
		if int(v[0]) != d.train.Nrow() {
			keep = append(keep, name)
		}
	}
	return d.selectColumns(keep)
}

// DropDuplicateRows removes rows that duplicate an earlier row over the
// selected columns, leaving the first occurrence. An empty selector compares
// whole rows.
func (d *Dataset) DropDuplicateRows(cols ...string) *Dataset {
	if d.Err != nil {
		return d
	}
	resolved, err := cleaning.ResolveColumns(d.train, cols, false)
	if err != nil {
		d.Err = err
		return d
	}
	return d.apply(func() (dataframe.DataFrame, *dataframe.DataFrame, error) {
		train, err := dropDuplicateRows(d.train, resolved)
		if err != nil {
			return d.train, d.test, err
		}
		test := d.test
		if test != nil {
			deduplicated, err := dropDuplicateRows(*test, resolved)
			if err != nil {
				return d.train, d.test, err
			}
			test = &deduplicated
		}
		return train, test, nil
	})
}

func dropDuplicateRows(df dataframe.DataFrame, cols []string) (dataframe.DataFrame, error) {
	sub := df.Select(cols)
	if err := sub.Error(); err != nil {
		return df, errors.Wrap(err, "selecting columns")
	}
	records := sub.Records()[1:]
	seen := make(map[string]struct{}, len(records))
	keep := make([]int, 0, len(records))
	for r, record := range records {
		key := strings.Join(record, "\x1f")
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keep = append(keep, r)
	}
	return subsetRows(df, keep)
}

// DropDuplicateColumns removes columns that duplicate an earlier column
// value-for-value, leaving the first occurrence.
func (d *Dataset) DropDuplicateColumns() *Dataset {
	if d.Err != nil {
		return d
	}
	seen := map[string]struct{}{}
	var keep []string
	for _, name := range d.train.Names() {
		key := strings.Join(d.train.Col(name).Records(), "\x1f")
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keep = append(keep, name)
	}
	return d.selectColumns(keep)
}

// ReplaceMissingRemoveRow removes rows missing a value in any of the selected
// columns.
func (d *Dataset) ReplaceMissingRemoveRow(cols ...string) *Dataset {
	if d.Err != nil {
		return d
	}
	resolved, err := cleaning.ResolveColumns(d.train, cols, false)
	if err != nil {
		d.Err = err
		return d
	}
	return d.apply(func() (dataframe.DataFrame, *dataframe.DataFrame, error) {
		train, err := dropRowsWithMissing(d.train, resolved)
		if err != nil {
			return d.train, d.test, err
		}
		test := d.test
		if test != nil {
			dropped, err := dropRowsWithMissing(*test, resolved)
			if err != nil {
				return d.train, d.test, err
			}
			test = &dropped
		}
		return train, test, nil
	})
}

func dropRowsWithMissing(df dataframe.DataFrame, cols []string) (dataframe.DataFrame, error) {
	masks := make([][]bool, len(cols))
	for i, name := range cols {
		masks[i] = df.Col(name).IsNaN()
	}
	keep := make([]int, 0, df.Nrow())
	for r := 0; r < df.Nrow(); r++ {
		missing := false
		for c := range masks {
			if masks[c][r] {
				missing = true
				break
			}
		}
		if !missing {
			keep = append(keep, r)
		}
	}
	return subsetRows(df, keep)
}

// ReplaceMissingMean replaces missing values in numeric columns with the mean
// of the training column. An empty selector targets every numeric column.
func (d *Dataset) ReplaceMissingMean(cols ...string) *Dataset {
	return d.impute(cleaning.StrategyMean, cols)
}

// ReplaceMissingMedian replaces missing values in numeric columns with the
// median of the training column.
func (d *Dataset) ReplaceMissingMedian(cols ...string) *Dataset {
	return d.impute(cleaning.StrategyMedian, cols)
}

// ReplaceMissingMostCommon replaces missing values in numeric columns with
// the most common value of the training column.
func (d *Dataset) ReplaceMissingMostCommon(cols ...string) *Dataset {
	return d.impute(cleaning.StrategyMostCommon, cols)
}

func (d *Dataset) impute(strategy cleaning.Strategy, cols []string) *Dataset {
	return d.apply(func() (dataframe.DataFrame, *dataframe.DataFrame, error) {
		return cleaning.ReplaceMissingMeanMedianMode(d.train, d.test, strategy, cols...)
	})
}

// ReplaceMissingConstant replaces missing values in the selected columns with
// a constant. An empty selector targets every column.
func (d *Dataset) ReplaceMissingConstant(constant interface{}, cols ...string) *Dataset {
	return d.apply(func() (dataframe.DataFrame, *dataframe.DataFrame, error) {
		return cleaning.ReplaceMissingConstant(d.train, d.test, constant, cols...)
	})
}

// ReplaceMissingConstantMap replaces missing values using a per-column
// constant mapping.
func (d *Dataset) ReplaceMissingConstantMap(colToConstant map[string]interface{}) *Dataset {
	return d.apply(func() (dataframe.DataFrame, *dataframe.DataFrame, error) {
		return cleaning.ReplaceMissingNewCategory(d.train, d.test, colToConstant)
	})
}

// ReplaceMissingNewCategory replaces missing values in the selected columns
// with their own category, automatically chosen from the defaults: -1, -999,
// -9999 for numeric columns and "Other", "Unknown", "MissingDataCategory" for
// string columns.
func (d *Dataset) ReplaceMissingNewCategory(cols ...string) *Dataset {
	if d.Err != nil {
		return d
	}
	resolved, err := cleaning.ResolveColumns(d.train, cols, false)
	if err != nil {
		d.Err = err
		return d
	}
	return d.apply(func() (dataframe.DataFrame, *dataframe.DataFrame, error) {
		return cleaning.ReplaceMissingNewCategory(d.train, d.test, cleaning.NewCategoryMap(resolved, nil))
	})
}

// ReplaceMissingCategory replaces missing values in the selected columns with
// the given category.
func (d *Dataset) ReplaceMissingCategory(category interface{}, cols ...string) *Dataset {
	return d.ReplaceMissingConstant(category, cols...)
}

// ReplaceMissingCategoryMap replaces missing values using a per-column
// category mapping; nil entries defer to the defaults.
func (d *Dataset) ReplaceMissingCategoryMap(colToCategory map[string]interface{}) *Dataset {
	return d.apply(func() (dataframe.DataFrame, *dataframe.DataFrame, error) {
		return cleaning.ReplaceMissingNewCategory(d.train, d.test, colToCategory)
	})
}

// ReplaceMissingRandomDiscrete replaces missing values with values sampled
// from the empirical distribution of the observed training column.
func (d *Dataset) ReplaceMissingRandomDiscrete(cols ...string) *Dataset {
	return d.apply(func() (dataframe.DataFrame, *dataframe.DataFrame, error) {
		return cleaning.ReplaceMissingRandomDiscrete(d.train, d.test, d.src, cols...)
	})
}

// ReplaceMissingKNN replaces missing numeric values with data from similar
// rows under a missing-aware Euclidean distance, using k neighbours.
func (d *Dataset) ReplaceMissingKNN(k int) *Dataset {
	return d.apply(func() (dataframe.DataFrame, *dataframe.DataFrame, error) {
		return cleaning.ReplaceMissingKNN(d.train, d.test, k)
	})
}

// ReplaceMissingInterpolate fills gaps in numeric columns by piecewise-linear
// interpolation over the row index. Leading gaps are left missing.
func (d *Dataset) ReplaceMissingInterpolate(cols ...string) *Dataset {
	return d.apply(func() (dataframe.DataFrame, *dataframe.DataFrame, error) {
		return cleaning.ReplaceMissingInterpolate(d.train, d.test, cols...)
	})
}

// ReplaceMissingForwardFill replaces missing values with the last known data
// point in the column.
func (d *Dataset) ReplaceMissingForwardFill(cols ...string) *Dataset {
	return d.apply(func() (dataframe.DataFrame, *dataframe.DataFrame, error) {
		return cleaning.ReplaceMissingFill(d.train, d.test, cleaning.ForwardFill, cols...)
	})
}

// ReplaceMissingBackFill replaces missing values with the next known data
// point in the column.
func (d *Dataset) ReplaceMissingBackFill(cols ...string) *Dataset {
	return d.apply(func() (dataframe.DataFrame, *dataframe.DataFrame, error) {
		return cleaning.ReplaceMissingFill(d.train, d.test, cleaning.BackFill, cols...)
	})
}

// ReplaceMissingIndicator adds a <column>_missing column per target column
// describing whether each value is missing, coded 1 for missing and 0
// otherwise. The full-control variant lives in the cleaning package.
func (d *Dataset) ReplaceMissingIndicator(cols ...string) *Dataset {
	return d.apply(func() (dataframe.DataFrame, *dataframe.DataFrame, error) {
		return cleaning.ReplaceMissingIndicator(d.train, d.test, 1, 0, true, cols...)
	})
}
