package pipeline

import (
	"github.com/scrubml/scrub"
)

// DropColumnsMissingThreshold returns a step dropping columns with at least
// the threshold fraction of missing values.
func DropColumnsMissingThreshold(threshold float64) Step {
	return Step{
		Name: "drop_columns_missing_threshold",
		Apply: func(ds *scrub.Dataset) *scrub.Dataset {
			return ds.DropColumnsMissingThreshold(threshold)
		},
	}
}

// DropRowsMissingThreshold returns a step dropping rows with at least the
// threshold fraction of missing values.
func DropRowsMissingThreshold(threshold float64) Step {
	return Step{
		Name: "drop_rows_missing_threshold",
		Apply: func(ds *scrub.Dataset) *scrub.Dataset {
			return ds.DropRowsMissingThreshold(threshold)
		},
	}
}

// DropConstantColumns returns a step dropping columns with one or zero unique
// values.
func DropConstantColumns() Step {
	return Step{
		Name: "drop_constant_columns",
		Apply: func(ds *scrub.Dataset) *scrub.Dataset {
			return ds.DropConstantColumns()
		},
	}
}

// DropUniqueColumns returns a step dropping columns where every value is
// distinct.
func DropUniqueColumns() Step {
	return Step{
		Name: "drop_unique_columns",
		Apply: func(ds *scrub.Dataset) *scrub.Dataset {
			return ds.DropUniqueColumns()
		},
	}
}

// DropDuplicateRows returns a step dropping duplicated rows.
func DropDuplicateRows(cols ...string) Step {
	return Step{
		Name: "drop_duplicate_rows",
		Apply: func(ds *scrub.Dataset) *scrub.Dataset {
			return ds.DropDuplicateRows(cols...)
		},
	}
}

// DropDuplicateColumns returns a step dropping duplicated columns.
func DropDuplicateColumns() Step {
	return Step{
		Name: "drop_duplicate_columns",
		Apply: func(ds *scrub.Dataset) *scrub.Dataset {
			return ds.DropDuplicateColumns()
		},
	}
}

// ReplaceMissingRemoveRow returns a step removing rows with a missing value
// in any of the selected columns.
func ReplaceMissingRemoveRow(cols ...string) Step {
	return Step{
		Name: "replace_missing_remove_row",
		Apply: func(ds *scrub.Dataset) *scrub.Dataset {
			return ds.ReplaceMissingRemoveRow(cols...)
		},
	}
}

// ReplaceMissingMean returns a step imputing numeric columns with the mean.
func ReplaceMissingMean(cols ...string) Step {
	return Step{
		Name: "replace_missing_mean",
		Apply: func(ds *scrub.Dataset) *scrub.Dataset {
			return ds.ReplaceMissingMean(cols...)
		},
	}
}

// ReplaceMissingMedian returns a step imputing numeric columns with the
// median.
func ReplaceMissingMedian(cols ...string) Step {
	return Step{
		Name: "replace_missing_median",
		Apply: func(ds *scrub.Dataset) *scrub.Dataset {
			return ds.ReplaceMissingMedian(cols...)
		},
	}
}

// ReplaceMissingMostCommon returns a step imputing numeric columns with the
// most common value.
func ReplaceMissingMostCommon(cols ...string) Step {
	return Step{
		Name: "replace_missing_most_common",
		Apply: func(ds *scrub.Dataset) *scrub.Dataset {
			return ds.ReplaceMissingMostCommon(cols...)
		},
	}
}

// ReplaceMissingNewCategory returns a step filling missing values with an
// automatically chosen category.
func ReplaceMissingNewCategory(cols ...string) Step {
	return Step{
		Name: "replace_missing_new_category",
		Apply: func(ds *scrub.Dataset) *scrub.Dataset {
			return ds.ReplaceMissingNewCategory(cols...)
		},
	}
}

// ReplaceMissingRandomDiscrete returns a step sampling replacements from each
// column's empirical distribution.
func ReplaceMissingRandomDiscrete(cols ...string) Step {
	return Step{
		Name: "replace_missing_random_discrete",
		Apply: func(ds *scrub.Dataset) *scrub.Dataset {
			return ds.ReplaceMissingRandomDiscrete(cols...)
		},
	}
}

// ReplaceMissingKNN returns a step imputing numeric columns from the k
// nearest rows.
func ReplaceMissingKNN(k int) Step {
	return Step{
		Name: "replace_missing_knn",
		Apply: func(ds *scrub.Dataset) *scrub.Dataset {
			return ds.ReplaceMissingKNN(k)
		},
	}
}

// ReplaceMissingInterpolate returns a step interpolating gaps in numeric
// columns.
func ReplaceMissingInterpolate(cols ...string) Step {
	return Step{
		Name: "replace_missing_interpolate",
		Apply: func(ds *scrub.Dataset) *scrub.Dataset {
			return ds.ReplaceMissingInterpolate(cols...)
		},
	}
}

// ReplaceMissingForwardFill returns a step carrying the last known value
// forward.
func ReplaceMissingForwardFill(cols ...string) Step {
	return Step{
		Name: "replace_missing_forward_fill",
		Apply: func(ds *scrub.Dataset) *scrub.Dataset {
			return ds.ReplaceMissingForwardFill(cols...)
		},
	}
}

// ReplaceMissingBackFill returns a step carrying the next known value
// backward.
func ReplaceMissingBackFill(cols ...string) Step {
	return Step{
		Name: "replace_missing_back_fill",
		Apply: func(ds *scrub.Dataset) *scrub.Dataset {
			return ds.ReplaceMissingBackFill(cols...)
		},
	}
}

// ReplaceMissingIndicator returns a step adding missingness indicator
// columns.
func ReplaceMissingIndicator(cols ...string) Step {
	return Step{
		Name: "replace_missing_indicator",
		Apply: func(ds *scrub.Dataset) *scrub.Dataset {
			return ds.ReplaceMissingIndicator(cols...)
		},
	}
}
