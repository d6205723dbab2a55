package cleaning

import (
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/pkg/errors"
)

var (
	// Categories tried in order when a numeric column needs a new category
	// and none is supplied.
	defaultNumericCategories = []int{-1, -999, -9999}
	// Categories tried in order when a string column needs a new category
	// and none is supplied.
	defaultStringCategories = []string{"Other", "Unknown", "MissingDataCategory"}
)

// ReplaceMissingNewCategory fills missing values with a per-column category.
// A nil category selects the first default not already present in the column.
func ReplaceMissingNewCategory(train dataframe.DataFrame, test *dataframe.DataFrame, colToCategory map[string]interface{}) (dataframe.DataFrame, *dataframe.DataFrame, error) {
	cols := make([]string, 0, len(colToCategory))
	for col := range colToCategory {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	resolved, err := ResolveColumns(train, cols, false)
	if err != nil {
		return train, test, err
	}

	for _, name := range resolved {
		category := colToCategory[name]
		if category == nil {
			category = newCategory(train, name)
		}

		train, err = fillColumn(train, name, category)
		if err != nil {
			return train, test, err
		}
		if test != nil {
			filled, err := fillColumn(*test, name, category)
			if err != nil {
				return train, test, err
			}
			test = &filled
		}
	}
	return train, test, nil
}

// NewCategoryMap builds a column-to-category mapping sharing one category
// across every column. A nil category defers selection to the defaults.
func NewCategoryMap(cols []string, category interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(cols))
	for _, col := range cols {
		m[col] = category
	}
	return m
}

// ReplaceMissingConstant fills missing values in the selected columns with a
// single constant. An empty selector fills every column.
func ReplaceMissingConstant(train dataframe.DataFrame, test *dataframe.DataFrame, constant interface{}, cols ...string) (dataframe.DataFrame, *dataframe.DataFrame, error) {
	resolved, err := ResolveColumns(train, cols, false)
	if err != nil {
		return train, test, err
	}
	if constant == nil {
		return train, test, errors.New("a constant is required")
	}
	return ReplaceMissingNewCategory(train, test, NewCategoryMap(resolved, constant))
}

// newCategory picks a replacement category absent from the observed values of
// the column, falling back to the last default when all are taken.
func newCategory(df dataframe.DataFrame, name string) interface{} {
	s := df.Col(name)
	present := map[string]bool{}
	mask := s.IsNaN()
	for i, r := range s.Records() {
		if !mask[i] {
			present[r] = true
		}
	}

	if IsNumeric(s.Type()) {
		for _, c := range defaultNumericCategories {
			if !present[formatValue(c)] {
				return c
			}
		}
		return defaultNumericCategories[len(defaultNumericCategories)-1]
	}
	for _, c := range defaultStringCategories {
		if !present[c] {
			return c
		}
	}
	return defaultStringCategories[len(defaultStringCategories)-1]
}
