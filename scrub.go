// Package scrub provides chainable missing-value cleaning over a train/test
// pair of dataframes, together with column measurements and model-evaluation
// tools built on the same tables.
package scrub

import (
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"

	"github.com/scrubml/scrub/analysis"
)

// Dataset wraps a training table and an optional test table sharing the same
// column schema. Cleaning operations mutate the stored tables in place and
// return the wrapper for chaining; once an operation fails, the error sticks
// and every later call in the chain is a no-op.
type Dataset struct {
	Name string
	// Err is the first error produced by a chained operation.
	Err error

	train    dataframe.DataFrame
	test     *dataframe.DataFrame
	executor analysis.MeasurementExecutor
	src      rand.Source
}

// WithTest attaches a held-out test table to the dataset.
func WithTest(test dataframe.DataFrame) func(*Dataset) {
	return func(d *Dataset) {
		d.test = &test
	}
}

// WithName names the dataset for logging and reports.
func WithName(name string) func(*Dataset) {
	return func(d *Dataset) {
		d.Name = name
	}
}

// WithExecutor configures how column measurements are computed and memoised.
func WithExecutor(executor analysis.MeasurementExecutor) func(*Dataset) {
	return func(d *Dataset) {
		d.executor = executor
	}
}

// WithRandSource seeds the random source used by sampling imputers.
func WithRandSource(src rand.Source) func(*Dataset) {
	return func(d *Dataset) {
		d.src = src
	}
}

// NewDataset creates a dataset from a training table. The test table and
// other components are provided via the optional functional arguments.
func NewDataset(train dataframe.DataFrame, options ...func(*Dataset)) *Dataset {
	d := &Dataset{
		Name:     uuid.New().String(),
		train:    train,
		executor: analysis.NewMemoryMeasurementExecutor(),
		src:      rand.NewSource(uint64(time.Now().UnixNano())),
	}
	for _, option := range options {
		option(d)
	}
	if err := train.Error(); err != nil {
		d.Err = errors.Wrap(err, "loading training data")
	}
	if d.test != nil {
		if err := d.test.Error(); err != nil {
			d.Err = errors.Wrap(err, "loading test data")
		}
	}
	return d
}

// Train returns the training table.
func (d *Dataset) Train() dataframe.DataFrame {
	return d.train
}

// Test returns the test table and whether one is attached.
func (d *Dataset) Test() (dataframe.DataFrame, bool) {
	if d.test == nil {
		return dataframe.DataFrame{}, false
	}
	return *d.test, true
}

// Columns returns the column names shared by the tables.
func (d *Dataset) Columns() []string {
	return d.train.Names()
}

// Executor returns the measurement executor the dataset was built with.
func (d *Dataset) Executor() analysis.MeasurementExecutor {
	return d.executor
}

// Error returns the first error produced by a chained operation.
func (d *Dataset) Error() error {
	return d.Err
}

// apply threads one cleaning transformation through the sticky error.
func (d *Dataset) apply(op func() (dataframe.DataFrame, *dataframe.DataFrame, error)) *Dataset {
	if d.Err != nil {
		return d
	}
	train, test, err := op()
	if err != nil {
		d.Err = err
		return d
	}
	d.train = train
	d.test = test
	return d
}

// selectColumns restricts both tables to the named columns, preserving the
// shared schema after a column drop.
func (d *Dataset) selectColumns(keep []string) *Dataset {
	if d.Err != nil {
		return d
	}
	if len(keep) == 0 {
		d.Err = errors.New("no columns remaining after drop")
		return d
	}
	train := d.train.Select(keep)
	if err := train.Error(); err != nil {
		d.Err = errors.Wrap(err, "selecting columns")
		return d
	}
	d.train = train
	if d.test != nil {
		test := d.test.Select(keep)
		if err := test.Error(); err != nil {
			d.Err = errors.Wrap(err, "selecting test columns")
			return d
		}
		d.test = &test
	}
	return d
}

// subsetRows restricts one table to the given row indices. Row operations
// apply to each table independently.
func subsetRows(df dataframe.DataFrame, keep []int) (dataframe.DataFrame, error) {
	out := df.Subset(keep)
	if err := out.Error(); err != nil {
		return df, errors.Wrap(err, "subsetting rows")
	}
	return out, nil
}
