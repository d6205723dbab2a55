package analysis_test

import (
	"math"
	"testing"

	"github.com/go-gota/gota/series"
	"github.com/peterbourgon/diskv"

	"github.com/scrubml/scrub/analysis"
)

// countingMeasurement tracks how many times it was actually computed so the
// memoisation of the executors can be observed.
type countingMeasurement struct {
	calls *int
}

func (countingMeasurement) Name() string {
	return "Counting"
}

func (c countingMeasurement) Execute(s series.Series) (float64, error) {
	*c.calls++
	return float64(s.Len()), nil
}

func TestMissingFraction(t *testing.T) {
	s := series.New([]string{"1", "NaN", "3", "NaN"}, series.Int, "a")
	v, err := analysis.MissingFraction.Execute(s)
	if err != nil {
		t.Fatal(err)
	}
	if v != 0.5 {
		t.Fatalf("got %f, want 0.5", v)
	}
}

func TestUniqueValues(t *testing.T) {
	s := series.New([]string{"a", "b", "a", "NaN"}, series.String, "x")
	v, err := analysis.UniqueValues.Execute(s)
	if err != nil {
		t.Fatal(err)
	}
	if v != 2 {
		t.Fatalf("got %f, want 2", v)
	}
}

func TestNumericMeasurements(t *testing.T) {
	s := series.New([]string{"1", "2", "2", "7", "NaN"}, series.Int, "a")

	for _, tc := range []struct {
		measurement analysis.Measurement
		want        float64
	}{
		{analysis.Mean, 3},
		{analysis.Median, 2},
		{analysis.Mode, 2},
	} {
		v, err := tc.measurement.Execute(s)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(v-tc.want) > 1e-9 {
			t.Fatalf("%s: got %f, want %f", tc.measurement.Name(), v, tc.want)
		}
	}
}

func TestMeasurementsRequireObservedValues(t *testing.T) {
	s := series.New([]string{"NaN", "NaN"}, series.Int, "a")
	if _, err := analysis.Mean.Execute(s); err == nil {
		t.Fatal("expected an error for a column with no observed values")
	}
}

func TestMemoryExecutorMemoises(t *testing.T) {
	calls := 0
	m := countingMeasurement{calls: &calls}
	s := series.New([]string{"1", "2"}, series.Int, "a")

	executor := analysis.NewMemoryMeasurementExecutor()
	for i := 0; i < 3; i++ {
		v, err := executor.Execute(s, m)
		if err != nil {
			t.Fatal(err)
		}
		if v[0] != 2 {
			t.Fatalf("got %f, want 2", v[0])
		}
	}
	if calls != 1 {
		t.Fatalf("measurement was computed %d times, want 1", calls)
	}
}

func TestMemoryExecutorRecomputesChangedColumns(t *testing.T) {
	calls := 0
	m := countingMeasurement{calls: &calls}

	executor := analysis.NewMemoryMeasurementExecutor()
	if _, err := executor.Execute(series.New([]string{"1", "2"}, series.Int, "a"), m); err != nil {
		t.Fatal(err)
	}
	if _, err := executor.Execute(series.New([]string{"1", "3"}, series.Int, "a"), m); err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Fatalf("measurement was computed %d times, want 2", calls)
	}
}

func TestDiskExecutorMemoises(t *testing.T) {
	calls := 0
	m := countingMeasurement{calls: &calls}
	s := series.New([]string{"1", "2", "3"}, series.Int, "a")

	executor := analysis.NewDiskMeasurementExecutor(diskv.New(diskv.Options{
		BasePath:     t.TempDir(),
		Transform:    analysis.BlockTransform(8),
		CacheSizeMax: 4096 * 1024,
	}))
	for i := 0; i < 3; i++ {
		v, err := executor.Execute(s, m)
		if err != nil {
			t.Fatal(err)
		}
		if v[0] != 3 {
			t.Fatalf("got %f, want 3", v[0])
		}
	}
	if calls != 1 {
		t.Fatalf("measurement was computed %d times, want 1", calls)
	}
}
