package source_test

import (
	"testing"

	"github.com/scrubml/scrub"
	"github.com/scrubml/scrub/source"
)

func TestCSVSourceLoad(t *testing.T) {
	ds, err := source.NewCSVSource().Load("testdata/train.csv")
	if err != nil {
		t.Fatal(err)
	}

	if got := ds.Train().Nrow(); got != 4 {
		t.Fatalf("got %d rows, want 4", got)
	}
	if got := ds.Columns(); len(got) != 3 {
		t.Fatalf("got columns %v, want 3", got)
	}
	if len(ds.Name) == 0 {
		t.Fatal("expected a generated dataset name")
	}
	if _, ok := ds.Test(); ok {
		t.Fatal("expected no test table")
	}
}

func TestCSVSourceLoadWithTest(t *testing.T) {
	s := source.NewCSVSource(
		source.CSVTestPath("testdata/test.csv"),
		source.CSVDatasetOptions(scrub.WithName("people")))
	ds, err := s.Load("testdata/train.csv")
	if err != nil {
		t.Fatal(err)
	}

	if ds.Name != "people" {
		t.Fatalf("got name %s, want people", ds.Name)
	}
	test, ok := ds.Test()
	if !ok {
		t.Fatal("expected a test table")
	}
	if got := test.Nrow(); got != 2 {
		t.Fatalf("got %d test rows, want 2", got)
	}
}

func TestCSVSourceLoadMissingFile(t *testing.T) {
	if _, err := source.NewCSVSource().Load("testdata/nope.csv"); err == nil {
		t.Fatal("expected an error for a file that does not exist")
	}
}

func TestJSONSourceLoad(t *testing.T) {
	ds, err := source.NewJSONSource().Load("testdata/train.json")
	if err != nil {
		t.Fatal(err)
	}

	if got := ds.Train().Nrow(); got != 3 {
		t.Fatalf("got %d rows, want 3", got)
	}
	if got := ds.Columns(); len(got) != 2 {
		t.Fatalf("got columns %v, want 2", got)
	}
}
