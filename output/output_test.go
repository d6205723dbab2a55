package output_test

import (
	"encoding/json"
	"testing"

	"github.com/scrubml/scrub/output"
)

func TestJsonMeasurementFormatter(t *testing.T) {
	result, err := output.JsonMeasurementFormatter(
		[]string{"a", "b"},
		[]string{"MissingFraction", "Mean"},
		[][]float64{{0.5, 0}, {1.5, 2.5}})
	if err != nil {
		t.Fatal(err)
	}

	var m map[string]map[string]float64
	if err := json.Unmarshal([]byte(result), &m); err != nil {
		t.Fatal(err)
	}
	if m["a"]["MissingFraction"] != 0.5 {
		t.Fatalf("got %f, want 0.5", m["a"]["MissingFraction"])
	}
	if m["b"]["Mean"] != 2.5 {
		t.Fatalf("got %f, want 2.5", m["b"]["Mean"])
	}
}

func TestCsvMeasurementFormatter(t *testing.T) {
	result, err := output.CsvMeasurementFormatter(
		[]string{"a", "b"},
		[]string{"Mean"},
		[][]float64{{1, 2}})
	if err != nil {
		t.Fatal(err)
	}

	want := "Column,Mean\na,1\nb,2\n"
	if result != want {
		t.Fatalf("got %q, want %q", result, want)
	}
}

func TestJsonEvaluationFormatter(t *testing.T) {
	result, err := output.JsonEvaluationFormatter(map[string]map[string]float64{
		"model": {"Accuracy": 0.75},
	})
	if err != nil {
		t.Fatal(err)
	}

	var m map[string]map[string]float64
	if err := json.Unmarshal([]byte(result), &m); err != nil {
		t.Fatal(err)
	}
	if m["model"]["Accuracy"] != 0.75 {
		t.Fatalf("got %f, want 0.75", m["model"]["Accuracy"])
	}
}

func TestCsvEvaluationFormatter(t *testing.T) {
	result, err := output.CsvEvaluationFormatter(map[string]map[string]float64{
		"b": {"Accuracy": 1},
		"a": {"Recall": 0.5, "Accuracy": 0.75},
	})
	if err != nil {
		t.Fatal(err)
	}

	want := "Model,Metric,Score\na,Accuracy,0.75\na,Recall,0.5\nb,Accuracy,1\n"
	if result != want {
		t.Fatalf("got %q, want %q", result, want)
	}
}
