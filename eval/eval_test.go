package eval_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/scrubml/scrub/eval"
	"github.com/scrubml/scrub/output"
)

// constantClassifier predicts the same label for every row.
type constantClassifier struct {
	label string
}

func (c constantClassifier) Predict(x dataframe.DataFrame) (series.Series, error) {
	labels := make([]string, x.Nrow())
	for i := range labels {
		labels[i] = c.label
	}
	return series.New(labels, series.String, "predicted"), nil
}

// scoringClassifier also exposes a decision function over a fixed score list.
type scoringClassifier struct {
	constantClassifier
	scores []float64
}

func (c scoringClassifier) DecisionFunction(x dataframe.DataFrame) ([]float64, error) {
	return c.scores, nil
}

// brokenScorer exposes a decision function that always fails.
type brokenScorer struct {
	constantClassifier
}

func (brokenScorer) DecisionFunction(x dataframe.DataFrame) ([]float64, error) {
	return nil, errors.New("decision function not fitted")
}

func labels(values ...string) series.Series {
	return series.New(values, series.String, "y")
}

func TestAccuracy(t *testing.T) {
	predicted := labels("yes", "no", "yes", "yes")
	actual := labels("yes", "no", "no", "yes")

	if got := eval.Accuracy.Score(predicted, actual); got != 0.75 {
		t.Fatalf("got %f, want 0.75", got)
	}
}

func TestBalancedAccuracy(t *testing.T) {
	// Recall is 1.0 for yes and 0.5 for no.
	predicted := labels("yes", "yes", "yes", "no")
	actual := labels("yes", "yes", "no", "no")

	if got := eval.BalancedAccuracy.Score(predicted, actual); got != 0.75 {
		t.Fatalf("got %f, want 0.75", got)
	}
}

func TestPrecisionRecall(t *testing.T) {
	predicted := labels("yes", "yes", "no", "no")
	actual := labels("yes", "no", "yes", "no")

	precision := eval.Precision{Positive: "yes"}.Score(predicted, actual)
	if precision != 0.5 {
		t.Fatalf("got precision %f, want 0.5", precision)
	}
	recall := eval.Recall{Positive: "yes"}.Score(predicted, actual)
	if recall != 0.5 {
		t.Fatalf("got recall %f, want 0.5", recall)
	}
	f1 := eval.NewF1Measure("yes").Score(predicted, actual)
	if f1 != 0.5 {
		t.Fatalf("got f1 %f, want 0.5", f1)
	}
}

func TestEvaluate(t *testing.T) {
	predicted := labels("yes", "no")
	actual := labels("yes", "no")

	results := eval.Evaluate([]eval.Evaluator{eval.Accuracy, eval.BalancedAccuracy}, predicted, actual)
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results["Accuracy"] != 1 {
		t.Fatalf("got accuracy %f, want 1", results["Accuracy"])
	}
}

func TestAveragePrecisionScore(t *testing.T) {
	scores := []float64{0.1, 0.4, 0.35, 0.8}
	actual := labels("no", "no", "yes", "yes")

	got := eval.AveragePrecisionScore(scores, actual, "yes")
	want := (1.0 + 2.0/3.0) / 2.0
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("got %f, want %f", got, want)
	}
}

func TestAveragePrecisionScoreWithoutPositives(t *testing.T) {
	got := eval.AveragePrecisionScore([]float64{0.5, 0.5}, labels("no", "no"), "yes")
	if !math.IsNaN(got) {
		t.Fatalf("got %f, want NaN", got)
	}
}

func testTables() (dataframe.DataFrame, dataframe.DataFrame) {
	train := dataframe.New(
		series.New([]int{1, 2, 3, 4}, series.Int, "a"),
		series.New([]string{"yes", "no", "yes", "no"}, series.String, "y"),
	)
	test := dataframe.New(
		series.New([]int{5, 6, 7, 8}, series.Int, "a"),
		series.New([]string{"yes", "no", "yes", "no"}, series.String, "y"),
	)
	return train, test
}

func TestClassificationAnalysis(t *testing.T) {
	train, test := testTables()
	a, err := eval.NewClassificationAnalysis(constantClassifier{label: "yes"}, "constant", train, test, "y")
	if err != nil {
		t.Fatal(err)
	}

	if got := a.Classes(); len(got) != 2 || got[0] != "no" || got[1] != "yes" {
		t.Fatalf("got classes %v, want [no yes]", got)
	}
	if a.Multiclass() {
		t.Fatal("two classes should not be multiclass")
	}

	accuracy, err := a.Accuracy()
	if err != nil {
		t.Fatal(err)
	}
	if accuracy != 0.5 {
		t.Fatalf("got accuracy %f, want 0.5", accuracy)
	}

	recall, err := a.Recall()
	if err != nil {
		t.Fatal(err)
	}
	if recall != 1 {
		t.Fatalf("got recall %f, want 1", recall)
	}
}

func TestAveragePrecisionWithoutDecisionFunction(t *testing.T) {
	train, test := testTables()
	a, err := eval.NewClassificationAnalysis(constantClassifier{label: "yes"}, "constant", train, test, "y")
	if err != nil {
		t.Fatal(err)
	}

	ap, err := a.AveragePrecision()
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsNaN(ap) {
		t.Fatalf("got %f, want NaN for a model without a decision function", ap)
	}
}

func TestAveragePrecisionWithDecisionFunction(t *testing.T) {
	train, test := testTables()
	model := scoringClassifier{
		constantClassifier: constantClassifier{label: "yes"},
		scores:             []float64{0.9, 0.1, 0.8, 0.2},
	}
	a, err := eval.NewClassificationAnalysis(model, "scoring", train, test, "y")
	if err != nil {
		t.Fatal(err)
	}

	ap, err := a.AveragePrecision()
	if err != nil {
		t.Fatal(err)
	}
	// The decision function ranks both positive rows first.
	if ap != 1 {
		t.Fatalf("got %f, want 1", ap)
	}
}

func TestReport(t *testing.T) {
	train, test := testTables()
	a, err := eval.NewClassificationAnalysis(constantClassifier{label: "yes"}, "constant", train, test, "y")
	if err != nil {
		t.Fatal(err)
	}

	report, err := a.Report(output.JsonEvaluationFormatter)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"constant", "Accuracy", "BalancedAccuracy", "Precision", "Recall"} {
		if !strings.Contains(report, want) {
			t.Fatalf("report is missing %s:\n%s", want, report)
		}
	}
}

func TestReportPropagatesDecisionFunctionErrors(t *testing.T) {
	train, test := testTables()
	model := brokenScorer{constantClassifier: constantClassifier{label: "yes"}}
	a, err := eval.NewClassificationAnalysis(model, "broken", train, test, "y")
	if err != nil {
		t.Fatal(err)
	}

	// A failing decision function is an error, not an absent metric.
	if _, err := a.Report(output.JsonEvaluationFormatter); err == nil {
		t.Fatal("expected the decision function error to propagate")
	}
}

func TestNewClassificationAnalysisMissingTarget(t *testing.T) {
	train, test := testTables()
	if _, err := eval.NewClassificationAnalysis(constantClassifier{label: "yes"}, "constant", train, test, "z"); err == nil {
		t.Fatal("expected an error for a target that does not exist")
	}
}
