package eval

import (
	"math"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/pkg/errors"
	"github.com/xtgo/set"

	"github.com/scrubml/scrub/output"
)

// Classifier is a trained model that can label the rows of a feature table.
type Classifier interface {
	Predict(x dataframe.DataFrame) (series.Series, error)
}

// DecisionScorer is implemented by classifiers exposing a real-valued
// decision function over the rows of a feature table.
type DecisionScorer interface {
	DecisionFunction(x dataframe.DataFrame) ([]float64, error)
}

// ClassificationAnalysis analyses a classification model through metrics
// computed over a held-out test set. Predictions and decision scores are
// computed once and cached; everything else is read-only after construction.
type ClassificationAnalysis struct {
	Model Classifier
	Name  string

	xTest      dataframe.DataFrame
	yTest      series.Series
	classes    []string
	multiclass bool

	predicted *series.Series
	scores    []float64
}

// NewClassificationAnalysis creates an analysis over a model and the
// train/test tables it was built from. The target column is dropped from the
// features, and the class set is the union of the training and test labels.
func NewClassificationAnalysis(model Classifier, name string, train, test dataframe.DataFrame, target string) (*ClassificationAnalysis, error) {
	yTrain := train.Col(target)
	if yTrain.Err != nil {
		return nil, errors.Wrapf(yTrain.Err, "selecting target %s", target)
	}
	yTest := test.Col(target)
	if yTest.Err != nil {
		return nil, errors.Wrapf(yTest.Err, "selecting target %s", target)
	}
	xTest := test.Drop(target)
	if err := xTest.Error(); err != nil {
		return nil, errors.Wrapf(err, "dropping target %s", target)
	}

	labels := append(yTrain.Records(), yTest.Records()...)
	sort.Strings(labels)
	n := set.Uniq(sort.StringSlice(labels))
	classes := labels[:n]

	return &ClassificationAnalysis{
		Model:      model,
		Name:       name,
		xTest:      xTest,
		yTest:      yTest,
		classes:    classes,
		multiclass: len(classes) > 2,
	}, nil
}

// Classes returns the sorted set of class labels observed across both tables.
func (a *ClassificationAnalysis) Classes() []string {
	return a.classes
}

// Multiclass reports whether more than two classes were observed.
func (a *ClassificationAnalysis) Multiclass() bool {
	return a.multiclass
}

// predictions labels the test features, caching the result.
func (a *ClassificationAnalysis) predictions() (series.Series, error) {
	if a.predicted != nil {
		return *a.predicted, nil
	}
	p, err := a.Model.Predict(a.xTest)
	if err != nil {
		return p, errors.Wrap(err, "predicting test data")
	}
	if p.Err != nil {
		return p, errors.Wrap(p.Err, "predicting test data")
	}
	if p.Len() != a.yTest.Len() {
		return p, errors.Errorf("predicted %d labels for %d rows", p.Len(), a.yTest.Len())
	}
	a.predicted = &p
	return p, nil
}

// positive is the class treated as positive by the binary measures: the
// greatest label, as the union is kept sorted.
func (a *ClassificationAnalysis) positive() string {
	return a.classes[len(a.classes)-1]
}

// Accuracy measures how many observations, both positive and negative, were
// correctly classified.
func (a *ClassificationAnalysis) Accuracy() (float64, error) {
	return a.score(Accuracy)
}

// BalancedAccuracy is the average of the recall obtained on each class.
func (a *ClassificationAnalysis) BalancedAccuracy() (float64, error) {
	return a.score(BalancedAccuracy)
}

// Precision measures the fraction of rows predicted positive that are.
func (a *ClassificationAnalysis) Precision() (float64, error) {
	return a.score(Precision{Positive: a.positive()})
}

// Recall measures the fraction of positive rows predicted as such.
func (a *ClassificationAnalysis) Recall() (float64, error) {
	return a.score(Recall{Positive: a.positive()})
}

// F1 is the harmonic mean of precision and recall.
func (a *ClassificationAnalysis) F1() (float64, error) {
	return a.score(NewF1Measure(a.positive()))
}

func (a *ClassificationAnalysis) score(evaluator Evaluator) (float64, error) {
	p, err := a.predictions()
	if err != nil {
		return 0, err
	}
	return evaluator.Score(p, a.yTest), nil
}

// AveragePrecision summarises the precision-recall curve of the model's
// decision function. NaN is returned when the model exposes no decision
// function.
func (a *ClassificationAnalysis) AveragePrecision() (float64, error) {
	scorer, ok := a.Model.(DecisionScorer)
	if !ok {
		return math.NaN(), nil
	}
	if a.scores == nil {
		scores, err := scorer.DecisionFunction(a.xTest)
		if err != nil {
			return 0, errors.Wrap(err, "scoring test data")
		}
		a.scores = scores
	}
	return AveragePrecisionScore(a.scores, a.yTest, a.positive()), nil
}

// Report computes every metric and formats the result with the supplied
// evaluation formatter, keyed by the analysis name.
func (a *ClassificationAnalysis) Report(formatter output.EvaluationFormatter) (string, error) {
	p, err := a.predictions()
	if err != nil {
		return "", err
	}
	metrics := Evaluate([]Evaluator{
		Accuracy,
		BalancedAccuracy,
		Precision{Positive: a.positive()},
		Recall{Positive: a.positive()},
		NewF1Measure(a.positive()),
	}, p, a.yTest)
	ap, err := a.AveragePrecision()
	if err != nil {
		return "", err
	}
	// NaN marks a model without a decision function; the metric is omitted
	// rather than reported.
	if !math.IsNaN(ap) {
		metrics["AveragePrecision"] = ap
	}
	return formatter(map[string]map[string]float64{a.Name: metrics})
}
