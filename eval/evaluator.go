// Package eval provides evaluation measures for classification predictions.
package eval

import "github.com/go-gota/gota/series"

// Evaluator is an interface for evaluating predicted labels against known
// labels.
type Evaluator interface {
	Score(predicted, actual series.Series) float64
	Name() string
}

// Evaluate scores predictions using the supplied evaluation measurements.
func Evaluate(evaluators []Evaluator, predicted, actual series.Series) map[string]float64 {
	scores := map[string]float64{}
	for _, evaluator := range evaluators {
		scores[evaluator.Name()] = evaluator.Score(predicted, actual)
	}
	return scores
}
