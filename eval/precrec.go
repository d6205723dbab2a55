package eval

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gota/gota/series"
)

// Precision measures the fraction of rows predicted as the positive class
// that actually belong to it.
type Precision struct {
	Positive string
}

// Recall measures the fraction of rows of the positive class that were
// predicted as such.
type Recall struct {
	Positive string
}

// FMeasure computes f-measure, with the beta parameter controlling the
// precision and recall trade-off.
type FMeasure struct {
	Positive string
	beta     float64
}

// NewFMeasure creates an f-measure with the given beta for a positive class.
func NewFMeasure(beta float64, positive string) FMeasure {
	return FMeasure{Positive: positive, beta: beta}
}

// NewF1Measure is f-measure with beta=1.
func NewF1Measure(positive string) FMeasure {
	return NewFMeasure(1, positive)
}

// NewF05Measure is f-measure with beta=0.5.
func NewF05Measure(positive string) FMeasure {
	return NewFMeasure(0.5, positive)
}

// NewF3Measure is f-measure with beta=3.
func NewF3Measure(positive string) FMeasure {
	return NewFMeasure(3, positive)
}

func (p Precision) Name() string {
	return "Precision"
}

func (p Precision) Score(predicted, actual series.Series) float64 {
	if actual.Len() == 0 || predicted.Len() != actual.Len() {
		return 0
	}
	pr := predicted.Records()
	ar := actual.Records()
	predictedPositive := 0.0
	truePositive := 0.0
	for i := range ar {
		if pr[i] != p.Positive {
			continue
		}
		predictedPositive++
		if ar[i] == p.Positive {
			truePositive++
		}
	}
	if predictedPositive == 0 {
		return 0
	}
	return truePositive / predictedPositive
}

func (r Recall) Name() string {
	return "Recall"
}

func (r Recall) Score(predicted, actual series.Series) float64 {
	if actual.Len() == 0 || predicted.Len() != actual.Len() {
		return 0
	}
	pr := predicted.Records()
	ar := actual.Records()
	positive := 0.0
	truePositive := 0.0
	for i := range ar {
		if ar[i] != r.Positive {
			continue
		}
		positive++
		if pr[i] == r.Positive {
			truePositive++
		}
	}
	if positive == 0 {
		return 0
	}
	return truePositive / positive
}

// Score uses the beta parameter to compute f-measure.
func (f FMeasure) Score(predicted, actual series.Series) float64 {
	precision := Precision{Positive: f.Positive}.Score(predicted, actual)
	recall := Recall{Positive: f.Positive}.Score(predicted, actual)
	if precision == 0 || recall == 0 {
		return 0
	}
	betaSquared := math.Pow(f.beta, 2)
	return ((1 + betaSquared) * (precision * recall)) / ((betaSquared * precision) + recall)
}

// Name calculates the name of the f-measure with beta parameter.
func (f FMeasure) Name() string {
	return fmt.Sprintf("F%vMeasure", f.beta)
}

// AveragePrecisionScore summarises a precision-recall curve as the weighted
// mean of precisions achieved at each threshold, with the increase in recall
// from the previous threshold as the weight. Rows are ranked by descending
// decision score. NaN is returned when no row belongs to the positive class.
func AveragePrecisionScore(scores []float64, actual series.Series, positive string) float64 {
	n := actual.Len()
	if n == 0 || len(scores) != n {
		return math.NaN()
	}

	relevant := make([]bool, n)
	numRel := 0.0
	for i, r := range actual.Records() {
		if r == positive {
			relevant[i] = true
			numRel++
		}
	}
	if numRel == 0 {
		return math.NaN()
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})

	truePositive := 0.0
	sum := 0.0
	for k, idx := range order {
		if relevant[idx] {
			truePositive++
			sum += truePositive / float64(k+1)
		}
	}
	return sum / numRel
}
