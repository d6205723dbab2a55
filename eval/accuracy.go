package eval

import (
	"github.com/go-gota/gota/series"
)

type accuracy struct{}
type balancedAccuracy struct{}

var (
	// Accuracy measures how many observations, both positive and negative,
	// were correctly classified.
	Accuracy = accuracy{}
	// BalancedAccuracy is the average of the recall obtained on each class,
	// for dealing with imbalanced datasets. The best value is 1 and the
	// worst value is 0.
	BalancedAccuracy = balancedAccuracy{}
)

func (accuracy) Name() string {
	return "Accuracy"
}

func (accuracy) Score(predicted, actual series.Series) float64 {
	n := actual.Len()
	if n == 0 || predicted.Len() != n {
		return 0
	}
	p := predicted.Records()
	a := actual.Records()
	correct := 0.0
	for i := range a {
		if p[i] == a[i] {
			correct++
		}
	}
	return correct / float64(n)
}

func (balancedAccuracy) Name() string {
	return "BalancedAccuracy"
}

func (balancedAccuracy) Score(predicted, actual series.Series) float64 {
	n := actual.Len()
	if n == 0 || predicted.Len() != n {
		return 0
	}
	p := predicted.Records()
	a := actual.Records()

	support := map[string]float64{}
	correct := map[string]float64{}
	for i := range a {
		support[a[i]]++
		if p[i] == a[i] {
			correct[a[i]]++
		}
	}

	recall := 0.0
	for class, total := range support {
		recall += correct[class] / total
	}
	return recall / float64(len(support))
}
