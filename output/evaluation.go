package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"sort"
	"strconv"
)

// EvaluationFormatter formats model evaluation results, keyed by model name
// then metric name.
type EvaluationFormatter func(map[string]map[string]float64) (string, error)

// JsonEvaluationFormatter renders the results as a JSON object keyed by model
// name then metric name.
func JsonEvaluationFormatter(results map[string]map[string]float64) (string, error) {
	v, err := json.MarshalIndent(results, "", "    ")
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// CsvEvaluationFormatter outputs results in CSV format, one row per model and
// metric.
func CsvEvaluationFormatter(results map[string]map[string]float64) (string, error) {
	b := bytes.NewBufferString("")
	w := csv.NewWriter(b)
	w.Write([]string{"Model", "Metric", "Score"})

	models := make([]string, 0, len(results))
	for model := range results {
		models = append(models, model)
	}
	sort.Strings(models)
	for _, model := range models {
		metrics := make([]string, 0, len(results[model]))
		for metric := range results[model] {
			metrics = append(metrics, metric)
		}
		sort.Strings(metrics)
		for _, metric := range metrics {
			w.Write([]string{model, metric, strconv.FormatFloat(results[model][metric], 'f', -1, 64)})
		}
	}
	w.Flush()
	return b.String(), nil
}
