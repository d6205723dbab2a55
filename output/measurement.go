// Package output renders column measurement and model evaluation reports as
// JSON or CSV.
package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strconv"
)

// MeasurementFormatter renders a matrix of per-column measurements. The
// headers name the measurements and data holds one slice per measurement with
// a value for every column, so data must be headers-by-columns in shape.
type MeasurementFormatter func(columns, headers []string, data [][]float64) (string, error)

// JsonMeasurementFormatter renders the report as a JSON object keyed by
// column name then measurement name.
func JsonMeasurementFormatter(columns, headers []string, data [][]float64) (string, error) {
	m := map[string]map[string]float64{}
	for j, column := range columns {
		m[column] = map[string]float64{}
		for i, header := range headers {
			m[column][header] = data[i][j]
		}
	}

	v, err := json.MarshalIndent(m, "", "    ")
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// CsvMeasurementFormatter renders the report as a CSV table, one row per
// column with a field per measurement.
func CsvMeasurementFormatter(columns, headers []string, data [][]float64) (string, error) {
	b := bytes.NewBufferString("")
	w := csv.NewWriter(b)
	h := []string{"Column"}
	h = append(h, headers...)
	w.Write(h)
	for j := range columns {
		record := make([]string, len(data)+1)
		record[0] = columns[j]
		for i := range data {
			record[i+1] = strconv.FormatFloat(data[i][j], 'f', -1, 64)
		}
		w.Write(record)
	}
	w.Flush()
	return b.String(), nil
}
