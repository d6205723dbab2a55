// Package pipeline provides a framework for constructing reproducible dataset
// cleaning experiments.
package pipeline

import (
	"log"

	"github.com/pkg/errors"

	"github.com/scrubml/scrub"
	"github.com/scrubml/scrub/analysis"
	"github.com/scrubml/scrub/output"
	"github.com/scrubml/scrub/source"
)

// Step is a named cleaning operation applied to a dataset.
type Step struct {
	Name  string
	Apply func(*scrub.Dataset) *scrub.Dataset
}

// Pipeline contains all the information for executing a cleaning experiment
// over a dataset.
type Pipeline struct {
	Source                source.DatasetSource
	Steps                 []Step
	Measurements          []analysis.Measurement
	MeasurementFormatters []output.MeasurementFormatter
}

// Steps adds cleaning steps to the pipeline.
func Steps(steps ...Step) func() interface{} {
	return func() interface{} {
		return steps
	}
}

// Measurement adds measurements to the pipeline.
func Measurement(measurements ...analysis.Measurement) func() interface{} {
	return func() interface{} {
		return measurements
	}
}

// MeasurementOutput adds measurement formatters to the pipeline.
func MeasurementOutput(formatters ...output.MeasurementFormatter) func() interface{} {
	return func() interface{} {
		return formatters
	}
}

// NewPipeline creates a new cleaning pipeline. The dataset source is
// required. Additional components are provided via the optional functional
// arguments.
func NewPipeline(s source.DatasetSource, components ...func() interface{}) Pipeline {
	p := Pipeline{
		Source: s,
	}
	for _, component := range components {
		val := component()
		switch v := val.(type) {
		case []Step:
			p.Steps = v
		case []analysis.Measurement:
			p.Measurements = v
		case []output.MeasurementFormatter:
			p.MeasurementFormatters = v
		}
	}
	return p
}

// Result is the output of a cleaning pipeline.
type Result struct {
	Dataset      *scrub.Dataset
	Measurements []string
}

// Execute runs the pipeline over the dataset at path: the dataset is loaded,
// the steps are applied in order, and the configured measurements are
// computed for every remaining column and formatted.
func (p Pipeline) Execute(path string) (Result, error) {
	var result Result

	ds, err := p.Source.Load(path)
	if err != nil {
		return result, err
	}
	log.Printf("cleaning dataset %s...", ds.Name)

	for _, step := range p.Steps {
		log.Printf("applying %s...", step.Name)
		ds = step.Apply(ds)
		if err := ds.Error(); err != nil {
			return result, errors.Wrapf(err, "applying %s", step.Name)
		}
	}
	result.Dataset = ds

	// Only perform the measurements if there are some formatters to output
	// them to.
	if len(p.Measurements) == 0 || len(p.MeasurementFormatters) == 0 {
		return result, nil
	}

	columns := ds.Columns()
	headers := make([]string, len(p.Measurements))
	data := make([][]float64, len(p.Measurements))
	for i, m := range p.Measurements {
		headers[i] = m.Name()
		data[i] = make([]float64, len(columns))
	}

	executor := ds.Executor()
	for j, column := range columns {
		values, err := executor.Execute(ds.Train().Col(column), p.Measurements...)
		if err != nil {
			return result, errors.Wrapf(err, "measuring column %s", column)
		}
		for i, v := range values {
			data[i][j] = v
		}
	}

	outputs := make([]string, len(p.MeasurementFormatters))
	for i, formatter := range p.MeasurementFormatters {
		outputs[i], err = formatter(columns, headers, data)
		if err != nil {
			return result, err
		}
	}
	result.Measurements = outputs

	return result, nil
}
