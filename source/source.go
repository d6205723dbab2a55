// Package source provides sources for loading datasets in different formats.
package source

import (
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/pkg/errors"

	"github.com/scrubml/scrub"
)

// DatasetSource represents a source for datasets and how to parse them.
type DatasetSource interface {
	// Load parses the file at path into a dataset.
	Load(path string) (*scrub.Dataset, error)
}

// CSVSource loads comma-separated files into datasets, optionally with a
// paired test file.
type CSVSource struct {
	testPath       string
	hasHeader      bool
	datasetOptions []func(*scrub.Dataset)
}

// CSVTestPath attaches a paired test file to the source.
func CSVTestPath(path string) func(*CSVSource) {
	return func(s *CSVSource) {
		s.testPath = path
	}
}

// CSVHasHeader configures whether the first row names the columns.
func CSVHasHeader(header bool) func(*CSVSource) {
	return func(s *CSVSource) {
		s.hasHeader = header
	}
}

// CSVDatasetOptions forwards options to the datasets the source creates.
func CSVDatasetOptions(options ...func(*scrub.Dataset)) func(*CSVSource) {
	return func(s *CSVSource) {
		s.datasetOptions = options
	}
}

// NewCSVSource creates a csv dataset source, configured through the optional
// functional arguments.
func NewCSVSource(options ...func(*CSVSource)) CSVSource {
	s := CSVSource{hasHeader: true}
	for _, option := range options {
		option(&s)
	}
	return s
}

// Load parses the csv file at path, and the paired test file when one is
// configured, into a dataset.
func (s CSVSource) Load(path string) (*scrub.Dataset, error) {
	train, err := readCSV(path, s.hasHeader)
	if err != nil {
		return nil, err
	}

	options := s.datasetOptions
	if len(s.testPath) > 0 {
		test, err := readCSV(s.testPath, s.hasHeader)
		if err != nil {
			return nil, err
		}
		options = append(options[:len(options):len(options)], scrub.WithTest(test))
	}

	ds := scrub.NewDataset(train, options...)
	if ds.Err != nil {
		return nil, ds.Err
	}
	return ds, nil
}

func readCSV(path string, hasHeader bool) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	df := dataframe.ReadCSV(f, dataframe.HasHeader(hasHeader))
	if err := df.Error(); err != nil {
		return df, errors.Wrapf(err, "parsing %s", path)
	}
	return df, nil
}

// JSONSource loads datasets from arrays of JSON records, optionally with a
// paired test file.
type JSONSource struct {
	testPath       string
	datasetOptions []func(*scrub.Dataset)
}

// JSONTestPath attaches a paired test file to the source.
func JSONTestPath(path string) func(*JSONSource) {
	return func(s *JSONSource) {
		s.testPath = path
	}
}

// JSONDatasetOptions forwards options to the datasets the source creates.
func JSONDatasetOptions(options ...func(*scrub.Dataset)) func(*JSONSource) {
	return func(s *JSONSource) {
		s.datasetOptions = options
	}
}

// NewJSONSource creates a json dataset source, configured through the
// optional functional arguments.
func NewJSONSource(options ...func(*JSONSource)) JSONSource {
	var s JSONSource
	for _, option := range options {
		option(&s)
	}
	return s
}

// Load parses the json file at path, and the paired test file when one is
// configured, into a dataset.
func (s JSONSource) Load(path string) (*scrub.Dataset, error) {
	train, err := readJSON(path)
	if err != nil {
		return nil, err
	}

	options := s.datasetOptions
	if len(s.testPath) > 0 {
		test, err := readJSON(s.testPath)
		if err != nil {
			return nil, err
		}
		options = append(options[:len(options):len(options)], scrub.WithTest(test))
	}

	ds := scrub.NewDataset(train, options...)
	if ds.Err != nil {
		return nil, ds.Err
	}
	return ds, nil
}

func readJSON(path string) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	df := dataframe.ReadJSON(f)
	if err := df.Error(); err != nil {
		return df, errors.Wrapf(err, "parsing %s", path)
	}
	return df, nil
}
