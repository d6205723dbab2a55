package main

import (
	"fmt"
	"log"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/cheggaaa/pb/v3"
	"github.com/go-gota/gota/dataframe"
	"github.com/peterbourgon/diskv"

	"github.com/scrubml/scrub"
	"github.com/scrubml/scrub/analysis"
	"github.com/scrubml/scrub/output"
	"github.com/scrubml/scrub/pipeline"
	"github.com/scrubml/scrub/source"
)

var (
	name    = "scrub"
	version = "12.Aug.2021"
	author  = "scrubml"
)

type args struct {
	Input      string   `help:"Path to the dataset file" arg:"required,positional"`
	Test       string   `help:"Path to a paired test dataset" arg:"-t"`
	Output     string   `help:"Path to write the cleaned training dataset to" arg:"-o"`
	TestOutput string   `help:"Path to write the cleaned test dataset to"`
	Steps      []string `help:"Cleaning steps to apply, in order" arg:"-s,separate"`
	Columns    []string `help:"Columns to restrict the cleaning steps to" arg:"-c,separate"`
	Threshold  float64  `help:"Missing-value threshold for the drop steps" arg:"-m"`
	Neighbours int      `help:"Number of neighbours for knn imputation" arg:"-k"`
	Measure    []string `help:"Measurements to report for each column" arg:"-e,separate"`
	Format     string   `help:"Format of the measurement report (json or csv)" arg:"-f"`
	CacheDir   string   `help:"Directory for the on-disk measurement cache"`
}

func (args) Version() string {
	return version
}

func (args) Description() string {
	return fmt.Sprintf(`%s
@ %s
# %s`, name, author, version)
}

func main() {
	var args args
	args.Threshold = 0.5
	args.Neighbours = 5
	args.Format = "json"
	arg.MustParse(&args)

	if len(args.Steps) == 0 && len(args.Measure) == 0 {
		log.Fatalln("nothing to do, quitting")
	}

	executor := analysis.NewMemoryMeasurementExecutor()
	if len(args.CacheDir) > 0 {
		executor = analysis.NewDiskMeasurementExecutor(diskv.New(diskv.Options{
			BasePath:     args.CacheDir,
			Transform:    analysis.BlockTransform(8),
			CacheSizeMax: 4096 * 1024,
		}))
	}

	options := []func(*source.CSVSource){
		source.CSVDatasetOptions(scrub.WithExecutor(executor)),
	}
	if len(args.Test) > 0 {
		options = append(options, source.CSVTestPath(args.Test))
	}

	log.Println("loading dataset...")
	ds, err := source.NewCSVSource(options...).Load(args.Input)
	if err != nil {
		log.Fatalln(err)
	}

	steps := make([]pipeline.Step, len(args.Steps))
	for i, step := range args.Steps {
		steps[i], err = stepFor(step, args)
		if err != nil {
			log.Fatalln(err)
		}
	}

	if len(steps) > 0 {
		bar := pb.StartNew(len(steps))
		for _, step := range steps {
			ds = step.Apply(ds)
			if err := ds.Error(); err != nil {
				log.Fatalf("applying %s: %v", step.Name, err)
			}
			bar.Increment()
		}
		bar.Finish()
	}

	if len(args.Measure) > 0 {
		report, err := measure(ds, args)
		if err != nil {
			log.Fatalln(err)
		}
		fmt.Println(report)
	}

	if len(args.Output) > 0 {
		if err := writeCSV(ds.Train(), args.Output); err != nil {
			log.Fatalln(err)
		}
	}
	if len(args.TestOutput) > 0 {
		test, ok := ds.Test()
		if !ok {
			log.Fatalln("no test dataset was loaded")
		}
		if err := writeCSV(test, args.TestOutput); err != nil {
			log.Fatalln(err)
		}
	}
}

func stepFor(step string, args args) (pipeline.Step, error) {
	switch step {
	case "drop_columns_missing_threshold":
		return pipeline.DropColumnsMissingThreshold(args.Threshold), nil
	case "drop_rows_missing_threshold":
		return pipeline.DropRowsMissingThreshold(args.Threshold), nil
	case "drop_constant_columns":
		return pipeline.DropConstantColumns(), nil
	case "drop_unique_columns":
		return pipeline.DropUniqueColumns(), nil
	case "drop_duplicate_rows":
		return pipeline.DropDuplicateRows(args.Columns...), nil
	case "drop_duplicate_columns":
		return pipeline.DropDuplicateColumns(), nil
	case "replace_missing_remove_row":
		return pipeline.ReplaceMissingRemoveRow(args.Columns...), nil
	case "replace_missing_mean":
		return pipeline.ReplaceMissingMean(args.Columns...), nil
	case "replace_missing_median":
		return pipeline.ReplaceMissingMedian(args.Columns...), nil
	case "replace_missing_most_common":
		return pipeline.ReplaceMissingMostCommon(args.Columns...), nil
	case "replace_missing_new_category":
		return pipeline.ReplaceMissingNewCategory(args.Columns...), nil
	case "replace_missing_random_discrete":
		return pipeline.ReplaceMissingRandomDiscrete(args.Columns...), nil
	case "replace_missing_knn":
		return pipeline.ReplaceMissingKNN(args.Neighbours), nil
	case "replace_missing_interpolate":
		return pipeline.ReplaceMissingInterpolate(args.Columns...), nil
	case "replace_missing_forward_fill":
		return pipeline.ReplaceMissingForwardFill(args.Columns...), nil
	case "replace_missing_back_fill":
		return pipeline.ReplaceMissingBackFill(args.Columns...), nil
	case "replace_missing_indicator":
		return pipeline.ReplaceMissingIndicator(args.Columns...), nil
	}
	return pipeline.Step{}, fmt.Errorf("unknown cleaning step %s", step)
}

func measureFor(measure string) (analysis.Measurement, error) {
	switch measure {
	case "missing_fraction":
		return analysis.MissingFraction, nil
	case "unique_values":
		return analysis.UniqueValues, nil
	case "mean":
		return analysis.Mean, nil
	case "median":
		return analysis.Median, nil
	case "mode":
		return analysis.Mode, nil
	case "standard_deviation":
		return analysis.StandardDeviation, nil
	case "skewness":
		return analysis.Skewness, nil
	}
	return nil, fmt.Errorf("unknown measurement %s", measure)
}

func measure(ds *scrub.Dataset, args args) (string, error) {
	measurements := make([]analysis.Measurement, len(args.Measure))
	for i, m := range args.Measure {
		measurement, err := measureFor(m)
		if err != nil {
			return "", err
		}
		measurements[i] = measurement
	}

	var formatter output.MeasurementFormatter
	switch args.Format {
	case "json":
		formatter = output.JsonMeasurementFormatter
	case "csv":
		formatter = output.CsvMeasurementFormatter
	default:
		return "", fmt.Errorf("unknown report format %s", args.Format)
	}

	columns := ds.Columns()
	headers := make([]string, len(measurements))
	data := make([][]float64, len(measurements))
	for i, m := range measurements {
		headers[i] = m.Name()
		data[i] = make([]float64, len(columns))
	}
	for j, column := range columns {
		values, err := ds.Executor().Execute(ds.Train().Col(column), measurements...)
		if err != nil {
			return "", err
		}
		for i, v := range values {
			data[i][j] = v
		}
	}
	return formatter(columns, headers, data)
}

func writeCSV(df dataframe.DataFrame, path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0664)
	if err != nil {
		return err
	}
	defer f.Close()
	return df.WriteCSV(f)
}
