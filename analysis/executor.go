package analysis

import (
	"hash/fnv"
	"io"
	"strconv"

	"github.com/go-gota/gota/series"
	lru "github.com/hashicorp/golang-lru"
	"github.com/peterbourgon/diskv"
)

// MeasurementExecutor executes measurements over columns, memoising the
// computed statistics so repeated passes over the same data are free.
type MeasurementExecutor interface {
	Execute(s series.Series, measurements ...Measurement) ([]float64, error)
}

// BlockTransform determines how the on-disk store should partition folders.
func BlockTransform(blockSize int) func(string) []string {
	return func(s string) []string {
		var (
			sliceSize = len(s) / blockSize
			pathSlice = make([]string, sliceSize)
		)
		for i := 0; i < sliceSize; i++ {
			from, to := i*blockSize, (i*blockSize)+blockSize
			pathSlice[i] = s[from:to]
		}
		return pathSlice
	}
}

type memoryMeasurementExecutor struct {
	cache map[string]float64
}

// NewMemoryMeasurementExecutor creates a measurement executor memoising
// results in a regular go map.
func NewMemoryMeasurementExecutor() MeasurementExecutor {
	return &memoryMeasurementExecutor{cache: make(map[string]float64)}
}

func (m *memoryMeasurementExecutor) Execute(s series.Series, measurements ...Measurement) ([]float64, error) {
	results := make([]float64, len(measurements))
	for i, measurement := range measurements {
		key := hashMeasurement(s, measurement)
		if v, ok := m.cache[key]; ok {
			results[i] = v
			continue
		}
		v, err := measurement.Execute(s)
		if err != nil {
			return nil, err
		}
		m.cache[key] = v
		results[i] = v
	}
	return results, nil
}

type diskMeasurementExecutor struct {
	store  *diskv.Diskv
	recent *lru.Cache
}

// NewDiskMeasurementExecutor creates a measurement executor backed by an
// on-disk store with an in-memory recency cache in front of it.
func NewDiskMeasurementExecutor(store *diskv.Diskv) MeasurementExecutor {
	recent, err := lru.New(4096)
	if err != nil {
		panic(err)
	}
	return &diskMeasurementExecutor{store: store, recent: recent}
}

func (d *diskMeasurementExecutor) Execute(s series.Series, measurements ...Measurement) ([]float64, error) {
	results := make([]float64, len(measurements))
	for i, measurement := range measurements {
		key := hashMeasurement(s, measurement)
		if v, ok := d.recent.Get(key); ok {
			results[i] = v.(float64)
			continue
		}
		if b, err := d.store.Read(key); err == nil {
			v, err := strconv.ParseFloat(string(b), 64)
			if err == nil {
				d.recent.Add(key, v)
				results[i] = v
				continue
			}
		}

		v, err := measurement.Execute(s)
		if err != nil {
			return nil, err
		}
		if err := d.store.Write(key, []byte(strconv.FormatFloat(v, 'f', -1, 64))); err != nil {
			return nil, err
		}
		d.recent.Add(key, v)
		results[i] = v
	}
	return results, nil
}

// hashMeasurement computes a cache key for a measurement applied to a column.
// The column contents participate so mutated columns never hit stale entries.
func hashMeasurement(s series.Series, m Measurement) string {
	h := fnv.New64a()
	io.WriteString(h, m.Name())
	io.WriteString(h, s.Name)
	for _, r := range s.Records() {
		io.WriteString(h, r)
		h.Write([]byte{0x1f})
	}
	return strconv.FormatUint(h.Sum64(), 10)
}
