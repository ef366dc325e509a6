// Package imdb converts the IMDB relational CSV dump into the
// property-graph CSV layout. Every top-level entity or relationship
// file is handled by its own worker; workers own their output files
// exclusively and share no state.
package imdb

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/panjf2000/ants"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

type Converter struct {
	fs         afero.Fs
	datasetDir string
	outputDir  string
	log        *zap.SugaredLogger
}

func NewConverter(fs afero.Fs, log *zap.SugaredLogger, datasetDir, outputDir string) *Converter {
	return &Converter{
		fs:         fs,
		datasetDir: datasetDir,
		outputDir:  outputDir,
		log:        log,
	}
}

// Process runs every per-entity conversion on a worker pool and blocks
// until all of them finish. Worker failures are collected and fail the
// whole run; partial output files are left in place.
func (c *Converter) Process(workers int) error {
	if err := c.fs.MkdirAll(c.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tasks := []struct {
		name string
		fn   func() error
	}{
		{"title", c.processTitle},
		{"aka_title", c.processAkaTitle},
		{"company_name", c.processCompanyName},
		{"movie_companies", c.processMovieCompanies},
		{"movie_info", c.processMovieInfo},
		{"movie_info_idx", c.processMovieInfoIdx},
		{"keyword", c.processKeyword},
		{"movie_keyword", c.processMovieKeyword},
		{"movie_link", c.processMovieLink},
		{"name", c.processName},
		{"aka_name", c.processAkaName},
		{"person_info", c.processPersonInfo},
		{"character", c.processCharacter},
		{"cast_info", c.processCastInfo},
		{"complete_cast", c.processCompleteCast},
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return fmt.Errorf("failed to create worker pool: %w", err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	failures := make(chan error, len(tasks))

	for _, task := range tasks {
		task := task
		wg.Add(1)

		submitErr := pool.Submit(func() {
			defer wg.Done()

			c.log.Infof("processing %s", task.name)
			if err := task.fn(); err != nil {
				failures <- fmt.Errorf("%s: %w", task.name, err)
			}
		})
		if submitErr != nil {
			wg.Done()
			return fmt.Errorf("failed to submit %s: %w", task.name, submitErr)
		}
	}

	wg.Wait()
	close(failures)

	var errs []error
	for err := range failures {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// forEachRecord streams one input CSV. The IMDB dump quotes with
// double quotes and escapes with backslashes, so strict quote checking
// is off.
func (c *Converter) forEachRecord(name string, fn func(record []string) error) error {
	f, err := c.fs.Open(filepath.Join(c.datasetDir, name+".csv"))
	if err != nil {
		return fmt.Errorf("failed to open %s.csv: %w", name, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	for {
		record, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read %s.csv: %w", name, err)
		}

		if err := fn(record); err != nil {
			return err
		}
	}
}

type vertexFile struct {
	f afero.File
	w *csv.Writer
}

func (c *Converter) createVertexFile(name string) (*vertexFile, error) {
	f, err := c.fs.Create(filepath.Join(c.outputDir, name+".csv"))
	if err != nil {
		return nil, fmt.Errorf("failed to create %s.csv: %w", name, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{"id"}); err != nil {
		f.Close()
		return nil, err
	}

	return &vertexFile{f: f, w: w}, nil
}

func (v *vertexFile) Add(id int) error {
	return v.w.Write([]string{strconv.Itoa(id)})
}

func (v *vertexFile) Close() error {
	v.w.Flush()
	err := v.w.Error()
	if closeErr := v.f.Close(); err == nil {
		err = closeErr
	}

	return err
}

type edgeFile struct {
	f afero.File
	w *csv.Writer
}

func (c *Converter) createEdgeFile(name string) (*edgeFile, error) {
	f, err := c.fs.Create(filepath.Join(c.outputDir, name+".csv"))
	if err != nil {
		return nil, fmt.Errorf("failed to create %s.csv: %w", name, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{"src", "dst"}); err != nil {
		f.Close()
		return nil, err
	}

	return &edgeFile{f: f, w: w}, nil
}

func (e *edgeFile) Add(src, dst int) error {
	return e.w.Write([]string{strconv.Itoa(src), strconv.Itoa(dst)})
}

func (e *edgeFile) Close() error {
	e.w.Flush()
	err := e.w.Error()
	if closeErr := e.f.Close(); err == nil {
		err = closeErr
	}

	return err
}

// dedup assigns sequential vertex ids to distinct strings. Each
// instance is owned by a single worker.
type dedup struct {
	ids  map[string]int
	next int
}

func newDedup() *dedup {
	return &dedup{ids: make(map[string]int)}
}

func (d *dedup) get(key string) (id int, fresh bool) {
	if id, ok := d.ids[key]; ok {
		return id, false
	}

	id = d.next
	d.next++
	d.ids[key] = id

	return id, true
}

// closeOutput propagates a close failure into the worker's return; the
// final buffered flush happens inside Close, so dropping its error
// would report success over truncated output.
func closeOutput(err *error, f interface{ Close() error }) {
	if closeErr := f.Close(); *err == nil {
		*err = closeErr
	}
}

func stringField(record []string, i int) (string, error) {
	if i >= len(record) {
		return "", fmt.Errorf("record has %d fields, want at least %d", len(record), i+1)
	}

	return record[i], nil
}

func field(record []string, i int) (int, error) {
	if i >= len(record) {
		return 0, fmt.Errorf("record has %d fields, want at least %d", len(record), i+1)
	}

	v, err := strconv.Atoi(record[i])
	if err != nil {
		return 0, fmt.Errorf("invalid integer field %q: %w", record[i], err)
	}

	return v, nil
}
