// Package ceg reads CEG estimation results and applies the estimator
// selection policy shared by the gCard and GLogS reporting pipelines.
package ceg

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/cardbench/benchconv/src/pattern"
)

// QueryShape classifies a query for estimator selection.
type QueryShape string

const (
	Acyclic QueryShape = "acyclic"
	Cyclic  QueryShape = "cyclic"
)

// Estimator column order inside a result row, after the two leading
// and one trailing bookkeeping columns are stripped.
const (
	AllMin = iota
	AllMax
	AllAvg
	MinMin
	MinMax
	MinAvg
	MaxMin
	MaxMax
	MaxAvg

	estimatorCount
)

// Result holds the nine estimator outputs of one CEG run plus the
// elapsed time reported on the second line of the result file.
type Result struct {
	Estimates [estimatorCount]float64
	Elapsed   float64
}

// ParseShape validates a user-supplied query shape selector.
func ParseShape(s string) (QueryShape, error) {
	switch QueryShape(s) {
	case Acyclic:
		return Acyclic, nil
	case Cyclic:
		return Cyclic, nil
	}

	return "", fmt.Errorf("invalid pattern type %q (want acyclic or cyclic)", s)
}

// Select picks the single reported estimate: max-max for acyclic
// queries, max-min for cyclic ones. The upstream comments hint at a
// finer triangle-only refinement for cyclic queries that was never
// implemented; the policy stays binary.
func (r *Result) Select(shape QueryShape) float64 {
	if shape == Acyclic {
		return r.Estimates[MaxMax]
	}

	return r.Estimates[MaxMin]
}

// ParseResult reads a CEG result file. The first line holds the
// comma-separated estimator columns (two leading and one trailing
// column are not estimators), the second line the elapsed seconds.
// Both lines are required.
func ParseResult(fs afero.Fs, path string) (*Result, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open result file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return nil, fmt.Errorf("result file %s is empty", path)
	}

	columns := strings.Split(strings.TrimSpace(scanner.Text()), ",")
	if len(columns) != estimatorCount+3 {
		return nil, fmt.Errorf(
			"result row has %d columns, want %d", len(columns), estimatorCount+3,
		)
	}

	var res Result
	for i, col := range columns[2 : len(columns)-1] {
		v, err := strconv.ParseFloat(strings.TrimSpace(col), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid estimate column %q: %w", col, err)
		}

		res.Estimates[i] = v
	}

	if !scanner.Scan() {
		return nil, fmt.Errorf("result file %s has no elapsed time line", path)
	}

	elapsed, err := strconv.ParseFloat(strings.TrimSpace(scanner.Text()), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid elapsed time line: %w", err)
	}

	res.Elapsed = elapsed

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read result file: %w", err)
	}

	return &res, nil
}

// Annotate writes a copy of the pattern at patternPath with the
// selected estimate recorded as its count.
func Annotate(fs afero.Fs, resultPath, patternPath string, shape QueryShape, outPath string) error {
	res, err := ParseResult(fs, resultPath)
	if err != nil {
		return err
	}

	p, err := pattern.Load(fs, patternPath)
	if err != nil {
		return err
	}

	return p.WithCount(res.Select(shape)).Save(fs, outPath)
}

// Report formats the selected estimate the way gCard and GLogS report
// theirs: "estimate,elapsed".
func Report(res *Result, shape QueryShape) string {
	return fmt.Sprintf("%v,%v", res.Select(shape), res.Elapsed)
}
