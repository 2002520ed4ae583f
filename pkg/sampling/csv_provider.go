package sampling

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/eth-easl/decoplanner/pkg/common"
	"github.com/eth-easl/decoplanner/pkg/workflow"
)

// CSVInputProvider reads the four empirical performance tables from the
// text format the original simulator reads with fopen/fgets — one float
// per line, RawSamplesPerType lines per instance type, concatenated across
// types (_examples/original_source/spot/Autoscaling.cpp lines 41-107). Only
// the first SamplesPerType lines of each type's block are used.
//
// Workflow topology loading is delegated to WorkflowLoader, since the DAX/
// Pegasus topology format itself is out of scope for this planner (spec.md
// §1) — CSVInputProvider only wires the two file-reading concerns together
// behind one InputProvider.
type CSVInputProvider struct {
	Dir            string
	NumTypes       int
	SamplesPerType int
	WorkflowLoader func(tag workflow.TopologyTag) (*workflow.Instance, error)
}

func NewCSVInputProvider(dir string, numTypes, samplesPerType int) *CSVInputProvider {
	return &CSVInputProvider{Dir: dir, NumTypes: numTypes, SamplesPerType: samplesPerType}
}

func (p *CSVInputProvider) LoadSamples() (seqIO, randIO, netUp, netDown [][]float32, err error) {
	seqIO, err = p.readTable("seqio.csv")
	if err != nil {
		return nil, nil, nil, nil, err
	}
	randIO, err = p.readTable("randio.csv")
	if err != nil {
		return nil, nil, nil, nil, err
	}
	netUp, err = p.readTable("netup.csv")
	if err != nil {
		return nil, nil, nil, nil, err
	}
	netDown, err = p.readTable("netdown.csv")
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return seqIO, randIO, netUp, netDown, nil
}

func (p *CSVInputProvider) LoadWorkflow(tag workflow.TopologyTag) (*workflow.Instance, error) {
	if p.WorkflowLoader == nil {
		return nil, fmt.Errorf("csv input provider: no workflow loader configured for tag %q", tag)
	}
	return p.WorkflowLoader(tag)
}

// readTable reads one RawSamplesPerType*NumTypes-line CSV-as-one-value file
// and returns the first SamplesPerType values of each per-type block.
func (p *CSVInputProvider) readTable(name string) ([][]float32, error) {
	path := filepath.Join(p.Dir, name)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", name, common.ErrInputMissing)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	raw := make([]float32, 0, p.NumTypes*common.RawSamplesPerType)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		for _, field := range record {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			v, err := strconv.ParseFloat(field, 32)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			raw = append(raw, float32(v))
		}
	}

	if len(raw) < p.NumTypes*common.RawSamplesPerType {
		return nil, fmt.Errorf("%s: want %d values, got %d: %w", name, p.NumTypes*common.RawSamplesPerType, len(raw), common.ErrInputMissing)
	}

	result := make([][]float32, p.NumTypes)
	for typ := 0; typ < p.NumTypes; typ++ {
		start := typ * common.RawSamplesPerType
		result[typ] = append([]float32(nil), raw[start:start+p.SamplesPerType]...)
	}
	return result, nil
}

// ReadArrivalTimes reads an arrivaltime_integer_<lambda>.txt file: the
// first two lines are ignored (lambda header, the zero-arrival first job),
// and numJobs-1 monotonically increasing float arrival times follow, one
// per subsequent job (_examples/original_source/spot/Autoscaling.cpp lines
// 153-184).
func ReadArrivalTimes(path string, numJobs int) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", filepath.Base(path), common.ErrInputMissing)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() { // lambda line
		return nil, fmt.Errorf("%s: truncated: %w", path, common.ErrInputMissing)
	}
	if !scanner.Scan() { // leading zero-arrival line
		return nil, fmt.Errorf("%s: truncated: %w", path, common.ErrInputMissing)
	}

	arrivals := make([]float64, 0, common.MaxOf(numJobs-1, 0))
	for len(arrivals) < numJobs-1 && scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		v, err := strconv.ParseFloat(line, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		arrivals = append(arrivals, v)
	}

	if len(arrivals) < numJobs-1 {
		return nil, fmt.Errorf("%s: want %d arrivals, got %d: %w", path, numJobs-1, len(arrivals), common.ErrInputMissing)
	}

	return arrivals, nil
}
