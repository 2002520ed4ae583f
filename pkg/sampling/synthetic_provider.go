package sampling

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/eth-easl/decoplanner/pkg/workflow"
)

// SyntheticInputProvider draws seq/rand IO and network samples from
// per-type gonum distributions instead of reading CSV fixtures, for tests
// and local experimentation without the original trace corpus. IO
// throughput is modelled log-normal (always positive, matching the
// seqio/randio divisor constraint); network throughput is modelled
// exponential, both parameterized per type so faster types sample faster
// throughput.
type SyntheticInputProvider struct {
	NumTypes       int
	SamplesPerType int
	Seed           int64

	// WorkflowLoader supplies the DAG; SyntheticInputProvider itself only
	// owns performance-sample synthesis, mirroring CSVInputProvider's split.
	WorkflowLoader func(tag workflow.TopologyTag) (*workflow.Instance, error)

	// SpeedFactor[t] scales the per-type distribution's mean throughput;
	// larger is faster. Defaults to 1,2,4,8,... if nil.
	SpeedFactor []float64
}

func (p *SyntheticInputProvider) speedFactor(typ int) float64 {
	if p.SpeedFactor != nil && typ < len(p.SpeedFactor) {
		return p.SpeedFactor[typ]
	}
	return float64(uint(1) << uint(typ))
}

func (p *SyntheticInputProvider) LoadSamples() (seqIO, randIO, netUp, netDown [][]float32, err error) {
	rng := rand.New(rand.NewSource(uint64(p.Seed)))

	seqIO = p.sampleLogNormal(rng, 4.0)
	randIO = p.sampleLogNormal(rng, 3.0)
	netUp = p.sampleExponential(rng, 100.0)
	netDown = p.sampleExponential(rng, 100.0)

	return seqIO, randIO, netUp, netDown, nil
}

func (p *SyntheticInputProvider) sampleLogNormal(rng *rand.Rand, baseMu float64) [][]float32 {
	rows := make([][]float32, p.NumTypes)
	for typ := 0; typ < p.NumTypes; typ++ {
		dist := distuv.LogNormal{Mu: baseMu + math.Log(p.speedFactor(typ)+1), Sigma: 0.25, Src: rng}
		row := make([]float32, p.SamplesPerType)
		for j := range row {
			row[j] = float32(dist.Rand())
		}
		rows[typ] = row
	}
	return rows
}

func (p *SyntheticInputProvider) sampleExponential(rng *rand.Rand, baseRate float64) [][]float32 {
	rows := make([][]float32, p.NumTypes)
	for typ := 0; typ < p.NumTypes; typ++ {
		dist := distuv.Exponential{Rate: baseRate / p.speedFactor(typ), Src: rng}
		row := make([]float32, p.SamplesPerType)
		for j := range row {
			v := dist.Rand()
			if v <= 0 {
				v = 1e-3
			}
			row[j] = float32(v)
		}
		rows[typ] = row
	}
	return rows
}

// LoadWorkflow delegates to WorkflowLoader when configured; otherwise it
// falls back to a four-task diamond DAG sized for p.NumTypes, so a
// SyntheticInputProvider is usable out of the box for local
// experimentation and as a test fixture factory.
func (p *SyntheticInputProvider) LoadWorkflow(tag workflow.TopologyTag) (*workflow.Instance, error) {
	if p.WorkflowLoader != nil {
		return p.WorkflowLoader(tag)
	}

	cpuTime := make([]float32, p.NumTypes)
	for typ := range cpuTime {
		cpuTime[typ] = 30 / float32(p.speedFactor(typ)+1)
	}
	return workflow.NewDiamondInstance(cpuTime, 600, 0.95)
}
