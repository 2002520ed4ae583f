package sampling

import "github.com/eth-easl/decoplanner/pkg/workflow"

// InputProvider is the out-of-scope collaborator named in spec.md §1: it
// supplies the workflow topology and the four per-type empirical sample
// arrays. Loading of the underlying trace/CSV formats is an external
// concern; CSVInputProvider and SyntheticInputProvider below are concrete
// adapters supplied for completeness and for tests, not the specified
// contract itself.
type InputProvider interface {
	// LoadSamples returns seqIO, randIO, netUp, netDown, each a [numTypes]
	// slice of at least samplesPerType float32 values.
	LoadSamples() (seqIO, randIO, netUp, netDown [][]float32, err error)

	// LoadWorkflow returns the DAG for a topology tag: the admission
	// ready-set size comes from workflow.TopologyTable, while the graph
	// shape, its task count and the task attributes are supplied by the
	// provider.
	LoadWorkflow(tag workflow.TopologyTag) (*workflow.Instance, error)
}
