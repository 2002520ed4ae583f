package workflow

import "fmt"

// TopologyTag identifies the shape of a scientific workflow DAG. The
// planner does not generate these shapes itself — an InputProvider supplies
// the actual graph — but the tag determines the admission-time ready set
// per Shape, exactly as the original simulator's type-indexed if/else chain
// did (_examples/original_source/spot/Autoscaling.cpp lines 222-252).
type TopologyTag string

const (
	Montage     TopologyTag = "montage"
	Montage100  TopologyTag = "montage100"
	Montage1000 TopologyTag = "montage1000"
	Ligo        TopologyTag = "ligo"
	Ligo100     TopologyTag = "ligo100"
	Ligo1000    TopologyTag = "ligo1000"
	Epigenome   TopologyTag = "epigenome"
	Epi100      TopologyTag = "epi100"
	Epi1000     TopologyTag = "epi1000"

	// Diamond and Chain are not reference topologies; they exist for tests
	// and local experimentation with a DAG small enough to inspect by hand.
	Diamond TopologyTag = "diamond"
	Chain   TopologyTag = "chain"
)

// Shape is the (numtasks, readys) pair associated with a TopologyTag: the
// total task count of the workflow and the number of tasks made Ready
// (rather than NotReady) as soon as a job of this shape is admitted.
type Shape struct {
	NumTasks int
	Readys   int
}

// TopologyTable holds the exact constants read out of the reference
// simulator. Treated as table data, per spec's Open Question resolution —
// values are not derived, they are copied verbatim from the source.
var TopologyTable = map[TopologyTag]Shape{
	Montage:     {NumTasks: 20, Readys: 4},
	Montage100:  {NumTasks: 100, Readys: 16},
	Montage1000: {NumTasks: 1000, Readys: 166},
	Ligo:        {NumTasks: 40, Readys: 9},
	Ligo100:     {NumTasks: 100, Readys: 23},
	Ligo1000:    {NumTasks: 1000, Readys: 229},
	Epigenome:   {NumTasks: 20, Readys: 1},
	Epi100:      {NumTasks: 100, Readys: 1},
	Epi1000:     {NumTasks: 997, Readys: 7},

	// Source(0) -> {1,2} -> Sink(3): both middle tasks ready on admission.
	Diamond: {NumTasks: 4, Readys: 2},
	// Source(0) -> 1 -> 2 -> Sink(3): one task ready on admission.
	Chain: {NumTasks: 4, Readys: 1},
}

// ShapeOf looks up the Shape for a tag, failing the way the reference's
// "what is the dag type?" branch does for an unrecognized one.
func ShapeOf(tag TopologyTag) (Shape, error) {
	shape, ok := TopologyTable[tag]
	if !ok {
		return Shape{}, fmt.Errorf("what is the dag type? %q: %w", tag, ErrUnknownTopology)
	}
	return shape, nil
}
