package workflow

import (
	"sort"
)

// Instance is a DAG of Tasks plus the workflow-level attributes from
// spec.md §3: Deadline, MeetDeadlineProbability ("meet_dl"), ArrivalTime,
// and the topology Tag that determines admission-time readiness. Source is
// always vertex 0, Sink is always len(Tasks)-1.
type Instance struct {
	Tasks []*Task

	// Successors[i] holds the vertex ids reachable by one edge from task i;
	// Predecessors[i] holds the vertex ids with an edge into task i.
	Successors   [][]int
	Predecessors [][]int

	Deadline                float64
	MeetDeadlineProbability float64
	ArrivalTime             float64
	Tag                     TopologyTag
	NumTypes                int

	// topoOrder caches the forward topological order, computed once and
	// reused by the deadline assigner, the cost evaluator and the search,
	// and shared by Clone.
	topoOrder []int
}

func (inst *Instance) SourceID() int { return 0 }
func (inst *Instance) SinkID() int   { return len(inst.Tasks) - 1 }

// NewInstance builds an Instance from an explicit edge list (src -> dst)
// over numTasks vertices 0..numTasks-1, vertex 0 the source and
// numTasks-1 the sink, validating acyclicity immediately.
func NewInstance(tasks []*Task, edges [][2]int, deadline, meetDeadline float64, tag TopologyTag, numTypes int) (*Instance, error) {
	if len(tasks) == 0 {
		return nil, ErrEmptyDag
	}

	n := len(tasks)
	successors := make([][]int, n)
	predecessors := make([][]int, n)
	for _, e := range edges {
		successors[e[0]] = append(successors[e[0]], e[1])
		predecessors[e[1]] = append(predecessors[e[1]], e[0])
	}

	inst := &Instance{
		Tasks:                   tasks,
		Successors:              successors,
		Predecessors:            predecessors,
		Deadline:                deadline,
		MeetDeadlineProbability: meetDeadline,
		Tag:                     tag,
		NumTypes:                numTypes,
	}

	order, err := topologicalOrder(successors, predecessors)
	if err != nil {
		return nil, err
	}
	inst.topoOrder = order

	return inst, nil
}

// TopologicalOrder returns the cached forward topological order (source
// first, sink last), ties among simultaneously-ready vertices broken by
// smaller id, per spec.md §4.3.
func (inst *Instance) TopologicalOrder() []int { return inst.topoOrder }

// ReverseTopologicalOrder returns TopologicalOrder reversed (sink first),
// used by the Deadline Assigner.
func (inst *Instance) ReverseTopologicalOrder() []int {
	order := inst.topoOrder
	rev := make([]int, len(order))
	for i, v := range order {
		rev[len(order)-1-i] = v
	}
	return rev
}

func topologicalOrder(successors, predecessors [][]int) ([]int, error) {
	n := len(successors)
	inDegree := make([]int, n)
	for v := range predecessors {
		inDegree[v] = len(predecessors[v])
	}

	// A min-heap-free Kahn's algorithm: keep the ready set sorted by id at
	// each step so ties break by smaller vertex id, per spec.md's tie rule.
	ready := make([]int, 0, n)
	for v := 0; v < n; v++ {
		if inDegree[v] == 0 {
			ready = append(ready, v)
		}
	}
	sort.Ints(ready)

	order := make([]int, 0, n)
	for len(ready) > 0 {
		v := ready[0]
		ready = ready[1:]
		order = append(order, v)

		for _, succ := range successors[v] {
			inDegree[succ]--
			if inDegree[succ] == 0 {
				pos := sort.SearchInts(ready, succ)
				ready = append(ready, 0)
				copy(ready[pos+1:], ready[pos:])
				ready[pos] = succ
			}
		}
	}

	if len(order) != n {
		return nil, ErrCyclic
	}
	return order, nil
}

// Clone returns an Instance sharing the arena (Successors, Predecessors,
// topoOrder, and every derived per-(type,sample) vector) with its own copy
// of each Task struct, so it can carry its own AssignedType/SubDeadline
// overlay — used by the simulator's per-job/per-replica copies and by the
// CLI's ensemble job list; the topology and probestTime tables are
// referenced, never mutated.
func (inst *Instance) Clone() *Instance {
	clone := *inst
	clone.Tasks = make([]*Task, len(inst.Tasks))
	for i, t := range inst.Tasks {
		taskCopy := *t
		clone.Tasks[i] = &taskCopy
	}
	return &clone
}

// AdmissionReadySet returns the task ids made Ready vs NotReady when a job
// of this Instance's Tag is admitted, per spec.md §4.6: the structural
// source and sink are not included — callers mark those Finished
// immediately.
func (inst *Instance) AdmissionReadySet() (ready, notReady []int, err error) {
	shape, err := ShapeOf(inst.Tag)
	if err != nil {
		return nil, nil, err
	}

	n := len(inst.Tasks)
	for id := 1; id < n-1 && id <= shape.Readys; id++ {
		ready = append(ready, id)
	}
	for id := shape.Readys + 1; id < n-1; id++ {
		notReady = append(notReady, id)
	}
	return ready, notReady, nil
}
