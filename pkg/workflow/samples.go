package workflow

// NewDiamondInstance builds a four-task Source -> {A, B} -> Sink DAG for
// the Diamond TopologyTag, used both by unit tests across the module and
// as SyntheticInputProvider's default workflow when no WorkflowLoader is
// configured. cpuTime[t] is the per-type compute cost shared by every
// task; deadline and meetDeadline are the workflow-level attributes from
// spec.md §3.
func NewDiamondInstance(cpuTime []float32, deadline, meetDeadline float64) (*Instance, error) {
	tasks := []*Task{
		NewTask(0, cloneRates(cpuTime, 0)),
		NewTask(1, cloneRates(cpuTime, 1)),
		NewTask(2, cloneRates(cpuTime, 1)),
		NewTask(3, cloneRates(cpuTime, 0)),
	}
	setDataAttributes(tasks[1], 5_000, 5_000, 5_000, 5_000)
	setDataAttributes(tasks[2], 5_000, 5_000, 5_000, 5_000)

	edges := [][2]int{{0, 1}, {0, 2}, {1, 3}, {2, 3}}
	return NewInstance(tasks, edges, deadline, meetDeadline, Diamond, len(cpuTime))
}

// NewChainInstance builds a four-task Source -> 1 -> 2 -> Sink DAG for the
// Chain TopologyTag.
func NewChainInstance(cpuTime []float32, deadline, meetDeadline float64) (*Instance, error) {
	tasks := []*Task{
		NewTask(0, cloneRates(cpuTime, 0)),
		NewTask(1, cloneRates(cpuTime, 1)),
		NewTask(2, cloneRates(cpuTime, 1)),
		NewTask(3, cloneRates(cpuTime, 0)),
	}
	setDataAttributes(tasks[1], 5_000, 5_000, 5_000, 5_000)
	setDataAttributes(tasks[2], 5_000, 5_000, 5_000, 5_000)

	edges := [][2]int{{0, 1}, {1, 2}, {2, 3}}
	return NewInstance(tasks, edges, deadline, meetDeadline, Chain, len(cpuTime))
}

// cloneRates returns a copy of cpuTime scaled by factor, so the structural
// source/sink (factor 0) never contribute compute cost while ordinary
// tasks (factor 1) use cpuTime as given.
func cloneRates(cpuTime []float32, factor float32) []float32 {
	rates := make([]float32, len(cpuTime))
	for i, v := range cpuTime {
		rates[i] = v * factor
	}
	return rates
}

func setDataAttributes(t *Task, transData, recData, readData, seqData float32) {
	t.TransData = transData
	t.RecData = recData
	t.ReadData = readData
	t.SeqData = seqData
}
