package simulate

import "github.com/eth-easl/decoplanner/pkg/workflow"

// job is one admitted workflow instance inside a single replica. inst is a
// private clone of the base Instance (sharing the read-only sample arena);
// states is the mutable per-task runtime overlay, indexed in parallel with
// inst.Tasks, never shared with any other job or replica.
type job struct {
	inst        *workflow.Instance
	states      []workflow.RuntimeState
	arrivalTime float64
	deadline    float64
	admitted    bool
}

func newJob(base *workflow.Instance, arrivalTime float64) *job {
	inst := base.Clone()
	for _, task := range inst.Tasks {
		task.SubDeadline += arrivalTime
	}
	return &job{
		inst:        inst,
		states:      workflow.NewRuntimeStates(len(inst.Tasks)),
		arrivalTime: arrivalTime,
		deadline:    base.Deadline,
	}
}

// admit marks the initial Ready/NotReady split per the instance's topology
// shape and immediately finishes the structural source and sink, per
// spec.md §7.1.
func (j *job) admit() error {
	ready, notReady, err := j.inst.AdmissionReadySet()
	if err != nil {
		return err
	}
	for _, id := range ready {
		j.states[id].Status = workflow.Ready
		j.states[id].ReadyCountdown = -1
		j.states[id].RestTime = 0
	}
	for _, id := range notReady {
		j.states[id].Status = workflow.NotReady
		j.states[id].ReadyCountdown = -1
		j.states[id].RestTime = 0
	}
	j.states[j.inst.SourceID()].Status = workflow.Finished
	j.states[j.inst.SinkID()].Status = workflow.Finished
	j.admitted = true
	return nil
}

// unfinished reports whether any task in the job still has work left.
func (j *job) unfinished() bool {
	for _, s := range j.states {
		if s.Status != workflow.Finished {
			return true
		}
	}
	return false
}

// readyTaskIDs returns every task id that is either already Ready, or
// whose predecessors have all Finished and that is not yet
// Scheduled/Finished itself, per the reference's ready_task discovery
// (_examples/original_source/spot/Autoscaling.cpp lines 289-308).
func (j *job) readyTaskIDs() []int {
	var ready []int
	for id := range j.inst.Tasks {
		state := j.states[id]
		if state.Status == workflow.Ready {
			ready = append(ready, id)
			continue
		}
		if state.Status == workflow.Scheduled || state.Status == workflow.Finished {
			continue
		}
		allFinished := len(j.inst.Predecessors[id]) > 0
		for _, pred := range j.inst.Predecessors[id] {
			if j.states[pred].Status != workflow.Finished {
				allFinished = false
				break
			}
		}
		if allFinished {
			ready = append(ready, id)
		}
	}
	return ready
}
