package deadline

import (
	"math"

	"github.com/eth-easl/decoplanner/pkg/workflow"
)

// PriceFunc returns the on-demand hourly price of an instance type, used
// both to pick a cheapest-fit type and to decide which type's EstTime
// Assign subtracts from a successor's SubDeadline.
type PriceFunc func(typ int) float32

// Assign distributes inst.Deadline down to a per-task SubDeadline in
// reverse topological order, per spec.md §4.3: the sink's SubDeadline is
// the workflow Deadline itself; every other task's SubDeadline is the
// minimum, over its successors, of (successor's SubDeadline minus the
// successor's cheapest-type EstTime), so that a task always has enough
// slack left for every downstream task to run at its cheapest type. Ties among successors are broken by smaller task id, matching
// Instance.TopologicalOrder's tie rule.
func Assign(inst *workflow.Instance, price PriceFunc) error {
	if len(inst.Tasks) == 0 {
		return workflow.ErrEmptyDag
	}

	sinkID := inst.SinkID()
	inst.Tasks[sinkID].SubDeadline = inst.Deadline

	for _, id := range inst.ReverseTopologicalOrder() {
		if id == sinkID {
			continue
		}
		task := inst.Tasks[id]

		successors := inst.Successors[id]
		if len(successors) == 0 {
			// A non-sink task with no successors only occurs in a malformed
			// DAG; fall back to the sink's own budget rather than panic.
			task.SubDeadline = inst.Tasks[sinkID].SubDeadline
			continue
		}

		slack := math.Inf(1)
		for _, succID := range successors {
			succ := inst.Tasks[succID]
			cheapest := succ.CheapestType(price)
			candidate := succ.SubDeadline - float64(succ.EstTime[cheapest])
			if candidate < slack {
				slack = candidate
			}
		}
		task.SubDeadline = slack
	}

	return nil
}

// InstanceConfig picks each task's initial AssignedType, per spec.md §4.4:
// the cheapest type whose EstTime fits within the task's own slack (its
// SubDeadline minus its predecessors' finish time, approximated here by
// the task's SubDeadline itself since Assign has already propagated
// downstream slack into it), falling back to the fastest type when no
// type fits. Assign must run first.
func InstanceConfig(inst *workflow.Instance, price PriceFunc) {
	for _, task := range inst.Tasks {
		fits := -1
		var fitsCost float32
		for typ, est := range task.EstTime {
			if float64(est) > task.SubDeadline {
				continue
			}
			cost := workflow.BillingHours(est) * price(typ)
			if fits < 0 || cost < fitsCost {
				fits = typ
				fitsCost = cost
			}
		}
		if fits < 0 {
			task.AssignedType = task.FastestType()
			continue
		}
		task.AssignedType = fits
	}
}
