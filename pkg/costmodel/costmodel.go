// Package costmodel prices an instance-type assignment and checks its
// probabilistic feasibility against a workflow's deadline, per spec.md §5.
package costmodel

import (
	"github.com/eth-easl/decoplanner/pkg/common"
	"github.com/eth-easl/decoplanner/pkg/workflow"
)

// PricingTable is the out-of-scope collaborator that supplies per-type
// on-demand hourly prices, mirroring InputProvider's role for sample data.
type PricingTable interface {
	PricePerHour(typ int) float32
}

// FlatPricing is a PricingTable backed by a literal per-type price slice,
// used both by tests and by the CLI's JSON-configured price list.
type FlatPricing []float32

func (p FlatPricing) PricePerHour(typ int) float32 {
	if typ < 0 || typ >= len(p) {
		return 0
	}
	return p[typ]
}

// Evaluator prices and validates a candidate assignment for a single Mode.
// deadlineApp and ensemble share the same cost formula; FollowSun is
// deliberately unimplemented (spec.md's Non-goals) and rejected at
// construction.
type Evaluator struct {
	Mode    common.Mode
	Pricing PricingTable
}

func NewEvaluator(mode common.Mode, pricing PricingTable) (*Evaluator, error) {
	if mode == common.FollowSun {
		return nil, common.ErrUnsupportedMode
	}
	return &Evaluator{Mode: mode, Pricing: pricing}, nil
}

// Cost sums, over every task, ceil(estTime[assignedType]/3600) hours priced
// at that type's PricePerHour, per spec.md §5.1's billing-hour rounding.
func (e *Evaluator) Cost(inst *workflow.Instance, assignment []int) float32 {
	var total float32
	for id, task := range inst.Tasks {
		typ := assignment[id]
		total += workflow.BillingHours(task.EstTime[typ]) * e.Pricing.PricePerHour(typ)
	}
	return total
}

// Feasible reports whether a deterministic forward list-scheduling pass
// over assignment finishes the sink by inst.Deadline, per spec.md §4.4:
// "true iff the scheduled finish of the sink <= deadline ... computed with
// a deterministic list-scheduling pass using estTime". Each task's start
// time is the latest finish among its predecessors (the source starts at
// 0); this is deliberately not a per-task SubDeadline comparison, since
// SubDeadline is a backward slack allocation computed from each
// successor's cheapest-type estimate and does not reflect the actual,
// possibly-slower-than-cheapest type chosen upstream under assignment.
func (e *Evaluator) Feasible(inst *workflow.Instance, assignment []int) bool {
	finish := make([]float64, len(inst.Tasks))
	for _, id := range inst.TopologicalOrder() {
		task := inst.Tasks[id]
		typ := assignment[id]
		if typ < 0 || typ >= len(task.EstTime) {
			return false
		}

		var start float64
		for _, pred := range inst.Predecessors[id] {
			if finish[pred] > start {
				start = finish[pred]
			}
		}
		finish[id] = start + float64(task.EstTime[typ])
	}
	return finish[inst.SinkID()] <= inst.Deadline
}

// LowerBound returns an admissible lower bound on the remaining cost of a
// partial assignment: every unassigned task (index >= from in
// inst.TopologicalOrder) contributes its own cheapest-type cost, matching
// the reference search's f = g + h split (spec.md §6.2).
func (e *Evaluator) LowerBound(inst *workflow.Instance, assignment []int, from int) float32 {
	var bound float32
	order := inst.TopologicalOrder()
	for _, id := range order[from:] {
		task := inst.Tasks[id]
		cheapest := task.CheapestType(e.Pricing.PricePerHour)
		bound += workflow.BillingHours(task.EstTime[cheapest]) * e.Pricing.PricePerHour(cheapest)
	}
	return bound
}
