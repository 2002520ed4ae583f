package search

import (
	"context"

	"github.com/eth-easl/decoplanner/pkg/common"
	"github.com/eth-easl/decoplanner/pkg/costmodel"
	"github.com/eth-easl/decoplanner/pkg/workflow"
)

// EnsembleResult is the outcome of planning Ensemble mode: spec.md §4.4
// defines its cost as summing, per workflow, the cheapest type satisfying
// that workflow's deadline, and §8 scenario 4 describes A* choosing types
// "per-job independently" with globalBestCost as the sum of per-job
// cheapest-feasible costs. This is a workflow-level assignment (one
// uniform type across every task of a workflow), not the per-task
// assignment Planner.Search produces for DeadlineApp mode.
type EnsembleResult struct {
	// Assignments[i] is instances[i]'s uniform per-task assignment: every
	// element equal to the type chosen for that workflow.
	Assignments [][]int
	Cost        float32
}

// PlanEnsemble selects, independently for every instance, the cheapest
// type from the evaluator's two-price-tier shortlist (costmodel.
// EnsembleShortlist, resolving spec.md §9's t∈{0,1} open question) whose
// uniform assignment across that workflow is feasible, and sums the
// per-workflow costs into the result. Unlike Planner.Search, there is no
// shared Open/Closed frontier here: each workflow's cheapest-feasible type
// is independent of every other workflow's choice, so no joint search is
// needed to reach the sum described by scenario 4.
func PlanEnsemble(ctx context.Context, evaluator *costmodel.Evaluator, instances []*workflow.Instance) (EnsembleResult, error) {
	result := EnsembleResult{Assignments: make([][]int, len(instances))}

	for i, inst := range instances {
		select {
		case <-ctx.Done():
			return EnsembleResult{}, ctx.Err()
		default:
		}

		assignment, cost, err := cheapestUniformType(evaluator, inst)
		if err != nil {
			return EnsembleResult{}, err
		}
		result.Assignments[i] = assignment
		result.Cost += cost
	}

	return result, nil
}

// cheapestUniformType returns the cheapest feasible uniform assignment for
// inst among evaluator's shortlisted types, or common.ErrNoFeasibleSolution
// if none of the shortlisted types meets inst's deadline.
func cheapestUniformType(evaluator *costmodel.Evaluator, inst *workflow.Instance) ([]int, float32, error) {
	best := -1
	var bestCost float32
	for _, typ := range evaluator.EnsembleShortlist(inst.NumTypes) {
		assignment := uniformAssignment(len(inst.Tasks), typ)
		if !evaluator.Feasible(inst, assignment) {
			continue
		}
		cost := evaluator.Cost(inst, assignment)
		if best < 0 || cost < bestCost {
			best = typ
			bestCost = cost
		}
	}
	if best < 0 {
		return nil, 0, common.ErrNoFeasibleSolution
	}
	return uniformAssignment(len(inst.Tasks), best), bestCost, nil
}

func uniformAssignment(numTasks, typ int) []int {
	assignment := make([]int, numTasks)
	for i := range assignment {
		assignment[i] = typ
	}
	return assignment
}
