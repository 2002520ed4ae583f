package search

import (
	"context"
	"testing"

	"github.com/eth-easl/decoplanner/pkg/common"
	"github.com/eth-easl/decoplanner/pkg/costmodel"
	"github.com/eth-easl/decoplanner/pkg/workflow"
)

func diamondForSearch(t *testing.T, estTimes [][]float32, deadline float64) *workflow.Instance {
	t.Helper()
	inst, err := workflow.NewDiamondInstance(make([]float32, len(estTimes[0])), deadline, 0.9)
	if err != nil {
		t.Fatalf("NewDiamondInstance: %v", err)
	}
	for id, task := range inst.Tasks {
		task.EstTime = append([]float32(nil), estTimes[id]...)
	}
	return inst
}

func TestSearchKeepsMiddleTasksOnCheapTypeUnderGenerousDeadline(t *testing.T) {
	// Type 0 is fast/expensive, type 1 is slow/cheap. Under a generous
	// deadline the cheapest feasible assignment puts both middle tasks on
	// the cheaper type; the greedy cheapest-fit seed already does so, and
	// the search must not return anything that moves them off it.
	inst := diamondForSearch(t, [][]float32{
		{0, 0},
		{100, 1800},
		{100, 1800},
		{0, 0},
	}, 3600)

	eval, err := costmodel.NewEvaluator(common.DeadlineApp, costmodel.FlatPricing{10, 1})
	if err != nil {
		t.Fatalf("NewEvaluator: %v", err)
	}
	planner := NewPlanner(eval, 4, 1000)

	best, err := planner.Search(context.Background(), inst)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if best.Assignment[1] != 1 || best.Assignment[2] != 1 {
		t.Errorf("want both middle tasks on the cheap type 1, got assignment=%v", best.Assignment)
	}
	if !eval.Feasible(inst, best.Assignment) {
		t.Errorf("returned assignment is not feasible: %v", best.Assignment)
	}
}

func TestSearchReturnsNoFeasibleSolutionWhenDeadlineUnreachable(t *testing.T) {
	inst := diamondForSearch(t, [][]float32{
		{0, 0},
		{10_000, 9_000},
		{10_000, 9_000},
		{0, 0},
	}, 1)

	eval, _ := costmodel.NewEvaluator(common.DeadlineApp, costmodel.FlatPricing{10, 1})
	planner := NewPlanner(eval, 4, 1000)

	if _, err := planner.Search(context.Background(), inst); err != common.ErrNoFeasibleSolution {
		t.Errorf("want ErrNoFeasibleSolution, got %v", err)
	}
}

func TestSearchRespectsBudgetWithoutErroring(t *testing.T) {
	inst := diamondForSearch(t, [][]float32{
		{0, 0},
		{100, 1800},
		{100, 1800},
		{0, 0},
	}, 3600)

	eval, _ := costmodel.NewEvaluator(common.DeadlineApp, costmodel.FlatPricing{10, 1})
	planner := NewPlanner(eval, 1, 1) // budget exhausted after the very first batch

	best, err := planner.Search(context.Background(), inst)
	if err != nil {
		t.Fatalf("a tiny budget should still return the seeded solution, got error: %v", err)
	}
	if len(best.Assignment) != 4 {
		t.Errorf("want a complete seeded assignment, got %v", best.Assignment)
	}
}

func TestPlanEnsembleChoosesCheapestShortlistedTypePerJobIndependently(t *testing.T) {
	inst := diamondForSearch(t, [][]float32{
		{0, 0, 0},
		{100, 1800, 1800},
		{100, 1800, 1800},
		{0, 0, 0},
	}, 3600)

	// Type 2 is the cheapest but Ensemble mode's shortlist is the two
	// cheapest-priced types (1 and 2 here, since price order is 10,3,1);
	// type 0 should never appear in the result, and the two identical jobs
	// should each land on type 2 (cheaper of the shortlist and feasible).
	eval, err := costmodel.NewEvaluator(common.Ensemble, costmodel.FlatPricing{10, 3, 1})
	if err != nil {
		t.Fatalf("NewEvaluator: %v", err)
	}

	result, err := PlanEnsemble(context.Background(), eval, []*workflow.Instance{inst, inst.Clone()})
	if err != nil {
		t.Fatalf("PlanEnsemble: %v", err)
	}
	if len(result.Assignments) != 2 {
		t.Fatalf("want 2 per-job assignments, got %d", len(result.Assignments))
	}
	for job, assignment := range result.Assignments {
		for id, typ := range assignment {
			if typ == 0 {
				t.Errorf("job %d task %d assigned shortlist-excluded type 0", job, id)
			}
			if typ != assignment[0] {
				t.Errorf("job %d task %d type %d is not uniform with task 0's type %d", job, id, typ, assignment[0])
			}
		}
	}
	if result.Cost != eval.Cost(inst, result.Assignments[0])+eval.Cost(inst, result.Assignments[1]) {
		t.Errorf("globalBestCost %v is not the sum of each job's cost under its own assignment", result.Cost)
	}
}

func TestPlanEnsembleReturnsNoFeasibleSolutionWhenNoShortlistedTypeFits(t *testing.T) {
	inst := diamondForSearch(t, [][]float32{
		{0, 0},
		{10_000, 9_000},
		{10_000, 9_000},
		{0, 0},
	}, 1)

	eval, err := costmodel.NewEvaluator(common.Ensemble, costmodel.FlatPricing{10, 1})
	if err != nil {
		t.Fatalf("NewEvaluator: %v", err)
	}

	if _, err := PlanEnsemble(context.Background(), eval, []*workflow.Instance{inst}); err != common.ErrNoFeasibleSolution {
		t.Errorf("want ErrNoFeasibleSolution, got %v", err)
	}
}
