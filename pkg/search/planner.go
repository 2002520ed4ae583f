// Package search implements the A*-with-branch-and-bound instance-type
// configuration search of spec.md §6: find the cheapest per-task VM type
// assignment that keeps every task within the sub-deadline the deadline
// package distributed to it. Search itself only ever plans one workflow at
// a time, per-task; the multi-workflow Ensemble mode described by spec.md
// §4.4/§8 scenario 4 (one uniform type per workflow, chosen independently
// across a set of jobs) is a separate entry point, PlanEnsemble.
package search

import (
	"context"
	"sort"
	"sync"

	"github.com/eth-easl/decoplanner/pkg/common"
	"github.com/eth-easl/decoplanner/pkg/costmodel"
	"github.com/eth-easl/decoplanner/pkg/deadline"
	"github.com/eth-easl/decoplanner/pkg/workflow"
)

// Planner runs the batched, parallel best-first search. Expansion proceeds
// in batches of up to BatchWidth frontier nodes; each batch's children are
// generated concurrently (one goroutine per node being expanded) and
// merged into Open behind a single mutex, mirroring the reference's OMP
// batch-parallel loop (_examples/original_source/spot/AstarSearch.cpp).
type Planner struct {
	Evaluator  *costmodel.Evaluator
	BatchWidth int
	Budget     int

	mu     sync.Mutex
	closed map[string]struct{}
}

func NewPlanner(evaluator *costmodel.Evaluator, batchWidth, budget int) *Planner {
	if batchWidth <= 0 {
		batchWidth = common.DefaultBatchWidth
	}
	if budget <= 0 {
		budget = common.DefaultSearchBudget
	}
	return &Planner{
		Evaluator:  evaluator,
		BatchWidth: batchWidth,
		Budget:     budget,
		closed:     make(map[string]struct{}),
	}
}

// Search assigns deadline.Assign's sub-deadlines to inst, seeds an initial
// feasible solution from deadline.InstanceConfig as the branch-and-bound
// upper bound, then explores the configuration space for a cheaper
// feasible assignment. Exhausting Budget before Open empties is not an
// error: the best solution found so far (possibly the seed) is returned,
// and the caller is never told the search was incomplete, matching
// spec.md §6.4's BudgetExhausted semantics.
func (p *Planner) Search(ctx context.Context, inst *workflow.Instance) (Node, error) {
	order := inst.TopologicalOrder()
	numTasks := len(order)

	price := p.Evaluator.Pricing.PricePerHour
	if err := deadline.Assign(inst, price); err != nil {
		return Node{}, err
	}
	deadline.InstanceConfig(inst, price)

	seed := make([]int, numTasks)
	for id, task := range inst.Tasks {
		seed[id] = task.AssignedType
	}

	var best Node
	haveBest := false
	if p.Evaluator.Feasible(inst, seed) {
		best = Node{TaskNo: numTasks, GCost: p.Evaluator.Cost(inst, seed), Assignment: seed}
		haveBest = true
	}

	candidateTypes := allTypes(inst.NumTypes)

	root := Node{
		TaskNo:     0,
		GCost:      0,
		Assignment: make([]int, numTasks),
	}
	root.FValue = p.Evaluator.LowerBound(inst, root.Assignment, 0)

	open := []Node{root}
	spent := 0

	for len(open) > 0 {
		select {
		case <-ctx.Done():
			return p.finalize(best, haveBest)
		default:
		}

		sort.Slice(open, func(i, j int) bool { return open[i].FValue < open[j].FValue })

		batchSize := common.MinOf(p.BatchWidth, len(open))
		batch := open[:batchSize]
		open = open[batchSize:]

		bestCostSoFar := float32(-1)
		if haveBest {
			bestCostSoFar = best.GCost
		}

		// Each worker enqueues its children into a shared lock-free queue
		// rather than writing into a mutex-guarded slice, so the expansion
		// itself never blocks on another worker's progress; only the
		// drain below takes the Closed-set mutex.
		pending := common.NewLockFreeQueue[Node]()
		completions := make([]Node, len(batch))
		haveCompletion := make([]bool, len(batch))

		var wg sync.WaitGroup
		for i, node := range batch {
			i, node := i, node
			wg.Add(1)
			go func() {
				defer wg.Done()
				kids, completion, ok := p.expand(inst, order, candidateTypes, node, bestCostSoFar)
				for _, kid := range kids {
					pending.Enqueue(kid)
				}
				if ok {
					completions[i] = completion
					haveCompletion[i] = true
				}
			}()
		}
		wg.Wait()

		spent += len(batch)

		p.mu.Lock()
		for i := range batch {
			if !haveCompletion[i] {
				continue
			}
			if !haveBest || completions[i].GCost < best.GCost {
				best = completions[i]
				haveBest = true
			}
		}
		for pending.Length() > 0 {
			child := pending.Dequeue()
			key := closedKey(order, child)
			if _, seen := p.closed[key]; seen {
				continue
			}
			if haveBest && child.FValue >= best.GCost {
				continue
			}
			p.closed[key] = struct{}{}
			open = append(open, child)
		}
		p.mu.Unlock()

		if spent >= p.Budget {
			return p.finalize(best, haveBest)
		}
	}

	return p.finalize(best, haveBest)
}

func (p *Planner) finalize(best Node, haveBest bool) (Node, error) {
	if !haveBest {
		return Node{}, common.ErrNoFeasibleSolution
	}
	return best, nil
}

// expand generates every admissible child of node (one per candidate type
// for the next task in topological order), pruning any child whose lower
// bound meets or exceeds bestCostSoFar. If node is one task away from
// complete, expand instead returns the cheapest feasible completion that
// beats bestCostSoFar as its second return value (the third reports
// whether there is one), skipping a redundant frontier round-trip.
func (p *Planner) expand(inst *workflow.Instance, order, candidateTypes []int, node Node, bestCostSoFar float32) ([]Node, Node, bool) {
	if node.TaskNo >= len(order) {
		return nil, Node{}, false
	}
	taskID := order[node.TaskNo]
	task := inst.Tasks[taskID]

	var kids []Node
	var completion Node
	haveCompletion := false
	for _, typ := range candidateTypes {
		if typ < 0 || typ >= len(task.EstTime) {
			continue
		}
		if float64(task.EstTime[typ]) > task.SubDeadline {
			continue
		}

		child := node.clone()
		child.Assignment[taskID] = typ
		child.TaskNo = node.TaskNo + 1

		hours := workflow.BillingHours(task.EstTime[typ])
		child.GCost = node.GCost + hours*p.Evaluator.Pricing.PricePerHour(typ)

		if child.TaskNo == len(order) {
			if p.Evaluator.Feasible(inst, child.Assignment) &&
				(bestCostSoFar < 0 || child.GCost < bestCostSoFar) &&
				(!haveCompletion || child.GCost < completion.GCost) {
				completion = child
				haveCompletion = true
			}
			continue
		}

		child.FValue = child.GCost + p.Evaluator.LowerBound(inst, child.Assignment, child.TaskNo)
		if bestCostSoFar >= 0 && child.FValue >= bestCostSoFar {
			continue
		}
		kids = append(kids, child)
	}
	return kids, completion, haveCompletion
}

// allTypes returns every type index as a child's candidate set. This
// deliberately does not restrict a child's range to
// [node.Assignment[taskID]+1, T) the way the reference's expansion step
// reads; see DESIGN.md's Open Question log for why the full range is kept.
func allTypes(numTypes int) []int {
	types := make([]int, numTypes)
	for i := range types {
		types[i] = i
	}
	return types
}
