// Package simulate runs the Monte-Carlo, tick-based EDF autoscaling
// simulation of spec.md §7: given a chosen per-task instance-type
// assignment, estimate its realized cost and deadline-violation rate by
// replaying one job stream per empirical performance sample.
package simulate

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"github.com/eth-easl/decoplanner/pkg/costmodel"
	"github.com/eth-easl/decoplanner/pkg/workflow"
)

// Simulator replays an admission/EDF-dispatch/cost-accrual loop once per
// performance sample, one goroutine per replica, with no state shared
// across replicas (spec.md §3's Ownership rule).
type Simulator struct {
	Pricing            costmodel.PricingTable
	OnDemandLagSeconds float64
}

func NewSimulator(pricing costmodel.PricingTable, onDemandLagSeconds float64) *Simulator {
	return &Simulator{Pricing: pricing, OnDemandLagSeconds: onDemandLagSeconds}
}

// ReplicaResult is one sample's outcome, exported for WriteReport.
type ReplicaResult struct {
	Sample     int     `csv:"sample"`
	MoneyCost  float64 `csv:"money_cost"`
	Violations int     `csv:"violations"`
	Jobs       int     `csv:"jobs"`
	Makespan   float64 `csv:"makespan"`
}

// Aggregate summarizes every replica's outcome via their mean, per
// spec.md §7.4's "deadline meeting rate"/"average cost" report.
type Aggregate struct {
	// RunID is a fresh uuid.New() string identifying one Run call, the way
	// the teacher tags a single invocation for its request metadata. It is
	// not written into WriteReport's per-replica rows.
	RunID           string
	ViolationRate   float64
	AverageCost     float64
	AverageMakespan float64
	Replicas        []ReplicaResult
}

// Run simulates base (already carrying SubDeadline from deadline.Assign)
// under assignment, admitting one job at t=0 and one more per entry in
// arrivals, replicated once per performance sample in
// [0, base's derived sample count).
func (s *Simulator) Run(ctx context.Context, base *workflow.Instance, assignment []int, arrivals []float64) (Aggregate, error) {
	if err := ctx.Err(); err != nil {
		return Aggregate{}, err
	}

	for id, task := range base.Tasks {
		task.AssignedType = assignment[id]
	}

	numSamples := 0
	if len(base.Tasks) > 0 && len(base.Tasks[0].ProbEstTime) > 0 && base.NumTypes > 0 {
		numSamples = len(base.Tasks[0].ProbEstTime) / base.NumTypes
	}
	if numSamples == 0 {
		numSamples = 1
	}

	arrivalTimes := make([]float64, 0, len(arrivals)+1)
	arrivalTimes = append(arrivalTimes, 0)
	arrivalTimes = append(arrivalTimes, arrivals...)

	results := make([]ReplicaResult, numSamples)

	var wg sync.WaitGroup
	for sample := 0; sample < numSamples; sample++ {
		sample := sample
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[sample] = s.runReplica(sample, base, arrivalTimes)
		}()
	}
	wg.Wait()

	agg := aggregate(results)
	agg.RunID = uuid.New().String()
	return agg, nil
}

func aggregate(results []ReplicaResult) Aggregate {
	costs := make([]float64, len(results))
	violRates := make([]float64, len(results))
	makespans := make([]float64, len(results))
	for i, r := range results {
		if r.Jobs == 0 {
			continue
		}
		costs[i] = r.MoneyCost / float64(r.Jobs)
		violRates[i] = float64(r.Violations) / float64(r.Jobs)
		makespans[i] = r.Makespan / float64(r.Jobs)
	}
	return Aggregate{
		ViolationRate:   stat.Mean(violRates, nil),
		AverageCost:     stat.Mean(costs, nil),
		AverageMakespan: stat.Mean(makespans, nil),
		Replicas:        results,
	}
}

// runReplica executes one full tick loop for a single performance sample,
// per the reference's per-thread Monte-Carlo body
// (_examples/original_source/spot/Autoscaling.cpp lines 213-420).
func (s *Simulator) runReplica(sample int, base *workflow.Instance, arrivalTimes []float64) ReplicaResult {
	jobs := make([]*job, len(arrivalTimes))
	for i, arrival := range arrivalTimes {
		jobs[i] = newJob(base, arrival)
	}

	pools := make(map[int][]*vm)
	moneyCost := 0.0
	t := 0.0

	for {
		for _, j := range jobs {
			if !j.admitted && int(t) == int(j.arrivalTime) {
				_ = j.admit() // topology tag validity is checked at plan time
			}
		}

		var readyTasks []struct {
			job    *job
			taskID int
		}
		for _, j := range jobs {
			if !j.admitted {
				continue
			}
			for _, id := range j.readyTaskIDs() {
				readyTasks = append(readyTasks, struct {
					job    *job
					taskID int
				}{j, id})
			}
		}
		sort.SliceStable(readyTasks, func(a, b int) bool {
			return readyTasks[a].job.inst.Tasks[readyTasks[a].taskID].SubDeadline <
				readyTasks[b].job.inst.Tasks[readyTasks[b].taskID].SubDeadline
		})

		for _, rt := range readyTasks {
			task := rt.job.inst.Tasks[rt.taskID]
			state := &rt.job.states[rt.taskID]
			typ := task.AssignedType

			switch state.ReadyCountdown {
			case -1:
				if v := findIdle(pools, typ); v != nil {
					v.tk = rt.taskID
					state.Status = workflow.Scheduled
					state.TaskTime = t
					state.RestTime = float32(sampleService(task, typ, sample, base.NumTypes))
				} else {
					state.ReadyCountdown = int(s.OnDemandLagSeconds)
					state.TaskTime = t
				}
			case 0:
				state.Status = workflow.Scheduled
				state.RestTime = float32(sampleService(task, typ, sample, base.NumTypes))
				pools[typ] = append(pools[typ], &vm{typ: typ, lifeTime: s.OnDemandLagSeconds, tk: rt.taskID})
			}
		}

		moneyCost += reapIdle(pools, s.Pricing)

		for _, j := range jobs {
			if !j.admitted {
				continue
			}
			for id, task := range j.inst.Tasks {
				state := &j.states[id]
				if state.Status != workflow.Scheduled {
					continue
				}
				state.RestTime -= 1
				if state.RestTime > 0 {
					continue
				}
				state.Status = workflow.Finished
				state.EndTime = t
				makespan := t - state.TaskTime
				state.TaskTime = makespan
				state.Cost = float32(makespan) * s.Pricing.PricePerHour(task.AssignedType) / 3600

				for _, v := range pools[task.AssignedType] {
					if v.tk == id {
						v.tk = idleVM
						break
					}
				}
			}
		}

		for _, pool := range pools {
			for _, v := range pool {
				v.lifeTime++
			}
		}
		for _, rt := range readyTasks {
			state := &rt.job.states[rt.taskID]
			if state.ReadyCountdown > 0 {
				state.ReadyCountdown--
			}
		}

		t++

		anyUnfinished := false
		for _, j := range jobs {
			if !j.admitted || j.unfinished() {
				anyUnfinished = true
				break
			}
		}
		if !anyUnfinished {
			break
		}
	}

	for _, pool := range pools {
		for _, v := range pool {
			moneyCost += float64(workflow.BillingHours(float32(v.lifeTime))) * float64(s.Pricing.PricePerHour(v.typ))
		}
	}

	violations := 0
	var totalMakespan float64
	for _, j := range jobs {
		// The sink is marked Finished at admission and never runs, so the
		// job ends when the last of the sink's predecessors finishes.
		var endTime float64
		for _, pred := range j.inst.Predecessors[j.inst.SinkID()] {
			if j.states[pred].EndTime > endTime {
				endTime = j.states[pred].EndTime
			}
		}
		executionTime := endTime - j.arrivalTime
		if executionTime > j.deadline {
			violations++
		}
		totalMakespan += executionTime
	}

	return ReplicaResult{
		Sample:     sample,
		MoneyCost:  moneyCost,
		Violations: violations,
		Jobs:       len(jobs),
		Makespan:   totalMakespan,
	}
}

func findIdle(pools map[int][]*vm, typ int) *vm {
	for _, v := range pools[typ] {
		if v.idle() {
			return v
		}
	}
	return nil
}

// reapIdle removes every idle VM from pools, returning the billed cost of
// its lifetime, per spec.md §7.3's idle-VM reaping step.
func reapIdle(pools map[int][]*vm, pricing costmodel.PricingTable) float64 {
	var cost float64
	for typ, pool := range pools {
		kept := pool[:0]
		for _, v := range pool {
			if v.idle() {
				cost += float64(workflow.BillingHours(float32(v.lifeTime))) * float64(pricing.PricePerHour(typ))
				continue
			}
			kept = append(kept, v)
		}
		pools[typ] = kept
	}
	return cost
}

// sampleService returns a task's service time under typ for this replica's
// performance sample.
func sampleService(task *workflow.Task, typ, sample, numTypes int) float32 {
	samples := len(task.ProbEstTime) / numTypes
	return task.ProbEstTime[typ*samples+sample]
}
