package sampling

import (
	"sort"

	"github.com/eth-easl/decoplanner/pkg/common"
	"github.com/eth-easl/decoplanner/pkg/workflow"
)

// DeriveTimeVectors computes, for every task in inst and every instance
// type, the per-sample network/IO/compute time vectors and the
// meetDeadline-quantile EstTime, per spec.md §4.2:
//
//	netUp[t,j]    = transData  * sample(t,j,NetUp)  / 8000
//	netDown[t,j]  = recData    * sample(t,j,NetDown)/ 8000
//	randomIO[t,j] = readData   / sample(t,j,RandIO)
//	seqIO[t,j]    = seqData    / sample(t,j,SeqIO)
//	probEstTime   = cpuTime[t] + netUp + netDown + randomIO + seqIO
//
// probEstTime is sorted ascending per type after derivation, and EstTime[t]
// is set to the meetDeadline quantile of that sorted vector.
func DeriveTimeVectors(inst *workflow.Instance, tables *Tables, meetDeadline float64) error {
	numTypes := tables.NumTypes()
	numSamples := tables.Samples()
	quantileIdx := int(meetDeadline * float64(numSamples))
	if quantileIdx >= numSamples {
		quantileIdx = numSamples - 1
	}

	for _, task := range inst.Tasks {
		task.NetUp = make([]float32, numTypes*numSamples)
		task.NetDown = make([]float32, numTypes*numSamples)
		task.RandomIO = make([]float32, numTypes*numSamples)
		task.SeqIO = make([]float32, numTypes*numSamples)
		task.ProbEstTime = make([]float32, numTypes*numSamples)
		task.EstTime = make([]float32, numTypes)

		for typ := 0; typ < numTypes; typ++ {
			base := typ * numSamples
			for j := 0; j < numSamples; j++ {
				randSample := tables.Sample(typ, j, RandIO)
				seqSample := tables.Sample(typ, j, SeqIO)
				if randSample == 0 || seqSample == 0 {
					return common.ErrDerivationFailure
				}

				netUp := task.TransData * tables.Sample(typ, j, NetUp) / 8000
				netDown := task.RecData * tables.Sample(typ, j, NetDown) / 8000
				randomIO := task.ReadData / randSample
				seqIO := task.SeqData / seqSample

				idx := base + j
				task.NetUp[idx] = netUp
				task.NetDown[idx] = netDown
				task.RandomIO[idx] = randomIO
				task.SeqIO[idx] = seqIO
				task.ProbEstTime[idx] = task.CPUTime[typ] + netUp + netDown + randomIO + seqIO
			}

			sort.Slice(task.ProbEstTime[base:base+numSamples], func(i, j int) bool {
				return task.ProbEstTime[base+i] < task.ProbEstTime[base+j]
			})
			task.EstTime[typ] = task.ProbEstTime[base+quantileIdx]
		}
	}

	return nil
}
