package costmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eth-easl/decoplanner/pkg/common"
	"github.com/eth-easl/decoplanner/pkg/workflow"
)

func diamondWithEstTimes(t *testing.T, estTimes [][]float32, subDeadlines []float64) *workflow.Instance {
	t.Helper()
	return diamondWithDeadline(t, estTimes, subDeadlines, 600)
}

func diamondWithDeadline(t *testing.T, estTimes [][]float32, subDeadlines []float64, deadline float64) *workflow.Instance {
	t.Helper()
	inst, err := workflow.NewDiamondInstance(make([]float32, len(estTimes[0])), deadline, 0.9)
	if err != nil {
		t.Fatalf("NewDiamondInstance: %v", err)
	}
	for id, task := range inst.Tasks {
		task.EstTime = append([]float32(nil), estTimes[id]...)
		task.SubDeadline = subDeadlines[id]
	}
	return inst
}

func TestNewEvaluatorRejectsFollowSun(t *testing.T) {
	_, err := NewEvaluator(common.FollowSun, FlatPricing{1})
	assert.ErrorIs(t, err, common.ErrUnsupportedMode)
}

func TestCostSumsBillingHoursAcrossTasks(t *testing.T) {
	inst := diamondWithEstTimes(t,
		[][]float32{{0, 0}, {3600, 1800}, {3600, 1800}, {0, 0}},
		[]float64{600, 600, 600, 600})
	eval, err := NewEvaluator(common.DeadlineApp, FlatPricing{2, 1})
	require.NoError(t, err)

	assignment := []int{0, 1, 1, 0}
	// tasks 1,2 take 1800s at type 1 -> ceil(1800/3600)=1 hour * price 1 = 1 each.
	assert.Equal(t, float32(2), eval.Cost(inst, assignment))
}

func TestFeasibleRejectsLateSinkFinishEvenWithGenerousSubDeadlines(t *testing.T) {
	// Every task's own SubDeadline is generous (5000) relative to its
	// EstTime, so a per-task SubDeadline comparison would wrongly call this
	// feasible. The real forward schedule (source finishes at 0, a and b
	// each run 1000s off of it, sink finishes at max(1000,1000)+0=1000)
	// exceeds the workflow's actual deadline of 800, so Feasible must
	// reject it.
	inst := diamondWithDeadline(t,
		[][]float32{{0, 0}, {1000, 1000}, {1000, 1000}, {0, 0}},
		[]float64{5000, 5000, 5000, 5000}, 800)
	eval, err := NewEvaluator(common.DeadlineApp, FlatPricing{1, 1})
	require.NoError(t, err)

	assert.False(t, eval.Feasible(inst, []int{0, 0, 0, 0}), "sink's forward-scheduled finish 1000 exceeds deadline 800")
}

func TestFeasibleAcceptsForwardScheduleWithinDeadline(t *testing.T) {
	inst := diamondWithDeadline(t,
		[][]float32{{0, 0}, {1000, 1000}, {1000, 1000}, {0, 0}},
		[]float64{5000, 5000, 5000, 5000}, 1200)
	eval, err := NewEvaluator(common.DeadlineApp, FlatPricing{1, 1})
	require.NoError(t, err)

	assert.True(t, eval.Feasible(inst, []int{0, 0, 0, 0}), "sink's forward-scheduled finish 1000 is within deadline 1200")
}

func TestLowerBoundUsesCheapestTypeForUnassignedSuffix(t *testing.T) {
	inst := diamondWithEstTimes(t,
		[][]float32{{0, 0}, {3600, 1800}, {3600, 1800}, {0, 0}},
		[]float64{600, 600, 600, 600})
	eval, err := NewEvaluator(common.DeadlineApp, FlatPricing{2, 1})
	require.NoError(t, err)

	bound := eval.LowerBound(inst, make([]int, 4), 0)
	assert.Greater(t, bound, float32(0))
}

func TestEnsembleShortlistPicksTwoCheapestTypes(t *testing.T) {
	eval, err := NewEvaluator(common.Ensemble, FlatPricing{5, 1, 3, 2})
	require.NoError(t, err)

	shortlist := eval.EnsembleShortlist(4)
	require.Len(t, shortlist, 2)
	assert.Equal(t, []int{1, 3}, shortlist, "want prices 1 and 2 (types 1 and 3)")
}
