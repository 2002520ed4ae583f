package simulate

import (
	"context"
	"testing"

	"github.com/eth-easl/decoplanner/pkg/common"
	"github.com/eth-easl/decoplanner/pkg/costmodel"
	"github.com/eth-easl/decoplanner/pkg/deadline"
	"github.com/eth-easl/decoplanner/pkg/sampling"
	"github.com/eth-easl/decoplanner/pkg/workflow"
)

func buildDiamondWithSamples(t *testing.T) *workflow.Instance {
	t.Helper()
	tables := sampling.New(1, 4)
	flat := func(v float32) [][]float32 { return [][]float32{{v, v, v, v}} }
	if err := tables.Load(flat(100), flat(100), flat(0), flat(0)); err != nil {
		t.Fatalf("Load: %v", err)
	}

	inst, err := workflow.NewDiamondInstance([]float32{20}, 3600, 0.9)
	if err != nil {
		t.Fatalf("NewDiamondInstance: %v", err)
	}
	if err := sampling.DeriveTimeVectors(inst, tables, 0.9); err != nil {
		t.Fatalf("DeriveTimeVectors: %v", err)
	}
	return inst
}

func TestRunProducesNonNegativeAggregate(t *testing.T) {
	inst := buildDiamondWithSamples(t)
	eval, err := costmodel.NewEvaluator(common.DeadlineApp, costmodel.FlatPricing{1})
	if err != nil {
		t.Fatalf("NewEvaluator: %v", err)
	}
	if err := deadline.Assign(inst, eval.Pricing.PricePerHour); err != nil {
		t.Fatalf("deadline.Assign: %v", err)
	}

	sim := NewSimulator(eval.Pricing, 60)
	agg, err := sim.Run(context.Background(), inst, []int{0, 0, 0, 0}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if agg.AverageCost < 0 {
		t.Errorf("AverageCost should never be negative, got %v", agg.AverageCost)
	}
	if agg.ViolationRate < 0 || agg.ViolationRate > 1 {
		t.Errorf("ViolationRate should be a fraction in [0,1], got %v", agg.ViolationRate)
	}
	if len(agg.Replicas) != 4 {
		t.Errorf("want 4 replicas (one per sample), got %d", len(agg.Replicas))
	}
}

func TestRunRejectsAlreadyCanceledContext(t *testing.T) {
	inst := buildDiamondWithSamples(t)
	eval, _ := costmodel.NewEvaluator(common.DeadlineApp, costmodel.FlatPricing{1})
	sim := NewSimulator(eval.Pricing, 60)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := sim.Run(ctx, inst, []int{0, 0, 0, 0}, nil); err == nil {
		t.Errorf("want an error for an already-canceled context")
	}
}
