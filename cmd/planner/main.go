package main

import (
	"context"
	"flag"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/eth-easl/decoplanner/pkg/common"
	"github.com/eth-easl/decoplanner/pkg/config"
	"github.com/eth-easl/decoplanner/pkg/costmodel"
	"github.com/eth-easl/decoplanner/pkg/sampling"
	"github.com/eth-easl/decoplanner/pkg/search"
	"github.com/eth-easl/decoplanner/pkg/simulate"
	"github.com/eth-easl/decoplanner/pkg/workflow"
)

var (
	configPath = flag.String("config", "cmd/planner/config.json", "Path to planner configuration file")
	verbosity  = flag.String("verbosity", "info", "Logging verbosity - choose from [info, debug, trace]")
	reportPath = flag.String("report", "", "Optional path to write per-replica simulation CSV report")
)

func init() {
	flag.Parse()

	log.SetFormatter(&log.TextFormatter{TimestampFormat: time.StampMilli, FullTimestamp: true})
	log.SetOutput(os.Stdout)

	switch *verbosity {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "trace":
		log.SetLevel(log.TraceLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

func main() {
	pc := config.ReadConfigurationFile(*configPath)
	cfg := config.NewConfiguration(&pc)

	log.Infof("loaded configuration for workflow %q, mode %v", cfg.WorkflowType, cfg.Mode)

	provider := inputProvider(&pc)

	inst, err := provider.LoadWorkflow(cfg.WorkflowType)
	if err != nil {
		log.Fatalf("load workflow: %v", err)
	}

	seqIO, randIO, netUp, netDown, err := provider.LoadSamples()
	if err != nil {
		log.Fatalf("load samples: %v", err)
	}

	tables := sampling.New(pc.NumTypes, pc.SamplesPerType)
	if err := tables.Load(seqIO, randIO, netUp, netDown); err != nil {
		log.Fatalf("load tables: %v", err)
	}
	if err := sampling.DeriveTimeVectors(inst, tables, pc.MeetDeadlineProbability); err != nil {
		log.Fatalf("derive time vectors: %v", err)
	}

	evaluator, err := costmodel.NewEvaluator(cfg.Mode, cfg.Pricing)
	if err != nil {
		log.Fatalf("construct evaluator: %v", err)
	}

	ctx := context.Background()

	var assignment []int
	if cfg.Mode == common.Ensemble {
		jobs := make([]*workflow.Instance, pc.NumJobs)
		for i := range jobs {
			jobs[i] = inst.Clone()
		}
		result, err := search.PlanEnsemble(ctx, evaluator, jobs)
		if err != nil {
			log.Fatalf("plan ensemble: %v", err)
		}
		log.Infof("ensemble assignments %v, globalBestCost %.4f", result.Assignments, result.Cost)
		assignment = result.Assignments[0]
	} else {
		planner := search.NewPlanner(evaluator, pc.BatchWidth, pc.SearchBudget)
		solution, err := planner.Search(ctx, inst)
		if err != nil {
			log.Fatalf("search: %v", err)
		}
		log.Infof("best assignment %v, cost %.4f", solution.Assignment, solution.GCost)
		assignment = solution.Assignment
	}

	arrivals, err := arrivalTimes(&pc)
	if err != nil {
		log.Fatalf("load arrival times: %v", err)
	}

	sim := simulate.NewSimulator(cfg.Pricing, pc.OnDemandLagSeconds)
	agg, err := sim.Run(ctx, inst, assignment, arrivals)
	if err != nil {
		log.Fatalf("simulate: %v", err)
	}
	log.Infof("simulated %d replicas: average cost %.4f, deadline violation rate %.4f",
		len(agg.Replicas), agg.AverageCost, agg.ViolationRate)

	if *reportPath != "" {
		common.Check(simulate.WriteReport(*reportPath, agg.Replicas))
		log.Infof("wrote per-replica report to %s", *reportPath)
	}
}

func inputProvider(pc *config.PlannerConfiguration) sampling.InputProvider {
	if pc.InputDir == "" {
		return &sampling.SyntheticInputProvider{
			NumTypes:       pc.NumTypes,
			SamplesPerType: pc.SamplesPerType,
			Seed:           pc.Seed,
		}
	}
	csvProvider := sampling.NewCSVInputProvider(pc.InputDir, pc.NumTypes, pc.SamplesPerType)
	csvProvider.WorkflowLoader = func(tag workflow.TopologyTag) (*workflow.Instance, error) {
		cpuTime := make([]float32, pc.NumTypes)
		for typ := range cpuTime {
			cpuTime[typ] = 30 / float32(typ+1)
		}
		if tag == workflow.Chain {
			return workflow.NewChainInstance(cpuTime, pc.Deadline, pc.MeetDeadlineProbability)
		}
		return workflow.NewDiamondInstance(cpuTime, pc.Deadline, pc.MeetDeadlineProbability)
	}
	return csvProvider
}

func arrivalTimes(pc *config.PlannerConfiguration) ([]float64, error) {
	if pc.ArrivalFilePath == "" {
		arrivals := make([]float64, 0, common.MaxOf(pc.NumJobs-1, 0))
		for i := 1; i < pc.NumJobs; i++ {
			arrivals = append(arrivals, float64(i)/maxFloat(pc.Lambda, 0.001))
		}
		return arrivals, nil
	}
	return sampling.ReadArrivalTimes(pc.ArrivalFilePath, pc.NumJobs)
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
