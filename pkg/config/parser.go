package config

import (
	"encoding/json"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/eth-easl/decoplanner/pkg/common"
	"github.com/eth-easl/decoplanner/pkg/workflow"
)

// PlannerConfiguration is the JSON-serialized shape of a planner run,
// loaded with encoding/json exactly the way the teacher's LoaderConfiguration
// is loaded from a config file.
type PlannerConfiguration struct {
	Seed int64 `json:"Seed"`

	WorkflowType string  `json:"WorkflowType"`
	NumJobs      int     `json:"NumJobs"`
	Lambda       float64 `json:"Lambda"`

	Deadline                float64 `json:"Deadline"`
	MeetDeadlineProbability float64 `json:"MeetDeadlineProbability"`

	Mode string `json:"Mode"`

	NumTypes       int       `json:"NumTypes"`
	SamplesPerType int       `json:"SamplesPerType"`
	Prices         []float32 `json:"Prices"`

	SearchBudget int `json:"SearchBudget"`
	BatchWidth   int `json:"BatchWidth"`

	OnDemandLagSeconds float64 `json:"OnDemandLagSeconds"`

	InputDir         string `json:"InputDir"`
	ArrivalFilePath  string `json:"ArrivalFilePath"`
	OutputPathPrefix string `json:"OutputPathPrefix"`
}

// ReadConfigurationFile loads and unmarshals a PlannerConfiguration, fatal
// on any read or parse error, matching the teacher's ReadConfigurationFile.
func ReadConfigurationFile(path string) PlannerConfiguration {
	byteValue, err := os.ReadFile(path)
	if err != nil {
		log.Fatal(err)
	}

	var config PlannerConfiguration
	if err := json.Unmarshal(byteValue, &config); err != nil {
		log.Fatal(err)
	}

	return config
}

// ParseMode maps a PlannerConfiguration's Mode string onto common.Mode,
// defaulting to DeadlineApp for an empty or unrecognized value.
func ParseMode(s string) common.Mode {
	switch s {
	case "ensemble":
		return common.Ensemble
	case "followsun":
		return common.FollowSun
	default:
		return common.DeadlineApp
	}
}

// ParseTopology maps a PlannerConfiguration's WorkflowType string onto a
// workflow.TopologyTag, defaulting to Diamond for an empty value so a
// minimal config file still runs end to end.
func ParseTopology(s string) workflow.TopologyTag {
	if s == "" {
		return workflow.Diamond
	}
	return workflow.TopologyTag(s)
}
