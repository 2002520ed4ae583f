package config

import (
	"github.com/eth-easl/decoplanner/pkg/common"
	"github.com/eth-easl/decoplanner/pkg/costmodel"
	"github.com/eth-easl/decoplanner/pkg/workflow"
)

// Configuration wraps the JSON-loaded PlannerConfiguration with the derived
// collaborators a planner run actually needs, the way the teacher's
// Configuration wraps LoaderConfiguration with Functions/IATDistribution.
type Configuration struct {
	PlannerConfiguration *PlannerConfiguration

	Mode         common.Mode
	WorkflowType workflow.TopologyTag
	Pricing      costmodel.FlatPricing
}

// WithOnDemandLag reports whether the configuration sets a positive
// on-demand provisioning lag, mirroring the teacher's WithWarmup predicate.
func (c *Configuration) WithOnDemandLag() bool {
	return c.PlannerConfiguration.OnDemandLagSeconds > 0
}

// NewConfiguration resolves a PlannerConfiguration's string fields into the
// typed collaborators the rest of the planner consumes.
func NewConfiguration(pc *PlannerConfiguration) *Configuration {
	return &Configuration{
		PlannerConfiguration: pc,
		Mode:                 ParseMode(pc.Mode),
		WorkflowType:         ParseTopology(pc.WorkflowType),
		Pricing:              costmodel.FlatPricing(pc.Prices),
	}
}
