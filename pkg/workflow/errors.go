package workflow

import (
	"fmt"

	"github.com/eth-easl/decoplanner/pkg/common"
)

// ErrUnknownTopology wraps common.ErrInvalidDag for an unrecognized
// TopologyTag, matching the reference's "what is the dag type?" exit path.
var ErrUnknownTopology = fmt.Errorf("%w: unknown topology tag", common.ErrInvalidDag)

// ErrCyclic wraps common.ErrInvalidDag for a graph that fails topological
// sort.
var ErrCyclic = fmt.Errorf("%w: graph is not acyclic", common.ErrInvalidDag)

// ErrEmptyDag wraps common.ErrInvalidDag for a DAG with no tasks.
var ErrEmptyDag = fmt.Errorf("%w: dag has no tasks", common.ErrInvalidDag)
