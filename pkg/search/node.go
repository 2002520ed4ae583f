package search

import (
	"fmt"
	"strings"
)

// Node is one partial or complete assignment on the search frontier.
// TaskNo counts how many tasks (in topological order) have a type
// assigned; Assignment holds that type per task id, entries at and beyond
// the topological positions from TaskNo onward are unspecified. FValue is
// the admissible g+h estimate driving best-first expansion.
type Node struct {
	TaskNo     int
	GCost      float32
	FValue     float32
	Assignment []int
}

func (n Node) clone() Node {
	assignment := make([]int, len(n.Assignment))
	copy(assignment, n.Assignment)
	return Node{TaskNo: n.TaskNo, GCost: n.GCost, FValue: n.FValue, Assignment: assignment}
}

// closedKey returns a dedup key for the Closed set: the assigned prefix in
// topological order, so two nodes reaching the same partial configuration
// by different expansion orders collapse to one Closed entry, replacing
// the reference's O(n) linear Closeset scan with a map lookup.
func closedKey(order []int, n Node) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d:", n.TaskNo)
	for _, id := range order[:n.TaskNo] {
		fmt.Fprintf(&b, "%d,", n.Assignment[id])
	}
	return b.String()
}
