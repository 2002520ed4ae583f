package common

import "log"

// MinOf and MaxOf are used throughout the planner for slack/bound
// arithmetic on small integer sets (task counts, type counts).

func MinOf(vars ...int) int {
	min := vars[0]

	for _, i := range vars {
		if min > i {
			min = i
		}
	}

	return min
}

func MaxOf(vars ...int) int {
	max := vars[0]

	for _, i := range vars {
		if max < i {
			max = i
		}
	}

	return max
}

// Check aborts the process on error. Reserved for cmd/ entrypoints;
// library packages return errors instead.
func Check(e error) {
	if e != nil {
		log.Fatal(e)
	}
}
