package common

import "errors"

// Sentinel errors for the planner/simulator error taxonomy. Fatal errors
// (InputMissing, InvalidSample, InvalidDag, UnsupportedMode, NoFeasibleSolution)
// abort the calling command after a single diagnostic line; BudgetExhausted
// is recovered internally by the search and never surfaces to a caller.
var (
	ErrInputMissing       = errors.New("cannot open input")
	ErrAlreadyLoaded      = errors.New("sample tables already loaded")
	ErrInvalidSample      = errors.New("invalid sample: non-positive or non-finite divisor")
	ErrDerivationFailure  = errors.New("time vector derivation failed: division by zero")
	ErrInvalidDag         = errors.New("invalid dag")
	ErrUnsupportedMode    = errors.New("unsupported mode")
	ErrBudgetExhausted    = errors.New("search budget exhausted")
	ErrNoFeasibleSolution = errors.New("no feasible solution")
)
