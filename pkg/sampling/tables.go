package sampling

import (
	"fmt"
	"math"
	"sync"

	"github.com/eth-easl/decoplanner/pkg/common"
)

// Channel identifies one of the four empirical performance distributions
// sampled per instance type.
type Channel int

const (
	SeqIO Channel = iota
	RandIO
	NetUp
	NetDown
)

func (c Channel) String() string {
	switch c {
	case SeqIO:
		return "seqio"
	case RandIO:
		return "randio"
	case NetUp:
		return "netup"
	case NetDown:
		return "netdown"
	default:
		return "unknown"
	}
}

// Tables holds per-type empirical vectors for seq-IO, rand-IO, net-up and
// net-down, flattened [type*S+sample]. Immutable after Load. At-most-one
// Load per Tables instance, enforced by loaded.
type Tables struct {
	numTypes int
	samples  int

	mu     sync.Mutex
	loaded bool

	seqIO   []float32
	randIO  []float32
	netUp   []float32
	netDown []float32
}

// New allocates an unloaded Tables for numTypes instance types and
// samplesPerType samples per type.
func New(numTypes, samplesPerType int) *Tables {
	return &Tables{numTypes: numTypes, samples: samplesPerType}
}

func (t *Tables) NumTypes() int { return t.numTypes }
func (t *Tables) Samples() int  { return t.samples }

// Load installs the four per-type sample tables. seqIO and randIO rows are
// divisors downstream (see DeriveTimeVectors) and are rejected if
// any value is non-positive or non-finite. Load may be called at most once;
// a second call returns common.ErrAlreadyLoaded.
func (t *Tables) Load(seqIO, randIO, netUp, netDown [][]float32) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.loaded {
		return common.ErrAlreadyLoaded
	}

	rows := map[string][][]float32{"seqio": seqIO, "randio": randIO, "netup": netUp, "netdown": netDown}
	for name, rows := range rows {
		if rows == nil || len(rows) < t.numTypes {
			return fmt.Errorf("%s: %w", name, common.ErrInputMissing)
		}
		for typ, row := range rows {
			if len(row) < t.samples {
				return fmt.Errorf("%s: type %d has %d samples, want %d: %w", name, typ, len(row), t.samples, common.ErrInputMissing)
			}
		}
	}

	if err := validateDivisor("seqio", seqIO, t.samples); err != nil {
		return err
	}
	if err := validateDivisor("randio", randIO, t.samples); err != nil {
		return err
	}

	t.seqIO = flatten(seqIO, t.numTypes, t.samples)
	t.randIO = flatten(randIO, t.numTypes, t.samples)
	t.netUp = flatten(netUp, t.numTypes, t.samples)
	t.netDown = flatten(netDown, t.numTypes, t.samples)
	t.loaded = true

	return nil
}

func validateDivisor(name string, rows [][]float32, samples int) error {
	for typ, row := range rows {
		for j := 0; j < samples; j++ {
			v := row[j]
			if v <= 0 || math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
				return fmt.Errorf("%s[type=%d,sample=%d]=%v: %w", name, typ, j, v, common.ErrInvalidSample)
			}
		}
	}
	return nil
}

func flatten(rows [][]float32, numTypes, samples int) []float32 {
	flat := make([]float32, numTypes*samples)
	for typ := 0; typ < numTypes; typ++ {
		copy(flat[typ*samples:(typ+1)*samples], rows[typ][:samples])
	}
	return flat
}

// Sample returns the channel's value for instance type typ under sample j.
// Bounds are only checked via the slice access itself — out-of-range
// indices panic the way a raw flat-array access would in the reference
// implementation, by design: callers are expected to stay inside [0,T)x[0,S).
func (t *Tables) Sample(typ, j int, ch Channel) float32 {
	idx := typ*t.samples + j
	switch ch {
	case SeqIO:
		return t.seqIO[idx]
	case RandIO:
		return t.randIO[idx]
	case NetUp:
		return t.netUp[idx]
	case NetDown:
		return t.netDown[idx]
	default:
		panic(fmt.Sprintf("sampling: unknown channel %d", ch))
	}
}
