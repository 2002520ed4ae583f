package sampling

import (
	"errors"
	"testing"

	"github.com/eth-easl/decoplanner/pkg/common"
)

func flatRows(numTypes, samples int, fill func(typ, j int) float32) [][]float32 {
	rows := make([][]float32, numTypes)
	for typ := 0; typ < numTypes; typ++ {
		row := make([]float32, samples)
		for j := 0; j < samples; j++ {
			row[j] = fill(typ, j)
		}
		rows[typ] = row
	}
	return rows
}

func TestTablesLoadAndSample(t *testing.T) {
	tables := New(2, 3)
	seqIO := flatRows(2, 3, func(typ, j int) float32 { return float32(typ*10 + j + 1) })
	randIO := flatRows(2, 3, func(typ, j int) float32 { return float32(typ*10 + j + 1) })
	netUp := flatRows(2, 3, func(typ, j int) float32 { return float32(j) })
	netDown := flatRows(2, 3, func(typ, j int) float32 { return float32(j) })

	if err := tables.Load(seqIO, randIO, netUp, netDown); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := tables.Sample(1, 2, SeqIO); got != 13 {
		t.Errorf("Sample(1,2,SeqIO) = %v, want 13", got)
	}
}

func TestTablesLoadTwiceFails(t *testing.T) {
	tables := New(1, 1)
	rows := flatRows(1, 1, func(typ, j int) float32 { return 1 })
	if err := tables.Load(rows, rows, rows, rows); err != nil {
		t.Fatalf("first Load: %v", err)
	}
	if err := tables.Load(rows, rows, rows, rows); !errors.Is(err, common.ErrAlreadyLoaded) {
		t.Errorf("second Load: want ErrAlreadyLoaded, got %v", err)
	}
}

func TestTablesLoadRejectsNonPositiveDivisor(t *testing.T) {
	tables := New(1, 2)
	bad := flatRows(1, 2, func(typ, j int) float32 {
		if j == 1 {
			return 0
		}
		return 1
	})
	good := flatRows(1, 2, func(typ, j int) float32 { return 1 })

	if err := tables.Load(bad, good, good, good); !errors.Is(err, common.ErrInvalidSample) {
		t.Errorf("want ErrInvalidSample for zero seqio, got %v", err)
	}
}

func TestTablesLoadRejectsShortRows(t *testing.T) {
	tables := New(1, 5)
	short := [][]float32{{1, 2}}
	if err := tables.Load(short, short, short, short); !errors.Is(err, common.ErrInputMissing) {
		t.Errorf("want ErrInputMissing for short rows, got %v", err)
	}
}
