package sampling

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eth-easl/decoplanner/pkg/common"
)

func writeRawTable(t *testing.T, dir, name string, numTypes int) {
	t.Helper()
	var b strings.Builder
	for typ := 0; typ < numTypes; typ++ {
		for j := 0; j < common.RawSamplesPerType; j++ {
			fmt.Fprintf(&b, "%d\n", typ*1000+j)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestCSVInputProviderLoadSamples(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"seqio.csv", "randio.csv", "netup.csv", "netdown.csv"} {
		writeRawTable(t, dir, name, 2)
	}

	provider := NewCSVInputProvider(dir, 2, 5)
	seqIO, randIO, netUp, netDown, err := provider.LoadSamples()
	if err != nil {
		t.Fatalf("LoadSamples: %v", err)
	}
	for _, table := range [][][]float32{seqIO, randIO, netUp, netDown} {
		if len(table) != 2 {
			t.Fatalf("want 2 types, got %d", len(table))
		}
		if len(table[0]) != 5 {
			t.Fatalf("want 5 samples per type, got %d", len(table[0]))
		}
	}
	if seqIO[1][0] != 1000 {
		t.Errorf("want first sample of type 1 to be 1000, got %v", seqIO[1][0])
	}
}

func TestCSVInputProviderMissingFile(t *testing.T) {
	provider := NewCSVInputProvider(t.TempDir(), 1, 1)
	if _, _, _, _, err := provider.LoadSamples(); !errors.Is(err, common.ErrInputMissing) {
		t.Errorf("want ErrInputMissing, got %v", err)
	}
}

func TestReadArrivalTimes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "arrivaltime_integer_5.txt")
	content := "5\n0\n1.5\n3.0\n7.25\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write arrival file: %v", err)
	}

	arrivals, err := ReadArrivalTimes(path, 4)
	if err != nil {
		t.Fatalf("ReadArrivalTimes: %v", err)
	}
	want := []float64{1.5, 3.0, 7.25}
	if len(arrivals) != len(want) {
		t.Fatalf("want %d arrivals, got %d", len(want), len(arrivals))
	}
	for i := range want {
		if arrivals[i] != want[i] {
			t.Errorf("arrivals[%d] = %v, want %v", i, arrivals[i], want[i])
		}
	}
}
