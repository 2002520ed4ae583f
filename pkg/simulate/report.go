package simulate

import (
	"os"

	"github.com/gocarina/gocsv"
)

// WriteReport marshals per-replica outcomes to a CSV file, one row per
// Monte-Carlo sample, in the teacher's gocsv-based export style.
func WriteReport(path string, results []ReplicaResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return gocsv.MarshalFile(&results, f)
}
