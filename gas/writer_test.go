package gas

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPartitionFileName(t *testing.T) {
	got := partitionFileName("scores", 0, 4)
	if got != "scores_1_of_4" {
		t.Errorf("file name %v, want scores_1_of_4", got)
	}
	got = partitionFileName("scores", 3, 4)
	if got != "scores_4_of_4" {
		t.Errorf("file name %v, want scores_4_of_4", got)
	}
}

func TestWritePartitionSortedRecords(t *testing.T) {
	partition := Partition{
		30: &Vertex{Id: 30, Score: 0.5},
		10: &Vertex{Id: 10, Score: 1.0525},
		20: &Vertex{Id: 20, Score: 0},
	}

	prefix := filepath.Join(t.TempDir(), "scores")
	path, numVertices, err := writePartition(prefix, 1, 2, partition)
	if err != nil {
		t.Fatalf("writePartition failed: %v", err)
	}
	if numVertices != 3 {
		t.Errorf("wrote %v records, want 3", numVertices)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("could not read output: %v", err)
	}
	want := "10\t1.0525\n20\t0\n30\t0.5\n"
	if string(content) != want {
		t.Errorf("output %q, want %q", string(content), want)
	}
}

func TestWritePartitionEmpty(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "scores")
	path, numVertices, err := writePartition(prefix, 0, 1, Partition{})
	if err != nil {
		t.Fatalf("writePartition failed: %v", err)
	}
	if numVertices != 0 {
		t.Errorf("wrote %v records, want 0", numVertices)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("could not read output: %v", err)
	}
	if len(content) != 0 {
		t.Errorf("empty partition produced output %q", string(content))
	}
}
