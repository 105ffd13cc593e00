package graph

import (
	"os"
	"path/filepath"
	"testing"

	"tunkrank/util"
)

func writeTestGraph(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graph.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("could not write test graph: %v", err)
	}
	return path
}

func recordById(t *testing.T, records []VertexRecord, id uint64) VertexRecord {
	t.Helper()
	for _, record := range records {
		if record.ID == id {
			return record
		}
	}
	t.Fatalf("no record for vertex %v", id)
	return VertexRecord{}
}

func TestParseInputGraph(t *testing.T) {
	path := writeTestGraph(t, "# follower graph\n1\t2\n1\t3\n2\t3\n")

	records, err := ParseInputGraph(path)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("parsed %v records, want 3", len(records))
	}

	v1 := recordById(t, records, 1)
	if len(v1.Out) != 2 || v1.Out[0] != 2 || v1.Out[1] != 3 {
		t.Errorf("vertex 1 out-edges %v, want [2 3]", v1.Out)
	}
	if len(v1.In) != 0 {
		t.Errorf("vertex 1 in-edges %v, want none", v1.In)
	}

	v3 := recordById(t, records, 3)
	if len(v3.In) != 2 {
		t.Fatalf("vertex 3 has %v in-edges, want 2", len(v3.In))
	}
	for _, in := range v3.In {
		switch in.SourceId {
		case 1:
			if in.SourceOutDegree != 2 {
				t.Errorf("in-edge from 1 carries degree %v, want 2", in.SourceOutDegree)
			}
		case 2:
			if in.SourceOutDegree != 1 {
				t.Errorf("in-edge from 2 carries degree %v, want 1", in.SourceOutDegree)
			}
		default:
			t.Errorf("unexpected in-edge source %v", in.SourceId)
		}
	}
}

func TestParseInputGraphTargetOnlyVertexGetsRecord(t *testing.T) {
	path := writeTestGraph(t, "7\t8\n")

	records, err := ParseInputGraph(path)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	v8 := recordById(t, records, 8)
	if len(v8.Out) != 0 {
		t.Errorf("sink vertex has out-edges %v", v8.Out)
	}
	if len(v8.In) != 1 || v8.In[0].SourceId != 7 {
		t.Errorf("sink vertex in-edges %v, want one from 7", v8.In)
	}
}

func TestParseInputGraphRejectsMalformedLine(t *testing.T) {
	path := writeTestGraph(t, "1\t2\nnot-a-vertex\t3\n")

	if _, err := ParseInputGraph(path); err == nil {
		t.Error("parse accepted a malformed edge line")
	}
}

func TestBuildRecordsHashMatchesRouting(t *testing.T) {
	records := BuildRecords(map[uint64][]uint64{1: {2}, 2: {}})
	for _, record := range records {
		if record.Hash != util.HashId(record.ID) {
			t.Errorf("vertex %v stored hash %v, want %v",
				record.ID, record.Hash, util.HashId(record.ID))
		}
	}
}

func TestSyntheticPowerlawShape(t *testing.T) {
	const numVertices = 500
	records := SyntheticPowerlaw(numVertices, 2.1, 1)

	if len(records) != numVertices {
		t.Fatalf("generated %v records, want %v", len(records), numVertices)
	}
	for _, record := range records {
		if len(record.Out) > maxSyntheticDegree {
			t.Errorf("vertex %v has degree %v beyond the clamp", record.ID, len(record.Out))
		}
		for _, target := range record.Out {
			if target == record.ID {
				t.Errorf("vertex %v has a self-loop", record.ID)
			}
			if target >= numVertices {
				t.Errorf("vertex %v links to out-of-range target %v", record.ID, target)
			}
		}
	}
}

func TestSyntheticPowerlawDeterministicBySeed(t *testing.T) {
	first := SyntheticPowerlaw(100, 2.1, 42)
	second := SyntheticPowerlaw(100, 2.1, 42)

	if len(first) != len(second) {
		t.Fatalf("runs generated %v and %v records", len(first), len(second))
	}
	for idx := range first {
		if first[idx].ID != second[idx].ID || len(first[idx].Out) != len(second[idx].Out) {
			t.Fatalf("records diverge at index %v", idx)
		}
		for j := range first[idx].Out {
			if first[idx].Out[j] != second[idx].Out[j] {
				t.Fatalf("out-edges diverge for vertex %v", first[idx].ID)
			}
		}
	}
}

func TestOwnershipPartitionsEveryVertexExactlyOnce(t *testing.T) {
	const numWorkers = 3
	records := BuildRecords(map[uint64][]uint64{
		1: {2, 3}, 2: {3}, 3: {4}, 4: {}, 5: {1},
	})

	for _, record := range records {
		owners := 0
		for workerId := uint32(0); workerId < numWorkers; workerId++ {
			if ownsRecord(record.ID, workerId, numWorkers) {
				owners++
			}
		}
		if owners != 1 {
			t.Errorf("vertex %v has %v owners, want exactly 1", record.ID, owners)
		}
	}
}
