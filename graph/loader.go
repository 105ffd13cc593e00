package graph

import (
	"bufio"
	"fmt"
	"math"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"strings"

	"tunkrank/util"
)

// ParseInputGraph reads a tab-separated edge list (source, target), one edge
// per line, skipping '#' comment lines. Targets that never appear as sources
// still get a record so isolated and sink vertices exist in the store.
func ParseInputGraph(filePath string) ([]VertexRecord, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	adjacency := make(map[uint64][]uint64)
	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		line := scanner.Text()
		lineNum++
		if strings.HasPrefix(strings.TrimSpace(line), "#") || strings.TrimSpace(line) == "" {
			continue
		}

		edge := strings.Fields(line)
		if len(edge) < 2 {
			return nil, fmt.Errorf("malformed edge at line %v: %q", lineNum, line)
		}
		src, err := strconv.ParseUint(edge[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad source id at line %v: %w", lineNum, err)
		}
		dest, err := strconv.ParseUint(edge[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad target id at line %v: %w", lineNum, err)
		}

		adjacency[src] = append(adjacency[src], dest)
		if adjacency[dest] == nil {
			adjacency[dest] = []uint64{}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return BuildRecords(adjacency), nil
}

// BuildRecords turns an out-adjacency map into store records, materializing
// the reverse edges with each source's out-degree.
func BuildRecords(adjacency map[uint64][]uint64) []VertexRecord {
	inNeighbors := make(map[uint64][]InNeighbor)
	for src, targets := range adjacency {
		outDegree := uint64(len(targets))
		for _, dest := range targets {
			inNeighbors[dest] = append(inNeighbors[dest], InNeighbor{
				SourceId:        src,
				SourceOutDegree: outDegree,
			})
		}
	}

	records := make([]VertexRecord, 0, len(adjacency))
	for id, targets := range adjacency {
		records = append(records, VertexRecord{
			ID:   id,
			Out:  targets,
			In:   inNeighbors[id],
			Hash: util.HashId(id),
		})
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records
}

const maxSyntheticDegree = 100

// SyntheticPowerlaw generates a graph whose out-degrees follow a power-law
// distribution with the given exponent (degrees clamped at 100), targets
// drawn uniformly. Useful for benchmarking without a real dataset.
func SyntheticPowerlaw(numVertices uint64, alpha float64, seed int64) []VertexRecord {
	rng := rand.New(rand.NewSource(seed))

	// normalize the truncated distribution P(d) ~ d^-alpha, d in [1, 100]
	maxDegree := uint64(maxSyntheticDegree)
	if numVertices-1 < maxDegree {
		maxDegree = numVertices - 1
	}
	weights := make([]float64, maxDegree)
	total := 0.0
	for d := uint64(1); d <= maxDegree; d++ {
		weights[d-1] = math.Pow(float64(d), -alpha)
		total += weights[d-1]
	}

	adjacency := make(map[uint64][]uint64, numVertices)
	for v := uint64(0); v < numVertices; v++ {
		degree := sampleDegree(rng, weights, total)
		seen := make(map[uint64]bool, degree)
		for uint64(len(adjacency[v])) < degree {
			target := rng.Uint64() % numVertices
			if target == v || seen[target] {
				continue
			}
			seen[target] = true
			adjacency[v] = append(adjacency[v], target)
		}
		if adjacency[v] == nil {
			adjacency[v] = []uint64{}
		}
	}
	return BuildRecords(adjacency)
}

func sampleDegree(rng *rand.Rand, weights []float64, total float64) uint64 {
	r := rng.Float64() * total
	for d, w := range weights {
		r -= w
		if r <= 0 {
			return uint64(d + 1)
		}
	}
	return uint64(len(weights))
}
