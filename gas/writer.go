package gas

import (
	"bufio"
	"fmt"
	"os"
	"sort"
)

// formatRecord renders the single output record a vertex produces. Edges
// produce no output.
func formatRecord(v *Vertex) string {
	return fmt.Sprintf("%d\t%v\n", v.Id, v.Score)
}

func partitionFileName(prefix string, logicalId uint32, numWorkers uint8) string {
	return fmt.Sprintf("%s_%d_of_%d", prefix, logicalId+1, numWorkers)
}

// writePartition saves one partition's final scores under the query's save
// prefix, one file per worker, records sorted by vertex id.
func writePartition(
	prefix string, logicalId uint32, numWorkers uint8, vertices Partition,
) (string, uint64, error) {
	path := partitionFileName(prefix, logicalId, numWorkers)
	file, err := os.Create(path)
	if err != nil {
		return "", 0, err
	}
	defer file.Close()

	ids := make([]uint64, 0, len(vertices))
	for id := range vertices {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := bufio.NewWriter(file)
	for _, id := range ids {
		if _, err := out.WriteString(formatRecord(vertices[id])); err != nil {
			return "", 0, err
		}
	}
	if err := out.Flush(); err != nil {
		return "", 0, err
	}
	return path, uint64(len(ids)), nil
}
