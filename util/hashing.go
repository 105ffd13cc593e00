package util

import (
	"encoding/binary"
	"hash/fnv"
)

// HashId spreads sequential vertex ids across partitions. Both the graph
// loaders and the workers must agree on this function: partition attributes
// written at ingest time are computed from the same hash the workers use to
// route signals.
func HashId(vertexId uint64) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], vertexId)

	h := fnv.New64a()
	h.Write(buf[:])
	return h.Sum64()
}
