package gas

// VertexRef is a read-only view of an edge endpoint. Gather reads the source
// endpoint's score and out-degree through it; nothing is ever written back.
type VertexRef struct {
	Id        uint64
	Score     float64
	OutDegree uint64
}

// Edge is a directed source -> target edge. Edges carry no data of their own.
type Edge struct {
	source VertexRef
	target VertexRef
}

func (e Edge) Source() VertexRef { return e.source }
func (e Edge) Target() VertexRef { return e.target }

// InEdge mirrors the source endpoint of one incoming edge. The engine
// refreshes the mirror whenever the source's score changes, which is how
// gather reads a source that lives on another worker.
type InEdge struct {
	SourceScore     float64
	SourceOutDegree uint64
}

// Vertex holds the mutable per-vertex state. Topology (OutEdges and the key
// set of InEdges) is immutable once the partition is built; only Score and
// the mirrored source scores change during a computation.
type Vertex struct {
	Id       uint64
	Score    float64
	OutEdges []uint64
	InEdges  map[uint64]*InEdge
}

func (v *Vertex) OutDegree() uint64 { return uint64(len(v.OutEdges)) }

func (v *Vertex) ref() VertexRef {
	return VertexRef{Id: v.Id, Score: v.Score, OutDegree: v.OutDegree()}
}

func inboundEdge(v *Vertex, sourceId uint64, in *InEdge) Edge {
	return Edge{
		source: VertexRef{
			Id:        sourceId,
			Score:     in.SourceScore,
			OutDegree: in.SourceOutDegree,
		},
		target: v.ref(),
	}
}

func outboundEdge(v *Vertex, targetId uint64) Edge {
	return Edge{
		source: v.ref(),
		target: VertexRef{Id: targetId},
	}
}

// Partition is the set of vertices owned by one worker, keyed by vertex id.
type Partition map[uint64]*Vertex

// InitVertex is the initialization transform run over every vertex before
// superstep 1.
func InitVertex(v *Vertex) {
	v.Score = 1
}

// Init applies InitVertex to the partition and primes every in-edge mirror
// with the initial score, so the first gather observes the same values a
// freshly initialized source would report.
func (p Partition) Init() {
	for _, v := range p {
		InitVertex(v)
	}
	for _, v := range p {
		for _, in := range v.InEdges {
			in.SourceScore = 1
		}
	}
}
