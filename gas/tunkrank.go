package gas

import (
	"encoding/gob"
	"math"
)

// TunkRank measures a vertex's influence as the expected attention generated
// by its followers: each follower contributes (1 + p*influence(follower))
// split evenly across everyone the follower follows.
// Based on http://thenoisychannel.com/2009/01/13/a-twitter-analog-to-pagerank/
type TunkRank struct {
	cfg        Config
	lastChange float64
}

func NewTunkRank(cfg Config) Program {
	return &TunkRank{cfg: cfg}
}

// Gather the weighted influence of the vertex's followers. A vertex with no
// outgoing edges never appears as an edge source, so the division is safe by
// construction of the edge set.
func (t *TunkRank) Gather(vertex *Vertex, edge Edge) float64 {
	source := edge.Source()
	return (1 + t.cfg.RetweetProb*source.Score) / float64(source.OutDegree)
}

// Apply folds the total follower influence into this vertex's score. In
// synchronous mode the vertex re-signals itself so the next round runs it
// again regardless of how small the change was.
func (t *TunkRank) Apply(ctx Context, vertex *Vertex, total float64) {
	t.lastChange = math.Abs(total - vertex.Score)
	vertex.Score = total
	if t.cfg.Mode() == ModeSync {
		ctx.Signal(vertex.Id)
	}
}

// ScatterEdges gates propagation on convergence: once the last apply moved
// the score by no more than the tolerance, the vertex stops signaling its
// out-neighbors. Synchronous mode never signals per edge; re-activation is
// global there.
func (t *TunkRank) ScatterEdges(vertex *Vertex) EdgeDir {
	if t.cfg.Mode() == ModeSync {
		return NoEdges
	}
	if t.lastChange > t.cfg.Tolerance {
		return OutEdges
	}
	return NoEdges
}

func (t *TunkRank) Scatter(ctx Context, vertex *Vertex, edge Edge) {
	ctx.Signal(edge.Target().Id)
}

// Save persists lastChange, the only state that outlives an activation, and
// only in dynamic mode: with a fixed iteration count the value is never read
// again, so it is not written at all.
func (t *TunkRank) Save(enc *gob.Encoder) error {
	if t.cfg.Mode() == ModeSync {
		return nil
	}
	return enc.Encode(t.lastChange)
}

func (t *TunkRank) Load(dec *gob.Decoder) error {
	if t.cfg.Mode() == ModeSync {
		return nil
	}
	return dec.Decode(&t.lastChange)
}
