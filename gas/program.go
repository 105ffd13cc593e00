package gas

import (
	"encoding/gob"
)

// EdgeDir selects which of a vertex's incident edges the engine traverses
// during the scatter phase.
type EdgeDir int

const (
	NoEdges EdgeDir = iota
	InEdges
	OutEdges
	AllEdges
)

// Mode is the scheduling discipline of a run. It is fixed at query start and
// branches behavior in exactly three places: apply's re-signal decision,
// ScatterEdges, and Save/Load.
type Mode int

const (
	// ModeDynamic runs until every vertex's last update is within tolerance
	// and no activation signals remain in flight.
	ModeDynamic Mode = iota
	// ModeSync runs a fixed number of global supersteps with every vertex
	// forced active each round.
	ModeSync
)

func (m Mode) String() string {
	if m == ModeSync {
		return "synchronous"
	}
	return "dynamic"
}

const (
	DefaultRetweetProb = 0.05
	DefaultTolerance   = 1.0e-2
)

// Config carries the per-query algorithm parameters. It is passed into
// program construction so that nothing in the compute path reads mutable
// process-wide state.
type Config struct {
	RetweetProb float64
	Tolerance   float64
	Iterations  uint64 // 0 selects dynamic mode
}

func DefaultConfig() Config {
	return Config{
		RetweetProb: DefaultRetweetProb,
		Tolerance:   DefaultTolerance,
		Iterations:  0,
	}
}

func (c Config) Mode() Mode {
	if c.Iterations > 0 {
		return ModeSync
	}
	return ModeDynamic
}

// Context is the slice of the engine a program may touch from Apply and
// Scatter. Signal is idempotent; re-signaling an active vertex is a no-op.
type Context interface {
	Signal(vertexId uint64)
	SuperStep() uint64
}

// Program is the gather-apply-scatter vertex program contract.
//
// Gather is invoked once per incoming edge and must not mutate the vertex;
// the engine folds the returned contributions with addition, so they must
// combine order-independently. Apply is the single mutation point for a
// vertex's value and never runs concurrently with another phase of the same
// vertex. ScatterEdges picks the edges Scatter will be invoked on. Save and
// Load persist whatever program state has to survive between activations;
// a program with no such state implements them as no-ops.
type Program interface {
	Gather(vertex *Vertex, edge Edge) float64
	Apply(ctx Context, vertex *Vertex, total float64)
	ScatterEdges(vertex *Vertex) EdgeDir
	Scatter(ctx Context, vertex *Vertex, edge Edge)
	Save(enc *gob.Encoder) error
	Load(dec *gob.Decoder) error
}

// ProgramFactory builds one program instance per vertex.
type ProgramFactory func(cfg Config) Program
