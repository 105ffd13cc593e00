package gas

import (
	"sort"
)

// Engine drives the gather-apply-scatter loop over one partition. Activation
// is tracked as a set, so signaling an already-active vertex is a no-op.
//
// Each superstep runs gather over the active vertices' in-edge mirrors,
// apply, then scatter, and returns the messages destined for the next
// superstep: score updates for out-neighbor mirrors plus any activation
// signals the programs raised. The caller routes messages to their owning
// partition and feeds them back through Deliver before the next superstep;
// with a single partition the two calls form a complete local runtime.
type Engine struct {
	cfg       Config
	mode      Mode
	vertices  Partition
	factory   ProgramFactory
	programs  map[uint64]Program
	active    map[uint64]struct{}
	superStep uint64
}

func NewEngine(cfg Config, vertices Partition, factory ProgramFactory) *Engine {
	return &Engine{
		cfg:      cfg,
		mode:     cfg.Mode(),
		vertices: vertices,
		factory:  factory,
		programs: make(map[uint64]Program),
		active:   make(map[uint64]struct{}),
	}
}

func (e *Engine) Mode() Mode         { return e.mode }
func (e *Engine) SuperStep() uint64  { return e.superStep }
func (e *Engine) ActiveCount() int   { return len(e.active) }
func (e *Engine) NumVertices() int   { return len(e.vertices) }
func (e *Engine) Vertices() Partition { return e.vertices }

// Signal marks a vertex active for the next superstep. Signals for vertices
// this engine does not own are dropped; the caller is responsible for routing
// those to the owning partition.
func (e *Engine) Signal(vertexId uint64) {
	if _, ok := e.vertices[vertexId]; ok {
		e.active[vertexId] = struct{}{}
	}
}

func (e *Engine) SignalAll() {
	for id := range e.vertices {
		e.active[id] = struct{}{}
	}
}

// Deliver applies a batch of messages: mirror updates first, signals second.
// Delivery must happen between supersteps, never concurrently with one.
func (e *Engine) Deliver(msgs []Message) {
	for _, m := range msgs {
		v, ok := e.vertices[m.DestVertexId]
		if !ok {
			continue
		}
		if m.HasUpdate {
			if in, ok := v.InEdges[m.SourceVertexId]; ok {
				in.SourceScore = m.SourceScore
				in.SourceOutDegree = m.SourceOutDegree
			}
		}
		if m.Signal {
			e.active[m.DestVertexId] = struct{}{}
		}
	}
}

// RunSuperStep consumes the current active set and runs one gather/apply/
// scatter round over it. Vertices are processed in id order; gather's
// combination operator is order-independent, but a stable order keeps runs
// reproducible.
func (e *Engine) RunSuperStep() []Message {
	e.superStep++
	frontier := e.active
	e.active = make(map[uint64]struct{})

	ids := make([]uint64, 0, len(frontier))
	for id := range frontier {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	ctx := &superStepContext{engine: e}
	var out []Message

	for _, id := range ids {
		v := e.vertices[id]
		prog := e.program(id)

		total := 0.0
		for sourceId, in := range v.InEdges {
			total += prog.Gather(v, inboundEdge(v, sourceId, in))
		}

		before := v.Score
		ctx.reset()
		prog.Apply(ctx, v, total)
		changed := v.Score != before

		dir := prog.ScatterEdges(v)
		if dir == OutEdges || dir == AllEdges {
			for _, targetId := range v.OutEdges {
				prog.Scatter(ctx, v, outboundEdge(v, targetId))
			}
		}
		if dir == InEdges || dir == AllEdges {
			for sourceId, in := range v.InEdges {
				prog.Scatter(ctx, v, inboundEdge(v, sourceId, in))
			}
		}

		for _, targetId := range v.OutEdges {
			m := Message{
				SuperStepNum:    e.superStep + 1,
				SourceVertexId:  v.Id,
				DestVertexId:    targetId,
				SourceScore:     v.Score,
				SourceOutDegree: v.OutDegree(),
				HasUpdate:       changed,
				Signal:          ctx.signaled[targetId],
			}
			if m.HasUpdate || m.Signal {
				out = append(out, m)
			}
		}
		out = append(out, ctx.signalOnlyMessages(v, e.superStep+1)...)
	}
	return out
}

// Run drives the engine to completion over a single partition: exactly
// Iterations rounds in synchronous mode, until quiescence in dynamic mode.
// Returns the number of supersteps executed.
func (e *Engine) Run() uint64 {
	if e.mode == ModeSync {
		for i := uint64(0); i < e.cfg.Iterations; i++ {
			e.Deliver(e.RunSuperStep())
		}
		return e.cfg.Iterations
	}

	rounds := uint64(0)
	for len(e.active) > 0 {
		e.Deliver(e.RunSuperStep())
		rounds++
	}
	return rounds
}

func (e *Engine) program(vertexId uint64) Program {
	p, ok := e.programs[vertexId]
	if !ok {
		p = e.factory(e.cfg)
		e.programs[vertexId] = p
	}
	return p
}

type superStepContext struct {
	engine   *Engine
	signaled map[uint64]bool
}

func (c *superStepContext) reset() {
	c.signaled = make(map[uint64]bool)
}

func (c *superStepContext) Signal(vertexId uint64) {
	c.signaled[vertexId] = true
	c.engine.Signal(vertexId)
}

func (c *superStepContext) SuperStep() uint64 {
	return c.engine.superStep
}

// signalOnlyMessages carries the signals no out-edge message covers, such as
// in-edge sources signaled during an in-edge scatter. Self-signals need no
// message; Signal already queued them locally.
func (c *superStepContext) signalOnlyMessages(v *Vertex, superStep uint64) []Message {
	if len(c.signaled) == 0 {
		return nil
	}
	covered := make(map[uint64]struct{}, len(v.OutEdges)+1)
	covered[v.Id] = struct{}{}
	for _, targetId := range v.OutEdges {
		covered[targetId] = struct{}{}
	}

	ids := make([]uint64, 0, len(c.signaled))
	for id := range c.signaled {
		if _, ok := covered[id]; ok {
			continue
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	msgs := make([]Message, 0, len(ids))
	for _, id := range ids {
		msgs = append(msgs, Message{
			SuperStepNum:   superStep,
			SourceVertexId: v.Id,
			DestVertexId:   id,
			Signal:         true,
		})
	}
	return msgs
}
