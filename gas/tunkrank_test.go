package gas

import (
	"bytes"
	"encoding/gob"
	"math"
	"testing"
)

const float64EqualityThreshold = 1e-8

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= float64EqualityThreshold
}

// buildTestPartition turns an out-adjacency map into an initialized partition
// with primed in-edge mirrors, the way a worker builds one from store records.
func buildTestPartition(adjacency map[uint64][]uint64) Partition {
	partition := make(Partition, len(adjacency))
	for id, targets := range adjacency {
		partition[id] = &Vertex{
			Id:       id,
			OutEdges: targets,
			InEdges:  make(map[uint64]*InEdge),
		}
	}
	for src, targets := range adjacency {
		for _, dest := range targets {
			partition[dest].InEdges[src] = &InEdge{
				SourceOutDegree: uint64(len(adjacency[src])),
			}
		}
	}
	partition.Init()
	return partition
}

func newTestEngine(adjacency map[uint64][]uint64, cfg Config) *Engine {
	engine := NewEngine(cfg, buildTestPartition(adjacency), NewTunkRank)
	engine.SignalAll()
	return engine
}

type testContext struct {
	superStep uint64
	signals   []uint64
}

func (c *testContext) Signal(vertexId uint64) { c.signals = append(c.signals, vertexId) }
func (c *testContext) SuperStep() uint64      { return c.superStep }

func TestInitVertexSetsScoreToOne(t *testing.T) {
	partition := buildTestPartition(map[uint64][]uint64{1: {2}, 2: {}})
	for id, v := range partition {
		if v.Score != 1 {
			t.Errorf("vertex %v initialized with score %v, want 1", id, v.Score)
		}
	}
	if partition[2].InEdges[1].SourceScore != 1 {
		t.Errorf("in-edge mirror not primed with initial score")
	}
}

func TestGatherFollowerContribution(t *testing.T) {
	prog := NewTunkRank(Config{RetweetProb: 0.05, Tolerance: 0.01})
	target := &Vertex{Id: 2}
	edge := inboundEdge(target, 1, &InEdge{SourceScore: 2, SourceOutDegree: 4})

	got := prog.Gather(target, edge)
	want := (1 + 0.05*2.0) / 4.0
	if !almostEqual(got, want) {
		t.Errorf("gather returned %v, want %v", got, want)
	}
}

func TestApplyRecordsScoreAndChange(t *testing.T) {
	prog := NewTunkRank(Config{RetweetProb: 0.05, Tolerance: 0.01}).(*TunkRank)
	v := &Vertex{Id: 1, Score: 1}
	ctx := &testContext{}

	prog.Apply(ctx, v, 1.05)
	if !almostEqual(v.Score, 1.05) {
		t.Errorf("apply set score %v, want 1.05", v.Score)
	}
	if !almostEqual(prog.lastChange, 0.05) {
		t.Errorf("apply recorded change %v, want 0.05", prog.lastChange)
	}
	if len(ctx.signals) != 0 {
		t.Errorf("dynamic apply signaled %v, want no signals", ctx.signals)
	}
}

func TestApplySelfSignalsWithFixedIterations(t *testing.T) {
	prog := NewTunkRank(Config{RetweetProb: 0.05, Tolerance: 0.01, Iterations: 3})
	v := &Vertex{Id: 7, Score: 1}
	ctx := &testContext{}

	prog.Apply(ctx, v, 1.0) // unchanged score still re-signals
	if len(ctx.signals) != 1 || ctx.signals[0] != 7 {
		t.Errorf("fixed-iteration apply signaled %v, want [7]", ctx.signals)
	}
}

func TestScatterEdgesGatesOnTolerance(t *testing.T) {
	prog := NewTunkRank(Config{RetweetProb: 0.05, Tolerance: 0.01}).(*TunkRank)
	v := &Vertex{Id: 1, Score: 1, OutEdges: []uint64{2}}
	ctx := &testContext{}

	prog.Apply(ctx, v, 1.05)
	if dir := prog.ScatterEdges(v); dir != OutEdges {
		t.Errorf("change above tolerance returned %v, want OutEdges", dir)
	}

	prog.Apply(ctx, v, 1.055)
	if dir := prog.ScatterEdges(v); dir != NoEdges {
		t.Errorf("change below tolerance returned %v, want NoEdges", dir)
	}
}

func TestScatterEdgesNoEdgesWithFixedIterations(t *testing.T) {
	prog := NewTunkRank(Config{RetweetProb: 0.05, Tolerance: 0.01, Iterations: 5}).(*TunkRank)
	v := &Vertex{Id: 1, Score: 1, OutEdges: []uint64{2}}
	ctx := &testContext{}

	prog.Apply(ctx, v, 100) // enormous change must still not scatter
	if dir := prog.ScatterEdges(v); dir != NoEdges {
		t.Errorf("fixed-iteration scatter_edges returned %v, want NoEdges", dir)
	}
}

func TestScatterSignalsEdgeTarget(t *testing.T) {
	prog := NewTunkRank(Config{RetweetProb: 0.05, Tolerance: 0.01})
	v := &Vertex{Id: 1, Score: 1, OutEdges: []uint64{9}}
	ctx := &testContext{}

	prog.Scatter(ctx, v, outboundEdge(v, 9))
	if len(ctx.signals) != 1 || ctx.signals[0] != 9 {
		t.Errorf("scatter signaled %v, want [9]", ctx.signals)
	}
}

func TestMutualFollowersTwoIterations(t *testing.T) {
	adjacency := map[uint64][]uint64{1: {2}, 2: {1}}
	engine := newTestEngine(adjacency, Config{
		RetweetProb: 0.05, Tolerance: 0.01, Iterations: 2,
	})

	rounds := engine.Run()
	if rounds != 2 {
		t.Errorf("engine ran %v rounds, want 2", rounds)
	}
	for id, v := range engine.Vertices() {
		if !almostEqual(v.Score, 1.0525) {
			t.Errorf("vertex %v scored %v, want 1.0525", id, v.Score)
		}
	}
}

func TestMutualFollowersConverge(t *testing.T) {
	adjacency := map[uint64][]uint64{1: {2}, 2: {1}}
	engine := newTestEngine(adjacency, Config{RetweetProb: 0.05, Tolerance: 0.01})

	rounds := engine.Run()
	if rounds != 2 {
		t.Errorf("dynamic engine ran %v rounds, want 2", rounds)
	}
	if engine.ActiveCount() != 0 {
		t.Errorf("engine stopped with %v active vertices", engine.ActiveCount())
	}
	for id, v := range engine.Vertices() {
		if !almostEqual(v.Score, 1.0525) {
			t.Errorf("vertex %v scored %v, want 1.0525", id, v.Score)
		}
	}
}

func TestIsolatedVertexScoresZero(t *testing.T) {
	adjacency := map[uint64][]uint64{1: {}}
	engine := newTestEngine(adjacency, Config{RetweetProb: 0.05, Tolerance: 0.01})

	engine.Run()
	if score := engine.Vertices()[1].Score; score != 0 {
		t.Errorf("isolated vertex scored %v, want 0", score)
	}
}

func TestFixedIterationsRunExactApplyCount(t *testing.T) {
	adjacency := map[uint64][]uint64{1: {2}, 2: {3}, 3: {1}}
	applies := 0
	counting := func(cfg Config) Program {
		return &countingProgram{inner: NewTunkRank(cfg), applies: &applies}
	}

	partition := buildTestPartition(adjacency)
	engine := NewEngine(Config{RetweetProb: 0.05, Tolerance: 0.01, Iterations: 4}, partition, counting)
	engine.SignalAll()
	engine.Run()

	if want := 4 * len(adjacency); applies != want {
		t.Errorf("ran %v applies, want exactly %v", applies, want)
	}
}

func TestFixedIterationsDeterministic(t *testing.T) {
	adjacency := map[uint64][]uint64{
		1: {2, 3}, 2: {3}, 3: {1}, 4: {1, 3},
	}
	cfg := Config{RetweetProb: 0.05, Tolerance: 0.01, Iterations: 5}

	first := newTestEngine(adjacency, cfg)
	first.Run()
	second := newTestEngine(adjacency, cfg)
	second.Run()

	for id, v := range first.Vertices() {
		if other := second.Vertices()[id].Score; other != v.Score {
			t.Errorf("vertex %v scored %v and %v across identical runs", id, v.Score, other)
		}
	}
}

func TestSingleRoundMatchesAcrossModes(t *testing.T) {
	adjacency := map[uint64][]uint64{1: {2, 3}, 2: {3}, 3: {1}}

	sync := newTestEngine(adjacency, Config{RetweetProb: 0.05, Tolerance: 0.01, Iterations: 1})
	sync.Run()
	dynamic := newTestEngine(adjacency, Config{RetweetProb: 0.05, Tolerance: 0.01})
	dynamic.Deliver(dynamic.RunSuperStep())

	for id, v := range sync.Vertices() {
		if other := dynamic.Vertices()[id].Score; !almostEqual(v.Score, other) {
			t.Errorf("vertex %v scored %v sync and %v dynamic after one round", id, v.Score, other)
		}
	}
}

func TestSaveLoadRoundTripDynamic(t *testing.T) {
	cfg := Config{RetweetProb: 0.05, Tolerance: 0.01}
	prog := NewTunkRank(cfg).(*TunkRank)
	prog.Apply(&testContext{}, &Vertex{Id: 1, Score: 1}, 1.3)

	var buf bytes.Buffer
	if err := prog.Save(gob.NewEncoder(&buf)); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("dynamic save wrote nothing")
	}

	restored := NewTunkRank(cfg).(*TunkRank)
	if err := restored.Load(gob.NewDecoder(&buf)); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !almostEqual(restored.lastChange, prog.lastChange) {
		t.Errorf("restored change %v, want %v", restored.lastChange, prog.lastChange)
	}
}

func TestSaveWritesNothingWithFixedIterations(t *testing.T) {
	prog := NewTunkRank(Config{RetweetProb: 0.05, Tolerance: 0.01, Iterations: 2}).(*TunkRank)
	prog.Apply(&testContext{}, &Vertex{Id: 1, Score: 1}, 1.3)

	var buf bytes.Buffer
	if err := prog.Save(gob.NewEncoder(&buf)); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("fixed-iteration save wrote %v bytes, want 0", buf.Len())
	}
}

type countingProgram struct {
	inner   Program
	applies *int
}

func (p *countingProgram) Gather(v *Vertex, e Edge) float64 { return p.inner.Gather(v, e) }
func (p *countingProgram) Apply(ctx Context, v *Vertex, total float64) {
	*p.applies++
	p.inner.Apply(ctx, v, total)
}
func (p *countingProgram) ScatterEdges(v *Vertex) EdgeDir      { return p.inner.ScatterEdges(v) }
func (p *countingProgram) Scatter(ctx Context, v *Vertex, e Edge) { p.inner.Scatter(ctx, v, e) }
func (p *countingProgram) Save(enc *gob.Encoder) error         { return p.inner.Save(enc) }
func (p *countingProgram) Load(dec *gob.Decoder) error         { return p.inner.Load(dec) }
