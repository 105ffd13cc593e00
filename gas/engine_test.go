package gas

import (
	"encoding/gob"
	"testing"
)

func TestSignalIsIdempotent(t *testing.T) {
	engine := NewEngine(Config{RetweetProb: 0.05, Tolerance: 0.01},
		buildTestPartition(map[uint64][]uint64{1: {}}), NewTunkRank)

	engine.Signal(1)
	engine.Signal(1)
	engine.Signal(1)
	if engine.ActiveCount() != 1 {
		t.Errorf("repeated signals left %v active vertices, want 1", engine.ActiveCount())
	}
}

func TestSignalForUnknownVertexIsDropped(t *testing.T) {
	engine := NewEngine(Config{RetweetProb: 0.05, Tolerance: 0.01},
		buildTestPartition(map[uint64][]uint64{1: {}}), NewTunkRank)

	engine.Signal(99)
	if engine.ActiveCount() != 0 {
		t.Errorf("signal for unowned vertex activated %v vertices", engine.ActiveCount())
	}
}

func TestDeliverRefreshesMirrorsAndActivates(t *testing.T) {
	engine := NewEngine(Config{RetweetProb: 0.05, Tolerance: 0.01},
		buildTestPartition(map[uint64][]uint64{1: {2}, 2: {}}), NewTunkRank)

	engine.Deliver([]Message{
		{
			SuperStepNum:    1,
			SourceVertexId:  1,
			DestVertexId:    2,
			SourceScore:     1.25,
			SourceOutDegree: 1,
			HasUpdate:       true,
			Signal:          true,
		},
	})

	mirror := engine.Vertices()[2].InEdges[1]
	if mirror.SourceScore != 1.25 {
		t.Errorf("mirror score %v after delivery, want 1.25", mirror.SourceScore)
	}
	if engine.ActiveCount() != 1 {
		t.Errorf("signal message activated %v vertices, want 1", engine.ActiveCount())
	}
}

func TestRunSuperStepEmitsUpdatesForOutNeighbors(t *testing.T) {
	engine := newTestEngine(map[uint64][]uint64{1: {2, 3}, 2: {}, 3: {}},
		Config{RetweetProb: 0.05, Tolerance: 0.01})

	msgs := engine.RunSuperStep()

	// vertex 1's score moves from 1 to 0, so both out-neighbors get a
	// mirror update carrying the new score and out-degree
	var updates int
	for _, m := range msgs {
		if m.SourceVertexId != 1 {
			continue
		}
		updates++
		if m.SourceScore != 0 || m.SourceOutDegree != 2 {
			t.Errorf("message carried score=%v degree=%v, want 0 and 2",
				m.SourceScore, m.SourceOutDegree)
		}
		if m.SuperStepNum != 2 {
			t.Errorf("message labeled for superstep %v, want 2", m.SuperStepNum)
		}
	}
	if updates != 2 {
		t.Errorf("vertex 1 emitted %v updates, want 2", updates)
	}
}

func TestDynamicRunReachesQuiescence(t *testing.T) {
	adjacency := map[uint64][]uint64{
		1: {2}, 2: {3}, 3: {4}, 4: {},
	}
	engine := newTestEngine(adjacency, Config{RetweetProb: 0.05, Tolerance: 0.01})

	rounds := engine.Run()
	if rounds == 0 {
		t.Fatal("dynamic run finished without executing any superstep")
	}
	if engine.ActiveCount() != 0 {
		t.Errorf("dynamic run stopped with %v active vertices", engine.ActiveCount())
	}

	// a quiescent engine must stay quiescent
	if msgs := engine.RunSuperStep(); len(msgs) != 0 {
		t.Errorf("superstep after quiescence produced %v messages", len(msgs))
	}
}

func TestChainScoresDecayFromSource(t *testing.T) {
	// 1 follows 2, 2 follows 3: influence flows 1 -> 2 -> 3
	adjacency := map[uint64][]uint64{1: {2}, 2: {3}, 3: {}}
	engine := newTestEngine(adjacency, Config{RetweetProb: 0.05, Tolerance: 0.001})
	engine.Run()

	v := engine.Vertices()
	if v[1].Score != 0 {
		t.Errorf("vertex with no followers scored %v, want 0", v[1].Score)
	}
	if !almostEqual(v[2].Score, 1.0) {
		// follower 1 settles at 0, so 2 gathers (1 + 0.05*0)/1 = 1
		t.Errorf("vertex 2 scored %v, want 1.0", v[2].Score)
	}
	if !almostEqual(v[3].Score, 1.05) {
		// follower 2 settles at 1, so 3 gathers (1 + 0.05*1)/1 = 1.05
		t.Errorf("vertex 3 scored %v, want 1.05", v[3].Score)
	}
}

func TestCheckpointRestoreRoundTrip(t *testing.T) {
	adjacency := map[uint64][]uint64{1: {2}, 2: {1}}
	engine := newTestEngine(adjacency, Config{RetweetProb: 0.05, Tolerance: 0.0001})

	engine.Deliver(engine.RunSuperStep())
	state, err := engine.Checkpoint()
	if err != nil {
		t.Fatalf("checkpoint failed: %v", err)
	}
	checkpointStep := engine.SuperStep()
	savedScores := map[uint64]float64{}
	for id, v := range engine.Vertices() {
		savedScores[id] = v.Score
	}

	// keep running, then rewind
	engine.Deliver(engine.RunSuperStep())
	engine.Deliver(engine.RunSuperStep())
	if err := engine.Restore(state, checkpointStep); err != nil {
		t.Fatalf("restore failed: %v", err)
	}

	if engine.SuperStep() != checkpointStep {
		t.Errorf("restored superstep %v, want %v", engine.SuperStep(), checkpointStep)
	}
	for id, v := range engine.Vertices() {
		if v.Score != savedScores[id] {
			t.Errorf("vertex %v restored to %v, want %v", id, v.Score, savedScores[id])
		}
	}

	// restored engine must continue exactly as the original did
	engine.Deliver(engine.RunSuperStep())
	if !almostEqual(engine.Vertices()[1].Score, 1.0525) {
		t.Errorf("post-restore superstep scored %v, want 1.0525", engine.Vertices()[1].Score)
	}
}

func TestRestoreRejectsUnknownVertex(t *testing.T) {
	engine := newTestEngine(map[uint64][]uint64{1: {}},
		Config{RetweetProb: 0.05, Tolerance: 0.01})

	state := map[uint64]VertexCheckpoint{
		42: {CurrentValue: 1},
	}
	if err := engine.Restore(state, 3); err == nil {
		t.Error("restore accepted a checkpoint for a vertex this engine does not own")
	}
}

// backwardSignaler scatters along in-edges, waking each edge source.
type backwardSignaler struct{}

func (backwardSignaler) Gather(v *Vertex, e Edge) float64            { return 0 }
func (backwardSignaler) Apply(ctx Context, v *Vertex, total float64) {}
func (backwardSignaler) ScatterEdges(v *Vertex) EdgeDir              { return InEdges }
func (backwardSignaler) Scatter(ctx Context, v *Vertex, e Edge)      { ctx.Signal(e.Source().Id) }
func (backwardSignaler) Save(enc *gob.Encoder) error                 { return nil }
func (backwardSignaler) Load(dec *gob.Decoder) error                 { return nil }

func TestScatterOverInEdgesWakesEdgeSources(t *testing.T) {
	engine := NewEngine(DefaultConfig(),
		buildTestPartition(map[uint64][]uint64{1: {2}, 2: {}}),
		func(Config) Program { return backwardSignaler{} })

	engine.Signal(2)
	out := engine.RunSuperStep()

	if engine.ActiveCount() != 1 {
		t.Fatalf("%v active vertices after an in-edge scatter, want 1", engine.ActiveCount())
	}
	if _, ok := engine.active[1]; !ok {
		t.Fatal("in-edge source 1 was not signaled")
	}
	if len(out) != 1 {
		t.Fatalf("emitted %v messages, want 1 signal-only message", len(out))
	}
	m := out[0]
	if m.DestVertexId != 1 || !m.Signal || m.HasUpdate {
		t.Errorf("signal-only message = %+v, want a pure signal to vertex 1", m)
	}
}
