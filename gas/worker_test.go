package gas

import (
	"net"
	"net/rpc"
	"testing"

	"tunkrank/util"
)

func newTestWorker(logicalId uint32, numWorkers uint8, partition Partition, cfg Config) *Worker {
	w := NewWorker(WorkerConfig{WorkerId: logicalId})
	w.LogicalId = logicalId
	w.NumWorkers = numWorkers
	w.directory = make(WorkerDirectory)
	w.engine = NewEngine(cfg, partition, NewTunkRank)
	w.engine.SignalAll()
	return w
}

func serveWorkerRPC(t *testing.T, w *Worker) string {
	t.Helper()
	handler := rpc.NewServer()
	if err := handler.Register(w); err != nil {
		t.Fatalf("could not register worker RPCs: %v", err)
	}
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("could not listen: %v", err)
	}
	t.Cleanup(func() { listener.Close() })
	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			go handler.ServeConn(conn)
		}
	}()
	return listener.Addr().String()
}

func computeRound(t *testing.T, w *Worker, ssn uint64) ProgressSuperStepResult {
	t.Helper()
	var reply ProgressSuperStepResult
	if err := w.ComputeVertices(ProgressSuperStep{SuperStepNum: ssn}, &reply); err != nil {
		t.Fatalf("superstep %v failed on worker %v: %v", ssn, w.LogicalId, err)
	}
	return reply
}

func TestPutMessagesBuffersBatchAheadOfWorker(t *testing.T) {
	w := NewWorker(WorkerConfig{WorkerId: 1})

	batch := BatchMessages{
		SuperStepNum: 2,
		FromWorker:   1,
		Messages: []Message{
			{SuperStepNum: 2, SourceVertexId: 1, DestVertexId: 2, HasUpdate: true, Signal: true},
		},
	}
	var ack BatchMessages
	if err := w.PutMessages(batch, &ack); err != nil {
		t.Fatalf("batch ahead of the worker's superstep was refused: %v", err)
	}
	if got := len(w.inbox[2]); got != 1 {
		t.Fatalf("batch not buffered: %v messages held for superstep 2", got)
	}
}

func TestPutMessagesFailsForPastSuperstep(t *testing.T) {
	w := NewWorker(WorkerConfig{WorkerId: 1})
	w.superStep = 3

	batch := BatchMessages{
		SuperStepNum: 3,
		FromWorker:   2,
		Messages:     []Message{{SuperStepNum: 3, DestVertexId: 5, Signal: true}},
	}
	var ack BatchMessages
	if err := w.PutMessages(batch, &ack); err == nil {
		t.Fatal("batch for an already-run superstep was acked as delivered")
	}
	if len(w.inbox) != 0 {
		t.Fatal("undeliverable batch was buffered")
	}
}

func TestEarlyBatchDeliveredAtItsSuperstep(t *testing.T) {
	partition := buildTestPartition(map[uint64][]uint64{1: {2}, 2: {}})
	w := newTestWorker(0, 1, partition, DefaultConfig())

	// arrives two rounds early; must sit buffered until superstep 3
	early := BatchMessages{
		SuperStepNum: 3,
		FromWorker:   1,
		Messages: []Message{
			{
				SuperStepNum:    3,
				SourceVertexId:  1,
				DestVertexId:    2,
				SourceScore:     4,
				SourceOutDegree: 1,
				HasUpdate:       true,
				Signal:          true,
			},
		},
	}
	var ack BatchMessages
	if err := w.PutMessages(early, &ack); err != nil {
		t.Fatalf("early batch refused: %v", err)
	}

	computeRound(t, w, 1)
	computeRound(t, w, 2)
	mirror := w.engine.vertices[2].InEdges[1]
	if mirror.SourceScore == 4 {
		t.Fatal("batch for superstep 3 was delivered early")
	}
	if mirror.SourceScore != 0 {
		t.Fatalf("round 2 mirror score = %v, want 0", mirror.SourceScore)
	}

	computeRound(t, w, 3)
	if mirror.SourceScore != 4 {
		t.Fatalf("buffered batch never delivered: mirror score = %v, want 4", mirror.SourceScore)
	}
	if !almostEqual(w.engine.vertices[2].Score, (1+0.05*4.0)/1.0) {
		t.Errorf("vertex 2 score = %v after gathering the late mirror", w.engine.vertices[2].Score)
	}
}

// Two workers over real RPC: the follower's owner finishes its superstep and
// pushes its batch before the target's owner has started the same round, so
// the batch must be held for the round that consumes it.
func TestTwoWorkersExchangeMirrorUpdates(t *testing.T) {
	follower := uint64(1)
	target := uint64(0)
	for id := uint64(2); id < 1000; id++ {
		if util.HashId(id)%2 != util.HashId(follower)%2 {
			target = id
			break
		}
	}
	if target == 0 {
		t.Fatal("found no vertex id hashing to the other partition")
	}

	full := buildTestPartition(map[uint64][]uint64{follower: {target}, target: {}})
	cfg := DefaultConfig()
	workers := make([]*Worker, 2)
	for i := uint32(0); i < 2; i++ {
		part := make(Partition)
		for id, v := range full {
			if uint32(util.HashId(id)%2) == i {
				part[id] = v
			}
		}
		workers[i] = newTestWorker(i, 2, part, cfg)
	}
	directory := make(WorkerDirectory)
	for i, w := range workers {
		directory[uint32(i)] = serveWorkerRPC(t, w)
	}
	for _, w := range workers {
		w.directory = directory
	}

	followerOwner := workers[util.HashId(follower)%2]
	targetOwner := workers[util.HashId(target)%2]

	// the follower's owner runs first, so its batch lands while the
	// target's owner is still at superstep 0
	signals := uint64(0)
	for _, w := range []*Worker{followerOwner, targetOwner} {
		signals += computeRound(t, w, 1).MessagesSent
	}
	if signals != 1 {
		t.Fatalf("round 1 sent %v signals, want 1", signals)
	}
	if got := len(targetOwner.inbox[2]); got != 1 {
		t.Fatalf("cross-worker batch not buffered for superstep 2: %v messages held", got)
	}

	active := 0
	signals = 0
	for _, w := range workers {
		reply := computeRound(t, w, 2)
		if reply.IsActive {
			active++
		}
		signals += reply.MessagesSent
	}
	if active != 0 || signals != 0 {
		t.Fatalf("no quiescence after round 2: %v active workers, %v signals", active, signals)
	}

	if got := targetOwner.engine.vertices[target].InEdges[follower].SourceScore; got != 0 {
		t.Errorf("target's mirror of the follower = %v, want 0", got)
	}
	if got := followerOwner.engine.vertices[follower].Score; got != 0 {
		t.Errorf("follower score = %v, want 0", got)
	}
	if got := targetOwner.engine.vertices[target].Score; !almostEqual(got, 1.0) {
		t.Errorf("target score = %v, want 1.0", got)
	}
}
