package gas

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/rpc"
	"sync"

	fchecker "tunkrank/fcheck"
	"tunkrank/graph"
	"tunkrank/util"
)

type WorkerConfig struct {
	WorkerId              uint32
	CoordAddr             string
	WorkerAddr            string
	WorkerListenAddr      string
	FCheckAckLocalAddress string
}

// Worker owns one partition of the graph. The coord drives it through
// StartQuery / ComputeVertices / WriteResults / EndQuery; peers deliver
// messages through PutMessages between supersteps.
type Worker struct {
	config     WorkerConfig
	LogicalId  uint32
	NumWorkers uint8
	directory  WorkerDirectory
	callbook   WorkerCallBook
	engine     *Engine

	// mu guards superStep and inbox. Batches are keyed by the superstep
	// that consumes them: the coord fans ComputeVertices out concurrently,
	// so a faster peer may push its batch for round N+1 before this worker
	// has started round N.
	mu        sync.Mutex
	superStep uint64
	inbox     map[uint64][]Message
}

func NewWorker(config WorkerConfig) *Worker {
	return &Worker{
		config:   config,
		callbook: make(WorkerCallBook),
		inbox:    make(map[uint64][]Message),
	}
}

// Start registers the worker for RPCs, starts answering heartbeats and joins
// the coord. Blocks for the lifetime of the process.
func (w *Worker) Start() error {
	if w.config.WorkerAddr == "" {
		return fmt.Errorf("worker %v has no address configured", w.config.WorkerId)
	}

	handler := rpc.NewServer()
	if err := handler.Register(w); err != nil {
		return fmt.Errorf("worker %v could not register RPCs: %w", w.config.WorkerId, err)
	}

	listenAddr, err := net.ResolveTCPAddr("tcp", w.config.WorkerListenAddr)
	util.CheckErr(err, "Worker %v could not resolve WorkerListenAddr: %v", w.config.WorkerId, w.config.WorkerListenAddr)
	listener, err := net.ListenTCP("tcp", listenAddr)
	util.CheckErr(err, "Worker %v could not listen on %v", w.config.WorkerId, listenAddr)

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				log.Printf("Worker %v: accept error: %v\n", w.config.WorkerId, err)
				continue
			}
			go handler.ServeConn(conn)
		}
	}()

	hBeatAddr := w.startFCheckHBeat()
	log.Printf("Worker %v: answering heartbeats on %v\n", w.config.WorkerId, hBeatAddr)

	coordClient, err := util.DialRPC(w.config.CoordAddr)
	util.CheckErr(err, "Worker %d failed to dial coord at %s", w.config.WorkerId, w.config.CoordAddr)

	workerNode := WorkerNode{
		WorkerConfigId:   w.config.WorkerId,
		WorkerAddr:       w.config.WorkerAddr,
		WorkerFCheckAddr: hBeatAddr,
		WorkerListenAddr: w.config.WorkerListenAddr,
	}
	var response WorkerNode
	err = coordClient.Call("Coord.JoinWorker", workerNode, &response)
	util.CheckErr(err, "Worker %v could not join\n", w.config.WorkerId)

	log.Printf("Worker %v joined coord successfully\n", w.config.WorkerId)
	select {}
}

func (w *Worker) startFCheckHBeat() string {
	_, addr, err := fchecker.Start(fchecker.StartStruct{
		AckLocalIPAckLocalPort: w.config.FCheckAckLocalAddress,
	})
	if err != nil {
		fchecker.Stop()
		util.CheckErr(err, "fchecker for Worker %d failed", w.config.WorkerId)
	}
	return addr
}

// StartQuery loads this worker's partition from the graph store, initializes
// every score to 1 and signals all vertices for superstep 1.
func (w *Worker) StartQuery(args StartSuperStep, reply *StartSuperStepResult) error {
	w.LogicalId = args.WorkerLogicalId
	w.NumWorkers = args.NumWorkers
	w.directory = args.WorkerDirectory
	w.callbook = make(WorkerCallBook)
	w.mu.Lock()
	w.superStep = 0
	w.inbox = make(map[uint64][]Message)
	w.mu.Unlock()

	store, err := graph.OpenStore(args.Query.Provider)
	if err != nil {
		return err
	}
	records, err := store.LoadPartition(
		context.Background(), args.Query.TableName, w.LogicalId, w.NumWorkers,
	)
	if err != nil {
		log.Printf(
			"StartQuery: worker %v failed to load partition from %v: %v\n",
			w.LogicalId, args.Query.Provider, err,
		)
		return err
	}

	partition := make(Partition, len(records))
	for _, record := range records {
		v := &Vertex{
			Id:       record.ID,
			OutEdges: record.Out,
			InEdges:  make(map[uint64]*InEdge, len(record.In)),
		}
		for _, in := range record.In {
			v.InEdges[in.SourceId] = &InEdge{SourceOutDegree: in.SourceOutDegree}
		}
		partition[record.ID] = v
	}
	partition.Init()

	w.engine = NewEngine(args.Query.Config(), partition, NewTunkRank)
	w.engine.SignalAll()

	if err := w.initializeCheckpoints(); err != nil {
		return err
	}
	if err := w.resetCheckpoints(); err != nil {
		return err
	}

	log.Printf(
		"StartQuery: worker %v loaded %v vertices (%v engine)\n",
		w.LogicalId, len(partition), w.engine.Mode(),
	)
	reply.WorkerLogicalId = w.LogicalId
	reply.NumVertices = uint64(len(partition))
	return nil
}

// ComputeVertices runs one superstep: deliver the messages buffered for this
// round, run gather/apply/scatter over the active set, then hand the produced
// messages to their owning workers.
func (w *Worker) ComputeVertices(args ProgressSuperStep, reply *ProgressSuperStepResult) error {
	if w.engine == nil {
		return fmt.Errorf("worker %v has no active query", w.LogicalId)
	}

	w.mu.Lock()
	w.superStep = args.SuperStepNum
	pending := w.inbox[args.SuperStepNum]
	delete(w.inbox, args.SuperStepNum)
	w.mu.Unlock()
	w.engine.Deliver(pending)

	out := w.engine.RunSuperStep()

	signalsSent, err := w.routeMessages(out, args.SuperStepNum+1)
	if err != nil {
		return err
	}

	reply.SuperStepNum = args.SuperStepNum
	reply.IsActive = w.engine.ActiveCount() > 0
	reply.MessagesSent = signalsSent
	return nil
}

// routeMessages partitions the superstep's outbound messages by owning
// worker. The local share goes straight to the inbox; remote batches are
// pushed synchronously so the coord's barrier sees a fully delivered round.
func (w *Worker) routeMessages(out []Message, deliveryRound uint64) (uint64, error) {
	batches := make(map[uint32][]Message)
	signals := uint64(0)
	for _, m := range out {
		owner := uint32(util.HashId(m.DestVertexId) % uint64(w.NumWorkers))
		batches[owner] = append(batches[owner], m)
		if m.Signal {
			signals++
		}
	}

	for owner, msgs := range batches {
		if owner == w.LogicalId {
			w.mu.Lock()
			w.inbox[deliveryRound] = append(w.inbox[deliveryRound], msgs...)
			w.mu.Unlock()
			continue
		}
		client, err := w.peerClient(owner)
		if err != nil {
			return 0, err
		}
		batch := BatchMessages{
			SuperStepNum: deliveryRound,
			FromWorker:   w.LogicalId,
			Messages:     msgs,
		}
		var ack BatchMessages
		if err := client.Call("Worker.PutMessages", batch, &ack); err != nil {
			return 0, fmt.Errorf(
				"worker %v could not deliver %v messages to worker %v: %w",
				w.LogicalId, len(msgs), owner, err,
			)
		}
	}
	return signals, nil
}

// PutMessages buffers a peer's batch until the superstep that consumes it.
// A batch for a superstep this worker has already run cannot be delivered
// anymore; failing the call makes the sender's round fail so the coord
// reverts instead of computing on lost messages.
func (w *Worker) PutMessages(args BatchMessages, reply *BatchMessages) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if args.SuperStepNum <= w.superStep {
		return fmt.Errorf(
			"worker %v got a batch for superstep %v from worker %v but already ran it (at %v)",
			w.LogicalId, args.SuperStepNum, args.FromWorker, w.superStep,
		)
	}
	if w.inbox == nil {
		w.inbox = make(map[uint64][]Message)
	}
	w.inbox[args.SuperStepNum] = append(w.inbox[args.SuperStepNum], args.Messages...)
	*reply = args
	return nil
}

// SaveCheckpoint snapshots and persists this worker's state for the given
// superstep. The coord calls it only after the superstep's barrier, once
// every worker has finished computing and delivering, so the snapshots
// across workers form a consistent cut.
func (w *Worker) SaveCheckpoint(args CheckpointMsg, reply *CheckpointMsg) error {
	if w.engine == nil {
		return fmt.Errorf("worker %v has no active query", w.LogicalId)
	}
	checkpoint, err := w.checkpoint(args.SuperStepNumber)
	if err != nil {
		return err
	}
	if _, err := w.storeCheckpoint(checkpoint); err != nil {
		return err
	}
	*reply = args
	return nil
}

// RevertToLastCheckpoint reloads vertex state, program state and the buffered
// inbox from the given superstep's checkpoint.
func (w *Worker) RevertToLastCheckpoint(req RestartSuperStep, reply *RestartSuperStep) error {
	w.NumWorkers = req.NumWorkers
	w.directory = req.WorkerDirectory
	w.callbook = make(WorkerCallBook)

	checkpoint, err := w.retrieveCheckpoint(req.SuperStepNumber)
	if err != nil {
		log.Printf("RevertToLastCheckpoint: worker %v: %v\n", w.LogicalId, err)
		return err
	}

	if err := w.engine.Restore(checkpoint.CheckpointState, checkpoint.SuperStepNumber); err != nil {
		return err
	}
	w.mu.Lock()
	w.inbox = checkpoint.Inbox
	if w.inbox == nil {
		w.inbox = make(map[uint64][]Message)
	}
	w.superStep = checkpoint.SuperStepNumber
	w.mu.Unlock()

	log.Printf(
		"RevertToLastCheckpoint: worker %v restored superstep %v (%v vertices)\n",
		w.LogicalId, checkpoint.SuperStepNumber, len(checkpoint.CheckpointState),
	)
	*reply = req
	return nil
}

// WriteResults persists this partition's final scores, one record per vertex.
func (w *Worker) WriteResults(args WriteResults, reply *WriteResultsResult) error {
	if w.engine == nil {
		return fmt.Errorf("worker %v has no active query", w.LogicalId)
	}
	path, n, err := writePartition(
		args.SavePrefix, w.LogicalId, w.NumWorkers, w.engine.Vertices(),
	)
	if err != nil {
		return err
	}
	log.Printf("WriteResults: worker %v wrote %v records to %v\n", w.LogicalId, n, path)
	reply.OutputFile = path
	reply.NumVertices = n
	return nil
}

func (w *Worker) EndQuery(args EndQuery, reply *EndQuery) error {
	w.engine = nil
	w.mu.Lock()
	w.inbox = make(map[uint64][]Message)
	w.superStep = 0
	w.mu.Unlock()
	return w.resetCheckpoints()
}

func (w *Worker) peerClient(logicalId uint32) (*rpc.Client, error) {
	if client, ok := w.callbook[logicalId]; ok {
		return client, nil
	}
	addr, ok := w.directory[logicalId]
	if !ok {
		return nil, fmt.Errorf("worker %v is not in the directory", logicalId)
	}
	client, err := util.DialRPC(addr)
	if err != nil {
		return nil, err
	}
	w.callbook[logicalId] = client
	return client, nil
}
