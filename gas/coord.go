package gas

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"net"
	"net/http"
	"net/rpc"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/improbable-eng/grpc-web/go/grpcweb"
	"google.golang.org/grpc"

	fchecker "tunkrank/fcheck"
	coordpb "tunkrank/gas/proto/coord"
	"tunkrank/util"
)

const (
	coordProcesses    = 4
	maxComputeRetries = 3
)

// WorkerPool maps worker ids to their nodes
type WorkerPool map[uint32]WorkerNode

type CoordConfig struct {
	ClientAPIListenAddr   string // clients reach the gRPC API here
	WorkerAPIListenAddr   string // joining workers message this addr
	ExternalAPIListenAddr string // operational HTTP endpoint
	WebAPIListenAddr      string // grpc-web endpoint for browser clients
	QueryWorkerCount      uint8  // partitions per query
	LostMsgsThresh        uint8  // fcheck
	StepsBetweenCheckpoints uint64
}

// Coord owns the worker pool and drives queries through superstep barriers.
// Clients talk gRPC; workers talk net/rpc.
type Coord struct {
	coordpb.UnimplementedCoordServer
	config CoordConfig

	mx                    sync.Mutex
	workers               WorkerPool // worker config id -> node
	queryWorkers          WorkerPool // logical id -> node, for the running query
	callbook              WorkerCallBook
	query                 Query
	queryRunning          bool
	superStepNumber       uint64
	lastCheckpointNumber  uint64
	hasCheckpoint         bool
	lastWorkerCheckpoints map[uint32]uint64
	failedWorkerCh        chan uint32
	progressCh            chan queryProgress
}

type queryProgress struct {
	superStepNumber uint64
	activeWorkers   uint32
	messagesSent    uint64
	done            bool
}

func NewCoord() *Coord {
	return &Coord{
		workers:               make(WorkerPool),
		queryWorkers:          make(WorkerPool),
		callbook:              make(WorkerCallBook),
		lastWorkerCheckpoints: make(map[uint32]uint64),
		failedWorkerCh:        make(chan uint32, 16),
		progressCh:            make(chan queryProgress, 16),
	}
}

// StartQuery is the gRPC entry point: assign workers, load partitions, run
// supersteps to termination, save results.
func (c *Coord) StartQuery(ctx context.Context, q *coordpb.Query) (*coordpb.QueryResult, error) {
	var reply coordpb.QueryResult
	reply.Query = q

	query := Query{
		ClientId:    q.ClientId,
		TableName:   q.TableName,
		Provider:    q.Provider,
		RetweetProb: q.RetweetProb,
		Tolerance:   q.Tolerance,
		Iterations:  q.Iterations,
		SavePrefix:  q.SavePrefix,
	}
	log.Printf("StartQuery: received query: %v\n", query)

	c.mx.Lock()
	if c.queryRunning {
		c.mx.Unlock()
		reply.Error = "another query is already running"
		return &reply, nil
	}
	c.queryRunning = true
	c.mx.Unlock()
	defer func() {
		c.mx.Lock()
		c.queryRunning = false
		c.queryWorkers = make(WorkerPool)
		c.callbook = make(WorkerCallBook)
		c.query = Query{}
		c.mx.Unlock()
	}()

	workerCount := int(c.config.QueryWorkerCount)
	for {
		c.mx.Lock()
		joined := len(c.workers)
		c.mx.Unlock()
		if joined >= workerCount {
			break
		}
		log.Printf(
			"StartQuery: have %v of %v workers - waiting for more to join\n",
			joined, workerCount,
		)
		time.Sleep(time.Second)
	}

	if err := c.assignQueryWorkers(workerCount); err != nil {
		reply.Error = err.Error()
		return &reply, nil
	}
	c.query = query
	c.superStepNumber = 1
	c.lastCheckpointNumber = 0
	c.hasCheckpoint = false
	c.lastWorkerCheckpoints = make(map[uint32]uint64)

	if query.Iterations > 0 {
		log.Printf(
			"StartQuery: iterations set - forcing the synchronous engine for %v rounds\n",
			query.Iterations,
		)
	}

	start := time.Now()

	numVertices, err := c.startWorkers(query)
	if err != nil {
		reply.Error = err.Error()
		return &reply, nil
	}
	log.Printf(
		"StartQuery: %v workers loaded %v vertices total\n",
		workerCount, numVertices,
	)

	superSteps, err := c.compute()
	if err != nil {
		reply.Error = err.Error()
		return &reply, nil
	}

	var outputs []string
	if query.SavePrefix != "" {
		outputs, err = c.writeResults(query.SavePrefix)
		if err != nil {
			reply.Error = err.Error()
			return &reply, nil
		}
	}

	c.endQuery()

	runtime := time.Since(start).Seconds()
	log.Printf(
		"StartQuery: finished in %v supersteps over %v vertices (%.3fs)\n",
		superSteps, numVertices, runtime,
	)

	reply.NumVertices = numVertices
	reply.Supersteps = superSteps
	reply.RuntimeSecs = runtime
	reply.OutputFiles = outputs
	return &reply, nil
}

// QueryProgress streams one update per superstep barrier until the query
// completes.
func (c *Coord) QueryProgress(
	req *coordpb.QueryProgressRequest, stream coordpb.Coord_QueryProgressServer,
) error {
	for progress := range c.progressCh {
		payload := coordpb.QueryProgressResponse{
			SuperstepNumber: progress.superStepNumber,
			ActiveWorkers:   progress.activeWorkers,
			MessagesSent:    progress.messagesSent,
			Done:            progress.done,
		}
		if err := stream.Send(&payload); err != nil {
			return err
		}
		if progress.done {
			return nil
		}
	}
	return nil
}

func (c *Coord) publishProgress(p queryProgress) {
	select {
	case c.progressCh <- p:
	default: // nobody is streaming; drop it
	}
}

// assignQueryWorkers gives the first workerCount workers logical ids in
// config-id order and dials their listen addresses.
func (c *Coord) assignQueryWorkers(workerCount int) error {
	c.mx.Lock()
	defer c.mx.Unlock()

	c.queryWorkers = make(WorkerPool)
	c.callbook = make(WorkerCallBook)

	configIds := make([]uint32, 0, len(c.workers))
	for id := range c.workers {
		configIds = append(configIds, id)
	}
	sort.Slice(configIds, func(i, j int) bool { return configIds[i] < configIds[j] })

	logicalId := uint32(0)
	for _, configId := range configIds {
		if int(logicalId) == workerCount {
			break
		}
		workerNode := c.workers[configId]
		workerNode.WorkerLogicalId = logicalId

		client, err := util.DialRPC(workerNode.WorkerListenAddr)
		if err != nil {
			return fmt.Errorf(
				"cannot dial worker %v at %v: %w",
				workerNode.WorkerConfigId, workerNode.WorkerListenAddr, err,
			)
		}

		c.workers[configId] = workerNode
		c.queryWorkers[logicalId] = workerNode
		c.callbook[logicalId] = client
		log.Printf(
			"assignQueryWorkers: worker %v assigned logical id %v\n",
			configId, logicalId,
		)
		logicalId++
	}
	return nil
}

func (c *Coord) workerDirectory() WorkerDirectory {
	directory := make(WorkerDirectory)
	for _, workerNode := range c.queryWorkers {
		directory[workerNode.WorkerLogicalId] = workerNode.WorkerListenAddr
	}
	return directory
}

// startWorkers fans out Worker.StartQuery and waits for every partition to
// load. Returns the total vertex count.
func (c *Coord) startWorkers(query Query) (uint64, error) {
	numWorkers := len(c.queryWorkers)
	done := make(chan *rpc.Call, numWorkers)
	directory := c.workerDirectory()

	for logicalId, client := range c.callbook {
		args := StartSuperStep{
			NumWorkers:      uint8(numWorkers),
			WorkerLogicalId: logicalId,
			WorkerDirectory: directory,
			Query:           query,
		}
		client.Go("Worker.StartQuery", args, new(StartSuperStepResult), done)
	}

	total := uint64(0)
	for i := 0; i < numWorkers; i++ {
		call := <-done
		if call.Error != nil {
			return 0, fmt.Errorf("StartQuery fan-out failed: %w", call.Error)
		}
		result := call.Reply.(*StartSuperStepResult)
		log.Printf(
			"startWorkers: worker %v ready with %v vertices\n",
			result.WorkerLogicalId, result.NumVertices,
		)
		total += result.NumVertices
	}
	return total, nil
}

// compute drives superstep barriers until the scheduling policy terminates
// the run: a fixed round count in synchronous mode, quiescence (no active
// vertices, no signals in flight) in dynamic mode.
func (c *Coord) compute() (uint64, error) {
	iterations := c.query.Config().Iterations
	retries := 0

	for {
		select {
		case workerId := <-c.failedWorkerCh:
			return 0, fmt.Errorf("worker %v failed during the query", workerId)
		default:
		}

		ssn := c.superStepNumber
		if iterations > 0 && ssn > iterations {
			c.publishProgress(queryProgress{superStepNumber: ssn - 1, done: true})
			return iterations, nil
		}

		isCheckpoint := c.config.StepsBetweenCheckpoints > 0 &&
			ssn%c.config.StepsBetweenCheckpoints == 0

		start := time.Now()
		allInactive, totalSent, activeWorkers, err := c.progressSuperStep(ssn)
		if err == nil && isCheckpoint {
			// only checkpoint after the barrier: every worker has finished
			// the superstep and delivered its batches, so the snapshots
			// form a consistent cut
			err = c.saveCheckpoints(ssn)
		}
		if err != nil {
			log.Printf("compute: superstep %v failed: %v\n", ssn, err)
			retries++
			c.mx.Lock()
			hasCheckpoint := c.hasCheckpoint
			c.mx.Unlock()
			if retries > maxComputeRetries || !hasCheckpoint {
				return 0, err
			}
			if err := c.revertToCheckpoint(); err != nil {
				return 0, err
			}
			continue
		}
		retries = 0

		log.Printf(
			"compute: superstep %v took %.3fs (%v active workers, %v signals)\n",
			ssn, time.Since(start).Seconds(), activeWorkers, totalSent,
		)

		if iterations == 0 && allInactive && totalSent == 0 {
			c.publishProgress(queryProgress{superStepNumber: ssn, done: true})
			return ssn, nil
		}
		c.publishProgress(queryProgress{
			superStepNumber: ssn,
			activeWorkers:   activeWorkers,
			messagesSent:    totalSent,
		})
		c.superStepNumber++
	}
}

func (c *Coord) progressSuperStep(ssn uint64) (
	allInactive bool, totalSent uint64, activeWorkers uint32, err error,
) {
	numWorkers := len(c.callbook)
	done := make(chan *rpc.Call, numWorkers)

	args := ProgressSuperStep{SuperStepNum: ssn}
	for _, client := range c.callbook {
		client.Go("Worker.ComputeVertices", args, new(ProgressSuperStepResult), done)
	}

	allInactive = true
	for i := 0; i < numWorkers; i++ {
		call := <-done
		if call.Error != nil {
			return false, 0, 0, fmt.Errorf(
				"%v: %w", call.ServiceMethod, call.Error,
			)
		}
		result := call.Reply.(*ProgressSuperStepResult)
		if result.IsActive {
			allInactive = false
			activeWorkers++
		}
		totalSent += result.MessagesSent
	}
	return allInactive, totalSent, activeWorkers, nil
}

// saveCheckpoints fans out Worker.SaveCheckpoint after a superstep barrier.
// Each worker notifies Coord.UpdateCheckpoint once its snapshot is durable.
func (c *Coord) saveCheckpoints(ssn uint64) error {
	numWorkers := len(c.callbook)
	done := make(chan *rpc.Call, numWorkers)
	args := CheckpointMsg{SuperStepNumber: ssn}
	for _, client := range c.callbook {
		client.Go("Worker.SaveCheckpoint", args, new(CheckpointMsg), done)
	}
	for i := 0; i < numWorkers; i++ {
		call := <-done
		if call.Error != nil {
			return fmt.Errorf("checkpoint fan-out failed: %w", call.Error)
		}
	}
	return nil
}

func (c *Coord) revertToCheckpoint() error {
	c.mx.Lock()
	checkpointNumber := c.lastCheckpointNumber
	c.mx.Unlock()
	log.Printf("revertToCheckpoint: restarting from superstep %v\n", checkpointNumber)

	numWorkers := len(c.callbook)
	done := make(chan *rpc.Call, numWorkers)
	args := RestartSuperStep{
		SuperStepNumber: checkpointNumber,
		NumWorkers:      uint8(numWorkers),
		WorkerDirectory: c.workerDirectory(),
		Query:           c.query,
	}
	for _, client := range c.callbook {
		client.Go("Worker.RevertToLastCheckpoint", args, new(RestartSuperStep), done)
	}
	for i := 0; i < numWorkers; i++ {
		call := <-done
		if call.Error != nil {
			return fmt.Errorf("revert failed: %w", call.Error)
		}
	}
	c.superStepNumber = checkpointNumber + 1
	return nil
}

func (c *Coord) writeResults(savePrefix string) ([]string, error) {
	numWorkers := len(c.callbook)
	done := make(chan *rpc.Call, numWorkers)
	args := WriteResults{SavePrefix: savePrefix}
	for _, client := range c.callbook {
		client.Go("Worker.WriteResults", args, new(WriteResultsResult), done)
	}

	var outputs []string
	for i := 0; i < numWorkers; i++ {
		call := <-done
		if call.Error != nil {
			return nil, fmt.Errorf("WriteResults fan-out failed: %w", call.Error)
		}
		result := call.Reply.(*WriteResultsResult)
		outputs = append(outputs, result.OutputFile)
	}
	sort.Strings(outputs)
	return outputs, nil
}

func (c *Coord) endQuery() {
	numWorkers := len(c.callbook)
	done := make(chan *rpc.Call, numWorkers)
	for _, client := range c.callbook {
		client.Go("Worker.EndQuery", EndQuery{}, new(EndQuery), done)
	}
	for i := 0; i < numWorkers; i++ {
		call := <-done
		if call.Error != nil {
			log.Printf("endQuery: %v\n", call.Error)
		}
	}
}

// UpdateCheckpoint records the latest superstep a worker checkpointed; the
// global checkpoint number only advances once every query worker has saved
// that superstep.
func (c *Coord) UpdateCheckpoint(msg CheckpointMsg, reply *CheckpointMsg) error {
	c.mx.Lock()
	defer c.mx.Unlock()
	c.lastWorkerCheckpoints[msg.WorkerId] = msg.SuperStepNumber

	allWorkersUpdated := true
	for workerId := range c.queryWorkers {
		if c.lastWorkerCheckpoints[workerId] != msg.SuperStepNumber {
			allWorkersUpdated = false
			break
		}
	}
	if allWorkersUpdated {
		c.lastCheckpointNumber = msg.SuperStepNumber
		c.hasCheckpoint = true
		log.Printf(
			"UpdateCheckpoint: coord updated checkpoint number to %v\n",
			c.lastCheckpointNumber,
		)
	}

	*reply = msg
	return nil
}

func (c *Coord) JoinWorker(w WorkerNode, reply *WorkerNode) error {
	log.Printf("JoinWorker: adding worker %d\n", w.WorkerConfigId)

	client, err := util.DialRPC(w.WorkerListenAddr)
	if err != nil {
		log.Printf(
			"JoinWorker: coord could not dial worker addr %v, err: %v\n",
			w.WorkerListenAddr, err,
		)
		return err
	}
	client.Close()

	c.mx.Lock()
	if _, ok := c.workers[w.WorkerConfigId]; ok {
		c.mx.Unlock()
		return fmt.Errorf("worker with config id %v already joined", w.WorkerConfigId)
	}
	c.workers[w.WorkerConfigId] = w
	c.mx.Unlock()

	go c.monitor(w)

	log.Printf("JoinWorker: added worker %v\n", w.WorkerConfigId)
	*reply = w
	return nil
}

// monitor watches one worker's heartbeats; a missed-ack threshold marks the
// worker failed, removes it from the pool and aborts any query using it.
func (c *Coord) monitor(w WorkerNode) {
	localIP := strings.Split(c.config.WorkerAPIListenAddr, ":")[0]
	notifyCh, _, err := fchecker.Start(fchecker.StartStruct{
		AckLocalIPAckLocalPort:       localIP + ":0",
		EpochNonce:                   rand.Uint64(),
		HBeatLocalIPHBeatLocalPort:   localIP + ":0",
		HBeatRemoteIPHBeatRemotePort: w.WorkerFCheckAddr,
		LostMsgThresh:                c.config.LostMsgsThresh,
		ServerId:                     w.WorkerConfigId,
	})
	if err != nil || notifyCh == nil {
		log.Printf("monitor: fchecker failed to start for worker %v: %v\n", w.WorkerConfigId, err)
		return
	}

	log.Printf("monitor: fcheck for worker %d running\n", w.WorkerConfigId)
	notify := <-notifyCh
	log.Printf("monitor: worker %v failed: %v\n", w.WorkerConfigId, notify)

	c.mx.Lock()
	failedWorker := c.workers[w.WorkerConfigId]
	delete(c.workers, w.WorkerConfigId)
	_, inQuery := c.queryWorkers[failedWorker.WorkerLogicalId]
	running := c.queryRunning
	c.mx.Unlock()

	if running && inQuery {
		c.failedWorkerCh <- failedWorker.WorkerLogicalId
	}
}

func (c *Coord) listenWorkers(workerAPIListenAddr string) {
	wlisten, err := net.Listen("tcp", workerAPIListenAddr)
	if err != nil {
		log.Fatalf("listenWorkers: error listening: %v\n", err)
	}
	log.Printf("listenWorkers: listening for workers at %v\n", workerAPIListenAddr)

	for {
		conn, err := wlisten.Accept()
		if err != nil {
			log.Printf("listenWorkers: error accepting worker: %v\n", err)
			continue
		}
		go rpc.ServeConn(conn)
	}
}

func (c *Coord) listenClientsgRPC(server *grpc.Server, clientAPIListenAddr string) {
	lis, err := net.Listen("tcp", clientAPIListenAddr)
	if err != nil {
		log.Fatalf("listenClients: error listening: %v\n", err)
	}
	log.Printf("listenClients: listening for clients at %v\n", clientAPIListenAddr)

	if err := server.Serve(lis); err != nil {
		log.Fatalf("listenClients: error while serving: %v", err)
	}
}

// listenWebClients multiplexes the same gRPC API over grpc-web for browser
// clients.
func (c *Coord) listenWebClients(server *grpc.Server, webAPIListenAddr string) {
	wrapped := grpcweb.WrapServer(server)
	router := http.NewServeMux()
	router.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if wrapped.IsGrpcWebRequest(r) || wrapped.IsAcceptableGrpcCorsRequest(r) {
			wrapped.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	}))

	srv := &http.Server{
		Addr:         webAPIListenAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	log.Printf("listenWebClients: listening on %v\n", webAPIListenAddr)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("listenWebClients: error while serving: %v", err)
	}
}

func (c *Coord) Status(context *gin.Context) {
	c.mx.Lock()
	defer c.mx.Unlock()
	context.JSON(http.StatusOK, gin.H{
		"queryRunning":   c.queryRunning,
		"superstep":      c.superStepNumber,
		"lastCheckpoint": c.lastCheckpointNumber,
		"workers":        len(c.workers),
		"queryWorkers":   len(c.queryWorkers),
	})
}

func (c *Coord) ListWorkers(context *gin.Context) {
	c.mx.Lock()
	workers := make([]WorkerNode, 0, len(c.workers))
	for _, w := range c.workers {
		workers = append(workers, w)
	}
	c.mx.Unlock()
	sort.Slice(workers, func(i, j int) bool {
		return workers[i].WorkerConfigId < workers[j].WorkerConfigId
	})
	context.JSON(http.StatusOK, gin.H{"workers": workers})
}

func (c *Coord) listenExternalRequests(externalAPIListenAddr string) {
	router := gin.Default()
	externalAPI := router.Group("/api")
	{
		externalAPI.GET("/status", c.Status)
		externalAPI.GET("/workers", c.ListWorkers)
	}
	log.Printf("listenExternalRequests: listening on %v\n", externalAPIListenAddr)
	if err := router.Run(externalAPIListenAddr); err != nil {
		log.Fatalf("listenExternalRequests: error while serving: %v", err)
	}
}

// Start only returns when network or other unrecoverable errors occur.
func (c *Coord) Start(config CoordConfig) error {
	c.config = config
	if c.config.QueryWorkerCount == 0 {
		c.config.QueryWorkerCount = 1
	}

	if err := rpc.Register(c); err != nil {
		return fmt.Errorf("coord could not register RPCs: %w", err)
	}

	grpcServer := grpc.NewServer()
	coordpb.RegisterCoordServer(grpcServer, c)

	wg := sync.WaitGroup{}
	wg.Add(coordProcesses)
	go c.listenWorkers(config.WorkerAPIListenAddr)
	go c.listenClientsgRPC(grpcServer, config.ClientAPIListenAddr)
	go c.listenExternalRequests(config.ExternalAPIListenAddr)
	if config.WebAPIListenAddr != "" {
		go c.listenWebClients(grpcServer, config.WebAPIListenAddr)
	}
	wg.Wait()

	// will never return
	return nil
}
