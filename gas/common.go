package gas

import (
	"net/rpc"
)

// Message carries one source vertex's state along an out-edge to the owner
// of the target vertex. HasUpdate refreshes the target's in-edge mirror;
// Signal marks the target active for SuperStepNum.
type Message struct {
	SuperStepNum    uint64
	SourceVertexId  uint64
	DestVertexId    uint64
	SourceScore     float64
	SourceOutDegree uint64
	HasUpdate       bool
	Signal          bool
}

// BatchMessages is the unit of worker-to-worker delivery.
type BatchMessages struct {
	SuperStepNum uint64
	FromWorker   uint32
	Messages     []Message
}

type WorkerNode struct {
	WorkerConfigId   uint32
	WorkerLogicalId  uint32
	WorkerAddr       string
	WorkerFCheckAddr string
	WorkerListenAddr string
}

// Query describes one TunkRank computation over a stored graph.
type Query struct {
	ClientId    string
	TableName   string
	Provider    string // dynamodb, mysql, sqlserver or mongodb
	RetweetProb float64
	Tolerance   float64
	Iterations  uint64 // 0 runs the dynamic engine
	SavePrefix  string
}

func (q Query) Config() Config {
	cfg := Config{
		RetweetProb: q.RetweetProb,
		Tolerance:   q.Tolerance,
		Iterations:  q.Iterations,
	}
	if cfg.RetweetProb == 0 {
		cfg.RetweetProb = DefaultRetweetProb
	}
	if cfg.Tolerance == 0 {
		cfg.Tolerance = DefaultTolerance
	}
	return cfg
}

type StartSuperStep struct {
	NumWorkers      uint8
	WorkerLogicalId uint32
	WorkerDirectory WorkerDirectory
	Query           Query
}

type StartSuperStepResult struct {
	WorkerLogicalId uint32
	NumVertices     uint64
}

type ProgressSuperStep struct {
	SuperStepNum uint64
}

type ProgressSuperStepResult struct {
	SuperStepNum uint64
	IsActive     bool
	MessagesSent uint64
}

type RestartSuperStep struct {
	SuperStepNumber uint64
	NumWorkers      uint8
	WorkerDirectory WorkerDirectory
	Query           Query
}

type CheckpointMsg struct {
	SuperStepNumber uint64
	WorkerId        uint32
}

type WriteResults struct {
	SavePrefix string
}

type WriteResultsResult struct {
	OutputFile  string
	NumVertices uint64
}

type EndQuery struct{}

// WorkerDirectory maps worker logical ids to listen addresses
type WorkerDirectory map[uint32]string

// WorkerCallBook maps worker logical ids to rpc clients (connections)
type WorkerCallBook map[uint32]*rpc.Client
