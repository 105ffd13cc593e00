// Package graph persists follower graphs in the shape the engine consumes:
// each vertex record carries its out-edges plus, for every in-edge, the
// source id and the source's out-degree.
package graph

import (
	"context"
	"fmt"

	"tunkrank/util"
)

const (
	ProviderDynamoDB  = "dynamodb"
	ProviderMySQL     = "mysql"
	ProviderSQLServer = "sqlserver"
	ProviderMongoDB   = "mongodb"
)

// InNeighbor describes one in-edge endpoint. The source out-degree is
// recorded at ingest time so gather never needs a remote lookup before the
// first score update arrives.
type InNeighbor struct {
	SourceId        uint64
	SourceOutDegree uint64
}

type VertexRecord struct {
	ID   uint64
	Out  []uint64
	In   []InNeighbor
	Hash uint64
}

// Store is the persistence contract shared by all providers. LoadPartition
// returns the records owned by one worker under the engine's hash routing.
type Store interface {
	CreateTable(ctx context.Context, tableName string) error
	AddGraph(ctx context.Context, tableName string, records []VertexRecord) error
	LoadPartition(ctx context.Context, tableName string, workerId uint32, numWorkers uint8) ([]VertexRecord, error)
}

func OpenStore(provider string) (Store, error) {
	switch provider {
	case ProviderDynamoDB:
		return NewDynamoStore()
	case ProviderMySQL, ProviderSQLServer:
		return NewSQLStore(provider)
	case ProviderMongoDB:
		return NewMongoStore()
	default:
		return nil, fmt.Errorf("unknown graph store provider: %v", provider)
	}
}

// ownsRecord must agree with the worker signal routing: both sides partition
// by HashId of the vertex id.
func ownsRecord(id uint64, workerId uint32, numWorkers uint8) bool {
	return util.HashId(id)%uint64(numWorkers) == uint64(workerId)
}
