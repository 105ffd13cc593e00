package graph

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoDatabaseName = "tunkrank"

// MongoStore keeps one document per vertex, all fields as strings to match
// the ingest format.
type MongoStore struct {
	client *mongo.Client
}

// mongoRecord is the stored document shape.
type mongoRecord struct {
	ID   string
	Out  []string
	In   []string
	Hash string
}

func NewMongoStore() (*MongoStore, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("error loading env file: %v\n", err)
	}
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	serverAPIOptions := options.ServerAPI(options.ServerAPIVersion1)
	clientOptions := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(serverAPIOptions)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("could not connect to mongodb: %w", err)
	}
	return &MongoStore{client: client}, nil
}

func (s *MongoStore) collection(tableName string) *mongo.Collection {
	return s.client.Database(mongoDatabaseName).Collection(tableName)
}

// CreateTable drops any existing collection of the same name; mongo creates
// the collection itself on first insert.
func (s *MongoStore) CreateTable(ctx context.Context, tableName string) error {
	return s.collection(tableName).Drop(ctx)
}

func (s *MongoStore) AddGraph(ctx context.Context, tableName string, records []VertexRecord) error {
	collection := s.collection(tableName)

	for start := 0; start < len(records); start += maximumItemsPerBatch {
		end := start + maximumItemsPerBatch
		if end > len(records) {
			end = len(records)
		}

		batch := make([]interface{}, 0, end-start)
		for _, record := range records[start:end] {
			batch = append(batch, bson.D{
				{Key: "ID", Value: strconv.FormatUint(record.ID, 10)},
				{Key: "Out", Value: formatIds(record.Out)},
				{Key: "In", Value: formatInNeighbors(record.In)},
				{Key: "Hash", Value: strconv.FormatUint(record.Hash, 10)},
			})
		}

		if _, err := collection.InsertMany(ctx, batch); err != nil {
			return fmt.Errorf("failed to upload batch at %v: %w", start, err)
		}
		log.Printf("AddGraph: uploaded records %v-%v to %v\n", start, end-1, tableName)
	}
	return nil
}

func (s *MongoStore) LoadPartition(
	ctx context.Context, tableName string, workerId uint32, numWorkers uint8,
) ([]VertexRecord, error) {
	cursor, err := s.collection(tableName).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch vertices from %v: %w", tableName, err)
	}

	var documents []mongoRecord
	if err = cursor.All(ctx, &documents); err != nil {
		return nil, fmt.Errorf("failed to read vertices: %w", err)
	}

	var records []VertexRecord
	for _, doc := range documents {
		record, err := parseMongoRecord(doc)
		if err != nil {
			return nil, err
		}
		if !ownsRecord(record.ID, workerId, numWorkers) {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

func parseMongoRecord(doc mongoRecord) (VertexRecord, error) {
	id, err := strconv.ParseUint(doc.ID, 10, 64)
	if err != nil {
		return VertexRecord{}, fmt.Errorf("malformed vertex id %q: %w", doc.ID, err)
	}
	hash, err := strconv.ParseUint(doc.Hash, 10, 64)
	if err != nil {
		return VertexRecord{}, fmt.Errorf("malformed hash for vertex %v: %w", id, err)
	}

	out := make([]uint64, len(doc.Out))
	for idx, entry := range doc.Out {
		out[idx], err = strconv.ParseUint(entry, 10, 64)
		if err != nil {
			return VertexRecord{}, fmt.Errorf("malformed out-neighbor for vertex %v: %w", id, err)
		}
	}
	in, err := parseInNeighbors(doc.In)
	if err != nil {
		return VertexRecord{}, fmt.Errorf("vertex %v: %w", id, err)
	}

	return VertexRecord{ID: id, Out: out, In: in, Hash: hash}, nil
}

func formatIds(ids []uint64) []string {
	formatted := make([]string, len(ids))
	for idx, id := range ids {
		formatted[idx] = strconv.FormatUint(id, 10)
	}
	return formatted
}

func formatInNeighbors(in []InNeighbor) []string {
	formatted := make([]string, len(in))
	for idx, n := range in {
		formatted[idx] = formatInNeighbor(n)
	}
	return formatted
}
