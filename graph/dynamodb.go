package graph

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultRegion        = "us-east-2"
	maximumItemsPerBatch = 25
)

// DynamoStore keeps one item per vertex, keyed by ID. In-neighbors are stored
// as "source:outDegree" strings.
type DynamoStore struct {
	svc *dynamodb.Client
}

func NewDynamoStore() (*DynamoStore, error) {
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = defaultRegion
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if key := os.Getenv("AWS_ACCESS_KEY_ID"); key != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				key, os.Getenv("AWS_SECRET_ACCESS_KEY"), "",
			),
		))
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(), opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}
	return &DynamoStore{svc: dynamodb.NewFromConfig(cfg)}, nil
}

func (s *DynamoStore) CreateTable(ctx context.Context, tableName string) error {
	definition := &dynamodb.CreateTableInput{
		AttributeDefinitions: []types.AttributeDefinition{
			{
				AttributeName: aws.String("ID"),
				AttributeType: types.ScalarAttributeTypeN,
			},
		},
		KeySchema: []types.KeySchemaElement{
			{
				AttributeName: aws.String("ID"),
				KeyType:       types.KeyTypeHash,
			},
		},
		TableName:   aws.String(tableName),
		BillingMode: types.BillingModePayPerRequest,
	}

	if _, err := s.svc.CreateTable(ctx, definition); err != nil {
		return fmt.Errorf("failed to create table %v: %w", tableName, err)
	}
	return s.waitForTable(ctx, tableName)
}

func (s *DynamoStore) waitForTable(ctx context.Context, tableName string) error {
	w := dynamodb.NewTableExistsWaiter(s.svc)
	return w.Wait(ctx,
		&dynamodb.DescribeTableInput{
			TableName: aws.String(tableName),
		},
		2*time.Minute,
		func(o *dynamodb.TableExistsWaiterOptions) {
			o.MaxDelay = 5 * time.Second
			o.MinDelay = 5 * time.Second
		})
}

func (s *DynamoStore) AddGraph(ctx context.Context, tableName string, records []VertexRecord) error {
	for start := 0; start < len(records); start += maximumItemsPerBatch {
		end := start + maximumItemsPerBatch
		if end > len(records) {
			end = len(records)
		}

		batch := make([]types.WriteRequest, 0, end-start)
		for _, record := range records[start:end] {
			batch = append(batch, marshalRecordWriteReq(record))
		}

		_, err := s.svc.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{
				tableName: batch,
			},
		})
		if err != nil {
			return fmt.Errorf("failed to upload batch at %v: %w", start, err)
		}
		log.Printf("AddGraph: uploaded records %v-%v to %v\n", start, end-1, tableName)
	}
	return nil
}

func marshalRecordWriteReq(record VertexRecord) types.WriteRequest {
	return types.WriteRequest{
		PutRequest: &types.PutRequest{
			Item: map[string]types.AttributeValue{
				"ID":   &types.AttributeValueMemberN{Value: strconv.FormatUint(record.ID, 10)},
				"Hash": &types.AttributeValueMemberN{Value: strconv.FormatUint(record.Hash, 10)},
				"Out":  &types.AttributeValueMemberL{Value: idsToAttributeValues(record.Out)},
				"In":   &types.AttributeValueMemberL{Value: inNeighborsToAttributeValues(record.In)},
			},
		},
	}
}

func idsToAttributeValues(ids []uint64) []types.AttributeValue {
	as := make([]types.AttributeValue, len(ids))
	for idx, id := range ids {
		as[idx] = &types.AttributeValueMemberN{Value: strconv.FormatUint(id, 10)}
	}
	return as
}

func inNeighborsToAttributeValues(in []InNeighbor) []types.AttributeValue {
	as := make([]types.AttributeValue, len(in))
	for idx, n := range in {
		as[idx] = &types.AttributeValueMemberS{Value: formatInNeighbor(n)}
	}
	return as
}

// dynamoRecord matches the stored item; In is unpacked after unmarshal.
type dynamoRecord struct {
	ID   uint64
	Hash uint64
	Out  []uint64
	In   []string
}

// LoadPartition scans the whole table and keeps the items this worker owns.
// Ownership is recomputed from the ID so routing never disagrees with a stale
// stored hash.
func (s *DynamoStore) LoadPartition(
	ctx context.Context, tableName string, workerId uint32, numWorkers uint8,
) ([]VertexRecord, error) {
	paginator := dynamodb.NewScanPaginator(s.svc, &dynamodb.ScanInput{
		TableName: aws.String(tableName),
	})

	var records []VertexRecord
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %v: %w", tableName, err)
		}
		for _, item := range page.Items {
			var raw dynamoRecord
			if err := attributevalue.UnmarshalMap(item, &raw); err != nil {
				return nil, fmt.Errorf("failed to unmarshal item: %w", err)
			}
			if !ownsRecord(raw.ID, workerId, numWorkers) {
				continue
			}
			in, err := parseInNeighbors(raw.In)
			if err != nil {
				return nil, err
			}
			records = append(records, VertexRecord{
				ID:   raw.ID,
				Out:  raw.Out,
				In:   in,
				Hash: raw.Hash,
			})
		}
	}
	return records, nil
}

func formatInNeighbor(n InNeighbor) string {
	return fmt.Sprintf("%d:%d", n.SourceId, n.SourceOutDegree)
}

func parseInNeighbors(encoded []string) ([]InNeighbor, error) {
	if len(encoded) == 0 {
		return nil, nil
	}
	in := make([]InNeighbor, len(encoded))
	for idx, entry := range encoded {
		parts := strings.Split(entry, ":")
		if len(parts) != 2 {
			return nil, fmt.Errorf("malformed in-neighbor entry: %q", entry)
		}
		src, err := strconv.ParseUint(parts[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed in-neighbor source: %q", entry)
		}
		deg, err := strconv.ParseUint(parts[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed in-neighbor degree: %q", entry)
		}
		in[idx] = InNeighbor{SourceId: src, SourceOutDegree: deg}
	}
	return in, nil
}
