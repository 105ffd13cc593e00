package gas

import (
	"context"
	"fmt"
	"io"
	"log"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	coordpb "tunkrank/gas/proto/coord"
)

// Client is a thin gRPC wrapper for submitting queries to the coord.
type Client struct {
	clientId string
	conn     *grpc.ClientConn
	coord    coordpb.CoordClient
}

func NewClient(clientId string) *Client {
	return &Client{clientId: clientId}
}

func (c *Client) Start(coordAddr string) error {
	conn, err := grpc.Dial(coordAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("client could not dial coord at %v: %w", coordAddr, err)
	}
	c.conn = conn
	c.coord = coordpb.NewCoordClient(conn)
	return nil
}

// SendQuery blocks until the query completes; for round-by-round updates run
// WatchProgress concurrently.
func (c *Client) SendQuery(ctx context.Context, query Query) (*coordpb.QueryResult, error) {
	if c.coord == nil {
		return nil, fmt.Errorf("client is not connected")
	}
	payload := coordpb.Query{
		ClientId:    c.clientId,
		TableName:   query.TableName,
		Provider:    query.Provider,
		RetweetProb: query.RetweetProb,
		Tolerance:   query.Tolerance,
		Iterations:  query.Iterations,
		SavePrefix:  query.SavePrefix,
	}
	result, err := c.coord.StartQuery(ctx, &payload)
	if err != nil {
		return nil, fmt.Errorf("StartQuery failed: %w", err)
	}
	if result.Error != "" {
		return result, fmt.Errorf("query failed: %v", result.Error)
	}
	return result, nil
}

// WatchProgress streams superstep updates onto the returned channel until the
// query reports done or the stream breaks.
func (c *Client) WatchProgress(ctx context.Context) (<-chan *coordpb.QueryProgressResponse, error) {
	if c.coord == nil {
		return nil, fmt.Errorf("client is not connected")
	}
	stream, err := c.coord.QueryProgress(ctx, &coordpb.QueryProgressRequest{ClientId: c.clientId})
	if err != nil {
		return nil, fmt.Errorf("QueryProgress failed: %w", err)
	}

	updates := make(chan *coordpb.QueryProgressResponse, 16)
	go func() {
		defer close(updates)
		for {
			progress, err := stream.Recv()
			if err == io.EOF {
				return
			}
			if err != nil {
				log.Printf("WatchProgress: stream closed: %v\n", err)
				return
			}
			updates <- progress
			if progress.Done {
				return
			}
		}
	}()
	return updates, nil
}

func (c *Client) Close() {
	if c.conn != nil {
		c.conn.Close()
	}
}
