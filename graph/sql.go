package graph

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"strings"

	_ "github.com/denisenkom/go-mssqldb"
	_ "github.com/go-sql-driver/mysql"
)

// rows per INSERT, bounded by SQL Server's 2100-parameter limit
const maxParamsPerStatement = 2099
const paramsPerRow = 4

// SQLStore runs on mysql or sqlserver. Adjacency is stored as delimited
// VARCHAR columns: out-neighbors as "id.id.id", in-neighbors as
// "src:deg.src:deg".
type SQLStore struct {
	driver string
	db     *sql.DB
}

func NewSQLStore(driver string) (*SQLStore, error) {
	db, err := sql.Open(driver, connString(driver))
	if err != nil {
		return nil, fmt.Errorf("error creating connection pool: %w", err)
	}
	return &SQLStore{driver: driver, db: db}, nil
}

func connString(driver string) string {
	server := envOr("GRAPH_DB_SERVER", "localhost")
	port := envOr("GRAPH_DB_PORT", defaultPort(driver))
	user := envOr("GRAPH_DB_USER", "tunkrank")
	password := os.Getenv("GRAPH_DB_PASSWORD")
	database := envOr("GRAPH_DB_NAME", "tunkrank")

	if driver == ProviderMySQL {
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s", user, password, server, port, database)
	}
	return fmt.Sprintf("server=%s;user id=%s;password=%s;port=%s;database=%s;",
		server, user, password, port, database)
}

func defaultPort(driver string) string {
	if driver == ProviderMySQL {
		return "3306"
	}
	return "1433"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func (s *SQLStore) CreateTable(ctx context.Context, tableName string) error {
	s.db.ExecContext(ctx, "DROP TABLE "+tableName)
	_, err := s.db.ExecContext(ctx, "CREATE TABLE "+tableName+
		" (srcVertex BIGINT PRIMARY KEY, hash VARCHAR(20), outNeighbors VARCHAR(8000), inNeighbors VARCHAR(8000))")
	if err != nil {
		return fmt.Errorf("failed to create table %v: %w", tableName, err)
	}
	return nil
}

func (s *SQLStore) AddGraph(ctx context.Context, tableName string, records []VertexRecord) error {
	rowsPerInsert := maxParamsPerStatement / paramsPerRow

	for start := 0; start < len(records); start += rowsPerInsert {
		end := start + rowsPerInsert
		if end > len(records) {
			end = len(records)
		}

		valueStrings := make([]string, 0, end-start)
		valueArgs := make([]interface{}, 0, (end-start)*paramsPerRow)
		ordinal := 1
		for _, record := range records[start:end] {
			valueStrings = append(valueStrings, s.paramPlaceholders(ordinal))
			valueArgs = append(valueArgs,
				int64(record.ID),
				strconv.FormatUint(record.Hash, 10),
				joinIds(record.Out),
				joinInNeighbors(record.In),
			)
			ordinal += paramsPerRow
		}

		stmt := fmt.Sprintf("INSERT INTO %s (srcVertex, hash, outNeighbors, inNeighbors) VALUES %s;",
			tableName, strings.Join(valueStrings, ","))
		if _, err := s.db.ExecContext(ctx, stmt, valueArgs...); err != nil {
			return fmt.Errorf("failed to bulk insert rows at %v: %w", start, err)
		}
	}
	return nil
}

func (s *SQLStore) paramPlaceholders(ordinal int) string {
	if s.driver == ProviderMySQL {
		return "(?, ?, ?, ?)"
	}
	return fmt.Sprintf("(@p%d, @p%d, @p%d, @p%d)",
		ordinal, ordinal+1, ordinal+2, ordinal+3)
}

func (s *SQLStore) LoadPartition(
	ctx context.Context, tableName string, workerId uint32, numWorkers uint8,
) ([]VertexRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT srcVertex, hash, outNeighbors, inNeighbors FROM "+tableName+";")
	if err != nil {
		return nil, fmt.Errorf("failed to query %v: %w", tableName, err)
	}
	defer rows.Close()

	var records []VertexRecord
	for rows.Next() {
		var (
			id           int64
			hash         string
			outNeighbors string
			inNeighbors  string
		)
		if err := rows.Scan(&id, &hash, &outNeighbors, &inNeighbors); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		vertexId := uint64(id)
		if !ownsRecord(vertexId, workerId, numWorkers) {
			continue
		}

		hashNum, err := strconv.ParseUint(hash, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed hash for vertex %v: %w", vertexId, err)
		}
		out, err := splitIds(outNeighbors)
		if err != nil {
			return nil, fmt.Errorf("malformed out-neighbors for vertex %v: %w", vertexId, err)
		}
		in, err := splitInNeighbors(inNeighbors)
		if err != nil {
			return nil, fmt.Errorf("malformed in-neighbors for vertex %v: %w", vertexId, err)
		}
		records = append(records, VertexRecord{ID: vertexId, Out: out, In: in, Hash: hashNum})
	}
	return records, rows.Err()
}

// "." delimits entries; normal delimiters cause problems with SQL
func joinIds(ids []uint64) string {
	entries := make([]string, len(ids))
	for idx, id := range ids {
		entries[idx] = strconv.FormatUint(id, 10)
	}
	return strings.Join(entries, ".")
}

func splitIds(encoded string) ([]uint64, error) {
	if strings.TrimSpace(encoded) == "" {
		return []uint64{}, nil
	}
	entries := strings.Split(encoded, ".")
	ids := make([]uint64, len(entries))
	for idx, entry := range entries {
		id, err := strconv.ParseUint(entry, 10, 64)
		if err != nil {
			return nil, err
		}
		ids[idx] = id
	}
	return ids, nil
}

func joinInNeighbors(in []InNeighbor) string {
	entries := make([]string, len(in))
	for idx, n := range in {
		entries[idx] = formatInNeighbor(n)
	}
	return strings.Join(entries, ".")
}

func splitInNeighbors(encoded string) ([]InNeighbor, error) {
	if strings.TrimSpace(encoded) == "" {
		return nil, nil
	}
	return parseInNeighbors(strings.Split(encoded, "."))
}
