package memory

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements VectorStore using Postgres + pgvector.
type PostgresStore struct {
	DB *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, connStr string) (*PostgresStore, error) {
	db, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("connect to Postgres: %w", err)
	}
	return &PostgresStore{DB: db}, nil
}

// CreateSchema provisions the pgvector extension and the memory table.
func (ps *PostgresStore) CreateSchema(ctx context.Context) error {
	if ps == nil || ps.DB == nil {
		return nil
	}
	_, err := ps.DB.Exec(ctx, fmt.Sprintf(`
                CREATE EXTENSION IF NOT EXISTS vector;
                CREATE TABLE IF NOT EXISTS crew_memory (
                        id BIGSERIAL PRIMARY KEY,
                        session_id TEXT NOT NULL,
                        role TEXT NOT NULL DEFAULT '',
                        content TEXT NOT NULL,
                        embedding vector(%d),
                        created_at TIMESTAMPTZ NOT NULL DEFAULT now()
                );
        `, embeddingDim))
	return err
}

func (ps *PostgresStore) StoreMemory(ctx context.Context, rec Record) error {
	if ps == nil || ps.DB == nil {
		return nil
	}
	_, err := ps.DB.Exec(ctx, `
                INSERT INTO crew_memory (session_id, role, content, embedding)
                VALUES ($1, $2, $3, $4::vector)
        `, rec.SessionID, rec.Role, rec.Content, vectorLiteral(rec.Embedding))
	return err
}

func (ps *PostgresStore) SearchMemory(ctx context.Context, queryEmbedding []float32, limit int) ([]Record, error) {
	if ps == nil || ps.DB == nil || limit <= 0 {
		return nil, nil
	}
	rows, err := ps.DB.Query(ctx, `
                SELECT id, session_id, role, content, created_at, embedding::text,
                       (embedding <-> $1::vector) AS distance
                FROM crew_memory
                ORDER BY embedding <-> $1::vector
                LIMIT $2
        `, vectorLiteral(queryEmbedding), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var embeddingText string
		var distance float64
		if err := rows.Scan(&rec.ID, &rec.SessionID, &rec.Role, &rec.Content, &rec.CreatedAt, &embeddingText, &distance); err != nil {
			return nil, err
		}
		rec.Embedding = parseVector(embeddingText)
		rec.Score = 1 - distance
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (ps *PostgresStore) Count(ctx context.Context) (int, error) {
	if ps == nil || ps.DB == nil {
		return 0, nil
	}
	var n int
	if err := ps.DB.QueryRow(ctx, `SELECT count(*) FROM crew_memory`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (ps *PostgresStore) Close() {
	if ps != nil && ps.DB != nil {
		ps.DB.Close()
	}
}

// vectorLiteral renders a pgvector input literal, e.g. "[0.1,0.2]".
func vectorLiteral(embedding []float32) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range embedding {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatFloat(float64(v), 'f', -1, 32))
	}
	sb.WriteByte(']')
	return sb.String()
}

func parseVector(text string) []float32 {
	text = strings.Trim(strings.TrimSpace(text), "[]")
	if text == "" {
		return nil
	}
	parts := strings.Split(text, ",")
	vec := make([]float32, 0, len(parts))
	for _, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			continue
		}
		vec = append(vec, float32(f))
	}
	return vec
}

var _ VectorStore = (*PostgresStore)(nil)
