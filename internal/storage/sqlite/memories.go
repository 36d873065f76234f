// ABOUTME: Memory record persistence and cosine similarity search for SQLite
// ABOUTME: Stores vectors as BLOBs and computes similarity in Go
package sqlite

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/harper/recall/internal/models"
	"github.com/harper/recall/internal/storage"
)

// MemoryStore implements storage.MemoryRepository on SQLite. Similarity is
// computed in Go over owner-and-model-scoped candidate rows because
// modernc.org/sqlite cannot load vector extensions; at personal-assistant
// scale (hundreds to low thousands of records per owner) a brute-force scan
// is fast and keeps the storage layer dependency-free.
type MemoryStore struct {
	db *DB
}

// NewMemoryStore creates a MemoryStore backed by the given database.
func NewMemoryStore(db *DB) *MemoryStore {
	return &MemoryStore{db: db}
}

// Save persists a record with its embedding and returns the stored record
// with assigned ID and creation timestamp. The embedding length is checked
// against the registry as a last line of defense before the write.
func (s *MemoryStore) Save(ctx context.Context, record *models.MemoryRecord) (*models.MemoryRecord, error) {
	dim, err := models.ModelDimension(record.EmbeddingModel)
	if err != nil {
		return nil, err
	}
	if len(record.Embedding) != dim {
		return nil, &models.RepositoryError{
			Op: "save",
			Err: fmt.Errorf("invalid embedding dimension: expected %d for %s, got %d",
				dim, record.EmbeddingModel, len(record.Embedding)),
		}
	}

	stored := *record
	stored.ID = uuid.New().String()
	stored.CreatedAt = time.Now().UTC()

	_, err = s.db.conn.ExecContext(ctx, `
		INSERT INTO memories (id, owner_id, memory_type, content, importance, embedding, embedding_model, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, stored.ID, stored.OwnerID, stored.MemoryType, string(stored.Content), stored.Importance,
		vectorToBlob(stored.Embedding), stored.EmbeddingModel, stored.CreatedAt)
	if err != nil {
		return nil, &models.RepositoryError{Op: "save", Err: err}
	}

	return &stored, nil
}

// NearestNeighbors performs cosine similarity search over the owner's
// records embedded with the given model. Results are sorted by descending
// similarity, filtered to >= threshold, and capped at count. Cross-owner
// and cross-model records never enter the candidate set.
func (s *MemoryStore) NearestNeighbors(ctx context.Context, vector []float64, ownerID, model string, threshold float64, count int) ([]models.SimilarityMatch, error) {
	rows, err := s.db.conn.QueryContext(ctx, `
		SELECT id, memory_type, content, importance, embedding
		FROM memories
		WHERE owner_id = ? AND embedding_model = ?
	`, ownerID, model)
	if err != nil {
		return nil, &models.RepositoryError{Op: "nearest-neighbors", Err: err}
	}
	defer func() { _ = rows.Close() }()

	var matches []models.SimilarityMatch

	for rows.Next() {
		var (
			match models.SimilarityMatch
			blob  []byte
		)
		var content string
		if err := rows.Scan(&match.MemoryID, &match.MemoryType, &content, &match.Importance, &blob); err != nil {
			return nil, &models.RepositoryError{Op: "nearest-neighbors", Err: err}
		}
		match.Content = []byte(content)

		// Cosine similarity is in [-1, 1]; normalize to [0, 1] so the
		// caller-facing threshold contract holds.
		similarity := (CosineSimilarity(vector, blobToVector(blob)) + 1) / 2
		if similarity < threshold {
			continue
		}

		match.Similarity = similarity
		matches = append(matches, match)
	}

	if err := rows.Err(); err != nil {
		return nil, &models.RepositoryError{Op: "nearest-neighbors", Err: err}
	}

	// Sort by similarity descending; ties break on ID so repeated searches
	// over an unchanged corpus return an identical ordering.
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Similarity != matches[j].Similarity {
			return matches[i].Similarity > matches[j].Similarity
		}
		return matches[i].MemoryID < matches[j].MemoryID
	})

	if len(matches) > count {
		matches = matches[:count]
	}

	return matches, nil
}

// CountByOwner returns the number of records stored for an owner.
func (s *MemoryStore) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	var n int
	err := s.db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM memories WHERE owner_id = ?`, ownerID).Scan(&n)
	if err != nil {
		return 0, &models.RepositoryError{Op: "count", Err: err}
	}
	return n, nil
}

// vectorToBlob converts a float64 slice to binary blob
func vectorToBlob(vector []float64) []byte {
	blob := make([]byte, len(vector)*8)
	for i, v := range vector {
		binary.LittleEndian.PutUint64(blob[i*8:], math.Float64bits(v))
	}
	return blob
}

// blobToVector converts a binary blob to float64 slice
func blobToVector(blob []byte) []float64 {
	count := len(blob) / 8
	vector := make([]float64, count)
	for i := 0; i < count; i++ {
		bits := binary.LittleEndian.Uint64(blob[i*8:])
		vector[i] = math.Float64frombits(bits)
	}
	return vector
}

// CosineSimilarity calculates cosine similarity between two vectors
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Compile-time interface satisfaction check.
var _ storage.MemoryRepository = (*MemoryStore)(nil)
