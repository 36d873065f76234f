// ABOUTME: Repository port consumed by the ingestion and query orchestrators
// ABOUTME: Concrete implementations live in the sqlite subpackage
package storage

import (
	"context"

	"github.com/harper/recall/internal/models"
)

// MemoryRepository persists memory records and answers owner-scoped
// nearest-neighbor queries. Implementations own the similarity computation
// and result ordering; the orchestration layer only shapes requests and
// responses around this contract.
type MemoryRepository interface {
	// Save persists a record with its embedding attached and returns the
	// stored record with its assigned ID and creation timestamp. The write
	// is atomic: either the full record with its vector is stored, or
	// nothing is.
	Save(ctx context.Context, record *models.MemoryRecord) (*models.MemoryRecord, error)

	// NearestNeighbors returns up to count matches for the query vector,
	// scoped to the owner and to records embedded with the same model,
	// sorted by descending similarity, with every match >= threshold.
	// An empty result is a valid, non-error outcome.
	NearestNeighbors(ctx context.Context, vector []float64, ownerID, model string, threshold float64, count int) ([]models.SimilarityMatch, error)
}
