// ABOUTME: Shared test fakes for the orchestrator tests
// ABOUTME: Counting embedder and scripted repository implementations
package core

import (
	"context"
	"fmt"

	"github.com/harper/recall/internal/models"
)

// fakeEmbedder returns a fixed-dimension vector and counts calls.
type fakeEmbedder struct {
	calls int
	err   error
}

func (f *fakeEmbedder) Embed(ctx context.Context, text, model string) ([]float64, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	dim, err := models.ModelDimension(model)
	if err != nil {
		return nil, err
	}
	vector := make([]float64, dim)
	vector[0] = 1
	return vector, nil
}

// fakeRepo records calls and plays back scripted results.
type fakeRepo struct {
	saveCalls int
	saved     []*models.MemoryRecord
	saveErr   error

	nnCalls     int
	nnVector    []float64
	nnOwnerID   string
	nnModel     string
	nnThreshold float64
	nnCount     int
	nnResult    []models.SimilarityMatch
	nnErr       error
}

func (f *fakeRepo) Save(ctx context.Context, record *models.MemoryRecord) (*models.MemoryRecord, error) {
	f.saveCalls++
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	stored := *record
	stored.ID = fmt.Sprintf("mem-%d", f.saveCalls)
	f.saved = append(f.saved, &stored)
	return &stored, nil
}

func (f *fakeRepo) NearestNeighbors(ctx context.Context, vector []float64, ownerID, model string, threshold float64, count int) ([]models.SimilarityMatch, error) {
	f.nnCalls++
	f.nnVector = vector
	f.nnOwnerID = ownerID
	f.nnModel = model
	f.nnThreshold = threshold
	f.nnCount = count
	if f.nnErr != nil {
		return nil, f.nnErr
	}
	return f.nnResult, nil
}
