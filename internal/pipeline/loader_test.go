package pipeline_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/akom-triage-service/internal/domain"
	"github.com/couchcryptid/akom-triage-service/internal/pipeline"
)

type memoryStore struct {
	reports []domain.Report
	failIDs map[string]bool
}

func (s *memoryStore) Append(_ context.Context, r domain.Report) error {
	if s.failIDs[r.ID] {
		return errors.New("disk full")
	}
	s.reports = append(s.reports, r)
	return nil
}

func (s *memoryStore) All(context.Context) ([]domain.Report, error) {
	return s.reports, nil
}

func TestStoreLoader_ToleratesWriteFailures(t *testing.T) {
	store := &memoryStore{failIDs: map[string]bool{"b": true}}
	l := pipeline.NewStoreLoader(store, newTestMetrics(), discardLogger())

	err := l.LoadBatch(context.Background(), []domain.Report{{ID: "a"}, {ID: "b"}, {ID: "c"}})
	require.NoError(t, err)

	require.Len(t, store.reports, 2)
	assert.Equal(t, "a", store.reports[0].ID)
	assert.Equal(t, "c", store.reports[1].ID)
}

func TestMultiLoader(t *testing.T) {
	first := &mockLoader{}
	second := &mockLoader{}
	batch := []domain.Report{{ID: "a"}}

	require.NoError(t, pipeline.MultiLoader{first, second}.LoadBatch(context.Background(), batch))
	assert.Len(t, first.snapshot(), 1)
	assert.Len(t, second.snapshot(), 1)
}

func TestMultiLoader_StopsOnError(t *testing.T) {
	failing := &mockLoader{failures: 1}
	after := &mockLoader{}

	err := pipeline.MultiLoader{failing, after}.LoadBatch(context.Background(), []domain.Report{{ID: "a"}})
	require.Error(t, err)
	assert.Empty(t, after.snapshot())
	assert.Equal(t, 0, after.calls)
}
