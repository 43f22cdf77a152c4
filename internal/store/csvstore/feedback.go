package csvstore

import (
	"context"
	"sync"

	"github.com/couchcryptid/akom-triage-service/internal/domain"
	"github.com/couchcryptid/akom-triage-service/internal/store"
)

// FeedbackStore is a domain.FeedbackStore backed by its own CSV file.
type FeedbackStore struct {
	mu   sync.Mutex
	path string
}

// NewFeedbackStore prepares a feedback file at path.
func NewFeedbackStore(path string) (*FeedbackStore, error) {
	if err := ensureDir(path); err != nil {
		return nil, err
	}
	return &FeedbackStore{path: path}, nil
}

// AppendFeedback writes one correction row.
func (s *FeedbackStore) AppendFeedback(_ context.Context, f domain.Feedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return appendRecord(s.path, store.FeedbackColumns, store.FromFeedback(f).Values())
}

// Feedback reads every correction in the order written.
func (s *FeedbackStore) Feedback(_ context.Context) ([]domain.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []domain.Feedback{}
	err := readRecords(s.path, func(index map[string]int, record []string) error {
		f, err := store.FeedbackRowFromRecord(index, record).Feedback()
		if err != nil {
			return err
		}
		out = append(out, f)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
