package pipeline

import (
	"context"
	"sort"
	"sync"

	"submission-routing-engine/internal/models"
)

// SubmissionStore persists submission status records.
type SubmissionStore interface {
	Save(ctx context.Context, status *models.SubmissionStatus) error
	Get(ctx context.Context, id string) (*models.SubmissionStatus, error)
	List(ctx context.Context) ([]*models.SubmissionStatus, error)
}

// MemoryStore keeps submissions in process memory. It is safe for
// concurrent use and hands out copies.
type MemoryStore struct {
	mu          sync.RWMutex
	submissions map[string]*models.SubmissionStatus
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{submissions: make(map[string]*models.SubmissionStatus)}
}

// Save inserts or replaces a submission.
func (s *MemoryStore) Save(_ context.Context, status *models.SubmissionStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submissions[status.SubmissionID] = cloneStatus(status)
	return nil
}

// Get returns ErrSubmissionNotFound for unknown ids.
func (s *MemoryStore) Get(_ context.Context, id string) (*models.SubmissionStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	status, ok := s.submissions[id]
	if !ok {
		return nil, models.ErrSubmissionNotFound
	}
	return cloneStatus(status), nil
}

// List returns every submission, oldest first.
func (s *MemoryStore) List(_ context.Context) ([]*models.SubmissionStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.SubmissionStatus, 0, len(s.submissions))
	for _, status := range s.submissions {
		out = append(out, cloneStatus(status))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].SubmissionID < out[j].SubmissionID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func cloneStatus(s *models.SubmissionStatus) *models.SubmissionStatus {
	c := *s
	c.StateHistory = append([]models.StateChange(nil), s.StateHistory...)
	if s.ScheduledSendTime != nil {
		t := *s.ScheduledSendTime
		c.ScheduledSendTime = &t
	}
	return &c
}
