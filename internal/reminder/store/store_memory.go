package store

import (
	"context"
	"sort"
	"sync"

	"propertyhub/internal/reminder/models"
	id "propertyhub/pkg/domain"
)

// InMemoryStore stores the reminder history in memory for tests and local
// development.
type InMemoryStore struct {
	mu        sync.RWMutex
	reminders map[id.ReminderID]*models.Reminder
}

// NewInMemory constructs an empty in-memory reminder store.
func NewInMemory() *InMemoryStore {
	return &InMemoryStore{reminders: make(map[id.ReminderID]*models.Reminder)}
}

func (s *InMemoryStore) Create(_ context.Context, reminder *models.Reminder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *reminder
	s.reminders[reminder.ID] = &cp
	return nil
}

func (s *InMemoryStore) List(_ context.Context) ([]*models.Reminder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	reminders := make([]*models.Reminder, 0, len(s.reminders))
	for _, reminder := range s.reminders {
		cp := *reminder
		reminders = append(reminders, &cp)
	}
	sort.Slice(reminders, func(i, j int) bool {
		return reminders[i].SentAt.After(reminders[j].SentAt)
	})
	return reminders, nil
}
