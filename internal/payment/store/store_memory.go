package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"propertyhub/internal/payment/models"
	id "propertyhub/pkg/domain"
	"propertyhub/pkg/sentinel"
)

// InMemoryStore stores payments in memory for tests and local development.
type InMemoryStore struct {
	mu       sync.RWMutex
	payments map[id.PaymentID]*models.Payment
}

// NewInMemory constructs an empty in-memory payment store.
func NewInMemory() *InMemoryStore {
	return &InMemoryStore{payments: make(map[id.PaymentID]*models.Payment)}
}

func (s *InMemoryStore) Create(_ context.Context, payment *models.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *payment
	s.payments[payment.ID] = &cp
	return nil
}

func (s *InMemoryStore) Update(_ context.Context, payment *models.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.payments[payment.ID]; !ok {
		return fmt.Errorf("payment not found: %w", sentinel.ErrNotFound)
	}
	cp := *payment
	s.payments[payment.ID] = &cp
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, paymentID id.PaymentID) (*models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if payment, ok := s.payments[paymentID]; ok {
		cp := *payment
		return &cp, nil
	}
	return nil, fmt.Errorf("payment not found: %w", sentinel.ErrNotFound)
}

func (s *InMemoryStore) List(_ context.Context) ([]*models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	payments := make([]*models.Payment, 0, len(s.payments))
	for _, payment := range s.payments {
		cp := *payment
		payments = append(payments, &cp)
	}
	sort.Slice(payments, func(i, j int) bool {
		return payments[i].CreatedAt.After(payments[j].CreatedAt)
	})
	return payments, nil
}
