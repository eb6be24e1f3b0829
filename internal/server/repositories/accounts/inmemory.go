package accounts

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophlock/internal/common"
	"github.com/dmitrijs2005/gophlock/internal/server/models"
	"github.com/google/uuid"
)

type slot struct {
	mu  sync.Mutex
	rec models.AccountRecord
}

// InMemoryRepository keeps records in a map. mu guards the map itself; each
// slot has its own mutex guarding the record.
type InMemoryRepository struct {
	mu    sync.RWMutex
	slots map[string]*slot
	now   func() time.Time
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		slots: make(map[string]*slot),
		now:   time.Now,
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, rec *models.AccountRecord) (*models.AccountRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.slots[rec.Email]; ok {
		return nil, common.ErrDuplicateAccount
	}

	s := &slot{rec: *rec}
	s.rec.ID = uuid.NewString()
	s.rec.CreatedAt = r.now()
	s.rec.UpdatedAt = s.rec.CreatedAt
	r.slots[rec.Email] = s

	out := s.rec
	return &out, nil
}

func (r *InMemoryRepository) Get(ctx context.Context, email string) (*models.AccountRecord, error) {
	s, ok := r.lookup(email)
	if !ok {
		return nil, common.ErrAccountNotFound
	}

	s.mu.Lock()
	out := s.rec
	s.mu.Unlock()

	return &out, nil
}

func (r *InMemoryRepository) Update(ctx context.Context, email string, fn UpdateFunc) (*models.AccountRecord, error) {
	s, ok := r.lookup(email)
	if !ok {
		return nil, common.ErrAccountNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.rec
	err := fn(&s.rec)

	// identity is immutable whatever fn did
	s.rec.ID, s.rec.Email, s.rec.CreatedAt = before.ID, before.Email, before.CreatedAt
	if s.rec != before {
		s.rec.UpdatedAt = r.now()
	}

	out := s.rec
	return &out, err
}

func (r *InMemoryRepository) lookup(email string) (*slot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.slots[email]
	return s, ok
}
