// Package contracts keeps the list of contracts in memory and mirrors every
// change into the kv store as a single JSON document.
package contracts

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/RomaniOSDev/17PaperRoost/internal/logging"
	"github.com/RomaniOSDev/17PaperRoost/internal/models"
	"github.com/RomaniOSDev/17PaperRoost/internal/repositories/kv"
)

// KeySavedContracts is the kv key holding the encoded contract list.
const KeySavedContracts = "SavedContracts"

type Option func(*Store)

// WithSeeding controls whether an empty store is filled with sample data
// on Load. Enabled by default.
func WithSeeding(enabled bool) Option {
	return func(s *Store) { s.seed = enabled }
}

// WithRand sets the source used for sample data.
func WithRand(r *rand.Rand) Option {
	return func(s *Store) { s.rnd = r }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Store is safe for concurrent use. Reads never touch the repository.
type Store struct {
	repo   kv.Repository
	logger logging.Logger
	seed   bool
	rnd    *rand.Rand
	now    func() time.Time

	mu        sync.RWMutex
	contracts []models.Contract
}

func New(repo kv.Repository, logger logging.Logger, opts ...Option) *Store {
	s := &Store{
		repo:   repo,
		logger: logger.With("component", "contracts"),
		seed:   true,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rnd == nil {
		s.rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return s
}

// Load replaces the in-memory list with the persisted one. A missing or
// unreadable record yields an empty list; an empty list is then seeded
// with sample contracts if seeding is enabled. The returned error only
// reports a failure to persist the seeded list.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.contracts = s.read(ctx)
	if len(s.contracts) > 0 || !s.seed {
		return nil
	}

	s.logger.Info(ctx, "no contracts found, creating sample contracts", "count", SampleCount)
	return s.commit(ctx, generateSamples(s.rnd, s.now()))
}

func (s *Store) read(ctx context.Context) []models.Contract {
	data, err := s.repo.Get(ctx, KeySavedContracts)
	if err != nil {
		s.logger.Warn(ctx, "failed to read saved contracts", "error", err)
		return nil
	}
	if data == nil {
		s.logger.Info(ctx, "no saved contracts found")
		return nil
	}

	var list []models.Contract
	if err := json.Unmarshal(data, &list); err != nil {
		s.logger.Warn(ctx, "failed to decode saved contracts", "error", err)
		return nil
	}
	s.logger.Info(ctx, "contracts loaded", "count", len(list))
	return list
}

// Add appends c. Ids are not checked for duplicates. A contract with an
// unknown status is rejected. If saving to the repository fails the
// contract stays in memory and the error is returned.
func (s *Store) Add(ctx context.Context, c models.Contract) error {
	if !c.Status.Valid() {
		return fmt.Errorf("add %s: %w: %d", c.ID, models.ErrUnknownStatus, uint8(c.Status))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := append(slices.Clip(s.contracts), c.Clone())
	if err := s.commit(ctx, next); err != nil {
		return err
	}
	s.logger.Info(ctx, "contract added", "id", c.ID, "title", c.Title, "signature_bytes", len(c.SignatureData))
	return nil
}

// Update replaces the contract with c's id.
func (s *Store) Update(ctx context.Context, c models.Contract) error {
	if !c.Status.Valid() {
		return fmt.Errorf("update %s: %w: %d", c.ID, models.ErrUnknownStatus, uint8(c.Status))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(c.ID)
	if i < 0 {
		s.logger.Warn(ctx, "contract not found for update", "id", c.ID)
		return fmt.Errorf("update %s: %w", c.ID, ErrNotFound)
	}
	next := slices.Clone(s.contracts)
	next[i] = c.Clone()
	if err := s.commit(ctx, next); err != nil {
		return err
	}
	s.logger.Info(ctx, "contract updated", "id", c.ID, "title", c.Title)
	return nil
}

func (s *Store) Delete(ctx context.Context, c models.Contract) error {
	return s.DeleteByID(ctx, c.ID)
}

func (s *Store) DeleteByID(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		s.logger.Warn(ctx, "contract not found for deletion", "id", id)
		return fmt.Errorf("delete %s: %w", id, ErrNotFound)
	}
	removed := s.contracts[i]
	if err := s.commit(ctx, slices.Delete(slices.Clone(s.contracts), i, i+1)); err != nil {
		return err
	}
	s.logger.Info(ctx, "contract deleted", "id", id, "title", removed.Title)
	return nil
}

func (s *Store) Get(id string) (models.Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Contract{}, fmt.Errorf("get %s: %w", id, ErrNotFound)
	}
	return s.contracts[i].Clone(), nil
}

// List returns a copy of all contracts in insertion order.
func (s *Store) List() []models.Contract {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Contract, len(s.contracts))
	for i, c := range s.contracts {
		out[i] = c.Clone()
	}
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.contracts)
}

func (s *Store) indexOf(id string) int {
	for i := range s.contracts {
		if s.contracts[i].ID == id {
			return i
		}
	}
	return -1
}

// commit encodes next and makes it the current list, then saves it.
// An encoding failure leaves the current list untouched. A repository
// failure is returned but next is kept. mu must be held.
func (s *Store) commit(ctx context.Context, next []models.Contract) error {
	data, err := json.Marshal(next)
	if err != nil {
		s.logger.Error(ctx, "failed to encode contracts", "error", err)
		return fmt.Errorf("encode contracts: %w", err)
	}
	s.contracts = next
	if err := s.repo.Set(ctx, KeySavedContracts, data); err != nil {
		s.logger.Error(ctx, "failed to save contracts", "error", err)
		return err
	}
	s.logger.Debug(ctx, "contracts saved", "count", len(next))
	return nil
}
