package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/comitanigiacomo/kanso-planner/internal/core/domain"
)

// LibraryService manages the catalogue of habit items users pick from
// when building lists.
type LibraryService struct {
	store    domain.BlobStore
	logger   *slog.Logger
	notifier Notifier

	mu     sync.Mutex
	items  []domain.HabitItem
	loaded bool
}

func NewLibraryService(store domain.BlobStore, logger *slog.Logger) *LibraryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LibraryService{
		store:    store,
		logger:   logger,
		notifier: nopNotifier{},
	}
}

func (s *LibraryService) SetNotifier(n Notifier) {
	if n == nil {
		n = nopNotifier{}
	}
	s.notifier = n
}

// Load reads the library. A missing record is seeded with the default
// catalogue and persisted. Unreadable records and storage errors fall
// back to the defaults in memory without writing.
func (s *LibraryService) Load(ctx context.Context) ([]domain.HabitItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.loadLocked(ctx)
	return cloneHabitItems(s.items), err
}

func (s *LibraryService) loadLocked(ctx context.Context) error {
	raw, err := s.store.Get(ctx, domain.LibraryKey)
	switch {
	case errors.Is(err, domain.ErrBlobNotFound):
		seed := domain.DefaultLibrary()
		s.items, s.loaded = seed, true
		if err := s.write(ctx, seed); err != nil {
			s.logger.Error("failed to seed habit library", "error", err)
			return fmt.Errorf("library service: seed: %w", err)
		}
		return nil
	case err != nil:
		s.logger.Error("failed to load habit library", "error", err)
		s.items, s.loaded = domain.DefaultLibrary(), true
		return fmt.Errorf("library service: load: %w: %v", domain.ErrStorage, err)
	}

	var items []domain.HabitItem
	if err := decodePayload(librarySchema, raw, &items); err != nil {
		s.logger.Warn("discarding unreadable habit library", "error", err)
		items = domain.DefaultLibrary()
	}
	s.items, s.loaded = items, true
	return nil
}

func (s *LibraryService) ensureLoaded(ctx context.Context) {
	if s.loaded {
		return
	}
	_ = s.loadLocked(ctx)
}

func (s *LibraryService) write(ctx context.Context, items []domain.HabitItem) error {
	payload, err := encodePayload(items)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, domain.LibraryKey, payload); err != nil {
		return fmt.Errorf("%w: write library: %v", domain.ErrStorage, err)
	}
	return nil
}

// commitLocked persists next and swaps it in only when the write succeeds.
func (s *LibraryService) commitLocked(ctx context.Context, next []domain.HabitItem) error {
	if err := s.write(ctx, next); err != nil {
		return err
	}
	s.items = next
	return nil
}

func (s *LibraryService) Items(ctx context.Context) []domain.HabitItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureLoaded(ctx)
	return cloneHabitItems(s.items)
}

func (s *LibraryService) Add(ctx context.Context, name, emoji string) (domain.HabitItem, error) {
	item, err := domain.NewHabitItem(name, emoji)
	if err != nil {
		return domain.HabitItem{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	next := append(cloneHabitItems(s.items), item)
	if err := s.commitLocked(ctx, next); err != nil {
		s.logger.Error("failed to add library habit", "name", item.Name, "error", err)
		return domain.HabitItem{}, fmt.Errorf("library service: add: %w", err)
	}

	s.notifier.Publish(domain.NewChangeEvent(domain.EntityLibrary, domain.ActionCreated, item.ID, nil))
	return item, nil
}

func (s *LibraryService) Update(ctx context.Context, id, name, emoji string) (domain.HabitItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	next := cloneHabitItems(s.items)
	idx := -1
	for i := range next {
		if next[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.HabitItem{}, domain.ErrHabitItemNotFound
	}

	if err := next[idx].Update(name, emoji); err != nil {
		return domain.HabitItem{}, err
	}

	if err := s.commitLocked(ctx, next); err != nil {
		s.logger.Error("failed to update library habit", "id", id, "error", err)
		return domain.HabitItem{}, fmt.Errorf("library service: update: %w", err)
	}

	s.notifier.Publish(domain.NewChangeEvent(domain.EntityLibrary, domain.ActionUpdated, id, nil))
	return next[idx], nil
}

// Delete removes the item from the library. Lists that already hold a
// copy of it are unaffected.
func (s *LibraryService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	next := domain.RemoveItem(s.items, id)
	if len(next) == len(s.items) {
		return nil
	}

	if err := s.commitLocked(ctx, next); err != nil {
		s.logger.Error("failed to delete library habit", "id", id, "error", err)
		return fmt.Errorf("library service: delete: %w", err)
	}

	s.notifier.Publish(domain.NewChangeEvent(domain.EntityLibrary, domain.ActionDeleted, id, nil))
	return nil
}

func cloneHabitItems(items []domain.HabitItem) []domain.HabitItem {
	out := make([]domain.HabitItem, len(items))
	copy(out, items)
	return out
}
