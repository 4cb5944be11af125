package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/comitanigiacomo/kanso-planner/internal/core/domain"
)

// ListService owns the collection of named habit lists. Every write is a
// full read-modify-write of the lists record.
type ListService struct {
	store    domain.BlobStore
	logger   *slog.Logger
	notifier Notifier

	// writeMu serialises read-modify-write cycles issued by this process.
	writeMu sync.Mutex

	mu        sync.RWMutex
	lists     []domain.HabitList
	listeners []func([]domain.HabitList)
}

func NewListService(store domain.BlobStore, logger *slog.Logger) *ListService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ListService{
		store:    store,
		logger:   logger,
		notifier: nopNotifier{},
		lists:    []domain.HabitList{},
	}
}

func (s *ListService) SetNotifier(n Notifier) {
	if n == nil {
		n = nopNotifier{}
	}
	s.notifier = n
}

// OnChange registers fn to run after every committed save or delete.
func (s *ListService) OnChange(fn func([]domain.HabitList)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// readCollection returns the persisted lists. A missing record yields an
// empty collection; a malformed one yields domain.ErrRecordMalformed.
func (s *ListService) readCollection(ctx context.Context) ([]domain.HabitList, error) {
	raw, err := s.store.Get(ctx, domain.ListsKey)
	if errors.Is(err, domain.ErrBlobNotFound) {
		return []domain.HabitList{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read lists: %v", domain.ErrStorage, err)
	}

	var lists []domain.HabitList
	if err := decodePayload(listsSchema, raw, &lists); err != nil {
		return nil, fmt.Errorf("read lists: %w", err)
	}

	for i := range lists {
		lists[i].Normalize()
	}
	return lists, nil
}

func (s *ListService) writeCollection(ctx context.Context, lists []domain.HabitList) error {
	payload, err := encodePayload(lists)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, domain.ListsKey, payload); err != nil {
		return fmt.Errorf("%w: write lists: %v", domain.ErrStorage, err)
	}
	return nil
}

// LoadAll refreshes the in-memory collection from storage. A malformed
// record reads as empty. On a storage error the collection falls back to
// empty and the error is returned.
func (s *ListService) LoadAll(ctx context.Context) ([]domain.HabitList, error) {
	lists, err := s.readCollection(ctx)
	switch {
	case errors.Is(err, domain.ErrRecordMalformed):
		s.logger.Warn("discarding unreadable lists record", "error", err)
		lists, err = []domain.HabitList{}, nil
	case err != nil:
		s.logger.Error("failed to load lists", "error", err)
		lists = []domain.HabitList{}
	}

	s.mu.Lock()
	s.lists = lists
	s.mu.Unlock()

	return domain.CloneLists(lists), err
}

// Save creates the list when it has no ID yet, otherwise replaces the
// stored list with the same ID at its existing position. A malformed
// stored record is never overwritten.
func (s *ListService) Save(ctx context.Context, list domain.HabitList) (domain.HabitList, error) {
	name, err := domain.NormalizeListName(list.Name)
	if err != nil {
		return domain.HabitList{}, err
	}

	toSave := list.Clone()
	toSave.Name = name
	toSave.Normalize()

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	current, err := s.readCollection(ctx)
	if err != nil {
		s.logger.Error("failed to save list", "list_id", list.ID, "error", err)
		return domain.HabitList{}, fmt.Errorf("list service: save: %w", err)
	}

	action := domain.ActionUpdated
	next := domain.CloneLists(current)
	if toSave.ID == "" {
		toSave.ID = uuid.New().String()
		next = append(next, toSave)
		action = domain.ActionCreated
	} else {
		replaced := false
		for i := range next {
			if next[i].ID == toSave.ID {
				next[i] = toSave
				replaced = true
				break
			}
		}
		if !replaced {
			return domain.HabitList{}, domain.ErrListNotFound
		}
	}

	if err := s.writeCollection(ctx, next); err != nil {
		s.logger.Error("failed to save list", "list_id", toSave.ID, "error", err)
		return domain.HabitList{}, fmt.Errorf("list service: save: %w", err)
	}

	s.commit(next)
	s.notifier.Publish(domain.NewChangeEvent(domain.EntityList, action, toSave.ID, map[string]any{"name": toSave.Name}))

	return toSave.Clone(), nil
}

// Delete removes the list with id. Deleting an unknown id succeeds and
// intentionally skips the write, since the collection is unchanged.
// A malformed stored record is never overwritten.
func (s *ListService) Delete(ctx context.Context, id string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	current, err := s.readCollection(ctx)
	if err != nil {
		s.logger.Error("failed to delete list", "list_id", id, "error", err)
		return fmt.Errorf("list service: delete: %w", err)
	}

	next := make([]domain.HabitList, 0, len(current))
	for _, l := range current {
		if l.ID != id {
			next = append(next, l)
		}
	}

	if len(next) == len(current) {
		s.commit(next)
		return nil
	}

	if err := s.writeCollection(ctx, next); err != nil {
		s.logger.Error("failed to delete list", "list_id", id, "error", err)
		return fmt.Errorf("list service: delete: %w", err)
	}

	s.commit(next)
	s.notifier.Publish(domain.NewChangeEvent(domain.EntityList, domain.ActionDeleted, id, nil))

	return nil
}

// FindByID looks the list up in the last loaded collection without
// touching storage.
func (s *ListService) FindByID(id string) (domain.HabitList, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list, ok := domain.FindList(s.lists, id)
	if !ok {
		return domain.HabitList{}, false
	}
	return list.Clone(), true
}

// Lists returns a copy of the last loaded collection.
func (s *ListService) Lists() []domain.HabitList {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.CloneLists(s.lists)
}

func (s *ListService) commit(lists []domain.HabitList) {
	s.mu.Lock()
	s.lists = lists
	listeners := append([]func([]domain.HabitList){}, s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(domain.CloneLists(lists))
	}
}
