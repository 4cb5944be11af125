package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/comitanigiacomo/kanso-planner/internal/core/domain"
)

// ScheduleService maintains the seven day slots, keeps every ListName in
// step with the list collection and answers which list applies today.
type ScheduleService struct {
	store    domain.BlobStore
	lists    *ListService
	clock    domain.Clock
	logger   *slog.Logger
	notifier Notifier

	// opMu serialises load, mutation and name refresh cycles so an
	// in-flight write or rollback never overwrites a newer name.
	opMu sync.Mutex

	mu      sync.RWMutex
	items   []domain.ScheduleItem
	loading bool
}

func NewScheduleService(store domain.BlobStore, lists *ListService, clock domain.Clock, logger *slog.Logger) *ScheduleService {
	if clock == nil {
		clock = domain.SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &ScheduleService{
		store:    store,
		lists:    lists,
		clock:    clock,
		logger:   logger,
		notifier: nopNotifier{},
		items:    domain.NewCanonicalSchedule(),
	}
	lists.OnChange(s.refreshNames)
	return s
}

func (s *ScheduleService) SetNotifier(n Notifier) {
	if n == nil {
		n = nopNotifier{}
	}
	s.notifier = n
}

func (s *ScheduleService) readSchedule(ctx context.Context) ([]domain.ScheduleItem, error) {
	raw, err := s.store.Get(ctx, domain.ScheduleKey)
	if errors.Is(err, domain.ErrBlobNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read schedule: %v", domain.ErrStorage, err)
	}

	var items []domain.ScheduleItem
	if err := decodePayload(scheduleSchema, raw, &items); err != nil {
		s.logger.Warn("discarding unreadable schedule record", "error", err)
		return nil, nil
	}
	return items, nil
}

func (s *ScheduleService) writeSchedule(ctx context.Context, items []domain.ScheduleItem) error {
	payload, err := encodePayload(items)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, domain.ScheduleKey, payload); err != nil {
		return fmt.Errorf("%w: write schedule: %v", domain.ErrStorage, err)
	}
	return nil
}

// LoadAndReconcile reads the schedule and the lists concurrently and
// rebuilds the canonical seven-day schedule from them. On any load error
// the schedule resets to all unassigned.
func (s *ScheduleService) LoadAndReconcile(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.setLoading(true)
	defer s.setLoading(false)

	var (
		persisted []domain.ScheduleItem
		lists     []domain.HabitList
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := s.readSchedule(gctx)
		persisted = items
		return err
	})
	g.Go(func() error {
		loaded, err := s.lists.LoadAll(gctx)
		lists = loaded
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("failed to load schedule and lists", "error", err)
		s.replace(domain.NewCanonicalSchedule())
		return fmt.Errorf("schedule service: load: %w", err)
	}

	s.replace(domain.ReconcileSchedule(persisted, lists))
	s.notifier.Publish(domain.NewChangeEvent(domain.EntitySchedule, domain.ActionReloaded, "", nil))

	return nil
}

// AssignListToDay points day at listID, or clears it when listID is nil
// or empty. Unknown list IDs are accepted and resolve to a nil name.
func (s *ScheduleService) AssignListToDay(ctx context.Context, day domain.Day, listID *string) error {
	idx := day.Index()
	if idx < 0 {
		return domain.ErrInvalidDay
	}
	if listID != nil && *listID == "" {
		listID = nil
	}

	s.opMu.Lock()
	defer s.opMu.Unlock()

	previous := s.Items()
	updated := domain.CloneSchedule(previous)
	if listID != nil {
		id := *listID
		updated[idx].ListID = &id
	} else {
		updated[idx].ListID = nil
	}
	updated[idx].ListName = domain.ResolveListName(updated[idx].ListID, s.lists.Lists())

	if err := s.persist(ctx, previous, updated); err != nil {
		s.logger.Error("failed to assign list to day", "day", day, "error", err)
		return fmt.Errorf("schedule service: assign: %w", err)
	}

	extra := map[string]any{"day": day}
	id := ""
	if listID != nil {
		id = *listID
	}
	s.notifier.Publish(domain.NewChangeEvent(domain.EntitySchedule, domain.ActionAssigned, id, extra))

	return nil
}

// ReorderBySwap exchanges the assignments of two day slots. Days keep
// their calendar position; only the assigned lists move.
func (s *ScheduleService) ReorderBySwap(ctx context.Context, fromIndex, toIndex int) error {
	n := len(domain.DaysOfWeek)
	if fromIndex < 0 || fromIndex >= n || toIndex < 0 || toIndex >= n {
		return domain.ErrDayIndexOutOfRange
	}
	if fromIndex == toIndex {
		return nil
	}

	s.opMu.Lock()
	defer s.opMu.Unlock()

	previous := s.Items()
	updated := domain.CloneSchedule(previous)
	from, to := previous[fromIndex], previous[toIndex]

	updated[fromIndex].ListID, updated[fromIndex].ListName = cloneStr(to.ListID), cloneStr(to.ListName)
	updated[toIndex].ListID, updated[toIndex].ListName = cloneStr(from.ListID), cloneStr(from.ListName)

	if err := s.persist(ctx, previous, updated); err != nil {
		s.logger.Error("failed to swap schedule days", "from", fromIndex, "to", toIndex, "error", err)
		return fmt.Errorf("schedule service: swap: %w", err)
	}

	s.notifier.Publish(domain.NewChangeEvent(domain.EntitySchedule, domain.ActionSwapped, "", map[string]any{
		"from": domain.DaysOfWeek[fromIndex],
		"to":   domain.DaysOfWeek[toIndex],
	}))

	return nil
}

// persist applies updated in memory, writes it and restores previous if
// the write fails.
func (s *ScheduleService) persist(ctx context.Context, previous, updated []domain.ScheduleItem) error {
	s.replace(updated)

	if err := s.writeSchedule(ctx, updated); err != nil {
		s.replace(previous)
		return err
	}
	return nil
}

func (s *ScheduleService) GetListByID(id string) (domain.HabitList, bool) {
	return s.lists.FindByID(id)
}

// TodaysAssignment derives the current day from the clock on every call
// and resolves its list. It never touches storage.
func (s *ScheduleService) TodaysAssignment() domain.TodaysAssignment {
	today := domain.DayFromTime(s.clock.Now())
	result := domain.TodaysAssignment{Day: today}

	s.mu.RLock()
	var listID *string
	for _, item := range s.items {
		if item.Day == today {
			listID = cloneStr(item.ListID)
			break
		}
	}
	s.mu.RUnlock()

	if listID == nil {
		return result
	}
	if list, ok := s.lists.FindByID(*listID); ok {
		result.List = &list
	}
	return result
}

// Items returns a copy of the current schedule.
func (s *ScheduleService) Items() []domain.ScheduleItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.CloneSchedule(s.items)
}

func (s *ScheduleService) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *ScheduleService) Snapshot() domain.ScheduleSnapshot {
	s.mu.RLock()
	items := domain.CloneSchedule(s.items)
	loading := s.loading
	s.mu.RUnlock()

	return domain.ScheduleSnapshot{
		Items:          items,
		AvailableLists: s.lists.Lists(),
		IsLoading:      loading,
	}
}

// refreshNames runs after a committed list change. It waits for any
// in-flight schedule mutation so the refresh lands on the final items.
func (s *ScheduleService) refreshNames(lists []domain.HabitList) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	domain.RefreshListNames(s.items, lists)
	s.mu.Unlock()
}

func (s *ScheduleService) replace(items []domain.ScheduleItem) {
	s.mu.Lock()
	s.items = domain.CloneSchedule(items)
	s.mu.Unlock()
}

func (s *ScheduleService) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func cloneStr(v *string) *string {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
