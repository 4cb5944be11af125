package services_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/comitanigiacomo/kanso-planner/internal/core/domain"
)

var errDiskOnFire = errors.New("disk on fire")

func ptr[T any](v T) *T {
	return &v
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeStore is an in-memory blob store with failure injection.
type fakeStore struct {
	mu     sync.Mutex
	data   map[string]string
	getErr map[string]error
	setErr map[string]error
	gets   map[string]int
	sets   map[string]int
	gates  map[string]*setGate
}

// setGate holds Set calls for a key until release is closed.
type setGate struct {
	entered chan struct{}
	release chan struct{}
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		data:   make(map[string]string),
		getErr: make(map[string]error),
		setErr: make(map[string]error),
		gets:   make(map[string]int),
		sets:   make(map[string]int),
		gates:  make(map[string]*setGate),
	}
}

func (f *fakeStore) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.gets[key]++
	if err := f.getErr[key]; err != nil {
		return "", err
	}
	v, ok := f.data[key]
	if !ok {
		return "", domain.ErrBlobNotFound
	}
	return v, nil
}

func (f *fakeStore) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	gate := f.gates[key]
	f.mu.Unlock()

	if gate != nil {
		select {
		case gate.entered <- struct{}{}:
		default:
		}
		<-gate.release
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.setErr[key]; err != nil {
		return err
	}
	f.sets[key]++
	f.data[key] = value
	return nil
}

func (f *fakeStore) raw(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	return v, ok
}

func (f *fakeStore) put(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
}

func (f *fakeStore) failGet(key string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getErr[key] = err
}

func (f *fakeStore) failSet(key string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setErr[key] = err
}

// blockSet makes Set on key wait until the returned release channel is
// closed. entered receives once a Set call is waiting.
func (f *fakeStore) blockSet(key string) (entered <-chan struct{}, release chan<- struct{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g := &setGate{entered: make(chan struct{}, 1), release: make(chan struct{})}
	f.gates[key] = g
	return g.entered, g.release
}

func (f *fakeStore) setCount(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sets[key]
}

type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockBlobStore) Set(ctx context.Context, key, value string) error {
	return m.Called(ctx, key, value).Error(0)
}

// recordingNotifier collects published events.
type recordingNotifier struct {
	mu     sync.Mutex
	events []domain.ChangeEvent
}

func (r *recordingNotifier) Publish(e domain.ChangeEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingNotifier) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}
