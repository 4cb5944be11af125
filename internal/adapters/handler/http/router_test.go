package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/comitanigiacomo/kanso-planner/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-planner/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-planner/internal/core/domain"
	"github.com/comitanigiacomo/kanso-planner/internal/core/services"
)

// wednesday is 2024-01-03.
var wednesday = time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC)

type flakyStore struct {
	*repository.InMemoryBlobStore
	fail bool
}

func (s *flakyStore) Get(ctx context.Context, key string) (string, error) {
	if s.fail {
		return "", errors.New("disk on fire")
	}
	return s.InMemoryBlobStore.Get(ctx, key)
}

func (s *flakyStore) Set(ctx context.Context, key, value string) error {
	if s.fail {
		return errors.New("disk on fire")
	}
	return s.InMemoryBlobStore.Set(ctx, key, value)
}

type testApp struct {
	router   *gin.Engine
	store    *flakyStore
	tokens   *services.TokenService
	schedule *services.ScheduleService
}

func setupApp(t *testing.T, passwordHash string) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := &flakyStore{InMemoryBlobStore: repository.NewInMemoryBlobStore()}

	lists := services.NewListService(store, logger)
	schedule := services.NewScheduleService(store, lists, domain.FixedClock(wednesday), logger)
	library := services.NewLibraryService(store, logger)
	tokens := services.NewTokenService("test-secret", "test-issuer", time.Hour)
	auth := services.NewAuthService(passwordHash, tokens)

	require.NoError(t, schedule.LoadAndReconcile(context.Background()))

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:     adapterHTTP.NewAuthHandler(auth),
		ListHandler:     adapterHTTP.NewListHandler(lists),
		ScheduleHandler: adapterHTTP.NewScheduleHandler(schedule),
		LibraryHandler:  adapterHTTP.NewLibraryHandler(library),
		AuthService:     auth,
		TokenService:    tokens,
		Store:           store,
		StartTime:       time.Now(),
		Logger:          logger,
	})

	return &testApp{router: router, store: store, tokens: tokens, schedule: schedule}
}

func (a *testApp) do(t *testing.T, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func (a *testApp) createList(t *testing.T, name string) domain.HabitList {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/v1/lists", `{"name":"`+name+`"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[domain.HabitList](t, w)
}

func TestHealth(t *testing.T) {
	app := setupApp(t, "")

	w := app.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)

	body := decode[map[string]string](t, w)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "connected", body["store"])
	assert.Equal(t, "disabled", body["redis"])
}

func TestListHandler(t *testing.T) {
	t.Run("Success: Create, fetch and list", func(t *testing.T) {
		app := setupApp(t, "")

		created := app.createList(t, "  Gym Day  ")
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, "Gym Day", created.Name)
		assert.NotNil(t, created.Morning)

		w := app.do(t, http.MethodGet, "/api/v1/lists/"+created.ID, "")
		assert.Equal(t, http.StatusOK, w.Code)

		w = app.do(t, http.MethodGet, "/api/v1/lists", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode[[]domain.HabitList](t, w), 1)
	})

	t.Run("Fail: Blank name is rejected", func(t *testing.T) {
		app := setupApp(t, "")

		w := app.do(t, http.MethodPost, "/api/v1/lists", `{"name":"   "}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), domain.ErrListNameEmpty.Error())
	})

	t.Run("Success: Update replaces in place", func(t *testing.T) {
		app := setupApp(t, "")
		first := app.createList(t, "First")
		app.createList(t, "Second")

		w := app.do(t, http.MethodPut, "/api/v1/lists/"+first.ID, `{"name":"Renamed"}`)
		require.Equal(t, http.StatusOK, w.Code)

		w = app.do(t, http.MethodGet, "/api/v1/lists", "")
		lists := decode[[]domain.HabitList](t, w)
		require.Len(t, lists, 2)
		assert.Equal(t, "Renamed", lists[0].Name)
		assert.Equal(t, first.ID, lists[0].ID)
	})

	t.Run("Fail: Update unknown list", func(t *testing.T) {
		app := setupApp(t, "")

		w := app.do(t, http.MethodPut, "/api/v1/lists/ghost", `{"name":"Nope"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Success: Delete is idempotent", func(t *testing.T) {
		app := setupApp(t, "")
		list := app.createList(t, "Temp")

		assert.Equal(t, http.StatusNoContent, app.do(t, http.MethodDelete, "/api/v1/lists/"+list.ID, "").Code)
		assert.Equal(t, http.StatusNoContent, app.do(t, http.MethodDelete, "/api/v1/lists/"+list.ID, "").Code)
		assert.Equal(t, http.StatusNotFound, app.do(t, http.MethodGet, "/api/v1/lists/"+list.ID, "").Code)
	})

	t.Run("Fail: Storage down", func(t *testing.T) {
		app := setupApp(t, "")
		app.store.fail = true

		w := app.do(t, http.MethodPost, "/api/v1/lists", `{"name":"Gym"}`)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("Fail: Unreadable stored lists are left alone", func(t *testing.T) {
		app := setupApp(t, "")
		require.NoError(t, app.store.Set(context.Background(), domain.ListsKey, "{not json"))

		w := app.do(t, http.MethodPost, "/api/v1/lists", `{"name":"Gym"}`)
		assert.Equal(t, http.StatusConflict, w.Code)

		raw, err := app.store.Get(context.Background(), domain.ListsKey)
		require.NoError(t, err)
		assert.Equal(t, "{not json", raw)
	})
}

func TestListHandler_Sections(t *testing.T) {
	t.Run("Success: Add item deduplicates per section", func(t *testing.T) {
		app := setupApp(t, "")
		list := app.createList(t, "Morning routine")
		path := "/api/v1/lists/" + list.ID + "/sections/morning/items"

		w := app.do(t, http.MethodPost, path, `{"id":"walk","name":"Walking","emoji":"🚶"}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = app.do(t, http.MethodPost, path, `{"id":"walk","name":"Walking","emoji":"🚶"}`)
		require.Equal(t, http.StatusOK, w.Code)

		got := decode[domain.HabitList](t, w)
		assert.Len(t, got.Morning, 1)
		assert.Empty(t, got.Evening)
	})

	t.Run("Fail: Unknown section", func(t *testing.T) {
		app := setupApp(t, "")
		list := app.createList(t, "Routine")

		w := app.do(t, http.MethodPost, "/api/v1/lists/"+list.ID+"/sections/night/items", `{"name":"Sleep","emoji":"😴"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Fail: Unknown list", func(t *testing.T) {
		app := setupApp(t, "")

		w := app.do(t, http.MethodPut, "/api/v1/lists/ghost/sections/evening", `[]`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Success: Replace keeps the given order", func(t *testing.T) {
		app := setupApp(t, "")
		list := app.createList(t, "Evening")

		body := `[{"id":"b","name":"Reading","emoji":"📖"},{"id":"a","name":"Yoga","emoji":"🧘"}]`
		w := app.do(t, http.MethodPut, "/api/v1/lists/"+list.ID+"/sections/evening", body)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		got := decode[domain.HabitList](t, w)
		require.Len(t, got.Evening, 2)
		assert.Equal(t, "b", got.Evening[0].ID)
		assert.Equal(t, "a", got.Evening[1].ID)
	})
}

func TestScheduleHandler(t *testing.T) {
	t.Run("Success: Canonical schedule on empty store", func(t *testing.T) {
		app := setupApp(t, "")

		w := app.do(t, http.MethodGet, "/api/v1/schedule", "")
		require.Equal(t, http.StatusOK, w.Code)

		snap := decode[domain.ScheduleSnapshot](t, w)
		require.Len(t, snap.Items, 7)
		assert.Equal(t, domain.Monday, snap.Items[0].Day)
		assert.False(t, snap.IsLoading)
	})

	t.Run("Success: Assign, clear and today", func(t *testing.T) {
		app := setupApp(t, "")
		list := app.createList(t, "Gym")

		w := app.do(t, http.MethodPut, "/api/v1/schedule/Wednesday", `{"list_id":"`+list.ID+`"}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		items := decode[[]domain.ScheduleItem](t, w)
		require.NotNil(t, items[2].ListName)
		assert.Equal(t, "Gym", *items[2].ListName)

		w = app.do(t, http.MethodGet, "/api/v1/schedule/today", "")
		today := decode[domain.TodaysAssignment](t, w)
		assert.Equal(t, domain.Wednesday, today.Day)
		require.NotNil(t, today.List)
		assert.Equal(t, list.ID, today.List.ID)

		w = app.do(t, http.MethodPut, "/api/v1/schedule/wednesday", `{"list_id":null}`)
		require.Equal(t, http.StatusOK, w.Code)
		items = decode[[]domain.ScheduleItem](t, w)
		assert.Nil(t, items[2].ListID)
		assert.Nil(t, items[2].ListName)
	})

	t.Run("Fail: Unknown day", func(t *testing.T) {
		app := setupApp(t, "")

		w := app.do(t, http.MethodPut, "/api/v1/schedule/someday", `{"list_id":null}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Success: Swap moves assignments only", func(t *testing.T) {
		app := setupApp(t, "")
		list := app.createList(t, "Gym")
		app.do(t, http.MethodPut, "/api/v1/schedule/monday", `{"list_id":"`+list.ID+`"}`)

		w := app.do(t, http.MethodPost, "/api/v1/schedule/swap", `{"from":0,"to":4}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		items := decode[[]domain.ScheduleItem](t, w)
		assert.Equal(t, domain.Monday, items[0].Day)
		assert.Nil(t, items[0].ListID)
		require.NotNil(t, items[4].ListID)
		assert.Equal(t, list.ID, *items[4].ListID)
	})

	t.Run("Fail: Swap out of range", func(t *testing.T) {
		app := setupApp(t, "")

		w := app.do(t, http.MethodPost, "/api/v1/schedule/swap", `{"from":0,"to":7}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Fail: Swap missing indices", func(t *testing.T) {
		app := setupApp(t, "")

		w := app.do(t, http.MethodPost, "/api/v1/schedule/swap", `{"from":1}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Success: Reload picks up external writes", func(t *testing.T) {
		app := setupApp(t, "")
		ctx := context.Background()

		require.NoError(t, app.store.InMemoryBlobStore.Set(ctx, domain.ListsKey, `[{"id":"ext","name":"External","morning":[],"afternoon":[],"evening":[]}]`))
		require.NoError(t, app.store.InMemoryBlobStore.Set(ctx, domain.ScheduleKey, `[
			{"day":"monday","listId":"ext","listName":"stale"},
			{"day":"tuesday","listId":null,"listName":null},
			{"day":"wednesday","listId":null,"listName":null},
			{"day":"thursday","listId":null,"listName":null},
			{"day":"friday","listId":null,"listName":null},
			{"day":"saturday","listId":null,"listName":null},
			{"day":"sunday","listId":null,"listName":null}]`))

		w := app.do(t, http.MethodPost, "/api/v1/schedule/reload", "")
		require.Equal(t, http.StatusOK, w.Code)

		snap := decode[domain.ScheduleSnapshot](t, w)
		require.NotNil(t, snap.Items[0].ListName)
		assert.Equal(t, "External", *snap.Items[0].ListName)
		assert.Len(t, snap.AvailableLists, 1)
	})

	t.Run("Fail: Reload with storage down", func(t *testing.T) {
		app := setupApp(t, "")
		app.store.fail = true

		w := app.do(t, http.MethodPost, "/api/v1/schedule/reload", "")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestLibraryHandler(t *testing.T) {
	app := setupApp(t, "")

	w := app.do(t, http.MethodGet, "/api/v1/library", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]domain.HabitItem](t, w), len(domain.DefaultLibrary()))

	w = app.do(t, http.MethodPost, "/api/v1/library", `{"name":"Cold shower","emoji":"🚿"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	added := decode[domain.HabitItem](t, w)

	w = app.do(t, http.MethodPost, "/api/v1/library", `{"name":"No emoji"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodPut, "/api/v1/library/"+added.ID, `{"name":"Ice bath","emoji":"🧊"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Ice bath", decode[domain.HabitItem](t, w).Name)

	w = app.do(t, http.MethodPut, "/api/v1/library/ghost", `{"name":"x","emoji":"y"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(t, http.MethodDelete, "/api/v1/library/"+added.ID, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = app.do(t, http.MethodGet, "/api/v1/library", "")
	assert.Len(t, decode[[]domain.HabitItem](t, w), len(domain.DefaultLibrary()))
}

func TestAuth(t *testing.T) {
	t.Run("Fail: Login disabled without a password hash", func(t *testing.T) {
		app := setupApp(t, "")

		w := app.do(t, http.MethodPost, "/api/v1/auth/login", `{"password":"whatever"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = app.do(t, http.MethodGet, "/api/v1/lists", "")
		assert.Equal(t, http.StatusOK, w.Code, "routes stay open while auth is disabled")
	})

	hash, err := domain.HashPassword("correct horse")
	require.NoError(t, err)

	t.Run("Fail: Protected route without token", func(t *testing.T) {
		app := setupApp(t, hash)

		w := app.do(t, http.MethodGet, "/api/v1/schedule", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Fail: Wrong password", func(t *testing.T) {
		app := setupApp(t, hash)

		w := app.do(t, http.MethodPost, "/api/v1/auth/login", `{"password":"battery staple"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Success: Login then call a protected route", func(t *testing.T) {
		app := setupApp(t, hash)

		w := app.do(t, http.MethodPost, "/api/v1/auth/login", `{"password":"correct horse"}`)
		require.Equal(t, http.StatusOK, w.Code)
		token := decode[map[string]string](t, w)["token"]
		require.NotEmpty(t, token)

		w = app.do(t, http.MethodGet, "/api/v1/schedule", "", "Authorization", "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
