package ws

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-planner/internal/core/domain"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockClient has a send buffer but no connection.
func mockClient(hub *Hub) *Client {
	return &Client{hub: hub, send: make(chan []byte, sendBufferSize)}
}

func TestHub_RegisterUnregister(t *testing.T) {
	hub := NewHub(quietLogger())
	c1, c2 := mockClient(hub), mockClient(hub)

	hub.Register(c1)
	hub.Register(c2)
	assert.Equal(t, 2, hub.ClientCount())

	hub.Unregister(c1)
	assert.Equal(t, 1, hub.ClientCount())

	hub.Unregister(c2)
	hub.Unregister(c2)
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHub_Publish(t *testing.T) {
	t.Run("Success: Every client receives the event", func(t *testing.T) {
		hub := NewHub(quietLogger())
		c1, c2 := mockClient(hub), mockClient(hub)
		hub.Register(c1)
		hub.Register(c2)
		defer hub.Unregister(c1)
		defer hub.Unregister(c2)

		hub.Publish(domain.NewChangeEvent(domain.EntityList, domain.ActionCreated, "list-1", map[string]any{"name": "Gym"}))

		for _, c := range []*Client{c1, c2} {
			select {
			case data := <-c.send:
				var got domain.ChangeEvent
				require.NoError(t, json.Unmarshal(data, &got))
				assert.Equal(t, "list_created", got.Type)
				assert.Equal(t, "list-1", got.ID)
				assert.Equal(t, "Gym", got.Extra["name"])
			case <-time.After(100 * time.Millisecond):
				t.Fatal("timeout waiting for event")
			}
		}
	})

	t.Run("Success: Empty hub", func(t *testing.T) {
		hub := NewHub(quietLogger())
		assert.NotPanics(t, func() {
			hub.Publish(domain.NewChangeEvent(domain.EntitySchedule, domain.ActionReloaded, "", nil))
		})
	})

	t.Run("Success: Full buffer drops instead of blocking", func(t *testing.T) {
		hub := NewHub(quietLogger())
		c := mockClient(hub)
		hub.Register(c)
		defer hub.Unregister(c)

		for i := 0; i < sendBufferSize+5; i++ {
			hub.Publish(domain.NewChangeEvent(domain.EntitySchedule, domain.ActionAssigned, "", nil))
		}
		assert.Len(t, c.send, sendBufferSize)
	})

	t.Run("Success: Concurrent publish and unregister", func(t *testing.T) {
		hub := NewHub(quietLogger())
		clients := make([]*Client, 10)
		for i := range clients {
			clients[i] = mockClient(hub)
			hub.Register(clients[i])
		}

		var wg sync.WaitGroup
		for i := range clients {
			wg.Add(2)
			go func() {
				defer wg.Done()
				hub.Publish(domain.NewChangeEvent(domain.EntityLibrary, domain.ActionUpdated, "x", nil))
			}()
			go func(c *Client) {
				defer wg.Done()
				hub.Unregister(c)
			}(clients[i])
		}
		wg.Wait()
		assert.Equal(t, 0, hub.ClientCount())
	})
}

func TestHandler_DeliversEvents(t *testing.T) {
	hub := NewHub(quietLogger())
	srv := httptest.NewServer(Handler(hub, nil))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.CloseNow()

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.Publish(domain.NewChangeEvent(domain.EntitySchedule, domain.ActionSwapped, "", map[string]any{"from": "monday", "to": "friday"}))

	_, data, err := conn.Read(ctx)
	require.NoError(t, err)

	var got domain.ChangeEvent
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "schedule_swapped", got.Type)
	assert.Equal(t, "friday", got.Extra["to"])

	require.NoError(t, conn.Close(websocket.StatusNormalClosure, ""))
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}
