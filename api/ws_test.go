package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vantran/live-auction-BE/internal/event"
)

type wireEvent struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func dialTestServer(t *testing.T, ts *testServer) (*websocket.Conn, *httptest.Server) {
	t.Helper()

	httpServer := httptest.NewServer(ts.server.router)
	t.Cleanup(httpServer.Close)

	wsURL := "ws" + strings.TrimPrefix(httpServer.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { conn.Close() })

	return conn, httpServer
}

func readEvent(t *testing.T, conn *websocket.Conn) wireEvent {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var ev wireEvent
	require.NoError(t, json.Unmarshal(payload, &ev))
	return ev
}

// readEventOfType skips unrelated broadcasts (catalog refreshes, other
// clients' updates) until the wanted event type arrives.
func readEventOfType(t *testing.T, conn *websocket.Conn, wanted string) wireEvent {
	t.Helper()

	for i := 0; i < 10; i++ {
		ev := readEvent(t, conn)
		if ev.Event == wanted {
			return ev
		}
	}
	t.Fatalf("no %s event received", wanted)
	return wireEvent{}
}

func sendBid(t *testing.T, conn *websocket.Conn, itemID string, amount int64, userName string) {
	t.Helper()

	payload := map[string]any{
		"event": "BID_PLACED",
		"data": map[string]any{
			"itemId":    itemID,
			"bidAmount": amount,
			"userName":  userName,
		},
	}
	require.NoError(t, conn.WriteJSON(payload))
}

func TestWebsocket_InitialCatalogOnConnect(t *testing.T) {
	ts := newTestServer(t, nil)
	conn, _ := dialTestServer(t, ts)

	ev := readEvent(t, conn)
	assert.Equal(t, event.TypeItemsUpdate, ev.Event)

	var items []map[string]any
	require.NoError(t, json.Unmarshal(ev.Data, &items))
	assert.Len(t, items, 3)
}

func TestWebsocket_BidFlow(t *testing.T) {
	ts := newTestServer(t, nil)
	conn, _ := dialTestServer(t, ts)

	readEventOfType(t, conn, event.TypeItemsUpdate)

	_, err := ts.server.controller.StartAuction("1", nil)
	require.NoError(t, err)

	sendBid(t, conn, "1", 60, "alice")

	update := readEventOfType(t, conn, event.TypeBidUpdate)
	var bid struct {
		ItemID        string `json:"itemId"`
		CurrentBid    int64  `json:"currentBid"`
		HighestBidder string `json:"highestBidder"`
	}
	require.NoError(t, json.Unmarshal(update.Data, &bid))
	assert.Equal(t, "1", bid.ItemID)
	assert.Equal(t, int64(60), bid.CurrentBid)
	assert.Equal(t, "alice", bid.HighestBidder)

	success := readEventOfType(t, conn, event.TypeBidSuccess)
	var confirmation struct {
		ItemID  string `json:"itemId"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(success.Data, &confirmation))
	assert.Equal(t, "1", confirmation.ItemID)

	item, err := ts.store.GetItem("1")
	require.NoError(t, err)
	assert.Equal(t, int64(60), item.CurrentBid)
}

func TestWebsocket_RejectionIsTargetedOnly(t *testing.T) {
	ts := newTestServer(t, nil)
	conn, _ := dialTestServer(t, ts)

	readEventOfType(t, conn, event.TypeItemsUpdate)

	// No start command was issued, so any bid must be rejected.
	sendBid(t, conn, "1", 60, "alice")

	failure := readEventOfType(t, conn, event.TypeBidError)
	var rejection struct {
		ItemID  string `json:"itemId"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(failure.Data, &rejection))
	assert.Equal(t, "1", rejection.ItemID)
	assert.Contains(t, rejection.Message, "not started")

	item, err := ts.store.GetItem("1")
	require.NoError(t, err)
	assert.Equal(t, int64(50), item.CurrentBid)
}

func TestWebsocket_TieRejectedWithCurrentPrice(t *testing.T) {
	ts := newTestServer(t, nil)
	conn, _ := dialTestServer(t, ts)

	readEventOfType(t, conn, event.TypeItemsUpdate)

	_, err := ts.server.controller.StartAuction("1", nil)
	require.NoError(t, err)

	_, err = ts.server.serializer.PlaceBid("1", 60, "bob", "conn-b")
	require.NoError(t, err)

	sendBid(t, conn, "1", 60, "alice")

	failure := readEventOfType(t, conn, event.TypeBidError)
	var rejection struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(failure.Data, &rejection))
	assert.Contains(t, rejection.Message, "$60")
}

func TestWebsocket_MissingFields(t *testing.T) {
	ts := newTestServer(t, nil)
	conn, _ := dialTestServer(t, ts)

	readEventOfType(t, conn, event.TypeItemsUpdate)

	require.NoError(t, conn.WriteJSON(map[string]any{
		"event": "BID_PLACED",
		"data":  map[string]any{"itemId": "1"},
	}))

	failure := readEventOfType(t, conn, event.TypeBidError)
	var rejection struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(failure.Data, &rejection))
	assert.Contains(t, rejection.Message, "missing required fields")
}

func TestWebsocket_HTTPRequestToWSEndpointFails(t *testing.T) {
	ts := newTestServer(t, nil)

	recorder := ts.request(t, http.MethodGet, "/ws", nil, nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
