package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProxy отвечает на POST заданным статусом и телом и запоминает запрос.
func fakeProxy(t *testing.T, status int, body string) (*httptest.Server, *request) {
	t.Helper()

	var got request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodGet {
			_, _ = w.Write([]byte(`{"status":"MCP Proxy is running","endpoint":"https://example.test/mcp","hasApiKey":true}`))
			return
		}
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

func TestGetRoomsFromResult(t *testing.T) {
	srv, got := fakeProxy(t, http.StatusOK, `{"jsonrpc":"2.0","id":1,"result":[{"id":"r1","name":"Den","length":4,"width":3}]}`)
	c := NewClient(srv.URL, time.Second)

	rooms, source := c.GetRooms(context.Background())
	assert.Equal(t, SourceMCP, source)
	require.Len(t, rooms, 1)
	assert.Equal(t, "Den", rooms[0].Name)

	assert.Equal(t, "2.0", got.JSONRPC)
	assert.Equal(t, "tools/call", got.Method)
	assert.Equal(t, ToolGetRooms, got.Params.Name)
}

func TestGetRoomsFromBareArray(t *testing.T) {
	srv, _ := fakeProxy(t, http.StatusOK, `[{"id":"a","name":"Hall","length":2,"width":2}]`)
	c := NewClient(srv.URL, time.Second)

	rooms, source := c.GetRooms(context.Background())
	assert.Equal(t, SourceMCP, source)
	assert.Len(t, rooms, 1)
}

func TestGetRoomsFromTextContent(t *testing.T) {
	srv, _ := fakeProxy(t, http.StatusOK,
		`{"jsonrpc":"2.0","id":1,"result":{"content":[{"type":"text","text":"[{\"id\":\"x\",\"name\":\"Loft\",\"length\":9,\"width\":7}]"}]}}`)
	c := NewClient(srv.URL, time.Second)

	rooms, source := c.GetRooms(context.Background())
	assert.Equal(t, SourceMCP, source)
	require.Len(t, rooms, 1)
	assert.Equal(t, "Loft", rooms[0].Name)
}

func TestGetRoomsFallsBackToMock(t *testing.T) {
	cases := map[string]struct {
		status int
		body   string
	}{
		"upstream error": {http.StatusBadGateway, `{"error":"MCP Error: 401 - nope"}`},
		"malformed body": {http.StatusOK, `not json`},
		"rpc error":      {http.StatusOK, `{"jsonrpc":"2.0","id":1,"error":{"code":-32601,"message":"no such tool"}}`},
		"empty result":   {http.StatusOK, `{"jsonrpc":"2.0","id":1}`},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			srv, _ := fakeProxy(t, tc.status, tc.body)
			c := NewClient(srv.URL, time.Second)

			rooms, source := c.GetRooms(context.Background())
			assert.Equal(t, SourceMock, source)
			assert.Equal(t, MockRooms(), rooms)
		})
	}
}

func TestUnreachableProxyFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(url, 200*time.Millisecond)

	rooms, source := c.GetRooms(context.Background())
	assert.Equal(t, SourceMock, source)
	assert.Len(t, rooms, 4)

	room, source := c.CreateRoom(context.Background(), RoomInput{Name: "Studio", Length: 5, Width: 4})
	assert.Equal(t, SourceMock, source)
	assert.Len(t, room.ID, 9)
	assert.Equal(t, "Studio", room.Name)

	report := c.TestConnection(context.Background())
	assert.False(t, report.OK)
	assert.NotEmpty(t, report.Error)
}

func TestCreateRoomSendsBody(t *testing.T) {
	srv, got := fakeProxy(t, http.StatusOK, `{"id":"srv-7","name":"Studio","length":5,"width":4}`)
	c := NewClient(srv.URL, time.Second)

	room, source := c.CreateRoom(context.Background(), RoomInput{Name: "Studio", Length: 5, Width: 4})
	assert.Equal(t, SourceMCP, source)
	assert.Equal(t, "srv-7", room.ID)

	assert.Equal(t, ToolPostRooms, got.Params.Name)
	body, ok := got.Params.Arguments["body"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Studio", body["name"])
}

func TestCreateDoorAndWindow(t *testing.T) {
	srv, got := fakeProxy(t, http.StatusOK, `{"jsonrpc":"2.0","id":3,"result":{"id":"d1","roomId":"1","width":3,"height":7}}`)
	c := NewClient(srv.URL, time.Second)

	door, source := c.CreateDoor(context.Background(), OpeningInput{RoomID: "1", Width: 3, Height: 7})
	assert.Equal(t, SourceMCP, source)
	assert.Equal(t, "d1", door.ID)
	assert.Equal(t, ToolPostDoors, got.Params.Name)

	window, source := c.CreateWindow(context.Background(), OpeningInput{RoomID: "1", Width: 4, Height: 3})
	assert.Equal(t, SourceMCP, source)
	assert.Equal(t, "d1", window.ID)
	assert.Equal(t, ToolPostWindows, got.Params.Name)
}

func TestCreateWithoutIDFallsBack(t *testing.T) {
	srv, _ := fakeProxy(t, http.StatusOK, `{"jsonrpc":"2.0","id":3,"result":{"width":3}}`)
	c := NewClient(srv.URL, time.Second)

	window, source := c.CreateWindow(context.Background(), OpeningInput{RoomID: "2", Width: 2, Height: 2})
	assert.Equal(t, SourceMock, source)
	assert.Equal(t, "2", window.RoomID)
	assert.NotEmpty(t, window.ID)
}

func TestTestConnection(t *testing.T) {
	srv, _ := fakeProxy(t, http.StatusOK, `{"jsonrpc":"2.0","id":1,"result":[]}`)
	report := NewClient(srv.URL, time.Second).TestConnection(context.Background())

	assert.True(t, report.OK)
	assert.Equal(t, http.StatusOK, report.ProxyStatus)
	require.NotNil(t, report.Proxy)
	assert.True(t, report.Proxy.HasAPIKey)

	failing, _ := fakeProxy(t, http.StatusUnauthorized, `{"error":"MCP Error: 401 - denied"}`)
	report = NewClient(failing.URL, time.Second).TestConnection(context.Background())
	assert.False(t, report.OK)
	assert.Equal(t, http.StatusUnauthorized, report.CallStatus)
}

func TestTestConnectionTruncatedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Length", "200")
		_, _ = w.Write([]byte(`{"status":"MCP Pro`))
	}))
	defer srv.Close()

	report := NewClient(srv.URL, time.Second).TestConnection(context.Background())
	assert.False(t, report.OK)
	assert.Equal(t, http.StatusOK, report.ProxyStatus)
	assert.Nil(t, report.Proxy)
	assert.Contains(t, report.Error, "read proxy status")
}

func TestRequestIDsIncrease(t *testing.T) {
	c := NewClient("http://unused", time.Second)
	first := c.envelope(ToolGetRooms, nil)
	second := c.envelope(ToolGetRooms, nil)
	assert.Less(t, first.ID, second.ID)
}
