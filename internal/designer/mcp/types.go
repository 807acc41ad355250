package mcp

import "encoding/json"

// ============================================================
// Tool names
// ============================================================

const (
	ToolGetRooms    = "future_home_get_rooms"
	ToolPostRooms   = "future_home_post_rooms"
	ToolPostDoors   = "future_home_post_doors"
	ToolPostWindows = "future_home_post_windows"

	jsonRPCVersion  = "2.0"
	methodToolsCall = "tools/call"
)

// Source - откуда пришли данные.
type Source string

const (
	SourceMCP  Source = "mcp"
	SourceMock Source = "mock"
)

// ============================================================
// Remote entities
// ============================================================

type Room struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
}

type RoomInput struct {
	Name   string  `json:"name"`
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
}

type Door struct {
	ID     string  `json:"id"`
	RoomID string  `json:"roomId"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type Window struct {
	ID     string  `json:"id"`
	RoomID string  `json:"roomId"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// OpeningInput - тело создания двери или окна.
type OpeningInput struct {
	RoomID string  `json:"roomId"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ============================================================
// JSON-RPC envelope
// ============================================================

type request struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  params `json:"params"`
}

type params struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type response struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
	ID     json.RawMessage `json:"id"`
}

// toolContent - стандартная форма результата tools/call: текстовые блоки.
type toolContent struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// Status - ответ GET на прокси.
type Status struct {
	Status    string `json:"status"`
	Endpoint  string `json:"endpoint"`
	HasAPIKey bool   `json:"hasApiKey"`
}

// ConnectionReport - итог TestConnection.
type ConnectionReport struct {
	OK          bool    `json:"ok"`
	ProxyStatus int     `json:"proxyStatus"`
	Proxy       *Status `json:"proxy,omitempty"`
	CallStatus  int     `json:"callStatus,omitempty"`
	Error       string  `json:"error,omitempty"`
}
