package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"home-designer/internal/common/telemetry"
)

// maxBody - предел чтения ответа прокси.
const maxBody = 4 << 20

// ============================================================
// Client
// ============================================================

// Client ходит в MCP через прокси шлюза. Любая ошибка вызова логируется
// и заменяется мок-данными, поэтому методы чтения и создания не падают.
type Client struct {
	proxyURL string
	http     *http.Client
	tracer   trace.Tracer
	nextID   atomic.Int64
}

func NewClient(proxyURL string, timeout time.Duration) *Client {
	return &Client{
		proxyURL: proxyURL,
		http:     &http.Client{Timeout: timeout},
		tracer:   telemetry.Tracer("mcp"),
	}
}

// GetRooms - комнаты из MCP или мок при любой ошибке.
func (c *Client) GetRooms(ctx context.Context) ([]Room, Source) {
	var rooms []Room
	if err := c.callTool(ctx, ToolGetRooms, map[string]any{}, &rooms, acceptArray); err != nil {
		log.Printf("[MCP] get rooms failed, using mock data: %v", err)
		return MockRooms(), SourceMock
	}
	return rooms, SourceMCP
}

func (c *Client) CreateRoom(ctx context.Context, in RoomInput) (Room, Source) {
	var room Room
	err := c.callTool(ctx, ToolPostRooms, map[string]any{"body": in}, &room, acceptWithID)
	if err == nil && room.ID == "" {
		err = errors.New("created room has no id")
	}
	if err != nil {
		log.Printf("[MCP] create room failed, creating mock room: %v", err)
		return Room{ID: mockID(), Name: in.Name, Length: in.Length, Width: in.Width}, SourceMock
	}
	return room, SourceMCP
}

func (c *Client) CreateDoor(ctx context.Context, in OpeningInput) (Door, Source) {
	var door Door
	err := c.callTool(ctx, ToolPostDoors, map[string]any{"body": in}, &door, acceptWithID)
	if err == nil && door.ID == "" {
		err = errors.New("created door has no id")
	}
	if err != nil {
		log.Printf("[MCP] create door failed, creating mock door: %v", err)
		return Door{ID: mockID(), RoomID: in.RoomID, Width: in.Width, Height: in.Height}, SourceMock
	}
	return door, SourceMCP
}

func (c *Client) CreateWindow(ctx context.Context, in OpeningInput) (Window, Source) {
	var window Window
	err := c.callTool(ctx, ToolPostWindows, map[string]any{"body": in}, &window, acceptWithID)
	if err == nil && window.ID == "" {
		err = errors.New("created window has no id")
	}
	if err != nil {
		log.Printf("[MCP] create window failed, creating mock window: %v", err)
		return Window{ID: mockID(), RoomID: in.RoomID, Width: in.Width, Height: in.Height}, SourceMock
	}
	return window, SourceMCP
}

// TestConnection проверяет прокси (GET) и затем делает настоящий вызов комнат.
func (c *Client) TestConnection(ctx context.Context) ConnectionReport {
	ctx, span := c.tracer.Start(ctx, "mcp.test_connection")
	defer span.End()

	var report ConnectionReport

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.proxyURL, nil)
	if err != nil {
		report.Error = err.Error()
		return report
	}
	resp, err := c.http.Do(req)
	if err != nil {
		report.Error = fmt.Sprintf("proxy unreachable: %v", err)
		log.Printf("[MCP] %s", report.Error)
		return report
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	resp.Body.Close()

	report.ProxyStatus = resp.StatusCode
	if err != nil {
		report.Error = fmt.Sprintf("read proxy status: %v", err)
		log.Printf("[MCP] %s", report.Error)
		return report
	}

	var status Status
	if err := json.Unmarshal(body, &status); err == nil {
		report.Proxy = &status
	}
	if resp.StatusCode/100 != 2 || report.Proxy == nil || report.Proxy.Status == "" {
		report.Error = fmt.Sprintf("proxy not ready: %d", resp.StatusCode)
		return report
	}

	callStatus, _, err := c.post(ctx, c.envelope(ToolGetRooms, map[string]any{}))
	report.CallStatus = callStatus
	if err != nil {
		report.Error = err.Error()
		return report
	}
	report.OK = callStatus/100 == 2
	if !report.OK {
		report.Error = fmt.Sprintf("tool call returned %d", callStatus)
	}

	span.SetAttributes(attribute.Bool("mcp.ok", report.OK))
	return report
}

// ============================================================
// Transport
// ============================================================

// acceptFunc решает, можно ли считать тело без "result" готовым ответом.
type acceptFunc func(body []byte) bool

func acceptArray(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	return len(trimmed) > 0 && trimmed[0] == '['
}

func acceptWithID(body []byte) bool {
	var probe struct {
		ID any `json:"id"`
	}
	if err := json.Unmarshal(body, &probe); err != nil || probe.ID == nil {
		return false
	}
	s, isString := probe.ID.(string)
	return !isString || s != ""
}

func (c *Client) envelope(tool string, args map[string]any) request {
	return request{
		JSONRPC: jsonRPCVersion,
		ID:      int(c.nextID.Add(1)),
		Method:  methodToolsCall,
		Params:  params{Name: tool, Arguments: args},
	}
}

func (c *Client) callTool(ctx context.Context, tool string, args map[string]any, out any, accept acceptFunc) error {
	ctx, span := c.tracer.Start(ctx, "mcp.tools_call", trace.WithAttributes(attribute.String("mcp.tool", tool)))
	defer span.End()

	status, body, err := c.post(ctx, c.envelope(tool, args))
	span.SetAttributes(attribute.Int("http.status_code", status))
	if err != nil {
		return traceErr(span, err)
	}
	if status/100 != 2 {
		return traceErr(span, fmt.Errorf("MCP error: %d - %s", status, truncate(body)))
	}
	if err := decodeResult(body, out, accept); err != nil {
		return traceErr(span, fmt.Errorf("%s: %w", tool, err))
	}
	return nil
}

func (c *Client) post(ctx context.Context, payload request) (int, []byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.proxyURL, bytes.NewReader(data))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("proxy unreachable: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, body, nil
}

// decodeResult берёт "result" из конверта; результат в виде текстовых
// блоков tools/call разбирается как JSON. Без "result" тело принимается
// целиком, если его пропускает accept.
func decodeResult(body []byte, out any, accept acceptFunc) error {
	var env response
	if err := json.Unmarshal(body, &env); err != nil {
		if accept(body) {
			return json.Unmarshal(body, out)
		}
		return fmt.Errorf("malformed response: %w", err)
	}
	if env.Error != nil {
		return fmt.Errorf("rpc error %d: %s", env.Error.Code, env.Error.Message)
	}
	if len(env.Result) > 0 && string(env.Result) != "null" {
		return decodePayload(env.Result, out)
	}
	if accept(body) {
		return json.Unmarshal(body, out)
	}
	return errors.New("response has no result")
}

func decodePayload(raw json.RawMessage, out any) error {
	var content toolContent
	if err := json.Unmarshal(raw, &content); err != nil || len(content.Content) == 0 {
		return json.Unmarshal(raw, out)
	}

	for _, block := range content.Content {
		if block.Type != "text" {
			continue
		}
		if err := json.Unmarshal([]byte(block.Text), out); err == nil {
			return nil
		}
	}
	return errors.New("result content is not JSON")
}

func truncate(body []byte) string {
	const limit = 512
	if len(body) > limit {
		return string(body[:limit]) + "..."
	}
	return string(body)
}

func traceErr(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
