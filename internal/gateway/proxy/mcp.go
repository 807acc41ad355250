package proxy

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
)

const (
	// StatusRunning - значение поля status в GET /api/mcp.
	StatusRunning = "MCP Proxy is running"

	errInternal = "Internal server error"
)

// ============================================================
// MCP proxy
// ============================================================

// MCPProxy пересылает JSON-RPC запросы на MCP-эндпоинт и подставляет ключ
// доступа, чтобы он не попадал к клиенту.
type MCPProxy struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func NewMCPProxy(endpoint, apiKey string, timeout time.Duration) *MCPProxy {
	return &MCPProxy{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
	}
}

// Status - GET /api/mcp.
func (p *MCPProxy) Status(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    StatusRunning,
		"endpoint":  p.endpoint,
		"hasApiKey": p.apiKey != "",
	})
}

// Handle - POST /api/mcp.
func (p *MCPProxy) Handle(c fiber.Ctx) error {
	body := c.Body()
	if !json.Valid(body) {
		log.Printf("[MCP] invalid request body (%d bytes)", len(body))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": errInternal})
	}

	req, err := http.NewRequestWithContext(c.Context(), http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		log.Printf("[MCP] build request error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": errInternal})
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
		req.Header.Set("X-API-Key", p.apiKey)
		req.Header.Set("gram-api-key", p.apiKey)
		req.Header.Set("x-gram-api-key", p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		log.Printf("[MCP] upstream unreachable: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": errInternal})
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("[MCP] read response error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": errInternal})
	}

	if resp.StatusCode/100 != 2 {
		log.Printf("[MCP] upstream returned %d", resp.StatusCode)
		return c.Status(resp.StatusCode).JSON(fiber.Map{
			"error": fmt.Sprintf("MCP Error: %d - %s", resp.StatusCode, string(data)),
		})
	}

	if strings.HasPrefix(resp.Header.Get("Content-Type"), "text/event-stream") {
		data = lastEventData(data)
	}
	if !json.Valid(data) {
		log.Printf("[MCP] invalid JSON from upstream (%d bytes)", len(data))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Invalid JSON response from MCP"})
	}

	c.Set("Content-Type", "application/json")
	return c.Status(resp.StatusCode).Send(data)
}

// lastEventData достает данные последнего события SSE-потока; многострочные
// data: склеиваются через перевод строки.
func lastEventData(stream []byte) []byte {
	var last, current []string
	scanner := bufio.NewScanner(bytes.NewReader(stream))
	scanner.Buffer(make([]byte, 0, 64*1024), len(stream)+1)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "":
			if len(current) > 0 {
				last, current = current, nil
			}
		case strings.HasPrefix(line, "data:"):
			current = append(current, strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " "))
		}
	}
	if len(current) > 0 {
		last = current
	}
	return []byte(strings.Join(last, "\n"))
}
