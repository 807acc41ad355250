package health

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Health Check Handlers
// ============================================================

// CheckFunc - проверка зависимости; nil означает, что зависимость готова.
type CheckFunc func(ctx context.Context) error

type check struct {
	name string
	fn   CheckFunc
}

// Probes собирает проверки готовности сервиса.
type Probes struct {
	checks  []check
	timeout time.Duration
}

func New(timeout time.Duration) *Probes {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Probes{timeout: timeout}
}

// Add регистрирует проверку для readiness.
func (p *Probes) Add(name string, fn CheckFunc) *Probes {
	p.checks = append(p.checks, check{name: name, fn: fn})
	return p
}

// Liveness проверяет, что приложение работает
func (p *Probes) Liveness(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "alive",
	})
}

// Readiness проверяет готовность приложения обрабатывать запросы.
// Любая упавшая проверка даёт 503 и список ошибок по именам.
func (p *Probes) Readiness(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), p.timeout)
	defer cancel()

	failed := fiber.Map{}
	for _, chk := range p.checks {
		if err := chk.fn(ctx); err != nil {
			log.Printf("[HEALTH] %s not ready: %v", chk.name, err)
			failed[chk.name] = err.Error()
		}
	}

	if len(failed) > 0 {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "not ready",
			"checks": failed,
		})
	}
	return c.JSON(fiber.Map{
		"status": "ready",
	})
}

// Startup проверяет, что приложение успешно запустилось
func (p *Probes) Startup(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "started",
	})
}

// HTTPCheck считает зависимость готовой, если GET url отвечает 2xx.
func HTTPCheck(url string) CheckFunc {
	return func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return err
		}
		resp.Body.Close()
		if resp.StatusCode/100 != 2 {
			return fmt.Errorf("status %d", resp.StatusCode)
		}
		return nil
	}
}
