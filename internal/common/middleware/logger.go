package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
)

// ============================================================
// Logger Middleware
// ============================================================

const (
	devFormat  = "[${time}] ${status} - ${latency} ${method} ${path} | Content-Type: ${reqHeader:Content-Type}\n"
	prodFormat = "${time} ${ip} ${status} ${latency} ${method} ${path} ${bytesSent}\n"
)

// Logger - логирование запросов. В production время пишется в UTC и без заголовков.
func Logger(production bool) fiber.Handler {
	if production {
		return logger.New(logger.Config{
			Format:     prodFormat,
			TimeFormat: "2006-01-02T15:04:05Z07:00",
			TimeZone:   "UTC",
		})
	}
	return logger.New(logger.Config{
		Format:     devFormat,
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	})
}
