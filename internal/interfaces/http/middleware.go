package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// LocalRequestID clave en c.Locals del id de la petición.
const LocalRequestID = "request_id"

// RequestLogger asigna un X-Request-ID (si no viene) y registra cada petición con zerolog.
// 5xx se registran en error, 4xx en warn y el resto en info.
func RequestLogger(log *logger.Logger) fiber.Handler {
	log = log.Named("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqID := c.Get(fiber.HeaderXRequestID)
		if reqID == "" {
			reqID = uuid.New().String()
		}
		c.Locals(LocalRequestID, reqID)
		c.Set(fiber.HeaderXRequestID, reqID)

		err := c.Next()
		if err != nil {
			// deja que el ErrorHandler de Fiber fije el status antes de registrar
			if hErr := c.App().ErrorHandler(c, err); hErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		ev := log.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = log.Error()
		case status >= fiber.StatusBadRequest:
			ev = log.Warn()
		}
		ev.Str("request_id", reqID).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("petición HTTP")
		return nil
	}
}

// GetRequestID devuelve el id de la petición guardado por RequestLogger.
func GetRequestID(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocalRequestID).(string); ok {
		return v
	}
	return ""
}
