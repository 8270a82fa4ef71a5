package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// handlerBase dependencias comunes de los handlers.
type handlerBase struct {
	log *logger.Logger
}

// requestID devuelve el id asignado por el middleware requestid (vacío si no está montado).
func requestID(c *fiber.Ctx) string {
	s, _ := c.Locals("requestid").(string)
	return s
}

// RequestLogger registra cada petición con método, ruta, status, latencia y request id.
func RequestLogger(log *logger.Logger) fiber.Handler {
	log = log.Component("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		ev := log.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = log.Error().Err(err)
		case status >= fiber.StatusBadRequest:
			ev = log.Debug()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("request_id", requestID(c)).
			Str("actor_id", GetActorID(c)).
			Msg("request")
		return err
	}
}
