package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/superindo-api/pkg/logger"
)

// HeaderRequestID cabecera de correlación; se respeta la del cliente o se genera una.
const HeaderRequestID = "X-Request-ID"

// LocalRequestID clave en c.Locals con el request id.
const LocalRequestID = "request_id"

// RequestLogger registra cada petición (método, ruta, status, duración) y deja el logger
// con request_id en el contexto de usuario; los casos de uso lo recuperan con logger.FromContext.
func RequestLogger(log *logger.Logger) fiber.Handler {
	base := log.Component("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		rid := c.Get(HeaderRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals(LocalRequestID, rid)
		c.Set(HeaderRequestID, rid)

		reqLog := base.With("request_id", rid)
		c.SetUserContext(log.With("request_id", rid).WithContext(c.UserContext()))

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		ev := reqLog.Info()
		if status >= fiber.StatusInternalServerError {
			ev = reqLog.Error().Err(err)
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("request")
		return err
	}
}

// GetRequestID devuelve el request id asignado por RequestLogger.
func GetRequestID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRequestID).(string)
	return s
}
