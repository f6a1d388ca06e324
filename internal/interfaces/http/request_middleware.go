package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Invoicing-api/pkg/i18n"
	"github.com/jhoicas/Invoicing-api/pkg/logger"
)

// LanguageMiddleware picks en or ar from Accept-Language.
func LanguageMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(LocalLang, i18n.Negotiate(c.Get(fiber.HeaderAcceptLanguage)))
		return c.Next()
	}
}

// AccessLog logs one line per request and feeds the HTTP metrics. Errors
// from the chain go through the app error handler first so the logged status
// is the one sent. metrics may be nil.
func AccessLog(log *logger.Logger, metrics *Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if chainErr := c.Next(); chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		latency := time.Since(start)
		status := c.Response().StatusCode()
		route := c.Route().Path

		if metrics != nil {
			metrics.Observe(c.Method(), route, strconv.Itoa(status), latency)
		}

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		} else if status >= fiber.StatusBadRequest {
			ev = log.Warn()
		}
		ev.Str("request_id", requestID(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("route", route).
			Int("status", status).
			Dur("latency", latency).
			Str("company_id", GetCompanyID(c)).
			Msg("request")
		return nil
	}
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return c.GetRespHeader(fiber.HeaderXRequestID)
}
