package api

import (
	"foodindex/internal/engine"
	"foodindex/internal/session"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	SessionCookie = "foodindex_session"

	datasetKey = "dataset"
	stateKey   = "session"
)

// requireData pins the loaded dataset for the whole request, or answers 503
// while loading is still in progress.
func (h *Handler) requireData(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ds := h.data.Load()
		if ds == nil {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "data is still loading")
		}
		c.Set(datasetKey, ds)
		return next(c)
	}
}

// withSession attaches the caller's selection state, starting a new session
// when the cookie is missing or has expired.
func (h *Handler) withSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if cookie, err := c.Cookie(SessionCookie); err == nil {
			if st, ok := h.sessions.Get(cookie.Value); ok {
				c.Set(stateKey, st)
				return next(c)
			}
		}

		id, st := h.sessions.Create()
		c.SetCookie(&http.Cookie{
			Name:     SessionCookie,
			Value:    id,
			Path:     "/",
			MaxAge:   int(h.sessions.TTL().Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		c.Set(stateKey, st)
		return next(c)
	}
}

func dataset(c echo.Context) *engine.Dataset {
	return c.Get(datasetKey).(*engine.Dataset)
}

func state(c echo.Context) *session.State {
	return c.Get(stateKey).(*session.State)
}

// RequestLogger writes one slog line per request.
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			level := slog.LevelInfo
			if v.Error != nil {
				level = slog.LevelError
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			logger.LogAttrs(c.Request().Context(), level, "request", attrs...)
			return nil
		},
	})
}
