package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"cafedelivery/internal/core/domain/model/actor"
	"cafedelivery/internal/core/domain/model/kernel"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

const (
	HeaderActorID   = "X-Actor-Id"
	HeaderActorRole = "X-Actor-Role"

	actorContextKey = "actor"
)

// actorMiddleware identifies the caller of /api routes. Authentication is
// done upstream; this service trusts the headers set by the gateway.
func actorMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := kernel.UUIDFromString(strings.TrimSpace(c.Request().Header.Get(HeaderActorID)))
		if err != nil {
			return errorJSON(c, http.StatusUnauthorized, "missing or malformed "+HeaderActorID)
		}
		role, err := actor.ParseRole(c.Request().Header.Get(HeaderActorRole))
		if err != nil {
			return errorJSON(c, http.StatusUnauthorized, "missing or unknown "+HeaderActorRole)
		}
		a, err := actor.NewActor(id, role)
		if err != nil {
			return errorJSON(c, http.StatusUnauthorized, err.Error())
		}

		c.Set(actorContextKey, a)
		return next(c)
	}
}

func actorFrom(c echo.Context) actor.Actor {
	a, _ := c.Get(actorContextKey).(actor.Actor)
	return a
}

// requestValidator rejects requests that do not match the OpenAPI document.
// Requests to paths the document does not describe pass through.
func requestValidator(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, err
	}

	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			route, pathParams, err := router.FindRoute(req)
			if errors.Is(err, routers.ErrPathNotFound) {
				return next(c)
			}
			if err != nil {
				return errorJSON(c, http.StatusMethodNotAllowed, err.Error())
			}

			err = openapi3filter.ValidateRequest(req.Context(), &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			})
			if err != nil {
				return errorJSON(c, http.StatusBadRequest, validationMessage(err))
			}
			return next(c)
		}
	}, nil
}

func validationMessage(err error) string {
	var reqErr *openapi3filter.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.Parameter != nil {
			return fmt.Sprintf("invalid parameter %s: %s", reqErr.Parameter.Name, reqErr.Reason)
		}
		if reqErr.RequestBody != nil {
			return "invalid request body: " + firstLine(reqErr.Error())
		}
	}
	return firstLine(err.Error())
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// requestLogger logs one line per request with zap.
func requestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.RequestID != "" {
				fields = append(fields, zap.String("request_id", v.RequestID))
			}
			switch {
			case v.Error != nil:
				logger.Error("request failed", append(fields, zap.Error(v.Error))...)
			case v.Status >= http.StatusInternalServerError:
				logger.Error("request", fields...)
			default:
				logger.Info("request", fields...)
			}
			return nil
		},
	})
}
