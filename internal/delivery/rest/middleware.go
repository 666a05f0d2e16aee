package rest

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"catalog-service/internal/infrastructure"
	"catalog-service/internal/infrastructure/logging"
)

const userClaimsKey = "user"

// Authenticate rejects requests without a valid access token and stores the
// decoded claims on the context.
func Authenticate(jwtService *infrastructure.JWTService, logger *logging.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request())
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "No token provided")
			}

			claims, err := jwtService.VerifyAccess(token)
			if err != nil {
				logger.Debug("access token rejected",
					"expired", infrastructure.IsExpired(err),
					"error", err,
				)
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token").SetInternal(err)
			}

			c.Set(userClaimsKey, claims)
			return next(c)
		}
	}
}

// UserFromContext returns the claims stored by Authenticate.
func UserFromContext(c echo.Context) (*infrastructure.UserClaims, bool) {
	claims, ok := c.Get(userClaimsKey).(*infrastructure.UserClaims)
	return claims, ok
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get(echo.HeaderAuthorization)
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// RateLimit answers 429 once a client IP exhausts its bucket.
func RateLimit(limiter *infrastructure.RateLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiter.Allow(c.RealIP()) {
				return echo.NewHTTPError(http.StatusTooManyRequests, "Too many requests")
			}
			return next(c)
		}
	}
}

// RequestLogger writes one structured line per request once the error
// handler has settled the final status.
func RequestLogger(logger *logging.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency.Round(time.Microsecond).String(),
				"remote_ip", v.RemoteIP,
				"request_id", v.RequestID,
			}
			if claims, ok := UserFromContext(c); ok {
				attrs = append(attrs, "user_id", claims.Id)
			}
			if v.Error != nil {
				attrs = append(attrs, "error", v.Error.Error())
			}
			logger.Info("http request", attrs...)
			return nil
		},
	})
}
