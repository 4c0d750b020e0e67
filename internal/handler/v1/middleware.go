package v1

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sanavia/clinica/internal/domain"
	"github.com/sanavia/clinica/pkg/auth"
	"github.com/sanavia/clinica/pkg/metrics"
)

const principalKey = "principal"

// RequireAuth validates the bearer token and stores the authenticated
// principal on the request context.
func RequireAuth(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "missing authorization header"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "authorization header must be a bearer token"})
			return
		}

		principal, err := jwtManager.Validate(parts[1])
		if err != nil {
			msg := "invalid token"
			if errors.Is(err, auth.ErrTokenExpired) {
				msg = "token expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: msg})
			return
		}

		c.Set(principalKey, *principal)
		c.Next()
	}
}

func principalFrom(c *gin.Context) domain.Principal {
	if v, ok := c.Get(principalKey); ok {
		if p, ok := v.(domain.Principal); ok {
			return p
		}
	}
	return domain.Principal{}
}

// Observe records request counts, latencies and in-flight gauge per route.
func Observe(col *metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		col.InFlightGauge.Inc()

		c.Next()

		col.InFlightGauge.Dec()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		col.RequestsTotal.WithLabelValues(c.Request.Method, route, status).Inc()
		col.RequestDuration.WithLabelValues(c.Request.Method, route, status).Observe(time.Since(start).Seconds())
	}
}
