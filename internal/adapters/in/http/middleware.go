package http

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"bakery/internal/core/domain/model/kernel"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// ActorHeader names the acting user. Authentication happens in front of
// this service; the header is trusted as is.
const ActorHeader = "X-User-ID"

const actorKey = "actor"

// Authenticate resolves the acting user from ActorHeader. Requests for which
// public reports true pass through without an actor.
func Authenticate(public func(c echo.Context) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if public != nil && public(c) {
				return next(c)
			}

			raw := strings.TrimSpace(c.Request().Header.Get(ActorHeader))
			if raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, ActorHeader+" header is required")
			}
			id, err := kernel.ParseID(raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, ActorHeader+" header is not a valid user id")
			}

			c.Set(actorKey, id)
			return next(c)
		}
	}
}

func actorOf(c echo.Context) kernel.ID {
	id, _ := c.Get(actorKey).(kernel.ID)
	return id
}

// RateLimiter throttles requests per authenticated actor, falling back to
// the client address for anonymous calls. It must run after Authenticate so
// that only validated identities get a bucket.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*visitor
	rate     rate.Limit
	burst    int
	now      func() time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*visitor),
		rate:     rate.Limit(rps),
		burst:    burst,
		now:      time.Now,
	}
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.limiters[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[key] = v
	}
	v.lastSeen = rl.now()
	return v.limiter
}

// Cleanup drops the buckets of keys not seen within idle and returns how
// many were removed.
func (rl *RateLimiter) Cleanup(idle time.Duration) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-idle)
	removed := 0
	for key, v := range rl.limiters {
		if v.lastSeen.Before(cutoff) {
			delete(rl.limiters, key)
			removed++
		}
	}
	return removed
}

// Len reports the number of tracked keys.
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limiters)
}

func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := "ip:" + c.RealIP()
			if actor := actorOf(c); !actor.IsZero() {
				key = "user:" + actor.String()
			}
			if !rl.limiter(key).Allow() {
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}

// RequestValidator checks requests against the OpenAPI document. Requests
// for paths the document does not describe are passed on untouched.
func RequestValidator(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, err
	}
	return validateWith(router), nil
}

func validateWith(router routers.Router) echo.MiddlewareFunc {
	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			route, pathParams, err := router.FindRoute(req)
			if err != nil {
				return next(c)
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if err = openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, err.Error())
			}
			return next(c)
		}
	}
}
