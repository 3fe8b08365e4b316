package errx

import (
	"context"
	"errors"
	"net/http"

	"github.com/redis/go-redis/v9"
)

// WrapRedis maps Redis errors to AppError: a missing key is 404, a timed out
// call is 504 and anything else is 502.
func WrapRedis(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, redis.Nil):
		return New(err, http.StatusNotFound, RedisNotFoundMessage)
	case errors.Is(err, context.DeadlineExceeded):
		return New(err, http.StatusGatewayTimeout, RedisTimeoutMessage)
	default:
		return New(err, http.StatusBadGateway, RedisErrorMessage)
	}
}

// IsNotFound reports whether err carries a 404 status.
func IsNotFound(err error) bool {
	return err != nil && StatusOf(err) == http.StatusNotFound
}
