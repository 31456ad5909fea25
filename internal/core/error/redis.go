package errx

import (
	"errors"
	"net/http"

	"github.com/redis/go-redis/v9"
)

// RedisErrorMessage describes Redis related failures.
const RedisErrorMessage = "redis operation failed"

// WrapRedis maps Redis errors on the decode-event path to an AppError.
// A closed client is reported as a scanner init failure since no events can arrive.
func WrapRedis(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, redis.ErrClosed) {
		return ScannerInit("redis", err)
	}
	return &AppError{
		Err:     err,
		Kind:    KindSystem,
		Status:  http.StatusBadGateway,
		Message: RedisErrorMessage,
	}
}
