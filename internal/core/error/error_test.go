package errx

import (
	"errors"
	"net/http"
	"testing"

	"github.com/redis/go-redis/v9"
)

func TestWrapRedisNil(t *testing.T) {
	wrapped := WrapRedis(redis.Nil)
	if wrapped.Status != http.StatusNotFound {
		t.Errorf("status = %d, want 404 for redis.Nil", wrapped.Status)
	}
	if !errors.Is(wrapped, redis.Nil) {
		t.Error("wrapped error must still match redis.Nil")
	}
}

func TestWrapRedisGeneric(t *testing.T) {
	wrapped := WrapRedis(errors.New("connection refused"))
	if wrapped.Status != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", wrapped.Status)
	}
	if wrapped.Message != RedisErrorMessage {
		t.Errorf("message = %q", wrapped.Message)
	}
}

func TestWrapProviderNil(t *testing.T) {
	if WrapProvider(nil) != nil {
		t.Error("WrapProvider(nil) must be nil")
	}
}

func TestWrapGeneration(t *testing.T) {
	underlying := errors.New("deadline exceeded")
	wrapped := WrapGeneration(underlying)
	if wrapped.Status != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", wrapped.Status)
	}
	if wrapped.Message != GenerationFailureMessage {
		t.Errorf("message = %q", wrapped.Message)
	}
	if !errors.Is(wrapped, underlying) {
		t.Error("wrapped error must still match the underlying failure")
	}

	if WrapGeneration(nil) != nil {
		t.Error("WrapGeneration(nil) must be nil")
	}
}

func TestAppErrorAs(t *testing.T) {
	underlying := errors.New("boom")
	var err error = WrapProvider(underlying)

	var appErr *AppError
	if !errors.As(err, &appErr) {
		t.Fatal("errors.As should find AppError")
	}
	if appErr.Message != DataUnavailableMessage {
		t.Errorf("message = %q", appErr.Message)
	}
}
