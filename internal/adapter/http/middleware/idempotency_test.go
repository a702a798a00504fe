package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/podger/valuation/internal/usecase/mocks"
)

func okHandler(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	})
}

func TestIdempotencyMiddleware_CachesResponse(t *testing.T) {
	store := mocks.NewMockIdempotencyStore()
	m := NewIdempotencyMiddleware(store, time.Minute)

	calls := 0
	handler := m.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"id":"first"}`))
	}))

	req1 := httptest.NewRequest(http.MethodPost, "/api/v1/valuations", strings.NewReader("{}"))
	req1.Header.Set(IdempotencyKeyHeader, "key-1")
	rec1 := httptest.NewRecorder()
	handler.ServeHTTP(rec1, req1)

	req2 := httptest.NewRequest(http.MethodPost, "/api/v1/valuations", strings.NewReader("{}"))
	req2.Header.Set(IdempotencyKeyHeader, "key-1")
	rec2 := httptest.NewRecorder()
	handler.ServeHTTP(rec2, req2)

	if calls != 1 {
		t.Fatalf("expected handler to run once, ran %d times", calls)
	}
	if rec2.Body.String() != `{"id":"first"}` {
		t.Errorf("expected replayed response, got %q", rec2.Body.String())
	}
	if rec2.Header().Get("X-Idempotency-Replay") != "true" {
		t.Error("expected replay marker header")
	}
}

func TestIdempotencyMiddleware_SkipsWithoutKey(t *testing.T) {
	store := mocks.NewMockIdempotencyStore()
	checkCalled := false
	store.CheckAndSetFunc = func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
		checkCalled = true
		return false, nil, nil
	}

	m := NewIdempotencyMiddleware(store, time.Minute)
	handler := m.Wrap(okHandler(`{}`))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/valuations", strings.NewReader("{}"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if checkCalled {
		t.Error("expected store to be skipped without an idempotency key")
	}
}

func TestIdempotencyMiddleware_SkipsGetRequests(t *testing.T) {
	store := mocks.NewMockIdempotencyStore()
	checkCalled := false
	store.CheckAndSetFunc = func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
		checkCalled = true
		return false, nil, nil
	}

	m := NewIdempotencyMiddleware(store, time.Minute)
	handler := m.Wrap(okHandler(`{}`))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(IdempotencyKeyHeader, "key-1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if checkCalled {
		t.Error("expected store to be skipped for GET requests")
	}
}

func TestIdempotencyMiddleware_DoesNotCacheFailures(t *testing.T) {
	store := mocks.NewMockIdempotencyStore()
	m := NewIdempotencyMiddleware(store, time.Minute)

	calls := 0
	handler := m.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"bad request"}`))
	}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/valuations", strings.NewReader("{}"))
		req.Header.Set(IdempotencyKeyHeader, "key-err")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
	}

	if calls != 2 {
		t.Fatalf("expected failed responses not to be replayed, handler ran %d times", calls)
	}
}
