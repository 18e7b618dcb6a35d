package fetch_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SJellen/fetch-rewards/internal/domain"
	"github.com/SJellen/fetch-rewards/internal/infrastructure/fetch"
)

// ─── Helpers ─────────────────────────────────────────────────────────────────

type recordingSleeper struct {
	mu    sync.Mutex
	waits []time.Duration
}

func (r *recordingSleeper) sleep(_ context.Context, d time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.waits = append(r.waits, d)
	return nil
}

func (r *recordingSleeper) recorded() []time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]time.Duration(nil), r.waits...)
}

func newClient(t *testing.T, srv *httptest.Server, s *recordingSleeper, mutate ...func(*fetch.Config)) *fetch.Client {
	t.Helper()
	cfg := fetch.Config{
		BaseURL:        srv.URL,
		Timeout:        2 * time.Second,
		MaxAttempts:    3,
		MaxRateLimited: 10,
		BaseDelay:      100 * time.Millisecond,
	}
	for _, m := range mutate {
		m(&cfg)
	}
	c, err := fetch.New(cfg, fetch.WithSleeper(s.sleep))
	require.NoError(t, err)
	return c
}

type breedsPayload []string

// ─── Rate limit ──────────────────────────────────────────────────────────────

func TestDo_RateLimitedTwiceThenOK(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) <= 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_ = json.NewEncoder(w).Encode([]string{"Beagle", "Poodle"})
	}))
	defer srv.Close()

	s := &recordingSleeper{}
	c := newClient(t, srv, s)

	breeds, err := fetch.Do[breedsPayload](context.Background(), c, fetch.Request{Method: http.MethodGet, Path: "/dogs/breeds"})

	require.NoError(t, err)
	assert.Equal(t, breedsPayload{"Beagle", "Poodle"}, breeds)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.Equal(t, []time.Duration{100 * time.Millisecond, 200 * time.Millisecond}, s.recorded())
}

func TestDo_RateLimitDoesNotConsumeFailureBudget(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch atomic.AddInt32(&calls, 1) {
		case 1, 2, 3, 4:
			w.WriteHeader(http.StatusTooManyRequests)
		case 5, 6:
			w.WriteHeader(http.StatusInternalServerError)
		default:
			_ = json.NewEncoder(w).Encode([]string{"Akita"})
		}
	}))
	defer srv.Close()

	c := newClient(t, srv, &recordingSleeper{})

	breeds, err := fetch.Do[breedsPayload](context.Background(), c, fetch.Request{Path: "/dogs/breeds"})

	require.NoError(t, err)
	assert.Equal(t, breedsPayload{"Akita"}, breeds)
	assert.Equal(t, int32(7), atomic.LoadInt32(&calls))
}

func TestDo_RateLimitIsBounded(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	s := &recordingSleeper{}
	c := newClient(t, srv, s, func(cfg *fetch.Config) { cfg.MaxRateLimited = 4 })

	_, err := fetch.Do[breedsPayload](context.Background(), c, fetch.Request{Path: "/dogs/breeds"})

	require.Error(t, err)
	var reqErr *fetch.RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, http.StatusTooManyRequests, reqErr.StatusCode)
	assert.Equal(t, 4, reqErr.Attempts)
	assert.Equal(t, int32(4), atomic.LoadInt32(&calls))
	assert.Len(t, s.recorded(), 3)
}

// ─── Fallos ──────────────────────────────────────────────────────────────────

func TestDo_ServerErrorExhaustsAttempts(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"message":"catálogo caído"}`)
	}))
	defer srv.Close()

	s := &recordingSleeper{}
	c := newClient(t, srv, s)

	_, err := fetch.Do[breedsPayload](context.Background(), c, fetch.Request{Path: "/dogs/breeds"})

	require.Error(t, err)
	var reqErr *fetch.RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, 3, reqErr.Attempts)
	assert.Equal(t, http.StatusInternalServerError, reqErr.StatusCode)
	assert.Equal(t, "catálogo caído", reqErr.Message())
	assert.NotEmpty(t, reqErr.RequestID)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	// sin espera después del último intento
	assert.Equal(t, []time.Duration{100 * time.Millisecond, 200 * time.Millisecond}, s.recorded())
}

func TestDo_PlainTextErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, "  Bad Request  ")
	}))
	defer srv.Close()

	c := newClient(t, srv, &recordingSleeper{}, func(cfg *fetch.Config) { cfg.MaxAttempts = 1 })

	_, err := fetch.Do[breedsPayload](context.Background(), c, fetch.Request{Path: "/dogs/search"})

	var reqErr *fetch.RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, "Bad Request", reqErr.Message())
	assert.Equal(t, 1, reqErr.Attempts)
}

func TestDo_LongErrorBodyCutOnRuneBoundary(t *testing.T) {
	// un byte ASCII desplaza las runas de dos bytes: el byte 512 cae dentro de una "é"
	body := "x" + strings.Repeat("é", 400)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, body)
	}))
	defer srv.Close()

	c := newClient(t, srv, &recordingSleeper{}, func(cfg *fetch.Config) { cfg.MaxAttempts = 1 })

	_, err := fetch.Do[breedsPayload](context.Background(), c, fetch.Request{Path: "/dogs/breeds"})

	var reqErr *fetch.RequestError
	require.True(t, errors.As(err, &reqErr))
	msg := reqErr.Message()
	assert.True(t, utf8.ValidString(msg))
	assert.Len(t, msg, 511)
	assert.True(t, strings.HasPrefix(body, msg))
}

func TestDo_DecodeFailureIsRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			_, _ = io.WriteString(w, "<html>no es json</html>")
			return
		}
		_ = json.NewEncoder(w).Encode([]string{"Boxer"})
	}))
	defer srv.Close()

	c := newClient(t, srv, &recordingSleeper{})

	breeds, err := fetch.Do[breedsPayload](context.Background(), c, fetch.Request{Path: "/dogs/breeds"})

	require.NoError(t, err)
	assert.Equal(t, breedsPayload{"Boxer"}, breeds)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestDo_UnauthorizedMapsToDomainError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := newClient(t, srv, &recordingSleeper{})

	_, err := fetch.Do[breedsPayload](context.Background(), c, fetch.Request{Path: "/dogs/breeds"})

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestDo_CancelledContextIsNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := &recordingSleeper{}
	c := newClient(t, srv, s)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fetch.Do[breedsPayload](ctx, c, fetch.Request{Path: "/dogs/breeds"})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, s.recorded())
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

// ─── Request ─────────────────────────────────────────────────────────────────

func TestDo_RequestIDStableAcrossRetries(t *testing.T) {
	var (
		mu  sync.Mutex
		ids []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		ids = append(ids, r.Header.Get("X-Request-ID"))
		n := len(ids)
		mu.Unlock()
		if n == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_ = json.NewEncoder(w).Encode([]string{})
	}))
	defer srv.Close()

	c := newClient(t, srv, &recordingSleeper{})
	_, err := fetch.Do[breedsPayload](context.Background(), c, fetch.Request{Path: "/dogs/breeds"})
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, ids, 2)
	assert.NotEmpty(t, ids[0])
	assert.Equal(t, ids[0], ids[1])
}

func TestDo_SendsJSONBodyAndQuery(t *testing.T) {
	var (
		gotBody  []string
		gotQuery url.Values
		gotType  string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotType = r.Header.Get("Content-Type")
		gotQuery = r.URL.Query()
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	c := newClient(t, srv, &recordingSleeper{})
	_, err := fetch.Do[breedsPayload](context.Background(), c, fetch.Request{
		Method: http.MethodPost,
		Path:   "dogs",
		Query:  url.Values{"zipCodes": {"10001", "10002"}},
		Body:   []string{"a", "b"},
	})

	require.NoError(t, err)
	assert.Equal(t, "application/json", gotType)
	assert.Equal(t, []string{"a", "b"}, gotBody)
	assert.Equal(t, []string{"10001", "10002"}, gotQuery["zipCodes"])
}

func TestSend_KeepsSessionCookie(t *testing.T) {
	var authorized int32
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "fetch-access-token", Value: "tok", Path: "/"})
		_, _ = io.WriteString(w, "OK")
	})
	mux.HandleFunc("/dogs/breeds", func(w http.ResponseWriter, r *http.Request) {
		if ck, err := r.Cookie("fetch-access-token"); err != nil || ck.Value != "tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		atomic.AddInt32(&authorized, 1)
		_, _ = io.WriteString(w, `["Beagle"]`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newClient(t, srv, &recordingSleeper{})

	require.NoError(t, c.Send(context.Background(), fetch.Request{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body:   map[string]string{"name": "Ana", "email": "ana@example.com"},
	}))
	breeds, err := fetch.Do[breedsPayload](context.Background(), c, fetch.Request{Path: "/dogs/breeds"})

	require.NoError(t, err)
	assert.Equal(t, breedsPayload{"Beagle"}, breeds)
	assert.Equal(t, int32(1), atomic.LoadInt32(&authorized))
}

func TestNew_RejectsInvalidBaseURL(t *testing.T) {
	_, err := fetch.New(fetch.Config{BaseURL: "no-es-una-url"})
	assert.Error(t, err)
}
