package decoder

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/genwaves/internal/params"
)

func newServer(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func TestNew_RequiresURL(t *testing.T) {
	_, err := New(Options{URL: "  "})
	assert.ErrorIs(t, err, ErrNoURL)
}

func TestDecode_Success(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/decode", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body decodeRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []float64{0.5, 1}, body.InputList)

		_, _ = w.Write([]byte(`{"title":"#abc","inputList":[0.5,1],"bpm":96,"timbre":"soft"}`))
	})

	c, err := New(Options{URL: srv.URL + "/", APIKey: "secret"})
	require.NoError(t, err)

	out, err := c.Decode(context.Background(), []float64{0.5, 1})
	require.NoError(t, err)

	assert.Equal(t, "#abc", out.Title)
	assert.InDelta(t, 96, out.BPM, 0)
	assert.Equal(t, []string{"timbre"}, out.ExtraKeys())
}

func TestDecode_FillsMissingInputList(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"title":"t"}`))
	})
	c, err := New(Options{URL: srv.URL})
	require.NoError(t, err)

	out, err := c.Decode(context.Background(), []float64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, out.InputList)
}

func TestDecode_NoAuthHeaderWithoutKey(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"title":"t"}`))
	})
	c, err := New(Options{URL: srv.URL})
	require.NoError(t, err)

	_, err = c.Decode(context.Background(), []float64{0})
	require.NoError(t, err)
}

func TestDecode_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		check   func(t *testing.T, err error)
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "model overloaded", http.StatusServiceUnavailable)
			},
			check: func(t *testing.T, err error) {
				var se *StatusError
				require.ErrorAs(t, err, &se)
				assert.Equal(t, http.StatusServiceUnavailable, se.Code)
				assert.Contains(t, se.Error(), "model overloaded")
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`<html>`))
			},
			check: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, "decode response")
			},
		},
		{
			name: "missing title",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"inputList":[1]}`))
			},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, params.ErrNoTitle)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newServer(t, tt.handler)
			c, err := New(Options{URL: srv.URL})
			require.NoError(t, err)

			out, err := c.Decode(context.Background(), []float64{0})
			require.Error(t, err)
			assert.Empty(t, out.Title)
			tt.check(t, err)
		})
	}
}

func TestDecode_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := New(Options{URL: url, Timeout: time.Second})
	require.NoError(t, err)

	_, err = c.Decode(context.Background(), []float64{0})
	assert.ErrorContains(t, err, "decoder: request")
}

func TestDecode_ContextCanceled(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"title":"t"}`))
	})
	c, err := New(Options{URL: srv.URL})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = c.Decode(ctx, []float64{0})
	assert.True(t, errors.Is(err, context.Canceled), "err = %v", err)
}

func TestDecode_RateLimited(t *testing.T) {
	var calls atomic.Int32
	srv := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"title":"t"}`))
	})
	c, err := New(Options{URL: srv.URL, RequestsPerMinute: 1})
	require.NoError(t, err)

	_, err = c.Decode(context.Background(), []float64{0})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = c.Decode(ctx, []float64{0})

	assert.ErrorContains(t, err, "rate limit")
	assert.Equal(t, int32(1), calls.Load())
}

func TestHealth(t *testing.T) {
	var healthy atomic.Bool
	healthy.Store(true)
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		if !healthy.Load() {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	c, err := New(Options{URL: srv.URL})
	require.NoError(t, err)

	require.NoError(t, c.Health(context.Background()))

	healthy.Store(false)
	var se *StatusError
	require.ErrorAs(t, c.Health(context.Background()), &se)
	assert.Equal(t, http.StatusBadGateway, se.Code)
}

func TestURL_TrimsSlash(t *testing.T) {
	c, err := New(Options{URL: "http://model.local/api/"})
	require.NoError(t, err)
	assert.Equal(t, "http://model.local/api", c.URL())
}
