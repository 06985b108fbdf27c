package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"miraiz/internal/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func newTestFetcher(url string) *Fetcher {
	return NewFetcher(config.CatalogConfig{URL: url, TimeoutSecs: 5}, testLogger())
}

const catalogFixture = `{
	"success": true,
	"data": [
		{"id": 1, "estado": "disponible", "precio": 100, "banos": 2, "ano": 2020},
		{"id": 2, "estado": "vendido", "precio": 200, "baños": 3}
	]
}`

func TestFetcher_SuccessNormalizes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(catalogFixture))
	}))
	defer srv.Close()

	resp := newTestFetcher(srv.URL).Fetch(context.Background())

	require.True(t, resp.Success)
	require.Len(t, resp.Data, 2)

	// Plain-key baños copied into the canonical slot.
	require.NotNil(t, resp.Data[0].Banos)
	assert.Equal(t, 2.0, *resp.Data[0].Banos)
	require.NotNil(t, resp.Data[0].Ano)
	assert.Equal(t, 2020, *resp.Data[0].Ano)

	// Accented key already canonical.
	require.NotNil(t, resp.Data[1].Banos)
	assert.Equal(t, 3.0, *resp.Data[1].Banos)
}

func TestFetcher_FailOpenOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	resp := newTestFetcher(srv.URL).Fetch(context.Background())

	assert.True(t, resp.Success)
	assert.Empty(t, resp.Data)
}

func TestFetcher_FailOpenOnTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	resp := newTestFetcher(srv.URL).Fetch(context.Background())

	assert.True(t, resp.Success)
	assert.Empty(t, resp.Data)
}

func TestFetcher_FailOpenOnBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	resp := newTestFetcher(srv.URL).Fetch(context.Background())

	assert.True(t, resp.Success)
	assert.Empty(t, resp.Data)
}

func TestFetcher_SendsAPIKeyHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"success": true, "data": []}`))
	}))
	defer srv.Close()

	f := NewFetcher(config.CatalogConfig{URL: srv.URL, APIKey: "secret", TimeoutSecs: 5}, testLogger())
	f.Fetch(context.Background())

	assert.Equal(t, "Bearer secret", gotAuth)
}

func TestService_CachesSnapshotWithinTTL(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(catalogFixture))
	}))
	defer srv.Close()

	svc := NewService(newTestFetcher(srv.URL), time.Minute)

	svc.Snapshot(context.Background())
	svc.Snapshot(context.Background())
	svc.Snapshot(context.Background())

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestService_CachesEmptyFailureResult(t *testing.T) {
	// A failing upstream must not be hammered within the TTL window: the
	// empty fail-open snapshot is cached like any other.
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	svc := NewService(newTestFetcher(srv.URL), time.Minute)

	resp := svc.Snapshot(context.Background())
	assert.True(t, resp.Success)
	assert.Empty(t, resp.Data)

	svc.Snapshot(context.Background())
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestService_CancelledRequestDoesNotPoisonSnapshot(t *testing.T) {
	// The snapshot is shared across requests, so a caller that has
	// already disconnected must not abort the fetch and leave an empty
	// catalog cached for everyone else.
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(catalogFixture))
	}))
	defer srv.Close()

	svc := NewService(newTestFetcher(srv.URL), time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp := svc.Snapshot(ctx)
	require.Len(t, resp.Data, 2)

	resp = svc.Snapshot(context.Background())
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestService_RefreshForcesRefetch(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(catalogFixture))
	}))
	defer srv.Close()

	svc := NewService(newTestFetcher(srv.URL), time.Minute)

	svc.Snapshot(context.Background())
	svc.Refresh()
	svc.Snapshot(context.Background())

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestService_FindByID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(catalogFixture))
	}))
	defer srv.Close()

	svc := NewService(newTestFetcher(srv.URL), time.Minute)

	p := svc.FindByID(context.Background(), 2)
	require.NotNil(t, p)
	assert.Equal(t, 2, p.ID)

	assert.Nil(t, svc.FindByID(context.Background(), 999))
}
