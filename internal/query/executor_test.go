package query

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"miraiz/internal/catalog"
	"miraiz/internal/config"
	"miraiz/internal/model"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listFixture = `{
	"success": true,
	"data": [
		{"id": 2, "estado": "vendido", "precio": 200, "propiedad": "B"},
		{"id": 1, "estado": "disponible", "precio": 100, "propiedad": "A",
		 "imagenes": [{"tipo": "frente", "url": "http://img/1.webp", "formato": "webp"}]},
		{"id": 3, "estado": "disponible", "precio": 150, "propiedad": "C"}
	]
}`

func newTestService(t *testing.T) *Service {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(listFixture))
	}))
	t.Cleanup(srv.Close)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	fetcher := catalog.NewFetcher(config.CatalogConfig{URL: srv.URL, TimeoutSecs: 5}, logger)
	return NewService(catalog.NewService(fetcher, time.Minute), logger)
}

func intPtr(v int) *int { return &v }

func TestList_CursorPaginationScenario(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first := svc.List(ctx, model.ListRequest{Estado: "disponible", Limit: intPtr(1), Fields: "id,precio"})
	require.True(t, first.Success)
	require.Len(t, first.Data, 1)
	assert.Equal(t, 1, first.Data[0]["id"])
	require.NotNil(t, first.Cursor)
	assert.Equal(t, 1, *first.Cursor)

	second := svc.List(ctx, model.ListRequest{Estado: "disponible", Limit: intPtr(1), AfterID: first.Cursor, Fields: "id,precio"})
	require.Len(t, second.Data, 1)
	assert.Equal(t, 3, second.Data[0]["id"])
	assert.Nil(t, second.Cursor, "no candidates remain past the page")
}

func TestList_NextCursorOnlyOnFullPage(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	full := svc.List(ctx, model.ListRequest{Limit: intPtr(2)})
	require.Len(t, full.Data, 2)
	require.NotNil(t, full.Cursor)
	assert.Equal(t, 2, *full.Cursor)

	exact := svc.List(ctx, model.ListRequest{Limit: intPtr(3)})
	require.Len(t, exact.Data, 3)
	assert.Nil(t, exact.Cursor, "a full page with nothing beyond it ends the stream")

	short := svc.List(ctx, model.ListRequest{Limit: intPtr(10)})
	require.Len(t, short.Data, 3)
	assert.Nil(t, short.Cursor)
}

func TestList_AscendingIDOrder(t *testing.T) {
	svc := newTestService(t)

	result := svc.List(context.Background(), model.ListRequest{Fields: "id", Limit: intPtr(10)})
	require.Len(t, result.Data, 3)
	assert.Equal(t, 1, result.Data[0]["id"])
	assert.Equal(t, 2, result.Data[1]["id"])
	assert.Equal(t, 3, result.Data[2]["id"])
}

func TestList_MultiValueStateSet(t *testing.T) {
	svc := newTestService(t)

	result := svc.List(context.Background(), model.ListRequest{Estado: "vendido,DISPONIBLE", Fields: "id", Limit: intPtr(10)})
	assert.Len(t, result.Data, 3)

	result = svc.List(context.Background(), model.ListRequest{Estado: "vendido", Fields: "id", Limit: intPtr(10)})
	require.Len(t, result.Data, 1)
	assert.Equal(t, 2, result.Data[0]["id"])
}

func TestList_FieldMaskExactKeys(t *testing.T) {
	svc := newTestService(t)

	result := svc.List(context.Background(), model.ListRequest{Fields: "id,precio", Limit: intPtr(10)})
	require.NotEmpty(t, result.Data)
	for _, obj := range result.Data {
		assert.Len(t, obj, 2)
		assert.Contains(t, obj, "id")
		assert.Contains(t, obj, "precio")
	}
}

func TestList_UnknownFieldsIgnored(t *testing.T) {
	svc := newTestService(t)

	result := svc.List(context.Background(), model.ListRequest{Fields: "id,nonsense,qux", Limit: intPtr(10)})
	for _, obj := range result.Data {
		assert.Len(t, obj, 1)
		assert.Contains(t, obj, "id")
	}
}

func TestList_ImagesProjectedToTriples(t *testing.T) {
	svc := newTestService(t)

	result := svc.List(context.Background(), model.ListRequest{Fields: "id,imagenes.url", Limit: intPtr(10)})
	require.Len(t, result.Data, 3)

	withImages := result.Data[0] // id 1
	require.Contains(t, withImages, "imagenes")
	imgs, ok := withImages["imagenes"].([]model.ImagenItem)
	require.True(t, ok)
	require.Len(t, imgs, 1)
	assert.Equal(t, "http://img/1.webp", *imgs[0].URL)
}

func TestList_LimitClamped(t *testing.T) {
	svc := newTestService(t)

	result := svc.List(context.Background(), model.ListRequest{Fields: "id", Limit: intPtr(0)})
	assert.Len(t, result.Data, 1, "limit below range clamps to 1")
}

func TestList_DefaultFieldMask(t *testing.T) {
	svc := newTestService(t)

	result := svc.List(context.Background(), model.ListRequest{Limit: intPtr(1)})
	require.Len(t, result.Data, 1)
	obj := result.Data[0]
	assert.Contains(t, obj, "id")
	assert.Contains(t, obj, "propiedad")
	assert.Contains(t, obj, "precio")
	assert.Contains(t, obj, "imagenes")
	assert.Len(t, obj, 4)
}

func TestParseStateSet(t *testing.T) {
	tests := []struct {
		name   string
		estado string
		want   int
	}{
		{"empty", "", 0},
		{"single", "disponible", 1},
		{"multi with spaces", "disponible, vendido", 2},
		{"trailing comma", "disponible,", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, parseStateSet(tt.estado), tt.want)
		})
	}
}
