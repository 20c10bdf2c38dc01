package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"affiliate-service/internal/store"
	"affiliate-service/internal/upstream"
	"affiliate-service/pkg/config"
	"affiliate-service/pkg/database"
	"affiliate-service/prometheus"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	prometheus.InitMetrics(&config.Config{Metrics: config.MetricsConfig{Prefix: "handler_test"}})
	m.Run()
}

func newTestHandler(t *testing.T) (*Handler, *echo.Echo) {
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:handler_%s?mode=memory&cache=shared&_pragma=foreign_keys(1)&_pragma=busy_timeout(10000)", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))

	st := store.New(db, zap.NewNop())
	up := upstream.NewClient(&config.AffiliateConfig{}, zap.NewNop())
	return New(st, up, zap.NewNop()), echo.New()
}

func doJSON(e *echo.Echo, method, target, body string, headers map[string]string) (echo.Context, *httptest.ResponseRecorder) {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestUpsertThenGetProduct(t *testing.T) {
	h, e := newTestHandler(t)

	payload := `{
		"product_id": "H1",
		"product_title": "Action Camera",
		"sale_price": "89.99",
		"sale_price_currency": "USD",
		"lastest_volume": 340,
		"rating_weighted": "4.8",
		"first_level_category_id": "100001"
	}`
	c, rec := doJSON(e, http.MethodPost, "/api/products", payload, nil)
	require.NoError(t, h.UpsertProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)

	c, rec = doJSON(e, http.MethodGet, "/api/products/H1", "", nil)
	c.SetParamNames("product_id")
	c.SetParamValues("H1")
	require.NoError(t, h.GetProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "H1", body["product_id"])
	assert.Equal(t, "Action Camera", body["product_title"])
}

func TestUpsertProductValidationResponse(t *testing.T) {
	h, e := newTestHandler(t)

	c, rec := doJSON(e, http.MethodPost, "/api/products", `{"product_title": "No ID"}`, nil)
	require.NoError(t, h.UpsertProduct(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "product_id")
}

func TestGetProductNotFoundResponse(t *testing.T) {
	h, e := newTestHandler(t)

	c, rec := doJSON(e, http.MethodGet, "/api/products/missing", "", nil)
	c.SetParamNames("product_id")
	c.SetParamValues("missing")
	require.NoError(t, h.GetProduct(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSearchProductsInvalidFilter(t *testing.T) {
	h, e := newTestHandler(t)

	c, rec := doJSON(e, http.MethodGet, "/api/products?min_price=abc", "", nil)
	require.NoError(t, h.SearchProducts(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "min_price")
}

func TestSearchProductsLogsQuery(t *testing.T) {
	h, e := newTestHandler(t)
	upsertTestProduct(t, h, e, "HS1", "hiking boots")

	c, rec := doJSON(e, http.MethodGet, "/api/products?q=hiking", "", nil)
	require.NoError(t, h.SearchProducts(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var body PaginatedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Page)
	assert.Equal(t, 20, body.PageSize)

	c, rec = doJSON(e, http.MethodGet, "/api/stats", "", nil)
	require.NoError(t, h.GetStats(c))
	var stats map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, float64(1), stats["total_searches"])
}

func TestDeleteProductHandler(t *testing.T) {
	h, e := newTestHandler(t)
	upsertTestProduct(t, h, e, "HD1", "old stock item")

	c, rec := doJSON(e, http.MethodDelete, "/api/admin/products/HD1", "", nil)
	c.SetParamNames("product_id")
	c.SetParamValues("HD1")
	require.NoError(t, h.DeleteProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)

	c, rec = doJSON(e, http.MethodGet, "/api/products/HD1", "", nil)
	c.SetParamNames("product_id")
	c.SetParamValues("HD1")
	require.NoError(t, h.GetProduct(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSaveFlow(t *testing.T) {
	h, e := newTestHandler(t)
	upsertTestProduct(t, h, e, "HSV1", "coffee grinder")

	// missing session header is rejected up front
	c, rec := doJSON(e, http.MethodPost, "/api/products/HSV1/save", `{"note":"bookmark"}`, nil)
	c.SetParamNames("product_id")
	c.SetParamValues("HSV1")
	require.NoError(t, h.SaveProduct(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	session := map[string]string{"X-Session-ID": "visitor-7"}

	c, rec = doJSON(e, http.MethodPost, "/api/products/HSV1/save", `{"note":"bookmark"}`, session)
	c.SetParamNames("product_id")
	c.SetParamValues("HSV1")
	require.NoError(t, h.SaveProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)

	c, rec = doJSON(e, http.MethodGet, "/api/saved", "", session)
	require.NoError(t, h.ListSaved(c))
	require.Equal(t, http.StatusOK, rec.Code)
	var body PaginatedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	items, ok := body.Items.([]interface{})
	require.True(t, ok)
	assert.Len(t, items, 1)

	c, rec = doJSON(e, http.MethodDelete, "/api/products/HSV1/save", "", session)
	c.SetParamNames("product_id")
	c.SetParamValues("HSV1")
	require.NoError(t, h.UnsaveProduct(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLinkTrackingFlow(t *testing.T) {
	h, e := newTestHandler(t)
	upsertTestProduct(t, h, e, "HL1", "bike light")

	c, rec := doJSON(e, http.MethodPost, "/api/products/HL1/link",
		`{"original_url":"https://shop.example/hl1","affiliate_url":"https://aff.example/hl1"}`, nil)
	c.SetParamNames("product_id")
	c.SetParamValues("HL1")
	require.NoError(t, h.RecordLink(c))
	require.Equal(t, http.StatusOK, rec.Code)

	c, rec = doJSON(e, http.MethodPost, "/api/links/HL1/click", "", nil)
	c.SetParamNames("product_id")
	c.SetParamValues("HL1")
	require.NoError(t, h.TrackClick(c))
	require.Equal(t, http.StatusOK, rec.Code)

	c, rec = doJSON(e, http.MethodGet, "/api/products/HL1/link", "", nil)
	c.SetParamNames("product_id")
	c.SetParamValues("HL1")
	require.NoError(t, h.GetLink(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var link map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &link))
	assert.Equal(t, float64(1), link["clicks"])
	assert.Equal(t, float64(0), link["conversions"])
}

func TestTrackClickMissingLink(t *testing.T) {
	h, e := newTestHandler(t)

	c, rec := doJSON(e, http.MethodPost, "/api/links/none/click", "", nil)
	c.SetParamNames("product_id")
	c.SetParamValues("none")
	require.NoError(t, h.TrackClick(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLiveSearchGuards(t *testing.T) {
	h, e := newTestHandler(t)

	c, rec := doJSON(e, http.MethodGet, "/api/search", "", nil)
	require.NoError(t, h.LiveSearch(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// upstream client has no base URL in these fixtures
	c, rec = doJSON(e, http.MethodGet, "/api/search?q=gadget", "", nil)
	require.NoError(t, h.LiveSearch(c))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestListCategoriesHandler(t *testing.T) {
	h, e := newTestHandler(t)

	c, rec := doJSON(e, http.MethodPut, "/api/admin/categories/100001",
		`{"name":"Electronics","level":1}`, nil)
	c.SetParamNames("category_id")
	c.SetParamValues("100001")
	require.NoError(t, h.UpsertCategory(c))
	require.Equal(t, http.StatusOK, rec.Code)

	c, rec = doJSON(e, http.MethodGet, "/api/categories", "", nil)
	require.NoError(t, h.ListCategories(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(1), body["total"])
}

func TestDbOperationDurationObserved(t *testing.T) {
	h, e := newTestHandler(t)
	upsertTestProduct(t, h, e, "HM1", "metrics fixture item")

	before := promtestutil.CollectAndCount(&prometheus.DbOperationDuration, "handler_test_db_operation_duration_seconds")

	c, rec := doJSON(e, http.MethodGet, "/api/stats", "", nil)
	require.NoError(t, h.GetStats(c))
	require.Equal(t, http.StatusOK, rec.Code)

	after := promtestutil.CollectAndCount(&prometheus.DbOperationDuration, "handler_test_db_operation_duration_seconds")
	assert.GreaterOrEqual(t, after, 1)
	assert.GreaterOrEqual(t, after, before)
}

func upsertTestProduct(t *testing.T, h *Handler, e *echo.Echo, productID, title string) {
	t.Helper()
	payload := fmt.Sprintf(`{
		"product_id": %q,
		"product_title": %q,
		"sale_price": "12.50",
		"sale_price_currency": "USD",
		"lastest_volume": 50,
		"rating_weighted": "4.2",
		"first_level_category_id": "100001"
	}`, productID, title)
	c, rec := doJSON(e, http.MethodPost, "/api/products", payload, nil)
	require.NoError(t, h.UpsertProduct(c))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}
