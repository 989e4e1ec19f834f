package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"inventoryapp/database"
	"inventoryapp/models"
	"inventoryapp/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductHandler(t *testing.T) *ProductHandler {
	t.Helper()

	setupTestDB(t)
	service := services.NewProductService(services.NewSQLExecutor(database.DB))
	return NewProductHandler(service)
}

func withPathID(req *http.Request, id string) *http.Request {
	ctx := context.WithValue(req.Context(), "path_product_id", id)
	return req.WithContext(ctx)
}

func createProduct(t *testing.T, h *ProductHandler, req models.ProductRequest) models.Product {
	t.Helper()

	payload, err := json.Marshal(req)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewReader(payload)))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Data models.Product `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Data
}

func TestProductHandlerCreate(t *testing.T) {
	h := newProductHandler(t)

	t.Run("valid product is created", func(t *testing.T) {
		product := createProduct(t, h, models.ProductRequest{SKU: "A1", Name: "Widget", Price: 9.99, Quantity: 3})
		assert.Greater(t, product.ID, int64(0))
		assert.Equal(t, "A1", product.SKU)
	})

	t.Run("duplicate sku returns 409", func(t *testing.T) {
		payload, _ := json.Marshal(models.ProductRequest{SKU: "A1", Name: "Other", Price: 1})
		rec := httptest.NewRecorder()
		h.Create(rec, httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewReader(payload)))
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("validation failure returns 400", func(t *testing.T) {
		payload, _ := json.Marshal(models.ProductRequest{SKU: "", Name: "Widget", Price: 1})
		rec := httptest.NewRecorder()
		h.Create(rec, httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewReader(payload)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body returns 400", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Create(rec, httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewReader([]byte("{oops"))))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestProductHandlerGet(t *testing.T) {
	h := newProductHandler(t)
	product := createProduct(t, h, models.ProductRequest{SKU: "A1", Name: "Widget", Price: 9.99, Quantity: 3})

	t.Run("existing product", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := withPathID(httptest.NewRequest(http.MethodGet, "/api/products/1", nil), strconv.FormatInt(product.ID, 10))
		h.Get(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Data models.Product `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, product.SKU, resp.Data.SKU)
	})

	t.Run("missing product returns 404", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Get(rec, withPathID(httptest.NewRequest(http.MethodGet, "/api/products/999", nil), "999"))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("non-numeric id returns 400", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Get(rec, withPathID(httptest.NewRequest(http.MethodGet, "/api/products/abc", nil), "abc"))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing id returns 400", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Get(rec, httptest.NewRequest(http.MethodGet, "/api/products/", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestProductHandlerList(t *testing.T) {
	h := newProductHandler(t)
	createProduct(t, h, models.ProductRequest{SKU: "A", Name: "Alpha", Price: 10, Quantity: 1})
	createProduct(t, h, models.ProductRequest{SKU: "B", Name: "Beta", Price: 20, Quantity: 1})
	createProduct(t, h, models.ProductRequest{SKU: "C", Name: "Gamma", Price: 30, Quantity: 1})

	listPage := func(t *testing.T, target string) models.ProductPage {
		rec := httptest.NewRecorder()
		h.List(rec, httptest.NewRequest(http.MethodGet, target, nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Data models.ProductPage `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		return resp.Data
	}

	t.Run("query params drive the pipeline", func(t *testing.T) {
		page := listPage(t, "/api/products?minPrice=15&sort=price&dir=desc&pageSize=1&pageNum=1")
		assert.Equal(t, 2, page.Total)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "C", page.Items[0].SKU)
	})

	t.Run("unparsable params are ignored", func(t *testing.T) {
		page := listPage(t, "/api/products?minPrice=abc&pageNum=xyz&pageSize=oops")
		assert.Equal(t, 3, page.Total)
		assert.Equal(t, 1, page.PageNum)
		assert.Equal(t, 10, page.PageSize)
	})

	t.Run("search by name fragment", func(t *testing.T) {
		page := listPage(t, "/api/products?q=Bet")
		assert.Equal(t, 1, page.Total)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "B", page.Items[0].SKU)
	})
}

func TestProductHandlerUpdate(t *testing.T) {
	h := newProductHandler(t)
	a := createProduct(t, h, models.ProductRequest{SKU: "A1", Name: "Widget", Price: 10, Quantity: 5})
	createProduct(t, h, models.ProductRequest{SKU: "B1", Name: "Gadget", Price: 20, Quantity: 5})

	update := func(t *testing.T, id string, body models.ProductRequest) *httptest.ResponseRecorder {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		rec := httptest.NewRecorder()
		h.Update(rec, withPathID(httptest.NewRequest(http.MethodPut, "/api/products/"+id, bytes.NewReader(payload)), id))
		return rec
	}

	idA := strconv.FormatInt(a.ID, 10)

	t.Run("own sku resubmission succeeds", func(t *testing.T) {
		rec := update(t, idA, models.ProductRequest{SKU: "A1", Name: "Widget v2", Price: 12, Quantity: 5})
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("taking another product's sku returns 409", func(t *testing.T) {
		rec := update(t, idA, models.ProductRequest{SKU: "B1", Name: "Widget", Price: 10, Quantity: 5})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("missing product returns 404", func(t *testing.T) {
		rec := update(t, "999", models.ProductRequest{SKU: "Z9", Name: "Nope", Price: 1})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("invalid payload returns 400", func(t *testing.T) {
		rec := update(t, idA, models.ProductRequest{SKU: "A1", Name: "", Price: 10})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestProductHandlerDelete(t *testing.T) {
	h := newProductHandler(t)
	product := createProduct(t, h, models.ProductRequest{SKU: "A1", Name: "Widget", Price: 10, Quantity: 1})
	id := strconv.FormatInt(product.ID, 10)

	t.Run("delete succeeds once then 404s", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Delete(rec, withPathID(httptest.NewRequest(http.MethodDelete, "/api/products/"+id, nil), id))
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = httptest.NewRecorder()
		h.Delete(rec, withPathID(httptest.NewRequest(http.MethodDelete, "/api/products/"+id, nil), id))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestProductHandlerMovements(t *testing.T) {
	h := newProductHandler(t)
	product := createProduct(t, h, models.ProductRequest{SKU: "A1", Name: "Widget", Price: 10, Quantity: 4})
	id := strconv.FormatInt(product.ID, 10)

	t.Run("returns movement history", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Movements(rec, withPathID(httptest.NewRequest(http.MethodGet, "/api/products/"+id+"/movements", nil), id))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Data []models.StockMovement `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Data, 1)
		assert.Equal(t, 4, resp.Data[0].Delta)
	})

	t.Run("missing product returns 404", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Movements(rec, withPathID(httptest.NewRequest(http.MethodGet, "/api/products/999/movements", nil), "999"))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestDashboardStats(t *testing.T) {
	h := newProductHandler(t)
	createProduct(t, h, models.ProductRequest{SKU: "A", Name: "Alpha", Price: 10, Quantity: 0})
	createProduct(t, h, models.ProductRequest{SKU: "B", Name: "Beta", Price: 20, Quantity: 3})
	createProduct(t, h, models.ProductRequest{SKU: "C", Name: "Gamma", Price: 30, Quantity: 50})

	rec := httptest.NewRecorder()
	GetDashboardStats(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard/stats", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeResponse(t, rec)
	stats, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(3), stats["total_products"])
	assert.Equal(t, float64(53), stats["total_stock_units"])
	assert.Equal(t, float64(20*3+30*50), stats["total_stock_value"])
	assert.Equal(t, float64(1), stats["low_stock_products"])
	assert.Equal(t, float64(1), stats["out_of_stock_products"])
}

func TestDashboardStatsStoreFailure(t *testing.T) {
	setupTestDB(t)
	require.NoError(t, database.Close())

	rec := httptest.NewRecorder()
	GetDashboardStats(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard/stats", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestDashboardRecentMovements(t *testing.T) {
	h := newProductHandler(t)
	createProduct(t, h, models.ProductRequest{SKU: "A", Name: "Alpha", Price: 10, Quantity: 2})
	createProduct(t, h, models.ProductRequest{SKU: "B", Name: "Beta", Price: 20, Quantity: 3})

	t.Run("returns journal entries newest first", func(t *testing.T) {
		rec := httptest.NewRecorder()
		GetRecentMovements(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard/movements", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decodeResponse(t, rec)
		movements, ok := resp.Data.([]interface{})
		require.True(t, ok)
		require.Len(t, movements, 2)

		first, ok := movements[0].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "B", first["sku"])
	})

	t.Run("limit param caps results", func(t *testing.T) {
		rec := httptest.NewRecorder()
		GetRecentMovements(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard/movements?limit=1", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decodeResponse(t, rec)
		movements, ok := resp.Data.([]interface{})
		require.True(t, ok)
		assert.Len(t, movements, 1)
	})
}
