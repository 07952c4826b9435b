package product

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vinylshop/internal/importer"
)

func testHandlerRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, _, db := testService(t)
	r := gin.New()
	NewHandler(svc, importer.New(db), nil).RegisterRoutes(r.Group("/api/admin"))
	return r
}

func postForm(t *testing.T, r *gin.Engine, method, path string, fields url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(fields.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateProductForm(t *testing.T) {
	r := testHandlerRouter(t)

	w := postForm(t, r, http.MethodPost, "/api/admin/products", url.Values{
		"title":  {"Artaud"},
		"artist": {"Pescado Rabioso"},
		"price":  {"45000"},
		"stock":  {"2"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Product struct {
			ID           int64   `json:"id"`
			Title        string  `json:"title"`
			Price        float64 `json:"price"`
			Installments int     `json:"installments"`
			Stock        int     `json:"stock"`
		} `json:"product"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Artaud", resp.Product.Title)
	assert.Equal(t, 45000.0, resp.Product.Price)
	assert.Equal(t, 3, resp.Product.Installments, "installments defaults when not sent")
	assert.Equal(t, 2, resp.Product.Stock)
}

func TestCreateProductValidation(t *testing.T) {
	r := testHandlerRouter(t)

	for _, fields := range []url.Values{
		{"artist": {"X"}, "price": {"100"}},
		{"title": {"X"}, "price": {"100"}},
		{"title": {"X"}, "artist": {"Y"}},
		{"title": {"X"}, "artist": {"Y"}, "price": {"-5"}},
		{"title": {"X"}, "artist": {"Y"}, "price": {"abc"}},
	} {
		w := postForm(t, r, http.MethodPost, "/api/admin/products", fields)
		assert.Equal(t, http.StatusBadRequest, w.Code, fields.Encode())
	}
}

func TestUpdateProductNotFound(t *testing.T) {
	r := testHandlerRouter(t)

	w := postForm(t, r, http.MethodPut, "/api/admin/products/999", url.Values{
		"title": {"X"}, "artist": {"Y"}, "price": {"100"},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = postForm(t, r, http.MethodPut, "/api/admin/products/zero", url.Values{
		"title": {"X"}, "artist": {"Y"}, "price": {"100"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteProductEndpoint(t *testing.T) {
	r := testHandlerRouter(t)

	w := postForm(t, r, http.MethodPost, "/api/admin/products", url.Values{
		"title": {"Doomed"}, "artist": {"Nobody"}, "price": {"100"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/products/1", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/admin/products/1", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func uploadCSV(t *testing.T, r *gin.Engine, content string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("csv", "products.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/products/csv", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestImportCSVEndpoint(t *testing.T) {
	r := testHandlerRouter(t)

	w := uploadCSV(t, r, "title,artist,price\nArtaud,Pescado Rabioso,45000\n,Nameless,100\n")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Message string   `json:"message"`
		Created int      `json:"created"`
		Errors  []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "import finished: 1 products created", resp.Message)
	assert.Equal(t, 1, resp.Created)
	require.Len(t, resp.Errors, 1)
	assert.Contains(t, resp.Errors[0], "Row 3")
}

func TestImportCSVRequiresFile(t *testing.T) {
	r := testHandlerRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/products/csv", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestImportCSVHeaderOnly(t *testing.T) {
	r := testHandlerRouter(t)

	w := uploadCSV(t, r, "title,artist,price\n")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
