package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/internal/usecase"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCatalogUC struct {
	listProductsFn          func(ctx context.Context) ([]domain.Product, error)
	getProductFn            func(ctx context.Context, id int64) (*domain.Product, error)
	getProductsByCategoryFn func(ctx context.Context, categoryID int64) ([]domain.Product, error)
	createProductFn         func(ctx context.Context, req *usecase.CreateProductReq) (*usecase.ProductWithCategory, error)
	updateProductFn         func(ctx context.Context, req *usecase.UpdateProductReq) (*domain.Product, error)
	deleteProductFn         func(ctx context.Context, id int64) error
	listCategoriesFn        func(ctx context.Context) ([]domain.Category, error)
	getCategoryFn           func(ctx context.Context, id int64) (*usecase.CategoryWithProducts, error)
	createCategoryFn        func(ctx context.Context, req *usecase.CreateCategoryReq) (*domain.Category, error)
	updateCategoryFn        func(ctx context.Context, req *usecase.UpdateCategoryReq) (*domain.Category, error)
	deleteCategoryFn        func(ctx context.Context, id int64) error
}

func (m *mockCatalogUC) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return m.listProductsFn(ctx)
}

func (m *mockCatalogUC) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return m.getProductFn(ctx, id)
}

func (m *mockCatalogUC) GetProductsByCategory(ctx context.Context, categoryID int64) ([]domain.Product, error) {
	return m.getProductsByCategoryFn(ctx, categoryID)
}

func (m *mockCatalogUC) CreateProduct(ctx context.Context, req *usecase.CreateProductReq) (*usecase.ProductWithCategory, error) {
	return m.createProductFn(ctx, req)
}

func (m *mockCatalogUC) UpdateProduct(ctx context.Context, req *usecase.UpdateProductReq) (*domain.Product, error) {
	return m.updateProductFn(ctx, req)
}

func (m *mockCatalogUC) DeleteProduct(ctx context.Context, id int64) error {
	return m.deleteProductFn(ctx, id)
}

func (m *mockCatalogUC) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return m.listCategoriesFn(ctx)
}

func (m *mockCatalogUC) GetCategory(ctx context.Context, id int64) (*usecase.CategoryWithProducts, error) {
	return m.getCategoryFn(ctx, id)
}

func (m *mockCatalogUC) CreateCategory(ctx context.Context, req *usecase.CreateCategoryReq) (*domain.Category, error) {
	return m.createCategoryFn(ctx, req)
}

func (m *mockCatalogUC) UpdateCategory(ctx context.Context, req *usecase.UpdateCategoryReq) (*domain.Category, error) {
	return m.updateCategoryFn(ctx, req)
}

func (m *mockCatalogUC) DeleteCategory(ctx context.Context, id int64) error {
	return m.deleteCategoryFn(ctx, id)
}

type mockImagesInfra struct {
	uploadFn    func(ctx context.Context, req *usecase.UploadImageReq) (*usecase.UploadImageRes, error)
	cleanedKeys []string
}

func (m *mockImagesInfra) UploadImage(ctx context.Context, req *usecase.UploadImageReq) (*usecase.UploadImageRes, error) {
	return m.uploadFn(ctx, req)
}

func (m *mockImagesInfra) CleanupImages(keys []string) {
	m.cleanedKeys = append(m.cleanedKeys, keys...)
}

type noopLogger struct{}

func (noopLogger) Debugf(string, ...any)        {}
func (noopLogger) Infof(string, ...any)         {}
func (noopLogger) Warnf(string, ...any)         {}
func (noopLogger) Errorf(error, string, ...any) {}

func newTestRouter(uc usecase.CatalogUC, infra usecase.ImagesInfra) *chi.Mux {
	r := chi.NewRouter()
	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Get("/health", healthCheck)
		registerProductRoutes(v1, NewProductHandler(uc, infra, noopLogger{}, false, 15<<20))
		registerCategoryRoutes(v1, NewCategoryHandler(uc, noopLogger{}, false))
	})
	return r
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestHealth(t *testing.T) {
	router := newTestRouter(&mockCatalogUC{}, &mockImagesInfra{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "ok", resp.Message)
}

func TestListProducts_Envelope(t *testing.T) {
	uc := &mockCatalogUC{
		listProductsFn: func(ctx context.Context) ([]domain.Product, error) {
			return []domain.Product{
				{ID: 2, Name: "Newer", Colors: []string{"red"}, CategoryID: 1},
				{ID: 1, Name: "Older", Colors: []string{"blue"}, CategoryID: 1},
			}, nil
		},
	}
	router := newTestRouter(uc, &mockImagesInfra{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Count)
	assert.Equal(t, 2, *resp.Count)
}

func TestGetProduct_NotFound(t *testing.T) {
	uc := &mockCatalogUC{
		getProductFn: func(ctx context.Context, id int64) (*domain.Product, error) {
			return nil, e.Wrap("CatalogUseCase.GetProduct", e.ErrProductNotFound)
		},
	}
	router := newTestRouter(uc, &mockImagesInfra{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products/99", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "product not found", resp.Error.Message)
	assert.Empty(t, resp.Error.Stack, "stack must not leak outside development")
}

func TestGetProduct_NonNumericID(t *testing.T) {
	router := newTestRouter(&mockCatalogUC{}, &mockImagesInfra{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products/abc", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetProductsByCategory_NonNumericID(t *testing.T) {
	router := newTestRouter(&mockCatalogUC{}, &mockImagesInfra{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products/category/chairs", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateProduct_JSON(t *testing.T) {
	var captured *usecase.CreateProductReq
	uc := &mockCatalogUC{
		createProductFn: func(ctx context.Context, req *usecase.CreateProductReq) (*usecase.ProductWithCategory, error) {
			captured = req
			return usecase.NewProductWithCategory(
				&domain.Product{ID: 1, Name: req.Name, Colors: req.Colors, CategoryID: 7},
				&domain.Category{ID: 7, Title: req.Name},
			), nil
		},
	}
	router := newTestRouter(uc, &mockImagesInfra{})

	body := `{"name":"Chair","colors":["red","blue"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, captured)
	assert.Equal(t, "Chair", captured.Name)
	assert.Equal(t, []string{"red", "blue"}, captured.Colors)
	assert.Nil(t, captured.CategoryID)

	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
}

func TestCreateProduct_UnsupportedContentType(t *testing.T) {
	router := newTestRouter(&mockCatalogUC{}, &mockImagesInfra{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader("name=Chair"))
	req.Header.Set("Content-Type", "text/plain")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateProduct_MultipartWithImage(t *testing.T) {
	var captured *usecase.CreateProductReq
	uc := &mockCatalogUC{
		createProductFn: func(ctx context.Context, req *usecase.CreateProductReq) (*usecase.ProductWithCategory, error) {
			captured = req
			return usecase.NewProductWithCategory(
				&domain.Product{ID: 1, Name: req.Name, Colors: req.Colors, ImagePath: req.ImagePath, CategoryID: 1},
				&domain.Category{ID: 1, Title: req.Name},
			), nil
		},
	}
	infra := &mockImagesInfra{
		uploadFn: func(ctx context.Context, req *usecase.UploadImageReq) (*usecase.UploadImageRes, error) {
			assert.Equal(t, "products", req.Scope)
			return usecase.NewUploadImageRes("products/key.png", "http://minio/catalog/products/key.png"), nil
		},
	}
	router := newTestRouter(uc, infra)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("name", "Chair"))
	require.NoError(t, mw.WriteField("colors", "red, blue"))
	fw, err := mw.CreateFormFile("image", "chair.png")
	require.NoError(t, err)
	// валидная PNG-сигнатура, чтобы DetectContentType вернул image/png
	_, err = fw.Write([]byte("\x89PNG\r\n\x1a\nrest-of-image"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, captured)
	assert.Equal(t, []string{"red", "blue"}, captured.Colors)
	require.NotNil(t, captured.ImagePath)
	assert.Equal(t, "http://minio/catalog/products/key.png", *captured.ImagePath)
}

func TestCreateProduct_CleansUpUploadOnFailure(t *testing.T) {
	uc := &mockCatalogUC{
		createProductFn: func(ctx context.Context, req *usecase.CreateProductReq) (*usecase.ProductWithCategory, error) {
			return nil, e.Wrap("CatalogUseCase.CreateProduct", e.ErrCategoryNotFound)
		},
	}
	infra := &mockImagesInfra{
		uploadFn: func(ctx context.Context, req *usecase.UploadImageReq) (*usecase.UploadImageRes, error) {
			return usecase.NewUploadImageRes("products/orphan.png", "http://minio/catalog/products/orphan.png"), nil
		},
	}
	router := newTestRouter(uc, infra)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("name", "Chair"))
	require.NoError(t, mw.WriteField("colors", `["red"]`))
	require.NoError(t, mw.WriteField("categoryId", "42"))
	fw, err := mw.CreateFormFile("image", "chair.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte("\x89PNG\r\n\x1a\nrest-of-image"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, []string{"products/orphan.png"}, infra.cleanedKeys)
}

func TestUpdateProduct_Conflict(t *testing.T) {
	uc := &mockCatalogUC{
		updateProductFn: func(ctx context.Context, req *usecase.UpdateProductReq) (*domain.Product, error) {
			return nil, e.Wrap("CatalogUseCase.UpdateProduct", e.ErrProductNameTaken)
		},
	}
	router := newTestRouter(uc, &mockImagesInfra{})

	req := httptest.NewRequest(http.MethodPut, "/api/v1/products/1", strings.NewReader(`{"name":"Taken"}`))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestDeleteProduct_OK(t *testing.T) {
	var deletedID int64
	uc := &mockCatalogUC{
		deleteProductFn: func(ctx context.Context, id int64) error {
			deletedID = id
			return nil
		},
	}
	router := newTestRouter(uc, &mockImagesInfra{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/products/5", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(5), deletedID)
}

func TestDeleteCategory_NotEmpty(t *testing.T) {
	uc := &mockCatalogUC{
		deleteCategoryFn: func(ctx context.Context, id int64) error {
			return e.Wrap("CatalogUseCase.DeleteCategory", e.ErrCategoryNotEmpty)
		},
	}
	router := newTestRouter(uc, &mockImagesInfra{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/categories/3", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "cannot delete category with existing products", resp.Error.Message)
}

func TestCreateCategory_Conflict(t *testing.T) {
	uc := &mockCatalogUC{
		createCategoryFn: func(ctx context.Context, req *usecase.CreateCategoryReq) (*domain.Category, error) {
			return nil, e.Wrap("CatalogUseCase.CreateCategory", e.ErrCategoryTitleTaken)
		},
	}
	router := newTestRouter(uc, &mockImagesInfra{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/categories", strings.NewReader(`{"title":"Sofas"}`))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestGetCategory_WithProducts(t *testing.T) {
	uc := &mockCatalogUC{
		getCategoryFn: func(ctx context.Context, id int64) (*usecase.CategoryWithProducts, error) {
			return usecase.NewCategoryWithProducts(
				&domain.Category{ID: id, Title: "Chairs"},
				[]domain.Product{{ID: 1, Name: "Stool", Colors: []string{"red"}, CategoryID: id}},
			), nil
		},
	}
	router := newTestRouter(uc, &mockImagesInfra{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/categories/4", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool             `json:"success"`
		Data    CategoryResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Chairs", resp.Data.Title)
	require.Len(t, resp.Data.Products, 1)
	assert.Equal(t, "Stool", resp.Data.Products[0].Name)
}

func TestInternalErrorIsGenericized(t *testing.T) {
	uc := &mockCatalogUC{
		listCategoriesFn: func(ctx context.Context) ([]domain.Category, error) {
			return nil, e.Wrap("CatalogUseCase.ListCategories", assert.AnError)
		},
	}
	router := newTestRouter(uc, &mockImagesInfra{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "internal server error", resp.Error.Message)
	assert.NotContains(t, resp.Error.Message, "assert.AnError")
}

func TestParseColorsValue(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"json array", `["red","blue"]`, []string{"red", "blue"}},
		{"csv", "red, blue ,green", []string{"red", "blue", "green"}},
		{"single", "red", []string{"red"}},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseColorsValue(tt.raw))
		})
	}
}
