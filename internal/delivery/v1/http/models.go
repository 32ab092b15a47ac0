package http

import (
	"time"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/internal/usecase"
)

// Response — единый конверт ответа API.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
}

// ErrorBody — тело ошибки; Stack заполняется только в development.
type ErrorBody struct {
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}

type ProductResponse struct {
	ID         int64             `json:"id"`
	Name       string            `json:"name"`
	Colors     []string          `json:"colors"`
	ImagePath  *string           `json:"imagePath"`
	CategoryID int64             `json:"categoryId"`
	Category   *CategoryResponse `json:"category,omitempty"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  *time.Time        `json:"updatedAt,omitempty"`
}

type CategoryResponse struct {
	ID        int64             `json:"id"`
	Title     string            `json:"title"`
	Header    *string           `json:"header"`
	Products  []ProductResponse `json:"products,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt *time.Time        `json:"updatedAt,omitempty"`
}

type createProductRequest struct {
	Name       string   `json:"name"`
	Colors     []string `json:"colors"`
	CategoryID *int64   `json:"categoryId"`
	ImagePath  *string  `json:"imagePath"`
}

type updateProductRequest struct {
	Name       *string  `json:"name"`
	Colors     []string `json:"colors"`
	CategoryID *int64   `json:"categoryId"`
	ImagePath  *string  `json:"imagePath"`
}

type createCategoryRequest struct {
	Title  string  `json:"title"`
	Header *string `json:"header"`
}

type updateCategoryRequest struct {
	Title  *string `json:"title"`
	Header *string `json:"header"`
}

func toProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:         p.ID,
		Name:       p.Name,
		Colors:     p.Colors,
		ImagePath:  p.ImagePath,
		CategoryID: p.CategoryID,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func toArrProductResponse(products []domain.Product) []ProductResponse {
	result := make([]ProductResponse, 0, len(products))
	for i := range products {
		result = append(result, toProductResponse(&products[i]))
	}
	return result
}

func toCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		Title:     c.Title,
		Header:    c.Header,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toArrCategoryResponse(categories []domain.Category) []CategoryResponse {
	result := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		result = append(result, toCategoryResponse(&categories[i]))
	}
	return result
}

func toProductWithCategoryResponse(pc *usecase.ProductWithCategory) ProductResponse {
	resp := toProductResponse(pc.Product)
	if pc.Category != nil {
		category := toCategoryResponse(pc.Category)
		resp.Category = &category
	}
	return resp
}

func toCategoryWithProductsResponse(cp *usecase.CategoryWithProducts) CategoryResponse {
	resp := toCategoryResponse(cp.Category)
	resp.Products = toArrProductResponse(cp.Products)
	return resp
}
