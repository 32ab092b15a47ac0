package usecase

import (
	"context"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
)

// CatalogUC — операции каталога: CRUD продуктов и категорий
// с поддержанием инварианта «категория не существует без продуктов».
type CatalogUC interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	GetProductsByCategory(ctx context.Context, categoryID int64) ([]domain.Product, error)
	CreateProduct(ctx context.Context, req *CreateProductReq) (*ProductWithCategory, error)
	UpdateProduct(ctx context.Context, req *UpdateProductReq) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error

	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategory(ctx context.Context, id int64) (*CategoryWithProducts, error)
	CreateCategory(ctx context.Context, req *CreateCategoryReq) (*domain.Category, error)
	UpdateCategory(ctx context.Context, req *UpdateCategoryReq) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}
