package pgdb

import (
	"context"
	"errors"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// ProductRepo реализует репозиторий продуктов поверх PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

const productColumns = "id, name, colors, image_path, category_id, created_at, updated_at"

// Create вставляет новый продукт. Нарушение внешнего ключа category_id
// транслируется в доменную ошибку отсутствующей категории.
func (p *ProductRepo) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	query := `
		INSERT INTO products (name, colors, image_path, category_id)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + productColumns + `;
	`

	var model converter.ProductModel
	err := queryEngine(ctx, p.pool).
		QueryRow(ctx, query, product.Name, product.Colors, product.ImagePath, product.CategoryID).
		Scan(
			&model.ID, &model.Name, &model.Colors, &model.ImagePath,
			&model.CategoryID, &model.CreatedAt, &model.UpdatedAt,
		)
	if err != nil {
		if postgresForeignKeyViolation(err) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrCategoryNotFound)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

// GetByID возвращает продукт по идентификатору.
func (p *ProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1;`

	var model converter.ProductModel
	err := queryEngine(ctx, p.pool).QueryRow(ctx, query, id).
		Scan(
			&model.ID, &model.Name, &model.Colors, &model.ImagePath,
			&model.CategoryID, &model.CreatedAt, &model.UpdatedAt,
		)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

// List возвращает все продукты, новые первыми.
func (p *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC, id DESC;`

	return p.queryProducts(ctx, query)
}

// ListByCategory возвращает продукты категории, новые первыми.
func (p *ProductRepo) ListByCategory(ctx context.Context, categoryID int64) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE category_id = $1 ORDER BY created_at DESC, id DESC;`

	return p.queryProducts(ctx, query, categoryID)
}

// ExistsByName проверяет занятость имени продукта, исключая продукт excludeID.
func (p *ProductRepo) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM products WHERE name = $1 AND id <> $2);`

	var exists bool
	if err := queryEngine(ctx, p.pool).QueryRow(ctx, query, name, excludeID).Scan(&exists); err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	return exists, nil
}

// Update перезаписывает изменяемые поля продукта.
func (p *ProductRepo) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	query := `
		UPDATE products
		SET name = $2, colors = $3, image_path = $4, category_id = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + productColumns + `;
	`

	var model converter.ProductModel
	err := queryEngine(ctx, p.pool).
		QueryRow(ctx, query, product.ID, product.Name, product.Colors, product.ImagePath, product.CategoryID).
		Scan(
			&model.ID, &model.Name, &model.Colors, &model.ImagePath,
			&model.CategoryID, &model.CreatedAt, &model.UpdatedAt,
		)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
		}
		if postgresForeignKeyViolation(err) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrCategoryNotFound)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

// Delete удаляет продукт по идентификатору.
func (p *ProductRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM products WHERE id = $1;`

	tag, err := queryEngine(ctx, p.pool).Exec(ctx, query, id)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if tag.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
	}

	return nil
}

func (p *ProductRepo) queryProducts(ctx context.Context, query string, args ...any) ([]domain.Product, error) {
	rows, err := queryEngine(ctx, p.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]domain.Product, 0)
	for rows.Next() {
		var model converter.ProductModel
		if err := rows.Scan(
			&model.ID, &model.Name, &model.Colors, &model.ImagePath,
			&model.CategoryID, &model.CreatedAt, &model.UpdatedAt,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, *p.conv.ToEntity(&model))
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}
