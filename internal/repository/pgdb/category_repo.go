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

// CategoryRepo реализует репозиторий категорий поверх PostgreSQL.
type CategoryRepo struct {
	pool *pgxpool.Pool
	conv converter.CategoryConverter
}

func NewCategoryRepo(pool *pgxpool.Pool, conv converter.CategoryConverter) *CategoryRepo {
	return &CategoryRepo{pool: pool, conv: conv}
}

const categoryColumns = "id, title, header, created_at, updated_at"

// Create вставляет категорию. Дубликат title — доменный конфликт.
func (c *CategoryRepo) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	query := `
		INSERT INTO categories (title, header)
		VALUES ($1, $2)
		RETURNING ` + categoryColumns + `;
	`

	var model converter.CategoryModel
	err := queryEngine(ctx, c.pool).QueryRow(ctx, query, category.Title, category.Header).
		Scan(&model.ID, &model.Title, &model.Header, &model.CreatedAt, &model.UpdatedAt)
	if err != nil {
		if postgresDuplicate(err) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrCategoryTitleTaken)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(&model), nil
}

// GetByID возвращает категорию по идентификатору.
func (c *CategoryRepo) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1;`

	var model converter.CategoryModel
	err := queryEngine(ctx, c.pool).QueryRow(ctx, query, id).
		Scan(&model.ID, &model.Title, &model.Header, &model.CreatedAt, &model.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrCategoryNotFound)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(&model), nil
}

// List возвращает все категории в алфавитном порядке.
func (c *CategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories ORDER BY title ASC;`

	rows, err := queryEngine(ctx, c.pool).Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]domain.Category, 0)
	for rows.Next() {
		var model converter.CategoryModel
		if err := rows.Scan(&model.ID, &model.Title, &model.Header, &model.CreatedAt, &model.UpdatedAt); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, *c.conv.ToEntity(&model))
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

// Update перезаписывает изменяемые поля категории.
func (c *CategoryRepo) Update(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	query := `
		UPDATE categories
		SET title = $2, header = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + categoryColumns + `;
	`

	var model converter.CategoryModel
	err := queryEngine(ctx, c.pool).QueryRow(ctx, query, category.ID, category.Title, category.Header).
		Scan(&model.ID, &model.Title, &model.Header, &model.CreatedAt, &model.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrCategoryNotFound)
		}
		if postgresDuplicate(err) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrCategoryTitleTaken)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(&model), nil
}

// CountProducts возвращает число продуктов в категории.
func (c *CategoryRepo) CountProducts(ctx context.Context, id int64) (int64, error) {
	query := `SELECT COUNT(*) FROM products WHERE category_id = $1;`

	var count int64
	if err := queryEngine(ctx, c.pool).QueryRow(ctx, query, id).Scan(&count); err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return count, nil
}

// Delete удаляет категорию по идентификатору.
func (c *CategoryRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM categories WHERE id = $1;`

	tag, err := queryEngine(ctx, c.pool).Exec(ctx, query, id)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if tag.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrCategoryNotFound)
	}

	return nil
}

// DeleteIfEmpty удаляет категорию только при отсутствии продуктов в ней.
// Условие входит в сам DELETE, поэтому гонка с параллельной вставкой
// продукта не приводит к удалению вновь заселённой категории.
func (c *CategoryRepo) DeleteIfEmpty(ctx context.Context, id int64) (bool, error) {
	query := `
		DELETE FROM categories c
		WHERE c.id = $1
		  AND NOT EXISTS (SELECT 1 FROM products p WHERE p.category_id = c.id);
	`

	tag, err := queryEngine(ctx, c.pool).Exec(ctx, query, id)
	if err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	return tag.RowsAffected() > 0, nil
}
