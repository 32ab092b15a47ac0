package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/DRSN-tech/catalog-backend/pkg/logger"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const maxNameLength = 255

// CatalogUseCase реализует бизнес-логику каталога: CRUD продуктов и категорий
// с поддержанием инварианта «у существующей категории есть хотя бы один продукт».
// Категория-сирота удаляется автоматически при удалении или переносе последнего продукта.
type CatalogUseCase struct {
	productRepo  ProductRepository
	categoryRepo CategoryRepository
	dbPool       transaction.Transactional
	outboxRepo   OutboxRepository
	cacheRepo    CacheRepository
	logger       logger.Logger
}

func NewCatalogUC(
	productRepo ProductRepository,
	categoryRepo CategoryRepository,
	dbPool transaction.Transactional,
	outboxRepo OutboxRepository,
	cacheRepo CacheRepository,
	logger logger.Logger,
) *CatalogUseCase {
	return &CatalogUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		dbPool:       dbPool,
		outboxRepo:   outboxRepo,
		cacheRepo:    cacheRepo,
		logger:       logger,
	}
}

// ListProducts возвращает все продукты, новые первыми.
func (c *CatalogUseCase) ListProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "CatalogUseCase.ListProducts"

	products, err := c.productRepo.List(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return products, nil
}

// GetProduct возвращает продукт по идентификатору, используя кэш на чтение.
func (c *CatalogUseCase) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	const op = "CatalogUseCase.GetProduct"

	if id <= 0 {
		return nil, e.Wrap(op, e.ErrInvalidID)
	}

	cached, err := c.cacheRepo.GetProducts(ctx, []int64{id})
	if err == nil {
		if product, ok := cached[id]; ok {
			return &product, nil
		}
	}

	product, err := c.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Фоновое добавление продукта в кэш
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()

		if err := c.cacheRepo.SetProducts(bgCtx, []domain.Product{*product}); err != nil {
			c.logger.Warnf("Failed to cache product in background: %v", e.Wrap(op, err))
		}
	}()

	return product, nil
}

// GetProductsByCategory возвращает продукты категории, новые первыми.
func (c *CatalogUseCase) GetProductsByCategory(ctx context.Context, categoryID int64) ([]domain.Product, error) {
	const op = "CatalogUseCase.GetProductsByCategory"

	if categoryID <= 0 {
		return nil, e.Wrap(op, e.ErrInvalidCategoryID)
	}

	products, err := c.productRepo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return products, nil
}

// CreateProduct создаёт продукт. Без CategoryID всегда создаётся новая категория
// с title = имя продукта и header = изображение продукта (без дедупликации по названию).
// При явном CategoryID изображением продукта становится header категории, если он задан.
func (c *CatalogUseCase) CreateProduct(ctx context.Context, req *CreateProductReq) (*ProductWithCategory, error) {
	const op = "CatalogUseCase.CreateProduct"

	var err error
	if err = validateCreateProduct(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, c.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	var category *domain.Category
	imagePath := req.ImagePath

	if req.CategoryID == nil {
		category, err = c.categoryRepo.Create(ctx, domain.NewCategory(req.Name, req.ImagePath))
		if err != nil {
			return nil, e.Wrap(op, err)
		}

		if err = c.writeOutboxEvent(ctx, CategoryProvisioned, category.ID, newCategoryEventPayload(category)); err != nil {
			return nil, e.Wrap(op, err)
		}
	} else {
		category, err = c.categoryRepo.GetByID(ctx, *req.CategoryID)
		if err != nil {
			return nil, e.Wrap(op, err)
		}

		// Продукты существующей категории показываются с её обложкой
		if category.Header != nil {
			imagePath = category.Header
		}
	}

	product, err := c.productRepo.Create(ctx, domain.NewProduct(req.Name, req.Colors, category.ID, imagePath))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = c.writeOutboxEvent(ctx, ProductCreated, product.ID, newProductEventPayload(product)); err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewProductWithCategory(product, category), nil
}

// UpdateProduct применяет частичное обновление продукта. При смене категории
// старая категория удаляется, если осталась без продуктов (best-effort).
func (c *CatalogUseCase) UpdateProduct(ctx context.Context, req *UpdateProductReq) (*domain.Product, error) {
	const op = "CatalogUseCase.UpdateProduct"

	var err error
	if err = validateUpdateProduct(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, c.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	product, err := c.productRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if req.Name != nil && *req.Name != product.Name {
		var taken bool
		taken, err = c.productRepo.ExistsByName(ctx, *req.Name, product.ID)
		if err != nil {
			return nil, e.Wrap(op, err)
		}
		if taken {
			err = e.Wrap(*req.Name, e.ErrProductNameTaken)
			return nil, e.Wrap(op, err)
		}
		product.Name = *req.Name
	}

	if req.Colors != nil {
		product.Colors = req.Colors
	}

	if req.ImagePath != nil {
		product.ImagePath = req.ImagePath
	}

	oldCategoryID := product.CategoryID
	if req.CategoryID != nil && *req.CategoryID != product.CategoryID {
		if _, err = c.categoryRepo.GetByID(ctx, *req.CategoryID); err != nil {
			return nil, e.Wrap(op, err)
		}
		product.CategoryID = *req.CategoryID
	}

	updated, err := c.productRepo.Update(ctx, product)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if updated.CategoryID != oldCategoryID {
		c.cleanupOrphanCategory(ctx, oldCategoryID)
	}

	if err = c.writeOutboxEvent(ctx, ProductUpdated, updated.ID, newProductEventPayload(updated)); err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	// Удаление из кэша старых данных товара
	if err := c.cacheRepo.DeleteProducts(ctx, []int64{updated.ID}); err != nil {
		c.logger.Warnf("Failed to invalidate product cache: %v", e.Wrap(op, err))
	}

	return updated, nil
}

// DeleteProduct удаляет продукт и каскадно — его категорию, если она осталась пустой.
// Продукт считается удалённым даже при сбое каскадного шага.
func (c *CatalogUseCase) DeleteProduct(ctx context.Context, id int64) error {
	const op = "CatalogUseCase.DeleteProduct"

	var err error
	if id <= 0 {
		err = e.ErrInvalidID
		return e.Wrap(op, err)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, c.dbPool)
	if err != nil {
		return e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	product, err := c.productRepo.GetByID(ctx, id)
	if err != nil {
		return e.Wrap(op, err)
	}

	if err = c.productRepo.Delete(ctx, product.ID); err != nil {
		return e.Wrap(op, err)
	}

	c.cleanupOrphanCategory(ctx, product.CategoryID)

	if err = c.writeOutboxEvent(ctx, ProductDeleted, product.ID, newProductEventPayload(product)); err != nil {
		return e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return e.Wrap(op, err)
	}

	if err := c.cacheRepo.DeleteProducts(ctx, []int64{product.ID}); err != nil {
		c.logger.Warnf("Failed to invalidate product cache: %v", e.Wrap(op, err))
	}

	return nil
}

// ListCategories возвращает все категории по алфавиту.
func (c *CatalogUseCase) ListCategories(ctx context.Context) ([]domain.Category, error) {
	const op = "CatalogUseCase.ListCategories"

	categories, err := c.categoryRepo.List(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return categories, nil
}

// GetCategory возвращает категорию вместе со списком её продуктов.
func (c *CatalogUseCase) GetCategory(ctx context.Context, id int64) (*CategoryWithProducts, error) {
	const op = "CatalogUseCase.GetCategory"

	if id <= 0 {
		return nil, e.Wrap(op, e.ErrInvalidID)
	}

	category, err := c.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	products, err := c.productRepo.ListByCategory(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewCategoryWithProducts(category, products), nil
}

// CreateCategory создаёт категорию. Дубликат названия — доменный конфликт.
func (c *CatalogUseCase) CreateCategory(ctx context.Context, req *CreateCategoryReq) (*domain.Category, error) {
	const op = "CatalogUseCase.CreateCategory"

	if err := validateCategoryTitle(req.Title); err != nil {
		return nil, e.Wrap(op, err)
	}

	category, err := c.categoryRepo.Create(ctx, domain.NewCategory(req.Title, req.Header))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return category, nil
}

// UpdateCategory применяет частичное обновление категории.
func (c *CatalogUseCase) UpdateCategory(ctx context.Context, req *UpdateCategoryReq) (*domain.Category, error) {
	const op = "CatalogUseCase.UpdateCategory"

	if req.ID <= 0 {
		return nil, e.Wrap(op, e.ErrInvalidID)
	}
	if req.Title == nil && req.Header == nil {
		return nil, e.Wrap(op, e.ErrEmptyUpdate)
	}
	if req.Title != nil {
		if err := validateCategoryTitle(*req.Title); err != nil {
			return nil, e.Wrap(op, err)
		}
	}

	category, err := c.categoryRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if req.Title != nil {
		category.Title = *req.Title
	}
	if req.Header != nil {
		category.Header = req.Header
	}

	updated, err := c.categoryRepo.Update(ctx, category)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return updated, nil
}

// DeleteCategory удаляет категорию вручную. В отличие от каскадного пути,
// явное удаление непустой категории запрещено.
func (c *CatalogUseCase) DeleteCategory(ctx context.Context, id int64) error {
	const op = "CatalogUseCase.DeleteCategory"

	var err error
	if id <= 0 {
		err = e.ErrInvalidID
		return e.Wrap(op, err)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, c.dbPool)
	if err != nil {
		return e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	category, err := c.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return e.Wrap(op, err)
	}

	count, err := c.categoryRepo.CountProducts(ctx, id)
	if err != nil {
		return e.Wrap(op, err)
	}
	if count > 0 {
		err = e.ErrCategoryNotEmpty
		return e.Wrap(op, err)
	}

	// Условное удаление: параллельная вставка продукта между count и delete
	// не должна снести вновь заселённую категорию
	deleted, err := c.categoryRepo.DeleteIfEmpty(ctx, id)
	if err != nil {
		return e.Wrap(op, err)
	}
	if !deleted {
		err = e.ErrCategoryNotEmpty
		return e.Wrap(op, err)
	}

	if err = c.writeOutboxEvent(ctx, CategoryDeleted, category.ID, newCategoryEventPayload(category)); err != nil {
		return e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// cleanupOrphanCategory удаляет категорию, оставшуюся без продуктов.
// Best-effort: сбой логируется и не прерывает основную операцию.
func (c *CatalogUseCase) cleanupOrphanCategory(ctx context.Context, categoryID int64) {
	const op = "CatalogUseCase.cleanupOrphanCategory"

	deleted, err := c.categoryRepo.DeleteIfEmpty(ctx, categoryID)
	if err != nil {
		c.logger.Warnf("Orphan category cleanup failed, category_id: %d, error: %v", categoryID, e.Wrap(op, err))
		return
	}

	if deleted {
		c.logger.Infof("Deleted orphan category, category_id: %d", categoryID)
		if err := c.writeOutboxEvent(ctx, CategoryDeleted, categoryID, categoryEventPayload{ID: categoryID}); err != nil {
			c.logger.Warnf("Failed to write category.deleted event: %v", e.Wrap(op, err))
		}
	}
}

// writeOutboxEvent записывает событие каталога в transactional outbox.
func (c *CatalogUseCase) writeOutboxEvent(ctx context.Context, eventType OutboxEventType, entityID int64, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	_, err = c.outboxRepo.Create(ctx, NewOutboxEvent(uuid.NewString(), eventType, entityID, data))
	return err
}

// EVENT PAYLOADS

type productEventPayload struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	Colors     []string `json:"colors"`
	ImagePath  *string  `json:"image_path"`
	CategoryID int64    `json:"category_id"`
}

type categoryEventPayload struct {
	ID     int64   `json:"id"`
	Title  string  `json:"title,omitempty"`
	Header *string `json:"header,omitempty"`
}

func newProductEventPayload(product *domain.Product) productEventPayload {
	return productEventPayload{
		ID:         product.ID,
		Name:       product.Name,
		Colors:     product.Colors,
		ImagePath:  product.ImagePath,
		CategoryID: product.CategoryID,
	}
}

func newCategoryEventPayload(category *domain.Category) categoryEventPayload {
	return categoryEventPayload{
		ID:     category.ID,
		Title:  category.Title,
		Header: category.Header,
	}
}

// VALIDATION

// validateCreateProduct проверяет входные данные до любого обращения к хранилищу.
func validateCreateProduct(req *CreateProductReq) error {
	if strings.TrimSpace(req.Name) == "" {
		return e.ErrProductNameRequired
	}
	if utf8.RuneCountInString(req.Name) > maxNameLength {
		return e.ErrNameTooLong
	}
	if err := validateColors(req.Colors); err != nil {
		return err
	}
	if req.CategoryID != nil && *req.CategoryID <= 0 {
		return e.ErrInvalidCategoryID
	}

	return nil
}

func validateUpdateProduct(req *UpdateProductReq) error {
	if req.ID <= 0 {
		return e.ErrInvalidID
	}
	if req.Name == nil && req.Colors == nil && req.CategoryID == nil && req.ImagePath == nil {
		return e.ErrEmptyUpdate
	}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return e.ErrProductNameRequired
		}
		if utf8.RuneCountInString(*req.Name) > maxNameLength {
			return e.ErrNameTooLong
		}
	}
	if req.Colors != nil {
		if err := validateColors(req.Colors); err != nil {
			return err
		}
	}
	if req.CategoryID != nil && *req.CategoryID <= 0 {
		return e.ErrInvalidCategoryID
	}

	return nil
}

func validateColors(colors []string) error {
	if len(colors) == 0 {
		return e.ErrNoColors
	}
	for _, color := range colors {
		if strings.TrimSpace(color) == "" {
			return e.ErrEmptyColor
		}
	}

	return nil
}

func validateCategoryTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return e.ErrCategoryTitleRequired
	}
	if utf8.RuneCountInString(title) > maxNameLength {
		return e.ErrNameTooLong
	}

	return nil
}
