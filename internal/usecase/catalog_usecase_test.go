package usecase_test

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/internal/usecase"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTx подменяет pgx.Tx: usecase управляет только Commit/Rollback.
type stubTx struct {
	pgx.Tx
}

func (stubTx) Commit(context.Context) error   { return nil }
func (stubTx) Rollback(context.Context) error { return nil }

type stubPool struct{}

func (stubPool) BeginTx(ctx context.Context, _ pgx.TxOptions) (pgx.Tx, error) {
	return stubTx{}, nil
}

// memStore — общее in-memory хранилище для фейковых репозиториев.
type memStore struct {
	products       map[int64]domain.Product
	categories     map[int64]domain.Category
	nextProductID  int64
	nextCategoryID int64
	events         []*usecase.OutboxEvent
}

func newMemStore() *memStore {
	return &memStore{
		products:   make(map[int64]domain.Product),
		categories: make(map[int64]domain.Category),
	}
}

func (s *memStore) productsInCategory(categoryID int64) []domain.Product {
	var result []domain.Product
	for _, p := range s.products {
		if p.CategoryID == categoryID {
			result = append(result, p)
		}
	}
	return result
}

type fakeProductRepo struct {
	store *memStore
}

func (f *fakeProductRepo) Create(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if _, ok := f.store.categories[product.CategoryID]; !ok {
		return nil, e.ErrCategoryNotFound
	}

	f.store.nextProductID++
	created := *product
	created.ID = f.store.nextProductID
	created.CreatedAt = time.Now().UTC()
	f.store.products[created.ID] = created
	return &created, nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	product, ok := f.store.products[id]
	if !ok {
		return nil, e.ErrProductNotFound
	}
	return &product, nil
}

func (f *fakeProductRepo) List(_ context.Context) ([]domain.Product, error) {
	result := make([]domain.Product, 0, len(f.store.products))
	for _, p := range f.store.products {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (f *fakeProductRepo) ListByCategory(_ context.Context, categoryID int64) ([]domain.Product, error) {
	result := f.store.productsInCategory(categoryID)
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (f *fakeProductRepo) ExistsByName(_ context.Context, name string, excludeID int64) (bool, error) {
	for _, p := range f.store.products {
		if p.Name == name && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeProductRepo) Update(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if _, ok := f.store.products[product.ID]; !ok {
		return nil, e.ErrProductNotFound
	}
	if _, ok := f.store.categories[product.CategoryID]; !ok {
		return nil, e.ErrCategoryNotFound
	}

	updated := *product
	now := time.Now().UTC()
	updated.UpdatedAt = &now
	f.store.products[updated.ID] = updated
	return &updated, nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.store.products[id]; !ok {
		return e.ErrProductNotFound
	}
	delete(f.store.products, id)
	return nil
}

type fakeCategoryRepo struct {
	store *memStore
}

func (f *fakeCategoryRepo) Create(_ context.Context, category *domain.Category) (*domain.Category, error) {
	for _, c := range f.store.categories {
		if c.Title == category.Title {
			return nil, e.ErrCategoryTitleTaken
		}
	}

	f.store.nextCategoryID++
	created := *category
	created.ID = f.store.nextCategoryID
	created.CreatedAt = time.Now().UTC()
	f.store.categories[created.ID] = created
	return &created, nil
}

func (f *fakeCategoryRepo) GetByID(_ context.Context, id int64) (*domain.Category, error) {
	category, ok := f.store.categories[id]
	if !ok {
		return nil, e.ErrCategoryNotFound
	}
	return &category, nil
}

func (f *fakeCategoryRepo) List(_ context.Context) ([]domain.Category, error) {
	result := make([]domain.Category, 0, len(f.store.categories))
	for _, c := range f.store.categories {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Title < result[j].Title })
	return result, nil
}

func (f *fakeCategoryRepo) Update(_ context.Context, category *domain.Category) (*domain.Category, error) {
	if _, ok := f.store.categories[category.ID]; !ok {
		return nil, e.ErrCategoryNotFound
	}
	for _, c := range f.store.categories {
		if c.Title == category.Title && c.ID != category.ID {
			return nil, e.ErrCategoryTitleTaken
		}
	}

	updated := *category
	now := time.Now().UTC()
	updated.UpdatedAt = &now
	f.store.categories[updated.ID] = updated
	return &updated, nil
}

func (f *fakeCategoryRepo) CountProducts(_ context.Context, id int64) (int64, error) {
	return int64(len(f.store.productsInCategory(id))), nil
}

func (f *fakeCategoryRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.store.categories[id]; !ok {
		return e.ErrCategoryNotFound
	}
	delete(f.store.categories, id)
	return nil
}

func (f *fakeCategoryRepo) DeleteIfEmpty(_ context.Context, id int64) (bool, error) {
	if _, ok := f.store.categories[id]; !ok {
		return false, nil
	}
	if len(f.store.productsInCategory(id)) > 0 {
		return false, nil
	}
	delete(f.store.categories, id)
	return true, nil
}

type fakeOutboxRepo struct {
	store *memStore
}

func (f *fakeOutboxRepo) Create(_ context.Context, event *usecase.OutboxEvent) (*usecase.OutboxEvent, error) {
	created := *event
	created.ID = int64(len(f.store.events) + 1)
	f.store.events = append(f.store.events, &created)
	return &created, nil
}

func (f *fakeOutboxRepo) GetAndMarkAsProcessing(_ context.Context, limit int) ([]*usecase.OutboxEvent, error) {
	var result []*usecase.OutboxEvent
	for _, ev := range f.store.events {
		if ev.Status == usecase.Pending && len(result) < limit {
			ev.Status = usecase.Processing
			result = append(result, ev)
		}
	}
	return result, nil
}

func (f *fakeOutboxRepo) MarkAsProcessed(_ context.Context, id int64) error {
	for _, ev := range f.store.events {
		if ev.ID == id {
			ev.Status = usecase.Processed
		}
	}
	return nil
}

type fakeCacheRepo struct {
	cached  map[int64]domain.Product
	deleted []int64
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{cached: make(map[int64]domain.Product)}
}

func (f *fakeCacheRepo) GetProducts(_ context.Context, ids []int64) (map[int64]domain.Product, error) {
	result := make(map[int64]domain.Product)
	for _, id := range ids {
		if p, ok := f.cached[id]; ok {
			result[id] = p
		}
	}
	return result, nil
}

func (f *fakeCacheRepo) SetProducts(_ context.Context, products []domain.Product) error {
	for _, p := range products {
		f.cached[p.ID] = p
	}
	return nil
}

func (f *fakeCacheRepo) DeleteProducts(_ context.Context, ids []int64) error {
	for _, id := range ids {
		delete(f.cached, id)
		f.deleted = append(f.deleted, id)
	}
	return nil
}

type noopLogger struct{}

func (noopLogger) Debugf(string, ...any)        {}
func (noopLogger) Infof(string, ...any)         {}
func (noopLogger) Warnf(string, ...any)         {}
func (noopLogger) Errorf(error, string, ...any) {}

type fixture struct {
	uc     *usecase.CatalogUseCase
	store  *memStore
	cache  *fakeCacheRepo
	ctx    context.Context
	cancel context.CancelFunc
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := newMemStore()
	cache := newFakeCacheRepo()
	uc := usecase.NewCatalogUC(
		&fakeProductRepo{store: store},
		&fakeCategoryRepo{store: store},
		stubPool{},
		&fakeOutboxRepo{store: store},
		cache,
		noopLogger{},
	)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	return &fixture{uc: uc, store: store, cache: cache, ctx: ctx, cancel: cancel}
}

func strPtr(s string) *string { return &s }
func idPtr(i int64) *int64    { return &i }

func (f *fixture) eventsOfType(eventType usecase.OutboxEventType) []*usecase.OutboxEvent {
	var result []*usecase.OutboxEvent
	for _, ev := range f.store.events {
		if ev.EventType == eventType {
			result = append(result, ev)
		}
	}
	return result
}

func TestCreateProduct_AutoProvisionsCategory(t *testing.T) {
	f := newFixture(t)

	result, err := f.uc.CreateProduct(f.ctx, usecase.NewCreateProductReq(
		"Oak Chair", []string{"brown", "black"}, nil, strPtr("http://img/oak.jpg"),
	))
	require.NoError(t, err)

	require.NotNil(t, result.Category)
	assert.Equal(t, "Oak Chair", result.Category.Title)
	require.NotNil(t, result.Category.Header)
	assert.Equal(t, "http://img/oak.jpg", *result.Category.Header)
	assert.Equal(t, result.Category.ID, result.Product.CategoryID)
	assert.Equal(t, []string{"brown", "black"}, result.Product.Colors)

	assert.Len(t, f.eventsOfType(usecase.CategoryProvisioned), 1)
	assert.Len(t, f.eventsOfType(usecase.ProductCreated), 1)
}

func TestCreateProduct_AutoProvisionNeverDeduplicates(t *testing.T) {
	f := newFixture(t)

	first, err := f.uc.CreateProduct(f.ctx, usecase.NewCreateProductReq(
		"Lamp", []string{"white"}, nil, nil,
	))
	require.NoError(t, err)

	// Одноимённый продукт — в фейке Create вернёт конфликт по title,
	// как это делает уникальный индекс в Postgres
	_, err = f.uc.CreateProduct(f.ctx, usecase.NewCreateProductReq(
		"Lamp", []string{"white"}, nil, nil,
	))
	require.ErrorIs(t, err, e.ErrCategoryTitleTaken)

	// Продукт с другим именем создаёт собственную категорию, не переиспользуя существующую
	second, err := f.uc.CreateProduct(f.ctx, usecase.NewCreateProductReq(
		"Desk Lamp", []string{"white"}, nil, nil,
	))
	require.NoError(t, err)
	assert.NotEqual(t, first.Category.ID, second.Category.ID)
	assert.Len(t, f.store.categories, 2)
}

func TestCreateProduct_CategoryHeaderOverridesImagePath(t *testing.T) {
	f := newFixture(t)

	category, err := f.uc.CreateCategory(f.ctx, usecase.NewCreateCategoryReq("Chairs", strPtr("http://img/chairs.jpg")))
	require.NoError(t, err)

	result, err := f.uc.CreateProduct(f.ctx, usecase.NewCreateProductReq(
		"Stool", []string{"red"}, idPtr(category.ID), strPtr("http://img/stool.jpg"),
	))
	require.NoError(t, err)

	require.NotNil(t, result.Product.ImagePath)
	assert.Equal(t, "http://img/chairs.jpg", *result.Product.ImagePath)
}

func TestCreateProduct_KeepsImagePathWhenCategoryHasNoHeader(t *testing.T) {
	f := newFixture(t)

	category, err := f.uc.CreateCategory(f.ctx, usecase.NewCreateCategoryReq("Tables", nil))
	require.NoError(t, err)

	result, err := f.uc.CreateProduct(f.ctx, usecase.NewCreateProductReq(
		"Side Table", []string{"oak"}, idPtr(category.ID), strPtr("http://img/side.jpg"),
	))
	require.NoError(t, err)

	require.NotNil(t, result.Product.ImagePath)
	assert.Equal(t, "http://img/side.jpg", *result.Product.ImagePath)
}

func TestCreateProduct_UnknownCategory(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.CreateProduct(f.ctx, usecase.NewCreateProductReq(
		"Chair", []string{"red"}, idPtr(42), nil,
	))
	require.ErrorIs(t, err, e.ErrCategoryNotFound)
	assert.Empty(t, f.store.products)
}

func TestCreateProduct_Validation(t *testing.T) {
	f := newFixture(t)

	longName := ""
	for i := 0; i < 256; i++ {
		longName += "x"
	}

	tests := []struct {
		name    string
		req     *usecase.CreateProductReq
		wantErr error
	}{
		{"empty name", usecase.NewCreateProductReq("", []string{"red"}, nil, nil), e.ErrProductNameRequired},
		{"blank name", usecase.NewCreateProductReq("   ", []string{"red"}, nil, nil), e.ErrProductNameRequired},
		{"name too long", usecase.NewCreateProductReq(longName, []string{"red"}, nil, nil), e.ErrNameTooLong},
		{"no colors", usecase.NewCreateProductReq("Chair", nil, nil, nil), e.ErrNoColors},
		{"empty color", usecase.NewCreateProductReq("Chair", []string{"red", " "}, nil, nil), e.ErrEmptyColor},
		{"bad category id", usecase.NewCreateProductReq("Chair", []string{"red"}, idPtr(0), nil), e.ErrInvalidCategoryID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.CreateProduct(f.ctx, tt.req)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.Empty(t, f.store.products, "validation must fail before persistence")
	assert.Empty(t, f.store.categories)
}

func TestDeleteProduct_CascadesEmptyCategory(t *testing.T) {
	f := newFixture(t)

	created, err := f.uc.CreateProduct(f.ctx, usecase.NewCreateProductReq(
		"Sofa", []string{"grey"}, nil, nil,
	))
	require.NoError(t, err)

	require.NoError(t, f.uc.DeleteProduct(f.ctx, created.Product.ID))

	assert.Empty(t, f.store.products)
	assert.Empty(t, f.store.categories, "emptied category must be deleted with its last product")
	assert.Len(t, f.eventsOfType(usecase.ProductDeleted), 1)
	assert.Len(t, f.eventsOfType(usecase.CategoryDeleted), 1)
}

func TestDeleteProduct_KeepsPopulatedCategory(t *testing.T) {
	f := newFixture(t)

	first, err := f.uc.CreateProduct(f.ctx, usecase.NewCreateProductReq("Couch", []string{"grey"}, nil, nil))
	require.NoError(t, err)

	_, err = f.uc.CreateProduct(f.ctx, usecase.NewCreateProductReq(
		"Loveseat", []string{"blue"}, idPtr(first.Category.ID), nil,
	))
	require.NoError(t, err)

	require.NoError(t, f.uc.DeleteProduct(f.ctx, first.Product.ID))

	assert.Len(t, f.store.products, 1)
	assert.Len(t, f.store.categories, 1)
	assert.Empty(t, f.eventsOfType(usecase.CategoryDeleted))
}

func TestDeleteProduct_InvalidatesCache(t *testing.T) {
	f := newFixture(t)

	created, err := f.uc.CreateProduct(f.ctx, usecase.NewCreateProductReq("Bench", []string{"oak"}, nil, nil))
	require.NoError(t, err)

	require.NoError(t, f.uc.DeleteProduct(f.ctx, created.Product.ID))
	assert.Contains(t, f.cache.deleted, created.Product.ID)
}

func TestUpdateProduct_CategoryChangeCleansUpOrphan(t *testing.T) {
	f := newFixture(t)

	created, err := f.uc.CreateProduct(f.ctx, usecase.NewCreateProductReq("Rug", []string{"red"}, nil, nil))
	require.NoError(t, err)
	oldCategoryID := created.Category.ID

	target, err := f.uc.CreateCategory(f.ctx, usecase.NewCreateCategoryReq("Carpets", nil))
	require.NoError(t, err)

	updated, err := f.uc.UpdateProduct(f.ctx, &usecase.UpdateProductReq{
		ID:         created.Product.ID,
		CategoryID: idPtr(target.ID),
	})
	require.NoError(t, err)

	assert.Equal(t, target.ID, updated.CategoryID)
	_, exists := f.store.categories[oldCategoryID]
	assert.False(t, exists, "orphaned source category must be removed")
	assert.Len(t, f.eventsOfType(usecase.ProductUpdated), 1)
	assert.Len(t, f.eventsOfType(usecase.CategoryDeleted), 1)
}

func TestUpdateProduct_CategoryChangeKeepsPopulatedSource(t *testing.T) {
	f := newFixture(t)

	first, err := f.uc.CreateProduct(f.ctx, usecase.NewCreateProductReq("Vase", []string{"white"}, nil, nil))
	require.NoError(t, err)

	_, err = f.uc.CreateProduct(f.ctx, usecase.NewCreateProductReq(
		"Bowl", []string{"white"}, idPtr(first.Category.ID), nil,
	))
	require.NoError(t, err)

	target, err := f.uc.CreateCategory(f.ctx, usecase.NewCreateCategoryReq("Decor", nil))
	require.NoError(t, err)

	_, err = f.uc.UpdateProduct(f.ctx, &usecase.UpdateProductReq{
		ID:         first.Product.ID,
		CategoryID: idPtr(target.ID),
	})
	require.NoError(t, err)

	_, exists := f.store.categories[first.Category.ID]
	assert.True(t, exists, "source category still has a product")
}

func TestUpdateProduct_DuplicateName(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.CreateProduct(f.ctx, usecase.NewCreateProductReq("Mirror", []string{"silver"}, nil, nil))
	require.NoError(t, err)

	second, err := f.uc.CreateProduct(f.ctx, usecase.NewCreateProductReq("Frame", []string{"gold"}, nil, nil))
	require.NoError(t, err)

	_, err = f.uc.UpdateProduct(f.ctx, &usecase.UpdateProductReq{
		ID:   second.Product.ID,
		Name: strPtr("Mirror"),
	})
	require.ErrorIs(t, err, e.ErrProductNameTaken)
}

func TestUpdateProduct_SameNameIsNotAConflict(t *testing.T) {
	f := newFixture(t)

	created, err := f.uc.CreateProduct(f.ctx, usecase.NewCreateProductReq("Shelf", []string{"oak"}, nil, nil))
	require.NoError(t, err)

	updated, err := f.uc.UpdateProduct(f.ctx, &usecase.UpdateProductReq{
		ID:     created.Product.ID,
		Name:   strPtr("Shelf"),
		Colors: []string{"walnut"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"walnut"}, updated.Colors)
}

func TestUpdateProduct_EmptyPatch(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.UpdateProduct(f.ctx, &usecase.UpdateProductReq{ID: 1})
	require.ErrorIs(t, err, e.ErrEmptyUpdate)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.UpdateProduct(f.ctx, &usecase.UpdateProductReq{
		ID:   99,
		Name: strPtr("Ghost"),
	})
	require.ErrorIs(t, err, e.ErrProductNotFound)
}

func TestDeleteCategory_RefusesNonEmpty(t *testing.T) {
	f := newFixture(t)

	created, err := f.uc.CreateProduct(f.ctx, usecase.NewCreateProductReq("Clock", []string{"black"}, nil, nil))
	require.NoError(t, err)

	err = f.uc.DeleteCategory(f.ctx, created.Category.ID)
	require.ErrorIs(t, err, e.ErrCategoryNotEmpty)

	_, exists := f.store.categories[created.Category.ID]
	assert.True(t, exists)
}

func TestDeleteCategory_DeletesEmpty(t *testing.T) {
	f := newFixture(t)

	category, err := f.uc.CreateCategory(f.ctx, usecase.NewCreateCategoryReq("Empty", nil))
	require.NoError(t, err)

	require.NoError(t, f.uc.DeleteCategory(f.ctx, category.ID))
	assert.Empty(t, f.store.categories)
	assert.Len(t, f.eventsOfType(usecase.CategoryDeleted), 1)
}

func TestDeleteCategory_NotFound(t *testing.T) {
	f := newFixture(t)

	err := f.uc.DeleteCategory(f.ctx, 7)
	require.ErrorIs(t, err, e.ErrCategoryNotFound)
}

func TestCreateCategory_DuplicateTitle(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.CreateCategory(f.ctx, usecase.NewCreateCategoryReq("Sofas", nil))
	require.NoError(t, err)

	_, err = f.uc.CreateCategory(f.ctx, usecase.NewCreateCategoryReq("Sofas", nil))
	require.ErrorIs(t, err, e.ErrCategoryTitleTaken)
}

func TestUpdateCategory_Partial(t *testing.T) {
	f := newFixture(t)

	category, err := f.uc.CreateCategory(f.ctx, usecase.NewCreateCategoryReq("Beds", strPtr("http://img/beds.jpg")))
	require.NoError(t, err)

	updated, err := f.uc.UpdateCategory(f.ctx, &usecase.UpdateCategoryReq{
		ID:    category.ID,
		Title: strPtr("Bedroom"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Bedroom", updated.Title)
	require.NotNil(t, updated.Header, "header must survive a title-only update")
	assert.Equal(t, "http://img/beds.jpg", *updated.Header)
}

func TestGetCategory_WithProducts(t *testing.T) {
	f := newFixture(t)

	created, err := f.uc.CreateProduct(f.ctx, usecase.NewCreateProductReq("Wardrobe", []string{"white"}, nil, nil))
	require.NoError(t, err)

	result, err := f.uc.GetCategory(f.ctx, created.Category.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Category.ID, result.Category.ID)
	require.Len(t, result.Products, 1)
	assert.Equal(t, created.Product.ID, result.Products[0].ID)
}

func TestGetProduct_RoundTrip(t *testing.T) {
	f := newFixture(t)

	created, err := f.uc.CreateProduct(f.ctx, usecase.NewCreateProductReq(
		"Dresser", []string{"walnut", "white"}, nil, strPtr("http://img/dresser.jpg"),
	))
	require.NoError(t, err)

	got, err := f.uc.GetProduct(f.ctx, created.Product.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Product.Name, got.Name)
	assert.Equal(t, []string{"walnut", "white"}, got.Colors)
}

func TestGetProduct_ServedFromCache(t *testing.T) {
	f := newFixture(t)

	cachedOnly := domain.Product{ID: 500, Name: "Cached Chair", Colors: []string{"red"}, CategoryID: 1}
	f.cache.cached[cachedOnly.ID] = cachedOnly

	got, err := f.uc.GetProduct(f.ctx, cachedOnly.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cached Chair", got.Name)
}

func TestGetProduct_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.GetProduct(f.ctx, 123)
	require.ErrorIs(t, err, e.ErrProductNotFound)
}

func TestListCategories_SortedByTitle(t *testing.T) {
	f := newFixture(t)

	for _, title := range []string{"Zebra", "Apple", "Mango"} {
		_, err := f.uc.CreateCategory(f.ctx, usecase.NewCreateCategoryReq(title, nil))
		require.NoError(t, err)
	}

	categories, err := f.uc.ListCategories(f.ctx)
	require.NoError(t, err)
	require.Len(t, categories, 3)
	assert.Equal(t, "Apple", categories[0].Title)
	assert.Equal(t, "Mango", categories[1].Title)
	assert.Equal(t, "Zebra", categories[2].Title)
}

func TestGetProductsByCategory_InvalidID(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.GetProductsByCategory(f.ctx, -1)
	require.ErrorIs(t, err, e.ErrInvalidCategoryID)
}

func TestOutboxEvents_ArePickedUpAndProcessed(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.CreateProduct(f.ctx, usecase.NewCreateProductReq("Stand", []string{"black"}, nil, nil))
	require.NoError(t, err)

	outbox := &fakeOutboxRepo{store: f.store}
	events, err := outbox.GetAndMarkAsProcessing(f.ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)

	for _, ev := range events {
		require.NoError(t, outbox.MarkAsProcessed(f.ctx, ev.ID))
	}
	for _, ev := range f.store.events {
		assert.Equal(t, usecase.Processed, ev.Status, fmt.Sprintf("event %s", ev.EventType))
	}
}
