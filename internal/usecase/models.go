package usecase

import (
	"time"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
)

// CATALOG USECASE

// CreateProductReq — запрос на создание продукта.
// CategoryID == nil означает автосоздание категории с title = имя продукта.
type CreateProductReq struct {
	Name       string
	Colors     []string
	CategoryID *int64
	ImagePath  *string
}

// UpdateProductReq — частичное обновление продукта; nil-поля не изменяются.
type UpdateProductReq struct {
	ID         int64
	Name       *string
	Colors     []string
	CategoryID *int64
	ImagePath  *string
}

// CreateCategoryReq — запрос на создание категории.
type CreateCategoryReq struct {
	Title  string
	Header *string
}

// UpdateCategoryReq — частичное обновление категории; nil-поля не изменяются.
type UpdateCategoryReq struct {
	ID     int64
	Title  *string
	Header *string
}

// ProductWithCategory — продукт вместе с его категорией.
type ProductWithCategory struct {
	Product  *domain.Product
	Category *domain.Category
}

// CategoryWithProducts — категория вместе со списком её продуктов.
type CategoryWithProducts struct {
	Category *domain.Category
	Products []domain.Product
}

// INFRASTRUCTURE

// ProductImage представляет изображение, загруженное через multipart/form-data.
type ProductImage struct {
	Data     []byte // байты изображения
	MimeType string // Content-Type из multipart (image/jpeg)
	Size     int64  // фактический размер в байтах
	Name     string // оригинальное имя файла (для логов)
}

// UploadImageReq — запрос на загрузку изображения в объектное хранилище.
type UploadImageReq struct {
	Scope string // products | categories, префикс ключа объекта
	Image ProductImage
}

// UploadImageRes — результат загрузки: ключ объекта и публичный URL.
type UploadImageRes struct {
	Key string
	URL string
}

type WriteRawMessageReq struct {
	EntityID int64
	Payload  []byte
}

// OUTBOX

type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
)

type OutboxEventType string

const (
	ProductCreated      OutboxEventType = "product.created"
	ProductUpdated      OutboxEventType = "product.updated"
	ProductDeleted      OutboxEventType = "product.deleted"
	CategoryProvisioned OutboxEventType = "category.provisioned"
	CategoryDeleted     OutboxEventType = "category.deleted"
)

// OutboxEvent — запись transactional outbox для публикации в Kafka.
type OutboxEvent struct {
	ID          int64
	EventID     string // uuid
	EventType   OutboxEventType
	EntityID    int64
	Payload     []byte // JSON
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// MAPPERS

func NewCreateProductReq(name string, colors []string, categoryID *int64, imagePath *string) *CreateProductReq {
	return &CreateProductReq{
		Name:       name,
		Colors:     colors,
		CategoryID: categoryID,
		ImagePath:  imagePath,
	}
}

func NewCreateCategoryReq(title string, header *string) *CreateCategoryReq {
	return &CreateCategoryReq{
		Title:  title,
		Header: header,
	}
}

func NewProductWithCategory(product *domain.Product, category *domain.Category) *ProductWithCategory {
	return &ProductWithCategory{
		Product:  product,
		Category: category,
	}
}

func NewCategoryWithProducts(category *domain.Category, products []domain.Product) *CategoryWithProducts {
	return &CategoryWithProducts{
		Category: category,
		Products: products,
	}
}

func NewProductImage(data []byte, mimeType string, size int64, name string) *ProductImage {
	return &ProductImage{
		Data:     data,
		MimeType: mimeType,
		Size:     size,
		Name:     name,
	}
}

func NewUploadImageReq(scope string, image ProductImage) *UploadImageReq {
	return &UploadImageReq{
		Scope: scope,
		Image: image,
	}
}

func NewUploadImageRes(key, url string) *UploadImageRes {
	return &UploadImageRes{
		Key: key,
		URL: url,
	}
}

func NewWriteRawMessageReq(entityID int64, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		EntityID: entityID,
		Payload:  payload,
	}
}

func NewOutboxEvent(eventID string, eventType OutboxEventType, entityID int64, payload []byte) *OutboxEvent {
	return &OutboxEvent{
		EventID:   eventID,
		EventType: eventType,
		EntityID:  entityID,
		Payload:   payload,
		Status:    Pending,
		CreatedAt: time.Now().UTC(),
	}
}
