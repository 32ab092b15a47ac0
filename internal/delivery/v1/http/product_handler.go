package http

import (
	"encoding/json"
	"net/http"

	"github.com/DRSN-tech/catalog-backend/internal/usecase"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/DRSN-tech/catalog-backend/pkg/logger"
)

const (
	maxTotalRequestSize = 32 << 20
	maxMemory           = 16 << 20
)

type ProductHandler struct {
	catalogUC     usecase.CatalogUC
	imagesInfra   usecase.ImagesInfra
	logger        logger.Logger
	devMode       bool
	maxUploadSize int64
}

func NewProductHandler(catalogUC usecase.CatalogUC, imagesInfra usecase.ImagesInfra,
	logger logger.Logger, devMode bool, maxUploadSize int64) *ProductHandler {
	return &ProductHandler{
		catalogUC:     catalogUC,
		imagesInfra:   imagesInfra,
		logger:        logger,
		devMode:       devMode,
		maxUploadSize: maxUploadSize,
	}
}

// productForm — нормализованное тело запроса на создание/обновление товара.
// JSON и multipart сводятся к нему до вызова usecase.
type productForm struct {
	name       string
	nameSet    bool
	colors     []string
	categoryID *int64
	imagePath  *string
	// ключ объекта, загруженного в рамках этого запроса (для компенсации)
	uploadedKey string
}

// listProducts
//
//	@Summary		Список товаров
//	@Description	Возвращает все товары, новые первыми
//	@Tags			products
//	@Produce		json
//	@Success		200	{object}	Response{data=[]ProductResponse}
//	@Failure		500	{object}	Response
//	@Router			/products [get]
func (p *ProductHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := p.catalogUC.ListProducts(r.Context())
	if err != nil {
		p.logger.Errorf(err, "list products failed")
		WriteError(w, err, p.devMode)
		return
	}

	WriteList(w, http.StatusOK, toArrProductResponse(products), len(products))
}

// getProduct
//
//	@Summary		Товар по ID
//	@Tags			products
//	@Produce		json
//	@Param			id	path		int	true	"ID товара"
//	@Success		200	{object}	Response{data=ProductResponse}
//	@Failure		400	{object}	Response
//	@Failure		404	{object}	Response
//	@Router			/products/{id} [get]
func (p *ProductHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		WriteError(w, err, p.devMode)
		return
	}

	product, err := p.catalogUC.GetProduct(r.Context(), id)
	if err != nil {
		p.logger.Warnf("get product %d: %s", id, err.Error())
		WriteError(w, err, p.devMode)
		return
	}

	WriteData(w, http.StatusOK, toProductResponse(product))
}

// getProductsByCategory
//
//	@Summary		Товары категории
//	@Tags			products
//	@Produce		json
//	@Param			categoryId	path		int	true	"ID категории"
//	@Success		200			{object}	Response{data=[]ProductResponse}
//	@Failure		400			{object}	Response
//	@Failure		404			{object}	Response
//	@Router			/products/category/{categoryId} [get]
func (p *ProductHandler) getProductsByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := parseIDParam(r, "categoryId")
	if err != nil {
		WriteError(w, err, p.devMode)
		return
	}

	products, err := p.catalogUC.GetProductsByCategory(r.Context(), categoryID)
	if err != nil {
		p.logger.Warnf("products by category %d: %s", categoryID, err.Error())
		WriteError(w, err, p.devMode)
		return
	}

	WriteList(w, http.StatusOK, toArrProductResponse(products), len(products))
}

// createProduct
//
//	@Summary		Создание товара
//	@Description	Принимает application/json или multipart/form-data (поле image — файл изображения).
//	@Description	Без categoryId автоматически создаётся новая категория с названием товара.
//	@Tags			products
//	@Accept			json
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			name		formData	string	false	"Название товара"
//	@Param			colors		formData	string	false	"Цвета: JSON-массив или строка через запятую"
//	@Param			categoryId	formData	int		false	"ID существующей категории"
//	@Param			image		formData	file	false	"Изображение товара"
//	@Success		201	{object}	Response{data=ProductResponse}
//	@Failure		400	{object}	Response
//	@Failure		404	{object}	Response
//	@Router			/products [post]
func (p *ProductHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxTotalRequestSize)

	form, err := p.parseProductRequest(r)
	if err != nil {
		p.logger.Warnf("create product: bad request: %s", err.Error())
		WriteError(w, err, p.devMode)
		return
	}

	req := usecase.NewCreateProductReq(form.name, form.colors, form.categoryID, form.imagePath)
	result, err := p.catalogUC.CreateProduct(r.Context(), req)
	if err != nil {
		p.logger.Warnf("create product: %s", err.Error())
		p.compensateUpload(form)
		WriteError(w, err, p.devMode)
		return
	}

	WriteData(w, http.StatusCreated, toProductWithCategoryResponse(result))
}

// updateProduct
//
//	@Summary		Обновление товара
//	@Description	Частичное обновление; принимает application/json или multipart/form-data.
//	@Tags			products
//	@Accept			json
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			id	path		int	true	"ID товара"
//	@Success		200	{object}	Response{data=ProductResponse}
//	@Failure		400	{object}	Response
//	@Failure		404	{object}	Response
//	@Failure		409	{object}	Response
//	@Router			/products/{id} [put]
func (p *ProductHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxTotalRequestSize)

	id, err := parseIDParam(r, "id")
	if err != nil {
		WriteError(w, err, p.devMode)
		return
	}

	form, err := p.parseProductRequest(r)
	if err != nil {
		p.logger.Warnf("update product %d: bad request: %s", id, err.Error())
		WriteError(w, err, p.devMode)
		return
	}

	req := &usecase.UpdateProductReq{
		ID:         id,
		Colors:     form.colors,
		CategoryID: form.categoryID,
		ImagePath:  form.imagePath,
	}
	if form.nameSet {
		req.Name = &form.name
	}

	product, err := p.catalogUC.UpdateProduct(r.Context(), req)
	if err != nil {
		p.logger.Warnf("update product %d: %s", id, err.Error())
		p.compensateUpload(form)
		WriteError(w, err, p.devMode)
		return
	}

	WriteData(w, http.StatusOK, toProductResponse(product))
}

// deleteProduct
//
//	@Summary		Удаление товара
//	@Description	Удаляет товар; опустевшая категория удаляется вместе с ним.
//	@Tags			products
//	@Produce		json
//	@Param			id	path		int	true	"ID товара"
//	@Success		200	{object}	Response
//	@Failure		400	{object}	Response
//	@Failure		404	{object}	Response
//	@Router			/products/{id} [delete]
func (p *ProductHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		WriteError(w, err, p.devMode)
		return
	}

	if err := p.catalogUC.DeleteProduct(r.Context(), id); err != nil {
		p.logger.Warnf("delete product %d: %s", id, err.Error())
		WriteError(w, err, p.devMode)
		return
	}

	WriteMessage(w, http.StatusOK, "product deleted")
}

// parseProductRequest нормализует JSON- и multipart-запросы к одному виду.
// В multipart-ветке файл image сперва загружается в объектное хранилище,
// а его публичный URL становится imagePath.
func (p *ProductHandler) parseProductRequest(r *http.Request) (*productForm, error) {
	switch {
	case isJSONRequest(r):
		return p.parseProductJSON(r)
	case isMultipartRequest(r):
		return p.parseProductMultipart(r)
	default:
		return nil, e.Wrap(r.Header.Get("Content-Type"), e.ErrExpectedJSONOrMultipart)
	}
}

func (p *ProductHandler) parseProductJSON(r *http.Request) (*productForm, error) {
	var body updateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, e.Wrap(err.Error(), e.ErrExpectedJSONOrMultipart)
	}

	form := &productForm{
		colors:     body.Colors,
		categoryID: body.CategoryID,
		imagePath:  body.ImagePath,
	}
	if body.Name != nil {
		form.name = *body.Name
		form.nameSet = true
	}

	return form, nil
}

func (p *ProductHandler) parseProductMultipart(r *http.Request) (*productForm, error) {
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		return nil, e.Wrap(err.Error(), e.ErrExpectedJSONOrMultipart)
	}

	form := &productForm{}

	if name := r.FormValue("name"); name != "" {
		form.name = name
		form.nameSet = true
	}
	form.colors = parseColorsValue(r.FormValue("colors"))

	categoryID, err := parseOptionalInt64(r.FormValue("categoryId"), e.ErrInvalidCategoryID)
	if err != nil {
		return nil, err
	}
	form.categoryID = categoryID

	if imagePath := r.FormValue("imagePath"); imagePath != "" {
		form.imagePath = &imagePath
	}

	files := r.MultipartForm.File["image"]
	if len(files) == 0 {
		return form, nil
	}

	image, err := readImageFile(files[0], p.maxUploadSize)
	if err != nil {
		return nil, err
	}

	uploaded, err := p.imagesInfra.UploadImage(r.Context(), usecase.NewUploadImageReq("products", *image))
	if err != nil {
		return nil, err
	}

	form.imagePath = &uploaded.URL
	form.uploadedKey = uploaded.Key
	return form, nil
}

// compensateUpload удаляет загруженное изображение, если запись в каталог не состоялась.
func (p *ProductHandler) compensateUpload(form *productForm) {
	if form.uploadedKey != "" {
		p.imagesInfra.CleanupImages([]string{form.uploadedKey})
	}
}
