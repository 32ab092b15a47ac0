package http

import (
	"encoding/json"
	"net/http"

	"github.com/DRSN-tech/catalog-backend/internal/usecase"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/DRSN-tech/catalog-backend/pkg/logger"
)

type CategoryHandler struct {
	catalogUC usecase.CatalogUC
	logger    logger.Logger
	devMode   bool
}

func NewCategoryHandler(catalogUC usecase.CatalogUC, logger logger.Logger, devMode bool) *CategoryHandler {
	return &CategoryHandler{
		catalogUC: catalogUC,
		logger:    logger,
		devMode:   devMode,
	}
}

// listCategories
//
//	@Summary		Список категорий
//	@Description	Возвращает все категории в алфавитном порядке
//	@Tags			categories
//	@Produce		json
//	@Success		200	{object}	Response{data=[]CategoryResponse}
//	@Failure		500	{object}	Response
//	@Router			/categories [get]
func (c *CategoryHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := c.catalogUC.ListCategories(r.Context())
	if err != nil {
		c.logger.Errorf(err, "list categories failed")
		WriteError(w, err, c.devMode)
		return
	}

	WriteList(w, http.StatusOK, toArrCategoryResponse(categories), len(categories))
}

// getCategory
//
//	@Summary		Категория по ID
//	@Description	Возвращает категорию вместе с её товарами
//	@Tags			categories
//	@Produce		json
//	@Param			id	path		int	true	"ID категории"
//	@Success		200	{object}	Response{data=CategoryResponse}
//	@Failure		400	{object}	Response
//	@Failure		404	{object}	Response
//	@Router			/categories/{id} [get]
func (c *CategoryHandler) getCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		WriteError(w, err, c.devMode)
		return
	}

	category, err := c.catalogUC.GetCategory(r.Context(), id)
	if err != nil {
		c.logger.Warnf("get category %d: %s", id, err.Error())
		WriteError(w, err, c.devMode)
		return
	}

	WriteData(w, http.StatusOK, toCategoryWithProductsResponse(category))
}

// createCategory
//
//	@Summary		Создание категории
//	@Tags			categories
//	@Accept			json
//	@Produce		json
//	@Success		201	{object}	Response{data=CategoryResponse}
//	@Failure		400	{object}	Response
//	@Failure		409	{object}	Response
//	@Router			/categories [post]
func (c *CategoryHandler) createCategory(w http.ResponseWriter, r *http.Request) {
	var body createCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteError(w, e.Wrap(err.Error(), e.ErrExpectedJSONOrMultipart), c.devMode)
		return
	}

	category, err := c.catalogUC.CreateCategory(r.Context(), usecase.NewCreateCategoryReq(body.Title, body.Header))
	if err != nil {
		c.logger.Warnf("create category: %s", err.Error())
		WriteError(w, err, c.devMode)
		return
	}

	WriteData(w, http.StatusCreated, toCategoryResponse(category))
}

// updateCategory
//
//	@Summary		Обновление категории
//	@Description	Частичное обновление названия и/или изображения категории
//	@Tags			categories
//	@Accept			json
//	@Produce		json
//	@Param			id	path		int	true	"ID категории"
//	@Success		200	{object}	Response{data=CategoryResponse}
//	@Failure		400	{object}	Response
//	@Failure		404	{object}	Response
//	@Failure		409	{object}	Response
//	@Router			/categories/{id} [put]
func (c *CategoryHandler) updateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		WriteError(w, err, c.devMode)
		return
	}

	var body updateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteError(w, e.Wrap(err.Error(), e.ErrExpectedJSONOrMultipart), c.devMode)
		return
	}

	category, err := c.catalogUC.UpdateCategory(r.Context(), &usecase.UpdateCategoryReq{
		ID:     id,
		Title:  body.Title,
		Header: body.Header,
	})
	if err != nil {
		c.logger.Warnf("update category %d: %s", id, err.Error())
		WriteError(w, err, c.devMode)
		return
	}

	WriteData(w, http.StatusOK, toCategoryResponse(category))
}

// deleteCategory
//
//	@Summary		Удаление категории
//	@Description	Удаляет только пустую категорию; с товарами — 400
//	@Tags			categories
//	@Produce		json
//	@Param			id	path		int	true	"ID категории"
//	@Success		200	{object}	Response
//	@Failure		400	{object}	Response
//	@Failure		404	{object}	Response
//	@Router			/categories/{id} [delete]
func (c *CategoryHandler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		WriteError(w, err, c.devMode)
		return
	}

	if err := c.catalogUC.DeleteCategory(r.Context(), id); err != nil {
		c.logger.Warnf("delete category %d: %s", id, err.Error())
		WriteError(w, err, c.devMode)
		return
	}

	WriteMessage(w, http.StatusOK, "category deleted")
}
