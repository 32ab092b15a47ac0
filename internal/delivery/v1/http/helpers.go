package http

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/DRSN-tech/catalog-backend/internal/usecase"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/go-chi/chi/v5"
)

// ToHTTPResponse сопоставляет ошибку usecase-слоя с HTTP-статусом и сообщением для клиента.
// Неизвестные ошибки схлопываются в 500 с обезличенным сообщением.
func ToHTTPResponse(err error) (int, string) {
	switch {
	// 400: ошибки валидации
	case errors.Is(err, e.ErrProductNameRequired),
		errors.Is(err, e.ErrNameTooLong),
		errors.Is(err, e.ErrNoColors),
		errors.Is(err, e.ErrEmptyColor),
		errors.Is(err, e.ErrCategoryTitleRequired),
		errors.Is(err, e.ErrInvalidCategoryID),
		errors.Is(err, e.ErrInvalidID),
		errors.Is(err, e.ErrEmptyUpdate),
		errors.Is(err, e.ErrExpectedJSONOrMultipart),
		errors.Is(err, e.ErrFileTooLarge),
		errors.Is(err, e.ErrUnsupportedMediaType):
		return http.StatusBadRequest, unwrapSentinel(err)

	// 400: нарушение инварианта каталога
	case errors.Is(err, e.ErrCategoryNotEmpty):
		return http.StatusBadRequest, e.ErrCategoryNotEmpty.Error()

	// 404
	case errors.Is(err, e.ErrProductNotFound):
		return http.StatusNotFound, e.ErrProductNotFound.Error()
	case errors.Is(err, e.ErrCategoryNotFound):
		return http.StatusNotFound, e.ErrCategoryNotFound.Error()

	// 409
	case errors.Is(err, e.ErrCategoryTitleTaken):
		return http.StatusConflict, e.ErrCategoryTitleTaken.Error()
	case errors.Is(err, e.ErrProductNameTaken):
		return http.StatusConflict, e.ErrProductNameTaken.Error()

	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

// unwrapSentinel возвращает текст последней ошибки в цепочке — без внутренних префиксов Wrap.
func unwrapSentinel(err error) string {
	for {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err.Error()
		}
		err = unwrapped
	}
}

// WriteError пишет конверт с ошибкой; detail добавляет исходную цепочку ошибки в поле stack (только development).
func WriteError(w http.ResponseWriter, err error, includeStack bool) {
	code, msg := ToHTTPResponse(err)

	body := &ErrorBody{Message: msg}
	if includeStack {
		body.Stack = err.Error()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(&Response{Success: false, Error: body})
}

// WriteData пишет успешный конверт с данными.
func WriteData(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(&Response{Success: true, Data: data})
}

// WriteList пишет успешный конверт со списком и количеством элементов.
func WriteList(w http.ResponseWriter, status int, data interface{}, count int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(&Response{Success: true, Data: data, Count: &count})
}

// WriteMessage пишет успешный конверт с текстовым сообщением.
func WriteMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(&Response{Success: true, Message: message})
}

// parseIDParam извлекает положительный целочисленный URL-параметр.
func parseIDParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, e.Wrap(raw, e.ErrInvalidID)
	}

	return id, nil
}

// isJSONRequest и isMultipartRequest различают два поддерживаемых формата тела.
func isJSONRequest(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}

func isMultipartRequest(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

// parseColorsValue разбирает значение colors из form-data:
// JSON-массив строк либо строка с разделителем-запятой.
func parseColorsValue(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	if strings.HasPrefix(raw, "[") {
		var colors []string
		if err := json.Unmarshal([]byte(raw), &colors); err == nil {
			return colors
		}
	}

	parts := strings.Split(raw, ",")
	colors := make([]string, 0, len(parts))
	for _, part := range parts {
		colors = append(colors, strings.TrimSpace(part))
	}
	return colors
}

// parseOptionalInt64 разбирает опциональное числовое значение формы.
func parseOptionalInt64(raw string, sentinel error) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	val, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || val <= 0 {
		return nil, e.Wrap(raw, sentinel)
	}

	return &val, nil
}

// readImageFile читает multipart-файл в память с контролем размера.
func readImageFile(fh *multipart.FileHeader, maxSize int64) (*usecase.ProductImage, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, e.ErrInternalServerError
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxSize+1))
	if err != nil {
		return nil, e.ErrInternalServerError
	}
	if int64(len(data)) > maxSize {
		return nil, e.Wrap(fh.Filename, e.ErrFileTooLarge)
	}

	mimeType := http.DetectContentType(data[:min(len(data), 512)])
	return usecase.NewProductImage(data, mimeType, int64(len(data)), fh.Filename), nil
}
