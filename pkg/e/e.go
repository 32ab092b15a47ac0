package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// 400 Bad Request
	ErrProductNameRequired     = fmt.Errorf("product name is required")
	ErrNameTooLong             = fmt.Errorf("name must be at most 255 characters")
	ErrNoColors                = fmt.Errorf("at least one color is required")
	ErrEmptyColor              = fmt.Errorf("color must not be empty")
	ErrCategoryTitleRequired   = fmt.Errorf("category title is required")
	ErrInvalidCategoryID       = fmt.Errorf("category id must be a positive integer")
	ErrInvalidID               = fmt.Errorf("id must be a positive integer")
	ErrEmptyUpdate             = fmt.Errorf("at least one field must be provided")
	ErrExpectedJSONOrMultipart = fmt.Errorf("expected application/json or multipart/form-data")
	ErrFileTooLarge            = fmt.Errorf("file is too large")
	ErrUnsupportedMediaType    = fmt.Errorf("unsupported media type")

	// 400 Invariant violation
	ErrCategoryNotEmpty = fmt.Errorf("cannot delete category with existing products")

	// 404 Not Found
	ErrProductNotFound  = fmt.Errorf("product not found")
	ErrCategoryNotFound = fmt.Errorf("category not found")

	// 409 Conflict
	ErrCategoryTitleTaken = fmt.Errorf("category with this title already exists")
	ErrProductNameTaken   = fmt.Errorf("product with this name already exists")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")

	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
