package domain

import "time"

// Category описывает категорию продукта.
// Header — URL изображения-обложки категории, может отсутствовать.
type Category struct {
	ID        int64
	Title     string
	Header    *string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

func NewCategory(title string, header *string) *Category {
	return &Category{
		Title:  title,
		Header: header,
	}
}
