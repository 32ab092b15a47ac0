package domain

import "time"

// Product описывает продукт каталога.
// Colors — упорядоченный список цветовых вариантов (порядок — порядок отображения).
type Product struct {
	ID         int64
	Name       string
	Colors     []string
	ImagePath  *string
	CategoryID int64
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

func NewProduct(name string, colors []string, categoryID int64, imagePath *string) *Product {
	return &Product{
		Name:       name,
		Colors:     colors,
		CategoryID: categoryID,
		ImagePath:  imagePath,
	}
}
