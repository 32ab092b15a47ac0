package converter

import "time"

// ProductRedisModel представляет продукт в JSON-кэше Redis.
type ProductRedisModel struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	Colors     []string   `json:"colors"`
	ImagePath  *string    `json:"image_path"`
	CategoryID int64      `json:"category_id"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at"`
}
