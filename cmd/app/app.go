package main

import "github.com/DRSN-tech/catalog-backend/internal/app"

//	@title			Catalog Backend API
//	@version		1.0
//	@description	REST API каталога: товары, категории, изображения.
//	@BasePath		/api/v1
func main() {
	app.Run()
}
