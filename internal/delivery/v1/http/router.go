package http

import (
	"net/http"

	_ "github.com/DRSN-tech/catalog-backend/docs" // Импорт сгенерированных файлов
	"github.com/DRSN-tech/catalog-backend/internal/cfg"
	"github.com/DRSN-tech/catalog-backend/internal/usecase"
	"github.com/DRSN-tech/catalog-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
	cfg    *cfg.Config
}

func NewRouter(router *chi.Mux, logger logger.Logger, cfg *cfg.Config) *Router {
	return &Router{router: router, logger: logger, cfg: cfg}
}

func (r *Router) Init(catalogUC usecase.CatalogUC, imagesInfra usecase.ImagesInfra) {
	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:"+r.cfg.Http.Port+"/swagger/doc.json"), // ссылка на JSON
	))

	devMode := r.cfg.App.Env == cfg.EnvDevelopment

	r.router.Route("/api/v1", func(v1 chi.Router) {
		v1.Get("/health", healthCheck)

		prHandler := NewProductHandler(catalogUC, imagesInfra, r.logger, devMode, r.cfg.Minio.MaxUploadSize)
		registerProductRoutes(v1, prHandler)

		ctHandler := NewCategoryHandler(catalogUC, r.logger, devMode)
		registerCategoryRoutes(v1, ctHandler)
	})
}

func registerProductRoutes(router chi.Router, prHandler *ProductHandler) {
	router.Route("/products", func(pr chi.Router) {
		pr.Get("/", prHandler.listProducts)
		pr.Post("/", prHandler.createProduct)
		pr.Get("/category/{categoryId}", prHandler.getProductsByCategory)
		pr.Get("/{id}", prHandler.getProduct)
		pr.Put("/{id}", prHandler.updateProduct)
		pr.Delete("/{id}", prHandler.deleteProduct)
	})
}

func registerCategoryRoutes(router chi.Router, ctHandler *CategoryHandler) {
	router.Route("/categories", func(ct chi.Router) {
		ct.Get("/", ctHandler.listCategories)
		ct.Post("/", ctHandler.createCategory)
		ct.Get("/{id}", ctHandler.getCategory)
		ct.Put("/{id}", ctHandler.updateCategory)
		ct.Delete("/{id}", ctHandler.deleteCategory)
	})
}

// healthCheck
//
//	@Summary	Проверка работоспособности сервиса
//	@Tags		system
//	@Produce	json
//	@Success	200	{object}	Response
//	@Router		/health [get]
func healthCheck(w http.ResponseWriter, _ *http.Request) {
	WriteMessage(w, http.StatusOK, "ok")
}
