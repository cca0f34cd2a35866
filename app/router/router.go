package router

import (
	"net/http"

	"github.com/gorilla/mux"

	"carnes-boutique/app/controller"
	"carnes-boutique/logger"
)

type Controllers struct {
	Catalog *controller.CatalogController
	Order   *controller.OrderController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// SetupRoutes builds the HTTP router. Every request goes through the request logger.
func SetupRoutes(controllers *Controllers) *mux.Router {
	r := mux.NewRouter()
	r.Use(logger.RequestLogger)

	r.HandleFunc("/ping", pingHandler).Methods(http.MethodGet)

	// Catalog import
	r.HandleFunc("/admin/catalog/import", controllers.Catalog.Import).Methods(http.MethodPost)
	r.HandleFunc("/admin/catalog/import/preview", controllers.Catalog.Preview).Methods(http.MethodPost)
	r.HandleFunc("/admin/catalog/import/drive", controllers.Catalog.ImportFromDrive).Methods(http.MethodPost)

	// Catalog browsing; fixed paths are registered before /{id}
	r.HandleFunc("/admin/catalog", controllers.Catalog.List).Methods(http.MethodGet)
	r.HandleFunc("/admin/catalog/snapshots", controllers.Catalog.Snapshots).Methods(http.MethodGet)
	r.HandleFunc("/admin/catalog/images/sync", controllers.Catalog.SyncImages).Methods(http.MethodPost)
	r.HandleFunc("/admin/catalog/images/warm", controllers.Catalog.WarmImages).Methods(http.MethodPost)
	r.HandleFunc("/admin/catalog/items/{id}/image", controllers.Catalog.ItemImage).Methods(http.MethodGet)
	r.HandleFunc("/admin/catalog/{id}", controllers.Catalog.Get).Methods(http.MethodGet)

	// Regional menus
	r.HandleFunc("/admin/menu", controllers.Catalog.Menu).Methods(http.MethodGet)
	r.HandleFunc("/admin/menu/render", controllers.Catalog.RenderMenu).Methods(http.MethodGet)

	// Order reconciliation
	r.HandleFunc("/admin/orders/recalculate", controllers.Order.Recalculate).Methods(http.MethodPost)
	r.HandleFunc("/admin/orders/recalculate/send", controllers.Order.Send).Methods(http.MethodPost)

	return r
}
