package api

import (
	"net/http"

	"github.com/jmallard/manifest/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain) {
	routes.Register(mux, domain.Sessions.Handler().Routes())
	routes.Register(mux, domain.RefData.Handler().Routes()...)
}
