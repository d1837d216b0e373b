package router

import (
	"github.com/go-chi/chi/v5"

	"lodge/internal/handlers/inventory"
)

type DomainHandlers struct {
	Inventory inventory.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Inventory.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
