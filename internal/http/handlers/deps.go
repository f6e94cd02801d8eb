package handlers

import (
	"github.com/gofiber/fiber/v2/middleware/session"

	"handmade/internal/services"
)

type Deps struct {
	State *StateStore
	Sync  *services.SyncService

	PageHandler    *PageHandler
	NavHandler     *NavHandler
	CatalogHandler *CatalogHandler
	InquiryHandler *InquiryHandler
	AuthHandler    *AuthHandler
	AdminHandler   *AdminHandler
	APIHandler     *APIHandler
}

func NewDeps(sync *services.SyncService, auth *services.AuthService, sessions *session.Store) *Deps {
	state := &StateStore{Sessions: sessions}
	return &Deps{
		State:          state,
		Sync:           sync,
		PageHandler:    &PageHandler{State: state, Sync: sync},
		NavHandler:     &NavHandler{State: state},
		CatalogHandler: &CatalogHandler{State: state},
		InquiryHandler: &InquiryHandler{State: state, Sync: sync},
		AuthHandler:    &AuthHandler{State: state, Auth: auth},
		AdminHandler:   &AdminHandler{State: state, Sync: sync},
		APIHandler:     &APIHandler{State: state, Sync: sync},
	}
}
