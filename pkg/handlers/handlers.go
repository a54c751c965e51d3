package handlers

import (
	"twap-book/pkg/obs"
	"twap-book/pkg/sessions"
)

type Handler struct {
	obs      *obs.Client
	sessions *sessions.Registry
}

func New(obs *obs.Client, registry *sessions.Registry) *Handler {
	return &Handler{
		obs:      obs,
		sessions: registry,
	}
}
