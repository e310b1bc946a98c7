package auth

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/pledge/pkg/decode"
	"github.com/JaimeStill/pledge/pkg/handlers"
	"github.com/JaimeStill/pledge/pkg/routes"
)

type Handler struct {
	sys    System
	logger *slog.Logger
}

func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger,
	}
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Description: "Phone number sign-in and session management",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/code", Handler: h.Code, OpenAPI: Spec.Code},
			{Method: "POST", Pattern: "/verify", Handler: h.Verify, OpenAPI: Spec.Verify},
			{Method: "POST", Pattern: "/refresh", Handler: h.Refresh, OpenAPI: Spec.Refresh},
			{Method: "POST", Pattern: "/logout", Handler: h.Logout, OpenAPI: Spec.Logout},
		},
	}
}

func (h *Handler) Code(w http.ResponseWriter, r *http.Request) {
	cmd, err := decode.JSON[CodeCommand](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.RequestCode(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusAccepted, result)
}

func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	cmd, err := decode.JSON[VerifyCommand](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.Verify(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	cmd, err := decode.JSON[RefreshCommand](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.Refresh(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	cmd, err := decode.JSON[RefreshCommand](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if err := h.sys.Logout(r.Context(), cmd); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
