package handler

import (
	"net/http"

	"github.com/Prasi710/Turffy/internal/turfs/service"
	httputil "github.com/Prasi710/Turffy/pkg/http"
	"github.com/Prasi710/Turffy/pkg/logger"
	"github.com/Prasi710/Turffy/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type TurfHandler struct {
	service service.TurfService
	log     *logger.Logger
}

func NewTurfHandler(service service.TurfService, log *logger.Logger) *TurfHandler {
	return &TurfHandler{
		service: service,
		log:     log,
	}
}

type turfListResponse struct {
	Turfs []*model.Turf `json:"turfs"`
}

type turfDetailResponse struct {
	Turf *model.Turf `json:"turf"`
}

type citiesResponse struct {
	Cities []string `json:"cities"`
}

func (h *TurfHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	turfs, err := h.service.List(r.Context(), r.URL.Query().Get("city"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, turfListResponse{Turfs: turfs}); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "error", err)
	}
}

func (h *TurfHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	turf, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, turfDetailResponse{Turf: turf}); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "error", err)
	}
}

func (h *TurfHandler) Cities(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	cities, err := h.service.Cities(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Cities", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, citiesResponse{Cities: cities}); err != nil {
		h.log.Error("failed to write success response", "handler", "Cities", "error", err)
	}
}

func (h *TurfHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/turfs", h.List)
	router.GET("/api/turfs/:id", h.GetByID)
	router.GET("/api/cities", h.Cities)
}
