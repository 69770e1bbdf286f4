package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Prasi710/Turffy/internal/auth/service"
	apperrors "github.com/Prasi710/Turffy/pkg/errors"
	httputil "github.com/Prasi710/Turffy/pkg/http"
	"github.com/Prasi710/Turffy/pkg/logger"
	"github.com/Prasi710/Turffy/pkg/middleware"
	"github.com/Prasi710/Turffy/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type AuthHandler struct {
	service service.AuthService
	auth    func(httprouter.Handle) httprouter.Handle
	log     *logger.Logger
}

func NewAuthHandler(service service.AuthService, auth func(httprouter.Handle) httprouter.Handle, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		auth:    auth,
		log:     log,
	}
}

type sendCodeRequest struct {
	Mobile string `json:"mobile"`
}

type sendCodeResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type verifyCodeRequest struct {
	Mobile string `json:"mobile"`
	OTP    string `json:"otp"`
}

type loginResponse struct {
	Success bool        `json:"success"`
	Token   string      `json:"token"`
	User    *model.User `json:"user"`
}

type profileResponse struct {
	Success bool        `json:"success"`
	User    *model.User `json:"user"`
}

func (h *AuthHandler) SendCode(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req sendCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "SendCode", apperrors.InvalidInput("Invalid request body"))
		return
	}

	if err := h.service.SendCode(r.Context(), req.Mobile); err != nil {
		h.writeError(w, "SendCode", err)
		return
	}

	if err := httputil.WriteSuccess(w, sendCodeResponse{
		Success: true,
		Message: "OTP sent successfully",
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "SendCode", "error", err)
	}
}

func (h *AuthHandler) VerifyCode(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req verifyCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "VerifyCode", apperrors.InvalidInput("Invalid request body"))
		return
	}

	bearer, user, err := h.service.VerifyCode(r.Context(), req.Mobile, req.OTP)
	if err != nil {
		h.writeError(w, "VerifyCode", err)
		return
	}

	if err := httputil.WriteSuccess(w, loginResponse{
		Success: true,
		Token:   bearer,
		User:    user,
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "VerifyCode", "error", err)
	}
}

func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.writeError(w, "GetProfile", apperrors.Unauthorized("Unauthorized"))
		return
	}

	user, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		h.writeError(w, "GetProfile", err)
		return
	}

	if err := httputil.WriteSuccess(w, profileResponse{
		Success: true,
		User:    user,
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "GetProfile", "error", err)
	}
}

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.writeError(w, "UpdateProfile", apperrors.Unauthorized("Unauthorized"))
		return
	}

	var update model.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.writeError(w, "UpdateProfile", apperrors.InvalidInput("Invalid request body"))
		return
	}

	user, err := h.service.UpdateProfile(r.Context(), userID, &update)
	if err != nil {
		h.writeError(w, "UpdateProfile", err)
		return
	}

	if err := httputil.WriteSuccess(w, profileResponse{
		Success: true,
		User:    user,
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "UpdateProfile", "error", err)
	}
}

func (h *AuthHandler) writeError(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "error", writeErr)
	}
}

func (h *AuthHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/auth/send-otp", h.SendCode)
	router.POST("/api/auth/verify-otp", h.VerifyCode)
	router.GET("/api/profile", h.auth(h.GetProfile))
	router.PUT("/api/profile", h.auth(h.UpdateProfile))
}
