package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Prasi710/Turffy/internal/bookings/service"
	"github.com/Prasi710/Turffy/internal/bookings/validator"
	apperrors "github.com/Prasi710/Turffy/pkg/errors"
	httputil "github.com/Prasi710/Turffy/pkg/http"
	"github.com/Prasi710/Turffy/pkg/logger"
	"github.com/Prasi710/Turffy/pkg/middleware"
	"github.com/Prasi710/Turffy/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type BookingHandler struct {
	service service.BookingService
	auth    func(httprouter.Handle) httprouter.Handle
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, auth func(httprouter.Handle) httprouter.Handle, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		auth:    auth,
		log:     log,
	}
}

// bookingIDList tolerates the legacy single-string form of bookingIds
// alongside the array form.
type bookingIDList []string

func (l *bookingIDList) UnmarshalJSON(data []byte) error {
	var many []string
	if err := json.Unmarshal(data, &many); err == nil {
		*l = many
		return nil
	}

	var one string
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*l = bookingIDList{one}
	return nil
}

type verifyRequest struct {
	OrderID    string        `json:"razorpay_order_id"`
	PaymentID  string        `json:"razorpay_payment_id"`
	Signature  string        `json:"razorpay_signature"`
	BookingIDs bookingIDList `json:"bookingIds"`
}

type availabilityResponse struct {
	Slots []*model.Slot `json:"slots"`
	Date  string        `json:"date"`
}

type verifyResponse struct {
	Success  bool             `json:"success"`
	Bookings []*model.Booking `json:"bookings"`
}

type bookingListResponse struct {
	Bookings []*model.Booking `json:"bookings"`
}

func (h *BookingHandler) Availability(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	slots, err := h.service.Availability(r.Context(), ps.ByName("turfId"), date)
	if err != nil {
		h.writeError(w, "Availability", err)
		return
	}

	if err := httputil.WriteSuccess(w, availabilityResponse{
		Slots: slots,
		Date:  date,
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "Availability", "error", err)
	}
}

func (h *BookingHandler) CreateOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.writeError(w, "CreateOrder", apperrors.Unauthorized("Unauthorized"))
		return
	}

	var req validator.HoldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "CreateOrder", apperrors.InvalidInput("Invalid request body"))
		return
	}

	result, err := h.service.CreateHold(r.Context(), userID, &req)
	if err != nil {
		h.writeError(w, "CreateOrder", err)
		return
	}

	if err := httputil.WriteCreated(w, result); err != nil {
		h.log.Error("failed to write success response", "handler", "CreateOrder", "error", err)
	}
}

func (h *BookingHandler) VerifyPayment(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.writeError(w, "VerifyPayment", apperrors.Unauthorized("Unauthorized"))
		return
	}

	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "VerifyPayment", apperrors.InvalidInput("Invalid request body"))
		return
	}

	bookings, err := h.service.Confirm(r.Context(), userID, &validator.ConfirmRequest{
		OrderID:    req.OrderID,
		PaymentID:  req.PaymentID,
		Signature:  req.Signature,
		BookingIDs: req.BookingIDs,
	})
	if err != nil {
		h.writeError(w, "VerifyPayment", err)
		return
	}

	if err := httputil.WriteSuccess(w, verifyResponse{
		Success:  true,
		Bookings: bookings,
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "VerifyPayment", "error", err)
	}
}

func (h *BookingHandler) MyBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.writeError(w, "MyBookings", apperrors.Unauthorized("Unauthorized"))
		return
	}

	bookings, err := h.service.MyBookings(r.Context(), userID)
	if err != nil {
		h.writeError(w, "MyBookings", err)
		return
	}

	if err := httputil.WriteSuccess(w, bookingListResponse{Bookings: bookings}); err != nil {
		h.log.Error("failed to write success response", "handler", "MyBookings", "error", err)
	}
}

func (h *BookingHandler) writeError(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "error", writeErr)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/slots/:turfId", h.Availability)
	router.POST("/api/payment/create-order", h.auth(h.CreateOrder))
	router.POST("/api/payment/verify", h.auth(h.VerifyPayment))
	router.GET("/api/bookings", h.auth(h.MyBookings))
}
