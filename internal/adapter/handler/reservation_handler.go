package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Mokshithanaidu/goreservee/internal/core/domain"
	"github.com/Mokshithanaidu/goreservee/internal/core/services"
)

type ReservationHandler struct {
	svc *services.ReservationService
}

func NewReservationHandler(svc *services.ReservationService) *ReservationHandler {
	return &ReservationHandler{svc: svc}
}

type registerUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type bookTicketRequest struct {
	UserID      string `json:"user_id"`
	TransportID string `json:"transport_id"`
	SeatNumber  int    `json:"seat_number"`
}

type cancelTicketRequest struct {
	TicketID string `json:"ticket_id"`
}

type transportResponse struct {
	TransportID    string  `json:"transport_id"`
	TransportType  string  `json:"transport_type"`
	Source         string  `json:"source"`
	Destination    string  `json:"destination"`
	TotalSeats     int     `json:"total_seats"`
	AvailableSeats int     `json:"available_seats"`
	BasePrice      float64 `json:"base_price"`
	Category       string  `json:"category"`
}

func toTransportResponse(t *domain.Transport) transportResponse {
	return transportResponse{
		TransportID:    t.ID,
		TransportType:  string(t.Kind),
		Source:         t.Source,
		Destination:    t.Destination,
		TotalSeats:     t.TotalSeats,
		AvailableSeats: t.AvailableCount(),
		BasePrice:      t.BasePrice,
		Category:       t.Category,
	}
}

func (h *ReservationHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req registerUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	user := h.svc.RegisterUser(r.Context(), req.Name, req.Email, req.Phone)

	writeJSON(w, http.StatusCreated, user)
}

func (h *ReservationHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	user, err := h.svc.GetUser(r.URL.Query().Get("user_id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// Transports searches by route when both query params are set and lists
// the whole catalog otherwise.
func (h *ReservationHandler) Transports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	source := r.URL.Query().Get("source")
	destination := r.URL.Query().Get("destination")

	var transports []*domain.Transport
	if source != "" && destination != "" {
		transports = h.svc.SearchTransports(source, destination)
	} else {
		transports = h.svc.AllTransports()
	}

	result := make([]transportResponse, 0, len(transports))
	for _, t := range transports {
		result = append(result, toTransportResponse(t))
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *ReservationHandler) Seats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	report, err := h.svc.AvailableSeats(r.Context(), r.URL.Query().Get("transport_id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func (h *ReservationHandler) BookTicket(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req bookTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	ticket, err := h.svc.BookTicket(r.Context(), req.UserID, req.TransportID, req.SeatNumber)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, ticket)
}

func (h *ReservationHandler) CancelTicket(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req cancelTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	if err := h.svc.CancelTicket(r.Context(), req.TicketID); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

func (h *ReservationHandler) GetTicket(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	ticket, err := h.svc.GetTicket(r.URL.Query().Get("ticket_id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ticket)
}

func (h *ReservationHandler) UserBookings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	tickets := h.svc.GetUserBookings(r.URL.Query().Get("user_id"))
	if tickets == nil {
		tickets = []*domain.Ticket{}
	}

	writeJSON(w, http.StatusOK, tickets)
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrSeatUnavailable):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrTransportNotFound),
		errors.Is(err, domain.ErrTicketNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
