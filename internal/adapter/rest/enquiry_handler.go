package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/adapter/rest/middleware"
	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/adapter/rest/response"
	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/enquiry/domain"
	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/platform/logger"
)

type EnquiryService interface {
	Create(ctx context.Context, userID, propertyID, message string) (*domain.Enquiry, error)
	Get(ctx context.Context, id string, actor domain.Actor) (*domain.Enquiry, error)
	ListAll(ctx context.Context, actor domain.Actor) ([]*domain.Enquiry, error)
	ListReceived(ctx context.Context, dealerID string) ([]*domain.Enquiry, error)
	ListSent(ctx context.Context, userID string) ([]*domain.Enquiry, error)
	UpdateStatus(ctx context.Context, id string, actor domain.Actor, status domain.Status) (*domain.Enquiry, error)
	Delete(ctx context.Context, id string, actor domain.Actor) error
}

type EnquiryHandler struct {
	enquiries EnquiryService
	logger    *logger.Logger
}

func NewEnquiryHandler(enquiries EnquiryService, log *logger.Logger) *EnquiryHandler {
	return &EnquiryHandler{enquiries: enquiries, logger: log.Named("EnquiryHandler")}
}

type createEnquiryRequest struct {
	PropertyID string `json:"property_id"`
	Message    string `json:"message"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func actorFrom(r *http.Request) domain.Actor {
	id, _ := middleware.UserIDFromContext(r.Context())
	return domain.Actor{ID: id, Admin: middleware.RoleFromContext(r.Context()) == middleware.RoleAdmin}
}

func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid request body", errBadRequest)
	}
	return nil
}

func (h *EnquiryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createEnquiryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, "CreateEnquiry", err)
		return
	}
	actor := actorFrom(r)
	e, err := h.enquiries.Create(r.Context(), actor.ID, req.PropertyID, req.Message)
	if err != nil {
		writeError(w, h.logger, "CreateEnquiry", err)
		return
	}
	response.JSON(w, http.StatusCreated, response.Envelope{Success: true, Message: "Enquiry sent successfully", Data: toEnquiryDTO(e)})
}

func (h *EnquiryHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	list, err := h.enquiries.ListAll(r.Context(), actorFrom(r))
	if err != nil {
		writeError(w, h.logger, "ListEnquiries", err)
		return
	}
	response.JSON(w, http.StatusOK, response.Envelope{Success: true, Data: toEnquiryDTOs(list)})
}

func (h *EnquiryHandler) ListReceived(w http.ResponseWriter, r *http.Request) {
	list, err := h.enquiries.ListReceived(r.Context(), actorFrom(r).ID)
	if err != nil {
		writeError(w, h.logger, "ListReceivedEnquiries", err)
		return
	}
	response.JSON(w, http.StatusOK, response.Envelope{Success: true, Data: toEnquiryDTOs(list)})
}

func (h *EnquiryHandler) ListSent(w http.ResponseWriter, r *http.Request) {
	list, err := h.enquiries.ListSent(r.Context(), actorFrom(r).ID)
	if err != nil {
		writeError(w, h.logger, "ListSentEnquiries", err)
		return
	}
	response.JSON(w, http.StatusOK, response.Envelope{Success: true, Data: toEnquiryDTOs(list)})
}

func (h *EnquiryHandler) Get(w http.ResponseWriter, r *http.Request) {
	e, err := h.enquiries.Get(r.Context(), chi.URLParam(r, "id"), actorFrom(r))
	if err != nil {
		writeError(w, h.logger, "GetEnquiry", err)
		return
	}
	response.JSON(w, http.StatusOK, response.Envelope{Success: true, Data: toEnquiryDTO(e)})
}

func (h *EnquiryHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, "UpdateEnquiryStatus", err)
		return
	}
	e, err := h.enquiries.UpdateStatus(r.Context(), chi.URLParam(r, "id"), actorFrom(r), domain.Status(req.Status))
	if err != nil {
		writeError(w, h.logger, "UpdateEnquiryStatus", err)
		return
	}
	response.JSON(w, http.StatusOK, response.Envelope{Success: true, Message: "Enquiry updated successfully", Data: toEnquiryDTO(e)})
}

func (h *EnquiryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.enquiries.Delete(r.Context(), chi.URLParam(r, "id"), actorFrom(r)); err != nil {
		writeError(w, h.logger, "DeleteEnquiry", err)
		return
	}
	response.JSON(w, http.StatusOK, response.Envelope{Success: true, Message: "Enquiry deleted successfully"})
}
