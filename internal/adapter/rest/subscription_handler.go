package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/adapter/rest/middleware"
	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/adapter/rest/response"
	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/platform/logger"
	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/subscription/domain"
)

type SubscriptionService interface {
	Plans() []domain.PlanSpec
	Get(ctx context.Context, dealerID string) (*domain.Subscription, error)
	Subscribe(ctx context.Context, dealerID string, plan domain.Plan) (*domain.Subscription, error)
	Cancel(ctx context.Context, dealerID string) error
}

type SubscriptionHandler struct {
	subscriptions SubscriptionService
	now           func() time.Time
	logger        *logger.Logger
}

func NewSubscriptionHandler(subscriptions SubscriptionService, log *logger.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptions: subscriptions, now: time.Now, logger: log.Named("SubscriptionHandler")}
}

type subscribeRequest struct {
	Plan string `json:"plan"`
}

func (h *SubscriptionHandler) Plans(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.Envelope{Success: true, Data: h.subscriptions.Plans()})
}

func (h *SubscriptionHandler) Mine(w http.ResponseWriter, r *http.Request) {
	dealerID, _ := middleware.UserIDFromContext(r.Context())
	sub, err := h.subscriptions.Get(r.Context(), dealerID)
	if err != nil {
		writeError(w, h.logger, "GetSubscription", err)
		return
	}
	response.JSON(w, http.StatusOK, response.Envelope{Success: true, Data: toSubscriptionDTO(sub, h.now())})
}

func (h *SubscriptionHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, "Subscribe", err)
		return
	}
	dealerID, _ := middleware.UserIDFromContext(r.Context())
	sub, err := h.subscriptions.Subscribe(r.Context(), dealerID, domain.Plan(req.Plan))
	if err != nil {
		writeError(w, h.logger, "Subscribe", err)
		return
	}
	response.JSON(w, http.StatusCreated, response.Envelope{
		Success: true,
		Message: "Subscription activated",
		Data:    toSubscriptionDTO(sub, h.now()),
	})
}

func (h *SubscriptionHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	dealerID, _ := middleware.UserIDFromContext(r.Context())
	if err := h.subscriptions.Cancel(r.Context(), dealerID); err != nil {
		writeError(w, h.logger, "CancelSubscription", err)
		return
	}
	response.JSON(w, http.StatusOK, response.Envelope{Success: true, Message: "Subscription cancelled"})
}
