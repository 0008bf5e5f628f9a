package rest

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/adapter/rest/response"
	enquirydomain "github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/enquiry/domain"
	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/listing/domain"
	subdomain "github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/subscription/domain"
	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/platform/logger"
)

var errBadRequest = errors.New("bad request")

// statusFor maps a domain error to its HTTP status and whether the error text
// may be shown to the client.
func statusFor(err error) (int, bool) {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, enquirydomain.ErrValidation),
		errors.Is(err, subdomain.ErrInvalidPlan):
		return http.StatusBadRequest, true
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, enquirydomain.ErrNotFound),
		errors.Is(err, subdomain.ErrNotFound):
		return http.StatusNotFound, true
	case errors.Is(err, domain.ErrForbidden),
		errors.Is(err, enquirydomain.ErrForbidden),
		errors.Is(err, domain.ErrSubscriptionRequired):
		return http.StatusForbidden, true
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, true
	}
	return http.StatusInternalServerError, false
}

// writeError logs err and writes the matching envelope. Text of server-side
// failures stays in the log.
func writeError(w http.ResponseWriter, log *logger.Logger, op string, err error) {
	status, public := statusFor(err)
	if !public {
		log.Error(op+" failed", zap.Error(err))
		response.Error(w, status, "internal server error")
		return
	}
	log.Debug(op+" rejected", zap.Int("status", status), zap.Error(err))
	response.Error(w, status, err.Error())
}
