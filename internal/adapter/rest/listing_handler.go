package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/adapter/rest/middleware"
	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/adapter/rest/response"
	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/listing/domain"
	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/listing/search"
	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/platform/logger"
)

var tracer = otel.Tracer("himalayan-nest/rest")

const (
	imagesField         = "images"
	imagesToDeleteField = "imagesToDelete"
	multipartMemory     = 32 << 20
)

// ListingService is what the listing handlers need from the listing usecase.
type ListingService interface {
	Create(ctx context.Context, authorID string, in domain.CreateInput, images [][]byte) (*domain.Listing, error)
	Update(ctx context.Context, id, authorID string, patch domain.ListingPatch, newImages [][]byte, deleteURLs []string) (*domain.Listing, error)
	Delete(ctx context.Context, id, authorID string) (domain.CleanupReport, error)
	GetByID(ctx context.Context, id string) (*domain.ListingDetail, error)
	GetAll(ctx context.Context, filter domain.Filter) ([]domain.Summary, int64, error)
	GetByAuthor(ctx context.Context, authorID string) ([]*domain.Listing, error)
}

type ListingHandler struct {
	listings       ListingService
	maxUploadBytes int64
	logger         *logger.Logger
}

func NewListingHandler(listings ListingService, maxUploadBytes int64, log *logger.Logger) *ListingHandler {
	return &ListingHandler{listings: listings, maxUploadBytes: maxUploadBytes, logger: log.Named("ListingHandler")}
}

// List handles GET /properties.
func (h *ListingHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := search.Translate(r.URL.Query())
	ctx, span := tracer.Start(r.Context(), "ListingHandler.List", oteltrace.WithAttributes(
		attribute.Int("filter.equalities", len(filter.Equals)),
		attribute.Int("filter.keywords", len(filter.Keywords)),
		attribute.String("filter.sort", string(filter.Sort)),
	))
	defer span.End()

	summaries, total, err := h.listings.GetAll(ctx, filter)
	if err != nil {
		span.RecordError(err)
		writeError(w, h.logger, "List", err)
		return
	}
	response.JSON(w, http.StatusOK, response.Envelope{
		Success:    true,
		Message:    "Properties fetched successfully",
		Properties: toSummaryDTOs(summaries),
		Data:       pageDTO{Total: total, Page: filter.Page, Limit: filter.Limit},
	})
}

// Mine handles GET /properties/my-properties.
func (h *ListingHandler) Mine(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	listings, err := h.listings.GetByAuthor(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, "Mine", err)
		return
	}
	response.JSON(w, http.StatusOK, response.Envelope{
		Success:    true,
		Message:    "Properties fetched successfully",
		Properties: toListingDTOs(listings),
	})
}

// Get handles GET /properties/{id}.
func (h *ListingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx, span := tracer.Start(r.Context(), "ListingHandler.Get", oteltrace.WithAttributes(attribute.String("listing_id", id)))
	defer span.End()

	detail, err := h.listings.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		writeError(w, h.logger, "Get", err)
		return
	}
	dto := toDetailDTO(detail)
	response.JSON(w, http.StatusOK, response.Envelope{Success: true, Message: "Property fetched successfully", Property: dto})
}

// Create handles POST /properties.
func (h *ListingHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	if err := h.parseForm(w, r, true); err != nil {
		h.writeFormError(w, "Create", err)
		return
	}
	ctx, span := tracer.Start(r.Context(), "ListingHandler.Create", oteltrace.WithAttributes(attribute.String("author_id", userID)))
	defer span.End()

	in, err := createInput(r)
	if err != nil {
		writeError(w, h.logger, "Create", err)
		return
	}
	images, err := readFiles(r.MultipartForm, imagesField)
	if err != nil {
		writeError(w, h.logger, "Create", err)
		return
	}
	span.SetAttributes(attribute.Int("images", len(images)))

	listing, err := h.listings.Create(ctx, userID, in, images)
	if err != nil {
		span.RecordError(err)
		writeError(w, h.logger, "Create", err)
		return
	}
	span.SetAttributes(attribute.String("listing_id", listing.ID))
	response.JSON(w, http.StatusCreated, response.Envelope{
		Success:  true,
		Message:  "Property created successfully",
		Property: toListingDTO(listing),
	})
}

// Update handles PUT /properties/{id}. Only fields present in the form are
// changed; a present but empty description or subtype clears it.
func (h *ListingHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	userID, _ := middleware.UserIDFromContext(r.Context())
	if err := h.parseForm(w, r, false); err != nil {
		h.writeFormError(w, "Update", err)
		return
	}
	ctx, span := tracer.Start(r.Context(), "ListingHandler.Update", oteltrace.WithAttributes(
		attribute.String("listing_id", id),
		attribute.String("author_id", userID),
	))
	defer span.End()

	patch, err := listingPatch(r)
	if err != nil {
		writeError(w, h.logger, "Update", err)
		return
	}
	deleteURLs, err := parseDeleteURLs(r.PostForm[imagesToDeleteField])
	if err != nil {
		writeError(w, h.logger, "Update", err)
		return
	}
	images, err := readFiles(r.MultipartForm, imagesField)
	if err != nil {
		writeError(w, h.logger, "Update", err)
		return
	}

	listing, err := h.listings.Update(ctx, id, userID, patch, images, deleteURLs)
	if err != nil {
		span.RecordError(err)
		writeError(w, h.logger, "Update", err)
		return
	}
	response.JSON(w, http.StatusOK, response.Envelope{
		Success:  true,
		Message:  "Property updated successfully",
		Property: toListingDTO(listing),
	})
}

// Delete handles DELETE /properties/{id}.
func (h *ListingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	userID, _ := middleware.UserIDFromContext(r.Context())
	ctx, span := tracer.Start(r.Context(), "ListingHandler.Delete", oteltrace.WithAttributes(attribute.String("listing_id", id)))
	defer span.End()

	report, err := h.listings.Delete(ctx, id, userID)
	if err != nil {
		span.RecordError(err)
		writeError(w, h.logger, "Delete", err)
		return
	}
	if !report.OK() {
		h.logger.Warn("Property deleted with leftover images",
			zap.String("listing_id", id), zap.Strings("keys", report.FailedKeys()))
	}
	response.JSON(w, http.StatusOK, response.Envelope{Success: true, Message: "Property deleted successfully"})
}

// parseForm limits the body to the configured upload size and parses it.
// Non-multipart bodies are accepted when requireMultipart is false.
func (h *ListingHandler) parseForm(w http.ResponseWriter, r *http.Request, requireMultipart bool) error {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	err := r.ParseMultipartForm(multipartMemory)
	if errors.Is(err, http.ErrNotMultipart) && !requireMultipart {
		return r.ParseForm()
	}
	return err
}

func (h *ListingHandler) writeFormError(w http.ResponseWriter, op string, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		response.Error(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("request body exceeds %d MB", h.maxUploadBytes>>20))
		return
	}
	h.logger.Debug(op+": invalid form", zap.Error(err))
	response.Error(w, http.StatusBadRequest, "invalid multipart form")
}

func createInput(r *http.Request) (domain.CreateInput, error) {
	price, err := parsePrice(r.PostFormValue("price"))
	if err != nil {
		return domain.CreateInput{}, err
	}
	return domain.CreateInput{
		Title:       strings.TrimSpace(r.PostFormValue("title")),
		Description: r.PostFormValue("description"),
		Category:    domain.Category(r.PostFormValue("category")),
		Subtype:     r.PostFormValue("subtype"),
		Purpose:     search.NormalizePurpose(r.PostFormValue("purpose")),
		Price:       price,
		Location:    strings.TrimSpace(r.PostFormValue("location")),
	}, nil
}

func listingPatch(r *http.Request) (domain.ListingPatch, error) {
	var patch domain.ListingPatch
	patch.Title = formString(r, "title")
	patch.Description = formString(r, "description")
	patch.Subtype = formString(r, "subtype")
	patch.Location = formString(r, "location")
	if v := formString(r, "category"); v != nil {
		c := domain.Category(*v)
		patch.Category = &c
	}
	if v := formString(r, "purpose"); v != nil {
		p := search.NormalizePurpose(*v)
		patch.Purpose = &p
	}
	if v := formString(r, "price"); v != nil {
		price, err := parsePrice(*v)
		if err != nil {
			return patch, err
		}
		patch.Price = &price
	}
	if v := formString(r, "isActive"); v != nil {
		active, err := strconv.ParseBool(*v)
		if err != nil {
			return patch, fmt.Errorf("%w: isActive must be true or false", errBadRequest)
		}
		patch.IsActive = &active
	}
	if v := formString(r, "version"); v != nil {
		version, err := strconv.ParseInt(*v, 10, 64)
		if err != nil {
			return patch, fmt.Errorf("%w: version must be an integer", errBadRequest)
		}
		patch.Version = &version
	}
	return patch, nil
}

// formString returns the first value of key, or nil when the key is absent.
func formString(r *http.Request, key string) *string {
	values, ok := r.PostForm[key]
	if !ok || len(values) == 0 {
		return nil
	}
	v := values[0]
	return &v
}

func parsePrice(raw string) (float64, error) {
	price, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: price must be a number", domain.ErrValidation)
	}
	return price, nil
}

// parseDeleteURLs accepts a JSON array in a single field or one URL per
// repeated field.
func parseDeleteURLs(values []string) ([]string, error) {
	var urls []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if strings.HasPrefix(v, "[") {
			var batch []string
			if err := json.Unmarshal([]byte(v), &batch); err != nil {
				return nil, fmt.Errorf("%w: imagesToDelete must be a JSON array of URLs", errBadRequest)
			}
			urls = append(urls, batch...)
			continue
		}
		urls = append(urls, v)
	}
	return urls, nil
}

func readFiles(form *multipart.Form, field string) ([][]byte, error) {
	if form == nil {
		return nil, nil
	}
	headers := form.File[field]
	files := make([][]byte, 0, len(headers))
	for _, fh := range headers {
		data, err := readFile(fh)
		if err != nil {
			return nil, fmt.Errorf("%w: could not read %s: %v", errBadRequest, fh.Filename, err)
		}
		files = append(files, data)
	}
	return files, nil
}

func readFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
