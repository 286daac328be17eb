package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"credit-engine/internal/api/handler/dto"
	"credit-engine/internal/domain/credit"
	"credit-engine/internal/pkg/apperrors"
)

type CreditHandler struct {
	service credit.CreditService
	logger  *slog.Logger
}

func NewCreditHandler(s credit.CreditService, l *slog.Logger) *CreditHandler {
	if s == nil {
		panic("credit service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &CreditHandler{
		service: s,
		logger:  l.With("component", "CreditHandler"),
	}
}

func getCreditCodeFromURL(r *http.Request) (uuid.UUID, error) {
	codeStr := chi.URLParam(r, "creditCode")
	if codeStr == "" {
		return uuid.Nil, fmt.Errorf("%w: creditCode not found in URL path", apperrors.ErrInvalidArgument)
	}
	code, err := uuid.Parse(codeStr)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid creditCode format in URL path: %s", apperrors.ErrInvalidArgument, codeStr)
	}
	return code, nil
}

// CreateCredit handles POST /credits
// @Summary Request a new credit
// @Description Creates a credit request for an existing customer. The first installment must fall within the eligibility window.
// @Tags Credits
// @Accept json
// @Produce json
// @Param request body dto.CreditRequest true "Credit creation request"
// @Success 201 {object} dto.CreditCreatedResponse "Credit successfully created"
// @Failure 400 {object} dto.ErrorResponse "Invalid payload, unknown customer or ineligible first-installment date"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /credits [post]
func (h *CreditHandler) CreateCredit(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received create credit request")

	var req dto.CreditRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		h.logger.WarnContext(r.Context(), "Request validation failed", slog.Any("error", err))
		respondError(w, err)
		return
	}

	cred, err := req.ToDomain()
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to build credit from request", slog.Any("error", err))
		respondError(w, err)
		return
	}

	created, err := h.service.Save(r.Context(), cred)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrBusiness) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to create credit", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := dto.NewCreditCreatedResponse(created)
	h.logger.InfoContext(r.Context(), "Credit created successfully",
		slog.String("creditCode", created.CreditCode.String()))
	respondJSON(w, http.StatusCreated, resp)
}

// GetCredit handles GET /credits/{creditCode}?customerId={id}
// @Summary Retrieve credit details
// @Description Retrieves a credit by its code. The credit must belong to the customer given in the query.
// @Tags Credits
// @Produce json
// @Param creditCode path string true "Credit code (UUID)"
// @Param customerId query int true "Owning customer ID" Minimum(1)
// @Success 200 {object} dto.CreditView "Credit details retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid parameters, unknown credit code or ownership mismatch"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /credits/{creditCode} [get]
func (h *CreditHandler) GetCredit(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromQuery(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get customer ID from query", slog.Any("error", err))
		respondError(w, err)
		return
	}

	creditCode, err := getCreditCodeFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get credit code from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.DebugContext(r.Context(), "Received get credit request")

	cred, err := h.service.FindByCreditCode(r.Context(), customerID, creditCode)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, apperrors.ErrBusiness) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to get credit", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := dto.NewCreditView(cred)
	h.logger.InfoContext(r.Context(), "Credit retrieved successfully")
	respondJSON(w, http.StatusOK, resp)
}

// ListCredits handles GET /credits?customerId={id}
// @Summary List a customer's credits
// @Description Retrieves the summary list of credits owned by a customer. Unknown customers yield an empty list.
// @Tags Credits
// @Produce json
// @Param customerId query int true "Owning customer ID" Minimum(1)
// @Success 200 {array} dto.CreditViewList "List of credits"
// @Failure 400 {object} dto.ErrorResponse "Invalid or missing customerId"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /credits [get]
func (h *CreditHandler) ListCredits(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromQuery(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get customer ID from query", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.DebugContext(r.Context(), "Received list credits request")

	credits, err := h.service.FindAllByCustomer(r.Context(), customerID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list credits", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := make([]dto.CreditViewList, len(credits))
	for i, cred := range credits {
		resp[i] = dto.NewCreditViewList(cred)
	}

	h.logger.InfoContext(r.Context(), "Credits listed successfully", slog.Int("count", len(resp)))
	respondJSON(w, http.StatusOK, resp)
}
