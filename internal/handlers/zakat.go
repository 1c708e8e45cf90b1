package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/creasty/defaults"
	"go.uber.org/zap"

	apperrors "github.com/tropicaldog17/zakat/internal/errors"
	"github.com/tropicaldog17/zakat/internal/models"
	"github.com/tropicaldog17/zakat/internal/services"
)

const maxRequestBody = 1 << 20

type ZakatHandler struct {
	service services.ZakatService
	logger  *zap.Logger
}

func NewZakatHandler(service services.ZakatService, logger *zap.Logger) *ZakatHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZakatHandler{service: service, logger: logger}
}

// ValidationErrorResponse lists every invalid field of a request.
type ValidationErrorResponse struct {
	Errors []FieldError `json:"errors"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// HandleCalculate handles POST /api/zakat/calculate
// @Summary Calculate zakat
// @Description Values each category present in the request, applies hawl and nisab, and reports the prices used
// @Tags zakat
// @Accept json
// @Produce json
// @Param request body models.ZakatRequest true "Holdings per category"
// @Success 200 {object} models.ZakatReport
// @Failure 400 {object} ValidationErrorResponse
// @Failure 500 {string} string "Internal server error"
// @Router /zakat/calculate [post]
func (h *ZakatHandler) HandleCalculate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.ZakatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		writeValidation(w, apperrors.ValidationErrors{{Field: "body", Message: "invalid JSON: " + err.Error()}})
		return
	}
	if err := defaults.Set(&req); err != nil {
		http.Error(w, "Failed to apply defaults: "+err.Error(), http.StatusInternalServerError)
		return
	}

	report, err := h.service.Calculate(r.Context(), req)
	if err != nil {
		var verrs apperrors.ValidationErrors
		var verr *apperrors.ErrValidation
		switch {
		case errors.As(err, &verrs):
			writeValidation(w, verrs)
		case errors.As(err, &verr):
			writeValidation(w, apperrors.ValidationErrors{verr})
		default:
			h.logger.Error("Zakat calculation failed", zap.Error(err))
			http.Error(w, "Failed to calculate zakat: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}

	json.NewEncoder(w).Encode(report)
}

func writeValidation(w http.ResponseWriter, errs apperrors.ValidationErrors) {
	resp := ValidationErrorResponse{Errors: make([]FieldError, 0, len(errs))}
	for _, e := range errs {
		resp.Errors = append(resp.Errors, FieldError{Field: e.Field, Message: e.Message})
	}
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(resp)
}
