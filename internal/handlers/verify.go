package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/xinmi/exammaster/internal/app"
	"github.com/xinmi/exammaster/internal/code"
	"github.com/xinmi/exammaster/internal/metrics"
)

type VerifyHandler struct {
	service *app.Service
}

func NewVerifyHandler(service *app.Service) *VerifyHandler {
	return &VerifyHandler{
		service: service,
	}
}

// HandleVerifyCode validates a submitted code and, when it checks out,
// resolves it to a user with a freshly issued token. Format and
// checksum failures are normal negative results (200, valid:false)
// with distinct messages; only malformed payloads and store failures
// are errors.
func (h *VerifyHandler) HandleVerifyCode(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() {
		duration := time.Since(start).Seconds()
		metrics.APIRequestDuration.WithLabelValues(
			r.URL.Path,
			r.Method,
			"200",
		).Observe(duration)
	}()

	var payload struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"valid":   false,
			"message": "Invalid JSON body",
		})
		return
	}

	if strings.TrimSpace(payload.Code) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"valid":   false,
			"message": "Missing or invalid 'code'",
		})
		return
	}

	normalized := code.Normalize(payload.Code)

	if !code.MatchesFormat(normalized) {
		metrics.CodeValidationsTotal.WithLabelValues("bad_format").Inc()
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"valid":   false,
			"message": "Code format must be like X00010-8AB (prefix letter + 5 digits + '-' + 3 hex chars)",
		})
		return
	}

	if !h.service.Validator.IsValid(normalized) {
		metrics.CodeValidationsTotal.WithLabelValues("bad_checksum").Inc()
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"valid":   false,
			"message": "Invalid verification code",
		})
		return
	}

	user, err := h.service.ResolveCode(r.Context(), normalized)
	if err != nil {
		logger.Error.Printf("Failed to load or create user for code %s: %v", normalized, err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"valid":   false,
			"message": "Failed to load or create user",
		})
		return
	}

	metrics.CodeValidationsTotal.WithLabelValues("valid").Inc()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"valid": true,
		"user":  user,
	})
}
