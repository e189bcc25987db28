package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/xinmi/exammaster/internal/app"
	"github.com/xinmi/exammaster/internal/code"
	"github.com/xinmi/exammaster/internal/metrics"
	"github.com/xinmi/exammaster/internal/models"
)

type ProgressHandler struct {
	service *app.Service
}

func NewProgressHandler(service *app.Service) *ProgressHandler {
	return &ProgressHandler{
		service: service,
	}
}

// fallbackIdentity carries the deprecated user_id/code identification
// that predates bearer tokens. Kept for old clients.
type fallbackIdentity struct {
	userID *int64
	code   string
}

// resolveUserID authenticates the request: bearer token first, then the
// deprecated fallbacks. On failure it writes the error response itself
// and returns false.
func (h *ProgressHandler) resolveUserID(w http.ResponseWriter, r *http.Request, fb fallbackIdentity) (int64, bool) {
	if token := bearerToken(r); token != "" {
		user, err := h.service.Auth.ResolveToken(r.Context(), token)
		if err != nil {
			logger.Error.Printf("Failed to load user by token: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
				"success": false,
				"message": "Failed to load user by token",
			})
			return 0, false
		}
		if user == nil {
			writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
				"success": false,
				"message": "Invalid or expired token",
			})
			return 0, false
		}
		return user.ID, true
	}

	if fb.userID != nil {
		return *fb.userID, true
	}

	if strings.TrimSpace(fb.code) != "" {
		user, err := h.service.Store.GetUserByCode(code.Normalize(fb.code))
		if err != nil {
			logger.Error.Printf("Failed to load user by code: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
				"success": false,
				"message": "Failed to load user by code",
			})
			return 0, false
		}
		if user == nil {
			writeJSON(w, http.StatusNotFound, map[string]interface{}{
				"success": false,
				"message": "User not found for provided code",
			})
			return 0, false
		}
		return user.ID, true
	}

	writeJSON(w, http.StatusBadRequest, map[string]interface{}{
		"success": false,
		"message": "Missing 'user_id', 'code', or Authorization token",
	})
	return 0, false
}

func (h *ProgressHandler) HandleGetProgress(w http.ResponseWriter, r *http.Request) {
	var fb fallbackIdentity
	if raw := r.URL.Query().Get("user_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{
				"success": false,
				"message": "Invalid 'user_id' query parameter",
			})
			return
		}
		fb.userID = &id
	}
	fb.code = r.URL.Query().Get("code")

	userID, ok := h.resolveUserID(w, r, fb)
	if !ok {
		return
	}

	var courseID *int64
	if raw := r.URL.Query().Get("course_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{
				"success": false,
				"message": "Invalid 'course_id' query parameter",
			})
			return
		}
		courseID = &id
	}

	items, err := h.service.Store.ListProgress(userID, courseID)
	if err != nil {
		logger.Error.Printf("Failed to fetch course progress: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Failed to fetch course progress",
		})
		return
	}

	if items == nil {
		items = []models.CourseProgress{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"items":   items,
	})
}

func (h *ProgressHandler) HandleUpsertProgress(w http.ResponseWriter, r *http.Request) {
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
		UserID   *int64 `json:"user_id"`
		Code     string `json:"code"`
		CourseID *int64 `json:"course_id"`
		models.ProgressPatch
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "Invalid JSON body",
		})
		return
	}

	userID, ok := h.resolveUserID(w, r, fallbackIdentity{userID: payload.UserID, code: payload.Code})
	if !ok {
		return
	}

	if payload.CourseID == nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "'course_id' must be an integer",
		})
		return
	}

	if err := payload.ProgressPatch.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "progress_percent must be 0-100, total_answered and total_correct must be >= 0",
		})
		return
	}

	progress, err := h.service.Store.UpsertProgress(userID, *payload.CourseID, payload.ProgressPatch)
	if err != nil {
		logger.Error.Printf("Failed to upsert course progress: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Failed to save course progress",
		})
		return
	}

	metrics.ProgressWritesTotal.Inc()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"progress": progress,
	})
}
