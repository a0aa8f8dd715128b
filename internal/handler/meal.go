package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/dietlog/dietlog-go/internal/middleware"
	"github.com/dietlog/dietlog-go/internal/model"
	"github.com/dietlog/dietlog-go/internal/service"
)

// MutationRecorder counts successful meal writes.
type MutationRecorder interface {
	RecordMealMutation(op string)
}

type noopRecorder struct{}

func (noopRecorder) RecordMealMutation(string) {}

// MealHandler handles HTTP requests for meals. Every route sits behind
// middleware.SessionAuth.
type MealHandler struct {
	service  *service.MealService
	recorder MutationRecorder
}

// NewMealHandler creates a new MealHandler. recorder may be nil.
func NewMealHandler(svc *service.MealService, recorder MutationRecorder) *MealHandler {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &MealHandler{service: svc, recorder: recorder}
}

// pathParam returns the decoded value of a URL parameter. chi matches against
// r.URL.RawPath when it is set, leaving the segment escaped.
func pathParam(r *http.Request, key string) (string, error) {
	v := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return v, nil
	}
	return url.PathUnescape(v)
}

// HandleCreateMeal handles POST /meals requests.
func (h *MealHandler) HandleCreateMeal(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var req model.CreateMealRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.CreateMeal(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, service.ErrMealNameRequired) {
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		slog.ErrorContext(r.Context(), "create meal failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	h.recorder.RecordMealMutation("create")
	writeJSON(w, http.StatusCreated, resp)
}

// HandleEditMeal handles POST /meals/edit/{currentName} requests.
func (h *MealHandler) HandleEditMeal(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	currentName, err := pathParam(r, "currentName")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid meal name"))
		return
	}

	var patch model.MealPatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	if err := h.service.UpdateMeal(r.Context(), userID, currentName, patch); err != nil {
		if errors.Is(err, service.ErrMealNameRequired) {
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		slog.ErrorContext(r.Context(), "edit meal failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	h.recorder.RecordMealMutation("update")
	w.WriteHeader(http.StatusOK)
}

// HandleListMeals handles GET /meals and GET /meals/{name} requests.
func (h *MealHandler) HandleListMeals(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	name, err := pathParam(r, "name")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid meal name"))
		return
	}

	resp, err := h.service.ListMeals(r.Context(), userID, name)
	if err != nil {
		slog.ErrorContext(r.Context(), "list meals failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleDeleteMeal handles DELETE /meals/{name} requests.
func (h *MealHandler) HandleDeleteMeal(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	name, err := pathParam(r, "name")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid meal name"))
		return
	}

	if err := h.service.DeleteMeal(r.Context(), userID, name); err != nil {
		if errors.Is(err, service.ErrMealNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
			return
		}
		slog.ErrorContext(r.Context(), "delete meal failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	h.recorder.RecordMealMutation("delete")
	w.WriteHeader(http.StatusOK)
}

// HandleMetrics handles GET /meals/metrics requests.
func (h *MealHandler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	metrics, err := h.service.Metrics(r.Context(), userID)
	if err != nil {
		slog.ErrorContext(r.Context(), "meal metrics failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, metrics)
}
