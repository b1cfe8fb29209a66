package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"moodliftAPI/internal/mood"
	"moodliftAPI/middleware"
	"moodliftAPI/services"
)

type MoodHandler struct {
	moodService *services.MoodService
}

func NewMoodHandler(moodService *services.MoodService) *MoodHandler {
	return &MoodHandler{
		moodService: moodService,
	}
}

func (h *MoodHandler) RecordMood(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req mood.RecordMoodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if !req.Mood.IsValid() {
		respondWithError(w, http.StatusBadRequest, "Unknown mood type")
		return
	}

	dm, err := h.moodService.RecordMood(ctx, clerkID, req.Mood)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to record mood")
		return
	}

	respondWithJSON(w, http.StatusCreated, dm)
}

func (h *MoodHandler) GetTodayMood(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	dm, err := h.moodService.GetTodayMood(ctx, clerkID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to get today's mood")
		return
	}

	if dm == nil {
		respondWithJSON(w, http.StatusOK, map[string]any{"mood": nil})
		return
	}

	respondWithJSON(w, http.StatusOK, dm)
}

func (h *MoodHandler) GetMoodHistory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	days := 30
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondWithError(w, http.StatusBadRequest, "Query parameter 'days' must be a positive integer")
			return
		}
		days = parsed
	}

	history, err := h.moodService.GetMoodHistory(ctx, clerkID, days)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to get mood history")
		return
	}

	respondWithJSON(w, http.StatusOK, history)
}

func (h *MoodHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	moodParam := mood.MoodType(r.URL.Query().Get("mood"))
	if !moodParam.IsValid() {
		respondWithError(w, http.StatusBadRequest, "Query parameter 'mood' is required and must be a known mood")
		return
	}

	respondWithJSON(w, http.StatusOK, mood.RecommendationsFor(moodParam))
}
