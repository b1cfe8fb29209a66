package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"moodliftAPI/internal/rewards"
	"moodliftAPI/middleware"
	"moodliftAPI/services"
)

type RewardsHandler struct {
	rewardsService *services.RewardsService
}

func NewRewardsHandler(rewardsService *services.RewardsService) *RewardsHandler {
	return &RewardsHandler{
		rewardsService: rewardsService,
	}
}

func (h *RewardsHandler) RecordActivity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req rewards.RecordActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if _, ok := rewards.PointsFor(req.ActivityKind); !ok {
		respondWithError(w, http.StatusBadRequest, "Unknown activity kind")
		return
	}

	result, err := h.rewardsService.RecordActivity(ctx, clerkID, req.ActivityKind, req.Description)
	if err != nil {
		log.Printf("RecordActivity: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to record activity")
		return
	}

	middleware.CountActivity(string(req.ActivityKind))

	respondWithJSON(w, http.StatusCreated, result)
}

func (h *RewardsHandler) GetRewardsSummary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	summary, err := h.rewardsService.GetRewardsSummary(ctx, clerkID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to get rewards summary")
		return
	}

	respondWithJSON(w, http.StatusOK, summary)
}

func (h *RewardsHandler) GetActivities(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	windowDays := 30
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondWithError(w, http.StatusBadRequest, "Query parameter 'days' must be a positive integer")
			return
		}
		windowDays = parsed
	}

	activities, err := h.rewardsService.GetRecentActivities(ctx, clerkID, windowDays)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to get activities")
		return
	}

	respondWithJSON(w, http.StatusOK, activities)
}

func (h *RewardsHandler) GetBadges(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	badges, err := h.rewardsService.GetBadges(ctx, clerkID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to get badges")
		return
	}

	respondWithJSON(w, http.StatusOK, badges)
}

func (h *RewardsHandler) GetMilestones(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	milestones, err := h.rewardsService.GetMilestones(ctx)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to get milestones")
		return
	}

	respondWithJSON(w, http.StatusOK, milestones)
}
