package handlers

import (
	"context"
	"net/http"
	"time"

	"moodliftAPI/services"
)

type ContentHandler struct {
	contentService *services.ContentService
}

func NewContentHandler(contentService *services.ContentService) *ContentHandler {
	return &ContentHandler{
		contentService: contentService,
	}
}

func (h *ContentHandler) GetBooks(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	category := r.URL.Query().Get("category")

	books, err := h.contentService.GetBooks(ctx, category)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to get books")
		return
	}

	respondWithJSON(w, http.StatusOK, books)
}

func (h *ContentHandler) GetConsultants(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	consultants, err := h.contentService.GetConsultants(ctx)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to get consultants")
		return
	}

	respondWithJSON(w, http.StatusOK, consultants)
}

func (h *ContentHandler) GetFAQs(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	faqs, err := h.contentService.GetFAQs(ctx)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to get FAQs")
		return
	}

	respondWithJSON(w, http.StatusOK, faqs)
}
