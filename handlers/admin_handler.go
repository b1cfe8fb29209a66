package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"moodliftAPI/internal/content"
	"moodliftAPI/middleware"
	"moodliftAPI/services"

	"github.com/gorilla/mux"
)

// AdminHandler serves the content-management dashboard. Every route checks
// the admin flag on the authenticated user before touching the catalogs.
type AdminHandler struct {
	userService    *services.UserService
	contentService *services.ContentService
}

func NewAdminHandler(userService *services.UserService, contentService *services.ContentService) *AdminHandler {
	return &AdminHandler{
		userService:    userService,
		contentService: contentService,
	}
}

// requireAdmin resolves the caller and rejects non-admins. Returns false
// after writing the response when access is denied.
func (h *AdminHandler) requireAdmin(ctx context.Context, w http.ResponseWriter) bool {
	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return false
	}

	isAdmin, err := h.userService.IsAdmin(ctx, clerkID)
	if err != nil {
		respondWithError(w, http.StatusForbidden, "Unable to verify admin access")
		return false
	}
	if !isAdmin {
		respondWithError(w, http.StatusForbidden, "Admin access required")
		return false
	}

	return true
}

func (h *AdminHandler) CheckAdmin(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	isAdmin, err := h.userService.IsAdmin(ctx, clerkID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Unable to verify admin access")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]bool{"is_admin": isAdmin})
}

func (h *AdminHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if !h.requireAdmin(ctx, w) {
		return
	}

	var req content.CreateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	book, err := h.contentService.CreateBook(ctx, &req)
	if err != nil {
		log.Printf("CreateBook: %v", err)
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondWithJSON(w, http.StatusCreated, book)
}

func (h *AdminHandler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if !h.requireAdmin(ctx, w) {
		return
	}

	var req content.UpdateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	book, err := h.contentService.UpdateBook(ctx, mux.Vars(r)["id"], &req)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, book)
}

func (h *AdminHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if !h.requireAdmin(ctx, w) {
		return
	}

	if err := h.contentService.DeleteBook(ctx, mux.Vars(r)["id"]); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Book deleted successfully"})
}

func (h *AdminHandler) CreateConsultant(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if !h.requireAdmin(ctx, w) {
		return
	}

	var req content.CreateConsultantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	consultant, err := h.contentService.CreateConsultant(ctx, &req)
	if err != nil {
		log.Printf("CreateConsultant: %v", err)
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondWithJSON(w, http.StatusCreated, consultant)
}

func (h *AdminHandler) UpdateConsultant(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if !h.requireAdmin(ctx, w) {
		return
	}

	var req content.UpdateConsultantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	consultant, err := h.contentService.UpdateConsultant(ctx, mux.Vars(r)["id"], &req)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, consultant)
}

func (h *AdminHandler) DeleteConsultant(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if !h.requireAdmin(ctx, w) {
		return
	}

	if err := h.contentService.DeleteConsultant(ctx, mux.Vars(r)["id"]); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Consultant deleted successfully"})
}

func (h *AdminHandler) CreateFAQ(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if !h.requireAdmin(ctx, w) {
		return
	}

	var req content.CreateFAQRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	faq, err := h.contentService.CreateFAQ(ctx, &req)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondWithJSON(w, http.StatusCreated, faq)
}

func (h *AdminHandler) UpdateFAQ(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if !h.requireAdmin(ctx, w) {
		return
	}

	var req content.UpdateFAQRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	faq, err := h.contentService.UpdateFAQ(ctx, mux.Vars(r)["id"], &req)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, faq)
}

func (h *AdminHandler) DeleteFAQ(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if !h.requireAdmin(ctx, w) {
		return
	}

	if err := h.contentService.DeleteFAQ(ctx, mux.Vars(r)["id"]); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "FAQ deleted successfully"})
}

func (h *AdminHandler) SeedFAQs(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if !h.requireAdmin(ctx, w) {
		return
	}

	if err := h.contentService.SeedDefaultFAQs(ctx); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to seed FAQs")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Default FAQs seeded"})
}
