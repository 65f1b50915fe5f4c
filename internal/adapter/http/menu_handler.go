package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/digital-menu-qr/menu-service/internal/adapter/logger"
	"github.com/digital-menu-qr/menu-service/internal/domain"
	"github.com/digital-menu-qr/menu-service/internal/interfaces"
)

// MenuHandler serves the public menu page data. Every fetch counts as a
// page view.
type MenuHandler struct {
	service interfaces.MenuService
	logger  logger.Logger
}

func NewMenuHandler(service interfaces.MenuService, logger logger.Logger) *MenuHandler {
	return &MenuHandler{
		service: service,
		logger:  logger,
	}
}

type MenuResponse struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Description    *string            `json:"description"`
	CoverImage     *string            `json:"cover_image"`
	WhatsAppNumber *string            `json:"whatsapp_number"`
	IsPublished    bool               `json:"is_published"`
	Views          int                `json:"views"`
	CreatedAt      time.Time          `json:"created_at"`
	Categories     []CategoryResponse `json:"categories"`
}

type CategoryResponse struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Items []ItemResponse `json:"items"`
}

type ItemResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       string  `json:"price"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	Available   bool    `json:"available"`
}

type ErrorResponse struct {
	Error  string            `json:"error"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// HandleMenus serves GET /menus/{id}.
func (h *MenuHandler) HandleMenus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, "Method not allowed", http.StatusMethodNotAllowed, nil)
		return
	}

	menuID := strings.TrimPrefix(r.URL.Path, "/menus/")
	if menuID == "" || strings.Contains(menuID, "/") {
		respondError(w, "Menu id required", http.StatusBadRequest, nil)
		return
	}

	m, err := h.service.GetPublicMenu(r.Context(), menuID)
	if err != nil {
		if errors.Is(err, domain.ErrMenuNotFound) {
			respondError(w, "Menu not found", http.StatusNotFound, nil)
			return
		}
		h.logger.Error("menu_fetch_failed", "Failed to fetch menu", "", nil, err)
		respondError(w, "Internal server error", http.StatusInternalServerError, nil)
		return
	}

	respondJSON(w, http.StatusOK, menuToResponse(m))
}

func menuToResponse(m *domain.Menu) MenuResponse {
	resp := MenuResponse{
		ID:             m.ID,
		Name:           m.Name,
		Description:    m.Description,
		CoverImage:     m.CoverImage,
		WhatsAppNumber: m.WhatsAppNumber,
		IsPublished:    m.IsPublished,
		Views:          m.Views,
		CreatedAt:      m.CreatedAt,
		Categories:     []CategoryResponse{},
	}

	// Category and item order mirrors the repository read exactly.
	for _, cat := range m.Categories {
		catResp := CategoryResponse{ID: cat.ID, Name: cat.Name, Items: []ItemResponse{}}
		for _, item := range cat.Items {
			catResp.Items = append(catResp.Items, ItemResponse{
				ID:          item.ID,
				Name:        item.Name,
				Price:       item.Price.String(),
				Description: item.Description,
				ImageURL:    item.ImageURL,
				Available:   item.Available,
			})
		}
		resp.Categories = append(resp.Categories, catResp)
	}

	return resp
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, message string, statusCode int, validationErrors []ValidationError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	json.NewEncoder(w).Encode(ErrorResponse{
		Error:  message,
		Errors: validationErrors,
	})
}
