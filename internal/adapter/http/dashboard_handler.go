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

// DashboardHandler serves the merchant dashboard API. Every route expects
// a session injected by AuthMiddleware.
type DashboardHandler struct {
	menus    interfaces.MenuService
	orders   interfaces.OrderService
	accounts interfaces.AccountService
	logger   logger.Logger
}

func NewDashboardHandler(menus interfaces.MenuService, orders interfaces.OrderService, accounts interfaces.AccountService, logger logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		menus:    menus,
		orders:   orders,
		accounts: accounts,
		logger:   logger,
	}
}

type CreateMenuRequest struct {
	Name           string                  `json:"name"`
	Description    *string                 `json:"description,omitempty"`
	CoverImage     *string                 `json:"cover_image,omitempty"`
	WhatsAppNumber *string                 `json:"whatsapp_number,omitempty"`
	Categories     []CreateCategoryRequest `json:"categories"`
}

type CreateCategoryRequest struct {
	Name  string              `json:"name"`
	Items []CreateItemRequest `json:"items"`
}

type CreateItemRequest struct {
	Name        string  `json:"name"`
	Price       string  `json:"price"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
	Available   bool    `json:"available"`
}

type PublishRequest struct {
	IsPublished bool `json:"is_published"`
}

type QRLinkResponse struct {
	MenuID  string `json:"menu_id"`
	MenuURL string `json:"menu_url"`
}

type OrderResponse struct {
	ID           string              `json:"id"`
	MenuID       string              `json:"menu_id"`
	MenuName     string              `json:"menu_name"`
	OrderType    string              `json:"order_type"`
	TableNumber  *string             `json:"table_number"`
	CustomerName *string             `json:"customer_name"`
	Items        []OrderItemResponse `json:"items"`
	Total        string              `json:"total"`
	Status       string              `json:"status"`
	CreatedAt    time.Time           `json:"created_at"`
}

type OrderItemResponse struct {
	Name  string `json:"name"`
	Qty   int    `json:"qty"`
	Price string `json:"price"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type AnalyticsResponse struct {
	TotalViews     int                 `json:"total_views"`
	PublishedMenus int                 `json:"published_menus"`
	TotalMenus     int                 `json:"total_menus"`
	TotalItems     int                 `json:"total_items"`
	MenuViews      []MenuViewsResponse `json:"menu_views"`
}

type MenuViewsResponse struct {
	MenuID      string `json:"menu_id"`
	MenuName    string `json:"menu_name"`
	Views       int    `json:"views"`
	IsPublished bool   `json:"is_published"`
}

type ProfileResponse struct {
	ID             string  `json:"id"`
	FullName       *string `json:"full_name"`
	RestaurantName *string `json:"restaurant_name"`
	Email          *string `json:"email"`
	Phone          *string `json:"phone"`
}

type UpdateProfileRequest struct {
	FullName       *string `json:"full_name,omitempty"`
	RestaurantName *string `json:"restaurant_name,omitempty"`
	Phone          *string `json:"phone,omitempty"`
}

// HandleMenus serves GET /menus and POST /menus.
func (h *DashboardHandler) HandleMenus(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFrom(r)
	if !ok {
		respondError(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	switch r.Method {
	case http.MethodGet:
		menus, err := h.menus.ListMenus(r.Context(), session)
		if err != nil {
			h.logger.Error("menus_list_failed", "Failed to list menus", "", nil, err)
			respondError(w, "Internal server error", http.StatusInternalServerError, nil)
			return
		}

		resp := make([]MenuResponse, 0, len(menus))
		for _, m := range menus {
			resp = append(resp, menuToResponse(m))
		}
		respondJSON(w, http.StatusOK, resp)

	case http.MethodPost:
		var req CreateMenuRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, "Invalid request body", http.StatusBadRequest, nil)
			return
		}

		cmd := interfaces.CreateMenuCommand{
			Name:           req.Name,
			Description:    req.Description,
			CoverImage:     req.CoverImage,
			WhatsAppNumber: req.WhatsAppNumber,
		}
		for _, cat := range req.Categories {
			catCmd := interfaces.CreateCategoryCommand{Name: cat.Name}
			for _, item := range cat.Items {
				catCmd.Items = append(catCmd.Items, interfaces.CreateItemCommand{
					Name:        item.Name,
					Price:       item.Price,
					Description: item.Description,
					ImageURL:    item.ImageURL,
					Available:   item.Available,
				})
			}
			cmd.Categories = append(cmd.Categories, catCmd)
		}

		m, err := h.menus.CreateMenu(r.Context(), session, cmd)
		if err != nil {
			respondError(w, err.Error(), http.StatusBadRequest, nil)
			return
		}
		respondJSON(w, http.StatusCreated, menuToResponse(m))

	default:
		respondError(w, "Method not allowed", http.StatusMethodNotAllowed, nil)
	}
}

// HandleMenuActions serves POST /menus/{id}/publish and GET /menus/{id}/qr.
func (h *DashboardHandler) HandleMenuActions(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFrom(r)
	if !ok {
		respondError(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/menus/"), "/")
	if len(parts) != 2 || parts[0] == "" {
		respondError(w, "Not found", http.StatusNotFound, nil)
		return
	}
	menuID, action := parts[0], parts[1]

	switch {
	case action == "publish" && r.Method == http.MethodPost:
		var req PublishRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, "Invalid request body", http.StatusBadRequest, nil)
			return
		}

		if err := h.menus.SetPublished(r.Context(), session, menuID, req.IsPublished); err != nil {
			h.respondDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	case action == "qr" && r.Method == http.MethodGet:
		respondJSON(w, http.StatusOK, QRLinkResponse{
			MenuID:  menuID,
			MenuURL: h.menus.PublicURL(menuID),
		})

	default:
		respondError(w, "Not found", http.StatusNotFound, nil)
	}
}

// HandleOrders serves GET /orders.
func (h *DashboardHandler) HandleOrders(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFrom(r)
	if !ok {
		respondError(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}
	if r.Method != http.MethodGet {
		respondError(w, "Method not allowed", http.StatusMethodNotAllowed, nil)
		return
	}

	orders, err := h.orders.List(r.Context(), session)
	if err != nil {
		h.logger.Error("orders_list_failed", "Failed to list orders", "", nil, err)
		respondError(w, "Internal server error", http.StatusInternalServerError, nil)
		return
	}

	resp := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, orderToResponse(o))
	}
	respondJSON(w, http.StatusOK, resp)
}

// HandleOrderActions serves PATCH /orders/{id}/status and DELETE /orders/{id}.
func (h *DashboardHandler) HandleOrderActions(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFrom(r)
	if !ok {
		respondError(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/orders/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		respondError(w, "Order id required", http.StatusBadRequest, nil)
		return
	}
	orderID := parts[0]

	switch {
	case len(parts) == 1 && r.Method == http.MethodDelete:
		if err := h.orders.Delete(r.Context(), session, orderID); err != nil {
			h.respondDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	case len(parts) == 2 && parts[1] == "status" && r.Method == http.MethodPatch:
		var req UpdateStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, "Invalid request body", http.StatusBadRequest, nil)
			return
		}

		status := domain.Status(req.Status)
		if status != domain.StatusCompleted && status != domain.StatusCancelled {
			respondError(w, "Validation failed", http.StatusBadRequest, []ValidationError{
				{Field: "status", Message: "status must be one of: completed, cancelled"},
			})
			return
		}

		if err := h.orders.UpdateStatus(r.Context(), session, orderID, status); err != nil {
			h.respondDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		respondError(w, "Not found", http.StatusNotFound, nil)
	}
}

// HandleAnalytics serves GET /analytics.
func (h *DashboardHandler) HandleAnalytics(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFrom(r)
	if !ok {
		respondError(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}
	if r.Method != http.MethodGet {
		respondError(w, "Method not allowed", http.StatusMethodNotAllowed, nil)
		return
	}

	summary, err := h.orders.Summary(r.Context(), session)
	if err != nil {
		h.logger.Error("analytics_failed", "Failed to build analytics summary", "", nil, err)
		respondError(w, "Internal server error", http.StatusInternalServerError, nil)
		return
	}

	resp := AnalyticsResponse{
		TotalViews:     summary.TotalViews,
		PublishedMenus: summary.PublishedMenus,
		TotalMenus:     summary.TotalMenus,
		TotalItems:     summary.TotalItems,
		MenuViews:      []MenuViewsResponse{},
	}
	for _, mv := range summary.MenuViews {
		resp.MenuViews = append(resp.MenuViews, MenuViewsResponse{
			MenuID:      mv.MenuID,
			MenuName:    mv.MenuName,
			Views:       mv.Views,
			IsPublished: mv.IsPublished,
		})
	}
	respondJSON(w, http.StatusOK, resp)
}

// HandleProfile serves GET /profile and PUT /profile.
func (h *DashboardHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFrom(r)
	if !ok {
		respondError(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	switch r.Method {
	case http.MethodGet:
		profile, err := h.accounts.Get(r.Context(), session)
		if err != nil {
			h.respondDomainError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, profileToResponse(profile))

	case http.MethodPut:
		var req UpdateProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, "Invalid request body", http.StatusBadRequest, nil)
			return
		}

		profile, err := h.accounts.Update(r.Context(), session, interfaces.UpdateProfileCommand{
			FullName:       req.FullName,
			RestaurantName: req.RestaurantName,
			Phone:          req.Phone,
		})
		if err != nil {
			h.respondDomainError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, profileToResponse(profile))

	default:
		respondError(w, "Method not allowed", http.StatusMethodNotAllowed, nil)
	}
}

func (h *DashboardHandler) respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrMenuNotFound),
		errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrProfileNotFound):
		respondError(w, err.Error(), http.StatusNotFound, nil)
	case errors.Is(err, domain.ErrNotMenuOwner):
		respondError(w, err.Error(), http.StatusForbidden, nil)
	case errors.Is(err, domain.ErrInvalidStatusTransition):
		respondError(w, err.Error(), http.StatusConflict, nil)
	default:
		h.logger.Error("dashboard_request_failed", "Dashboard request failed", "", nil, err)
		respondError(w, "Internal server error", http.StatusInternalServerError, nil)
	}
}

func orderToResponse(o *domain.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			Name:  item.Name,
			Qty:   item.Qty,
			Price: item.Price.String(),
		})
	}

	return OrderResponse{
		ID:           o.ID,
		MenuID:       o.MenuID,
		MenuName:     o.MenuName,
		OrderType:    o.OrderType,
		TableNumber:  o.TableNumber,
		CustomerName: o.CustomerName,
		Items:        items,
		Total:        o.Total.String(),
		Status:       string(o.Status),
		CreatedAt:    o.CreatedAt,
	}
}

func profileToResponse(p *domain.Profile) ProfileResponse {
	return ProfileResponse{
		ID:             p.ID,
		FullName:       p.FullName,
		RestaurantName: p.RestaurantName,
		Email:          p.Email,
		Phone:          p.Phone,
	}
}
