package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/digital-menu-qr/menu-service/internal/adapter/logger"
	"github.com/digital-menu-qr/menu-service/internal/app/checkout"
	"github.com/digital-menu-qr/menu-service/internal/domain"
	"github.com/digital-menu-qr/menu-service/internal/interfaces"
)

// CartHandler drives one customer's order composition: session creation,
// add/remove, draft details, and the checkout handoff.
type CartHandler struct {
	store       *checkout.Store
	checkoutSvc *checkout.Service
	menuService interfaces.MenuService
	logger      logger.Logger
}

func NewCartHandler(store *checkout.Store, checkoutSvc *checkout.Service, menuService interfaces.MenuService, logger logger.Logger) *CartHandler {
	return &CartHandler{
		store:       store,
		checkoutSvc: checkoutSvc,
		menuService: menuService,
		logger:      logger,
	}
}

type CreateCartRequest struct {
	MenuID string `json:"menu_id"`
}

type CreateCartResponse struct {
	CartToken string       `json:"cart_token"`
	Menu      MenuResponse `json:"menu"`
}

type CartLineResponse struct {
	ItemID    string `json:"item_id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"line_total"`
}

type CartResponse struct {
	Lines               []CartLineResponse `json:"lines"`
	TotalItems          int                `json:"total_items"`
	TotalAmount         string             `json:"total_amount"`
	OrderType           string             `json:"order_type"`
	ConfirmationVisible bool               `json:"confirmation_visible"`
	LastOrderTotal      string             `json:"last_order_total"`
}

type AddItemRequest struct {
	ItemID string `json:"item_id"`
}

type UpdateDraftRequest struct {
	OrderType    *string `json:"order_type,omitempty"`
	CustomerName *string `json:"customer_name,omitempty"`
	TableNumber  *string `json:"table_number,omitempty"`
}

type CheckoutResponse struct {
	OrderID     string `json:"order_id"`
	WhatsAppURL string `json:"whatsapp_url"`
	Message     string `json:"message"`
	Total       string `json:"total"`
}

// CreateCart serves POST /carts. Opening a cart session is the public menu
// page load, so it also counts a view on the menu.
func (h *CartHandler) CreateCart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, "Method not allowed", http.StatusMethodNotAllowed, nil)
		return
	}

	var req CreateCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}
	if req.MenuID == "" {
		respondError(w, "Validation failed", http.StatusBadRequest, []ValidationError{
			{Field: "menu_id", Message: "menu id is required"},
		})
		return
	}

	m, err := h.menuService.GetPublicMenu(r.Context(), req.MenuID)
	if err != nil {
		if errors.Is(err, domain.ErrMenuNotFound) {
			respondError(w, "Menu not found", http.StatusNotFound, nil)
			return
		}
		h.logger.Error("cart_create_failed", "Failed to load menu for cart", "", nil, err)
		respondError(w, "Internal server error", http.StatusInternalServerError, nil)
		return
	}

	token, _ := h.store.Create(m)
	h.logger.Debug("cart_created", "Cart session opened", token, map[string]interface{}{
		"menu_id": m.ID,
	})

	respondJSON(w, http.StatusCreated, CreateCartResponse{
		CartToken: token,
		Menu:      menuToResponse(m),
	})
}

// HandleCarts routes /carts/{token}[/...].
func (h *CartHandler) HandleCarts(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/carts/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		respondError(w, "Cart token required", http.StatusBadRequest, nil)
		return
	}

	comp, ok := h.store.Get(parts[0])
	if !ok {
		respondError(w, "Cart not found", http.StatusNotFound, nil)
		return
	}
	token := parts[0]
	rest := parts[1:]

	switch {
	case len(rest) == 0:
		h.handleCartRoot(w, r, token, comp)
	case rest[0] == "items":
		h.handleItems(w, r, comp, rest[1:])
	case rest[0] == "details" && len(rest) == 1:
		h.handleDetails(w, r, comp)
	case rest[0] == "checkout" && len(rest) == 1:
		h.handleCheckout(w, r, comp)
	case rest[0] == "dismiss" && len(rest) == 1:
		h.handleDismiss(w, r, comp)
	default:
		respondError(w, "Not found", http.StatusNotFound, nil)
	}
}

func (h *CartHandler) handleCartRoot(w http.ResponseWriter, r *http.Request, token string, comp *checkout.Composer) {
	switch r.Method {
	case http.MethodGet:
		respondJSON(w, http.StatusOK, cartToResponse(comp))
	case http.MethodDelete:
		h.store.Release(token)
		w.WriteHeader(http.StatusNoContent)
	default:
		respondError(w, "Method not allowed", http.StatusMethodNotAllowed, nil)
	}
}

func (h *CartHandler) handleItems(w http.ResponseWriter, r *http.Request, comp *checkout.Composer, rest []string) {
	switch {
	case r.Method == http.MethodPost && len(rest) == 0:
		var req AddItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, "Invalid request body", http.StatusBadRequest, nil)
			return
		}

		item, ok := comp.Menu().FindItem(req.ItemID)
		if !ok {
			respondError(w, "Item not found on this menu", http.StatusNotFound, nil)
			return
		}

		// Unavailable items are silently ignored; the page never offers
		// them, but the cart must stay consistent if they arrive anyway.
		comp.AddItem(item)
		respondJSON(w, http.StatusOK, cartToResponse(comp))

	case r.Method == http.MethodDelete && len(rest) == 1 && rest[0] != "":
		comp.RemoveItem(rest[0])
		respondJSON(w, http.StatusOK, cartToResponse(comp))

	default:
		respondError(w, "Method not allowed", http.StatusMethodNotAllowed, nil)
	}
}

func (h *CartHandler) handleDetails(w http.ResponseWriter, r *http.Request, comp *checkout.Composer) {
	if r.Method != http.MethodPut {
		respondError(w, "Method not allowed", http.StatusMethodNotAllowed, nil)
		return
	}

	var req UpdateDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}

	if req.OrderType != nil {
		if err := comp.SetMode(domain.FulfillmentMode(*req.OrderType)); err != nil {
			respondError(w, "Validation failed", http.StatusBadRequest, []ValidationError{
				{Field: "order_type", Message: "order type must be one of: dine-in, takeaway, delivery"},
			})
			return
		}
	}
	if req.CustomerName != nil {
		comp.SetCustomerName(*req.CustomerName)
	}
	if req.TableNumber != nil {
		comp.SetTableNumber(*req.TableNumber)
	}

	respondJSON(w, http.StatusOK, cartToResponse(comp))
}

func (h *CartHandler) handleCheckout(w http.ResponseWriter, r *http.Request, comp *checkout.Composer) {
	if r.Method != http.MethodPost {
		respondError(w, "Method not allowed", http.StatusMethodNotAllowed, nil)
		return
	}

	result, err := h.checkoutSvc.SubmitOrder(r.Context(), comp)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyCart):
			respondError(w, "Cart is empty", http.StatusConflict, nil)
		case errors.Is(err, domain.ErrNoWhatsAppNumber):
			respondError(w, "This menu does not take orders", http.StatusConflict, nil)
		default:
			h.logger.Error("checkout_failed", "Failed to submit order", "", nil, err)
			respondError(w, "Internal server error", http.StatusInternalServerError, nil)
		}
		return
	}

	respondJSON(w, http.StatusOK, CheckoutResponse{
		OrderID:     result.Order.ID,
		WhatsAppURL: result.DeepLink,
		Message:     result.Message,
		Total:       result.Total.String(),
	})
}

func (h *CartHandler) handleDismiss(w http.ResponseWriter, r *http.Request, comp *checkout.Composer) {
	if r.Method != http.MethodPost {
		respondError(w, "Method not allowed", http.StatusMethodNotAllowed, nil)
		return
	}
	comp.DismissConfirmation()
	respondJSON(w, http.StatusOK, cartToResponse(comp))
}

func cartToResponse(comp *checkout.Composer) CartResponse {
	resp := CartResponse{
		Lines:               []CartLineResponse{},
		TotalItems:          comp.TotalItemCount(),
		TotalAmount:         comp.TotalAmount().String(),
		OrderType:           string(comp.Mode()),
		ConfirmationVisible: comp.ConfirmationVisible(),
		LastOrderTotal:      comp.LastTotal().String(),
	}

	for _, line := range comp.Lines() {
		lineTotal := line.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		resp.Lines = append(resp.Lines, CartLineResponse{
			ItemID:    line.ItemID,
			Name:      line.Name,
			Price:     line.Price.String(),
			Quantity:  line.Quantity,
			LineTotal: lineTotal.String(),
		})
	}

	return resp
}
