package handlers

import (
	"fmt"
	"net/http"

	"catalog-service/internal/middleware"
	"catalog-service/internal/models"
	"catalog-service/internal/services"
	"github.com/gin-gonic/gin"
)

// AccountHandler serves the acting user's cart, wishlist, orders and wallet
type AccountHandler struct {
	carts    *services.CartService
	orders   *services.OrderService
	receipts *services.ReceiptService
	wallet   *services.WalletService
	paging   Paging
}

func NewAccountHandler(carts *services.CartService, orders *services.OrderService, receipts *services.ReceiptService, wallet *services.WalletService, paging Paging) *AccountHandler {
	return &AccountHandler{carts: carts, orders: orders, receipts: receipts, wallet: wallet, paging: paging}
}

func (h *AccountHandler) RegisterRoutes(api *gin.RouterGroup) {
	me := api.Group("/me", middleware.UserMiddleware())
	{
		me.GET("/cart", h.GetCart)
		me.DELETE("/cart", h.ClearCart)
		me.POST("/cart/items", h.AddCartItem)
		me.PUT("/cart/items/:itemId", h.UpdateCartItem)
		me.PATCH("/cart/items/:itemId", h.UpdateCartItem)
		me.DELETE("/cart/items/:itemId", h.RemoveCartItem)

		me.GET("/wishlist", h.ListWishlist)
		me.POST("/wishlist", h.AddToWishlist)
		me.DELETE("/wishlist/:id", h.RemoveFromWishlist)

		me.GET("/orders", h.ListOrders)
		me.POST("/orders", h.PlaceOrder)
		me.GET("/orders/:id", h.GetOrder)
		me.POST("/orders/:id/cancel", h.CancelOrder)
		me.GET("/orders/:id/receipt", h.GetReceipt)

		me.GET("/wallet", h.GetWallet)
		me.GET("/wallet/transactions", h.ListWalletTransactions)
		me.POST("/wallet/transactions", h.CreateWalletTransaction)
	}
}

// Cart

func (h *AccountHandler) GetCart(c *gin.Context) {
	cart, err := h.carts.GetCart(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, cart)
}

func (h *AccountHandler) AddCartItem(c *gin.Context) {
	var req models.AddCartItemRequest
	if !bindJSON(c, &req) {
		return
	}
	cart, err := h.carts.AddItem(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, cart)
}

func (h *AccountHandler) UpdateCartItem(c *gin.Context) {
	itemID, ok := parseID(c, "itemId")
	if !ok {
		return
	}
	var req models.UpdateCartItemRequest
	if !bindJSON(c, &req) {
		return
	}
	cart, err := h.carts.UpdateItem(c.Request.Context(), middleware.GetUserID(c), itemID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, cart)
}

func (h *AccountHandler) RemoveCartItem(c *gin.Context) {
	itemID, ok := parseID(c, "itemId")
	if !ok {
		return
	}
	if err := h.carts.RemoveItem(c.Request.Context(), middleware.GetUserID(c), itemID); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Item removed")
}

func (h *AccountHandler) ClearCart(c *gin.Context) {
	if err := h.carts.Clear(c.Request.Context(), middleware.GetUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Cart cleared")
}

// Wishlist

func (h *AccountHandler) ListWishlist(c *gin.Context) {
	items, err := h.carts.ListWishlist(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, items)
}

func (h *AccountHandler) AddToWishlist(c *gin.Context) {
	var req models.AddWishlistItemRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.carts.AddToWishlist(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, item)
}

func (h *AccountHandler) RemoveFromWishlist(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.carts.RemoveFromWishlist(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Wishlist item removed")
}

// Orders

// PlaceOrder godoc
// @Summary Place an order
// @Description Deducts stock for every line at the current quoted price, all or nothing.
// @Description With payWithWallet the total is debited from the user's wallet in the same transaction.
// @Tags orders
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Acting user"
// @Param order body models.PlaceOrderRequest true "Order"
// @Success 201 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /me/orders [post]
func (h *AccountHandler) PlaceOrder(c *gin.Context) {
	var req models.PlaceOrderRequest
	if !bindJSON(c, &req) {
		return
	}
	order, err := h.orders.PlaceOrder(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, order)
}

func (h *AccountHandler) ListOrders(c *gin.Context) {
	params, ok := h.paging.listParams(c)
	if !ok {
		return
	}
	orders, total, err := h.orders.ListOrders(c.Request.Context(), middleware.GetUserID(c), params)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, orders, params, total)
}

func (h *AccountHandler) GetOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	order, err := h.orders.GetOrder(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, order)
}

// CancelOrder godoc
// @Summary Cancel an order
// @Description Restocks every line and refunds wallet payments
// @Tags orders
// @Produce json
// @Param X-User-ID header string true "Acting user"
// @Param id path int true "Order ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /me/orders/{id}/cancel [post]
func (h *AccountHandler) CancelOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	order, err := h.orders.CancelOrder(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, order)
}

// GetReceipt godoc
// @Summary Download an order receipt
// @Tags orders
// @Produce application/pdf
// @Param X-User-ID header string true "Acting user"
// @Param id path int true "Order ID"
// @Success 200 {file} file
// @Failure 404 {object} models.ErrorResponse
// @Router /me/orders/{id}/receipt [get]
func (h *AccountHandler) GetReceipt(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	pdf, err := h.receipts.Receipt(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=receipt-%d.pdf", id))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// Wallet

func (h *AccountHandler) GetWallet(c *gin.Context) {
	wallet, err := h.wallet.GetWallet(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, wallet)
}

// CreateWalletTransaction godoc
// @Summary Credit or debit the wallet
// @Tags wallet
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Acting user"
// @Param transaction body models.WalletTransactionRequest true "Transaction"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /me/wallet/transactions [post]
func (h *AccountHandler) CreateWalletTransaction(c *gin.Context) {
	var req models.WalletTransactionRequest
	if !bindJSON(c, &req) {
		return
	}
	change, err := h.wallet.Transact(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, change)
}

func (h *AccountHandler) ListWalletTransactions(c *gin.Context) {
	params, ok := h.paging.listParams(c)
	if !ok {
		return
	}
	txns, total, err := h.wallet.ListTransactions(c.Request.Context(), middleware.GetUserID(c), params)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, txns, params, total)
}
