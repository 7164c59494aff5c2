// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"

	"github.com/arianshop/backend/internal/domain/cart"
	"github.com/arianshop/backend/internal/domain/product"
	"github.com/arianshop/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionCookieName = "session_id"

// CartHandler handles cart endpoints. Routes run behind optional auth:
// authenticated requests hit the server cart, anonymous ones the redis
// session cart.
type CartHandler struct {
	cartService    *cart.Service
	productService *product.Service
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *cart.Service, productService *product.Service) *CartHandler {
	return &CartHandler{
		cartService:    cartService,
		productService: productService,
	}
}

// identity resolves who owns the cart for this request. Guests without a
// session get one issued as a cookie.
func (h *CartHandler) identity(c *gin.Context) (userID uint, sessionID string) {
	userID, _ = middleware.GetUserIDFromContext(c)
	if userID != 0 {
		return userID, ""
	}

	sessionID = c.GetHeader("X-Session-ID")
	if sessionID == "" {
		if cookie, err := c.Cookie(sessionCookieName); err == nil {
			sessionID = cookie
		}
	}
	if sessionID == "" {
		sessionID = uuid.New().String()
		c.SetCookie(sessionCookieName, sessionID, 86400, "/", "", false, true)
	}
	return 0, sessionID
}

type addToCartRequest struct {
	ProductID uint   `json:"productId" binding:"required"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity"`
}

// Add adds an item to the cart
func (h *CartHandler) Add(c *gin.Context) {
	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Product ID is required"})
		return
	}

	userID, sessionID := h.identity(c)
	if err := h.cartService.AddItem(c.Request.Context(), userID, sessionID, req.ProductID, req.Color, req.Quantity); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Added to Cart"})
}

type updateCartRequest struct {
	ProductID uint   `json:"productId" binding:"required"`
	Color     string `json:"color"`
	Quantity  *int   `json:"quantity" binding:"required"`
}

// Update overwrites one cart line's quantity; zero removes it
func (h *CartHandler) Update(c *gin.Context) {
	var req updateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Product ID and quantity are required"})
		return
	}

	userID, sessionID := h.identity(c)
	if err := h.cartService.SetQuantity(c.Request.Context(), userID, sessionID, req.ProductID, req.Color, *req.Quantity); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart Updated"})
}

// Get returns the cart with its item count and projected total
func (h *CartHandler) Get(c *gin.Context) {
	userID, sessionID := h.identity(c)

	data, err := h.cartService.GetCart(c.Request.Context(), userID, sessionID)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": err.Error()})
		return
	}

	prices, err := h.productService.PriceIndex()
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"cartData": data,
		"count":    data.Count(),
		"total":    data.Total(prices),
	})
}

// Clear empties the cart
func (h *CartHandler) Clear(c *gin.Context) {
	userID, sessionID := h.identity(c)
	if err := h.cartService.ClearCart(c.Request.Context(), userID, sessionID); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart Cleared"})
}

type mergeCartRequest struct {
	SessionID string `json:"sessionId"`
}

// Merge folds a guest session cart into the authenticated user's cart.
// The session id comes from the body or the usual session header/cookie.
func (h *CartHandler) Merge(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not Authorized. Login Again"})
		return
	}

	var req mergeCartRequest
	_ = c.ShouldBindJSON(&req)

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = c.GetHeader("X-Session-ID")
	}
	if sessionID == "" {
		if cookie, err := c.Cookie(sessionCookieName); err == nil {
			sessionID = cookie
		}
	}

	data, err := h.cartService.MergeGuestCart(c.Request.Context(), userID, sessionID)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart Merged", "cartData": data})
}
