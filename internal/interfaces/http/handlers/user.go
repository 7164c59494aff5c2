// internal/interfaces/http/handlers/user.go
package handlers

import (
	"context"
	"net/http"

	"github.com/arianshop/backend/internal/config"
	"github.com/arianshop/backend/internal/domain/cart"
	"github.com/arianshop/backend/internal/domain/user"
	"github.com/arianshop/backend/internal/interfaces/http/middleware"
	"github.com/arianshop/backend/internal/pkg/auth"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// UserHandler handles account and wishlist endpoints
type UserHandler struct {
	userService *user.Service
	cartService *cart.Service
	jwtManager  *auth.JWTManager
	config      *config.Config
	log         *logrus.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *user.Service, cartService *cart.Service, cfg *config.Config, log *logrus.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		cartService: cartService,
		jwtManager:  auth.NewJWTManager(cfg),
		config:      cfg,
		log:         log,
	}
}

// Register handles user registration and signs the new user in
func (h *UserHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Please provide name, email and password"})
		return
	}

	u, err := h.userService.Register(&req)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": err.Error()})
		return
	}

	token, err := h.jwtManager.GenerateToken(u.ID, u.Email, false)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Failed to create session"})
		return
	}

	h.absorbGuestCart(c, u.ID)

	c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login handles password login
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Please provide email and password"})
		return
	}

	u, err := h.userService.Login(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": err.Error()})
		return
	}

	token, err := h.jwtManager.GenerateToken(u.ID, u.Email, false)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Failed to create session"})
		return
	}

	h.absorbGuestCart(c, u.ID)

	c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
}

// GoogleLogin handles federated login callbacks from the storefront
func (h *UserHandler) GoogleLogin(c *gin.Context) {
	var req user.GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Invalid Google login payload"})
		return
	}

	u, err := h.userService.GoogleLogin(&req)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": err.Error()})
		return
	}

	token, err := h.jwtManager.GenerateToken(u.ID, u.Email, false)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Failed to create session"})
		return
	}

	h.absorbGuestCart(c, u.ID)

	c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
}

// AdminLogin authenticates against the configured admin credentials
func (h *UserHandler) AdminLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Please provide email and password"})
		return
	}

	if req.Email != h.config.Admin.Email || req.Password != h.config.Admin.Password || h.config.Admin.Password == "" {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Invalid credentials"})
		return
	}

	token, err := h.jwtManager.GenerateToken(0, req.Email, true)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Failed to create session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
}

// Me returns the authenticated user's profile
func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not Authorized. Login Again"})
		return
	}

	u, err := h.userService.Get(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": u})
}

// UpdateProfile updates profile fields, JSON or multipart with an avatar
// image field
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not Authorized. Login Again"})
		return
	}

	var req user.UpdateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid profile data"})
		return
	}

	avatar, err := c.FormFile("avatar")
	if err != nil {
		avatar = nil
	}

	u, err := h.userService.UpdateProfile(userID, &req, avatar)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Profile updated", "user": u})
}

type wishlistRequest struct {
	ProductID uint `json:"productId" binding:"required"`
}

// ToggleWishlist adds or removes a wishlist entry
func (h *UserHandler) ToggleWishlist(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req wishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Product ID is required"})
		return
	}

	added, err := h.userService.ToggleWishlist(userID, req.ProductID)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": err.Error()})
		return
	}

	message := "Removed from wishlist"
	if added {
		message = "Added to wishlist"
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message, "added": added})
}

// RemoveFromWishlist removes one wishlist entry
func (h *UserHandler) RemoveFromWishlist(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req wishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Product ID is required"})
		return
	}

	if err := h.userService.RemoveFromWishlist(userID, req.ProductID); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Removed from wishlist"})
}

// GetWishlist lists the user's wishlisted products
func (h *UserHandler) GetWishlist(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	products, err := h.userService.GetWishlist(userID)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "wishlist": products})
}

// absorbGuestCart merges a pending guest cart into the freshly signed-in
// user's cart. Login never fails because of it.
func (h *UserHandler) absorbGuestCart(c *gin.Context, userID uint) {
	sessionID := c.GetHeader("X-Session-ID")
	if sessionID == "" {
		if cookie, err := c.Cookie("session_id"); err == nil {
			sessionID = cookie
		}
	}
	if sessionID == "" {
		return
	}

	if _, err := h.cartService.MergeGuestCart(context.WithoutCancel(c.Request.Context()), userID, sessionID); err != nil {
		h.log.WithFields(logrus.Fields{
			"user_id":    userID,
			"session_id": sessionID,
		}).WithError(err).Warn("Failed to merge guest cart on login")
	}
}
