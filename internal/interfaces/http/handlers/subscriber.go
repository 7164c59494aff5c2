// internal/interfaces/http/handlers/subscriber.go
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/arianshop/backend/internal/domain/subscriber"
	"github.com/gin-gonic/gin"
)

// SubscriberHandler handles newsletter endpoints
type SubscriberHandler struct {
	subscriberService *subscriber.Service
}

// NewSubscriberHandler creates a new subscriber handler
func NewSubscriberHandler(subscriberService *subscriber.Service) *SubscriberHandler {
	return &SubscriberHandler{subscriberService: subscriberService}
}

type subscribeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// Subscribe adds or reactivates a newsletter subscription
func (h *SubscriberHandler) Subscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "A valid email is required"})
		return
	}

	outcome, err := h.subscriberService.Subscribe(req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	switch outcome {
	case subscriber.OutcomeAlreadySubscribed:
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "You are already subscribed"})
	case subscriber.OutcomeReactivated:
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Welcome back! Your subscription has been reactivated"})
	default:
		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Subscribed successfully"})
	}
}

// Unsubscribe deactivates a subscription
func (h *SubscriberHandler) Unsubscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "A valid email is required"})
		return
	}

	if err := h.subscriberService.Unsubscribe(req.Email); err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Unsubscribed successfully"})
}

// List returns all subscribers for the admin panel
func (h *SubscriberHandler) List(c *gin.Context) {
	subs, err := h.subscriberService.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "subscribers": subs})
}

// Notify broadcasts a newsletter to every active subscriber
func (h *SubscriberHandler) Notify(c *gin.Context) {
	var req subscriber.NotifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Subject and message are required"})
		return
	}

	summary, err := h.subscriberService.Notify(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, subscriber.ErrNoActiveSubscribers) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": summary.Message,
		"results": summary.Results,
	})
}

type notifyNewProductRequest struct {
	ProductID   uint   `json:"productId" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Image       string `json:"image"`
	Description string `json:"description"`
}

// NotifyNewProduct broadcasts a product announcement
func (h *SubscriberHandler) NotifyNewProduct(c *gin.Context) {
	var req notifyNewProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Product ID and name are required"})
		return
	}

	summary, err := h.subscriberService.NotifyNewProduct(c.Request.Context(), req.ProductID, req.Name, req.Image, req.Description)
	if err != nil {
		if errors.Is(err, subscriber.ErrNoActiveSubscribers) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": summary.Message,
		"results": summary.Results,
	})
}
