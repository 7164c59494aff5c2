// internal/interfaces/http/handlers/order.go
package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/arianshop/backend/internal/domain/order"
	"github.com/arianshop/backend/internal/domain/payment"
	"github.com/arianshop/backend/internal/interfaces/http/middleware"
	"github.com/arianshop/backend/internal/pkg/pdf"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// OrderHandler handles order lifecycle and checkout endpoints
type OrderHandler struct {
	orderService  *order.Service
	stripeService *payment.StripeService
	pdfService    *pdf.Service
	log           *logrus.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *order.Service, stripeService *payment.StripeService, pdfService *pdf.Service, log *logrus.Logger) *OrderHandler {
	return &OrderHandler{
		orderService:  orderService,
		stripeService: stripeService,
		pdfService:    pdfService,
		log:           log,
	}
}

// Place creates a cash-on-delivery order
func (h *OrderHandler) Place(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not Authorized. Login Again"})
		return
	}

	var req order.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Invalid order data"})
		return
	}

	if _, err := h.orderService.PlaceOrder(c.Request.Context(), userID, &req, order.PaymentMethodCOD); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order Placed"})
}

// PlaceStripe creates an order and a hosted Stripe checkout session for it.
// The cart survives until payment verification succeeds.
func (h *OrderHandler) PlaceStripe(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not Authorized. Login Again"})
		return
	}

	var req order.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Invalid order data"})
		return
	}

	o, err := h.orderService.PlaceOrder(c.Request.Context(), userID, &req, order.PaymentMethodStripe)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": err.Error()})
		return
	}

	session, err := h.stripeService.CreateCheckoutSession(c.Request.Context(), o)
	if err != nil {
		// No session means the order can never be paid; drop it
		if delErr := h.orderService.Delete(o.ID); delErr != nil {
			h.log.WithField("order_id", o.ID).WithError(delErr).
				Warn("Failed to remove order after checkout session failure")
		}
		c.JSON(http.StatusOK, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "session_url": session.URL})
}

type verifyPaymentRequest struct {
	OrderID uint  `json:"orderId" binding:"required"`
	Success *bool `json:"success" binding:"required"`
}

// VerifyPayment finalizes a Stripe checkout outcome
func (h *OrderHandler) VerifyPayment(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not Authorized. Login Again"})
		return
	}

	var req verifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Order ID and outcome are required"})
		return
	}

	if err := h.orderService.ConfirmPayment(c.Request.Context(), req.OrderID, userID, *req.Success); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": err.Error()})
		return
	}

	if *req.Success {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Payment Successful"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": false, "message": "Payment Failed"})
}

// UserOrders lists the requester's orders flattened per line item
func (h *OrderHandler) UserOrders(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not Authorized. Login Again"})
		return
	}

	rows, err := h.orderService.ListForUser(userID)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "orders": rows})
}

// ListAll returns every order for the admin panel
func (h *OrderHandler) ListAll(c *gin.Context) {
	orders, err := h.orderService.ListAll()
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
}

type updateStatusRequest struct {
	OrderID uint   `form:"orderId" json:"orderId" binding:"required"`
	Status  string `form:"status" json:"status" binding:"required"`
}

// UpdateStatus transitions an order. Marking Delivered requires a
// deliveryEvidence image in the multipart form.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Order ID and status are required"})
		return
	}

	evidence, err := c.FormFile("deliveryEvidence")
	if err != nil {
		evidence = nil
	}

	if err := h.orderService.UpdateStatus(req.OrderID, order.Status(req.Status), evidence); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Status Updated"})
}

type deleteOrderRequest struct {
	ID uint `json:"id" binding:"required"`
}

// Delete removes an order permanently
func (h *OrderHandler) Delete(c *gin.Context) {
	var req deleteOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Order ID is required"})
		return
	}

	if err := h.orderService.Delete(req.ID); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order Deleted"})
}

// Invoice streams a PDF invoice for one order
func (h *OrderHandler) Invoice(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order ID"})
		return
	}

	o, err := h.orderService.Get(uint(orderID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": err.Error()})
		return
	}

	buf, err := h.pdfService.GenerateInvoice(o)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="invoice-%d.pdf"`, o.ID))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
