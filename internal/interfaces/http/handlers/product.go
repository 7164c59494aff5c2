// internal/interfaces/http/handlers/product.go
package handlers

import (
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/arianshop/backend/internal/domain/product"
	"github.com/arianshop/backend/internal/domain/subscriber"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ProductHandler handles catalog endpoints
type ProductHandler struct {
	productService    *product.Service
	subscriberService *subscriber.Service
	log               *logrus.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *product.Service, subscriberService *subscriber.Service, log *logrus.Logger) *ProductHandler {
	return &ProductHandler{
		productService:    productService,
		subscriberService: subscriberService,
		log:               log,
	}
}

// Add creates a product from a multipart form. Image fields image1..image4
// carry up to four files; colors is a JSON array string.
func (h *ProductHandler) Add(c *gin.Context) {
	var req product.AddProductRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Invalid product data"})
		return
	}

	if raw := c.PostForm("colors"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &req.Colors); err != nil {
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "colors must be a JSON array"})
			return
		}
	}
	req.Popular = c.PostForm("popular") == "true"

	images := collectImageFiles(c, "image1", "image2", "image3", "image4")

	prod, err := h.productService.Create(&req, images)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": err.Error()})
		return
	}

	// Fire-and-forget; the add response never waits on the newsletter
	go h.notifySubscribers(prod)

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product Added", "product": prod})
}

type removeProductRequest struct {
	ID uint `json:"id" binding:"required"`
}

// Remove hard-deletes a product from the catalog
func (h *ProductHandler) Remove(c *gin.Context) {
	var req removeProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Product ID is required"})
		return
	}

	if err := h.productService.Delete(req.ID); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product Removed"})
}

// List returns the whole catalog
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.productService.List()
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
}

type singleProductRequest struct {
	ProductID uint `json:"productId" binding:"required"`
}

// Single returns one product by id
func (h *ProductHandler) Single(c *gin.Context) {
	var req singleProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Product ID is required"})
		return
	}

	prod, err := h.productService.Get(req.ProductID)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "product": prod})
}

func (h *ProductHandler) notifySubscribers(prod *product.Product) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	summary, err := h.subscriberService.NotifyNewProduct(ctx, prod.ID, prod.Name, prod.MainImage(), prod.Description)
	if err != nil {
		h.log.WithField("product_id", prod.ID).WithError(err).
			Warn("New product newsletter failed")
		return
	}
	h.log.WithFields(logrus.Fields{
		"product_id": prod.ID,
		"summary":    summary.Message,
	}).Info("New product newsletter dispatched")
}

// collectImageFiles gathers the present single-file form fields in order
func collectImageFiles(c *gin.Context, fields ...string) []*multipart.FileHeader {
	files := make([]*multipart.FileHeader, 0, len(fields))
	for _, field := range fields {
		if fh, err := c.FormFile(field); err == nil {
			files = append(files, fh)
		}
	}
	return files
}
