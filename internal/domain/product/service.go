// internal/domain/product/service.go
package product

import (
	"fmt"
	"mime/multipart"

	"github.com/arianshop/backend/internal/config"
	"github.com/arianshop/backend/internal/domain/upload"
	"gorm.io/gorm"
)

// defaultImage backs products created without any upload
const defaultImage = "https://dummyimage.com/150"

// Service handles catalog business logic
type Service struct {
	db            *gorm.DB
	config        *config.Config
	uploadService *upload.Service
}

// NewService creates a new product service
func NewService(db *gorm.DB, cfg *config.Config, uploadService *upload.Service) *Service {
	return &Service{
		db:            db,
		config:        cfg,
		uploadService: uploadService,
	}
}

// AddProductRequest represents the multipart form fields of a product add
type AddProductRequest struct {
	Name        string   `form:"name" binding:"required"`
	Description string   `form:"description"`
	Price       int64    `form:"price" binding:"required"`
	Category    string   `form:"category"`
	Colors      []string `form:"-"`
	Popular     bool     `form:"-"`
}

// Create stores the product images and persists a new catalog entry
func (s *Service) Create(req *AddProductRequest, images []*multipart.FileHeader) (*Product, error) {
	if req.Price <= 0 {
		return nil, fmt.Errorf("price must be positive")
	}

	imageURLs := []string{defaultImage}
	if len(images) > 0 {
		urls, err := s.uploadService.StoreImages(images, "products", s.config.Upload.MaxProductImages)
		if err != nil {
			return nil, fmt.Errorf("failed to store product images: %w", err)
		}
		imageURLs = urls
	}

	colors := req.Colors
	if colors == nil {
		colors = []string{}
	}

	prod := Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Colors:      colors,
		Images:      imageURLs,
		Popular:     req.Popular,
	}

	if err := s.db.Create(&prod).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &prod, nil
}

// List returns the whole catalog, newest first
func (s *Service) List() ([]Product, error) {
	var products []Product
	if err := s.db.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}
	return products, nil
}

// Get retrieves one product by id
func (s *Service) Get(id uint) (*Product, error) {
	var prod Product
	if err := s.db.First(&prod, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product not found")
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", err)
	}
	return &prod, nil
}

// Delete removes a product from the catalog. Orders hold denormalized
// snapshots, so existing orders are unaffected.
func (s *Service) Delete(id uint) error {
	result := s.db.Delete(&Product{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("product not found")
	}
	return nil
}

// PriceIndex returns a productID -> unit price map for cart projections
func (s *Service) PriceIndex() (map[uint]int64, error) {
	var products []Product
	if err := s.db.Select("id", "price").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to index prices: %w", err)
	}

	prices := make(map[uint]int64, len(products))
	for _, p := range products {
		prices[p.ID] = p.Price
	}
	return prices, nil
}
