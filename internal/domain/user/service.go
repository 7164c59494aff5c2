// internal/domain/user/service.go
package user

import (
	"fmt"
	"mime/multipart"

	"github.com/arianshop/backend/internal/config"
	"github.com/arianshop/backend/internal/domain/product"
	"github.com/arianshop/backend/internal/domain/upload"
	"github.com/arianshop/backend/internal/pkg/auth"
	"gorm.io/gorm"
)

// Service handles user account business logic
type Service struct {
	db            *gorm.DB
	config        *config.Config
	passwords     *auth.PasswordManager
	uploadService *upload.Service
}

// NewService creates a new user service
func NewService(db *gorm.DB, cfg *config.Config, uploadService *upload.Service) *Service {
	return &Service{
		db:            db,
		config:        cfg,
		passwords:     auth.NewPasswordManager(cfg),
		uploadService: uploadService,
	}
}

// RegisterRequest represents registration data
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// GoogleLoginRequest represents a federated login callback
type GoogleLoginRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	GoogleID string `json:"googleId" binding:"required"`
	Avatar   string `json:"avatar"`
}

// UpdateProfileRequest carries profile fields; nil pointers are untouched
type UpdateProfileRequest struct {
	Name    *string `json:"name" form:"name"`
	Bio     *string `json:"bio" form:"bio"`
	Phone   *string `json:"phone" form:"phone"`
	Address *string `json:"address" form:"address"`
}

// Register creates a password account
func (s *Service) Register(req *RegisterRequest) (*User, error) {
	emailAddr := NormalizeEmail(req.Email)

	var existing User
	if err := s.db.Where("email = ?", emailAddr).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("user already exists")
	} else if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	hash, err := s.passwords.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := User{
		Name:     req.Name,
		Email:    emailAddr,
		Password: hash,
	}
	if err := s.db.Create(&u).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &u, nil
}

// Login authenticates a password account. Accounts created through Google
// login carry no password hash and are directed to Google login instead.
func (s *Service) Login(emailAddr, password string) (*User, error) {
	var u User
	if err := s.db.Where("email = ?", NormalizeEmail(emailAddr)).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("user doesn't exist")
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if u.Password == "" {
		return nil, fmt.Errorf("use Google login instead")
	}

	if err := s.passwords.VerifyPassword(password, u.Password); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	return &u, nil
}

// GoogleLogin finds or creates the federated account. A password account
// with the same email is never silently taken over.
func (s *Service) GoogleLogin(req *GoogleLoginRequest) (*User, error) {
	emailAddr := NormalizeEmail(req.Email)

	var u User
	err := s.db.Where("email = ?", emailAddr).First(&u).Error
	if err == nil {
		if !u.IsGoogleAccount() {
			return nil, fmt.Errorf("this email is already registered with a password; please login using email & password")
		}
		// Backfill the avatar on first login that carries one
		if u.Avatar == "" && req.Avatar != "" {
			u.Avatar = req.Avatar
			if err := s.db.Save(&u).Error; err != nil {
				return nil, fmt.Errorf("failed to update avatar: %w", err)
			}
		}
		return &u, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	u = User{
		Name:     req.Name,
		Email:    emailAddr,
		GoogleID: req.GoogleID,
		Avatar:   req.Avatar,
	}
	if err := s.db.Create(&u).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &u, nil
}

// Get retrieves a user by id
func (s *Service) Get(userID uint) (*User, error) {
	var u User
	if err := s.db.First(&u, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return &u, nil
}

// UpdateProfile applies the submitted profile fields and optional avatar
// image
func (s *Service) UpdateProfile(userID uint, req *UpdateProfileRequest, avatar *multipart.FileHeader) (*User, error) {
	u, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Bio != nil {
		u.Bio = *req.Bio
	}
	if req.Phone != nil {
		u.Phone = *req.Phone
	}
	if req.Address != nil {
		u.Address = *req.Address
	}

	if avatar != nil {
		avatarURL, err := s.uploadService.StoreImage(avatar, "avatars")
		if err != nil {
			return nil, fmt.Errorf("failed to store avatar: %w", err)
		}
		u.Avatar = avatarURL
	}

	if err := s.db.Save(u).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return u, nil
}

// ToggleWishlist adds the product to the user's wishlist, or removes it if
// already present. Returns true when the product ends up on the list.
func (s *Service) ToggleWishlist(userID, productID uint) (bool, error) {
	var existing WishlistItem
	result := s.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&existing)

	if result.Error == gorm.ErrRecordNotFound {
		item := WishlistItem{UserID: userID, ProductID: productID}
		if err := s.db.Create(&item).Error; err != nil {
			return false, fmt.Errorf("failed to add wishlist item: %w", err)
		}
		return true, nil
	}
	if result.Error != nil {
		return false, fmt.Errorf("failed to look up wishlist item: %w", result.Error)
	}

	if err := s.db.Delete(&existing).Error; err != nil {
		return false, fmt.Errorf("failed to remove wishlist item: %w", err)
	}
	return false, nil
}

// RemoveFromWishlist removes one product reference from the wishlist
func (s *Service) RemoveFromWishlist(userID, productID uint) error {
	result := s.db.Where("user_id = ? AND product_id = ?", userID, productID).Delete(&WishlistItem{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove wishlist item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("wishlist item not found")
	}
	return nil
}

// GetWishlist resolves the user's saved product references to catalog
// entries; references to deleted products are skipped
func (s *Service) GetWishlist(userID uint) ([]product.Product, error) {
	var items []WishlistItem
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve wishlist: %w", err)
	}

	if len(items) == 0 {
		return []product.Product{}, nil
	}

	ids := make([]uint, len(items))
	for i, item := range items {
		ids[i] = item.ProductID
	}

	var products []product.Product
	if err := s.db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to resolve wishlist products: %w", err)
	}
	return products, nil
}
