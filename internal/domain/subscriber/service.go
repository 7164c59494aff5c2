// internal/domain/subscriber/service.go
package subscriber

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/arianshop/backend/internal/config"
	"github.com/arianshop/backend/internal/domain/user"
	"github.com/arianshop/backend/internal/pkg/email"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ErrNoActiveSubscribers is returned when a broadcast finds nobody to
// send to. Handlers map it to a not-found response.
var ErrNoActiveSubscribers = errors.New("no active subscribers found")

// NewsletterSender dispatches one rendered newsletter. Satisfied by
// email.Service; the indirection keeps the fan-out testable.
type NewsletterSender interface {
	SendNewsletter(ctx context.Context, to, subject string, data email.NewsletterData) error
}

// Service handles newsletter subscriptions and the notification fan-out
type Service struct {
	db     *gorm.DB
	config *config.Config
	sender NewsletterSender
	log    *logrus.Logger
}

// NewService creates a new subscriber service
func NewService(db *gorm.DB, cfg *config.Config, sender NewsletterSender, log *logrus.Logger) *Service {
	return &Service{
		db:     db,
		config: cfg,
		sender: sender,
		log:    log,
	}
}

// NotifyRequest describes a broadcast to all active subscribers
type NotifyRequest struct {
	Subject      string `json:"subject" binding:"required"`
	Message      string `json:"message" binding:"required"`
	ProductID    uint   `json:"product_id"`
	ProductName  string `json:"product_name"`
	ProductImage string `json:"product_image"`
}

// Subscribe adds a new subscriber or reactivates an inactive one. An
// already-active email is reported as such without creating a duplicate.
func (s *Service) Subscribe(emailAddr string) (SubscribeOutcome, error) {
	emailAddr = user.NormalizeEmail(emailAddr)
	if emailAddr == "" {
		return "", fmt.Errorf("email is required")
	}

	var existing Subscriber
	result := s.db.Where("email = ?", emailAddr).First(&existing)

	if result.Error == nil {
		if existing.IsActive {
			return OutcomeAlreadySubscribed, nil
		}
		existing.IsActive = true
		if err := s.db.Save(&existing).Error; err != nil {
			return "", fmt.Errorf("failed to reactivate subscription: %w", err)
		}
		return OutcomeReactivated, nil
	}
	if result.Error != gorm.ErrRecordNotFound {
		return "", fmt.Errorf("failed to look up subscriber: %w", result.Error)
	}

	sub := Subscriber{
		Email:        emailAddr,
		IsActive:     true,
		SubscribedAt: time.Now().UTC(),
	}
	if err := s.db.Create(&sub).Error; err != nil {
		return "", fmt.Errorf("failed to create subscriber: %w", err)
	}
	return OutcomeSubscribed, nil
}

// Unsubscribe soft-deletes a subscriber
func (s *Service) Unsubscribe(emailAddr string) error {
	emailAddr = user.NormalizeEmail(emailAddr)

	var sub Subscriber
	if err := s.db.Where("email = ?", emailAddr).First(&sub).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("subscriber not found")
		}
		return fmt.Errorf("failed to look up subscriber: %w", err)
	}

	sub.IsActive = false
	if err := s.db.Save(&sub).Error; err != nil {
		return fmt.Errorf("failed to unsubscribe: %w", err)
	}
	return nil
}

// List returns all subscribers, newest first, for the admin panel
func (s *Service) List() ([]Subscriber, error) {
	var subs []Subscriber
	if err := s.db.Order("created_at DESC").Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve subscribers: %w", err)
	}
	return subs, nil
}

// Notify emails every active subscriber concurrently. Per-recipient
// failures are collected into the summary instead of aborting the batch;
// successful sends stamp the subscriber's last-notified timestamp.
func (s *Service) Notify(ctx context.Context, req *NotifyRequest) (*NotifySummary, error) {
	var active []Subscriber
	if err := s.db.Where("is_active = ?", true).Find(&active).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve active subscribers: %w", err)
	}
	if len(active) == 0 {
		return nil, ErrNoActiveSubscribers
	}

	data := email.NewsletterData{
		Message:      req.Message,
		ProductName:  req.ProductName,
		ProductImage: req.ProductImage,
	}
	if req.ProductID != 0 {
		data.ProductLink = fmt.Sprintf("%s/product/%d", s.config.App.FrontendURL, req.ProductID)
	}

	results := FanOut(ctx, active, req.Subject, data, s.sender)

	successful := 0
	now := time.Now().UTC()
	for i, result := range results {
		if result.Status == "success" {
			successful++
			active[i].LastEmailSent = &now
			if err := s.db.Model(&active[i]).Update("last_email_sent", now).Error; err != nil {
				s.log.WithField("email", result.Email).WithError(err).
					Warn("Failed to stamp last email sent")
			}
		} else {
			s.log.WithFields(logrus.Fields{
				"email":  result.Email,
				"reason": result.Error,
			}).Warn("Newsletter delivery failed")
		}
	}

	return &NotifySummary{
		Message: fmt.Sprintf("Emails sent to %d subscribers (%d failed)", successful, len(results)-successful),
		Results: results,
	}, nil
}

// NotifyNewProduct derives a subject and message from a freshly created
// product and reuses the broadcast fan-out. Intended to run in a goroutine
// from the product-add path; failures are the caller's to log, never to
// propagate.
func (s *Service) NotifyNewProduct(ctx context.Context, productID uint, name, image, description string) (*NotifySummary, error) {
	if productID == 0 || name == "" {
		return nil, fmt.Errorf("product ID and name are required")
	}

	return s.Notify(ctx, &NotifyRequest{
		Subject:      fmt.Sprintf("New Product: %s", name),
		Message:      fmt.Sprintf("We're excited to announce a new product in our store: %s. %s", name, description),
		ProductID:    productID,
		ProductName:  name,
		ProductImage: image,
	})
}

// FanOut dispatches one newsletter per subscriber, all sends concurrent,
// and waits for the batch. The result slice is index-aligned with subs.
func FanOut(ctx context.Context, subs []Subscriber, subject string, data email.NewsletterData, sender NewsletterSender) []SendResult {
	results := make([]SendResult, len(subs))

	var wg sync.WaitGroup
	for i, sub := range subs {
		wg.Add(1)
		go func(i int, sub Subscriber) {
			defer wg.Done()
			if err := sender.SendNewsletter(ctx, sub.Email, subject, data); err != nil {
				results[i] = SendResult{Email: sub.Email, Status: "failed", Error: err.Error()}
				return
			}
			results[i] = SendResult{Email: sub.Email, Status: "success"}
		}(i, sub)
	}
	wg.Wait()

	return results
}
