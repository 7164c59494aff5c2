// internal/pkg/email/service.go
package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/arianshop/backend/internal/config"
)

// newsletterTemplate is the fixed template rendered once per subscriber.
// Product block and image are optional; the unsubscribe link is not.
const newsletterTemplate = `
<html>
  <head>
    <style>
      body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
      .container { max-width: 600px; margin: 0 auto; padding: 20px; }
      .header { background-color: #f8f9fa; padding: 20px; text-align: center; }
      .content { padding: 20px; }
      .product { margin-top: 20px; border: 1px solid #ddd; padding: 15px; border-radius: 5px; }
      .button { display: inline-block; background-color: #007bff; color: white; padding: 10px 20px;
                text-decoration: none; border-radius: 5px; margin-top: 15px; }
      .footer { margin-top: 30px; font-size: 12px; color: #777; text-align: center; }
      img { max-width: 100%; height: auto; }
    </style>
  </head>
  <body>
    <div class="container">
      <div class="header">
        <h2>{{.SiteName}} Newsletter</h2>
      </div>
      <div class="content">
        <p>Hello,</p>
        <p>{{.Message}}</p>
        {{if .ProductName}}
        <div class="product">
          <h3>{{.ProductName}}</h3>
          {{if .ProductImage}}<img src="{{.ProductImage}}" alt="{{.ProductName}}" style="max-width: 200px;">{{end}}
          <p><a href="{{.ProductLink}}" class="button">View Product</a></p>
        </div>
        {{end}}
        <p>Thank you for subscribing to our newsletter!</p>
      </div>
      <div class="footer">
        <p>&#169; {{.Year}} {{.SiteName}}. All rights reserved.</p>
        <p>If you wish to unsubscribe, <a href="{{.UnsubscribeURL}}">click here</a>.</p>
      </div>
    </div>
  </body>
</html>`

// Service renders and sends email over SMTP
type Service struct {
	config     *config.Config
	newsletter *template.Template
}

// NewService creates a new email service
func NewService(cfg *config.Config) (*Service, error) {
	tmpl, err := template.New("newsletter").Parse(newsletterTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse newsletter template: %w", err)
	}
	return &Service{
		config:     cfg,
		newsletter: tmpl,
	}, nil
}

// SendNewsletter renders the newsletter template and sends it to one
// recipient
func (s *Service) SendNewsletter(ctx context.Context, to, subject string, data NewsletterData) error {
	htmlContent, err := s.RenderNewsletter(data)
	if err != nil {
		return err
	}

	return s.sendSMTPEmail(ctx, &Email{
		To:          []string{to},
		Subject:     subject,
		HTMLContent: htmlContent,
	})
}

// RenderNewsletter fills the newsletter template. Zero-value fields fall
// back to site defaults so callers only set what they have.
func (s *Service) RenderNewsletter(data NewsletterData) (string, error) {
	if data.SiteName == "" {
		data.SiteName = s.config.External.Email.FromName
	}
	if data.UnsubscribeURL == "" {
		data.UnsubscribeURL = s.config.App.FrontendURL + "/unsubscribe"
	}
	if data.ProductLink == "" {
		data.ProductLink = s.config.App.FrontendURL + "/products"
	}
	if data.Year == 0 {
		data.Year = time.Now().Year()
	}

	var buf bytes.Buffer
	if err := s.newsletter.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render newsletter template: %w", err)
	}
	return buf.String(), nil
}
