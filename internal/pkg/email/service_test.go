package email

import (
	"testing"

	"github.com/arianshop/backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{FrontendURL: "https://shop.example.com"},
		External: config.ExternalConfig{
			Email: config.EmailConfig{
				FromEmail: "noreply@example.com",
				FromName:  "Arian Shop",
			},
		},
	}
}

func TestRenderNewsletterDefaults(t *testing.T) {
	svc, err := NewService(testConfig())
	require.NoError(t, err)

	html, err := svc.RenderNewsletter(NewsletterData{Message: "Big summer sale!"})
	require.NoError(t, err)

	assert.Contains(t, html, "Big summer sale!")
	assert.Contains(t, html, "Arian Shop Newsletter")
	assert.Contains(t, html, "https://shop.example.com/unsubscribe")
	assert.NotContains(t, html, "View Product", "no product block without a product name")
}

func TestRenderNewsletterProductBlock(t *testing.T) {
	svc, err := NewService(testConfig())
	require.NoError(t, err)

	html, err := svc.RenderNewsletter(NewsletterData{
		Message:      "We just launched something new.",
		ProductName:  "Trail Running Shoes",
		ProductImage: "https://cdn.example.com/shoes.jpg",
		ProductLink:  "https://shop.example.com/product/3",
	})
	require.NoError(t, err)

	assert.Contains(t, html, "Trail Running Shoes")
	assert.Contains(t, html, "https://cdn.example.com/shoes.jpg")
	assert.Contains(t, html, `href="https://shop.example.com/product/3"`)
	assert.Contains(t, html, "View Product")
}

func TestRenderNewsletterEscapesMessage(t *testing.T) {
	svc, err := NewService(testConfig())
	require.NoError(t, err)

	html, err := svc.RenderNewsletter(NewsletterData{Message: `<script>alert("x")</script>`})
	require.NoError(t, err)

	assert.NotContains(t, html, "<script>")
}
