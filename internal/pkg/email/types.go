// internal/pkg/email/types.go
package email

// Email represents one outbound message
type Email struct {
	To          []string
	Subject     string
	HTMLContent string
}

// NewsletterData feeds the newsletter HTML template
type NewsletterData struct {
	SiteName       string
	Message        string
	ProductName    string
	ProductImage   string
	ProductLink    string
	UnsubscribeURL string
	Year           int
}
