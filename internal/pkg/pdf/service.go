// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/arianshop/backend/internal/config"
	"github.com/arianshop/backend/internal/domain/order"
)

// Service handles PDF generation
type Service struct {
	config *config.Config
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
	}
}

// GenerateInvoice generates a PDF invoice for an order
func (s *Service) GenerateInvoice(o *order.Order) (*bytes.Buffer, error) {
	data := InvoiceData{
		InvoiceNumber: fmt.Sprintf("INV-%06d", o.ID),
		InvoiceDate:   o.CreatedAt.Format("January 2, 2006"),
		Order:         o,
		ShopName:      s.config.App.Name,
		DeliveryFee:   s.config.Checkout.DeliveryFee,
		Subtotal:      o.Amount - s.config.Checkout.DeliveryFee,
		PaymentLabel:  paymentLabel(o),
		GeneratedAt:   time.Now().UTC().Format("January 2, 2006 15:04 MST"),
	}

	htmlContent, err := s.generateHTML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.Grayscale.Set(false)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	page.Zoom.Set(0.95)

	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

func paymentLabel(o *order.Order) string {
	if o.Payment {
		return fmt.Sprintf("Paid (%s)", o.PaymentMethod)
	}
	if o.PaymentMethod == order.PaymentMethodCOD {
		return "Cash on Delivery (pending)"
	}
	return "Payment pending"
}

// generateHTML generates HTML content from template
func (s *Service) generateHTML(data InvoiceData) (string, error) {
	tmpl := template.Must(template.New("invoice").Parse(invoiceTemplate))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// InvoiceData represents the data passed to the invoice template
type InvoiceData struct {
	InvoiceNumber string
	InvoiceDate   string
	Order         *order.Order
	ShopName      string
	Subtotal      int64
	DeliveryFee   int64
	PaymentLabel  string
	GeneratedAt   string
}

// Invoice HTML template
const invoiceTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Invoice {{.InvoiceNumber}}</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            margin: 0;
            padding: 20px;
            color: #333;
        }
        .header {
            display: flex;
            justify-content: space-between;
            border-bottom: 2px solid #333;
            padding-bottom: 20px;
            margin-bottom: 30px;
        }
        .shop-name {
            font-size: 24px;
            font-weight: bold;
        }
        .invoice-meta {
            text-align: right;
        }
        .addresses {
            margin-bottom: 30px;
        }
        .address-block {
            display: inline-block;
            vertical-align: top;
            width: 45%;
        }
        .section-title {
            font-size: 12px;
            text-transform: uppercase;
            color: #888;
            margin-bottom: 6px;
        }
        table.items {
            width: 100%;
            border-collapse: collapse;
            margin-bottom: 30px;
        }
        table.items th {
            background: #f4f4f4;
            text-align: left;
            padding: 10px;
            font-size: 12px;
            text-transform: uppercase;
        }
        table.items td {
            padding: 10px;
            border-bottom: 1px solid #eee;
        }
        .totals {
            width: 300px;
            margin-left: auto;
        }
        .totals td {
            padding: 6px 10px;
        }
        .totals .grand td {
            font-weight: bold;
            border-top: 2px solid #333;
        }
        .footer {
            margin-top: 40px;
            font-size: 11px;
            color: #888;
        }
    </style>
</head>
<body>
    <div class="header">
        <div>
            <div class="shop-name">{{.ShopName}}</div>
            <div>Invoice {{.InvoiceNumber}}</div>
        </div>
        <div class="invoice-meta">
            <div>Date: {{.InvoiceDate}}</div>
            <div>Order #{{.Order.ID}}</div>
            <div>{{.PaymentLabel}}</div>
        </div>
    </div>

    <div class="addresses">
        <div class="address-block">
            <div class="section-title">Bill To</div>
            <div>{{.Order.Address.FirstName}} {{.Order.Address.LastName}}</div>
            <div>{{.Order.Address.Street}}</div>
            <div>{{.Order.Address.City}}, {{.Order.Address.State}} {{.Order.Address.Zipcode}}</div>
            <div>{{.Order.Address.Country}}</div>
            <div>{{.Order.Address.Phone}}</div>
        </div>
        <div class="address-block">
            <div class="section-title">Order Status</div>
            <div>{{.Order.Status}}</div>
        </div>
    </div>

    <table class="items">
        <thead>
            <tr>
                <th>Item</th>
                <th>Color</th>
                <th>Qty</th>
                <th>Unit Price</th>
                <th>Total</th>
            </tr>
        </thead>
        <tbody>
            {{range .Order.Items}}
            <tr>
                <td>{{.Name}}</td>
                <td>{{.Color}}</td>
                <td>{{.Quantity}}</td>
                <td>${{.Price}}</td>
                <td>${{.LineTotal}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>

    <table class="totals">
        <tr>
            <td>Subtotal</td>
            <td>${{.Subtotal}}</td>
        </tr>
        <tr>
            <td>Delivery Fee</td>
            <td>${{.DeliveryFee}}</td>
        </tr>
        <tr class="grand">
            <td>Total</td>
            <td>${{.Order.Amount}}</td>
        </tr>
    </table>

    <div class="footer">
        Generated {{.GeneratedAt}}. Thank you for shopping with {{.ShopName}}.
    </div>
</body>
</html>
`
