package mailer

import (
	"bytes"
	"html/template"

	"github.com/shopspring/decimal"

	"github.com/meterline/storefront-backend/internal/contact"
	"github.com/meterline/storefront-backend/internal/orders"
)

// All customer-supplied strings pass through html/template, which escapes
// them on render. Nothing a customer types reaches the mail body raw.

const orderConfirmationHTML = `<!DOCTYPE html>
<html>
<body>
<h2>Order {{.OrderNumber}} confirmed</h2>
<p>Thank you for your order. A summary is below.</p>
<table border="1" cellpadding="6" cellspacing="0">
<tr><th>Product</th><th>SKU</th><th>Qty</th><th>Unit price</th><th>Line total</th></tr>
{{range .Quote.Items}}<tr>
<td>{{.Name}}</td><td>{{.SKU}}</td><td>{{.Quantity}}</td>
<td>{{money .UnitPrice}} {{$.Quote.Currency}}</td>
<td>{{money .LineTotal}} {{$.Quote.Currency}}</td>
</tr>{{end}}
</table>
<p>Subtotal: {{money .Quote.Subtotal}} {{.Quote.Currency}}</p>
{{if .Quote.DiscountCode}}<p>Discount ({{.Quote.DiscountCode}}): -{{money .Quote.DiscountAmount}} {{.Quote.Currency}}</p>{{end}}
<p><strong>Total: {{money .Quote.Total}} {{.Quote.Currency}}</strong></p>
<h3>Billing</h3>
<p>{{.Billing.Name}}{{if .Billing.Company}}, {{.Billing.Company}}{{end}}<br>
{{.Billing.Line1}}{{if .Billing.Line2}}<br>{{.Billing.Line2}}{{end}}<br>
{{.Billing.Postcode}} {{.Billing.City}}, {{.Billing.Country}}</p>
<h3>Shipping</h3>
<p>{{.Shipping.Name}}{{if .Shipping.Company}}, {{.Shipping.Company}}{{end}}<br>
{{.Shipping.Line1}}{{if .Shipping.Line2}}<br>{{.Shipping.Line2}}{{end}}<br>
{{.Shipping.Postcode}} {{.Shipping.City}}, {{.Shipping.Country}}</p>
{{if .Notes}}<h3>Notes</h3><p>{{.Notes}}</p>{{end}}
</body>
</html>`

const contactNotificationHTML = `<!DOCTYPE html>
<html>
<body>
<h2>New contact form submission</h2>
<p><strong>Name:</strong> {{.Name}}<br>
<strong>Email:</strong> {{.Email}}<br>
{{if .Phone}}<strong>Phone:</strong> {{.Phone}}<br>{{end}}
<strong>IP:</strong> {{.ClientIP}}</p>
<h3>Message</h3>
<p>{{.Message}}</p>
</body>
</html>`

var moneyFuncs = template.FuncMap{
	"money": func(v decimal.Decimal) string {
		return v.StringFixed(2)
	},
}

var (
	orderTmpl   = template.Must(template.New("order").Funcs(moneyFuncs).Parse(orderConfirmationHTML))
	contactTmpl = template.Must(template.New("contact").Parse(contactNotificationHTML))
)

func renderOrderConfirmation(msg orders.Confirmation) (string, error) {
	var buf bytes.Buffer
	if err := orderTmpl.Execute(&buf, msg); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderContactNotification(msg contact.Message) (string, error) {
	var buf bytes.Buffer
	if err := contactTmpl.Execute(&buf, msg); err != nil {
		return "", err
	}
	return buf.String(), nil
}
