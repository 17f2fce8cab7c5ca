package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

const emailLayout = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>{{.Title}}</title></head>
<body style="margin:0;padding:0;font-family:Arial,sans-serif;background-color:#fdf6f8;">
  <table role="presentation" style="width:100%;border-collapse:collapse;">
    <tr><td style="padding:40px 20px;">
      <table role="presentation" style="max-width:600px;margin:0 auto;background-color:#ffffff;border-radius:12px;">
        <tr><td style="background-color:#c2185b;padding:30px;text-align:center;border-radius:12px 12px 0 0;">
          <h1 style="margin:0;color:#ffffff;font-size:26px;">🌷 Ayana</h1>
        </td></tr>
        <tr><td style="padding:30px;color:#333333;font-size:16px;line-height:1.6;">
          {{template "content" .}}
          <p style="margin-top:30px;color:#555;">Kind regards,<br><strong>The Ayana team</strong></p>
        </td></tr>
      </table>
    </td></tr>
  </table>
</body>
</html>`

var (
	verificationTmpl = mustEmail(`{{define "content"}}
<p>Your verification code is:</p>
<p style="font-size:32px;letter-spacing:8px;font-weight:bold;text-align:center;">{{.Code}}</p>
<p>The code is valid for {{.ValidMinutes}} minutes.</p>
{{end}}`)

	orderTmpl = mustEmail(`{{define "content"}}
<p>Hello {{.Name}},</p>
<p>Thank you for your order #{{.OrderID}}. It will be delivered on <strong>{{.DeliveryDate}}</strong>.</p>
<table style="width:100%;border-collapse:collapse;margin:20px 0;">
  <tr style="background-color:#f8e1e9;">
    <th style="padding:8px;text-align:left;">Product</th>
    <th style="padding:8px;text-align:left;">Quantity</th>
    <th style="padding:8px;text-align:right;">Total</th>
  </tr>
  {{range .Lines}}
  <tr>
    <td style="padding:8px;">{{.Name}}</td>
    <td style="padding:8px;">{{.Quantity}}</td>
    <td style="padding:8px;text-align:right;">{{.Total}}</td>
  </tr>
  {{end}}
</table>
<p style="text-align:right;font-weight:bold;">Total to pay: {{.Total}}</p>
{{end}}`)

	reminderTmpl = mustEmail(`{{define "content"}}
<p>Hello {{.Name}},</p>
<p>We have missed you! Fresh bouquets arrive every day and your favourite flowers are waiting.</p>
<p style="text-align:center;margin:30px 0;">
  <a href="{{.ShopURL}}" style="padding:14px 32px;background-color:#c2185b;color:#ffffff;text-decoration:none;border-radius:8px;">Visit the shop</a>
</p>
{{end}}`)
)

func mustEmail(content string) *template.Template {
	t := template.Must(template.New("layout").Parse(emailLayout))
	return template.Must(t.Parse(content))
}

func render(t *template.Template, title string, data map[string]any) (string, error) {
	data["Title"] = title
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// OrderLineView ligne de commande affichée dans l'email
type OrderLineView struct {
	Name     string
	Quantity int
	Total    string
}

func VerificationEmail(code string, validFor time.Duration) (subject, body string, err error) {
	subject = "Your Ayana verification code"
	body, err = render(verificationTmpl, subject, map[string]any{
		"Code":         code,
		"ValidMinutes": int(validFor.Minutes()),
	})
	return subject, body, err
}

func OrderConfirmationEmail(name string, orderID int64, delivery time.Time, lines []OrderLineView, total float64) (subject, body string, err error) {
	subject = fmt.Sprintf("Ayana order #%d confirmed", orderID)
	body, err = render(orderTmpl, subject, map[string]any{
		"Name":         name,
		"OrderID":      orderID,
		"DeliveryDate": delivery.Format("02.01.2006"),
		"Lines":        lines,
		"Total":        FormatBAM(total),
	})
	return subject, body, err
}

func InactivityReminderEmail(name, shopURL string) (subject, body string, err error) {
	subject = "We miss you at Ayana 🌸"
	body, err = render(reminderTmpl, subject, map[string]any{
		"Name":    name,
		"ShopURL": shopURL,
	})
	return subject, body, err
}

// FormatBAM montant en marks convertibles
func FormatBAM(amount float64) string {
	return fmt.Sprintf("%.2f BAM", amount)
}
