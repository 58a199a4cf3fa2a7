package mailer

import (
	"bytes"
	"cycleparadise/src/utils"
	"html/template"
	"time"
)

const layout = `{{define "layout"}}<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
{{template "content" .}}
<p>Best regards,<br>Cycle Paradise Team</p>
</div>{{end}}`

var contents = map[string]string{
	"confirmation": `{{define "content"}}<h2 style="color: #22c55e;">Booking Confirmation</h2>
<p>Dear {{.CustomerName}},</p>
<p>Thank you for your booking with Cycle Paradise! Your booking request has been received and is being processed.</p>
<div style="background: #f8f9fa; padding: 20px; border-radius: 8px; margin: 20px 0;">
<h3>Booking Details</h3>
<ul style="list-style: none; padding: 0;">
<li><strong>Booking Number:</strong> {{.BookingNumber}}</li>
<li><strong>Package:</strong> {{.PackageTitle}}</li>
<li><strong>Start Date:</strong> {{longDate .StartDate}}</li>
<li><strong>Participants:</strong> {{.Participants}}</li>
<li><strong>Total Amount:</strong> LKR {{amount .TotalAmount}}</li>
</ul>
</div>
<p>Our team will contact you within 24 hours to confirm your booking and provide payment instructions.</p>
{{with .ContactEmail}}<p>If you have any questions, please contact us at {{.}}</p>{{end}}{{end}}`,

	"cancellation": `{{define "content"}}<h2 style="color: #dc2626;">Booking Cancelled</h2>
<p>Dear {{.CustomerName}},</p>
<p>We regret to inform you that your booking {{.BookingNumber}} for {{.PackageTitle}} has been cancelled.</p>
{{with .Notes}}<p><strong>Note:</strong> {{.}}</p>{{end}}
{{with .ContactEmail}}<p>If you have any questions, please contact us at {{.}}</p>{{end}}{{end}}`,

	"payment": `{{define "content"}}<h2 style="color: #22c55e;">Payment Confirmed</h2>
<p>Dear {{.CustomerName}},</p>
<p>We have received your payment for booking <strong>{{.BookingNumber}}</strong>.</p>
<div style="background: #f8f9fa; padding: 20px; border-radius: 8px; margin: 20px 0;">
<h3>Payment Details</h3>
<ul style="list-style: none; padding: 0;">
<li><strong>Amount Paid:</strong> USD {{amount .TotalAmount}}</li>
<li><strong>Payment Status:</strong> {{.PaymentStatus}}</li>
</ul>
</div>
<p>Thank you for your payment. We look forward to seeing you on the tour!</p>{{end}}`,

	"custom": `{{define "content"}}<h2 style="color: #22c55e;">Message from Cycle Paradise</h2>
<p>Dear {{.CustomerName}},</p>
<div style="white-space: pre-wrap;">{{.Message}}</div>
<hr style="margin: 20px 0; border: none; border-top: 1px solid #e5e7eb;">
<p style="font-size: 12px; color: #6b7280;">Regarding booking: {{.BookingNumber}}<br>Package: {{.PackageTitle}}</p>{{end}}`,

	"admin": `{{define "content"}}<h2 style="color: #1e40af;">Admin Notification</h2>
<div style="white-space: pre-wrap;">{{.Message}}</div>{{end}}`,
}

var funcs = template.FuncMap{
	"longDate": func(t time.Time) string { return t.UTC().Format("January 2, 2006") },
	"amount":   func(v float64) string { return utils.FormatAmount(v) },
}

var templates = func() map[string]*template.Template {
	set := make(map[string]*template.Template, len(contents))
	for name, body := range contents {
		t := template.Must(template.New(name).Funcs(funcs).Parse(layout))
		set[name] = template.Must(t.Parse(body))
	}
	return set
}()

type templateData struct {
	BookingDetails
	ContactEmail string
	Message      string
	Notes        string
}

func render(name string, data templateData) (string, error) {
	var buf bytes.Buffer
	if err := templates[name].ExecuteTemplate(&buf, "layout", data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
