package mailer

import (
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"github.com/GrandsonfrmO/galaxyshop-backend/internal/maillog"
)

var subjects = map[maillog.Type]string{
	maillog.TypeWelcome:           "Welcome to GalaxyShop",
	maillog.TypeOrderConfirmation: "Your GalaxyShop order #{{.OrderID}}",
	maillog.TypeAdminNotification: "New order #{{.OrderID}}: {{.Total}} GNF",
	maillog.TypeShipping:          "Your GalaxyShop order #{{.OrderID}} has shipped",
	maillog.TypePasswordReset:     "Reset your GalaxyShop password",
	maillog.TypeContactResponse:   "Re: your message to GalaxyShop",
}

var bodies = map[maillog.Type]string{
	maillog.TypeWelcome: `<h1>Welcome, {{.Name}}!</h1>
<p>Your GalaxyShop account is ready. Happy shopping.</p>`,

	maillog.TypeOrderConfirmation: `<h1>Thank you, {{.Name}}!</h1>
<p>We received your order <strong>#{{.OrderID}}</strong>.</p>
<table>
{{range .Items}}<tr><td>{{.ProductName}}{{if .SelectedSize}} ({{.SelectedSize}}{{if .SelectedColor}}, {{.SelectedColor}}{{end}}){{end}}</td><td>x{{.Quantity}}</td><td>{{.PriceAtPurchase}} GNF</td></tr>
{{end}}</table>
<p>Delivery to {{.Zone}}, {{.Address}}: {{.DeliveryFee}} GNF</p>
<p><strong>Total: {{.Total}} GNF</strong></p>`,

	maillog.TypeAdminNotification: `<h1>New order #{{.OrderID}}</h1>
<p>{{.Name}} ({{.Email}}, {{.Phone}})</p>
<p>{{.Zone}}, {{.Address}}</p>
<table>
{{range .Items}}<tr><td>{{.ProductName}}</td><td>x{{.Quantity}}</td><td>{{.PriceAtPurchase}} GNF</td></tr>
{{end}}</table>
<p>Subtotal {{.Subtotal}} + delivery {{.DeliveryFee}} = <strong>{{.Total}} GNF</strong></p>`,

	maillog.TypeShipping: `<h1>Good news, {{.Name}}!</h1>
<p>Your order <strong>#{{.OrderID}}</strong> is on its way to {{.Address}}.</p>`,

	maillog.TypePasswordReset: `<p>Someone asked to reset the password for {{.Email}}.</p>
<p><a href="{{.ResetURL}}">Choose a new password</a>. The link expires in one hour.</p>
<p>If this wasn't you, ignore this email.</p>`,

	maillog.TypeContactResponse: `<p>Hi {{.Name}},</p>
<p>{{.Reply}}</p>
<p>- The GalaxyShop team</p>`,
}

type emailTemplate struct {
	subject *texttemplate.Template
	body    *htmltemplate.Template
}

var templates = map[maillog.Type]emailTemplate{}

func init() {
	for t, s := range subjects {
		templates[t] = emailTemplate{
			subject: texttemplate.Must(texttemplate.New(string(t) + ".subject").Parse(s)),
			body:    htmltemplate.Must(htmltemplate.New(string(t)).Parse(bodies[t])),
		}
	}
}

// Render produces the subject and HTML body for an email type.
func Render(t maillog.Type, data map[string]any) (subject, html string, err error) {
	et, ok := templates[t]
	if !ok {
		return "", "", fmt.Errorf("no template for email type %q", t)
	}
	var sb, bb strings.Builder
	if err := et.subject.Execute(&sb, data); err != nil {
		return "", "", fmt.Errorf("render %s subject: %w", t, err)
	}
	if err := et.body.Execute(&bb, data); err != nil {
		return "", "", fmt.Errorf("render %s body: %w", t, err)
	}
	return sb.String(), bb.String(), nil
}
