package notify

import (
	"bytes"
	"fmt"
	"html/template"

	"garastore/internal/model"
)

var receiptTemplate = template.Must(template.New("receipt").Funcs(template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("$%.2f", v) },
	"date":  func(o *model.Order) string { return o.CreatedAt.Format("2006-01-02") },
}).Parse(`<h1>Thanks for shopping with us</h1>
<p>Hi {{.User.Name}},</p>
<p>We have finished processing your order.</p>
<h2>[Order {{.Order.ID}}] ({{date .Order}})</h2>
<table>
<thead>
<tr>
<td><strong>Product</strong></td>
<td><strong>Quantity</strong></td>
<td align="right"><strong>Price</strong></td>
</tr>
</thead>
<tbody>
{{- range .Order.OrderItems}}
<tr>
<td>{{.Name}}</td>
<td align="center">{{.Quantity}}</td>
<td align="right">{{money .Price}}</td>
</tr>
{{- end}}
</tbody>
<tfoot>
<tr><td colspan="2">Items Price:</td><td align="right">{{money .Order.ItemsPrice}}</td></tr>
<tr><td colspan="2">Shipping Price:</td><td align="right">{{money .Order.ShippingPrice}}</td></tr>
<tr><td colspan="2">Tax Price:</td><td align="right">{{money .Order.TaxPrice}}</td></tr>
<tr><td colspan="2"><strong>Total Price:</strong></td><td align="right"><strong>{{money .Order.TotalPrice}}</strong></td></tr>
<tr><td colspan="2">Payment Method:</td><td align="right">{{.Order.PaymentMethod}}</td></tr>
</tfoot>
</table>
<h2>Shipping address</h2>
<p>
{{.Order.ShippingAddress.FullName}},<br/>
{{.Order.ShippingAddress.Address}},<br/>
{{.Order.ShippingAddress.City}},<br/>
{{.Order.ShippingAddress.Country}},<br/>
{{.Order.ShippingAddress.PostalCode}}<br/>
</p>
<hr/>
<p>Thanks for shopping with us.</p>
`))

var resetTemplate = template.Must(template.New("reset").Parse(`<p>Hi {{.Name}},</p>
<p>Please click the following link to reset your password:</p>
<a href="{{.Link}}">Reset Password</a>
<p>The link expires in {{.Expiry}}.</p>
`))

// RenderReceipt renders the payment receipt sent when an order is paid.
func RenderReceipt(order *model.Order, user *model.User) (Message, error) {
	var buf bytes.Buffer
	data := struct {
		Order *model.Order
		User  *model.User
	}{order, user}

	if err := receiptTemplate.Execute(&buf, data); err != nil {
		return Message{}, fmt.Errorf("failed to render receipt: %w", err)
	}

	return Message{
		To:      fmt.Sprintf("%s <%s>", user.Name, user.Email),
		Subject: fmt.Sprintf("New order %s", order.ID),
		HTML:    buf.String(),
	}, nil
}

// RenderPasswordReset renders the password reset email carrying link.
func RenderPasswordReset(user *model.User, link, expiry string) (Message, error) {
	var buf bytes.Buffer
	data := struct {
		Name   string
		Link   string
		Expiry string
	}{user.Name, link, expiry}

	if err := resetTemplate.Execute(&buf, data); err != nil {
		return Message{}, fmt.Errorf("failed to render password reset: %w", err)
	}

	return Message{
		To:      fmt.Sprintf("%s <%s>", user.Name, user.Email),
		Subject: "Reset Password",
		HTML:    buf.String(),
	}, nil
}
