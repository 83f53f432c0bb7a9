package email

import "html/template"

var activationTmpl = template.Must(template.New("activation").Parse(`
<p>Hi {{.Name}},</p>
<p>Thanks for signing up. Click the link below to activate your account:</p>
<p><a href="{{.URL}}">{{.URL}}</a></p>
<p>If you did not create this account you can ignore this email.</p>
`))

var resetTmpl = template.Must(template.New("reset").Parse(`
<p>Hi {{.Name}},</p>
<p>We received a request to reset your password. Follow the link below to choose a new one:</p>
<p><a href="{{.URL}}">{{.URL}}</a></p>
<p>If you did not request a reset you can ignore this email.</p>
`))

var welcomeTmpl = template.Must(template.New("welcome").Parse(`
<p>Hi {{.Name}},</p>
<p>Welcome to Shopora! Your account is now active. Happy shopping.</p>
`))

var orderTmpl = template.Must(template.New("order").Parse(`
<p>Thank you for your order!</p>
<p>Order #{{.OrderID}}, total ${{.Total}}</p>
<p>Shipping to: {{.Address}}<br>Payment method: {{.PaymentMethod}}</p>
`))
