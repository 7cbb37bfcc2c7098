package service

import (
	"context"
	"fmt"
	"log"

	"github.com/resend/resend-go/v2"
)

type ResendService struct {
	client     *resend.Client
	from       string
	fromName   string
	adminEmail string
}

func NewResendService(apiKey, fromEmail, fromName, adminEmail string) *ResendService {
	client := resend.NewClient(apiKey)

	return &ResendService{
		client:     client,
		from:       fromEmail,
		fromName:   fromName,
		adminEmail: adminEmail,
	}
}

func (rs *ResendService) deliver(ctx context.Context, kind, toEmail, subject, html, text string) error {
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", rs.fromName, rs.from),
		To:      []string{toEmail},
		Subject: subject,
		Html:    html,
		Text:    text,
	}

	log.Printf("ResendService: Sending %s email to %s with params: From=%s, Subject=%s",
		kind, toEmail, params.From, params.Subject)

	res, err := rs.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		log.Printf("ResendService: Error sending %s email to %s: %v", kind, toEmail, err)
		return fmt.Errorf("failed to send %s email: %w", kind, err)
	}

	log.Printf("ResendService: %s email sent successfully to %s. Message ID: %s", kind, toEmail, res.Id)
	return nil
}

func (rs *ResendService) SendWelcomeEmail(ctx context.Context, email, name string) error {
	subject := "Welcome to SplitUp!"

	html := fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<meta charset="UTF-8">
		<title>Welcome to SplitUp</title>
	</head>
	<body style="font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
		<h1 style="color: #7c3aed;">SplitUp</h1>
		<h2>Welcome, %s!</h2>
		<p>Your SplitUp account is ready. Browse our plans, book your share of a premium subscription, and we'll group you with other members once everyone has paid in full.</p>
		<p>You can track the status of your orders anytime from the My Orders page.</p>
		<hr>
		<p style="color: #6b7280; font-size: 14px;">SplitUp - Share subscriptions, split the cost</p>
	</body>
	</html>
	`, name)

	text := fmt.Sprintf(`
Hi %s,

Welcome to SplitUp!

Your account is ready. Browse our plans, book your share of a premium subscription, and we'll group you with other members once everyone has paid in full.

--
SplitUp Team
	`, name)

	return rs.deliver(ctx, "welcome", email, subject, html, text)
}

func (rs *ResendService) SendOrderConfirmationEmail(ctx context.Context, data OrderEmailData) error {
	subject := fmt.Sprintf("Order received: %s %s", data.ServiceName, data.PlanName)

	html := fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<meta charset="UTF-8">
		<title>Order Received</title>
	</head>
	<body style="font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
		<h1 style="color: #7c3aed;">SplitUp</h1>
		<p>Hi %s,</p>
		<p>We received your booking for <b>%s %s</b> (split between %d members).</p>
		<table cellpadding="4">
			<tr><td>Paid now</td><td><b>Rs %d</b></td></tr>
			<tr><td>Remaining</td><td><b>Rs %d</b></td></tr>
			<tr><td>Total</td><td><b>Rs %d</b></td></tr>
			<tr><td>Payment method</td><td><b>%s</b></td></tr>
		</table>
		<p>Pay the remaining amount to secure your spot. Once your group is full and everyone has settled, we will send your login credentials to this email address.</p>
		<hr>
		<p style="color: #6b7280; font-size: 14px;">SplitUp - Share subscriptions, split the cost</p>
	</body>
	</html>
	`, data.Name, data.ServiceName, data.PlanName, data.SplitBetween, data.AmountPaid, data.AmountRemaining, data.TotalAmount, data.PaymentMethod)

	text := fmt.Sprintf(`
Hi %s,

We received your booking for %s %s (split between %d members).

Paid now: Rs %d
Remaining: Rs %d
Total: Rs %d
Payment method: %s

Pay the remaining amount to secure your spot. Once your group is full and everyone has settled, we will send your login credentials to this email address.

--
SplitUp Team
	`, data.Name, data.ServiceName, data.PlanName, data.SplitBetween, data.AmountPaid, data.AmountRemaining, data.TotalAmount, data.PaymentMethod)

	return rs.deliver(ctx, "order confirmation", data.Email, subject, html, text)
}

func (rs *ResendService) SendAdminOrderAlert(ctx context.Context, data OrderEmailData) error {
	subject := fmt.Sprintf("New order: %s %s (%s)", data.ServiceName, data.PlanName, data.Name)

	html := fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<meta charset="UTF-8">
		<title>New Order</title>
	</head>
	<body style="font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; color: #333;">
		<h2>New SplitUp order</h2>
		<table cellpadding="4">
			<tr><td>Customer</td><td><b>%s</b> (%s)</td></tr>
			<tr><td>Plan</td><td>%s %s, split between %d</td></tr>
			<tr><td>Paid</td><td>Rs %d</td></tr>
			<tr><td>Remaining</td><td>Rs %d</td></tr>
			<tr><td>Total</td><td>Rs %d</td></tr>
			<tr><td>Payment method</td><td>%s</td></tr>
		</table>
	</body>
	</html>
	`, data.Name, data.Email, data.ServiceName, data.PlanName, data.SplitBetween, data.AmountPaid, data.AmountRemaining, data.TotalAmount, data.PaymentMethod)

	text := fmt.Sprintf(`
New SplitUp order

Customer: %s (%s)
Plan: %s %s, split between %d
Paid: Rs %d
Remaining: Rs %d
Total: Rs %d
Payment method: %s
	`, data.Name, data.Email, data.ServiceName, data.PlanName, data.SplitBetween, data.AmountPaid, data.AmountRemaining, data.TotalAmount, data.PaymentMethod)

	return rs.deliver(ctx, "admin alert", rs.adminEmail, subject, html, text)
}

func (rs *ResendService) SendCredentialsEmail(ctx context.Context, data CredentialsEmailData) error {
	subject := fmt.Sprintf("Your %s %s credentials are here!", data.ServiceName, data.PlanName)

	additional := ""
	if data.AdditionalInfo != "" {
		additional = fmt.Sprintf(`<tr><td>Notes</td><td><b>%s</b></td></tr>`, data.AdditionalInfo)
	}

	html := fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<meta charset="UTF-8">
		<title>Your Credentials</title>
	</head>
	<body style="font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
		<h1 style="color: #7c3aed;">SplitUp</h1>
		<p>Hi %s,</p>
		<p>Your group for <b>%s %s</b> is complete. Here are your login credentials:</p>
		<table cellpadding="4" style="background-color: #ede9fe; border-radius: 8px;">
			<tr><td>Username</td><td><b>%s</b></td></tr>
			<tr><td>Password</td><td><b>%s</b></td></tr>
			%s
		</table>
		<p style="color: #b91c1c; font-size: 14px;">Do not share these credentials outside your group and do not change the account password.</p>
		<hr>
		<p style="color: #6b7280; font-size: 14px;">SplitUp - Share subscriptions, split the cost</p>
	</body>
	</html>
	`, data.Name, data.ServiceName, data.PlanName, data.Username, data.Password, additional)

	textAdditional := ""
	if data.AdditionalInfo != "" {
		textAdditional = fmt.Sprintf("Notes: %s\n", data.AdditionalInfo)
	}

	text := fmt.Sprintf(`
Hi %s,

Your group for %s %s is complete. Here are your login credentials:

Username: %s
Password: %s
%s
Do not share these credentials outside your group and do not change the account password.

--
SplitUp Team
	`, data.Name, data.ServiceName, data.PlanName, data.Username, data.Password, textAdditional)

	return rs.deliver(ctx, "credentials", data.Email, subject, html, text)
}
