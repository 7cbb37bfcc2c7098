package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mailersend/mailersend-go"
)

type EmailService struct {
	client     *mailersend.Mailersend
	from       mailersend.From
	adminEmail string
}

func NewEmailService(apiKey, fromEmail, fromName, adminEmail string) *EmailService {
	client := mailersend.NewMailersend(apiKey)

	from := mailersend.From{
		Name:  fromName,
		Email: fromEmail,
	}

	return &EmailService{
		client:     client,
		from:       from,
		adminEmail: adminEmail,
	}
}

func (es *EmailService) deliver(ctx context.Context, kind, toName, toEmail, subject, html, text string) error {
	recipients := []mailersend.Recipient{
		{
			Name:  toName,
			Email: toEmail,
		},
	}

	message := es.client.Email.NewMessage()
	message.SetFrom(es.from)
	message.SetRecipients(recipients)
	message.SetSubject(subject)
	message.SetHTML(html)
	message.SetText(text)

	// Set timeout context
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	res, err := es.client.Email.Send(ctx, message)
	if err != nil {
		log.Printf("Error sending %s email to %s: %v", kind, toEmail, err)
		return fmt.Errorf("failed to send %s email: %w", kind, err)
	}

	log.Printf("%s email sent successfully to %s. Message ID: %s", kind, toEmail, res.Header.Get("X-Message-Id"))
	return nil
}

func (es *EmailService) SendWelcomeEmail(ctx context.Context, email, name string) error {
	subject := "Welcome to SplitUp!"

	html := fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<meta charset="UTF-8">
		<meta name="viewport" content="width=device-width, initial-scale=1.0">
		<title>Welcome to SplitUp</title>
		<style>
			body {
				font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif;
				line-height: 1.6;
				color: #333;
				max-width: 600px;
				margin: 0 auto;
				padding: 20px;
				background-color: #f8f9fa;
			}
			.container {
				background-color: white;
				border-radius: 10px;
				padding: 30px;
				box-shadow: 0 2px 10px rgba(0,0,0,0.1);
			}
			.header {
				text-align: center;
				margin-bottom: 30px;
			}
			.logo {
				font-size: 28px;
				font-weight: bold;
				color: #7c3aed;
				margin-bottom: 10px;
			}
			.title {
				font-size: 24px;
				color: #1f2937;
				margin-bottom: 20px;
			}
			.footer {
				text-align: center;
				margin-top: 30px;
				padding-top: 20px;
				border-top: 1px solid #e5e7eb;
				color: #6b7280;
				font-size: 14px;
			}
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<div class="logo">SplitUp</div>
				<h1 class="title">Welcome, %s!</h1>
			</div>
			<p>Your SplitUp account is ready. Browse our plans, book your share of a premium subscription, and we'll group you with other members once everyone has paid in full.</p>
			<p>You can track the status of your orders anytime from the My Orders page.</p>
			<div class="footer">
				<p>SplitUp - Share subscriptions, split the cost</p>
			</div>
		</div>
	</body>
	</html>
	`, name)

	text := fmt.Sprintf(`
Hi %s,

Welcome to SplitUp!

Your account is ready. Browse our plans, book your share of a premium subscription, and we'll group you with other members once everyone has paid in full.

You can track the status of your orders anytime from the My Orders page.

--
SplitUp Team
	`, name)

	return es.deliver(ctx, "Welcome", name, email, subject, html, text)
}

func (es *EmailService) SendOrderConfirmationEmail(ctx context.Context, data OrderEmailData) error {
	subject := fmt.Sprintf("Order received: %s %s", data.ServiceName, data.PlanName)

	html := fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<meta charset="UTF-8">
		<meta name="viewport" content="width=device-width, initial-scale=1.0">
		<title>Order Received</title>
		<style>
			body {
				font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif;
				line-height: 1.6;
				color: #333;
				max-width: 600px;
				margin: 0 auto;
				padding: 20px;
				background-color: #f8f9fa;
			}
			.container {
				background-color: white;
				border-radius: 10px;
				padding: 30px;
				box-shadow: 0 2px 10px rgba(0,0,0,0.1);
			}
			.logo {
				font-size: 28px;
				font-weight: bold;
				color: #7c3aed;
				text-align: center;
				margin-bottom: 20px;
			}
			.summary {
				background-color: #f3f4f6;
				border-radius: 8px;
				padding: 20px;
				margin: 20px 0;
			}
			.summary td {
				padding: 4px 12px 4px 0;
			}
			.amount {
				font-weight: bold;
				color: #1f2937;
			}
			.footer {
				text-align: center;
				margin-top: 30px;
				padding-top: 20px;
				border-top: 1px solid #e5e7eb;
				color: #6b7280;
				font-size: 14px;
			}
		</style>
	</head>
	<body>
		<div class="container">
			<div class="logo">SplitUp</div>
			<p>Hi %s,</p>
			<p>We received your booking. Here is a summary of your order:</p>
			<div class="summary">
				<table>
					<tr><td>Service</td><td class="amount">%s %s</td></tr>
					<tr><td>Split between</td><td class="amount">%d members</td></tr>
					<tr><td>Paid now</td><td class="amount">Rs %d</td></tr>
					<tr><td>Remaining</td><td class="amount">Rs %d</td></tr>
					<tr><td>Total</td><td class="amount">Rs %d</td></tr>
					<tr><td>Payment method</td><td class="amount">%s</td></tr>
				</table>
			</div>
			<p>Pay the remaining amount to secure your spot. Once your group is full and everyone has settled, we will send your login credentials to this email address.</p>
			<div class="footer">
				<p>SplitUp - Share subscriptions, split the cost</p>
			</div>
		</div>
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

	return es.deliver(ctx, "Order confirmation", data.Name, data.Email, subject, html, text)
}

func (es *EmailService) SendAdminOrderAlert(ctx context.Context, data OrderEmailData) error {
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

	return es.deliver(ctx, "Admin alert", "SplitUp Admin", es.adminEmail, subject, html, text)
}

func (es *EmailService) SendCredentialsEmail(ctx context.Context, data CredentialsEmailData) error {
	subject := fmt.Sprintf("Your %s %s credentials are here!", data.ServiceName, data.PlanName)

	additional := ""
	if data.AdditionalInfo != "" {
		additional = fmt.Sprintf(`<tr><td>Notes</td><td class="cred">%s</td></tr>`, data.AdditionalInfo)
	}

	html := fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<meta charset="UTF-8">
		<meta name="viewport" content="width=device-width, initial-scale=1.0">
		<title>Your Credentials</title>
		<style>
			body {
				font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif;
				line-height: 1.6;
				color: #333;
				max-width: 600px;
				margin: 0 auto;
				padding: 20px;
				background-color: #f8f9fa;
			}
			.container {
				background-color: white;
				border-radius: 10px;
				padding: 30px;
				box-shadow: 0 2px 10px rgba(0,0,0,0.1);
			}
			.logo {
				font-size: 28px;
				font-weight: bold;
				color: #7c3aed;
				text-align: center;
				margin-bottom: 20px;
			}
			.creds {
				background-color: #ede9fe;
				border-radius: 8px;
				padding: 20px;
				margin: 20px 0;
			}
			.creds td {
				padding: 4px 12px 4px 0;
			}
			.cred {
				font-family: 'Courier New', monospace;
				font-weight: bold;
				color: #1f2937;
			}
			.warning {
				color: #b91c1c;
				font-size: 14px;
			}
			.footer {
				text-align: center;
				margin-top: 30px;
				padding-top: 20px;
				border-top: 1px solid #e5e7eb;
				color: #6b7280;
				font-size: 14px;
			}
		</style>
	</head>
	<body>
		<div class="container">
			<div class="logo">SplitUp</div>
			<p>Hi %s,</p>
			<p>Your group for <b>%s %s</b> is complete. Here are your login credentials:</p>
			<div class="creds">
				<table>
					<tr><td>Username</td><td class="cred">%s</td></tr>
					<tr><td>Password</td><td class="cred">%s</td></tr>
					%s
				</table>
			</div>
			<p class="warning">Do not share these credentials outside your group and do not change the account password.</p>
			<div class="footer">
				<p>SplitUp - Share subscriptions, split the cost</p>
			</div>
		</div>
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

	return es.deliver(ctx, "Credentials", data.Name, data.Email, subject, html, text)
}
