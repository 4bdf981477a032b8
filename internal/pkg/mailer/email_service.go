package mailer

import (
	"fmt"
	"strings"

	"ai-showroom-be/internal/entity"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendLeadAlert(toEmail string, lead *entity.Lead) error
	SendManagerRequest(toEmail string, lead *entity.Lead) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

func (s *emailService) SendLeadAlert(toEmail string, lead *entity.Lead) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("New order: %s %s", lead.Brand, lead.Model))

	price := fmt.Sprintf("%d", lead.Price)
	if lead.PriceNote != "" {
		price = lead.PriceNote
	}

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>New order from the showroom bot</h2>
			<table cellpadding="4">
				<tr><td><b>Channel</b></td><td>%s</td></tr>
				<tr><td><b>Customer</b></td><td>%s</td></tr>
				<tr><td><b>Category</b></td><td>%s</td></tr>
				<tr><td><b>Vehicle</b></td><td>%s %s (%s)</td></tr>
				<tr><td><b>Options</b></td><td>%s</td></tr>
				<tr><td><b>Price</b></td><td>%s</td></tr>
			</table>
			<p>The lead has also been pushed to your CRM sheet.</p>
		</div>
	`, lead.Channel, lead.UserRef, lead.Category, lead.Brand, lead.Model, lead.BodyType,
		strings.Join(lead.Options, ", "), price)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send lead alert to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Lead alert sent to %s\n", toEmail)
	return nil
}

func (s *emailService) SendManagerRequest(toEmail string, lead *entity.Lead) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Customer asked to talk to a manager")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Manager callback requested</h2>
			<p>A customer on <b>%s</b> asked to speak with a manager.</p>
			<p><b>Contact:</b> %s</p>
			<p><b>Customer ref:</b> %s</p>
			<p>Please reach out as soon as possible.</p>
		</div>
	`, lead.Channel, lead.Contact, lead.UserRef)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send manager request to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Manager request sent to %s\n", toEmail)
	return nil
}
