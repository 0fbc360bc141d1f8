package services

import (
	"fmt"
	"strings"
	"time"

	"agropos/config"
	"agropos/models"

	"gopkg.in/gomail.v2"
)

// EmailService предоставляет методы для отправки служебных уведомлений
type EmailService struct {
	dialer *gomail.Dialer
	from   string
	owner  string
	shop   string
}

// NewEmailService создает новый экземпляр EmailService
func NewEmailService(cfg *config.Config) *EmailService {
	dialer := gomail.NewDialer(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Username,
		cfg.SMTP.Password,
	)

	return &EmailService{
		dialer: dialer,
		from:   cfg.SMTP.From,
		owner:  cfg.Shop.OwnerEmail,
		shop:   cfg.Shop.Name,
	}
}

// SendEmail отправляет email
func (s *EmailService) SendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("ошибка отправки email: %v", err)
	}

	return nil
}

// SendDebtSettledNotification отправляет уведомление о полном погашении долга
func (s *EmailService) SendDebtSettledNotification(customerName string, debtID uint, amount float64) error {
	subject := "Долг полностью погашен"
	body := fmt.Sprintf(`
		<h2>Долг погашен</h2>
		<p>Клиент: %s</p>
		<p>Запись долга: #%d</p>
		<p>Сумма: %.2f</p>
		<p>Дата: %s</p>
		<p>%s</p>
	`, customerName, debtID, amount, time.Now().Format("02.01.2006 15:04:05"), s.shop)

	return s.SendEmail(s.owner, subject, body)
}

// SendOverdueDigest отправляет сводку просроченных долгов
func (s *EmailService) SendOverdueDigest(records []models.DebtRecord) error {
	if len(records) == 0 {
		return nil
	}

	var rows strings.Builder
	for _, r := range records {
		due := ""
		if r.DueDate != nil {
			due = r.DueDate.Format("02.01.2006")
		}
		rows.WriteString(fmt.Sprintf(
			"<tr><td>%s</td><td>%s</td><td>%.2f</td><td>%s</td></tr>",
			r.Customer.Name, r.Customer.Village, r.RemainingAmount, due,
		))
	}

	subject := fmt.Sprintf("Просроченные долги: %d", len(records))
	body := fmt.Sprintf(`
		<h2>Просроченные долги</h2>
		<table border="1" cellpadding="4">
			<tr><th>Клиент</th><th>Деревня</th><th>Остаток</th><th>Срок</th></tr>
			%s
		</table>
		<p>%s</p>
	`, rows.String(), s.shop)

	return s.SendEmail(s.owner, subject, body)
}

// SendLowStockDigest отправляет сводку товаров с низким остатком
func (s *EmailService) SendLowStockDigest(products []models.Product) error {
	if len(products) == 0 {
		return nil
	}

	var rows strings.Builder
	for _, p := range products {
		rows.WriteString(fmt.Sprintf(
			"<tr><td>%s</td><td>%g %s</td><td>%g %s</td></tr>",
			p.Name, p.Stock, p.Unit, p.MinStock, p.Unit,
		))
	}

	subject := fmt.Sprintf("Товары на исходе: %d", len(products))
	body := fmt.Sprintf(`
		<h2>Низкие остатки</h2>
		<table border="1" cellpadding="4">
			<tr><th>Товар</th><th>Остаток</th><th>Минимум</th></tr>
			%s
		</table>
		<p>%s</p>
	`, rows.String(), s.shop)

	return s.SendEmail(s.owner, subject, body)
}
