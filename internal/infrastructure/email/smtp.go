// Package email sends subscription lifecycle notifications over SMTP.
// All sends are best effort: callers get a bool back and decide whether a
// failed notification matters. Copy is Spanish, prices render in DOP.
package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"construlink/internal/shared/logger"
	"construlink/internal/shared/utils"
)

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
}

type SMTPNotifier struct {
	config SMTPConfig
	dialer *gomail.Dialer
	logger logger.Interface
}

func NewSMTPNotifier(config SMTPConfig, logger logger.Interface) *SMTPNotifier {
	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)

	return &SMTPNotifier{
		config: config,
		dialer: dialer,
		logger: logger.Named("email"),
	}
}

func (s *SMTPNotifier) SendWelcomeEmail(to, supplierName, planName string, trialDays int) bool {
	subject := "Bienvenido a Construlink"
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>¡Bienvenido a Construlink, %s!</h2>
			<p>Su suscripción al plan <strong>%s</strong> está activa en período de prueba.</p>
			<p>Tiene %d días para explorar todas las funciones de su plan sin costo.</p>
			<p>Gracias por unirse al directorio de proveedores de construcción.</p>
		</body>
		</html>
	`, supplierName, planName, trialDays)

	plainBody := fmt.Sprintf(`
¡Bienvenido a Construlink, %s!

Su suscripción al plan %s está activa en período de prueba.
Tiene %d días para explorar todas las funciones de su plan sin costo.

Gracias por unirse al directorio de proveedores de construcción.
	`, supplierName, planName, trialDays)

	return s.send(to, subject, htmlBody, plainBody)
}

func (s *SMTPNotifier) SendTrialReminder(to, supplierName, planName string, daysLeft int, monthlyPrice int64) bool {
	price := utils.FormatPrice(monthlyPrice, "DOP")

	subject := fmt.Sprintf("Su período de prueba termina en %d días", daysLeft)
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Hola %s,</h2>
			<p>Su período de prueba del plan <strong>%s</strong> termina en %d días.</p>
			<p>Para continuar sin interrupciones, active su suscripción por %s al mes.</p>
		</body>
		</html>
	`, supplierName, planName, daysLeft, price)

	plainBody := fmt.Sprintf(`
Hola %s,

Su período de prueba del plan %s termina en %d días.
Para continuar sin interrupciones, active su suscripción por %s al mes.
	`, supplierName, planName, daysLeft, price)

	return s.send(to, subject, htmlBody, plainBody)
}

func (s *SMTPNotifier) SendTrialEnded(to, supplierName, planName string) bool {
	subject := "Su período de prueba ha terminado"
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Hola %s,</h2>
			<p>Su período de prueba del plan <strong>%s</strong> ha terminado.</p>
			<p>Active su suscripción para seguir apareciendo en el directorio y recibiendo cotizaciones.</p>
		</body>
		</html>
	`, supplierName, planName)

	plainBody := fmt.Sprintf(`
Hola %s,

Su período de prueba del plan %s ha terminado.
Active su suscripción para seguir apareciendo en el directorio y recibiendo cotizaciones.
	`, supplierName, planName)

	return s.send(to, subject, htmlBody, plainBody)
}

func (s *SMTPNotifier) SendPaymentSuccess(to, supplierName string, amount int64) bool {
	price := utils.FormatPrice(amount, "DOP")

	subject := "Pago recibido"
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Hola %s,</h2>
			<p>Hemos recibido su pago de <strong>%s</strong>.</p>
			<p>Su suscripción está activa. Gracias por confiar en Construlink.</p>
		</body>
		</html>
	`, supplierName, price)

	plainBody := fmt.Sprintf(`
Hola %s,

Hemos recibido su pago de %s.
Su suscripción está activa. Gracias por confiar en Construlink.
	`, supplierName, price)

	return s.send(to, subject, htmlBody, plainBody)
}

func (s *SMTPNotifier) SendPaymentFailed(to, supplierName string, amount int64) bool {
	price := utils.FormatPrice(amount, "DOP")

	subject := "No pudimos procesar su pago"
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Hola %s,</h2>
			<p>No pudimos procesar su pago de <strong>%s</strong>.</p>
			<p>Verifique su método de pago para evitar la suspensión de su suscripción.</p>
		</body>
		</html>
	`, supplierName, price)

	plainBody := fmt.Sprintf(`
Hola %s,

No pudimos procesar su pago de %s.
Verifique su método de pago para evitar la suspensión de su suscripción.
	`, supplierName, price)

	return s.send(to, subject, htmlBody, plainBody)
}

func (s *SMTPNotifier) SendSubscriptionCancelled(to, supplierName string, accessUntil string) bool {
	subject := "Su suscripción ha sido cancelada"
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Hola %s,</h2>
			<p>Su suscripción ha sido cancelada.</p>
			<p>Mantendrá acceso a su plan hasta el %s.</p>
			<p>Puede reactivarla en cualquier momento desde su panel.</p>
		</body>
		</html>
	`, supplierName, accessUntil)

	plainBody := fmt.Sprintf(`
Hola %s,

Su suscripción ha sido cancelada.
Mantendrá acceso a su plan hasta el %s.
Puede reactivarla en cualquier momento desde su panel.
	`, supplierName, accessUntil)

	return s.send(to, subject, htmlBody, plainBody)
}

func (s *SMTPNotifier) send(to, subject, htmlBody, plainBody string) bool {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.config.FromAddress, s.config.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		s.logger.Errorw("failed to send email", "error", err, "to", to, "subject", subject)
		return false
	}

	return true
}
