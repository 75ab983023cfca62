package mailer

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"

	"eventos_backend/internals/configs"
)

// Mailer envía las notificaciones del sistema. El motor de estados nunca
// lo invoca; solo los controllers tras una operación exitosa.
type Mailer struct {
	host       string
	port       int
	user       string
	password   string
	from       string
	adminEmail string
}

func New(cfg configs.Config) *Mailer {
	return &Mailer{
		host:       cfg.SMTPHost,
		port:       cfg.SMTPPort,
		user:       cfg.SMTPUser,
		password:   cfg.SMTPPassword,
		from:       cfg.FromEmail,
		adminEmail: cfg.AdminEmail,
	}
}

func (m *Mailer) send(to []string, subject, htmlBody string) error {
	if m.host == "" {
		log.Printf("[MAIL] SMTP no configurado, se omite '%s'", subject)
		return nil
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	dialer := gomail.NewDialer(m.host, m.port, m.user, m.password)
	return dialer.DialAndSend(msg)
}

// NotifyEvent avisa al creador (y al admin, si hay correo configurado)
// que su evento fue creado o actualizado.
func (m *Mailer) NotifyEvent(creatorEmail, eventName, action string) error {
	if creatorEmail == "" {
		return nil
	}
	to := []string{creatorEmail}
	if m.adminEmail != "" {
		to = append(to, m.adminEmail)
	}
	subject := fmt.Sprintf("Evento %s: %s", action, eventName)
	body := fmt.Sprintf(
		"<p>El evento <strong>%s</strong> ha sido %s en el Sistema de Gestión de Eventos.</p>",
		eventName, action,
	)
	return m.send(to, subject, body)
}

// NotifyNewUser manda el correo de bienvenida con la contraseña inicial.
func (m *Mailer) NotifyNewUser(email, username, plainPassword string) error {
	if email == "" {
		return nil
	}
	subject := "¡Bienvenido al Sistema de Gestión de Eventos!"
	body := fmt.Sprintf(
		"<p>Hola <strong>%s</strong>, tu cuenta ha sido creada.</p><p>Contraseña inicial: <code>%s</code></p>",
		username, plainPassword,
	)
	return m.send([]string{email}, subject, body)
}
