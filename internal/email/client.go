package email

import (
	"crypto/tls"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/wneessen/go-mail"
)

// Client representa el cliente de correo electrónico
type Client struct {
	host      string
	port      int
	user      string
	password  string
	fromName  string
	fromEmail string
}

// NewClient crea una nueva instancia del cliente de email
func NewClient(host, portStr, user, password, fromName, fromEmail string) (*Client, error) {
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("puerto SMTP inválido: %w", err)
	}

	return &Client{
		host:      host,
		port:      port,
		user:      user,
		password:  password,
		fromName:  fromName,
		fromEmail: fromEmail,
	}, nil
}

// SendEmail envía un correo electrónico
func (c *Client) SendEmail(to, subject, htmlBody string) error {
	// Crear mensaje
	m := mail.NewMsg()

	// Configurar remitente
	if err := m.From(fmt.Sprintf("%s <%s>", c.fromName, c.fromEmail)); err != nil {
		return fmt.Errorf("error al configurar remitente: %w", err)
	}

	// Configurar destinatario
	if err := m.To(to); err != nil {
		return fmt.Errorf("error al configurar destinatario: %w", err)
	}

	// Configurar asunto
	m.Subject(subject)

	// Configurar cuerpo HTML
	m.SetBodyString(mail.TypeTextHTML, htmlBody)

	// Crear cliente SMTP
	log.Printf("SMTP: connecting to %s:%d as user=%s", c.host, c.port, c.user)

	client, err := mail.NewClient(c.host,
		mail.WithPort(c.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(c.user),
		mail.WithPassword(c.password),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithTLSConfig(&tls.Config{
			ServerName: c.host,
		}),
	)
	if err != nil {
		return fmt.Errorf("error al crear cliente SMTP (host=%s port=%d user=%s): %w", c.host, c.port, c.user, err)
	}

	// Enviar correo
	if err := client.DialAndSend(m); err != nil {
		// Añadir contexto útil al error sin exponer credenciales
		return fmt.Errorf("error al enviar correo (host=%s port=%d user=%s): %w", c.host, c.port, c.user, err)
	}

	return nil
}

// VentaInfo contiene la información de la venta para el correo de confirmación
type VentaInfo struct {
	ID                int
	MontoTotal        float64
	MontoCompensacion float64
	Fecha             time.Time
}

// ReembolsoInfo contiene la información del reembolso para el correo de
// notificación
type ReembolsoInfo struct {
	VentaID          int
	MontoOriginal    float64
	Penalizacion     float64
	MontoReembolsado float64
	Fecha            time.Time
}

// SendCompraConfirmacion envía un correo de confirmación de compra
func (c *Client) SendCompraConfirmacion(to string, venta VentaInfo) error {
	subject := fmt.Sprintf("Confirmación de Compra #%d - %s", venta.ID, c.fromName)
	htmlBody := generarHTMLCompra(venta)

	return c.SendEmail(to, subject, htmlBody)
}

// SendReembolsoNotificacion envía un correo notificando un reembolso procesado
func (c *Client) SendReembolsoNotificacion(to string, reembolso ReembolsoInfo) error {
	subject := fmt.Sprintf("Reembolso de la Venta #%d - %s", reembolso.VentaID, c.fromName)
	htmlBody := generarHTMLReembolso(reembolso)

	return c.SendEmail(to, subject, htmlBody)
}

// generarHTMLCompra genera el HTML del correo de confirmación de compra
func generarHTMLCompra(venta VentaInfo) string {
	compensacionHTML := ""
	if venta.MontoCompensacion > 0 {
		compensacionHTML = fmt.Sprintf(`
									<tr>
										<td style="padding: 8px 0;"><strong>Pagado con puntos:</strong></td>
										<td style="padding: 8px 0; text-align: right; color: #28a745;">-Bs %.2f</td>
									</tr>
		`, venta.MontoCompensacion)
	}

	html := fmt.Sprintf(`
<!DOCTYPE html>
<html lang="es">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>Confirmación de Compra</title>
</head>
<body style="margin: 0; padding: 0; font-family: Arial, sans-serif; background-color: #f4f4f4;">
	<table width="100%%" cellpadding="0" cellspacing="0" style="background-color: #f4f4f4; padding: 20px;">
		<tr>
			<td align="center">
				<table width="600" cellpadding="0" cellspacing="0" style="background-color: #ffffff; border-radius: 8px; overflow: hidden; box-shadow: 0 2px 4px rgba(0,0,0,0.1);">
					<!-- Header -->
					<tr>
						<td style="background: linear-gradient(135deg, #667eea 0%%, #764ba2 100%%); padding: 40px 20px; text-align: center;">
							<h1 style="color: #ffffff; margin: 0; font-size: 28px;">¡Compra Confirmada!</h1>
							<p style="color: #ffffff; margin: 10px 0 0 0; font-size: 16px;">Gracias por viajar con nosotros</p>
						</td>
					</tr>

					<!-- Contenido -->
					<tr>
						<td style="padding: 40px 30px;">
							<div style="background-color: #f8f9fa; border-left: 4px solid #667eea; padding: 20px; margin-bottom: 30px;">
								<h2 style="margin: 0 0 15px 0; color: #333; font-size: 20px;">Detalles de la Compra</h2>
								<table width="100%%" cellpadding="0" cellspacing="0">
									<tr>
										<td style="padding: 8px 0;"><strong>N° de Venta:</strong></td>
										<td style="padding: 8px 0; text-align: right;">#%d</td>
									</tr>
									<tr>
										<td style="padding: 8px 0;"><strong>Fecha de Pago:</strong></td>
										<td style="padding: 8px 0; text-align: right;">%s</td>
									</tr>
									%s
									<tr style="border-top: 2px solid #667eea;">
										<td style="padding: 15px 0 0 0;"><strong style="font-size: 18px;">Total:</strong></td>
										<td style="padding: 15px 0 0 0; text-align: right;"><strong style="font-size: 24px; color: #667eea;">Bs %.2f</strong></td>
									</tr>
								</table>
							</div>

							<div style="margin-top: 30px; padding: 20px; background-color: #fff3cd; border-radius: 8px; border-left: 4px solid #ffc107;">
								<h4 style="margin: 0 0 10px 0; color: #856404;">Información Importante</h4>
								<ul style="margin: 0; padding-left: 20px; color: #856404;">
									<li>Puede consultar el detalle de su itinerario en su cuenta</li>
									<li>Conserve este correo como comprobante de su compra</li>
								</ul>
							</div>
						</td>
					</tr>

					<!-- Footer -->
					<tr>
						<td style="background-color: #f8f9fa; padding: 30px; text-align: center; border-top: 1px solid #e0e0e0;">
							<p style="margin: 0 0 10px 0; color: #666; font-size: 14px;">
								Si tiene alguna pregunta, no dude en contactarnos
							</p>
							<p style="margin: 0; color: #999; font-size: 12px;">
								Este es un correo automático, por favor no responder directamente
							</p>
						</td>
					</tr>
				</table>
			</td>
		</tr>
	</table>
</body>
</html>
	`,
		venta.ID,
		venta.Fecha.Format("02/01/2006 15:04"),
		compensacionHTML,
		venta.MontoTotal,
	)

	return html
}

// generarHTMLReembolso genera el HTML del correo de notificación de reembolso
func generarHTMLReembolso(reembolso ReembolsoInfo) string {
	penalizacionHTML := ""
	if reembolso.Penalizacion > 0 {
		penalizacionHTML = fmt.Sprintf(`
									<tr>
										<td style="padding: 8px 0;"><strong>Penalización por cancelación:</strong></td>
										<td style="padding: 8px 0; text-align: right; color: #dc3545;">-Bs %.2f</td>
									</tr>
		`, reembolso.Penalizacion)
	}

	html := fmt.Sprintf(`
<!DOCTYPE html>
<html lang="es">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>Reembolso Procesado</title>
</head>
<body style="margin: 0; padding: 0; font-family: Arial, sans-serif; background-color: #f4f4f4;">
	<table width="100%%" cellpadding="0" cellspacing="0" style="background-color: #f4f4f4; padding: 20px;">
		<tr>
			<td align="center">
				<table width="600" cellpadding="0" cellspacing="0" style="background-color: #ffffff; border-radius: 8px; overflow: hidden; box-shadow: 0 2px 4px rgba(0,0,0,0.1);">
					<!-- Header -->
					<tr>
						<td style="background: linear-gradient(135deg, #667eea 0%%, #764ba2 100%%); padding: 40px 20px; text-align: center;">
							<h1 style="color: #ffffff; margin: 0; font-size: 28px;">Reembolso Procesado</h1>
							<p style="color: #ffffff; margin: 10px 0 0 0; font-size: 16px;">Lamentamos que no pueda viajar en esta ocasión</p>
						</td>
					</tr>

					<!-- Contenido -->
					<tr>
						<td style="padding: 40px 30px;">
							<div style="background-color: #f8f9fa; border-left: 4px solid #667eea; padding: 20px; margin-bottom: 30px;">
								<h2 style="margin: 0 0 15px 0; color: #333; font-size: 20px;">Detalles del Reembolso</h2>
								<table width="100%%" cellpadding="0" cellspacing="0">
									<tr>
										<td style="padding: 8px 0;"><strong>N° de Venta:</strong></td>
										<td style="padding: 8px 0; text-align: right;">#%d</td>
									</tr>
									<tr>
										<td style="padding: 8px 0;"><strong>Fecha:</strong></td>
										<td style="padding: 8px 0; text-align: right;">%s</td>
									</tr>
									<tr>
										<td style="padding: 8px 0;"><strong>Monto original:</strong></td>
										<td style="padding: 8px 0; text-align: right;">Bs %.2f</td>
									</tr>
									%s
									<tr style="border-top: 2px solid #667eea;">
										<td style="padding: 15px 0 0 0;"><strong style="font-size: 18px;">Monto reembolsado:</strong></td>
										<td style="padding: 15px 0 0 0; text-align: right;"><strong style="font-size: 24px; color: #667eea;">Bs %.2f</strong></td>
									</tr>
								</table>
							</div>

							<div style="margin-top: 30px; padding: 20px; background-color: #fff3cd; border-radius: 8px; border-left: 4px solid #ffc107;">
								<h4 style="margin: 0 0 10px 0; color: #856404;">Información Importante</h4>
								<ul style="margin: 0; padding-left: 20px; color: #856404;">
									<li>El reembolso se verá reflejado en su método de pago en los próximos días hábiles</li>
									<li>Conserve este correo como comprobante del reembolso</li>
								</ul>
							</div>
						</td>
					</tr>

					<!-- Footer -->
					<tr>
						<td style="background-color: #f8f9fa; padding: 30px; text-align: center; border-top: 1px solid #e0e0e0;">
							<p style="margin: 0 0 10px 0; color: #666; font-size: 14px;">
								Si tiene alguna pregunta, no dude en contactarnos
							</p>
							<p style="margin: 0; color: #999; font-size: 12px;">
								Este es un correo automático, por favor no responder directamente
							</p>
						</td>
					</tr>
				</table>
			</td>
		</tr>
	</table>
</body>
</html>
	`,
		reembolso.VentaID,
		reembolso.Fecha.Format("02/01/2006 15:04"),
		reembolso.MontoOriginal,
		penalizacionHTML,
		reembolso.MontoReembolsado,
	)

	return html
}
