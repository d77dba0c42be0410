package pkg

import (
	"crypto/tls"
	"errors"
	"fmt"
	"html"
	"regexp"
	"strings"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string // 发件人邮箱
	Password string // 授权码/密码
	From     string // 显示的发件人，可与 Username 相同
}

// Mailer 复用同一个 Dialer，每封邮件单独建连
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(cfg SMTPConfig) (*Mailer, error) {
	if cfg.Host == "" || cfg.Port == 0 {
		return nil, errors.New("smtp: host and port are required")
	}
	if cfg.From == "" {
		return nil, errors.New("smtp: from is required")
	}
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.TLSConfig = &tls.Config{ServerName: cfg.Host}
	return &Mailer{dialer: d, from: cfg.From}, nil
}

// Send HTML 正文，附带去标签后的纯文本版本
func (m *Mailer) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", PlainText(htmlBody))
	msg.AddAlternative("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}

// ModerationHTML 新内容的审核提醒邮件；body 已经过 Sanitizer，原样嵌入
func ModerationHTML(kind, id, title, body string) string {
	return fmt.Sprintf(`<p>New %s <b>%s</b> was published.</p><h3>%s</h3><div>%s</div>`,
		html.EscapeString(kind), html.EscapeString(id), title, body)
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

func PlainText(htmlBody string) string {
	text := tagPattern.ReplaceAllString(htmlBody, " ")
	return strings.Join(strings.Fields(html.UnescapeString(text)), " ")
}
