package service

import (
	"errors"
	"fmt"
	"html"
	"time"

	"finance-guru/config"
	"finance-guru/models"

	"gopkg.in/gomail.v2"
)

// ErrEmailDisabled 未启用邮件服务
var ErrEmailDisabled = errors.New("邮件服务未启用，请配置 FINANCE_EMAIL_ENABLED=true")

// sender 发送已组装好的邮件，*gomail.Dialer 实现了它
type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// EmailService 邮件服务
type EmailService struct {
	cfg    *config.EmailConfig
	sender sender
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	s := &EmailService{cfg: cfg}
	if cfg != nil {
		s.sender = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	}
	return s
}

// Enabled 邮件服务是否已启用
func (s *EmailService) Enabled() bool {
	return s.cfg != nil && s.cfg.Enabled
}

// SendPasswordResetEmail 发送密码重置邮件
func (s *EmailService) SendPasswordResetEmail(toEmail, username, resetLink string) error {
	if !s.Enabled() {
		return ErrEmailDisabled
	}
	m := s.newMessage(toEmail, "Finance Guru - Password Reset", resetEmailBody(username, resetLink))
	if err := s.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("发送邮件失败: %w", err)
	}
	return nil
}

func (s *EmailService) newMessage(to, subject, body string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.Username, s.cfg.From))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)
	return m
}

// resetEmailBody 用户名和链接都做 HTML 转义
func resetEmailBody(username, resetLink string) string {
	name := html.EscapeString(username)
	link := html.EscapeString(resetLink)
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; background: #F1F5F9; color: #0F172A; margin: 0; padding: 20px; }
        .card { max-width: 520px; margin: 0 auto; background: #FFFFFF; border-radius: 12px; padding: 28px; }
        .card h2 { color: #0F766E; margin-top: 0; }
        .btn { display: inline-block; background: #0F766E; color: #FFFFFF !important; text-decoration: none; padding: 12px 28px; border-radius: 8px; font-weight: bold; }
        .muted { color: #64748B; font-size: 14px; }
        .link { word-break: break-all; color: #0F766E; font-size: 12px; }
    </style>
</head>
<body>
    <div class="card">
        <h2>Finance Guru</h2>
        <p>Hi <strong>%s</strong>,</p>
        <p>We received a request to reset the password of your Finance Guru account.</p>
        <p style="text-align: center; margin: 28px 0;">
            <a href="%s" class="btn">Reset Password</a>
        </p>
        <p class="muted">The link expires in %d minutes and can be used once.</p>
        <p class="muted">If you did not ask for a reset you can ignore this email; your password stays the same.</p>
        <p class="link">%s</p>
    </div>
</body>
</html>
`, name, link, int(models.PasswordResetTTL/time.Minute), link)
}
