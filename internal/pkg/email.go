package pkg

import (
	"crypto/tls"
	"fmt"
	"html"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string // 发件人邮箱
	Password string // 授权码/密码
	From     string // 显示的发件人，可与 Username 相同
}

func NewEmailMessage(cfg SMTPConfig, to, subject, htmlBody string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)
	return m
}

func SendEmail(cfg SMTPConfig, to, subject, htmlBody string) error {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.TLSConfig = &tls.Config{ServerName: cfg.Host}
	return d.DialAndSend(NewEmailMessage(cfg, to, subject, htmlBody))
}

// MemberSubmittedHTML 新成员提交后发给管理员的通知
func MemberSubmittedHTML(communityName, memberName, location, profession, shareURL string) string {
	return fmt.Sprintf(`<p>您好，</p><p>社区 <b>%s</b> 收到一条新的成员信息：</p><ul><li>名字：%s</li><li>常住地：%s</li><li>职业/行业：%s</li></ul><p><a href="%s">查看名片</a></p>`,
		html.EscapeString(communityName), html.EscapeString(memberName), html.EscapeString(location),
		html.EscapeString(profession), html.EscapeString(shareURL))
}
