package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"Lee_Directory/internal/model"
	"Lee_Directory/internal/pkg"
)

const (
	EventCommunityCreated = "community.created"
	EventCommunityUpdated = "community.updated"
	EventCommunityDeleted = "community.deleted"
	EventMemberSubmitted  = "member.submitted"
	EventMemberUpdated    = "member.updated"
	EventMemberDeleted    = "member.deleted"
)

// Event 提交成功后对外广播的领域事件
type Event struct {
	Type          string    `json:"type"`
	At            time.Time `json:"at"`
	CommunityID   string    `json:"communityId"`
	CommunityName string    `json:"communityName,omitempty"`
	CommunitySlug string    `json:"communitySlug,omitempty"`
	MemberID      string    `json:"memberId,omitempty"`
	MemberName    string    `json:"memberName,omitempty"`
	Location      string    `json:"location,omitempty"`
	Profession    string    `json:"profession,omitempty"`
	// Removed 级联删除的成员数
	Removed int64 `json:"removed,omitempty"`
}

func communityEvent(typ string, c *model.Community) Event {
	return Event{
		Type:          typ,
		At:            time.Now(),
		CommunityID:   c.ID,
		CommunityName: c.Name,
		CommunitySlug: c.Slug,
	}
}

func memberEvent(typ string, c *model.Community, m *model.Member) Event {
	e := Event{
		Type:        typ,
		At:          time.Now(),
		CommunityID: m.CommunityID,
		MemberID:    m.ID,
		MemberName:  m.Name,
		Location:    m.Location,
		Profession:  m.Profession,
	}
	if c != nil {
		e.CommunityName = c.Name
		e.CommunitySlug = c.Slug
	}
	return e
}

type EventSender interface {
	Send(ctx context.Context, e Event) error
}

// Fanout 依次投递给所有 sender；失败只记日志，不影响请求结果
type Fanout struct {
	Senders []EventSender
	Timeout time.Duration
}

func NewFanout(senders ...EventSender) *Fanout {
	return &Fanout{Senders: senders, Timeout: 5 * time.Second}
}

func (f *Fanout) Send(ctx context.Context, e Event) error {
	if f == nil {
		return nil
	}
	for _, s := range f.Senders {
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), f.Timeout)
		if err := s.Send(sctx, e); err != nil {
			log.Warn().Err(err).Str("event", e.Type).Str("community_id", e.CommunityID).Msg("event delivery failed")
		}
		cancel()
	}
	return nil
}

// LogSender 总是启用
type LogSender struct{}

func (LogSender) Send(_ context.Context, e Event) error {
	log.Info().
		Str("event", e.Type).
		Str("community_id", e.CommunityID).
		Str("member_id", e.MemberID).
		Msg("domain event")
	return nil
}

type KafkaSender struct {
	Producer *pkg.KafkaProducer
}

func (s *KafkaSender) Send(ctx context.Context, e Event) error {
	body, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return s.Producer.Send(ctx, e.CommunityID, body)
}

// QueuePublisher pkg.RabbitmqClient 的子集
type QueuePublisher interface {
	Publish(ctx context.Context, queue string, body []byte) error
}

type RabbitSender struct {
	Client QueuePublisher
	Queue  string
}

func (s *RabbitSender) Send(ctx context.Context, e Event) error {
	body, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return s.Client.Publish(ctx, s.Queue, body)
}

// EmailSender 新成员提交时通知管理员，其余事件忽略
type EmailSender struct {
	SMTP    pkg.SMTPConfig
	To      string
	BaseURL string
	// send 测试时替换
	send func(cfg pkg.SMTPConfig, to, subject, body string) error
}

func NewEmailSender(cfg pkg.SMTPConfig, to, baseURL string) *EmailSender {
	return &EmailSender{SMTP: cfg, To: to, BaseURL: baseURL, send: pkg.SendEmail}
}

func (s *EmailSender) Send(_ context.Context, e Event) error {
	if e.Type != EventMemberSubmitted {
		return nil
	}
	shareURL := strings.TrimRight(s.BaseURL, "/") + SharePath(e.CommunitySlug, e.MemberID)
	subject := "【" + e.CommunityName + "】新成员：" + e.MemberName
	body := pkg.MemberSubmittedHTML(e.CommunityName, e.MemberName, e.Location, e.Profession, shareURL)
	return s.send(s.SMTP, s.To, subject, body)
}

func FormPath(slug string) string {
	return "/c/" + slug + "/form"
}

func ListPath(slug string) string {
	return "/c/" + slug + "/list"
}

func SharePath(slug, memberID string) string {
	return "/c/" + slug + "/share/" + memberID
}
