package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/segmentio/kafka-go"

	"Lee_Directory/internal/pkg"
)

// recorder 记录收到的事件，可选地返回错误
type recorder struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (r *recorder) Send(_ context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return r.err
}

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

type fakeKafkaWriter struct {
	msgs []kafka.Message
}

func (w *fakeKafkaWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeKafkaWriter) Close() error { return nil }

type fakePublisher struct {
	queue string
	body  []byte
}

func (p *fakePublisher) Publish(_ context.Context, queue string, body []byte) error {
	p.queue, p.body = queue, body
	return nil
}

func TestFanout_FailureDoesNotStopOthers(t *testing.T) {
	bad := &recorder{err: errors.New("broker down")}
	good := &recorder{}
	f := NewFanout(bad, good)

	if err := f.Send(context.Background(), Event{Type: EventCommunityCreated}); err != nil {
		t.Fatalf("fanout must swallow errors: %v", err)
	}
	if len(bad.events) != 1 || len(good.events) != 1 {
		t.Fatalf("bad=%d good=%d", len(bad.events), len(good.events))
	}
}

func TestKafkaSender_KeyedByCommunity(t *testing.T) {
	w := &fakeKafkaWriter{}
	s := &KafkaSender{Producer: pkg.NewKafkaProducerWithWriter(w, "directory-events")}

	e := Event{Type: EventMemberSubmitted, CommunityID: "c1", MemberID: "m1"}
	if err := s.Send(context.Background(), e); err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(w.msgs) != 1 || string(w.msgs[0].Key) != "c1" {
		t.Fatalf("unexpected messages: %+v", w.msgs)
	}
	var got Event
	if err := json.Unmarshal(w.msgs[0].Value, &got); err != nil || got.MemberID != "m1" {
		t.Fatalf("payload: %v %+v", err, got)
	}
}

func TestRabbitSender_PublishesToQueue(t *testing.T) {
	p := &fakePublisher{}
	s := &RabbitSender{Client: p, Queue: "directory"}
	if err := s.Send(context.Background(), Event{Type: EventCommunityDeleted, CommunityID: "c1"}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if p.queue != "directory" || !strings.Contains(string(p.body), `"community.deleted"`) {
		t.Fatalf("queue=%q body=%s", p.queue, p.body)
	}
}

func TestEmailSender_OnlyMemberSubmitted(t *testing.T) {
	var sent []string
	s := NewEmailSender(pkg.SMTPConfig{Host: "smtp.example.com"}, "admin@example.com", "https://dir.example.com/")
	s.send = func(_ pkg.SMTPConfig, to, subject, body string) error {
		sent = append(sent, to+"|"+subject+"|"+body)
		return nil
	}

	_ = s.Send(context.Background(), Event{Type: EventCommunityCreated})
	if len(sent) != 0 {
		t.Fatalf("community events must not send mail")
	}

	_ = s.Send(context.Background(), Event{
		Type: EventMemberSubmitted, CommunityName: "Acme", CommunitySlug: "acme",
		MemberID: "m1", MemberName: "Alice",
	})
	if len(sent) != 1 {
		t.Fatalf("expected one mail, got %d", len(sent))
	}
	if !strings.Contains(sent[0], "https://dir.example.com/c/acme/share/m1") {
		t.Fatalf("share url missing: %s", sent[0])
	}
}
