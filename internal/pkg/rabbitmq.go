package pkg

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

type RabbitmqClient struct {
	conn *amqp.Connection
	chn  *amqp.Channel
}

func NewRabbitmqClient(url string) (*RabbitmqClient, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	chn, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	return &RabbitmqClient{conn: conn, chn: chn}, nil
}

func (r *RabbitmqClient) Close() error {
	if r == nil {
		return nil
	}
	if err := r.chn.Close(); err != nil {
		return err
	}
	return r.conn.Close()
}

// DeclareQueue 持久化队列，重复声明幂等
func (r *RabbitmqClient) DeclareQueue(queue string) error {
	_, err := r.chn.QueueDeclare(queue, true, false, false, false, nil)
	return err
}

func (r *RabbitmqClient) Publish(ctx context.Context, queue string, body []byte) error {
	return r.chn.PublishWithContext(ctx, "", queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
}
