package event

import (
	"context"
	"encoding/json"
	"fmt"
)

const (
	HeaderEventType = "event-type"
	HeaderEventID   = "event-id"
)

// Sender pkg.KafkaProducer 满足这个接口
type Sender interface {
	Send(ctx context.Context, key string, value []byte, headers map[string]string) error
}

// KafkaPublisher 按帖子 id 分区，同一帖子的事件有序
type KafkaPublisher struct {
	sender Sender
}

func NewKafkaPublisher(sender Sender) *KafkaPublisher {
	return &KafkaPublisher{sender: sender}
}

func (p *KafkaPublisher) Publish(ctx context.Context, e Event) error {
	value, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	key := e.PostID
	if key == "" {
		key = e.ID
	}
	headers := map[string]string{
		HeaderEventType: string(e.Type),
		HeaderEventID:   e.ID,
	}
	if err := p.sender.Send(ctx, key, value, headers); err != nil {
		return fmt.Errorf("kafka send %s: %w", e.Type, err)
	}
	return nil
}
