package memory

import (
	commonJetstream "concert-ticket-pipeline/common/jetstream"
	"context"
	"sync"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// Bus records published messages per subject instead of sending them anywhere.
type Bus struct {
	mu       sync.Mutex
	sequence uint64
	messages map[string][]*nats.Msg
}

func NewBus() *Bus {
	return &Bus{messages: make(map[string][]*nats.Msg)}
}

func (b *Bus) Publish(ctx context.Context, subject string, payload []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error) {
	msg := nats.NewMsg(subject)
	msg.Data = payload
	return b.PublishMsg(ctx, msg, opts...)
}

func (b *Bus) PublishMsg(_ context.Context, msg *nats.Msg, _ ...jetstream.PublishOpt) (*jetstream.PubAck, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	stored := nats.NewMsg(msg.Subject)
	stored.Data = append([]byte(nil), msg.Data...)
	for key, values := range msg.Header {
		stored.Header[key] = append([]string(nil), values...)
	}

	b.sequence++
	b.messages[msg.Subject] = append(b.messages[msg.Subject], stored)

	return &jetstream.PubAck{
		Stream:   commonJetstream.StreamName(msg.Subject),
		Sequence: b.sequence,
	}, nil
}

// Messages returns what was published to subject, oldest first.
func (b *Bus) Messages(subject string) []*nats.Msg {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]*nats.Msg, len(b.messages[subject]))
	copy(out, b.messages[subject])
	return out
}
