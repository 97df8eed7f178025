package jetstream

import (
	"context"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// TopicMaxAge bounds how long a topic keeps messages for slow or offline subscribers.
const TopicMaxAge = 72 * time.Hour

// Publisher is the part of a JetStream context the pipeline publishes through.
type Publisher interface {
	Publish(ctx context.Context, subject string, payload []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error)
	PublishMsg(ctx context.Context, msg *nats.Msg, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error)
}

// CreateTopicStream creates or updates the stream behind a topic. Every durable
// consumer on the stream keeps its own cursor, so one publish reaches each of them.
func CreateTopicStream(ctx context.Context, js jetstream.JetStream, topic string) (jetstream.Stream, error) {
	cfg := jetstream.StreamConfig{
		Name:      StreamName(topic),
		Retention: jetstream.LimitsPolicy,
		Subjects:  []string{topic},
		MaxAge:    TopicMaxAge,
		MaxBytes:  -1,
	}

	return js.CreateOrUpdateStream(ctx, cfg)
}

// StreamName derives a valid stream name from a topic subject.
func StreamName(topic string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '.', '*', '>', ' ', '/', '\\':
			return '_'
		}
		return r
	}, topic)

	return strings.ToUpper(name)
}
