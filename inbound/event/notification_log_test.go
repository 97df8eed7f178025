package event

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()

	buf := &bytes.Buffer{}
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(previous) })

	return buf
}

func decodeLogLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		entry := map[string]any{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestNotificationLogEventHandle(t *testing.T) {
	testCases := []struct {
		name            string
		header          nats.Header
		expectedSubject string
		expectedAttrs   map[string]any
	}{
		{
			name:            "no subject",
			header:          nil,
			expectedSubject: "No Subject",
			expectedAttrs:   nil,
		},
		{
			name:            "subject and attributes",
			header:          nats.Header{"Subject": {"Your tickets"}, "channel": {"email"}, "tags": {"a", "b"}},
			expectedSubject: "Your tickets",
			expectedAttrs:   map[string]any{"channel": "email", "tags": "a,b"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			buf := captureLogs(t)

			err := NotificationLogEvent{}.Handle(context.Background(), Record{Header: tc.header, Data: []byte(erasConfirmation)})
			require.NoError(t, err)

			entries := decodeLogLines(t, buf)
			require.Len(t, entries, 2)

			assert.Equal(t, "notification received", entries[0]["msg"])
			assert.Equal(t, tc.expectedSubject, entries[0]["subject"])
			assert.Equal(t, erasConfirmation, entries[0]["message"])
			if tc.expectedAttrs != nil {
				assert.Equal(t, tc.expectedAttrs, entries[0]["attributes"])
			}

			assert.Equal(t, strings.Repeat("-", 60), entries[1]["msg"])
		})
	}
}

func TestDecodeDelivery(t *testing.T) {
	delivery := DecodeDelivery(Record{
		Header: nats.Header{"Subject": {"hello"}, "empty": {}, "k": {"v"}},
		Data:   []byte("body"),
	})

	assert.Equal(t, "hello", delivery.Subject.Or(""))
	assert.Equal(t, map[string]string{"k": "v"}, delivery.Attributes)
	assert.Equal(t, "body", delivery.Message)
}
