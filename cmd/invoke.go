package cmd

import (
	commonJetstream "concert-ticket-pipeline/common/jetstream"
	inboundHttp "concert-ticket-pipeline/inbound/http"
	"context"
	"encoding/json"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"io"
	"log"
	"os"
)

// runInvokePurchaseCmd runs one purchase from a payload file, or stdin when
// path is empty or "-", and prints the invocation response.
func runInvokePurchaseCmd(ctx context.Context, cfg *viper.Viper, path string, out io.Writer) {
	payload, err := readPayload(path)
	if err != nil {
		log.Fatalln("unable to read payload", err)
	}

	topic := mustGetString(cfg, "topic.order_events")

	natsConn := newNats(cfg)
	defer natsConn.Close()

	js := newJs(natsConn)
	if _, err := commonJetstream.CreateTopicStream(ctx, js, topic); err != nil {
		log.Fatalln("failed to create stream", err)
	}

	resp := inboundHttp.NewPurchaseHttp(js, validator.New(), topic).Invoke(ctx, payload)

	if err := json.NewEncoder(out).Encode(resp); err != nil {
		log.Fatalln("unable to write response", err)
	}
}

func readPayload(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}

	return os.ReadFile(path)
}
