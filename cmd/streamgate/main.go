// Command streamgate streams one generation from the OpenAI Responses API
// through the relay, printing the normalized SSE protocol to stdout. It is
// the reference wiring for the library: env config, structured logging, and
// an optional NATS mirror of the event stream.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/glamour"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"
	"github.com/openai/openai-go/v3/shared"
	"github.com/phsym/zeroslog"
	"github.com/rs/zerolog"

	"github.com/streamgate/streamgate"
	"github.com/streamgate/streamgate/pubsub"
	"github.com/streamgate/streamgate/wirelog"
)

type config struct {
	APIKey  string `env:"OPENAI_API_KEY,required"`
	BaseURL string `env:"OPENAI_BASE_URL"`
	Model   string `env:"STREAMGATE_MODEL" envDefault:"gpt-4o-mini"`
	NATSURL string `env:"STREAMGATE_NATS_URL"`
	Render  bool   `env:"STREAMGATE_RENDER" envDefault:"true"`
}

func init() {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	logger := zerolog.New(output).With().Timestamp().Logger()
	slog.SetDefault(slog.New(zeroslog.NewHandler(logger, &zeroslog.HandlerOptions{Level: slog.LevelDebug})))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx); err != nil {
		slog.ErrorContext(ctx, "streamgate failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	_ = godotenv.Load()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}

	prompt := strings.Join(os.Args[1:], " ")
	if strings.TrimSpace(prompt) == "" {
		prompt = "Count to 3."
	}

	requestID := uuid.Must(uuid.NewV7())
	options := []streamgate.RelayOption{
		streamgate.WithRequestID(requestID),
		streamgate.WithLogger(wirelog.Slog{}),
	}
	if cfg.NATSURL != "" {
		broker, err := pubsub.ConnectNATS(cfg.NATSURL)
		if err != nil {
			return err
		}
		defer broker.Close() //nolint:errcheck
		options = append(options, streamgate.WithTopic(broker.Topic(ctx, requestID.String())))
	}

	relay, err := streamgate.New(options...)
	if err != nil {
		return err
	}

	clientOpts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(cfg.BaseURL))
	}
	client := openai.NewClient(clientOpts...)

	upstream := client.Responses.NewStreaming(ctx, responses.ResponseNewParams{
		Model: shared.ResponsesModel(cfg.Model),
		Input: responses.ResponseNewParamsInputUnion{OfString: openai.String(prompt)},
	})

	events := func(yield func([]byte) bool) {
		for upstream.Next() {
			if !yield([]byte(upstream.Current().RawJSON())) {
				return
			}
		}
	}

	if err := relay.Run(ctx, events, os.Stdout); err != nil {
		envelope := relay.Fail(ctx, err, "/v1/responses")
		return fmt.Errorf("relay: %s (status %d)", envelope.Message, envelope.StatusCode)
	}
	if err := upstream.Err(); err != nil {
		envelope := relay.Fail(ctx, err, "/v1/responses")
		return fmt.Errorf("upstream: %s (status %d)", envelope.Message, envelope.StatusCode)
	}

	if cfg.Render {
		if err := render(relay.State().FullText); err != nil {
			slog.WarnContext(ctx, "render failed", "error", err)
		}
	}

	return nil
}

func render(text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return fmt.Errorf("build renderer: %w", err)
	}
	out, err := renderer.Render(text)
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	fmt.Fprint(os.Stderr, out)
	return nil
}
