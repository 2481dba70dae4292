package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Gunvolt24/notifier/internal/kafka"
	"github.com/Gunvolt24/notifier/pkg/validate"
)

// CLI-приложение: проверяет события из файла и публикует валидные в топик.
// С -dry-run только печатает валидные события в stdout.
func main() {
	inputPath := flag.String("in", "", "path to input (.json or .jsonl). If empty, reads from stdin.")
	formatStr := flag.String("format", "auto", "input format: auto|json|jsonl")
	brokers := flag.String("brokers", "localhost:9092", "comma-separated kafka brokers")
	topic := flag.String("topic", "notifications.events", "target topic")
	dryRun := flag.Bool("dry-run", false, "validate only, do not publish")
	timeout := flag.Duration("timeout", 30*time.Second, "publish timeout")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	validator := validate.NewEventValidator()
	format := validate.InputFormat(*formatStr)

	// stdin вариант: считаем, что jsonl
	path := *inputPath
	if path == "" {
		path = "/dev/stdin"
		if format == validate.FormatAuto {
			format = validate.FormatJSONL
		}
	}

	if *dryRun {
		summary, err := validate.ValidateFile(ctx, validator, path, format, os.Stdout)
		if err != nil {
			fmt.Fprintf(os.Stderr, "validation: %v (%s)\n", err, summary)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "validation ok (%s)\n", summary)
		return
	}

	events, res, err := validate.LoadEvents(ctx, validator, path, format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "validation: %v (%d valid / %d invalid)\n", err, res.ValidLinesCount, res.InvalidLinesCount)
		os.Exit(1)
	}
	if len(events) == 0 {
		fmt.Fprintf(os.Stderr, "nothing to publish (%d invalid)\n", res.InvalidLinesCount)
		return
	}

	publisher := kafka.NewPublisher(strings.Split(*brokers, ","), *topic)
	defer func() {
		if cErr := publisher.Close(); cErr != nil {
			fmt.Fprintf(os.Stderr, "close publisher: %v\n", cErr)
		}
	}()

	pubCtx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	if err := publisher.Publish(pubCtx, events...); err != nil {
		fmt.Fprintf(os.Stderr, "publish: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "published %d events to %s (%d invalid skipped)\n", len(events), *topic, res.InvalidLinesCount)
}
