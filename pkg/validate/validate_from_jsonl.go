package validate

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Gunvolt24/notifier/internal/domain"
	"github.com/Gunvolt24/notifier/internal/ports"
)

// JSONLResult — статистика валидации потока JSONL.
type JSONLResult struct {
	ValidLinesCount   int
	InvalidLinesCount int
}

// EachValidEvent — читает JSONL из reader’а и вызывает fn для каждого валидного события.
// Невалидные строки считаются и пропускаются. Пустые строки пропускаются.
// Ошибка fn прерывает чтение.
func EachValidEvent(ctx context.Context, validator ports.EventValidator, ir io.Reader, fn func(line int, ev domain.Event) error) (JSONLResult, error) {
	var res JSONLResult

	scanner := bufio.NewScanner(ir)
	// запас на большие строки
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		lineBytes := scanner.Bytes()
		if len(strings.TrimSpace(string(lineBytes))) == 0 {
			continue
		}

		ev, err := ValidateEventFromJSON(ctx, validator, lineBytes)
		if err != nil {
			res.InvalidLinesCount++
			continue
		}
		if err := fn(line, ev); err != nil {
			return res, err
		}
		res.ValidLinesCount++
	}
	if err := scanner.Err(); err != nil {
		return res, fmt.Errorf("scan: %w", err)
	}
	return res, nil
}

// ValidateJSONLStream — валидирует каждую строку JSONL, валидные пишет в writer.
// Печатает КАНОНИЧЕСКИЙ конверт события одной строкой на каждую валидную запись.
func ValidateJSONLStream(ctx context.Context, validator ports.EventValidator, ir io.Reader, ow io.Writer) (JSONLResult, error) {
	return EachValidEvent(ctx, validator, ir, func(_ int, ev domain.Event) error {
		return writeEnvelope(ow, ev)
	})
}

func writeEnvelope(ow io.Writer, ev domain.Event) error {
	raw, err := domain.EncodeEvent(ev)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	if _, err := ow.Write(raw); err != nil {
		return fmt.Errorf("write valid line: %w", err)
	}
	if _, err := ow.Write([]byte("\n")); err != nil {
		return fmt.Errorf("write newline: %w", err)
	}
	return nil
}
