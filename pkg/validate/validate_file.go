package validate

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Gunvolt24/notifier/internal/domain"
	"github.com/Gunvolt24/notifier/internal/ports"
)

// InputFormat допустимые значения.
type InputFormat string

const (
	FormatAuto  InputFormat = "auto"
	FormatJSON  InputFormat = "json"
	FormatJSONL InputFormat = "jsonl"
)

// resolveFormat — auto по расширению; по умолчанию считаем JSON.
func resolveFormat(filePath string, format InputFormat) InputFormat {
	if format != FormatAuto {
		return format
	}
	if strings.ToLower(filepath.Ext(filePath)) == ".jsonl" {
		return FormatJSONL
	}
	return FormatJSON
}

// LoadEvents — читает файл как JSON (одно событие) или JSONL и возвращает валидные события.
// Для JSON невалидное событие — ошибка; для JSONL невалидные строки только считаются.
func LoadEvents(ctx context.Context, validator ports.EventValidator, filePath string, format InputFormat) ([]domain.Event, JSONLResult, error) {
	var res JSONLResult
	format = resolveFormat(filePath, format)
	if format != FormatJSON && format != FormatJSONL {
		return nil, res, fmt.Errorf("unsupported format: %s", format)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, res, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	if format == FormatJSON {
		raw, err := io.ReadAll(file)
		if err != nil {
			return nil, res, fmt.Errorf("read file: %w", err)
		}
		ev, err := ValidateEventFromJSON(ctx, validator, raw)
		if err != nil {
			return nil, JSONLResult{InvalidLinesCount: 1}, err
		}
		return []domain.Event{ev}, JSONLResult{ValidLinesCount: 1}, nil
	}

	var events []domain.Event
	res, err = EachValidEvent(ctx, validator, file, func(_ int, ev domain.Event) error {
		events = append(events, ev)
		return nil
	})
	return events, res, err
}

// ValidateFile — валидирует файл как JSON или JSONL и пишет валидный вывод в writer.
func ValidateFile(ctx context.Context, validator ports.EventValidator, filePath string, format InputFormat, ow io.Writer) (string, error) {
	events, res, err := LoadEvents(ctx, validator, filePath, format)
	if err != nil {
		if res.InvalidLinesCount > 0 {
			return summary(res), err
		}
		return "", err
	}

	for _, ev := range events {
		if err := writeEnvelope(ow, ev); err != nil {
			return "", err
		}
	}
	return summary(res), nil
}

func summary(res JSONLResult) string {
	return fmt.Sprintf("%d valid / %d invalid", res.ValidLinesCount, res.InvalidLinesCount)
}
