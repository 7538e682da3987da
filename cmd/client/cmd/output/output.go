// Package output prints server responses as JSON or YAML.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

// Format is selected with the global --output flag.
var Format = "json"

// Print writes raw JSON to stdout in the selected format.
func Print(raw json.RawMessage) error {
	return Fprint(os.Stdout, Format, raw)
}

func Fprint(w io.Writer, format string, raw json.RawMessage) error {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("ошибка парсинга ответа: %w", err)
	}

	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	return fmt.Errorf("неизвестный формат вывода %q", format)
}

// Success prints a green confirmation line.
func Success(format string, args ...any) {
	color.Green("✓ "+format, args...)
}
