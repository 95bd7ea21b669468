package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	overlayerrors "github.com/mj1618/trade-overlay/internal/errors"
	"github.com/mj1618/trade-overlay/internal/model"
)

// Format represents the output format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// OutputFormat is the current output format, set by the root command's --format flag.
var OutputFormat Format = FormatYAML

// PrettyOutput enables pretty-printing for JSON output.
var PrettyOutput bool

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatYAML, FormatJSON:
		return Format(s), nil
	}
	return "", overlayerrors.InvalidInput(fmt.Sprintf("unsupported output format %q (use yaml or json)", s))
}

// StatusResult is the output of the `status` command.
type StatusResult struct {
	TS         int64           `yaml:"ts"                   json:"ts"`
	Window     *model.Window   `yaml:"window,omitempty"     json:"window,omitempty"`
	Matched    bool            `yaml:"matched"              json:"matched"`
	Executable string          `yaml:"executable,omitempty" json:"executable,omitempty"`
	LogFile    string          `yaml:"log_file,omitempty"   json:"log_file,omitempty"`
	State      model.GameState `yaml:"state"                json:"state"`
}

// GridResult is the output of the `grid` command.
type GridResult struct {
	Grid  model.GridLocation `yaml:"grid"            json:"grid"`
	Saved bool               `yaml:"saved,omitempty" json:"saved,omitempty"`
	Path  string             `yaml:"path,omitempty"  json:"path,omitempty"`
}

// Print serializes v to stdout in the current output format.
func Print(v interface{}) error {
	return Fprint(os.Stdout, v)
}

// Fprint serializes v to w in the current output format.
func Fprint(w io.Writer, v interface{}) error {
	switch OutputFormat {
	case FormatJSON:
		return WriteJSON(w, v, PrettyOutput)
	case FormatYAML:
		return WriteYAML(w, v)
	default:
		return fmt.Errorf("unsupported output format: %s", OutputFormat)
	}
}

// WriteJSON serializes v as one JSON line, or indented when pretty is set.
func WriteJSON(w io.Writer, v interface{}, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("json encode: %w", err)
	}
	return nil
}

// WriteYAML serializes v as a YAML document.
func WriteYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}
