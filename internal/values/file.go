package values

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"torn_trade_values/internal/barter"

	"gopkg.in/yaml.v3"
)

// FileLoader reads a flat name→value map from a JSON or YAML file on every Load.
type FileLoader struct {
	Path string
}

func (f FileLoader) Load(ctx context.Context) (barter.Table, error) {
	raw, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read values file: %w", err)
	}

	entries := map[string]any{}
	switch ext := strings.ToLower(filepath.Ext(f.Path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &entries); err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(f.Path), err)
		}
	case ".json", "":
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&entries); err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(f.Path), err)
		}
	default:
		return nil, fmt.Errorf("unsupported values file extension %q", ext)
	}

	table, skipped := BuildTable(entries)
	logLoaded(f.Path, table, skipped)
	return table, nil
}
