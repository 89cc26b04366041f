package data

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/wasteland/internal/model"
)

// TileAliases maps legacy tile ids found in old maps to their current ids.
var TileAliases = map[string]string{
	"WWinC1": "WinCH",
	"WWinC2": "WinCV",
	"WD1":    "WDH",
	"WD2":    "WDV",
	"MW1":    "MWH",
	"MW2":    "MWV",
	"MW3":    "MWCTL",
	"MW4":    "MWCTR",
	"MW5":    "MWCBL",
	"MW6":    "MWCBR",
	"MD1":    "MDH",
}

// LoadTileset reads a tileset from a .json asset file or a .yaml/.yml file.
// Legacy alias ids are added for every alias target present in the set.
func LoadTileset(path string) (model.Tileset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tileset %s: %w", path, err)
	}

	ts, err := ParseTileset(raw, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("tileset %s: %w", path, err)
	}

	slog.Info("loaded tileset", "path", path, "tiles", len(ts))
	return ts, nil
}

// ParseTileset decodes tileset bytes; ext selects the format (".json", ".yaml", ".yml").
func ParseTileset(raw []byte, ext string) (model.Tileset, error) {
	var ts model.Tileset
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(raw, &ts); err != nil {
			return nil, fmt.Errorf("decoding json: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &ts); err != nil {
			return nil, fmt.Errorf("decoding yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported tileset format %q", ext)
	}

	if len(ts) == 0 {
		return nil, fmt.Errorf("no tile definitions")
	}
	applyAliases(ts)
	return ts, nil
}

func applyAliases(ts model.Tileset) {
	for alias, target := range TileAliases {
		if _, exists := ts[alias]; exists {
			continue
		}
		if def, ok := ts[target]; ok {
			ts[alias] = def
		}
	}
}
