package utils

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// LoadTOMLFile parses a TOML file into the given struct.
func LoadTOMLFile(path string, v any) error {
	if _, err := toml.DecodeFile(path, v); err != nil {
		log.Warnf("TOML parsing error in %s: %v. Attempting partial recovery...", path, err)
		return err
	}
	return nil
}

// SaveTOMLFile writes a struct out as TOML, replacing the file.
func SaveTOMLFile(path string, v any) error {
	file, err := os.Create(path)
	if err != nil {
		log.Errorf("Failed to create file: %v", err)
		return err
	}
	defer file.Close()
	return toml.NewEncoder(file).Encode(v)
}

// ParseTOMLLoose decodes a TOML file into a plain map so that individual
// values survive even when the file doesn't match the expected schema.
func ParseTOMLLoose(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	loose := make(map[string]any)
	if _, err := toml.Decode(string(data), &loose); err != nil {
		return nil, err
	}
	return loose, nil
}

// Section pulls a named table out of loosely parsed TOML data.
func Section(data map[string]any, name string) (map[string]any, bool) {
	section, ok := data[name].(map[string]any)
	return section, ok
}

// IntValue safely extracts an integer from loosely parsed TOML data, which
// decodes numbers as int64.
func IntValue(data map[string]any, key string) (int, bool) {
	if v, ok := data[key].(int64); ok {
		return int(v), true
	}
	return 0, false
}

// BoolValue safely extracts a bool from loosely parsed TOML data.
func BoolValue(data map[string]any, key string) (bool, bool) {
	if v, ok := data[key].(bool); ok {
		return v, true
	}
	return false, false
}
