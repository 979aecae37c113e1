package utils

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// LoadTOMLFile decodes a TOML file into v. Keys missing from the file keep the values already in v.
func LoadTOMLFile(path string, v any) error {
	meta, err := toml.DecodeFile(path, v)
	if err != nil {
		log.Warnf("TOML parsing error in %s: %v. Attempting partial recovery...", path, err)
		return err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		log.Warnf("Ignoring unknown keys in %s: %v", path, undecoded)
	}
	return nil
}

// ParseTOMLWithRecovery decodes a TOML file into a generic map so that valid
// sections can still be used when the file does not match the config struct.
func ParseTOMLWithRecovery(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	raw := make(map[string]any)
	if _, err := toml.Decode(string(data), &raw); err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v", path, err)
		return nil, err
	}
	return raw, nil
}

// ExtractSection returns a table of the parsed TOML data.
func ExtractSection(data map[string]any, name string) (map[string]any, bool) {
	section, ok := data[name].(map[string]any)
	return section, ok
}

// ExtractInt returns an integer value. TOML integers decode as int64.
func ExtractInt(data map[string]any, key string) (int, bool) {
	if val, ok := data[key].(int64); ok {
		return int(val), true
	}
	return 0, false
}

// ExtractBool returns a boolean value.
func ExtractBool(data map[string]any, key string) (bool, bool) {
	val, ok := data[key].(bool)
	return val, ok
}

// ExtractString returns a non-empty string value.
func ExtractString(data map[string]any, key string) (string, bool) {
	val, ok := data[key].(string)
	if !ok || val == "" {
		return "", false
	}
	return val, true
}
