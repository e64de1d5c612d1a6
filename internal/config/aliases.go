package config

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// AliasConfig holds the alias-to-plant mappings declared by the user.
// Each key is a short name used in the care log (for example "kf" from a
// phone shortcut) and the value is a plant ID, ID prefix or nickname.
type AliasConfig struct {
	Aliases map[string]string
}

// LoadAliases reads the aliases file at {dir}/aliases and returns the parsed
// config. If the file does not exist, an empty config is returned without an
// error. Invalid or malformed lines are silently skipped.
func LoadAliases(dir string) (*AliasConfig, error) {
	cfg := &AliasConfig{
		Aliases: make(map[string]string),
	}

	f, err := os.Open(filepath.Join(dir, "aliases"))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.IndexByte(line, '=')
		if idx <= 0 {
			continue
		}

		alias := strings.ToLower(strings.TrimSpace(line[:idx]))
		ref := strings.TrimSpace(line[idx+1:])
		if alias == "" || ref == "" {
			continue
		}

		cfg.Aliases[alias] = ref
	}

	if err := scanner.Err(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Resolve returns the plant reference for name, or name itself when no alias
// matches. Alias names are case-insensitive.
func (c *AliasConfig) Resolve(name string) string {
	if c == nil {
		return name
	}
	if ref, ok := c.Aliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return ref
	}
	return name
}
