package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/gcp-hcp/gcphcp/internal/clierr"
)

// SetKey persists a single key into the config file. The write is
// temp-file-then-rename so an interrupted write never corrupts the file.
func SetKey(path, key, value string) error {
	if !slices.Contains(Keys, key) {
		return clierr.Newf(clierr.Validation, "unknown config key %q (known keys: %v)", key, Keys)
	}

	values, err := readFile(path)
	if err != nil {
		return err
	}
	values[key] = value

	data, err := yaml.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return writeFileAtomic(path, data, 0o600)
}

// GetKey reads a single key from the config file.
func GetKey(path, key string) (string, bool, error) {
	values, err := readFile(path)
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	if !ok {
		return "", false, nil
	}
	return fmt.Sprintf("%v", v), true, nil
}

// ListFile returns the file contents as sorted key/value pairs.
func ListFile(path string) ([][2]string, error) {
	values, err := readFile(path)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([][2]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, [2]string{k, fmt.Sprintf("%v", values[k])})
	}
	return pairs, nil
}

func readFile(path string) (map[string]any, error) {
	values := map[string]any{}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return values, nil
		}
		return nil, clierr.Wrap(clierr.Config, fmt.Sprintf("failed to read config file %s", path), err)
	}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, clierr.Wrap(clierr.Config, fmt.Sprintf("config file %s is not valid YAML", path), err)
	}
	return values, nil
}

// writeFileAtomic writes data to a temp file in the target directory
// and renames it into place, so a concurrent reader never observes a
// partial file.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
