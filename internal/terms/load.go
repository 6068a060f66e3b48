package terms

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// fileFormat is the YAML layout of a terms file.
type fileFormat struct {
	Terms []string `yaml:"terms"`
}

// ReadFile reads a term list. Files ending in .yml or .yaml are parsed as
// `terms: [...]`; anything else is one term per line with '#' comments.
func ReadFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading terms file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		var f fileFormat
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parsing terms file %s: %w", path, err)
		}
		return f.Terms, nil
	}

	var list []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		if line = strings.TrimSpace(line); line != "" {
			list = append(list, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scanning terms file %s: %w", path, err)
	}
	return list, nil
}

// LoadFile builds an index from a terms file. An empty path returns the
// built-in vocabulary.
func LoadFile(path string) (*Index, error) {
	if path == "" {
		return Default(), nil
	}
	list, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewIndex(list...), nil
}
