package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Write creates a fresh config file at path.
func Write(path string, cfg *Config) error {
	data, err := yaml.Marshal(fileView(cfg))
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	header := []byte("# hatop configuration. Flags and HATOP_* variables override these values.\n")
	if err := os.WriteFile(path, append(header, data...), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// fileView is the subset of Config that init writes. Durations are
// rendered as strings so the file stays readable.
func fileView(cfg *Config) map[string]interface{} {
	return map[string]interface{}{
		"version":   cfg.Version,
		"socket":    cfg.Socket,
		"read_only": cfg.ReadOnly,
		"interval":  cfg.Interval.String(),
		"mode":      cfg.Mode,
	}
}

// SetValues updates top-level scalar keys in an existing config file,
// adding the ones that are missing. Comments and the order of the other
// keys are preserved.
func SetValues(path string, values map[string]string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if len(root.Content) == 0 {
		root = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}}}
	}
	if root.Kind != yaml.DocumentNode {
		return fmt.Errorf("invalid YAML document structure")
	}
	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return fmt.Errorf("expected mapping at document root")
	}

	for _, key := range sortedKeys(values) {
		value := values[key]
		if node := findMapValue(doc, key); node != nil {
			if node.Kind != yaml.ScalarNode {
				return fmt.Errorf("'%s' is not a scalar value", key)
			}
			node.Value = value
			node.Tag = ""
			node.Style = 0
			continue
		}
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: key},
			&yaml.Node{Kind: yaml.ScalarNode, Value: value},
		)
	}

	out, err := yaml.Marshal(&root)
	if err != nil {
		return fmt.Errorf("failed to encode config file: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// findMapValue finds a value in a mapping node by key name.
func findMapValue(node *yaml.Node, key string) *yaml.Node {
	if node.Kind != yaml.MappingNode {
		return nil
	}

	for i := 0; i < len(node.Content)-1; i += 2 {
		keyNode := node.Content[i]
		valueNode := node.Content[i+1]

		if keyNode.Kind == yaml.ScalarNode && keyNode.Value == key {
			return valueNode
		}
	}

	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
