// Package catalog maps behaviour method and node type names to display
// labels.
package catalog

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed labels.yaml
var defaultLabels []byte

type Catalog struct {
	labels map[string]string
}

// Parse reads a flat YAML mapping of method name to label.
func Parse(b []byte) (map[string]string, error) {
	labels := map[string]string{}
	if err := yaml.Unmarshal(b, &labels); err != nil {
		return nil, fmt.Errorf("parse labels: %w", err)
	}
	return labels, nil
}

// Default is the catalog built from the bundled labels.
func Default() *Catalog {
	c, err := New(nil)
	if err != nil {
		// labels.yaml is compiled in
		panic(err)
	}
	return c
}

// New layers overrides on top of the bundled labels. An empty override
// label removes the entry.
func New(overrides map[string]string) (*Catalog, error) {
	labels, err := Parse(defaultLabels)
	if err != nil {
		return nil, err
	}
	for k, v := range overrides {
		if v == "" {
			delete(labels, k)
			continue
		}
		labels[k] = v
	}
	return &Catalog{labels: labels}, nil
}

// Describe returns the label for method, or method itself when unknown.
func (c *Catalog) Describe(method string) string {
	if label, ok := c.labels[method]; ok {
		return label
	}
	return method
}

func (c *Catalog) Methods() []string {
	keys := make([]string, 0, len(c.labels))
	for k := range c.labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
