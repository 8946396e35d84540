package rules

import (
	"bytes"
	"embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

// ErrRuleData is wrapped by every failure to read the embedded rule data.
var ErrRuleData = errors.New("invalid rule data")

// loadData decodes data/<name> into a T. Keys that T does not declare are
// rejected so a misspelt field in the data fails loudly instead of zeroing.
func loadData[T any](name string) (T, error) {
	var out T

	raw, err := dataFS.ReadFile("data/" + name)
	if err != nil {
		return out, fmt.Errorf("%w: %s: %v", ErrRuleData, name, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&out); err != nil {
		return out, fmt.Errorf("%w: %s: %v", ErrRuleData, name, err)
	}
	return out, nil
}
