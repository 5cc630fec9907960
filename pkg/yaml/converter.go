package yaml

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// UnmarshalStrict parses YAML bytes into obj and fails on keys that do not
// map to a field of obj. JSON is a subset of YAML, so JSON documents are
// accepted as well.
func UnmarshalStrict(yamlBytes []byte, obj interface{}) error {
	if err := yaml.UnmarshalWithOptions(yamlBytes, obj, yaml.DisallowUnknownField()); err != nil {
		return fmt.Errorf("error parsing YAML: %w", err)
	}
	return nil
}

// DecodeFile reads path and strictly decodes its YAML or JSON contents into obj.
func DecodeFile(path string, obj interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading %s: %w", path, err)
	}
	if err := UnmarshalStrict(data, obj); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
