package internal

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ParseYAML parses a YAML input file with debts, expenses and income lists
func ParseYAML(path string) (Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Input{}, fmt.Errorf("reading file: %w", err)
	}

	var in Input
	if err := yaml.Unmarshal(data, &in); err != nil {
		return Input{}, fmt.Errorf("parsing YAML: %w", err)
	}
	return in, nil
}

func init() {
	RegisterParser("yaml", ParserFunc(ParseYAML))
}
