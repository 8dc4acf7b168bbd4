package internal

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Parser reads simulation input records from a source
type Parser interface {
	Parse(path string) (Input, error)
}

// ParserFunc is a function that implements Parser
type ParserFunc func(path string) (Input, error)

func (f ParserFunc) Parse(path string) (Input, error) {
	return f(path)
}

// parsers is the registry of available parsers
var parsers = map[string]Parser{}

// extensions maps file extensions to the parser used when no source is given
var extensions = map[string]string{
	".yaml": "yaml",
	".yml":  "yaml",
	".json": "simple-json",
	".xlsx": "xlsx",
}

// RegisterParser registers a parser with the given name
func RegisterParser(name string, p Parser) {
	parsers[name] = p
}

// GetParser returns the parser for the given source type
func GetParser(source string) (Parser, error) {
	p, ok := parsers[source]
	if !ok {
		return nil, fmt.Errorf("unknown source type: %s (available: %v)", source, AvailableSources())
	}
	return p, nil
}

// AvailableSources returns the registered source types, sorted
func AvailableSources() []string {
	var sources []string
	for name := range parsers {
		sources = append(sources, name)
	}
	sort.Strings(sources)
	return sources
}

// IsKnownParser returns true if the name is a registered parser
func IsKnownParser(name string) bool {
	_, ok := parsers[name]
	return ok
}

// ParseFileArg parses a file argument that may have a format prefix.
// Returns (format, path). If no valid prefix, format is empty.
// Example: "xlsx:debts.xlsx" → ("xlsx", "debts.xlsx")
// Example: "google-sheets:1AbC" → ("google-sheets", "1AbC")
// Example: "C:\path\debts.yaml" → ("", "C:\path\debts.yaml") // Windows path
func ParseFileArg(arg string) (format, path string) {
	idx := strings.Index(arg, ":")
	if idx == -1 {
		return "", arg
	}
	prefix := arg[:idx]
	if IsKnownParser(prefix) {
		return prefix, arg[idx+1:]
	}
	return "", arg // Not a known parser, treat whole thing as path
}

// SourceForPath infers the source type from a file extension
func SourceForPath(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if source, ok := extensions[ext]; ok {
		return source, nil
	}
	return "", fmt.Errorf("cannot infer source type from %q, use --source (available: %v)", path, AvailableSources())
}

// LoadInput resolves the source for a file argument and parses it.
// An explicit source wins over a prefix, which wins over the file extension.
func LoadInput(source, arg string) (Input, error) {
	prefixed, path := ParseFileArg(arg)
	if source == "" {
		source = prefixed
	}
	if source == "" {
		var err error
		if source, err = SourceForPath(path); err != nil {
			return Input{}, err
		}
	}
	p, err := GetParser(source)
	if err != nil {
		return Input{}, err
	}
	in, err := p.Parse(path)
	if err != nil {
		return Input{}, fmt.Errorf("parsing %s input: %w", source, err)
	}
	return in, nil
}
