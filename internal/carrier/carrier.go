// Package carrier holds the bill parsers, one per mobile carrier text
// layout, and the registry the CLI selects them from. Every parser takes the
// plain text extracted from a PDF invoice and produces a validated
// bill.Bill; the allocation and reporting stages are carrier-agnostic.
package carrier

import (
	"fmt"
	"sort"
	"strings"

	"billsplit/internal/bill"
)

// Parser extracts a structured bill from carrier invoice text.
type Parser interface {
	// Name is the human-readable carrier name, e.g. "T-Mobile".
	Name() string
	// Parse scans the extracted text and returns a validated bill.
	// It returns *ParseError when a required structural anchor is missing
	// and *bill.ValidationError when the figures do not reconcile.
	Parse(text string) (*bill.Bill, error)
}

// ParseError reports that a required structural anchor was not found in the
// source text, which usually means the PDF is not the expected carrier or
// plan format.
type ParseError struct {
	Carrier string
	Anchor  string
	Message string
}

func (e *ParseError) Error() string {
	if e.Anchor != "" {
		return fmt.Sprintf("%s bill: missing %q anchor: %s", e.Carrier, e.Anchor, e.Message)
	}
	return fmt.Sprintf("%s bill: %s", e.Carrier, e.Message)
}

// The registry is populated by init functions; the set of carriers is
// closed at build time.
var registry = map[string]Parser{}

// Register makes a parser selectable under the given identifier aliases.
func Register(p Parser, aliases ...string) {
	for _, alias := range aliases {
		registry[strings.ToLower(strings.TrimSpace(alias))] = p
	}
}

// Get returns the parser registered under name (case-insensitive).
func Get(name string) (Parser, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	p, ok := registry[key]
	if !ok {
		return nil, fmt.Errorf("unsupported carrier %q, available: %s",
			name, strings.Join(Names(), ", "))
	}
	return p, nil
}

// Names lists all registered identifiers, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for k := range registry {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
