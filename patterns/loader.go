// Package patterns loads pattern definition files.
//
// The canonical format is XML: a Patterns document whose Pattern elements
// carry an integer Id, a display Name, optional boundary prefix/suffix
// pairs, one or more RegEx strings, and Ignore/Disabled flags. A YAML
// rendition of the same schema is accepted alongside it, selected by file
// extension.
//
// Each Pattern element expands into one concrete pattern per boundary ×
// regex combination (prefix ++ regex ++ suffix), with minor ids assigned 0
// upward within the element. Disabled patterns are dropped at load time.
package patterns

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/projectdiscovery/gologger"

	patscan "github.com/jclyne/pattern-scanner"
)

// FormatError reports a schema-invalid pattern definition file. Loading
// aborts; no partial pattern list is returned.
type FormatError struct {
	Path    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	msg := fmt.Sprintf("invalid pattern file %s: %s", e.Path, e.Message)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *FormatError) Unwrap() error {
	return e.Err
}

// Boundary is a prefix/suffix pair wrapped around each regex of a pattern
// definition.
type Boundary struct {
	Prefix string `xml:"prefix" yaml:"prefix"`
	Suffix string `xml:"suffix" yaml:"suffix"`
}

// Definition is one Pattern element before expansion.
type Definition struct {
	ID         int        `xml:"Id" yaml:"id"`
	Name       string     `xml:"Name" yaml:"name"`
	Boundaries []Boundary `xml:"boundary" yaml:"boundaries"`
	Regexes    []string   `xml:"RegEx" yaml:"regexes"`
	Ignore     bool       `xml:"Ignore" yaml:"ignore"`
	Disabled   bool       `xml:"Disabled" yaml:"disabled"`
}

// File is a whole pattern definition document.
type File struct {
	XMLName  xml.Name     `xml:"Patterns" yaml:"-"`
	Patterns []Definition `xml:"Pattern" yaml:"patterns"`
}

// LoadFile reads and expands a pattern definition file, dispatching on the
// file extension: .xml for the XML schema, .yaml/.yml for the YAML
// rendition.
func LoadFile(path string) ([]patscan.Pattern, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml":
		return ParseXML(path, data)
	case ".yaml", ".yml":
		return ParseYAML(path, data)
	}
	return nil, &FormatError{Path: path, Message: "unsupported file extension"}
}

// ParseXML decodes the XML schema and expands it into concrete patterns.
func ParseXML(path string, data []byte) ([]patscan.Pattern, error) {
	var file File
	if err := xml.Unmarshal(data, &file); err != nil {
		return nil, &FormatError{Path: path, Message: "malformed XML", Err: err}
	}
	return expand(path, &file)
}

// ParseYAML decodes the YAML rendition and expands it into concrete
// patterns.
func ParseYAML(path string, data []byte) ([]patscan.Pattern, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, &FormatError{Path: path, Message: "malformed YAML", Err: err}
	}
	return expand(path, &file)
}

// expand validates each definition and produces the boundary × regex
// expansion with minor ids assigned in order.
func expand(path string, file *File) ([]patscan.Pattern, error) {
	var out []patscan.Pattern
	for i, def := range file.Patterns {
		if def.ID <= 0 {
			return nil, &FormatError{Path: path,
				Message: fmt.Sprintf("pattern #%d: missing or non-positive Id", i+1)}
		}
		if def.Name == "" {
			return nil, &FormatError{Path: path,
				Message: fmt.Sprintf("pattern #%d: missing Name", i+1)}
		}
		if len(def.Regexes) == 0 {
			return nil, &FormatError{Path: path,
				Message: fmt.Sprintf("pattern %d (%s): at least one RegEx is required", def.ID, def.Name)}
		}
		if def.Disabled {
			gologger.Verbose().Msgf("pattern %d (%s) is disabled, skipping", def.ID, def.Name)
			continue
		}

		boundaries := def.Boundaries
		if len(boundaries) == 0 {
			boundaries = []Boundary{{}}
		}
		minor := 0
		for _, b := range boundaries {
			for _, re := range def.Regexes {
				out = append(out, patscan.Pattern{
					ID:     patscan.PatternID{Major: def.ID, Minor: minor},
					Name:   def.Name,
					Regex:  b.Prefix + re + b.Suffix,
					Ignore: def.Ignore,
				})
				minor++
			}
		}
	}
	return out, nil
}
