package routemap

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	rerrors "github.com/yshengliao/linkroute/errors"
	"gopkg.in/yaml.v3"
)

// Format is a route map file format
type Format int

const (
	FormatYAML Format = iota
	FormatTOML
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	default:
		return "unknown"
	}
}

// FormatOf picks the format from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return 0, rerrors.NewConfigurationError(rerrors.CodeInvalidFormat,
			"unsupported route map format", nil).WithDetail("path", path)
	}
}

// Load reads, parses and validates the route map at path.
func Load(path string) (*Map, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, rerrors.NewConfigurationError(rerrors.CodeFileSystemError,
			fmt.Sprintf("reading route map %s", path), err)
	}

	m, err := Parse(path, data, format)
	if err != nil {
		return nil, rerrors.NewConfigurationError(rerrors.CodeUnmarshalError, "", err).WithDetail("path", path)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Parse decodes a route map. Unknown keys are rejected. The map is not
// validated.
func Parse(source string, data []byte, format Format) (*Map, error) {
	m := &Map{source: source}

	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(m); err != nil && !errors.Is(err, io.EOF) {
			return nil, &ParseError{Path: source, Message: err.Error(), Err: err}
		}

	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(m); err != nil {
			pe := &ParseError{Path: source, Message: err.Error(), Err: err}
			var de *toml.DecodeError
			if errors.As(err, &de) {
				pe.Line, pe.Column = de.Position()
			}
			return nil, pe
		}

	default:
		return nil, rerrors.NewConfigurationError(rerrors.CodeInvalidFormat,
			"unsupported route map format", nil).WithDetail("format", format.String())
	}

	return m, nil
}

// ParseError represents an error while parsing a route map file.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
