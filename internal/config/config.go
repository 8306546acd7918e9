// Package config loads the pcsv color scheme and pager settings.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultPath is consulted when no config file is named on the command line.
const DefaultPath = "~/.config/pcsv/config.yaml"

// TOMLPath is tried after DefaultPath. Files ending in ".toml" are parsed as
// TOML wherever they live; everything else is YAML.
const TOMLPath = "~/.config/pcsv/config.toml"

// SearchPaths lists the default config locations in lookup order.
var SearchPaths = []string{DefaultPath, TOMLPath}

const (
	defaultScrollSingleLine = 1
	defaultScrollMultiLine  = 10
)

// HexColor is a "#RRGGBB" or "#RGB" color string.
type HexColor string

// Valid reports whether the color is a well-formed hex triplet.
func (c HexColor) Valid() bool {
	s := string(c)
	if !strings.HasPrefix(s, "#") || (len(s) != 4 && len(s) != 7) {
		return false
	}
	for _, ch := range s[1:] {
		switch {
		case ch >= '0' && ch <= '9', ch >= 'a' && ch <= 'f', ch >= 'A' && ch <= 'F':
		default:
			return false
		}
	}
	return true
}

// DataTypeColors holds the foreground color of each inferred cell type.
type DataTypeColors struct {
	Text        HexColor `yaml:"text" toml:"text"`
	Date        HexColor `yaml:"date" toml:"date"`
	FloatNumber HexColor `yaml:"float_number" toml:"float_number"`
	IntNumber   HexColor `yaml:"int_number" toml:"int_number"`
	Boolean     HexColor `yaml:"boolean" toml:"boolean"`
	Empty       HexColor `yaml:"empty" toml:"empty"`
}

// PagerConfig holds the step sizes of the fine and coarse scroll keys.
type PagerConfig struct {
	ScrollSingleLine int `yaml:"scroll_single_line" toml:"scroll_single_line"`
	ScrollMultiLine  int `yaml:"scroll_multi_line" toml:"scroll_multi_line"`
}

// DefaultPagerConfig scrolls one line per fine step and ten per coarse step.
func DefaultPagerConfig() PagerConfig {
	return PagerConfig{
		ScrollSingleLine: defaultScrollSingleLine,
		ScrollMultiLine:  defaultScrollMultiLine,
	}
}

// Normalize replaces non-positive step sizes with their defaults.
func (pc PagerConfig) Normalize() PagerConfig {
	if pc.ScrollSingleLine <= 0 {
		pc.ScrollSingleLine = defaultScrollSingleLine
	}
	if pc.ScrollMultiLine <= 0 {
		pc.ScrollMultiLine = defaultScrollMultiLine
	}
	return pc
}

// ColorScheme is the top-level config document.
type ColorScheme struct {
	DataTypes DataTypeColors `yaml:"data_types" toml:"data_types"`
	Header    HexColor       `yaml:"header" toml:"header"`
	RowNumber HexColor       `yaml:"row_number" toml:"row_number"`
	Border    HexColor       `yaml:"border" toml:"border"`
	Pager     PagerConfig    `yaml:"pager" toml:"pager"`
}

// Default returns the built-in scheme.
func Default() ColorScheme {
	return ColorScheme{
		DataTypes: DataTypeColors{
			Text:        "#BACEDF",
			Date:        "#FAB387",
			FloatNumber: "#89B4FA",
			IntNumber:   "#A6E3A1",
			Boolean:     "#F9E2AF",
			Empty:       "#585B70",
		},
		Header:    "#CBB6F7",
		RowNumber: "#94E2D5",
		Border:    "#585B70",
		Pager:     DefaultPagerConfig(),
	}
}

// Validate checks every color in the scheme.
func (cs ColorScheme) Validate() error {
	colors := []struct {
		key   string
		value HexColor
	}{
		{"data_types.text", cs.DataTypes.Text},
		{"data_types.date", cs.DataTypes.Date},
		{"data_types.float_number", cs.DataTypes.FloatNumber},
		{"data_types.int_number", cs.DataTypes.IntNumber},
		{"data_types.boolean", cs.DataTypes.Boolean},
		{"data_types.empty", cs.DataTypes.Empty},
		{"header", cs.Header},
		{"row_number", cs.RowNumber},
		{"border", cs.Border},
	}
	for _, c := range colors {
		if !c.value.Valid() {
			return errors.Errorf("invalid color %q for %s", c.value, c.key)
		}
	}
	return nil
}

// Load reads the file at path over the defaults, so keys missing from the
// file keep their default values. A leading "~/" expands to $HOME.
func Load(path string) (ColorScheme, error) {
	scheme := Default()

	data, err := os.ReadFile(ExpandHome(path))
	if err != nil {
		return scheme, errors.Wrapf(err, "failed to read config %s", path)
	}

	decode := Decode
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		decode = DecodeTOML
	}
	if err := decode(data, &scheme); err != nil {
		return Default(), errors.Wrapf(err, "failed to load config %s", path)
	}
	return scheme, nil
}

// Decode unmarshals YAML data into scheme, then validates and normalizes it.
func Decode(data []byte, scheme *ColorScheme) error {
	if err := yaml.Unmarshal(data, scheme); err != nil {
		return errors.Wrap(err, "failed to parse yaml")
	}
	return scheme.finish()
}

// DecodeTOML is Decode for TOML documents.
func DecodeTOML(data []byte, scheme *ColorScheme) error {
	if err := toml.Unmarshal(data, scheme); err != nil {
		return errors.Wrap(err, "failed to parse toml")
	}
	return scheme.finish()
}

func (cs *ColorScheme) finish() error {
	if err := cs.Validate(); err != nil {
		return err
	}
	cs.Pager = cs.Pager.Normalize()
	return nil
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	return filepath.Join(home, path[2:])
}
