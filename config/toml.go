package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"reflect"
	"unicode"

	"github.com/naoina/toml"
	"github.com/pkg/errors"
)

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		link := ""
		if unicode.IsUpper(rune(rt.Name()[0])) && rt.PkgPath() != "main" {
			link = fmt.Sprintf(", see %s for available fields", rt.PkgPath())
		}
		return fmt.Errorf("field '%s' is not defined in %s%s", field, rt.String(), link)
	},
}

// LoadConfig decodes the TOML file at path on top of cfg. Keys missing from the
// file keep the values already in cfg.
func LoadConfig(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := Decode(bufio.NewReader(f), cfg); err != nil {
		// Add file name to errors that have a line number.
		var lineErr *toml.LineError
		if errors.As(err, &lineErr) {
			return errors.Wrap(err, path)
		}
		return err
	}
	return nil
}

// Decode reads TOML from r into cfg and validates the result.
func Decode(r io.Reader, cfg *Config) error {
	if err := tomlSettings.NewDecoder(r).Decode(cfg); err != nil {
		return err
	}
	return cfg.Validate()
}

// Dump writes cfg as TOML.
func Dump(w io.Writer, cfg *Config) error {
	out, err := tomlSettings.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
