// Package config loads example program settings from TOML files.
package config

import (
	"bufio"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Open decodes the TOML file at path into v. Fields of v absent from the file keep
// their values, so v should be initialized with defaults. Keys that do not map to
// a field of v are an error.
func Open(v any, path string) error {
	fp, err := os.Open(path)
	if err != nil {
		return err
	}
	defer fp.Close()
	dec := toml.NewDecoder(bufio.NewReader(fp))
	dec.DisallowUnknownFields()
	if err = dec.Decode(v); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}

// Save writes v to path as TOML.
func Save(v any, path string) error {
	b, err := toml.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0666)
}
