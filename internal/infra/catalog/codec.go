package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/bryanwahyu/marineiq/internal/domain/catalog"
)

// Decode reads a YAML catalog document and validates it.
// Unknown fields are rejected so typos don't silently drop data.
func Decode(r io.Reader) (catalog.Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var c catalog.Catalog
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return catalog.Catalog{}, fmt.Errorf("%w: empty document", catalog.ErrInvalid)
		}
		return catalog.Catalog{}, fmt.Errorf("%w: %v", catalog.ErrInvalid, err)
	}
	if err := c.Validate(); err != nil {
		return catalog.Catalog{}, err
	}
	return c, nil
}

// Encode writes c as YAML.
func Encode(w io.Writer, c catalog.Catalog) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}

// Marshal is Encode into a byte slice.
func Marshal(c catalog.Catalog) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
