package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var defaultCatalogYAML []byte

//nolint:gochecknoglobals // Lazy-loaded embedded catalog, parsed once per process.
var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the catalog built into the binary.
// It is parsed once; a broken embedded catalog is a build defect and panics.
func Default() *Catalog {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Parse(defaultCatalogYAML)
	})
	if defaultErr != nil {
		panic(fmt.Sprintf("embedded catalog is invalid: %v", defaultErr))
	}
	return defaultCatalog
}

// DefaultYAML returns the raw embedded catalog document.
func DefaultYAML() []byte {
	return append([]byte(nil), defaultCatalogYAML...)
}

// Parse decodes a YAML catalog document and builds a validated Catalog.
// Unknown fields are rejected so typos in overlay files surface early.
func Parse(data []byte) (*Catalog, error) {
	doc, err := DecodeDocument(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return New(doc)
}

// Load reads a YAML catalog document from r and builds a validated Catalog.
func Load(r io.Reader) (*Catalog, error) {
	doc, err := DecodeDocument(r)
	if err != nil {
		return nil, err
	}
	return New(doc)
}

// LoadFile reads and validates the catalog at path.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog %s: %w", path, err)
	}
	defer f.Close()

	c, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("loading catalog %s: %w", path, err)
	}
	return c, nil
}

// DecodeDocument decodes a YAML catalog document without validating it.
// An empty input decodes to an empty Document.
func DecodeDocument(r io.Reader) (Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Document{}, nil
		}
		return Document{}, fmt.Errorf("decoding catalog: %w", err)
	}
	return doc, nil
}

// Encode writes doc as YAML to w.
func Encode(w io.Writer, doc Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}
	return enc.Close()
}

// Merge layers overlay on top of base and returns a new validated Catalog.
//
// Entries in overlay replace base entries with the same key and new keys are
// appended in overlay order. A category present in both keeps the base
// category's models, with overlay models merged into it by key; an overlay
// category with a blank name or workload inherits those fields from base.
// A non-empty overlay version replaces the base version.
func Merge(base *Catalog, overlay Document) (*Catalog, error) {
	doc := base.Document()

	if overlay.Version != "" {
		doc.Version = overlay.Version
	}

	for _, oc := range overlay.Categories {
		i := indexOf(doc.Categories, oc.Key, func(c Category) string { return c.Key })
		if i < 0 {
			doc.Categories = append(doc.Categories, oc)
			continue
		}
		merged := doc.Categories[i]
		if oc.Name != "" {
			merged.Name = oc.Name
		}
		if oc.Workload != "" {
			merged.Workload = oc.Workload
		}
		merged.Models = mergeByKey(merged.Models, oc.Models, func(m Model) string { return m.Key })
		doc.Categories[i] = merged
	}

	doc.DatasetTypes = mergeByKey(doc.DatasetTypes, overlay.DatasetTypes, func(d DatasetType) string { return d.Key })
	doc.Tasks = mergeByKey(doc.Tasks, overlay.Tasks, func(t Task) string { return t.Key })
	doc.Regions = mergeByKey(doc.Regions, overlay.Regions, func(r Region) string { return r.Key })
	doc.Hardware = mergeByKey(doc.Hardware, overlay.Hardware, func(h Hardware) string { return h.Key })

	return New(doc)
}

// Resolve returns the catalog to use for a run. With an empty path it is the
// embedded default. Otherwise the file at path either replaces the default
// (replace=true) or is merged over it.
func Resolve(path string, replace bool) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	if replace {
		return LoadFile(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog overlay %s: %w", path, err)
	}
	defer f.Close()

	overlay, err := DecodeDocument(f)
	if err != nil {
		return nil, fmt.Errorf("loading catalog overlay %s: %w", path, err)
	}
	c, err := Merge(Default(), overlay)
	if err != nil {
		return nil, fmt.Errorf("merging catalog overlay %s: %w", path, err)
	}
	return c, nil
}

func mergeByKey[T any](base, overlay []T, key func(T) string) []T {
	out := append([]T(nil), base...)
	for _, o := range overlay {
		if i := indexOf(out, key(o), key); i >= 0 {
			out[i] = o
			continue
		}
		out = append(out, o)
	}
	return out
}

func indexOf[T any](items []T, k string, key func(T) string) int {
	for i, it := range items {
		if key(it) == k {
			return i
		}
	}
	return -1
}
