// Package document loads YAML or JSON documents as duck-typed record
// trees, so two arbitrary structured documents can be diffed with the
// record engine. Mappings become records with inferred types, arrays of
// mappings become keyed collections, and everything else stays a plain
// value.
package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/contour-labs/recdiff/core/record"
)

// Load reads and parses the document at path. YAML and JSON both go
// through the YAML decoder; JSON is a YAML subset.
func Load(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no document found at %s", path)
		}
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Parse(data, name)
}

// Parse decodes a YAML or JSON document and builds the record tree. name
// becomes the inferred root type name; nested types are named by their
// path within the document.
func Parse(data []byte, name string) (any, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	if name == "" {
		name = "document"
	}
	return build(raw, name)
}

// build converts one decoded value. Mappings become MapRecords so the
// engine compares them field by field; arrays whose items are all mappings
// become keyed collections so items are matched by content rather than
// position.
func build(v any, name string) (any, error) {
	switch v := v.(type) {
	case map[string]any:
		return buildRecord(v, name)
	case []any:
		return buildSequence(v, name)
	}
	return v, nil
}

func buildRecord(m map[string]any, name string) (record.Record, error) {
	typ, err := inferType(m, name)
	if err != nil {
		return nil, err
	}
	values := make(map[string]any, len(m))
	for key, raw := range m {
		child, err := build(raw, name+"."+key)
		if err != nil {
			return nil, err
		}
		values[key] = child
	}
	return record.NewMapRecord(typ, values)
}

func buildSequence(items []any, name string) (any, error) {
	allMaps := len(items) > 0
	for _, item := range items {
		if _, ok := item.(map[string]any); !ok {
			allMaps = false
			break
		}
	}
	if !allMaps {
		out := make([]any, len(items))
		for i, item := range items {
			child, err := build(item, fmt.Sprintf("%s[%d]", name, i))
			if err != nil {
				return nil, err
			}
			out[i] = child
		}
		return out, nil
	}

	// Items share one inferred type covering every key seen across the
	// collection, so identity extraction keys them all the same way.
	itemType, err := inferItemType(items, name)
	if err != nil {
		return nil, err
	}
	coll := record.NewList(record.NewCollType(name, record.SeqColl, record.OfItems(itemType)))
	for _, item := range items {
		m := item.(map[string]any)
		values := make(map[string]any, len(m))
		for key, raw := range m {
			child, err := build(raw, name+"[]."+key)
			if err != nil {
				return nil, err
			}
			values[key] = child
		}
		rec, err := record.NewMapRecord(itemType, values)
		if err != nil {
			return nil, err
		}
		coll.Append(rec)
	}
	return coll, nil
}

// inferType declares a record type with one plain field per mapping key.
func inferType(m map[string]any, name string) (*record.Type, error) {
	fields := make([]record.Field, 0, len(m))
	for key := range m {
		fields = append(fields, record.Field{Name: key})
	}
	return record.NewType(name, fields)
}

// inferItemType declares the shared item type of a mapping collection: the
// union of the keys of every item.
func inferItemType(items []any, name string) (*record.Type, error) {
	seen := make(map[string]bool)
	var fields []record.Field
	for _, item := range items {
		for key := range item.(map[string]any) {
			if !seen[key] {
				seen[key] = true
				fields = append(fields, record.Field{Name: key})
			}
		}
	}
	return record.NewType(name+"[]", fields)
}
