// Package seed reads wardrobe files: a YAML (or JSON) document holding either a
// list of items or an object with an "items" list.
package seed

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/liliang-cn/closet/internal/domain"
	"gopkg.in/yaml.v3"
)

// File is the wrapped document form
type File struct {
	Items []*domain.ClothingItem `yaml:"items"`
}

// Load reads items from path
func Load(path string) ([]*domain.ClothingItem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open wardrobe file: %w", err)
	}
	defer f.Close()

	items, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return items, nil
}

// Decode reads items from r
func Decode(r io.Reader) ([]*domain.ClothingItem, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []*domain.ClothingItem{}, nil
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse wardrobe file: %w", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, errors.New("parse wardrobe file: empty document")
	}

	doc := root.Content[0]
	switch doc.Kind {
	case yaml.SequenceNode:
		var items []*domain.ClothingItem
		if err := doc.Decode(&items); err != nil {
			return nil, fmt.Errorf("decode items: %w", err)
		}
		return nonNil(items), nil
	case yaml.MappingNode:
		var file File
		if err := doc.Decode(&file); err != nil {
			return nil, fmt.Errorf("decode items: %w", err)
		}
		return nonNil(file.Items), nil
	default:
		return nil, fmt.Errorf("parse wardrobe file: expected a list or a mapping at line %d", doc.Line)
	}
}

func nonNil(items []*domain.ClothingItem) []*domain.ClothingItem {
	if items == nil {
		return []*domain.ClothingItem{}
	}
	return items
}
