// Package catalog loads the shop's item catalog. The default catalog is
// embedded in the binary; a YAML file with the same shape can replace it.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/momentum/internal/model"
	"github.com/alexisbeaulieu97/momentum/internal/validation"
	momentumerrors "github.com/alexisbeaulieu97/momentum/pkg/errors"
)

//go:embed catalog.yaml
var builtinYAML []byte

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

type file struct {
	Items []model.ShopItem `yaml:"items" validate:"required,min=1,dive"`
}

// Catalog is an ordered, immutable list of shop items.
type Catalog struct {
	items []model.ShopItem
	byID  map[string]int
}

// Builtin returns the embedded catalog.
func Builtin() *Catalog {
	c, err := Parse("catalog.yaml", builtinYAML)
	if err != nil {
		panic(err)
	}
	return c
}

// LoadFile reads a catalog from disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, momentumerrors.NewParseError(path, 0, err)
	}
	return Parse(path, data)
}

// Parse decodes and validates catalog YAML. name is used in error messages.
func Parse(name string, data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f file
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, momentumerrors.NewParseError(name, extractLine(err), err)
	}
	if err := validation.Config(&f); err != nil {
		return nil, err
	}

	c := &Catalog{items: f.Items, byID: make(map[string]int, len(f.Items))}
	for i, item := range f.Items {
		if _, dup := c.byID[item.ID]; dup {
			field := fmt.Sprintf("items[%d].id", i)
			return nil, momentumerrors.NewValidationError(field, fmt.Sprintf("duplicate item id %q", item.ID), nil)
		}
		c.byID[item.ID] = i
	}
	return c, nil
}

// Items returns every item in catalog order.
func (c *Catalog) Items() []model.ShopItem {
	return append([]model.ShopItem(nil), c.items...)
}

// Find returns the item with the given id.
func (c *Catalog) Find(id string) (model.ShopItem, bool) {
	i, ok := c.byID[id]
	if !ok {
		return model.ShopItem{}, false
	}
	return c.items[i], true
}

// Category returns the items in category, or every item when category is
// "" or "all".
func (c *Catalog) Category(category string) []model.ShopItem {
	if category == "" || category == "all" {
		return c.Items()
	}
	var out []model.ShopItem
	for _, item := range c.items {
		if item.Category == category {
			out = append(out, item)
		}
	}
	return out
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	return len(c.items)
}

func extractLine(err error) int {
	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}
	line, convErr := strconv.Atoi(matches[1])
	if convErr != nil {
		return 0
	}
	return line
}
