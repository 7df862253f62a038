// Package catalog holds the fixed bidirectional mapping between color names
// and RGB triples used to generate and label frames.
package catalog

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/yedell/color-challenge/internal/model"
)

// ErrNotFound matches every NotFoundError via errors.Is.
var ErrNotFound = errors.New("color not found in catalog")

// NotFoundError reports a name or triple missing from the catalog.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("color %s not found in catalog", e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Catalog is a bijection between names and triples. It is not safe for
// concurrent mutation; the pipeline only reads it after startup.
type Catalog struct {
	byName map[string]model.RGB
	byRGB  map[model.RGB]string
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{
		byName: make(map[string]model.RGB),
		byRGB:  make(map[model.RGB]string),
	}
}

// Default returns the eight corner colors of the RGB cube. The set is closed
// under Complement, so every watermark color is itself nameable.
func Default() *Catalog {
	c := New()
	c.Insert("black", model.RGB{R: 0, G: 0, B: 0})
	c.Insert("white", model.RGB{R: 255, G: 255, B: 255})
	c.Insert("red", model.RGB{R: 255, G: 0, B: 0})
	c.Insert("yellow", model.RGB{R: 255, G: 255, B: 0})
	c.Insert("lime", model.RGB{R: 0, G: 255, B: 0})
	c.Insert("aqua", model.RGB{R: 0, G: 255, B: 255})
	c.Insert("blue", model.RGB{R: 0, G: 0, B: 255})
	c.Insert("fuchsia", model.RGB{R: 255, G: 0, B: 255})
	return c
}

// Insert pairs name with rgb. Any existing pairing that shares either key is
// removed first, so the catalog never holds two entries for one name or triple.
func (c *Catalog) Insert(name string, rgb model.RGB) {
	c.Delete(name)
	if old, ok := c.byRGB[rgb]; ok {
		c.Delete(old)
	}
	c.byName[name] = rgb
	c.byRGB[rgb] = name
}

// Delete removes name and its triple. It reports whether name was present.
func (c *Catalog) Delete(name string) bool {
	rgb, ok := c.byName[name]
	if !ok {
		return false
	}
	delete(c.byName, name)
	delete(c.byRGB, rgb)
	return true
}

// LookupName returns the triple paired with name.
func (c *Catalog) LookupName(name string) (model.RGB, error) {
	rgb, ok := c.byName[name]
	if !ok {
		return model.RGB{}, &NotFoundError{Key: fmt.Sprintf("%q", name)}
	}
	return rgb, nil
}

// LookupRGB returns the name paired with rgb.
func (c *Catalog) LookupRGB(rgb model.RGB) (string, error) {
	name, ok := c.byRGB[rgb]
	if !ok {
		return "", &NotFoundError{Key: rgb.String()}
	}
	return name, nil
}

// Names returns every color name in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.byName))
	for name := range c.byName {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of pairings.
func (c *Catalog) Len() int {
	return len(c.byName)
}

// Random picks a pairing uniformly. It panics on an empty catalog.
func (c *Catalog) Random(rng *rand.Rand) (string, model.RGB) {
	names := c.Names()
	name := names[rng.IntN(len(names))]
	return name, c.byName[name]
}
