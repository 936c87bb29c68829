package catalog

import (
	"github.com/terassyi/cargo-go/internal/cargoerr"
)

// clone returns a shallow copy of c's Sources map, so every mutating
// op below returns a new Catalog value instead of mutating a shared
// package-level catalog in place.
func (c *Catalog) clone() *Catalog {
	sources := make(map[string]Source, len(c.Sources))
	for k, v := range c.Sources {
		sources[k] = v
	}
	packages := make(map[string][]Package, len(c.Packages))
	for k, v := range c.Packages {
		packages[k] = v
	}
	return &Catalog{Sources: sources, Packages: packages}
}

// Add returns a new Catalog with name registered against src. It is an
// error to add a name that already exists.
func (c *Catalog) Add(name string, src Source) (*Catalog, error) {
	if !ValidSourceName(name) {
		return nil, cargoerr.New(cargoerr.CategoryCatalog, "invalid source name").WithDetail("name", name)
	}
	if _, exists := c.Sources[name]; exists {
		return nil, cargoerr.New(cargoerr.CategoryCatalog, "source already exists").
			WithCode(cargoerr.CodeDuplicateSource).
			WithDetail("name", name)
	}

	next := c.clone()
	next.Sources[name] = src
	return next, nil
}

// Remove returns a new Catalog with name and its packages removed.
func (c *Catalog) Remove(name string) (*Catalog, error) {
	if _, exists := c.Sources[name]; !exists {
		return nil, cargoerr.New(cargoerr.CategoryCatalog, "source not found").
			WithCode(cargoerr.CodeSourceNotFound).
			WithDetail("name", name)
	}

	next := c.clone()
	delete(next.Sources, name)
	delete(next.Packages, name)
	return next, nil
}

// Rename returns a new Catalog with oldName renamed to newName.
func (c *Catalog) Rename(oldName, newName string) (*Catalog, error) {
	src, exists := c.Sources[oldName]
	if !exists {
		return nil, cargoerr.New(cargoerr.CategoryCatalog, "source not found").
			WithCode(cargoerr.CodeSourceNotFound).
			WithDetail("name", oldName)
	}
	if !ValidSourceName(newName) {
		return nil, cargoerr.New(cargoerr.CategoryCatalog, "invalid source name").WithDetail("name", newName)
	}
	if _, exists := c.Sources[newName]; exists {
		return nil, cargoerr.New(cargoerr.CategoryCatalog, "source already exists").
			WithCode(cargoerr.CodeDuplicateSource).
			WithDetail("name", newName)
	}

	next := c.clone()
	delete(next.Sources, oldName)
	next.Sources[newName] = src
	if pkgs, ok := next.Packages[oldName]; ok {
		delete(next.Packages, oldName)
		next.Packages[newName] = pkgs
	}
	return next, nil
}

// SetURL returns a new Catalog with name's URL updated.
func (c *Catalog) SetURL(name, url string) (*Catalog, error) {
	src, exists := c.Sources[name]
	if !exists {
		return nil, cargoerr.New(cargoerr.CategoryCatalog, "source not found").
			WithCode(cargoerr.CodeSourceNotFound).
			WithDetail("name", name)
	}

	next := c.clone()
	src.URL = url
	next.Sources[name] = src
	return next, nil
}

// SetMethod returns a new Catalog with name's Method updated.
func (c *Catalog) SetMethod(name string, method Method) (*Catalog, error) {
	src, exists := c.Sources[name]
	if !exists {
		return nil, cargoerr.New(cargoerr.CategoryCatalog, "source not found").
			WithCode(cargoerr.CodeSourceNotFound).
			WithDetail("name", name)
	}

	next := c.clone()
	src.Method = method
	next.Sources[name] = src
	return next, nil
}

// Clear returns a new, empty Catalog.
func (c *Catalog) Clear() *Catalog {
	return New()
}
