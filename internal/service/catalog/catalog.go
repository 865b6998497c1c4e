// Package catalog declares the dictionary capabilities exposed to the
// language model. The catalog is built once and never mutated.
package catalog

import (
	"sync"

	"github.com/heartmarshall/kubishi-relay/internal/domain"
)

// Catalog is an ordered, read-only set of tool declarations.
type Catalog struct {
	decls  []domain.ToolDeclaration
	byName map[domain.Capability]int
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the shared catalog of the four dictionary capabilities.
func Default() *Catalog {
	defaultOnce.Do(func() {
		defaultCatalog = New(declarations())
	})
	return defaultCatalog
}

// New builds a catalog from declarations. Later duplicates of a name are ignored.
func New(decls []domain.ToolDeclaration) *Catalog {
	c := &Catalog{
		decls:  make([]domain.ToolDeclaration, 0, len(decls)),
		byName: make(map[domain.Capability]int, len(decls)),
	}
	for _, d := range decls {
		if _, dup := c.byName[d.Name]; dup {
			continue
		}
		c.byName[d.Name] = len(c.decls)
		c.decls = append(c.decls, cloneDecl(d))
	}
	return c
}

// Declarations returns a copy of the declarations in catalog order.
func (c *Catalog) Declarations() []domain.ToolDeclaration {
	out := make([]domain.ToolDeclaration, len(c.decls))
	for i, d := range c.decls {
		out[i] = cloneDecl(d)
	}
	return out
}

// Lookup returns the declaration for name.
func (c *Catalog) Lookup(name domain.Capability) (domain.ToolDeclaration, bool) {
	i, ok := c.byName[name]
	if !ok {
		return domain.ToolDeclaration{}, false
	}
	return cloneDecl(c.decls[i]), true
}

// Names returns capability names in catalog order.
func (c *Catalog) Names() []domain.Capability {
	out := make([]domain.Capability, len(c.decls))
	for i, d := range c.decls {
		out[i] = d.Name
	}
	return out
}

// ValidateArgs checks raw model arguments against the declaration of name:
// every required parameter must be a non-empty string and no undeclared
// parameter may appear.
func (c *Catalog) ValidateArgs(name domain.Capability, raw map[string]any) (map[string]string, error) {
	decl, ok := c.Lookup(name)
	if !ok {
		return nil, domain.ErrUnknownCapability
	}

	var errs []domain.FieldError
	args := make(map[string]string, len(decl.Params))
	declared := make(map[string]struct{}, len(decl.Params))

	for _, p := range decl.Params {
		declared[p.Name] = struct{}{}
		v, present := raw[p.Name]
		if !present {
			if p.Required {
				errs = append(errs, domain.FieldError{Field: p.Name, Message: "required"})
			}
			continue
		}
		s, isString := v.(string)
		if !isString {
			errs = append(errs, domain.FieldError{Field: p.Name, Message: "must be a string"})
			continue
		}
		if p.Required && s == "" {
			errs = append(errs, domain.FieldError{Field: p.Name, Message: "required"})
			continue
		}
		args[p.Name] = s
	}

	for k := range raw {
		if _, ok := declared[k]; !ok {
			errs = append(errs, domain.FieldError{Field: k, Message: "unexpected"})
		}
	}

	if len(errs) > 0 {
		return nil, domain.NewArgumentErrors(name, errs)
	}
	return args, nil
}

func cloneDecl(d domain.ToolDeclaration) domain.ToolDeclaration {
	d.Params = append([]domain.Param(nil), d.Params...)
	return d
}
