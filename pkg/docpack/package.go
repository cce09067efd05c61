package docpack

import (
	"encoding/xml"
	"fmt"
	"path"
	"sort"
	"strings"
)

// RootScope is the relationship scope owned by the package itself rather than
// by any individual part.
const RootScope = ""

const relationshipsNamespace = "http://schemas.openxmlformats.org/package/2006/relationships"

// Relationship represents a directed, typed reference from a scope to a
// target part or external resource.
type Relationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr,omitempty"`
}

// IsExternal reports whether the relationship targets a resource outside the
// package.
func (r Relationship) IsExternal() bool {
	return r.TargetMode == "External"
}

// Relationships represents the collection of relationships in a .rels part
type Relationships struct {
	XMLName      xml.Name       `xml:"Relationships"`
	Namespace    string         `xml:"xmlns,attr"`
	Relationship []Relationship `xml:"Relationship"`
}

// ScopedRelationship pairs a relationship with the scope that owns it. It is
// how reverse lookups report edges, since an edge id is only unique within
// its owning scope.
type ScopedRelationship struct {
	Scope        string
	Relationship Relationship
}

// Part is a named, typed unit of content within a package. The package owns
// the part exclusively; a part removed from its package must not be reused.
type Part struct {
	Name        string
	ContentType string
	Blob        []byte
}

// Package is the in-memory model of an OPC container: parts as nodes and
// relationships as directed labeled edges, each owned by a source part or by
// the package root. Relationships reference parts by name, not by pointer, so
// removing a part does not implicitly clean up edges; see RemoveSubtree.
//
// A Package is not safe for concurrent mutation. One load/save cycle owns one
// instance.
type Package struct {
	registry *ContentTypeRegistry
	parts    map[string]*Part
	order    []string
	rels     map[string][]Relationship
}

// NewPackage creates an empty package backed by the given registry. A nil
// registry gets replaced with an empty one.
func NewPackage(registry *ContentTypeRegistry) *Package {
	if registry == nil {
		registry = NewContentTypeRegistry()
	}
	return &Package{
		registry: registry,
		parts:    make(map[string]*Part),
		rels:     make(map[string][]Relationship),
	}
}

// Registry returns the content type registry owned by this package
func (p *Package) Registry() *ContentTypeRegistry {
	return p.registry
}

// AddPart adds a part to the package. The part's content type is recorded as
// a registry override unless the extension default already resolves to it.
func (p *Package) AddPart(name, contentType string, blob []byte) error {
	name = normalizePartName(name)
	if _, exists := p.parts[name]; exists {
		return NewDuplicatePartError(name)
	}

	if resolved, err := p.registry.Resolve(name); err != nil || resolved != contentType {
		p.registry.SetOverride(name, contentType)
	}

	p.parts[name] = &Part{
		Name:        name,
		ContentType: contentType,
		Blob:        blob,
	}
	p.order = append(p.order, name)
	return nil
}

// Part returns the part with the given name
func (p *Package) Part(name string) (*Part, error) {
	part, ok := p.parts[normalizePartName(name)]
	if !ok {
		return nil, NewPartNotFoundError(name)
	}
	return part, nil
}

// HasPart reports whether a part with the given name exists
func (p *Package) HasPart(name string) bool {
	_, ok := p.parts[normalizePartName(name)]
	return ok
}

// Parts returns all parts in insertion order
func (p *Package) Parts() []*Part {
	parts := make([]*Part, 0, len(p.order))
	for _, name := range p.order {
		if part, ok := p.parts[name]; ok {
			parts = append(parts, part)
		}
	}
	return parts
}

// RemovePart removes the part node and its content type override. It does
// NOT touch relationships; edge cleanup is RemoveSubtree's job, which keeps
// node deletion and dangling-edge deletion independently testable.
func (p *Package) RemovePart(name string) error {
	name = normalizePartName(name)
	if _, ok := p.parts[name]; !ok {
		return NewPartNotFoundError(name)
	}

	delete(p.parts, name)
	p.registry.RemoveOverride(name)
	for i, n := range p.order {
		if n == name {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
	return nil
}

// AddRelationship adds an edge to the given scope. The id must be unique
// within that scope.
func (p *Package) AddRelationship(scope string, rel Relationship) error {
	scope = normalizePartName(scope)
	for _, existing := range p.rels[scope] {
		if existing.ID == rel.ID {
			return NewDuplicateRelationshipError(scope, rel.ID)
		}
	}
	p.rels[scope] = append(p.rels[scope], rel)
	return nil
}

// RelationshipsFrom returns the outgoing edges of a scope in insertion order
func (p *Package) RelationshipsFrom(scope string) []Relationship {
	scope = normalizePartName(scope)
	rels := make([]Relationship, len(p.rels[scope]))
	copy(rels, p.rels[scope])
	return rels
}

// RelationshipsTo returns every internal edge, from any scope, whose resolved
// target is the given part name. Computed by scanning all forward edges; the
// forward edges are the single source of truth.
func (p *Package) RelationshipsTo(target string) []ScopedRelationship {
	target = normalizePartName(target)
	var result []ScopedRelationship
	for _, scope := range p.Scopes() {
		for _, rel := range p.rels[scope] {
			if rel.IsExternal() {
				continue
			}
			if resolveTarget(scope, rel.Target) == target {
				result = append(result, ScopedRelationship{Scope: scope, Relationship: rel})
			}
		}
	}
	return result
}

// RemoveRelationship removes a single edge by id from a scope. Removing an
// absent edge is a no-op; the return value reports whether an edge was
// actually removed.
func (p *Package) RemoveRelationship(scope, id string) bool {
	scope = normalizePartName(scope)
	rels := p.rels[scope]
	for i, rel := range rels {
		if rel.ID == id {
			p.rels[scope] = append(rels[:i], rels[i+1:]...)
			if len(p.rels[scope]) == 0 {
				delete(p.rels, scope)
			}
			return true
		}
	}
	return false
}

// RemoveScope drops a scope and all of its outgoing edges, returning the
// removed edges.
func (p *Package) RemoveScope(scope string) []Relationship {
	scope = normalizePartName(scope)
	removed := p.rels[scope]
	delete(p.rels, scope)
	return removed
}

// Scopes returns every scope that owns at least one relationship, root first,
// then parts in sorted order.
func (p *Package) Scopes() []string {
	scopes := make([]string, 0, len(p.rels))
	hasRoot := false
	for scope := range p.rels {
		if scope == RootScope {
			hasRoot = true
			continue
		}
		scopes = append(scopes, scope)
	}
	sort.Strings(scopes)
	if hasRoot {
		scopes = append([]string{RootScope}, scopes...)
	}
	return scopes
}

// ResolveTarget returns the absolute part name a relationship points to,
// resolved against its owning scope. External relationships resolve to their
// raw target.
func (p *Package) ResolveTarget(scope string, rel Relationship) string {
	if rel.IsExternal() {
		return rel.Target
	}
	return resolveTarget(normalizePartName(scope), rel.Target)
}

// CheckInvariants verifies the structural consistency of the graph:
// every internal edge targets an existing part, every edge is owned by the
// root or an existing part, and every part's content type resolves in the
// registry to the type the part declares. An empty result means the package
// is safe to serialize.
func (p *Package) CheckInvariants() []InvariantViolation {
	var violations []InvariantViolation

	for _, scope := range p.Scopes() {
		if scope != RootScope {
			if _, ok := p.parts[scope]; !ok {
				violations = append(violations, InvariantViolation{
					Scope:   scope,
					Subject: "scope",
					Message: "relationships owned by a part that no longer exists",
				})
			}
		}
		for _, rel := range p.rels[scope] {
			if rel.IsExternal() {
				continue
			}
			target := resolveTarget(scope, rel.Target)
			if _, ok := p.parts[target]; !ok {
				violations = append(violations, InvariantViolation{
					Scope:   scope,
					Subject: fmt.Sprintf("relationship '%s'", rel.ID),
					Message: fmt.Sprintf("dangling target '%s'", target),
				})
			}
		}
	}

	for _, name := range p.order {
		part := p.parts[name]
		resolved, err := p.registry.Resolve(name)
		if err != nil {
			violations = append(violations, InvariantViolation{
				Subject: fmt.Sprintf("part '%s'", name),
				Message: "content type does not resolve in registry",
			})
			continue
		}
		if resolved != part.ContentType {
			violations = append(violations, InvariantViolation{
				Subject: fmt.Sprintf("part '%s'", name),
				Message: fmt.Sprintf("registry resolves to '%s' but part declares '%s'", resolved, part.ContentType),
			})
		}
	}

	return violations
}

// Clone returns a deep copy of the package, including its registry. The
// reclassifier mutates a clone so a failed transformation leaves the
// original untouched.
func (p *Package) Clone() *Package {
	clone := NewPackage(p.registry.Clone())
	for _, name := range p.order {
		part := p.parts[name]
		blob := make([]byte, len(part.Blob))
		copy(blob, part.Blob)
		clone.parts[name] = &Part{
			Name:        name,
			ContentType: part.ContentType,
			Blob:        blob,
		}
		clone.order = append(clone.order, name)
	}
	for scope, rels := range p.rels {
		copied := make([]Relationship, len(rels))
		copy(copied, rels)
		clone.rels[scope] = copied
	}
	return clone
}

// resolveTarget resolves a relationship target against the directory of its
// owning scope. The root scope resolves against the container root.
func resolveTarget(scope, target string) string {
	// A leading slash resolves from the container root regardless of scope.
	if strings.HasPrefix(target, "/") {
		return path.Clean(strings.TrimPrefix(target, "/"))
	}
	dir := ""
	if scope != RootScope {
		if idx := strings.LastIndex(scope, "/"); idx != -1 {
			dir = scope[:idx]
		}
	}
	return path.Clean(path.Join(dir, target))
}

func normalizePartName(name string) string {
	return strings.TrimPrefix(name, "/")
}
