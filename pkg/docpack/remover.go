package docpack

import (
	"github.com/google/uuid"
)

// RemovedRelationship identifies one removed edge for auditing
type RemovedRelationship struct {
	Scope string
	ID    string
}

// RemovedSet records everything deleted by a subtree removal so callers can
// log or audit the operation.
type RemovedSet struct {
	AuditID       uuid.UUID
	Parts         []string
	Relationships []RemovedRelationship
}

// NewRemovedSet creates an empty removed set with a fresh audit id
func NewRemovedSet() *RemovedSet {
	return &RemovedSet{AuditID: uuid.New()}
}

// IsEmpty reports whether the removal deleted anything at all
func (s *RemovedSet) IsEmpty() bool {
	return len(s.Parts) == 0 && len(s.Relationships) == 0
}

// RemoveSubtree removes the named parts from the package along with every
// relationship edge referencing them: incoming edges from any scope, and the
// outgoing edges of the removed parts themselves.
//
// Removal is idempotent: a target that does not exist is skipped silently.
// The final graph state does not depend on the order of targets, since edge
// removal only depends on target identity.
func RemoveSubtree(pkg *Package, targets []string) *RemovedSet {
	set := NewRemovedSet()

	for _, target := range targets {
		target = normalizePartName(target)

		// Incoming edges first, from every scope.
		for _, scoped := range pkg.RelationshipsTo(target) {
			if pkg.RemoveRelationship(scoped.Scope, scoped.Relationship.ID) {
				set.Relationships = append(set.Relationships, RemovedRelationship{
					Scope: scoped.Scope,
					ID:    scoped.Relationship.ID,
				})
			}
		}

		// Outgoing edges owned by the part being removed.
		for _, rel := range pkg.RemoveScope(target) {
			set.Relationships = append(set.Relationships, RemovedRelationship{
				Scope: target,
				ID:    rel.ID,
			})
		}

		if err := pkg.RemovePart(target); err == nil {
			set.Parts = append(set.Parts, target)
		}
	}

	GetLogger().DebugRemoval(set)
	return set
}
