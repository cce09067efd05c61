package docpack

import (
	"sort"
	"testing"
)

func TestRemoveSubtree(t *testing.T) {
	pkg := newMacroPackage(t)

	set := RemoveSubtree(pkg, []string{"word/vbaProject.bin", "word/vbaData.xml"})

	if len(set.Parts) != 2 {
		t.Fatalf("expected 2 removed parts, got %v", set.Parts)
	}
	if len(set.Relationships) != 2 {
		t.Fatalf("expected 2 removed relationships, got %v", set.Relationships)
	}
	if set.AuditID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Error("expected a non-zero audit id")
	}

	if pkg.HasPart("word/vbaProject.bin") || pkg.HasPart("word/vbaData.xml") {
		t.Error("payload parts still present")
	}

	// Unrelated structure is untouched.
	if !pkg.HasPart("word/styles.xml") {
		t.Error("styles part should survive")
	}
	rels := pkg.RelationshipsFrom("word/document.xml")
	if len(rels) != 2 {
		t.Fatalf("expected 2 surviving relationships, got %d", len(rels))
	}
	for _, rel := range rels {
		if rel.ID == "rId1" || rel.ID == "rId2" {
			t.Errorf("relationship %s should have been removed", rel.ID)
		}
	}
}

func TestRemoveSubtree_RemovesOutgoingEdges(t *testing.T) {
	pkg := newMacroPackage(t)

	// Give the vbaData part an outgoing edge of its own.
	if err := pkg.AddRelationship("word/vbaData.xml", Relationship{ID: "rId1", Type: "t", Target: "vbaProject.bin"}); err != nil {
		t.Fatalf("AddRelationship failed: %v", err)
	}

	set := RemoveSubtree(pkg, []string{"word/vbaData.xml"})

	if len(pkg.RelationshipsFrom("word/vbaData.xml")) != 0 {
		t.Error("outgoing edges of removed part must go with it")
	}
	found := false
	for _, rel := range set.Relationships {
		if rel.Scope == "word/vbaData.xml" {
			found = true
		}
	}
	if !found {
		t.Error("removed set should record the outgoing edge")
	}
}

func TestRemoveSubtree_Idempotent(t *testing.T) {
	pkg := newMacroPackage(t)

	first := RemoveSubtree(pkg, []string{"word/vbaProject.bin"})
	if first.IsEmpty() {
		t.Fatal("first removal removed nothing")
	}

	// Removing an already-absent part is not an error and removes nothing.
	second := RemoveSubtree(pkg, []string{"word/vbaProject.bin"})
	if !second.IsEmpty() {
		t.Errorf("second removal should be empty, got %+v", second)
	}

	// A missing target among existing ones is skipped silently.
	third := RemoveSubtree(pkg, []string{"word/nope.xml", "word/vbaData.xml"})
	if len(third.Parts) != 1 || third.Parts[0] != "word/vbaData.xml" {
		t.Errorf("expected only vbaData removed, got %v", third.Parts)
	}
}

func TestRemoveSubtree_OrderIndependent(t *testing.T) {
	targets := []string{"word/vbaProject.bin", "word/vbaData.xml", "word/activeX/activeX1.xml"}
	orders := [][]string{
		{targets[0], targets[1], targets[2]},
		{targets[2], targets[1], targets[0]},
		{targets[1], targets[2], targets[0]},
		{targets[2], targets[0], targets[1]},
	}

	snapshot := func(pkg *Package) graphState {
		s := graphState{rels: make(map[string][]string)}
		for _, p := range pkg.Parts() {
			s.parts = append(s.parts, p.Name)
		}
		for _, scope := range pkg.Scopes() {
			for _, rel := range pkg.RelationshipsFrom(scope) {
				s.rels[scope] = append(s.rels[scope], rel.ID)
			}
		}
		return s
	}

	var states []graphState
	for _, order := range orders {
		pkg := newMacroPackage(t)
		RemoveSubtree(pkg, order)
		states = append(states, snapshot(pkg))
	}

	for i := 1; i < len(states); i++ {
		if !equalStates(states[0], states[i]) {
			t.Errorf("order %v produced different graph: %+v vs %+v", orders[i], states[i], states[0])
		}
	}
}

type graphState struct {
	parts []string
	rels  map[string][]string
}

func equalStates(a, b graphState) bool {
	sort.Strings(a.parts)
	sort.Strings(b.parts)
	if len(a.parts) != len(b.parts) {
		return false
	}
	for i := range a.parts {
		if a.parts[i] != b.parts[i] {
			return false
		}
	}
	if len(a.rels) != len(b.rels) {
		return false
	}
	for scope, ids := range a.rels {
		other := b.rels[scope]
		if len(ids) != len(other) {
			return false
		}
		for i := range ids {
			if ids[i] != other[i] {
				return false
			}
		}
	}
	return true
}
