package docpack

// StripFragments removes every element of the given kind (a qualified name
// such as "w:control") from a part's markup, leaving all other structure and
// sibling order intact, and rewrites the part's blob. Payload parts referenced
// by relationships are untouched; removing those is RemoveSubtree's job.
//
// Returns the number of fragments removed. Zero means there was nothing to
// strip, which is not an error.
func StripFragments(part *Part, kind string) (int, error) {
	if part == nil || len(part.Blob) == 0 {
		return 0, nil
	}

	tree, err := ParseXMLTree(part.Blob)
	if err != nil {
		return 0, NewPackageError("strip", part.Name, err)
	}

	count := tree.RemoveAll(kind)
	if count == 0 {
		return 0, nil
	}

	part.Blob = tree.Serialize()
	return count, nil
}
