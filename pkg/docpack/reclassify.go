package docpack

// VariantDecision is the resolved intent of one save call: the variant the
// package should end up as, whether the payload subtree gets stripped, and
// the destination name after extension reconciliation. It is computed once
// per save and never persisted.
type VariantDecision struct {
	TargetVariant     Variant
	TargetContentType string
	StripPayload      bool
	FinalName         string
	NameWasCorrected  bool
}

// Reclassifier transforms a package between the two content-type variants of
// its pair: it decides direction, mutates the main part's content type,
// removes the payload subtree and embedded fragments when stripping, and
// reconciles the destination name with the resulting content type.
type Reclassifier struct {
	pair   VariantPair
	logger *Logger
}

// NewReclassifier creates a reclassifier for a variant pair
func NewReclassifier(pair VariantPair) *Reclassifier {
	return &Reclassifier{
		pair:   pair,
		logger: GetLogger(),
	}
}

// Decide resolves the save intent. Precedence: the explicit flag wins, then
// the requested name's extension, then the package's current variant.
//
// Naming reconciliation reflects the post-transformation content type, not
// the caller's intent: a strip request naming the target with the
// macro-enabled extension still yields the plain extension. The name is only
// corrected on the strip transition; every other row leaves it as requested.
func (r *Reclassifier) Decide(current Variant, requestedName string, explicitPreserve *bool) VariantDecision {
	preserve := r.shouldPreserve(current, requestedName, explicitPreserve)

	decision := VariantDecision{
		FinalName: requestedName,
	}

	switch {
	case current == VariantMacroEnabled && !preserve:
		decision.TargetVariant = VariantPlain
		decision.StripPayload = true
		decision.FinalName, decision.NameWasCorrected = r.pair.CorrectedName(requestedName, VariantPlain)
	case preserve:
		decision.TargetVariant = VariantMacroEnabled
	default:
		decision.TargetVariant = VariantPlain
	}

	decision.TargetContentType = r.pair.ContentTypeOf(decision.TargetVariant)
	return decision
}

func (r *Reclassifier) shouldPreserve(current Variant, requestedName string, explicitPreserve *bool) bool {
	if explicitPreserve != nil {
		return *explicitPreserve
	}

	switch ext := nameExtension(requestedName); ext {
	case r.pair.EnabledExtension:
		return true
	case r.pair.PlainExtension:
		return false
	}

	return current == VariantMacroEnabled
}

// Apply executes a decision against the package. The returned package is a
// transformed copy; the input package is never mutated, so a failed
// transformation leaves the caller's graph byte-for-byte unaffected. The
// removed set is nil when no payload removal took place.
//
// If the transformation leaves the graph violating its invariants, Apply
// returns an InconsistentPackageError and no package.
func (r *Reclassifier) Apply(pkg *Package, mainPart string, decision VariantDecision) (*Package, *RemovedSet, error) {
	result := pkg.Clone()

	main, err := result.Part(mainPart)
	if err != nil {
		return nil, nil, err
	}

	main.ContentType = decision.TargetContentType
	result.Registry().SetOverride(main.Name, decision.TargetContentType)

	var removed *RemovedSet
	if decision.StripPayload {
		removed, err = r.stripPayload(result, main)
		if err != nil {
			return nil, nil, err
		}
	}

	if violations := result.CheckInvariants(); len(violations) > 0 {
		return nil, nil, NewInconsistentPackageError(violations)
	}

	if removed != nil && !removed.IsEmpty() {
		r.logger.Info("reclassified %s to %s: removed %d parts, %d relationships",
			main.Name, decision.TargetVariant, len(removed.Parts), len(removed.Relationships))
	}

	return result, removed, nil
}

// stripPayload removes the macro payload subtree: every part identified by
// payload content type, well-known name, or as the internal target of a
// payload-role relationship, then every remaining payload-role edge, then
// the embedded fragments in the main part's markup. A strip failure is an
// error; Apply operates on a clone, so the caller's graph is unaffected.
func (r *Reclassifier) stripPayload(pkg *Package, main *Part) (*RemovedSet, error) {
	targets := r.payloadParts(pkg)
	set := RemoveSubtree(pkg, targets)

	// Payload-role edges not caught by the subtree removal, e.g. external
	// control references.
	for _, scope := range pkg.Scopes() {
		for _, rel := range pkg.RelationshipsFrom(scope) {
			if r.pair.isPayloadRelType(rel.Type) && pkg.RemoveRelationship(scope, rel.ID) {
				set.Relationships = append(set.Relationships, RemovedRelationship{Scope: scope, ID: rel.ID})
			}
		}
	}

	count, err := StripFragments(main, r.pair.FragmentKind)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		r.logger.Debug("stripped %d %s fragments from %s", count, r.pair.FragmentKind, main.Name)
	}

	return set, nil
}

// payloadParts collects every part that belongs to the payload subtree
func (r *Reclassifier) payloadParts(pkg *Package) []string {
	seen := make(map[string]bool)
	var targets []string
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			targets = append(targets, name)
		}
	}

	for _, part := range pkg.Parts() {
		if r.pair.isPayloadContentType(part.ContentType) || r.pair.isPayloadPartName(part.Name) {
			add(part.Name)
		}
	}

	for _, scope := range pkg.Scopes() {
		for _, rel := range pkg.RelationshipsFrom(scope) {
			if rel.IsExternal() || !r.pair.isPayloadRelType(rel.Type) {
				continue
			}
			if target := pkg.ResolveTarget(scope, rel); pkg.HasPart(target) {
				add(target)
			}
		}
	}

	return targets
}

func nameExtension(name string) string {
	for i := len(name) - 1; i >= 0; i-- {
		switch name[i] {
		case '.':
			return lowerASCII(name[i+1:])
		case '/', '\\':
			return ""
		}
	}
	return ""
}

func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
