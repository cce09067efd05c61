// Package docpack models OPC compound document packages (such as .docx and
// .docm files) as a graph of typed parts connected by relationships, and
// keeps that graph structurally consistent while parts are added, removed,
// or reclassified.
//
// Its main job is variant reclassification: converting a macro-enabled
// document (.docm) to a plain one (.docx) by removing the macro payload
// subtree — the VBA binary, auxiliary data, and ActiveX parts, every
// relationship referencing them, and the embedded control fragments in the
// document markup — while guaranteeing that no dangling relationship
// survives the transformation.
//
// # Quick Start
//
//	doc, err := docpack.OpenFile("report.docm")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Strip macros; the extension is corrected to match the content type.
//	finalName, err := doc.Save("report.docm", docpack.Bool(false))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(finalName) // report.docx
//
// With a nil preserve flag the intent is inferred from the destination
// extension: saving to a .docm name preserves macros, saving to a .docx name
// strips them, and anything else keeps the document's current variant.
//
// # Consistency
//
// Every transformation is all-or-nothing. The reclassifier works on a copy
// of the graph, verifies the package invariants (no dangling relationship
// targets, every part's content type resolvable in the registry), and only
// then replaces the document's graph and writes the container. A failed
// transformation leaves the original untouched.
package docpack
