package docpack

// Content types and relationship types used by WordprocessingML packages
const (
	ContentTypeWMLDocumentMain             = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"
	ContentTypeWMLDocumentMacroEnabledMain = "application/vnd.ms-word.document.macroEnabled.main+xml"

	ContentTypeVBAProject = "application/vnd.ms-word.vbaProject"
	ContentTypeVBAData    = "application/vnd.ms-word.vbaData+xml"
	ContentTypeActiveX    = "application/vnd.ms-office.activeX"
	ContentTypeActiveXXML = "application/vnd.ms-office.activeX+xml"

	RelTypeOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	RelTypeVBAProject     = "http://schemas.microsoft.com/office/2006/relationships/vbaProject"
	RelTypeWordVBAData    = "http://schemas.microsoft.com/office/2006/relationships/wordVbaData"
	RelTypeControl        = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/control"
)

// Variant classifies a document as plain or payload-carrying
type Variant int

const (
	VariantUnknown Variant = iota
	// VariantPlain is the variant without an embedded macro payload (.docx)
	VariantPlain
	// VariantMacroEnabled is the variant carrying a macro payload (.docm)
	VariantMacroEnabled
)

func (v Variant) String() string {
	switch v {
	case VariantPlain:
		return "plain"
	case VariantMacroEnabled:
		return "macro-enabled"
	default:
		return "unknown"
	}
}

// VariantPair describes the two content-type variants of a document kind and
// the payload vocabulary that distinguishes them: the relationship roles,
// content types, and well-known part names that exist only in the
// macro-enabled variant, plus the embedded markup fragment kind that
// references the payload from the main part.
type VariantPair struct {
	PlainContentType   string
	PlainExtension     string
	EnabledContentType string
	EnabledExtension   string

	PayloadRelTypes     []string
	PayloadContentTypes []string
	PayloadPartNames    []string
	FragmentKind        string
}

// WordprocessingML is the docm/docx variant pair
var WordprocessingML = VariantPair{
	PlainContentType:   ContentTypeWMLDocumentMain,
	PlainExtension:     "docx",
	EnabledContentType: ContentTypeWMLDocumentMacroEnabledMain,
	EnabledExtension:   "docm",

	PayloadRelTypes: []string{
		RelTypeVBAProject,
		RelTypeWordVBAData,
		RelTypeControl,
	},
	PayloadContentTypes: []string{
		ContentTypeVBAProject,
		ContentTypeVBAData,
		ContentTypeActiveX,
		ContentTypeActiveXXML,
	},
	PayloadPartNames: []string{
		"word/vbaProject.bin",
		"word/vbaData.xml",
	},
	FragmentKind: "w:control",
}

// VariantOf maps a main-part content type to its variant within the pair
func (vp VariantPair) VariantOf(contentType string) Variant {
	switch contentType {
	case vp.PlainContentType:
		return VariantPlain
	case vp.EnabledContentType:
		return VariantMacroEnabled
	default:
		return VariantUnknown
	}
}

// ContentTypeOf returns the main-part content type for a variant
func (vp VariantPair) ContentTypeOf(v Variant) string {
	if v == VariantMacroEnabled {
		return vp.EnabledContentType
	}
	return vp.PlainContentType
}

// ExtensionOf returns the expected file extension for a variant, without dot
func (vp VariantPair) ExtensionOf(v Variant) string {
	if v == VariantMacroEnabled {
		return vp.EnabledExtension
	}
	return vp.PlainExtension
}

func (vp VariantPair) isPayloadRelType(relType string) bool {
	for _, t := range vp.PayloadRelTypes {
		if t == relType {
			return true
		}
	}
	return false
}

func (vp VariantPair) isPayloadContentType(contentType string) bool {
	for _, t := range vp.PayloadContentTypes {
		if t == contentType {
			return true
		}
	}
	return false
}

func (vp VariantPair) isPayloadPartName(name string) bool {
	for _, n := range vp.PayloadPartNames {
		if n == name {
			return true
		}
	}
	return false
}
