package exc

const (
	CodeUnknownFatal          = "A0000"
	CodeFileNotFound          = "A0001"
	CodePermissionDenied      = "A0002"
	CodeUnsupportedFileFormat = "A0003"
)

// Parse failures. Every one of them is fatal for the document being parsed.
const (
	CodeLexical       = "A0101" // a token could not be decoded
	CodeGrammar       = "A0102" // no alternative matched
	CodeCountMismatch = "A0103" // a declared element count was not honored
	CodeStructural    = "A0104" // a section sentinel appeared out of order
)

const (
	CodeEOF = "_EOF_"
)

var (
	defaultNonFatal = map[string]bool{}
)
