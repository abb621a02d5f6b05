package pipeline

// Priorities of the built-in processors. Lower runs first within a phase.
const (
	PriorityNormalize    = 0
	PriorityCodeImport   = 5
	PriorityDiff         = 20
	PriorityFocus        = 21
	PriorityError        = 22
	PriorityWarning      = 23
	PriorityAnnotation   = 24
	PriorityFenceOptions = 30
	PriorityTabs         = 50
	PriorityCodeGroup    = 51
	PriorityMark         = 60
	PriorityCodeBlocks   = 100
	PriorityIcons        = 200
	PriorityAnchors      = 300
	PriorityTables       = 400
	PriorityLinks        = 500
	PriorityPlaceholders = 900
)

// Builtin returns the registrations of every built-in processor.
// Callers can append their own before passing them to New.
func Builtin() []Registration {
	return []Registration{
		At(PriorityNormalize, NormalizeProcessor{}),
		At(PriorityCodeImport, CodeImportProcessor{}),
		At(PriorityDiff, &MarkerProcessor{Family: FamilyDiff}),
		At(PriorityFocus, &MarkerProcessor{Family: FamilyFocus}),
		At(PriorityError, &MarkerProcessor{Family: FamilyError}),
		At(PriorityWarning, &MarkerProcessor{Family: FamilyWarning}),
		At(PriorityAnnotation, &MarkerProcessor{Family: FamilyAnnotation}),
		At(PriorityFenceOptions, FenceOptionsProcessor{}),
		At(PriorityTabs, TabsProcessor{}),
		At(PriorityCodeGroup, CodeGroupProcessor{}),
		At(PriorityMark, MarkProcessor{}),
		At(PriorityCodeBlocks, CodeBlockProcessor{}),
		At(PriorityIcons, IconProcessor{}),
		At(PriorityAnchors, AnchorProcessor{}),
		At(PriorityTables, TableProcessor{}),
		At(PriorityLinks, LinkProcessor{}),
		At(PriorityPlaceholders, PlaceholderProcessor{}),
	}
}

// Default returns a pipeline with every built-in processor.
func Default() *Pipeline {
	return New(Builtin()...)
}
