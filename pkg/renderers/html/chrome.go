package html

// ChromeClass is a typed identifier for the semantic CSS classes the renderer
// emits. Stylesheets target these instead of structural selectors.
type ChromeClass string

const (
	ClassForm         ChromeClass = "formflow-form"
	ClassHeader       ChromeClass = "formflow-header"
	ClassField        ChromeClass = "formflow-field"
	ClassControl      ChromeClass = "formflow-control"
	ClassError        ChromeClass = "formflow-error"
	ClassHelp         ChromeClass = "formflow-help"
	ClassActions      ChromeClass = "formflow-actions"
	ClassEstimate     ChromeClass = "formflow-estimate"
	ClassConfirmation ChromeClass = "formflow-confirmation"
	ClassSummary      ChromeClass = "formflow-summary"
)
