package view

// Page is a value rendered through a named template.
type Page interface {
	TemplateName() string
}

// Prompt is the static page asking for a name.
type Prompt struct{}

// TemplateName implements Page.
func (Prompt) TemplateName() string { return "prompt.html" }

// Greet greets Name.
type Greet struct {
	Name string
}

// TemplateName implements Page.
func (Greet) TemplateName() string { return "greet.html" }
