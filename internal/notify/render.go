package notify

import (
	"fmt"
	"strings"
	"text/template"
)

// Context is what a channel template gets to interpolate. Description is
// already flattened to plain text and capped.
type Context struct {
	Title       string
	Description string
	Link        string
}

// RenderError wraps a template parse or execute failure for one
// (episode, channel) pair.
type RenderError struct {
	Channel string
	Err     error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render template for %s: %v", e.Channel, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// Render executes a channel's message template. Templates come from the
// config store and may use {{.Title}}, {{.Description}}, {{.Link}} and the
// truncate function, e.g. {{truncate 200 .Description}}.
func Render(channel, templateText string, ctx Context) (string, error) {
	tmpl, err := template.New(channel).
		Funcs(template.FuncMap{"truncate": truncate}).
		Parse(templateText)
	if err != nil {
		return "", &RenderError{Channel: channel, Err: err}
	}
	var out strings.Builder
	if err := tmpl.Execute(&out, ctx); err != nil {
		return "", &RenderError{Channel: channel, Err: err}
	}
	return out.String(), nil
}

// truncate caps a string at length runes, not bytes, so multibyte titles
// survive intact.
func truncate(length int, value string) string {
	if length <= 0 {
		return ""
	}
	runes := []rune(value)
	if len(runes) <= length {
		return value
	}
	return string(runes[:length])
}
