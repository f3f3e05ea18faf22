package compiler

import (
	"regexp"
	"sort"
)

// Renderer substitutes project variables into template placeholders.
// The substitution syntax is deliberately pluggable; the engine only cares
// about the rendered text and which placeholders went unresolved.
type Renderer interface {
	Render(text string, vars map[string]string) (rendered string, missing []string)
}

var placeholderRe = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_.-]+)\s*\}\}`)

type placeholderRenderer struct{}

// NewRenderer returns the default {{NAME}} placeholder renderer.
// Unresolved placeholders are left in place so the output never silently
// loses information.
func NewRenderer() Renderer {
	return placeholderRenderer{}
}

func (placeholderRenderer) Render(text string, vars map[string]string) (string, []string) {
	seen := make(map[string]bool)

	rendered := placeholderRe.ReplaceAllStringFunc(text, func(match string) string {
		name := placeholderRe.FindStringSubmatch(match)[1]
		if value, ok := vars[name]; ok {
			return value
		}
		seen[name] = true
		return match
	})

	missing := make([]string, 0, len(seen))
	for name := range seen {
		missing = append(missing, name)
	}
	sort.Strings(missing)
	return rendered, missing
}
