package project

import (
	"encoding/json"
	"strings"
	"unicode"
)

// Variables is the per-project configuration fed into template rendering.
// Known fields are typed; anything else the user put under "variables" lands
// in Extra and is passed through to the renderer untouched.
type Variables struct {
	ProjectName    string
	Description    string
	Language       string
	Framework      string
	PackageManager string
	TestCommand    string
	BuildCommand   string
	LintCommand    string
	Extra          map[string]string
}

// knownKeys maps JSON keys to their canonical placeholder names
var knownKeys = map[string]string{
	"projectName":    "PROJECT_NAME",
	"description":    "DESCRIPTION",
	"language":       "LANGUAGE",
	"framework":      "FRAMEWORK",
	"packageManager": "PACKAGE_MANAGER",
	"testCommand":    "TEST_COMMAND",
	"buildCommand":   "BUILD_COMMAND",
	"lintCommand":    "LINT_COMMAND",
}

// UnmarshalJSON captures known fields into struct members and everything
// else into Extra.
func (v *Variables) UnmarshalJSON(data []byte) error {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	fields := map[string]*string{
		"projectName":    &v.ProjectName,
		"description":    &v.Description,
		"language":       &v.Language,
		"framework":      &v.Framework,
		"packageManager": &v.PackageManager,
		"testCommand":    &v.TestCommand,
		"buildCommand":   &v.BuildCommand,
		"lintCommand":    &v.LintCommand,
	}

	for key, value := range raw {
		if dst, ok := fields[key]; ok {
			*dst = value
			continue
		}
		if v.Extra == nil {
			v.Extra = make(map[string]string)
		}
		v.Extra[key] = value
	}
	return nil
}

// MarshalJSON writes known fields under their JSON keys (omitting empties)
// followed by the Extra entries.
func (v Variables) MarshalJSON() ([]byte, error) {
	raw := make(map[string]string, len(knownKeys)+len(v.Extra))

	fields := map[string]string{
		"projectName":    v.ProjectName,
		"description":    v.Description,
		"language":       v.Language,
		"framework":      v.Framework,
		"packageManager": v.PackageManager,
		"testCommand":    v.TestCommand,
		"buildCommand":   v.BuildCommand,
		"lintCommand":    v.LintCommand,
	}
	for key, value := range fields {
		if value != "" {
			raw[key] = value
		}
	}
	for key, value := range v.Extra {
		raw[key] = value
	}
	return json.Marshal(raw)
}

// IsEmpty reports whether no variables have been configured at all
func (v Variables) IsEmpty() bool {
	return v.ProjectName == "" && v.Description == "" && v.Language == "" &&
		v.Framework == "" && v.PackageManager == "" && v.TestCommand == "" &&
		v.BuildCommand == "" && v.LintCommand == "" && len(v.Extra) == 0
}

// Flatten produces the substitution map handed to the renderer. Known fields
// appear under their canonical UPPER_SNAKE placeholder names; Extra entries
// appear under both their raw key and its UPPER_SNAKE form.
func (v Variables) Flatten() map[string]string {
	out := make(map[string]string)

	set := func(key, value string) {
		if value != "" {
			out[key] = value
		}
	}

	set("PROJECT_NAME", v.ProjectName)
	set("DESCRIPTION", v.Description)
	set("LANGUAGE", v.Language)
	set("FRAMEWORK", v.Framework)
	set("PACKAGE_MANAGER", v.PackageManager)
	set("TEST_COMMAND", v.TestCommand)
	set("BUILD_COMMAND", v.BuildCommand)
	set("LINT_COMMAND", v.LintCommand)

	for key, value := range v.Extra {
		set(key, value)
		set(upperSnake(key), value)
	}
	return out
}

// upperSnake converts camelCase or kebab-case keys to UPPER_SNAKE
func upperSnake(key string) string {
	var b strings.Builder
	for i, r := range key {
		switch {
		case r == '-' || r == ' ' || r == '.':
			b.WriteRune('_')
		case unicode.IsUpper(r) && i > 0:
			b.WriteRune('_')
			b.WriteRune(r)
		default:
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return strings.ToUpper(b.String())
}
