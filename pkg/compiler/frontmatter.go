package compiler

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"github.com/ccasp/ccasp/pkg/errors"
)

// Meta is the optional YAML front matter a template file may open with
type Meta struct {
	Description string   `yaml:"description"`
	Requires    []string `yaml:"requires"`
	Strip       bool     `yaml:"strip"`
}

var (
	fmOpen  = []byte("---\n")
	fmClose = []byte("\n---\n")
)

// parseFrontMatter extracts the YAML header from template content.
// Returns (nil, content, nil) when no front matter is present. When the
// header sets strip, the returned body excludes the header; otherwise the
// full content is kept so the header survives into the rendered file.
func parseFrontMatter(content []byte) (*Meta, []byte, error) {
	if !bytes.HasPrefix(content, fmOpen) {
		return nil, content, nil
	}

	end := bytes.Index(content[len(fmOpen):], fmClose)
	if end < 0 {
		return nil, content, errors.New(errors.ErrTemplateRender, "unterminated front matter block")
	}

	header := content[len(fmOpen) : len(fmOpen)+end]
	var meta Meta
	if err := yaml.Unmarshal(header, &meta); err != nil {
		return nil, content, errors.Wrap(err, errors.ErrTemplateRender, "invalid front matter")
	}

	body := content
	if meta.Strip {
		body = content[len(fmOpen)+end+len(fmClose):]
	}
	return &meta, body, nil
}
