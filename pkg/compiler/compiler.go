// Package compiler renders the template source tree against a project's
// variables into a per-project, version-stamped cache, and writes the
// manifest the planner diffs against.
package compiler

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ccasp/ccasp/pkg/errors"
	"github.com/ccasp/ccasp/pkg/hashutil"
	"github.com/ccasp/ccasp/pkg/logging"
	"github.com/ccasp/ccasp/pkg/manifest"
	"github.com/ccasp/ccasp/pkg/paths"
	"github.com/ccasp/ccasp/pkg/project"
	"github.com/ccasp/ccasp/pkg/types"
	"github.com/ccasp/ccasp/pkg/walk"
)

// Options controls a compilation run
type Options struct {
	// Force recompiles even when the cached manifest is already current
	Force bool
}

// Compiler renders templates into the project cache
type Compiler struct {
	fs       types.FS
	paths    paths.Paths
	store    *manifest.Store
	renderer Renderer
	version  string
}

// New creates a compiler stamping manifests with the given tool version
func New(fsys types.FS, p paths.Paths, store *manifest.Store, version string) *Compiler {
	return &Compiler{
		fs:       fsys,
		paths:    p,
		store:    store,
		renderer: NewRenderer(),
		version:  version,
	}
}

// Compile renders every template for the project and atomically replaces its
// manifest. When a manifest already exists for the running tool version and
// force is off, the run is a cheap no-op returning skipped=true.
func (c *Compiler) Compile(projectPath string, opts Options) (*types.CompileResult, error) {
	logger := logging.GetLogger("compiler")
	done := logging.LogOperationStart(logger, "compile")
	defer done()

	absPath, err := c.paths.NormalizeProjectPath(projectPath)
	if err != nil {
		return nil, err
	}
	slug := paths.ProjectSlug(absPath)

	cfg, err := project.Load(c.fs, absPath)
	if err != nil {
		return nil, err
	}

	if !opts.Force {
		existing, err := c.store.LoadManifest(slug)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ToolVersion == c.version {
			logger.Debug().Str("slug", slug).Msg("Cache up to date, skipping compile")
			return &types.CompileResult{
				Success:    true,
				Skipped:    true,
				Reason:     "up-to-date",
				FileCount:  existing.TotalFiles(),
				Categories: existing.Categories,
				Manifest:   existing,
			}, nil
		}
	}

	templatesRoot := c.paths.TemplatesRoot()
	if _, err := c.fs.Stat(templatesRoot); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrTemplateSource, "template source not found at %s", templatesRoot)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read template source at %s", templatesRoot)
	}

	relPaths, err := walk.Files(c.fs, templatesRoot)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrTemplateSource, "failed to walk template source")
	}

	vars := cfg.Variables.Flatten()
	cacheDir := c.paths.ProjectCacheDir(slug)

	m := &types.Manifest{
		ToolVersion: c.version,
		CompiledAt:  time.Now().UTC(),
		Files:       make(map[string]string, len(relPaths)),
		Categories:  make(map[string]types.CategoryCount),
	}
	var warnings []types.CompileWarning

	for _, rel := range relPaths {
		hash, warns, err := c.renderOne(templatesRoot, cacheDir, rel, vars)
		if err != nil {
			return nil, err
		}
		m.Files[rel] = hash
		warnings = append(warnings, warns...)

		if cat := paths.CategoryOf(rel); cat != "" {
			count := m.Categories[cat]
			count.Compiled++
			m.Categories[cat] = count
		}
	}

	if err := c.store.SaveManifest(slug, m); err != nil {
		return nil, err
	}

	logger.Info().
		Str("slug", slug).
		Int("files", len(m.Files)).
		Int("warnings", len(warnings)).
		Msg("Templates compiled")

	return &types.CompileResult{
		Success:    true,
		FileCount:  len(m.Files),
		Categories: m.Categories,
		Warnings:   warnings,
		Manifest:   m,
	}, nil
}

// RecompileFile re-renders a single template into the cache and updates the
// manifest entry. Used by repair when a cache file went missing. Returns
// ORPHANED_LINK when the backing template no longer exists upstream.
func (c *Compiler) RecompileFile(projectPath, relPath string) (string, error) {
	absPath, err := c.paths.NormalizeProjectPath(projectPath)
	if err != nil {
		return "", err
	}
	slug := paths.ProjectSlug(absPath)

	templatePath := filepath.Join(c.paths.TemplatesRoot(), relPath)
	if _, err := c.fs.Stat(templatePath); err != nil {
		if os.IsNotExist(err) {
			return "", errors.Newf(errors.ErrOrphanedLink,
				"backing template %s no longer exists upstream", relPath)
		}
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to read template %s", relPath)
	}

	cfg, err := project.Load(c.fs, absPath)
	if err != nil {
		return "", err
	}

	hash, _, err := c.renderOne(c.paths.TemplatesRoot(), c.paths.ProjectCacheDir(slug), relPath, cfg.Variables.Flatten())
	if err != nil {
		return "", err
	}

	m, err := c.store.LoadManifest(slug)
	if err != nil {
		return "", err
	}
	if m == nil {
		m = &types.Manifest{
			ToolVersion: c.version,
			CompiledAt:  time.Now().UTC(),
			Files:       map[string]string{},
			Categories:  map[string]types.CategoryCount{},
		}
	}
	m.Files[relPath] = hash
	if err := c.store.SaveManifest(slug, m); err != nil {
		return "", err
	}

	return hash, nil
}

// renderOne renders a single template file into the cache directory and
// returns its content hash.
func (c *Compiler) renderOne(templatesRoot, cacheDir, relPath string, vars map[string]string) (string, []types.CompileWarning, error) {
	raw, err := c.fs.ReadFile(filepath.Join(templatesRoot, relPath))
	if err != nil {
		return "", nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read template %s", relPath)
	}

	meta, body, err := parseFrontMatter(raw)
	if err != nil {
		return "", nil, errors.Wrapf(err, errors.ErrTemplateRender, "template %s", relPath)
	}

	rendered, missing := c.renderer.Render(string(body), vars)

	var warnings []types.CompileWarning
	if meta != nil {
		for _, required := range meta.Requires {
			if _, ok := vars[required]; !ok {
				warnings = append(warnings, types.CompileWarning{
					RelPath: relPath,
					Message: fmt.Sprintf("required variable %q is not set", required),
				})
			}
		}
	}
	for _, name := range missing {
		warnings = append(warnings, types.CompileWarning{
			RelPath: relPath,
			Message: fmt.Sprintf("placeholder %q left unresolved", name),
		})
	}

	outPath := filepath.Join(cacheDir, relPath)
	if err := c.fs.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return "", nil, errors.Wrapf(err, errors.ErrDirCreate, "failed to create cache directory for %s", relPath)
	}
	if err := c.fs.WriteFile(outPath, []byte(rendered), 0644); err != nil {
		return "", nil, errors.Wrapf(err, errors.ErrCacheWrite, "failed to write cache file %s", relPath)
	}

	return hashutil.Checksum([]byte(rendered)), warnings, nil
}
