// Package paths provides centralized path handling for ccasp.
// It implements XDG Base Directory specification compliance and derives the
// deterministic per-project slug that keys the compiled cache.
package paths

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	goslug "github.com/gosimple/slug"

	"github.com/ccasp/ccasp/pkg/errors"
)

// Environment variable names
const (
	// EnvDataDir overrides the XDG data directory for ccasp
	EnvDataDir = "CCASP_DATA_DIR"

	// EnvCacheDir overrides the XDG cache directory for ccasp
	EnvCacheDir = "CCASP_CACHE_DIR"

	// EnvTemplatesDir overrides the template source location
	EnvTemplatesDir = "CCASP_TEMPLATES_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
// IMPORTANT: These constants define ccasp's on-disk cache structure and are
// NOT user-configurable. They must remain consistent across installations so
// previously compiled caches stay addressable.
const (
	// CcaspDirName is the directory name for ccasp-specific files
	CcaspDirName = "ccasp"

	// TemplatesDirName is the subdirectory holding the template source tree
	TemplatesDirName = "templates"

	// ProjectsDirName is the cache subdirectory holding per-project caches
	ProjectsDirName = "projects"

	// ManifestFile is the name of the per-project compile manifest
	ManifestFile = "manifest.json"

	// SyncedFile records the file hashes of the last successful sync
	SyncedFile = "synced.json"

	// ProjectConfigFile is the configuration file at each project root
	ProjectConfigFile = ".ccasp.json"

	// ProjectTreeDir is the directory inside a project that receives links
	ProjectTreeDir = ".claude"
)

// Paths provides centralized path management for ccasp
type Paths interface {
	DataDir() string
	CacheDir() string
	TemplatesRoot() string
	ProjectCacheDir(slug string) string
	ManifestPath(slug string) string
	SyncedPath(slug string) string
	ProjectConfigPath(projectPath string) string
	ProjectTreeRoot(projectPath string) string
	NormalizeProjectPath(path string) (string, error)
}

type paths struct {
	xdgData   string
	xdgCache  string
	templates string
}

// New creates a new Paths instance, respecting environment overrides
func New() (Paths, error) {
	p := &paths{}

	if dataDir := os.Getenv(EnvDataDir); dataDir != "" {
		p.xdgData = expandHome(dataDir)
	} else {
		p.xdgData = filepath.Join(xdg.DataHome, CcaspDirName)
	}

	if cacheDir := os.Getenv(EnvCacheDir); cacheDir != "" {
		p.xdgCache = expandHome(cacheDir)
	} else {
		p.xdgCache = filepath.Join(xdg.CacheHome, CcaspDirName)
	}

	if templatesDir := os.Getenv(EnvTemplatesDir); templatesDir != "" {
		p.templates = expandHome(templatesDir)
	} else {
		p.templates = filepath.Join(p.xdgData, TemplatesDirName)
	}

	return p, nil
}

// DataDir returns the XDG data directory for ccasp
func (p *paths) DataDir() string {
	return p.xdgData
}

// CacheDir returns the XDG cache directory for ccasp
func (p *paths) CacheDir() string {
	return p.xdgCache
}

// TemplatesRoot returns the template source tree root
func (p *paths) TemplatesRoot() string {
	return p.templates
}

// ProjectCacheDir returns the compiled cache directory for a project slug
func (p *paths) ProjectCacheDir(slug string) string {
	return filepath.Join(p.xdgCache, ProjectsDirName, slug)
}

// ManifestPath returns the manifest location for a project slug
func (p *paths) ManifestPath(slug string) string {
	return filepath.Join(p.ProjectCacheDir(slug), ManifestFile)
}

// SyncedPath returns the last-synced hash record location for a project slug
func (p *paths) SyncedPath(slug string) string {
	return filepath.Join(p.ProjectCacheDir(slug), SyncedFile)
}

// ProjectConfigPath returns the project's .ccasp.json location
func (p *paths) ProjectConfigPath(projectPath string) string {
	return filepath.Join(projectPath, ProjectConfigFile)
}

// ProjectTreeRoot returns the project's .claude directory
func (p *paths) ProjectTreeRoot(projectPath string) string {
	return filepath.Join(projectPath, ProjectTreeDir)
}

// NormalizeProjectPath expands home, makes the path absolute and cleans it.
// The result is the canonical form that slug derivation operates on.
func (p *paths) NormalizeProjectPath(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "empty project path")
	}

	expanded := expandHome(path)

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path")
	}

	return filepath.Clean(abs), nil
}

// ProjectSlug derives the deterministic, filesystem-safe cache key for a
// canonical absolute project path: the slugified base name plus the first
// 8 hex characters of the path's SHA-256. Readable like a directory name,
// collision-resistant across same-named projects.
func ProjectSlug(absPath string) string {
	cleaned := filepath.Clean(absPath)

	base := goslug.Make(filepath.Base(cleaned))
	if base == "" {
		base = "project"
	}

	sum := sha256.Sum256([]byte(cleaned))
	return base + "-" + hex.EncodeToString(sum[:])[:8]
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something (not the user's home)
	return path
}

// CategoryOf returns the template category a relative path belongs to:
// its first path segment (commands, hooks, skills, docs).
func CategoryOf(relPath string) string {
	rel := filepath.ToSlash(relPath)
	if idx := strings.Index(rel, "/"); idx > 0 {
		return rel[:idx]
	}
	return ""
}
