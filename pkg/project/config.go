// Package project reads and writes the per-project .ccasp.json file: the
// rendering variables and the sync record, validated against an embedded
// JSON Schema at the compiler boundary. Keys the tool does not own are
// preserved verbatim across saves.
package project

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/ccasp/ccasp/pkg/errors"
	"github.com/ccasp/ccasp/pkg/paths"
	"github.com/ccasp/ccasp/pkg/types"
)

//go:embed schema/ccasp.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
)

// Config is the parsed project configuration
type Config struct {
	Variables Variables
	Sync      types.SyncState

	// other holds top-level keys this tool does not own, preserved on save
	other map[string]json.RawMessage
}

func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("ccasp.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("ccasp.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// Load reads and validates a project's .ccasp.json.
// A missing file yields CONFIG_MISSING: the user must run setup first.
func Load(fsys types.FS, projectPath string) (*Config, error) {
	configPath := filepath.Join(projectPath, paths.ProjectConfigFile)

	data, err := fsys.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrConfigMissing,
				"no %s found in %s, run setup first", paths.ProjectConfigFile, projectPath)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", configPath)
	}

	if err := validate(data); err != nil {
		return nil, err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", configPath)
	}

	cfg := &Config{
		Sync:  types.DefaultSyncState(),
		other: make(map[string]json.RawMessage),
	}

	for key, value := range raw {
		switch key {
		case "variables":
			if err := json.Unmarshal(value, &cfg.Variables); err != nil {
				return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse variables")
			}
		case "sync":
			if err := json.Unmarshal(value, &cfg.Sync); err != nil {
				return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse sync state")
			}
		default:
			cfg.other[key] = value
		}
	}

	return cfg, nil
}

// Save writes the configuration back, preserving foreign keys, via
// write-temp-then-rename in the project directory.
func Save(fsys types.FS, projectPath string, cfg *Config) error {
	raw := make(map[string]json.RawMessage, len(cfg.other)+2)
	for key, value := range cfg.other {
		raw[key] = value
	}

	varsJSON, err := json.Marshal(cfg.Variables)
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode variables")
	}
	raw["variables"] = varsJSON

	syncJSON, err := json.Marshal(cfg.Sync)
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode sync state")
	}
	raw["sync"] = syncJSON

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode configuration")
	}

	configPath := filepath.Join(projectPath, paths.ProjectConfigFile)
	tmp := fmt.Sprintf("%s.tmp.%d", configPath, time.Now().UnixNano())
	if err := fsys.WriteFile(tmp, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", tmp)
	}
	if err := fsys.Rename(tmp, configPath); err != nil {
		_ = fsys.Remove(tmp)
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to replace %s", configPath)
	}
	return nil
}

// validate checks the raw document against the embedded schema
func validate(data []byte) error {
	schema, err := getSchema()
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to load configuration schema")
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return errors.Wrap(err, errors.ErrConfigParse, "configuration is not valid JSON")
	}

	if err := schema.Validate(inst); err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "configuration does not match schema")
	}
	return nil
}
