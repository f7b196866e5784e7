package io

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/slok/cirun/internal/conventions"
	"github.com/slok/cirun/internal/model"
	"github.com/slok/cirun/internal/storage"
)

var _ storage.PipelineRepository = (*PipelineFileRepository)(nil)

// PipelineFileRepository loads pipeline definitions from YAML or TOML files.
// The format is selected by the file extension.
type PipelineFileRepository struct {
	fs fs.FS
}

// NewPipelineFileRepository creates a new pipeline file repository.
func NewPipelineFileRepository(filesystem fs.FS) *PipelineFileRepository {
	return &PipelineFileRepository{fs: filesystem}
}

// GetPipeline loads a pipeline from a file and returns a validated domain model.
func (r *PipelineFileRepository) GetPipeline(ctx context.Context, path string) (model.Pipeline, error) {
	data, err := fs.ReadFile(r.fs, path)
	if errors.Is(err, fs.ErrNotExist) {
		return model.Pipeline{}, fmt.Errorf("pipeline file %q: %w", path, model.ErrNotFound)
	}
	if err != nil {
		return model.Pipeline{}, fmt.Errorf("reading pipeline file: %w", err)
	}

	if ctx.Err() != nil {
		return model.Pipeline{}, ctx.Err()
	}

	var cfg PipelineConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return model.Pipeline{}, fmt.Errorf("parsing YAML: %w", err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return model.Pipeline{}, fmt.Errorf("parsing TOML: %w", err)
		}
	default:
		return model.Pipeline{}, fmt.Errorf("unsupported pipeline file extension %q: %w", ext, model.ErrNotValid)
	}

	if err := cfg.validate(); err != nil {
		return model.Pipeline{}, fmt.Errorf("invalid pipeline: %w: %w", err, model.ErrNotValid)
	}

	return cfg.toModel(), nil
}

// PipelineConfig represents the file structure for a pipeline.
type PipelineConfig struct {
	Fix   *PhaseConfig `yaml:"fix" toml:"fix"`
	Check *PhaseConfig `yaml:"check" toml:"check"`
}

// PhaseConfig represents the file structure for a pipeline phase.
type PhaseConfig struct {
	Name  *string      `yaml:"name" toml:"name"`
	Tasks []TaskConfig `yaml:"tasks" toml:"tasks"`
}

// TaskConfig represents the file structure for a task.
type TaskConfig struct {
	Name    string            `yaml:"name" toml:"name"`
	Command []string          `yaml:"command" toml:"command"`
	Env     map[string]string `yaml:"env" toml:"env"`
}

func (c PipelineConfig) validate() error {
	if c.Fix == nil && c.Check == nil {
		return fmt.Errorf("at least one of fix or check phases is required")
	}

	if c.Fix != nil {
		if err := c.Fix.validate(); err != nil {
			return fmt.Errorf("fix: %w", err)
		}
	}
	if c.Check != nil {
		if err := c.Check.validate(); err != nil {
			return fmt.Errorf("check: %w", err)
		}
	}

	return nil
}

func (c PhaseConfig) validate() error {
	names := map[string]bool{}
	for i, t := range c.Tasks {
		if t.Name == "" {
			return fmt.Errorf("task %d: name is required", i)
		}
		if names[t.Name] {
			return fmt.Errorf("task %q: duplicated name", t.Name)
		}
		names[t.Name] = true

		if len(t.Command) == 0 || t.Command[0] == "" {
			return fmt.Errorf("task %q: command is required", t.Name)
		}
	}

	return nil
}

func (c PipelineConfig) toModel() model.Pipeline {
	return model.Pipeline{
		Fix:   c.Fix.toModel(conventions.FixPhaseName),
		Check: c.Check.toModel(conventions.CheckPhaseName),
	}
}

// toModel converts the phase, a missing phase is an empty one.
// A missing name uses the default one, an explicit empty name is kept.
func (c *PhaseConfig) toModel(defaultName string) model.Phase {
	if c == nil {
		return model.Phase{Name: defaultName}
	}

	p := model.Phase{Name: defaultName}
	if c.Name != nil {
		p.Name = *c.Name
	}

	for _, t := range c.Tasks {
		p.Tasks = append(p.Tasks, model.Task{
			Name:    t.Name,
			Command: t.Command,
			Env:     t.Env,
		})
	}

	return p
}
