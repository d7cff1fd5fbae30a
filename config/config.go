// Package config loads the YAML settings shared by the command line tools:
// navigation hotkey switches, record and playback defaults, logging, and
// extra key bindings.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/keyway/key"
	"github.com/lixenwraith/keyway/record"
)

// Globals mirrors input.Globals
type Globals struct {
	LayoutDialogKey bool
	LayoutResizeKey bool
}

type Record struct {
	Mode record.Mode
	File string
}

type Playback struct {
	File string
}

type Terminal struct {
	Mouse bool
}

type Logging struct {
	Verbose bool
	File    string
}

// Config is the resolved configuration
type Config struct {
	Globals  Globals
	Record   Record
	Playback Playback
	Terminal Terminal
	Logging  Logging
	Bindings map[key.Code]Action
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Globals:  Globals{LayoutDialogKey: true, LayoutResizeKey: true},
		Record:   Record{Mode: record.ModeText, File: "keyway.rec"},
		Terminal: Terminal{Mouse: true},
		Bindings: map[key.Code]Action{
			key.Ctrl(key.Q): ActionQuit,
		},
	}
}

// raw is the on-disk layout; pointers tell absent fields from zero values
type raw struct {
	Globals *struct {
		LayoutDialogKey *bool `yaml:"layout_dialog_key"`
		LayoutResizeKey *bool `yaml:"layout_resize_key"`
	} `yaml:"globals"`
	Record *struct {
		Mode *string `yaml:"mode"`
		File *string `yaml:"file"`
	} `yaml:"record"`
	Playback *struct {
		File *string `yaml:"file"`
	} `yaml:"playback"`
	Terminal *struct {
		Mouse *bool `yaml:"mouse"`
	} `yaml:"terminal"`
	Logging *struct {
		Verbose *bool   `yaml:"verbose"`
		File    *string `yaml:"file"`
	} `yaml:"logging"`
	Bindings map[string]string `yaml:"bindings"`
}

// Load overlays YAML data on the defaults. Key names in bindings use the
// canonical K_ names; binding a key to "none" removes a default binding.
func Load(data []byte) (*Config, error) {
	var r raw
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("config parse: %w", err)
	}

	cfg := Default()
	if g := r.Globals; g != nil {
		setBool(&cfg.Globals.LayoutDialogKey, g.LayoutDialogKey)
		setBool(&cfg.Globals.LayoutResizeKey, g.LayoutResizeKey)
	}
	if rec := r.Record; rec != nil {
		if rec.Mode != nil {
			m, err := record.ParseMode(strings.ToUpper(*rec.Mode))
			if err != nil {
				return nil, fmt.Errorf("[record] mode: %w", err)
			}
			cfg.Record.Mode = m
		}
		setString(&cfg.Record.File, rec.File)
	}
	if p := r.Playback; p != nil {
		setString(&cfg.Playback.File, p.File)
	}
	if t := r.Terminal; t != nil {
		setBool(&cfg.Terminal.Mouse, t.Mouse)
	}
	if l := r.Logging; l != nil {
		setBool(&cfg.Logging.Verbose, l.Verbose)
		setString(&cfg.Logging.File, l.File)
	}

	bindings, err := parseBindings(r.Bindings)
	if err != nil {
		return nil, err
	}
	mergeBindings(cfg.Bindings, bindings)
	return cfg, nil
}

// LoadFile reads and loads path
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config read: %w", err)
	}
	return Load(data)
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// parseBindings resolves key name → action name pairs
func parseBindings(data map[string]string) (map[key.Code]Action, error) {
	result := make(map[key.Code]Action, len(data))
	t := key.Default()
	for name, val := range data {
		c, ok := t.NameToCode(name)
		if !ok {
			return nil, fmt.Errorf("[bindings] unknown key name: %q", name)
		}
		a, ok := ActionByName(strings.ToLower(strings.TrimSpace(val)))
		if !ok {
			return nil, fmt.Errorf("[bindings] key %q: unknown action: %q", name, val)
		}
		result[c] = a
	}
	return result, nil
}

func mergeBindings(base, override map[key.Code]Action) {
	for c, a := range override {
		if a == ActionNone {
			delete(base, c)
		} else {
			base[c] = a
		}
	}
}

// Action returns the action bound to c
func (c *Config) Action(code key.Code) Action {
	return c.Bindings[code]
}
