// Package config loads translator settings from YAML and turns them into a
// driver builder.
package config

import (
	"io"
	"os"
	"sort"

	"github.com/pkg/errors"
	"github.com/sarchlab/qasm2qir/api"
	"github.com/sarchlab/qasm2qir/core"
	"github.com/sarchlab/qasm2qir/emit"
	"github.com/sarchlab/qasm2qir/qir"
	"gopkg.in/yaml.v3"
)

// Config is the content of a translator configuration file.
//
//	name: bell
//	error_policy: collect     # collect | abort
//	register_policy: reject   # reject | replace
//	strict_gates: true
//	strict_nodes: false
//	gate_aliases:
//	  cnot: cx
//	output: bell.ll
//	entry_point: main
type Config struct {
	Name           string            `yaml:"name"`
	ErrorPolicy    string            `yaml:"error_policy"`
	RegisterPolicy string            `yaml:"register_policy"`
	StrictGates    bool              `yaml:"strict_gates"`
	StrictNodes    bool              `yaml:"strict_nodes"`
	GateAliases    map[string]string `yaml:"gate_aliases"`
	Output         string            `yaml:"output"`
	EntryPoint     string            `yaml:"entry_point"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		ErrorPolicy:    "collect",
		RegisterPolicy: "reject",
		StrictGates:    true,
	}
}

// Parse reads a configuration. Keys missing from the document keep their
// default values.
func Parse(r io.Reader) (Config, error) {
	c := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && err != io.EOF {
		return Config{}, errors.Wrap(err, "decoding config")
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Load reads a configuration file.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "opening config")
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		return Config{}, errors.Wrap(err, path)
	}
	return c, nil
}

// Validate checks the policy names and that every alias targets a known
// gate.
func (c Config) Validate() error {
	if _, err := c.errorPolicy(); err != nil {
		return err
	}
	if _, err := c.registerPolicy(); err != nil {
		return err
	}

	gates := core.DefaultGateTable()
	for _, alias := range c.aliasNames() {
		if _, ok := gates.Lookup(c.GateAliases[alias]); !ok {
			return errors.Errorf("gate alias %q targets unknown gate %q",
				alias, c.GateAliases[alias])
		}
	}

	return nil
}

// DriverBuilder converts the settings into a builder.
func (c Config) DriverBuilder() (api.DriverBuilder, error) {
	ep, err := c.errorPolicy()
	if err != nil {
		return api.DriverBuilder{}, err
	}
	rp, err := c.registerPolicy()
	if err != nil {
		return api.DriverBuilder{}, err
	}

	b := api.DriverBuilder{}.
		WithErrorPolicy(ep).
		WithRegisterPolicy(rp).
		WithStrictGates(c.StrictGates).
		WithStrictNodes(c.StrictNodes).
		WithEmitter(&emit.TextEmitter{EntryPoint: c.EntryPoint})

	for _, alias := range c.aliasNames() {
		b = b.WithGateAlias(alias, c.GateAliases[alias])
	}

	return b, nil
}

// GateTable returns the default gate table extended with the configured
// aliases.
func (c Config) GateTable() (*core.GateTable, error) {
	gates := core.DefaultGateTable()
	for _, alias := range c.aliasNames() {
		if err := gates.Alias(alias, c.GateAliases[alias]); err != nil {
			return nil, errors.Wrapf(err, "gate alias %q", alias)
		}
	}
	return gates, nil
}

func (c Config) errorPolicy() (api.ErrorPolicy, error) {
	switch c.ErrorPolicy {
	case "", "collect":
		return api.CollectErrors, nil
	case "abort":
		return api.AbortOnFirstError, nil
	}
	return 0, errors.Errorf("unknown error_policy %q, want collect or abort", c.ErrorPolicy)
}

func (c Config) registerPolicy() (qir.RegisterPolicy, error) {
	switch c.RegisterPolicy {
	case "", "reject":
		return qir.RejectCollisions, nil
	case "replace":
		return qir.ReplaceOnCollision, nil
	}
	return 0, errors.Errorf("unknown register_policy %q, want reject or replace", c.RegisterPolicy)
}

func (c Config) aliasNames() []string {
	names := make([]string, 0, len(c.GateAliases))
	for alias := range c.GateAliases {
		names = append(names, alias)
	}
	sort.Strings(names)
	return names
}
