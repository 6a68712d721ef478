package config

import (
	"os"

	"github.com/creasty/defaults"
	"github.com/goccy/go-yaml"
	icingadbConfig "github.com/icinga/icingadb/pkg/config"
	"github.com/icinga/icingadb/pkg/logging"
	"github.com/pkg/errors"
)

// ConfigFile is the optional YAML configuration of contactbook. All fields
// have working defaults, a missing config file is not an error.
type ConfigFile struct {
	Snapshot string                 `yaml:"snapshot" default:"addressbook.yml"`
	Prompt   string                 `yaml:"prompt" default:"Enter a command: "`
	Logging  icingadbConfig.Logging `yaml:"logging"`
}

// SetDefaults implements the defaults.Setter interface.
func (c *ConfigFile) SetDefaults() {
	if defaults.CanUpdate(c.Logging.Output) {
		c.Logging.Output = logging.CONSOLE
	}
}

func (c *ConfigFile) Validate() error {
	if c.Snapshot == "" {
		return errors.New("snapshot path must not be empty")
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}

	return nil
}

// Default returns the configuration used when no config file is given.
func Default() (*ConfigFile, error) {
	var c ConfigFile
	if err := defaults.Set(&c); err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// FromFile loads the configuration from the YAML file at path, applying
// defaults for everything the file leaves out.
func FromFile(path string) (*ConfigFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var c ConfigFile

	if err := defaults.Set(&c); err != nil {
		return nil, err
	}

	d := yaml.NewDecoder(f)
	if err := d.Decode(&c); err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}
