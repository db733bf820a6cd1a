package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/casegraph/pkg/errors"
	"github.com/matzehuels/casegraph/pkg/timeline"
)

const (
	configFile      = "config.toml"
	defaultAddr     = "127.0.0.1:8080"
	defaultPNGScale = 2.0
)

// fileConfig is the layout of config.toml.
//
//	[timeline]
//	width = 1600
//	language = "ro"
//
//	[timeline.margin]
//	left = 240
//
//	[render]
//	interaction = true
//
//	[serve]
//	addr = ":9090"
type fileConfig struct {
	Timeline timeline.Config `toml:"timeline"`
	Render   renderConfig    `toml:"render"`
	Serve    serveConfig     `toml:"serve"`
}

type renderConfig struct {
	Interaction bool    `toml:"interaction"` // embed hover highlighting in SVG output
	Background  string  `toml:"background"`
	PNGScale    float64 `toml:"png_scale"`
}

type serveConfig struct {
	Addr string `toml:"addr"`
}

func defaultFileConfig() fileConfig {
	return fileConfig{
		Timeline: timeline.DefaultConfig(),
		Render:   renderConfig{Interaction: true, PNGScale: defaultPNGScale},
		Serve:    serveConfig{Addr: defaultAddr},
	}
}

// loadConfig reads path over the defaults. An empty path means the default
// location, which may be absent; an explicit path must exist. Unknown keys
// are returned so the caller can warn about typos.
func loadConfig(path string) (fileConfig, []string, error) {
	cfg := defaultFileConfig()

	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return cfg, nil, nil
		}
		path = filepath.Join(dir, configFile)
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return cfg, nil, nil
	}
	if os.IsNotExist(err) {
		return cfg, nil, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
	}
	if err != nil {
		return cfg, nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}

	var unknown []string
	for _, k := range md.Undecoded() {
		unknown = append(unknown, k.String())
	}
	if err := cfg.Timeline.Validate(); err != nil {
		return cfg, unknown, err
	}
	return cfg, unknown, nil
}

// config loads the configuration for a command, logging unknown keys.
func (c *CLI) config() (fileConfig, error) {
	cfg, unknown, err := loadConfig(c.configPath)
	if len(unknown) > 0 {
		c.Logger.Warn("Ignoring unknown config keys", "keys", strings.Join(unknown, ", "))
	}
	return cfg, err
}
