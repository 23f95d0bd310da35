// Package config loads the harness settings from defaults, an optional config file, environment
// variables and command-line overrides, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xyzbank/entity-contract-tests/servicedef"
	"github.com/xyzbank/entity-contract-tests/transport"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every key to get its environment variable, so "base_url" is read
// from ENTITY_API_BASE_URL.
const EnvPrefix = "ENTITY_API"

const (
	KeyBaseURL        = "base_url"
	KeyTimeout        = "timeout"
	KeyProbeTimeout   = "probe_timeout"
	KeyAttachmentsDir = "attachments_dir"
	KeyCreatePath     = "create_path"
	KeyGetPath        = "get_path"
	KeyGetAllPath     = "get_all_path"
	KeyUpdatePath     = "update_path"
	KeyDeletePath     = "delete_path"
)

// DefaultProbeTimeout is how long to wait for the service to start answering requests.
const DefaultProbeTimeout = time.Second * 10

// Config is the resolved configuration.
type Config struct {
	BaseURL        string
	Timeout        time.Duration
	ProbeTimeout   time.Duration
	AttachmentsDir string
	Endpoints      servicedef.Endpoints
}

// Load resolves the configuration. The config file is optional; if it is empty, only defaults,
// environment variables and overrides are used. Overrides are keyed by the Key constants, and
// typically come from command-line flags that were explicitly set.
func Load(configFile string, overrides map[string]interface{}) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("could not read config file %q: %w", configFile, err)
		}
	}
	for k, val := range overrides {
		v.Set(k, val)
	}

	cfg := Config{
		BaseURL:        strings.TrimSpace(v.GetString(KeyBaseURL)),
		Timeout:        v.GetDuration(KeyTimeout),
		ProbeTimeout:   v.GetDuration(KeyProbeTimeout),
		AttachmentsDir: v.GetString(KeyAttachmentsDir),
		Endpoints: servicedef.Endpoints{
			Create: v.GetString(KeyCreatePath),
			Get:    v.GetString(KeyGetPath),
			GetAll: v.GetString(KeyGetAllPath),
			Update: v.GetString(KeyUpdatePath),
			Delete: v.GetString(KeyDeletePath),
		},
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values that Load cannot default. An empty base URL is allowed, since the
// harness may supply its own service.
func (c Config) Validate() error {
	if c.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	if c.ProbeTimeout <= 0 {
		return errors.New("probe timeout must be positive")
	}
	for name, path := range map[string]string{
		KeyCreatePath: c.Endpoints.Create, KeyGetPath: c.Endpoints.Get, KeyGetAllPath: c.Endpoints.GetAll,
		KeyUpdatePath: c.Endpoints.Update, KeyDeletePath: c.Endpoints.Delete,
	} {
		if !strings.HasPrefix(path, "/") {
			return fmt.Errorf("%s must start with \"/\", got %q", name, path)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	ep := servicedef.DefaultEndpoints()
	v.SetDefault(KeyBaseURL, "")
	v.SetDefault(KeyTimeout, transport.DefaultTimeout)
	v.SetDefault(KeyProbeTimeout, DefaultProbeTimeout)
	v.SetDefault(KeyAttachmentsDir, "")
	v.SetDefault(KeyCreatePath, ep.Create)
	v.SetDefault(KeyGetPath, ep.Get)
	v.SetDefault(KeyGetAllPath, ep.GetAll)
	v.SetDefault(KeyUpdatePath, ep.Update)
	v.SetDefault(KeyDeletePath, ep.Delete)
}
