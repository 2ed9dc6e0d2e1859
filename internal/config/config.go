package config

import (
	"fmt"
	"os"
	"strconv"

	plugindomain "github.com/YA-androidapp/baserow/internal/core/domain/plugin"
)

// Environment variables recognized by the tool. PLUGIN_BUILD_UID and
// PLUGIN_BUILD_GID are read at image-build time; BASEROW_PLUGIN_DIR is
// read at every container start.
const (
	EnvPluginDir = "BASEROW_PLUGIN_DIR"
	EnvBuildUID  = "PLUGIN_BUILD_UID"
	EnvBuildGID  = "PLUGIN_BUILD_GID"

	DefaultPluginDir = "/baserow/plugins"
)

// Config holds every setting the tool consumes, resolved once at process
// start. Nothing else reads the environment directly.
type Config struct {
	// PluginDir is the plugins root under which every installed plugin lives
	PluginDir string

	// BuildUID and BuildGID form the build identity plugin files are owned by
	BuildUID int
	BuildGID int
}

// Default returns the configuration used when no environment overrides
// are present.
func Default() Config {
	return Config{
		PluginDir: DefaultPluginDir,
		BuildUID:  plugindomain.SentinelUID,
		BuildGID:  plugindomain.SentinelGID,
	}
}

// Load resolves the configuration from the process environment. An unset
// or empty variable keeps its default; a malformed numeric value is a
// fatal configuration error.
func Load() (Config, error) {
	cfg := Default()

	if v := os.Getenv(EnvPluginDir); v != "" {
		cfg.PluginDir = v
	}

	uid, err := intFromEnv(EnvBuildUID, plugindomain.SentinelUID)
	if err != nil {
		return Config{}, err
	}
	cfg.BuildUID = uid

	gid, err := intFromEnv(EnvBuildGID, plugindomain.SentinelGID)
	if err != nil {
		return Config{}, err
	}
	cfg.BuildGID = gid

	return cfg, nil
}

// BuildIdentity returns the resolved build identity pair.
func (c Config) BuildIdentity() plugindomain.BuildIdentity {
	return plugindomain.BuildIdentity{UID: c.BuildUID, GID: c.BuildGID}
}

func intFromEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("invalid %s %q: must be non-negative", key, v)
	}
	return n, nil
}
