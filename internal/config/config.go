package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"barrage/server/internal/physics"
)

// ServerConfig holds the HTTP/WebSocket listener settings.
type ServerConfig struct {
	Addr              string `json:"addr" mapstructure:"addr"`
	TickRate          int    `json:"tickRate" mapstructure:"tickRate"`
	HeartbeatSeconds  int    `json:"heartbeatSeconds" mapstructure:"heartbeatSeconds"`
	MaxPlayers        int    `json:"maxPlayers" mapstructure:"maxPlayers"`
	AllowedOriginsCSV string `json:"allowedOrigins" mapstructure:"allowedOrigins"`
}

// WorldConfig holds playfield and physics tunables.
type WorldConfig struct {
	Width       float64 `json:"width" mapstructure:"width"`
	Height      float64 `json:"height" mapstructure:"height"`
	Gravity     float64 `json:"gravity" mapstructure:"gravity"`
	MaxVelocity float64 `json:"maxVelocity" mapstructure:"maxVelocity"`
	MaxWind     float64 `json:"maxWind" mapstructure:"maxWind"`
	Walls       string  `json:"walls" mapstructure:"walls"`
	Ceiling     string  `json:"ceiling" mapstructure:"ceiling"`
	TerrainSeed int64   `json:"terrainSeed" mapstructure:"terrainSeed"`
}

// LoggingConfig holds the event router settings.
type LoggingConfig struct {
	Sinks           []string `json:"sinks" mapstructure:"sinks"`
	BufferSize      int      `json:"bufferSize" mapstructure:"bufferSize"`
	MinimumSeverity string   `json:"minimumSeverity" mapstructure:"minimumSeverity"`
	JSONPath        string   `json:"jsonPath" mapstructure:"jsonPath"`
}

// Config is the full server configuration tree.
type Config struct {
	Server  ServerConfig  `json:"server" mapstructure:"server"`
	World   WorldConfig   `json:"world" mapstructure:"world"`
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
	Weapons []string      `json:"weapons" mapstructure:"weapons"`
}

const envPrefix = "BARRAGE"

// Load reads configuration with layered precedence: defaults, then an
// optional JSON file, then BARRAGE_* environment variables. An empty path
// skips the file layer entirely.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.tickRate", 30)
	v.SetDefault("server.heartbeatSeconds", 20)
	v.SetDefault("server.maxPlayers", 8)
	v.SetDefault("server.allowedOrigins", "")

	v.SetDefault("world.width", physics.DefaultWorldWidth)
	v.SetDefault("world.height", physics.DefaultWorldHeight)
	v.SetDefault("world.gravity", physics.DefaultGravity)
	v.SetDefault("world.maxVelocity", physics.DefaultMaxVelocity)
	v.SetDefault("world.maxWind", 0.05)
	v.SetDefault("world.walls", "none")
	v.SetDefault("world.ceiling", "none")
	v.SetDefault("world.terrainSeed", 0)

	v.SetDefault("logging.sinks", []string{"console"})
	v.SetDefault("logging.bufferSize", 512)
	v.SetDefault("logging.minimumSeverity", "info")
	v.SetDefault("logging.jsonPath", "")

	v.SetDefault("weapons", []string{})

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// AllowedOrigins splits the comma-separated origin list, dropping blanks.
func (c ServerConfig) AllowedOrigins() []string {
	if strings.TrimSpace(c.AllowedOriginsCSV) == "" {
		return nil
	}
	parts := strings.Split(c.AllowedOriginsCSV, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

func (c Config) validate() error {
	if c.Server.TickRate < 1 {
		return fmt.Errorf("config: server.tickRate must be at least 1, got %d", c.Server.TickRate)
	}
	if c.World.Width < 1 || c.World.Height < 1 {
		return fmt.Errorf("config: world dimensions must be positive, got %vx%v", c.World.Width, c.World.Height)
	}
	if _, err := parseEdgeMode(c.World.Walls); err != nil {
		return fmt.Errorf("config: world.walls: %w", err)
	}
	if _, err := parseEdgeMode(c.World.Ceiling); err != nil {
		return fmt.Errorf("config: world.ceiling: %w", err)
	}
	return nil
}

func parseEdgeMode(name string) (physics.EdgeMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return physics.EdgeModeNone, nil
	case "bounce":
		return physics.EdgeModeBounce, nil
	case "wrap":
		return physics.EdgeModeWrap, nil
	case "absorb":
		return physics.EdgeModeAbsorb, nil
	default:
		return physics.EdgeModeNone, fmt.Errorf("unknown edge mode %q", name)
	}
}

// Physics converts the world section into an immutable physics configuration.
// Wind starts at zero; the game loop rolls it per round.
func (c Config) Physics() physics.Config {
	walls, _ := parseEdgeMode(c.World.Walls)
	ceiling, _ := parseEdgeMode(c.World.Ceiling)
	return physics.Config{
		Gravity:     c.World.Gravity,
		MaxVelocity: c.World.MaxVelocity,
		WorldWidth:  c.World.Width,
		WorldHeight: c.World.Height,
		Walls:       walls,
		Ceiling:     ceiling,
	}
}
