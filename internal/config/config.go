// Package config loads the TOML settings shared by the dungeon binaries.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"varazs/internal/room"
	"varazs/internal/world"
)

// DefaultPath is read when no path is given on the command line or in
// EnvPath.
const DefaultPath = "config/varazs.toml"

// EnvPath names the environment variable that overrides the config path.
const EnvPath = "VARAZS_CONFIG"

type Config struct {
	World   WorldConfig   `toml:"world"`
	Window  WindowConfig  `toml:"window"`
	Render  RenderConfig  `toml:"render"`
	Logging LoggingConfig `toml:"logging"`
}

type WorldConfig struct {
	Seed       uint64  `toml:"seed"`
	Assets     string  `toml:"assets"`
	RoomSize   float32 `toml:"room_size"`
	LoadRadius int32   `toml:"load_radius"`
	MaxCells   int     `toml:"max_cells"`  // 0 = unbounded
	RoomTable  string  `toml:"room_table"` // optional YAML pattern table
}

type WindowConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
	Scale  int `toml:"scale"`
	TPS    int `toml:"tps"`
}

type RenderConfig struct {
	Backend string `toml:"backend"` // "headless" or "ebiten"
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// Load reads path over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve picks the config path (explicit, then EnvPath, then DefaultPath)
// and loads it. A missing DefaultPath yields the defaults; a missing file
// that was asked for by name is an error.
func Resolve(explicit string) (*Config, string, error) {
	path := explicit
	if path == "" {
		path = os.Getenv(EnvPath)
	}
	if path == "" {
		cfg, err := Load(DefaultPath)
		if errors.Is(err, os.ErrNotExist) {
			return defaults(), "", nil
		}
		return cfg, DefaultPath, err
	}
	cfg, err := Load(path)
	return cfg, path, err
}

// Default returns the built-in configuration.
func Default() *Config { return defaults() }

func defaults() *Config {
	return &Config{
		World: WorldConfig{
			Seed:       1238972181,
			Assets:     "assets/models/rooms",
			RoomSize:   world.DefaultRoomSize,
			LoadRadius: world.DefaultLoadRadius,
		},
		Window: WindowConfig{
			Width:  960,
			Height: 720,
			Scale:  1,
			TPS:    60,
		},
		Render: RenderConfig{
			Backend: "headless",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Bind attaches the world and logging settings to fs so flags override the
// file. Call it after loading and before fs.Parse.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.Uint64Var(&c.World.Seed, "seed", c.World.Seed, "world seed")
	fs.StringVar(&c.World.Assets, "assets", c.World.Assets, "directory of room models")
	fs.IntVar(&c.World.MaxCells, "max-cells", c.World.MaxCells, "cap on grid map slots (0 = unbounded)")
	fs.StringVar(&c.World.RoomTable, "room-table", c.World.RoomTable, "YAML room pattern table")
	fs.StringVar(&c.Render.Backend, "backend", c.Render.Backend, "render backend")
	fs.StringVar(&c.Logging.Level, "log-level", c.Logging.Level, "log level")
	fs.StringVar(&c.Logging.Format, "log-format", c.Logging.Format, "log format: console or json")
}

// BindWindow attaches the window settings to fs.
func (c *Config) BindWindow(fs *flag.FlagSet) {
	fs.IntVar(&c.Window.Width, "width", c.Window.Width, "window width")
	fs.IntVar(&c.Window.Height, "height", c.Window.Height, "window height")
	fs.IntVar(&c.Window.Scale, "scale", c.Window.Scale, "pixel scale multiplier")
	fs.IntVar(&c.Window.TPS, "tps", c.Window.TPS, "ticks per second")
}

// ToWorld converts the [world] section into a world.Config, loading the
// room table when one is configured.
func (c *Config) ToWorld() (world.Config, error) {
	wc := world.Config{
		RoomSize:   c.World.RoomSize,
		LoadRadius: c.World.LoadRadius,
		MaxCells:   c.World.MaxCells,
	}
	if c.World.RoomTable != "" {
		table, err := room.LoadTable(c.World.RoomTable)
		if err != nil {
			return wc, err
		}
		wc.Table = table
	}
	return wc, nil
}

// PathFromArgs returns the value of a -config flag in args without parsing
// the rest, so the file can be loaded before the other flags are bound.
func PathFromArgs(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			break
		}
		name, value, hasValue := strings.Cut(strings.TrimLeft(a, "-"), "=")
		if !strings.HasPrefix(a, "-") || name != "config" {
			continue
		}
		if hasValue {
			return value
		}
		if i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

// BindPath registers the -config flag so that a flag set which already
// consumed it via PathFromArgs accepts it again.
func BindPath(fs *flag.FlagSet) {
	fs.String("config", "", "config file (default $"+EnvPath+" or "+DefaultPath+")")
}
