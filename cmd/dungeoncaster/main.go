// Package main is the entry point for DungeonCaster.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/samdwyer/dungeoncaster/internal/audio"
	"github.com/samdwyer/dungeoncaster/internal/config"
	"github.com/samdwyer/dungeoncaster/internal/entity"
	"github.com/samdwyer/dungeoncaster/internal/game"
	"github.com/samdwyer/dungeoncaster/internal/gamedata"
	"github.com/samdwyer/dungeoncaster/internal/render"
	"github.com/samdwyer/dungeoncaster/internal/telemetry"
	"github.com/samdwyer/dungeoncaster/internal/texture"
	"github.com/samdwyer/dungeoncaster/internal/ui"
)

const configEnv = "DUNGEONCASTER_CONFIG"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to TOML config (default $"+configEnv+" or config.toml)")
	snapshot := flag.String("snapshot", "", "render one frame to this PNG file and exit")
	flag.Parse()

	// Load .env file for local development. Env vars may be set directly.
	_ = godotenv.Load()
	setupOTelEnv()

	path := *configPath
	if path == "" {
		path = os.Getenv(configEnv)
	}
	if path == "" {
		path = "config.toml"
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	// In terminal mode stderr belongs to tcell.
	logOut := "stderr"
	if *snapshot == "" && cfg.Logging.File != "" {
		logOut = cfg.Logging.File
	}
	log, err := newLogger(cfg.Logging, logOut)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if cfg.Telemetry.Enabled {
		ts, err := telemetry.Setup(ctx, telemetry.Options{ServiceName: cfg.Telemetry.ServiceName, Log: log})
		if err != nil {
			log.Warn("telemetry setup failed, running without observability", zap.Error(err))
		} else {
			log.Info("telemetry enabled", zap.String("session", ts.ID))
			defer func() {
				if err := ts.Shutdown(context.Background()); err != nil {
					log.Warn("telemetry shutdown", zap.Error(err))
				}
			}()
		}
	}

	lvl, err := loadLevel(ctx, cfg.Level)
	if err != nil {
		return err
	}
	gcfg, err := gameConfig(cfg)
	if err != nil {
		return err
	}

	if *snapshot != "" {
		return writeSnapshot(ctx, lvl, gcfg, cfg.Render, *snapshot, log)
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return fmt.Errorf("screen: %w", err)
	}
	g, err := game.New(screen, lvl, gcfg, log)
	if err != nil {
		screen.Close()
		return err
	}
	defer g.Close()

	if cfg.Audio.Enabled {
		sm := audio.NewSoundManager(cfg.Audio.Volume, log)
		if err := sm.Initialize(); err != nil {
			log.Warn("audio unavailable", zap.Error(err))
		} else {
			defer sm.Cleanup()
			g.SetDoorListener(sm)
		}
	}

	return g.Run(ctx)
}

func loadLevel(ctx context.Context, lc config.LevelConfig) (*gamedata.Level, error) {
	if lc.Generate {
		return gamedata.GenerateLevel(ctx, lc.Size, lc.Scale, lc.Seed)
	}
	return gamedata.LoadLevel(ctx, lc.Name)
}

func gameConfig(cfg *config.Config) (game.Config, error) {
	gc := game.Config{
		Movement: entity.Movement{
			Speed:         cfg.Player.Speed,
			RotationSpeed: cfg.Player.RotationSpeed,
		},
		Render: render.Options{
			FOV:     cfg.Render.FOV,
			Rays:    cfg.Render.Rays,
			Workers: cfg.Render.Workers,
		},
		Tick:    cfg.Render.Tick,
		Minimap: cfg.Render.Minimap,
	}
	var err error
	if gc.Ceiling, err = colorOverride(cfg.Render.Ceiling); err != nil {
		return gc, fmt.Errorf("render ceiling: %w", err)
	}
	if gc.Floor, err = colorOverride(cfg.Render.Floor); err != nil {
		return gc, fmt.Errorf("render floor: %w", err)
	}
	return gc, nil
}

func colorOverride(hex string) (*texture.Color, error) {
	if hex == "" {
		return nil, nil
	}
	c, err := gamedata.ParseHexColor(hex)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// writeSnapshot renders one frame headless and writes it as a PNG.
func writeSnapshot(ctx context.Context, lvl *gamedata.Level, gcfg game.Config, rc config.RenderConfig, out string, log *zap.Logger) error {
	s, err := game.NewSession(lvl, gcfg, rc.Width, rc.Height, log)
	if err != nil {
		return err
	}
	if _, err := s.Step(ctx, nil); err != nil {
		return err
	}
	f := s.Frame()
	if gcfg.Minimap {
		side := min(f.Width(), f.Height()) / 3
		render.DrawMinimap(f, s.Grid(), s.Player(), s.Hits(), image.Rect(0, 0, side, side))
	}

	file, err := os.Create(filepath.Clean(out))
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	if err := png.Encode(file, f.Image()); err != nil {
		file.Close()
		return fmt.Errorf("snapshot encode: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}

	log.Info("snapshot written",
		zap.String("file", out),
		zap.Int("width", f.Width()),
		zap.Int("height", f.Height()),
		zap.Uint64("digest", f.Digest()),
	)
	fmt.Printf("%s %016x\n", out, f.Digest())
	return nil
}

// newLogger builds a zap logger writing to out ("stderr" or a file path).
func newLogger(cfg config.LoggingConfig, out string) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.OutputPaths = []string{out}
	zapCfg.ErrorOutputPaths = []string{out}

	return zapCfg.Build()
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	apiKey := os.Getenv("HONEYCOMB_DUNGEONCASTER_API_KEY")
	if apiKey == "" {
		return
	}
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	}
	dataset := os.Getenv("HONEYCOMB_DUNGEONCASTER_DATASET")
	if dataset == "" {
		dataset = "dungeoncaster"
	}
	os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
		fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
}
