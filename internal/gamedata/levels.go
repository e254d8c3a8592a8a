package gamedata

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"path"
	"sort"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dungeoncaster/internal/entity"
	"github.com/samdwyer/dungeoncaster/internal/telemetry"
	"github.com/samdwyer/dungeoncaster/internal/texture"
	"github.com/samdwyer/dungeoncaster/internal/world"
)

// ErrUnknownLevel is returned for level names with no embedded file.
var ErrUnknownLevel = errors.New("unknown level")

// DefaultLevel is loaded when no level is configured.
const DefaultLevel = "temple"

// SpawnDef is a spawn point in cell units.
type SpawnDef struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Angle float64 `yaml:"angle"`
}

// LevelDef is the on-disk form of a level.
type LevelDef struct {
	Name        string   `yaml:"name"`
	Scale       float64  `yaml:"scale"`
	DoorCode    int      `yaml:"door_code"`
	Spawn       SpawnDef `yaml:"spawn"`
	Ceiling     string   `yaml:"ceiling"`
	Floor       string   `yaml:"floor"`
	TextureSize int      `yaml:"texture_size"`
	Textures    []string `yaml:"textures"`
	Cells       [][]int  `yaml:"cells"`
}

// Level is a ready-to-play map with its textures and spawn point.
type Level struct {
	Name     string
	Grid     *world.Grid
	Textures *texture.Store
	Spawn    entity.Player
	Ceiling  texture.Color
	Floor    texture.Color
}

// LevelNames lists the embedded levels in alphabetical order.
func LevelNames() []string {
	entries, err := fs.ReadDir(dataFS, "levels")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".yaml"); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// LoadLevelDef reads an embedded level file by name.
func LoadLevelDef(name string) (LevelDef, error) {
	if name == "" {
		name = DefaultLevel
	}
	file := path.Join("levels", name+".yaml")
	if _, err := fs.Stat(dataFS, file); err != nil {
		return LevelDef{}, fmt.Errorf("%w: %q (have %s)", ErrUnknownLevel, name, strings.Join(LevelNames(), ", "))
	}
	return Load[LevelDef](file)
}

// LoadLevel reads and builds an embedded level.
func LoadLevel(ctx context.Context, name string) (*Level, error) {
	tracer := telemetry.Tracer("gamedata")
	_, span := tracer.Start(ctx, "level.load")
	defer span.End()

	def, err := LoadLevelDef(name)
	if err != nil {
		return nil, err
	}
	lvl, err := def.Build()
	if err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.String("level.name", lvl.Name),
		attribute.Int("level.size", lvl.Grid.Size()),
		attribute.Int("level.textures", lvl.Textures.Len()),
		attribute.Int("level.doors", lvl.Grid.Count(lvl.Grid.DoorCode())),
	)
	return lvl, nil
}

// Build validates a level definition and decodes its textures. Any error
// here is a configuration error.
func (d LevelDef) Build() (*Level, error) {
	n := len(d.Cells)
	cells := make([]world.Cell, 0, n*n)
	for row, line := range d.Cells {
		if len(line) != n {
			return nil, fmt.Errorf("level %s: row %d has %d cells, want %d: %w", d.Name, row, len(line), n, world.ErrSizeMismatch)
		}
		for _, v := range line {
			cells = append(cells, world.Cell(v))
		}
	}

	grid, err := world.NewGrid(n, d.Scale, world.Cell(d.DoorCode), cells)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", d.Name, err)
	}
	store, err := LoadTextures(d.TextureSize, d.Textures)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", d.Name, err)
	}
	if highest := maxCode(cells); highest > store.Len() {
		return nil, fmt.Errorf("level %s: cell code %d has no texture (%d loaded)", d.Name, highest, store.Len())
	}

	spawn := entity.NewPlayer(d.Spawn.X*d.Scale, d.Spawn.Y*d.Scale, d.Spawn.Angle)
	if col, row, ok := grid.Locate(spawn.X, spawn.Y); !ok || !grid.Passable(col, row) {
		return nil, fmt.Errorf("level %s: spawn (%v, %v) is not on open floor", d.Name, d.Spawn.X, d.Spawn.Y)
	}

	ceiling, err := ParseHexColor(d.Ceiling)
	if err != nil {
		return nil, fmt.Errorf("level %s ceiling: %w", d.Name, err)
	}
	floor, err := ParseHexColor(d.Floor)
	if err != nil {
		return nil, fmt.Errorf("level %s floor: %w", d.Name, err)
	}

	return &Level{
		Name:     d.Name,
		Grid:     grid,
		Textures: store,
		Spawn:    spawn,
		Ceiling:  ceiling,
		Floor:    floor,
	}, nil
}

// LoadTextures builds a store from texture entries. An entry is either an
// embedded PNG asset, decoded strictly so alpha is rejected, or a
// procedural texture: "solid:#rrggbb" or "checker:#rrggbb:#rrggbb".
func LoadTextures(size int, names []string) (*texture.Store, error) {
	texs := make([]*texture.Texture, 0, len(names))
	for _, name := range names {
		if kind, args, ok := strings.Cut(name, ":"); ok {
			tex, err := proceduralTexture(name, kind, args, size)
			if err != nil {
				return nil, err
			}
			texs = append(texs, tex)
			continue
		}
		f, err := dataFS.Open(path.Join("assets", name))
		if err != nil {
			return nil, fmt.Errorf("failed to open texture %s: %w", name, err)
		}
		tex, err := texture.Decode(name, f, size, texture.DecodeOptions{Strict: true})
		f.Close()
		if err != nil {
			return nil, err
		}
		texs = append(texs, tex)
	}
	return texture.NewStore(size, texs...)
}

// GenerateLevel builds a random level dressed with the temple textures.
func GenerateLevel(ctx context.Context, size int, scale float64, seed int64) (*Level, error) {
	def, err := LoadLevelDef(DefaultLevel)
	if err != nil {
		return nil, err
	}
	store, err := LoadTextures(def.TextureSize, def.Textures)
	if err != nil {
		return nil, err
	}

	var rng *rand.Rand
	if seed != 0 {
		rng = rand.New(rand.NewSource(seed))
	}
	lvl, err := world.NewGenerator(size, scale, rng).Generate(ctx)
	if err != nil {
		return nil, err
	}

	x, y := lvl.Spawn()
	return &Level{
		Name:     fmt.Sprintf("generated-%d", seed),
		Grid:     lvl.Grid,
		Textures: store,
		Spawn:    entity.NewPlayer(x, y, 0),
		Ceiling:  MustParseHexColor(def.Ceiling),
		Floor:    MustParseHexColor(def.Floor),
	}, nil
}

func proceduralTexture(name, kind, args string, size int) (*texture.Texture, error) {
	if size < 1 {
		return nil, fmt.Errorf("texture %s: size %d: %w", name, size, texture.ErrDimension)
	}
	colors := strings.Split(args, ":")
	parsed := make([]texture.Color, len(colors))
	for i, hex := range colors {
		c, err := ParseHexColor(hex)
		if err != nil {
			return nil, fmt.Errorf("texture %s: %w", name, err)
		}
		parsed[i] = c
	}
	switch {
	case kind == "solid" && len(parsed) == 1:
		return texture.Solid(name, size, parsed[0]), nil
	case kind == "checker" && len(parsed) == 2:
		return texture.Checker(name, size, parsed[0], parsed[1]), nil
	default:
		return nil, fmt.Errorf("texture %s: want solid:#rrggbb or checker:#rrggbb:#rrggbb", name)
	}
}

func maxCode(cells []world.Cell) int {
	highest := 0
	for _, c := range cells {
		highest = max(highest, int(c))
	}
	return highest
}
