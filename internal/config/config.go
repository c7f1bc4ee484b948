// Package config handles client configuration loading and management.
package config

import "math"

// Config holds all client settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Map      MapConfig      `yaml:"map"`
	World    WorldConfig    `yaml:"world"`
	Physics  PhysicsConfig  `yaml:"physics"`
	Render   RenderConfig   `yaml:"render"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// MapConfig holds the map source and the projection origin.
type MapConfig struct {
	// Path to the map extract. ".pbf" files are read as OSM PBF,
	// anything else as an Overpass JSON export (optionally gzipped).
	Path string `yaml:"path"`

	// Projection origin. World coordinates are meters from here.
	OriginLat float64 `yaml:"origin_lat"`
	OriginLon float64 `yaml:"origin_lon"`

	// Height assumed per building:levels when no height tag exists.
	MetersPerLevel float32 `yaml:"meters_per_level"`
}

// WorldConfig holds the chunk grid layout.
type WorldConfig struct {
	Size          float32 `yaml:"size"`            // world edge length, meters
	ChunksPerAxis int     `yaml:"chunks_per_axis"` // grid is N x N chunks
	GridCellSize  float32 `yaml:"grid_cell_size"`  // collision bucket size, meters
}

// PhysicsConfig holds movement and collision tuning.
type PhysicsConfig struct {
	PlayerRadius     float64 `yaml:"player_radius"`
	WallThickness    float64 `yaml:"wall_thickness"`
	MoveSpeed        float64 `yaml:"move_speed"`
	Gravity          float64 `yaml:"gravity"`
	JumpForce        float64 `yaml:"jump_force"`
	TerminalVelocity float64 `yaml:"terminal_velocity"`
	StepSize         float64 `yaml:"step_size"` // sub-step duration, seconds
	MaxSteps         int     `yaml:"max_steps"` // resolution passes per sub-step
	EyeHeight        float64 `yaml:"eye_height"`
}

// RenderConfig holds camera and culling settings.
type RenderConfig struct {
	FOVDegrees   float32 `yaml:"fov"`
	ZNear        float32 `yaml:"z_near"`
	ZFar         float32 `yaml:"z_far"`
	DrawDistance float32 `yaml:"draw_distance"`
	FogStart     float32 `yaml:"fog_start"`
	FogEnd       float32 `yaml:"fog_end"`
	ChunkMinY    float32 `yaml:"chunk_min_y"` // culling AABB vertical bounds
	ChunkMaxY    float32 `yaml:"chunk_max_y"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
// The origin defaults to Central Park South, matching the bundled
// Manhattan extract.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Title:      "SkyRoam",
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Map: MapConfig{
			Path:           "nyc.json",
			OriginLat:      40.771220,
			OriginLon:      -73.979577,
			MetersPerLevel: 3.2,
		},
		World: WorldConfig{
			Size:          10000.0,
			ChunksPerAxis: 16,
			GridCellSize:  50.0,
		},
		Physics: PhysicsConfig{
			PlayerRadius:     0.3,
			WallThickness:    0.5,
			MoveSpeed:        15.0,
			Gravity:          35.0,
			JumpForce:        12.0,
			TerminalVelocity: -50.0,
			StepSize:         0.01,
			MaxSteps:         5,
			EyeHeight:        1.8,
		},
		Render: RenderConfig{
			FOVDegrees:   45.0,
			ZNear:        0.1,
			ZFar:         10000.0,
			DrawDistance: 3500.0,
			FogStart:     1000.0,
			FogEnd:       2500.0,
			ChunkMinY:    -20.0,
			ChunkMaxY:    450.0,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// ChunkSize returns the edge length of one chunk in meters.
func (w WorldConfig) ChunkSize() float32 {
	return w.Size / float32(w.ChunksPerAxis)
}

// ChunkRadius returns half the diagonal of one chunk. The draw
// distance cull is padded by this so chunks never pop at the edge.
func (w WorldConfig) ChunkRadius() float32 {
	s := w.ChunkSize()
	return float32(math.Sqrt(float64(s*s*2))) * 0.5
}

// ContactDistance returns the distance below which the player touches
// a wall: player radius plus rendered wall thickness.
func (p PhysicsConfig) ContactDistance() float64 {
	return p.PlayerRadius + p.WallThickness
}
