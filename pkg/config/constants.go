package config

const (
	// Screen Dimensions
	ScreenWidth  = 960
	ScreenHeight = 640

	// World
	TileSize   = 32
	LaneY      = 10 // lane row, in tiles
	CreepSpeed = 48.0

	// Floating UI
	OffscreenMargin   = 50.0 // px around the surface before auto-hide kicks in
	ClampPadding      = 10.0 // px kept between a clamped box and the surface edge
	DragClampInset    = 4.0  // px pulled back in when a drag ends off-surface
	ViewportTolerance = 0.10 // relative viewport drift before stored positions rescale

	// Persistence
	PositionKeyPrefix = "floating-ui-position-"
	PositionsFile     = "positions.json"

	// Timers
	DamageNumberLifetimeMs = 1000
	HUDRefreshMs           = 250
	HealthBarRefreshMs     = 100
	ClickOutsideArmMs      = 250
)
