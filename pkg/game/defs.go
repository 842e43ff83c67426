package game

import (
	"image/color"
)

// CreepDefinition is the static configuration for a creep type. It acts
// as a blueprint for spawning; live state lives on the Creep entity.
type CreepDefinition struct {
	ID          string // unique id e.g. "grunt"
	Name        string
	Description string

	// Visuals
	Width  float64
	Height float64
	Color  color.RGBA

	// Stats
	MaxHealth float64
	Speed     float64 // pixels per second along the lane
	Bounty    int     // gold on kill
	Damage    int     // base damage when the creep leaks through
}

// TowerDefinition is the static configuration for a tower type.
type TowerDefinition struct {
	ID          string
	Name        string
	Description string

	Width  float64
	Height float64
	Color  color.RGBA

	Range    float64 // acquisition radius in pixels
	Damage   float64
	FireRate float64 // shots per second
	Cost     int

	// Per-level upgrade scaling applied on top of the base stats.
	UpgradeCost  int
	DamagePerLvl float64
	RangePerLvl  float64
	MaxLevel     int
}

var creepRegistry = make(map[string]CreepDefinition)
var towerRegistry = make(map[string]TowerDefinition)

func RegisterCreep(def CreepDefinition) {
	if _, exists := creepRegistry[def.ID]; exists {
		panic("Duplicate creep ID: " + def.ID)
	}
	creepRegistry[def.ID] = def
}

func RegisterTower(def TowerDefinition) {
	if _, exists := towerRegistry[def.ID]; exists {
		panic("Duplicate tower ID: " + def.ID)
	}
	towerRegistry[def.ID] = def
}

func GetCreepDef(id string) (CreepDefinition, bool) {
	d, ok := creepRegistry[id]
	return d, ok
}

func GetTowerDef(id string) (TowerDefinition, bool) {
	d, ok := towerRegistry[id]
	return d, ok
}

// TowerDefs lists the registered tower types in a stable order, for the
// build toolbar.
func TowerDefs() []TowerDefinition {
	ids := []string{"arrow", "cannon"}
	defs := make([]TowerDefinition, 0, len(ids))
	for _, id := range ids {
		if d, ok := towerRegistry[id]; ok {
			defs = append(defs, d)
		}
	}
	return defs
}

func init() {
	// Grunt (Red): the baseline creep.
	RegisterCreep(CreepDefinition{
		ID:          "grunt",
		Name:        "Grunt",
		Description: "A slow, unremarkable walker.",
		Width:       20,
		Height:      20,
		Color:       color.RGBA{R: 200, G: 60, B: 60, A: 255}, // Red
		MaxHealth:   40,
		Speed:       48,
		Bounty:      5,
		Damage:      1,
	})

	// Runner (Cyan): fast and fragile.
	RegisterCreep(CreepDefinition{
		ID:          "runner",
		Name:        "Runner",
		Description: "Sprints down the lane; dies to a stiff breeze.",
		Width:       14,
		Height:      14,
		Color:       color.RGBA{R: 80, G: 220, B: 220, A: 255}, // Cyan
		MaxHealth:   18,
		Speed:       96,
		Bounty:      4,
		Damage:      1,
	})

	// Brute (Purple): slow, takes a beating.
	RegisterCreep(CreepDefinition{
		ID:          "brute",
		Name:        "Brute",
		Description: "Shrugs off arrows. Bring a cannon.",
		Width:       26,
		Height:      26,
		Color:       color.RGBA{R: 150, G: 70, B: 200, A: 255}, // Purple
		MaxHealth:   140,
		Speed:       28,
		Bounty:      12,
		Damage:      3,
	})

	// Arrow Tower (Yellow): fast, cheap, single target.
	RegisterTower(TowerDefinition{
		ID:           "arrow",
		Name:         "Arrow Tower",
		Description:  "Cheap and quick. The bread and butter.",
		Width:        28,
		Height:       28,
		Color:        color.RGBA{R: 230, G: 210, B: 60, A: 255}, // Yellow
		Range:        120,
		Damage:       8,
		FireRate:     2.0,
		Cost:         40,
		UpgradeCost:  30,
		DamagePerLvl: 4,
		RangePerLvl:  10,
		MaxLevel:     4,
	})

	// Cannon Tower (Gray): slow, hits like a truck.
	RegisterTower(TowerDefinition{
		ID:           "cannon",
		Name:         "Cannon",
		Description:  "One shell, one very bad day for a brute.",
		Width:        32,
		Height:       32,
		Color:        color.RGBA{R: 130, G: 130, B: 140, A: 255}, // Gray
		Range:        90,
		Damage:       35,
		FireRate:     0.5,
		Cost:         75,
		UpgradeCost:  60,
		DamagePerLvl: 15,
		RangePerLvl:  5,
		MaxLevel:     3,
	})
}
