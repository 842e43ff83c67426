package ui

import (
	"encoding/json"
	"math"

	"rampart/pkg/config"
	"rampart/pkg/geom"
	"rampart/pkg/storage"

	log "github.com/sirupsen/logrus"
)

const positionSchemaVersion = 1

// StoredPosition is the single shape the position store persists: a point
// plus the viewport size it was saved at, so a later load on a different
// resolution can rescale proportionally.
type StoredPosition struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	ScreenW float64 `json:"screenWidthAtSave"`
	ScreenH float64 `json:"screenHeightAtSave"`
	Version int     `json:"schemaVersion"`
}

// PositionStore persists one user-chosen point per element key. Every
// failure path degrades to "nothing stored": the UI must keep working
// with persistence gone entirely.
type PositionStore struct {
	store   storage.Store
	surface Surface
}

func NewPositionStore(store storage.Store, surface Surface) *PositionStore {
	return &PositionStore{store: store, surface: surface}
}

// Save writes p under key, stamped with the current viewport size.
func (ps *PositionStore) Save(key string, p geom.Point) {
	if ps == nil || ps.store == nil {
		return
	}
	b := ps.surface.Bounds()
	data, err := json.Marshal(StoredPosition{
		X:       p.X,
		Y:       p.Y,
		ScreenW: b.W,
		ScreenH: b.H,
		Version: positionSchemaVersion,
	})
	if err != nil {
		log.Warnf("position store: marshal %q: %v", key, err)
		return
	}
	if err := ps.store.SetItem(key, string(data)); err != nil {
		log.Warnf("position store: save %q: %v", key, err)
	}
}

// Load returns the stored point for key, rescaled if the viewport has
// drifted more than the tolerance on either axis since it was saved. The
// caller is expected to re-clamp the point to the current bounds and
// re-save the corrected value.
func (ps *PositionStore) Load(key string) (geom.Point, bool) {
	if ps == nil || ps.store == nil {
		return geom.Point{}, false
	}
	raw, ok, err := ps.store.GetItem(key)
	if err != nil {
		log.Warnf("position store: load %q: %v", key, err)
		return geom.Point{}, false
	}
	if !ok {
		return geom.Point{}, false
	}

	var sp StoredPosition
	if err := json.Unmarshal([]byte(raw), &sp); err != nil {
		log.Warnf("position store: parse %q: %v", key, err)
		return geom.Point{}, false
	}
	if sp.Version != positionSchemaVersion || sp.ScreenW <= 0 || sp.ScreenH <= 0 {
		log.Warnf("position store: %q has unusable shape, ignoring", key)
		return geom.Point{}, false
	}

	p := geom.Point{X: sp.X, Y: sp.Y}
	b := ps.surface.Bounds()
	driftW := math.Abs(b.W-sp.ScreenW) / sp.ScreenW
	driftH := math.Abs(b.H-sp.ScreenH) / sp.ScreenH
	if driftW > config.ViewportTolerance || driftH > config.ViewportTolerance {
		p.X = p.X * b.W / sp.ScreenW
		p.Y = p.Y * b.H / sp.ScreenH
	}
	return p, true
}

// Clear removes the stored point for key.
func (ps *PositionStore) Clear(key string) {
	if ps == nil || ps.store == nil {
		return
	}
	if err := ps.store.RemoveItem(key); err != nil {
		log.Warnf("position store: clear %q: %v", key, err)
	}
}
