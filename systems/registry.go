package systems

// System IDs, in tick order. The perf collector uses them as phase names.
const (
	IDCollision = "collision"
	IDMind      = "mind"
	IDMovement  = "movement"
	IDBleat     = "bleat"
	IDWolf      = "wolf"
	IDDirector  = "director"
	IDEgo       = "ego"
	IDCabbage   = "cabbage"
	IDEffects   = "effects"
	IDTelemetry = "telemetry"
)

// SystemInfo describes a simulation system for UI display.
type SystemInfo struct {
	ID          string // Internal identifier (used for perf tracking)
	Name        string // Display name
	Description string // What this system does
	Category    string // Grouping (e.g., "core", "ai")
}

// SystemRegistry holds metadata about all systems.
// This centralizes system naming so the HUD and perf tracker stay in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all known systems.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds all known systems in tick order.
func (r *SystemRegistry) registerDefaults() {
	r.Register(SystemInfo{ID: IDCollision, Name: "Collision", Description: "Separates overlapping sheep", Category: "physics"})
	r.Register(SystemInfo{ID: IDMind, Name: "Mind", Description: "Cycles sheep state and picks goals", Category: "ai"})
	r.Register(SystemInfo{ID: IDMovement, Name: "Movement", Description: "Walks sheep, applies player intent, wraps", Category: "physics"})
	r.Register(SystemInfo{ID: IDBleat, Name: "Bleat", Description: "Spontaneous and contagious bleats", Category: "ai"})
	r.Register(SystemInfo{ID: IDWolf, Name: "Wolves", Description: "Target selection, eating and pursuit", Category: "ai"})
	r.Register(SystemInfo{ID: IDDirector, Name: "Director", Description: "Difficulty clock and population", Category: "core"})
	r.Register(SystemInfo{ID: IDEgo, Name: "Ego", Description: "Moves player control between sheep", Category: "core"})
	r.Register(SystemInfo{ID: IDCabbage, Name: "Cabbages", Description: "Spawns cabbages and feeds the player", Category: "core"})
	r.Register(SystemInfo{ID: IDEffects, Name: "Effects", Description: "Sound lifetimes, bubbles and particles", Category: "visual"})
	r.Register(SystemInfo{ID: IDTelemetry, Name: "Telemetry", Description: "Window statistics", Category: "internal"})
}

// Register adds a system to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// Get returns system info by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for a system ID.
// Falls back to the ID itself if not found.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// All returns all registered systems.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// IDs returns all system IDs in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}
