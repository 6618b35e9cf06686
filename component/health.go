package component

// Health counts hits taken in the current life. The entity is dead once Hits
// reaches Max.
type Health struct {
	Max     int
	Hits    int
	IFrames int
	Dead    bool
}

// NewHealth creates a Health that dies after max hits.
func NewHealth(max int) *Health {
	if max <= 0 {
		max = 1
	}
	return &Health{Max: max}
}

// IsAlive reports whether the entity is alive.
func (h *Health) IsAlive() bool {
	return h != nil && !h.Dead
}

// ApplyHit registers one hit unless i-frames are running. Returns true if the
// hit counted.
func (h *Health) ApplyHit() bool {
	if h == nil || h.Dead || h.IFrames > 0 {
		return false
	}
	h.Hits++
	if h.Hits >= h.Max {
		h.Kill()
	}
	return true
}

// Kill marks the entity dead regardless of remaining hits.
func (h *Health) Kill() {
	if h == nil || h.Dead {
		return
	}
	h.Dead = true
}

// StartIFrames sets invulnerability frames.
func (h *Health) StartIFrames(frames int) {
	if h == nil || frames <= 0 {
		return
	}
	h.IFrames = frames
}

// Tick advances the i-frame timer by one frame.
func (h *Health) Tick() {
	if h == nil || h.IFrames <= 0 {
		return
	}
	h.IFrames--
}

// Remaining returns how many more hits the entity can take.
func (h *Health) Remaining() int {
	if h == nil || h.Dead {
		return 0
	}
	return h.Max - h.Hits
}

// Reset revives the entity with no hits taken.
func (h *Health) Reset() {
	if h == nil {
		return
	}
	h.Hits = 0
	h.IFrames = 0
	h.Dead = false
}
