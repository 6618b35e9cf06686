package component

// Ability names one of the player's unlockable moves.
type Ability int

const (
	AbilityDoubleJump Ability = iota
	AbilityDash
	AbilityWallSlide
	AbilityWallJump
	AbilityTimeStop
)

var abilityNames = [...]string{"double_jump", "dash", "wall_slide", "wall_jump", "time_stop"}

func (a Ability) String() string {
	if a < 0 || int(a) >= len(abilityNames) {
		return "unknown"
	}
	return abilityNames[a]
}

// ParseAbility maps a config name like "wall_jump" to an Ability.
func ParseAbility(name string) (Ability, bool) {
	for i, n := range abilityNames {
		if n == name {
			return Ability(i), true
		}
	}
	return 0, false
}

// Abilities defines which optional player abilities are enabled.
type Abilities struct {
	DoubleJump bool
	Dash       bool
	WallSlide  bool
	WallJump   bool
	TimeStop   bool
}

// AbilitySet holds the unlocks gained during the current level. Reload puts
// it back to Defaults; nothing else clears a flag.
type AbilitySet struct {
	Abilities
	Defaults Abilities

	// OnUnlock runs after a flag flips from false to true.
	OnUnlock func(a Ability)
}

// NewAbilitySet creates a set starting at defaults.
func NewAbilitySet(defaults Abilities) *AbilitySet {
	return &AbilitySet{Abilities: defaults, Defaults: defaults}
}

// Reload restores the level-start defaults.
func (s *AbilitySet) Reload() {
	if s == nil {
		return
	}
	s.Abilities = s.Defaults
}

// Has reports whether a is unlocked.
func (s *AbilitySet) Has(a Ability) bool {
	if s == nil {
		return false
	}
	if p := s.flag(a); p != nil {
		return *p
	}
	return false
}

// Unlock sets a to true. It returns false, without calling OnUnlock, when
// the ability was already unlocked.
func (s *AbilitySet) Unlock(a Ability) bool {
	if s == nil {
		return false
	}
	p := s.flag(a)
	if p == nil || *p {
		return false
	}
	*p = true
	if s.OnUnlock != nil {
		s.OnUnlock(a)
	}
	return true
}

func (s *AbilitySet) SetDoubleJumpUnlocked() bool { return s.Unlock(AbilityDoubleJump) }
func (s *AbilitySet) SetDashUnlocked() bool       { return s.Unlock(AbilityDash) }
func (s *AbilitySet) SetWallSlideUnlocked() bool  { return s.Unlock(AbilityWallSlide) }
func (s *AbilitySet) SetWallJumpUnlocked() bool   { return s.Unlock(AbilityWallJump) }
func (s *AbilitySet) SetTimeStopUnlocked() bool   { return s.Unlock(AbilityTimeStop) }

// UnlockAll unlocks every ability.
func (s *AbilitySet) UnlockAll() {
	for i := range abilityNames {
		s.Unlock(Ability(i))
	}
}

// MaxJumps is the number of jumps available between ground contacts.
func (s *AbilitySet) MaxJumps() int {
	if s != nil && s.DoubleJump {
		return 2
	}
	return 1
}

func (s *AbilitySet) flag(a Ability) *bool {
	switch a {
	case AbilityDoubleJump:
		return &s.DoubleJump
	case AbilityDash:
		return &s.Dash
	case AbilityWallSlide:
		return &s.WallSlide
	case AbilityWallJump:
		return &s.WallJump
	case AbilityTimeStop:
		return &s.TimeStop
	}
	return nil
}
