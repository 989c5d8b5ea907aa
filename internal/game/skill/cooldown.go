package skill

// Cooldowns maps skill ID to remaining cooldown turns. The map is owned by
// the active combat session and discarded when it ends; a character at rest
// carries no cooldown state.
type Cooldowns map[string]int

// NewCooldowns returns an empty cooldown table.
func NewCooldowns() Cooldowns {
	return make(Cooldowns)
}

// Ready reports whether the skill with the given id can be used.
func (c Cooldowns) Ready(id string) bool {
	return c[id] <= 0
}

// Tick returns a new table with every positive cooldown decremented by one.
// Entries never go below zero; calling Tick on an all-zero table is a
// no-op. The receiver is not modified.
func (c Cooldowns) Tick() Cooldowns {
	out := make(Cooldowns, len(c))
	for id, v := range c {
		if v > 0 {
			v--
		}
		if v < 0 {
			v = 0
		}
		out[id] = v
	}
	return out
}

// set returns a copy of c with the skill's cooldown set to turns.
func (c Cooldowns) set(id string, turns int) Cooldowns {
	out := make(Cooldowns, len(c)+1)
	for k, v := range c {
		out[k] = v
	}
	out[id] = turns
	return out
}
