package game

// Config holds game configuration options.
type Config struct {
	// Parties is the number of parties generated when the game starts.
	Parties int
	// PartySize is the number of members in each generated party.
	PartySize int
	// Points is the point budget shared by the members of a generated party.
	Points int
}

// DefaultConfig returns the configuration used when none is supplied.
func DefaultConfig() Config {
	return Config{Parties: 1, PartySize: 4, Points: 12}
}
