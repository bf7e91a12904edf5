package core

// RuntimeConfig is what the platform tells a game when a run starts.
type RuntimeConfig struct {
	ScreenW  int   // Terminal columns
	ScreenH  int   // Terminal rows
	TickRate int   // Simulation ticks per second
	Seed     int64 // World seed; 0 lets the platform pick one from the clock
}

// GameState is the status a game reports to the platform every tick.
type GameState struct {
	Score    int  // Depth in tile rows
	Currency int  // Gems collected so far; the credited total once GameOver is set
	GameOver bool // The run has ended and been settled
	Paused   bool
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
