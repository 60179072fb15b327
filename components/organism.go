package components

// Agent identifies a snake.
type Agent struct {
	ID       uint32
	BornTick int32
}

// Heading is the direction the agent moves on its next step.
type Heading struct {
	Dir Direction
}

// Motion holds movement pacing and owed growth.
type Motion struct {
	MoveTimer   float64 // ms until next step
	GrowPending int     // steps that keep the tail
}

// Vitals holds the collision lifecycle.
type Vitals struct {
	CollisionCount int
	Stunned        bool
	StunTimer      float64 // ms remaining while stunned
	Alive          bool
}
