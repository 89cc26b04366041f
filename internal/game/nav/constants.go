package nav

// Pathfinding configuration.
const (
	// DefaultMaxIterations caps node expansions per FindPath call.
	DefaultMaxIterations = 50000

	// Edge costs.
	StepCost  = 1
	ClimbCost = 2
	FallCost  = 1
)

// cardinals lists horizontal moves in expansion order: N, S, W, E.
var cardinals = [4]struct{ dx, dy int }{
	{0, -1},
	{0, 1},
	{-1, 0},
	{1, 0},
}
