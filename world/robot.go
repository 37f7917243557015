package world

import "github.com/jslade/pro-bots/value"

// Robot is one player's in-world avatar.
type Robot struct {
	ID        string
	Player    string
	Pos       Point
	Facing    Direction
	Health    int
	Inventory []value.Value
}

// NewRobot returns a fresh robot at full health, facing North, not yet
// placed on a grid.
func NewRobot(id, player string) *Robot {
	return &Robot{ID: id, Player: player, Facing: North, Health: 100}
}

// Scan reports the grid coordinate and occupant/terrain directly ahead of
// r, without moving it.
func (g *Grid) Scan(r *Robot) (Point, *Cell) {
	dx, dy := r.Facing.Delta()
	p := Point{X: r.Pos.X + dx, Y: r.Pos.Y + dy}
	return p, g.At(p)
}
