package world_test

import (
	"testing"

	"github.com/jslade/pro-bots/world"
)

func TestSpawnAndMove(t *testing.T) {
	w := world.New(3, 3)
	robot, err := w.SpawnRobot("alice", world.Point{X: 0, Y: 0})
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	if got, ok := w.Robot("alice"); !ok || got != robot {
		t.Error("Robot(alice) should return the spawned robot")
	}

	dest, err := w.Grid.Move(robot, world.East)
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if dest != (world.Point{X: 1, Y: 0}) {
		t.Errorf("dest = %v, want (1,0)", dest)
	}
	if w.Grid.At(world.Point{X: 0, Y: 0}).Occupant != nil {
		t.Error("origin cell should be vacated after a move")
	}
}

func TestSpawnRejectsOccupiedCell(t *testing.T) {
	w := world.New(3, 3)
	if _, err := w.SpawnRobot("alice", world.Point{X: 1, Y: 1}); err != nil {
		t.Fatalf("spawn: %v", err)
	}
	if _, err := w.SpawnRobot("bob", world.Point{X: 1, Y: 1}); err == nil {
		t.Error("spawning onto an occupied cell should fail")
	}
}

func TestMoveOutOfBoundsFails(t *testing.T) {
	w := world.New(1, 1)
	robot, _ := w.SpawnRobot("alice", world.Point{X: 0, Y: 0})
	if _, err := w.Grid.Move(robot, world.North); err == nil {
		t.Error("moving off the edge of the grid should fail")
	}
	if robot.Pos != (world.Point{X: 0, Y: 0}) {
		t.Error("a failed move should not mutate the robot's position")
	}
}

func TestMoveBlockedByOccupant(t *testing.T) {
	w := world.New(2, 1)
	alice, _ := w.SpawnRobot("alice", world.Point{X: 0, Y: 0})
	_, _ = w.SpawnRobot("bob", world.Point{X: 1, Y: 0})
	if _, err := w.Grid.Move(alice, world.East); err == nil {
		t.Error("moving into an occupied cell should fail")
	}
}

func TestScanLooksAheadWithoutMoving(t *testing.T) {
	w := world.New(3, 3)
	robot, _ := w.SpawnRobot("alice", world.Point{X: 1, Y: 1})
	robot.Facing = world.North
	pos, cell := w.Grid.Scan(robot)
	if pos != (world.Point{X: 1, Y: 0}) {
		t.Errorf("scan position = %v, want (1,0)", pos)
	}
	if cell == nil || cell.Terrain != "plain" {
		t.Errorf("scan cell = %v, want plain terrain", cell)
	}
	if robot.Pos != (world.Point{X: 1, Y: 1}) {
		t.Error("scan should never move the robot")
	}
}

func TestParseDirection(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want world.Direction
		ok   bool
	}{
		{"north", world.North, true},
		{"n", world.North, true},
		{"east", world.East, true},
		{"sideways", 0, false},
	} {
		got, ok := world.ParseDirection(tt.in)
		if ok != tt.ok {
			t.Errorf("ParseDirection(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("ParseDirection(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestEventLogTail(t *testing.T) {
	var l world.EventLog
	l.Append("r1", "hello")
	l.Append("r1", "world")
	tail := l.Tail(1)
	if len(tail) != 1 || tail[0] != "r1: world" {
		t.Errorf("Tail(1) = %v, want [r1: world]", tail)
	}
	if len(l.Tail(10)) != 2 {
		t.Error("Tail should clamp n to the number of entries available")
	}
}
