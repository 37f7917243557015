package builtin

import (
	"fmt"

	"github.com/jslade/pro-bots/trace"
	"github.com/jslade/pro-bots/transition"
	"github.com/jslade/pro-bots/value"
	"github.com/jslade/pro-bots/world"
)

// RobotBuiltins returns the per-player native map closing over player's
// robot, the shared world, and the transition engine — one construction
// per player, matching spec.md §4.7/§9 ("the built-ins map is constructed
// once per player... captures player-specific callbacks").
//
// resume is called by move()'s transition once it completes, to put the
// player's named context back on the scheduler's runnable list.
func RobotBuiltins(w *world.World, robot *world.Robot, engine *transition.Engine, resume func()) map[string]value.NativeFunc {
	r := NewRegistry()
	for name, fn := range CoreBuiltins() {
		r.Register(name, fn)
	}
	r.Register("move", nativeMove(w, robot, engine, resume))
	r.Register("turn", nativeTurn(robot))
	r.Register("scan", nativeScan(w, robot))
	r.Register("at", nativeAt(w, robot))
	r.Register("position", nativePosition(robot))
	r.Register("health", nativeHealth(robot))
	r.Register("say", nativeSay(w, robot))
	r.Register("log", nativeLog(w, robot))
	return r.Snapshot()
}

func argDirection(f value.Frame, i int) (world.Direction, error) {
	s, ok := f.Arg(i).(value.Str)
	if !ok {
		return 0, &value.TypeError{Op: "move/turn", Detail: "direction argument must be a string"}
	}
	d, ok := world.ParseDirection(string(s))
	if !ok {
		return 0, &value.TypeError{Op: "move/turn", Detail: fmt.Sprintf("unknown direction %q", s)}
	}
	return d, nil
}

func pointValue(p world.Point) value.Value {
	o := value.NewObject()
	o.Set("x", value.Int(p.X))
	o.Set("y", value.Int(p.Y))
	return o
}

func cellValue(c *world.Cell) value.Value {
	if c == nil {
		return value.NullValue
	}
	o := value.NewObject()
	o.Set("terrain", value.Str(c.Terrain))
	o.Set("occupied", value.Bool(c.Occupant != nil))
	return o
}

// nativeMove moves the robot one cell on the grid at once, then schedules
// a three-step transition (a timer only: it does not touch the robot's
// position) and parks the calling context until that transition finishes —
// the concrete instance of spec.md §4.6/§5's blocking-native pattern.
func nativeMove(w *world.World, robot *world.Robot, engine *transition.Engine, resume func()) value.NativeFunc {
	return func(f value.Frame) (value.Value, error) {
		dir, err := argDirection(f, 0)
		if err != nil {
			return nil, err
		}
		trace.Native("move", robot.Player, []string{dir.String()})

		if _, err := w.Grid.Move(robot, dir); err != nil {
			return value.Bool(false), nil
		}

		t := &transition.Transition{
			Name:       "move",
			TotalSteps: 3,
			Initial:    0,
			Final:      1,
		}
		t.OnComplete = func(*transition.Transition) {
			if resume != nil {
				resume()
			}
		}
		engine.Add(t)

		return nil, &value.Breakpoint{Reason: "yield", Stop: true}
	}
}

func nativeTurn(robot *world.Robot) value.NativeFunc {
	return func(f value.Frame) (value.Value, error) {
		dir, err := argDirection(f, 0)
		if err != nil {
			return nil, err
		}
		robot.Facing = dir
		return value.Bool(true), nil
	}
}

func nativeScan(w *world.World, robot *world.Robot) value.NativeFunc {
	return func(f value.Frame) (value.Value, error) {
		_, cell := w.Grid.Scan(robot)
		return cellValue(cell), nil
	}
}

func nativeAt(w *world.World, robot *world.Robot) value.NativeFunc {
	return func(f value.Frame) (value.Value, error) {
		dx, ok := f.Arg(0).(value.Int)
		if !ok {
			return nil, &value.TypeError{Op: "at", Detail: "dx must be an int"}
		}
		dy, ok := f.Arg(1).(value.Int)
		if !ok {
			return nil, &value.TypeError{Op: "at", Detail: "dy must be an int"}
		}
		p := world.Point{X: robot.Pos.X + int(dx), Y: robot.Pos.Y + int(dy)}
		return cellValue(w.Grid.At(p)), nil
	}
}

func nativePosition(robot *world.Robot) value.NativeFunc {
	return func(f value.Frame) (value.Value, error) {
		return pointValue(robot.Pos), nil
	}
}

func nativeHealth(robot *world.Robot) value.NativeFunc {
	return func(f value.Frame) (value.Value, error) {
		return value.Int(robot.Health), nil
	}
}

func nativeSay(w *world.World, robot *world.Robot) value.NativeFunc {
	return func(f value.Frame) (value.Value, error) {
		msg := f.Arg(0).String()
		trace.Say(robot.Player, msg)
		w.Log.Append(robot.ID, msg)
		return nil, nil
	}
}

func nativeLog(w *world.World, robot *world.Robot) value.NativeFunc {
	return func(f value.Frame) (value.Value, error) {
		msg := f.Arg(0).String()
		trace.Say(robot.Player, msg)
		w.Log.Append(robot.ID, "[log] "+msg)
		return nil, nil
	}
}
