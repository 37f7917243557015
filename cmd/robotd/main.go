// Command robotd runs the robot scripting engine as a small TCP server: one
// connection per player, a line of script text per command. It wires the
// world model, the built-in registry, the programming service, the
// scheduler, and the tick processor together, then runs the simulation and
// the console on separate goroutines coordinated with errgroup.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/jslade/pro-bots/builtin"
	"github.com/jslade/pro-bots/config"
	"github.com/jslade/pro-bots/program"
	"github.com/jslade/pro-bots/sched"
	"github.com/jslade/pro-bots/tick"
	"github.com/jslade/pro-bots/trace"
	"github.com/jslade/pro-bots/transition"
	"github.com/jslade/pro-bots/value"
	"github.com/jslade/pro-bots/vm"
	"github.com/jslade/pro-bots/world"
)

func main() {
	args := os.Args[1:]
	configPath := config.ConfigFlagValue(args)

	cfg, err := config.Load(configPath, args)
	if err != nil {
		if err == flag.ErrHelp {
			return
		}
		log.Fatalf("config: %v", err)
	}

	var filters []string
	if cfg.TraceFilter != "" {
		for _, f := range strings.Split(cfg.TraceFilter, ",") {
			filters = append(filters, strings.TrimSpace(f))
		}
	}
	trace.Init(cfg.TraceEnabled, filters, os.Stderr)

	log.Printf("robotd starting: grid=%dx%d ticks/s=%g listen=%s", cfg.GridWidth, cfg.GridHeight, cfg.TicksPerSec, cfg.ListenAddr)

	w := world.New(cfg.GridWidth, cfg.GridHeight)
	scheduler := sched.New()
	processor := tick.New(cfg.TicksPerSec)
	engine := transition.NewEngine(processor)
	tick.ScheduleInterpreterWork(processor, scheduler)

	var svc *program.Service
	svc = program.NewService(scheduler, builtinsFactory(w, engine, func(player string) {
		svc.ResumePlayer(player)
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Printf("robotd: shutdown signal received")
		processor.Stop()
		cancel()
	}()

	listener, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		log.Fatalf("listen: %v", err)
	}
	defer listener.Close()
	log.Printf("robotd: listening on %s", cfg.ListenAddr)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		processor.Run(gctx)
		return nil
	})

	g.Go(func() error {
		return acceptLoop(gctx, listener, svc, processor)
	})

	if err := g.Wait(); err != nil {
		log.Printf("robotd: exiting with error: %v", err)
	}
}

// builtinsFactory spawns a robot for a new player (if it doesn't already
// have one) and returns its per-player native map. resumePlayer is called
// by a blocking native's transition once it completes, to put the
// player's named context back on the scheduler's runnable list.
func builtinsFactory(w *world.World, engine *transition.Engine, resumePlayer func(player string)) program.BuiltinsFactory {
	return func(player string) map[string]value.NativeFunc {
		robot, ok := w.Robot(player)
		if !ok {
			var err error
			robot, err = w.SpawnRobot(player, findOpenSpawn(w))
			if err != nil {
				log.Printf("robotd: failed to spawn robot for %s: %v", player, err)
			}
		}
		return builtin.RobotBuiltins(w, robot, engine, func() { resumePlayer(player) })
	}
}

func findOpenSpawn(w *world.World) world.Point {
	for y := 0; y < w.Grid.Height; y++ {
		for x := 0; x < w.Grid.Width; x++ {
			p := world.Point{X: x, Y: y}
			if cell := w.Grid.At(p); cell != nil && cell.Occupant == nil {
				return p
			}
		}
	}
	return world.Point{}
}

// acceptLoop accepts connections until ctx is cancelled, matching the
// teacher's acceptConnections/HandleConnection split (one goroutine per
// connection), but line-oriented instead of the teacher's telnet protocol.
func acceptLoop(ctx context.Context, listener net.Listener, svc *program.Service, processor *tick.Processor) error {
	go func() {
		<-ctx.Done()
		listener.Close()
	}()
	for {
		conn, err := listener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
				log.Printf("robotd: accept error: %v", err)
				continue
			}
		}
		go handleConnection(ctx, conn, svc, processor)
	}
}

// consoleWriter serializes writes to a connection: a script's callbacks
// fire from the simulation goroutine, concurrently with the connection's
// own read loop writing prompts/errors, so every write goes through here.
type consoleWriter struct {
	mu   sync.Mutex
	conn net.Conn
}

func (c *consoleWriter) Printf(format string, args ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.conn, format, args...)
}

func handleConnection(ctx context.Context, conn net.Conn, svc *program.Service, processor *tick.Processor) {
	defer conn.Close()
	player := conn.RemoteAddr().String()
	log.Printf("robotd: connection from %s (player=%s)", conn.RemoteAddr(), player)

	out := &consoleWriter{conn: conn}
	out.Printf("welcome, %s. one script line per command.\n", player)

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		runLine(ctx, line, player, svc, processor, out)
	}
}

// runLine compiles source on the calling connection goroutine — compiling
// is pure and touches no shared state — then hands the compiled block off
// to the simulation thread via processor.Enqueue, matching the teacher's
// InputEvent/EnqueueInput pattern (server/scheduler.go): scheduling,
// globals, and builtins (including the first-contact robot spawn in
// builtinsFactory) only ever run from there, so none of sched.Scheduler,
// program.Service, or world.World need their own locks.
func runLine(ctx context.Context, source, player string, svc *program.Service, processor *tick.Processor, out *consoleWriter) {
	blk, err := svc.Compile(source)
	if err != nil {
		out.Printf("compile error: %v\n", err)
		return
	}

	cb := vm.Callbacks{
		OnResult: func(v value.Value, _ *vm.ExecutionContext) {
			out.Printf("=> %s\n", v.String())
		},
		OnException: func(err error, c *vm.ExecutionContext, _ *vm.Frame) {
			trace.Exception(player, c.Name, err)
			out.Printf("error: %v\n", err)
		},
	}

	err = processor.Enqueue(ctx, func() {
		svc.Execute(blk, player, true, false, cb)
	})
	if err != nil {
		out.Printf("error: server shutting down\n")
	}
}
