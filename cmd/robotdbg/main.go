// Command robotdbg is an interactive, single-keypress debugger for one
// compiled program: it puts the terminal into raw mode so 's' (step),
// 'c' (continue), and 'q' (quit) drive an ExecutionContext one
// ExecuteNext() slice at a time, without waiting for Enter.
package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/jslade/pro-bots/compile"
	"github.com/jslade/pro-bots/value"
	"github.com/jslade/pro-bots/vm"
)

func main() {
	srcPath := flag.String("file", "", "script source file to debug")
	flag.Parse()

	if *srcPath == "" {
		fmt.Fprintln(os.Stderr, "usage: robotdbg -file <script>")
		os.Exit(1)
	}

	source, err := os.ReadFile(*srcPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "robotdbg: %v\n", err)
		os.Exit(1)
	}

	blk, err := compile.Program(string(source))
	if err != nil {
		fmt.Fprintf(os.Stderr, "robotdbg: compile error: %v\n", err)
		os.Exit(1)
	}

	ctx := vm.NewExecutionContext(blk, make(map[string]value.Value), nil, "debug", vm.Callbacks{
		OnResult: func(v value.Value, _ *vm.ExecutionContext) {
			fmt.Printf("\r\nresult: %s\r\n", v.String())
		},
		OnException: func(err error, _ *vm.ExecutionContext, _ *vm.Frame) {
			fmt.Printf("\r\nexception: %v\r\n", err)
		},
		OnBreak: func(c *vm.ExecutionContext) {
			fmt.Printf("\r\n[ops=%d] stopped=%v\r\n", c.TotalOps, c.Stopped())
		},
	})

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		runHeadless(ctx)
		return
	}
	runInteractive(ctx)
}

// runHeadless drives the context to completion without raw-mode input,
// for use when stdin isn't a TTY (e.g. piped into a test harness).
func runHeadless(ctx *vm.ExecutionContext) {
	for !ctx.Finished() {
		ctx.ExecuteNext()
	}
}

func runInteractive(ctx *vm.ExecutionContext) {
	fd := int(os.Stdin.Fd())
	prev, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "robotdbg: raw mode: %v\n", err)
		runHeadless(ctx)
		return
	}
	defer term.Restore(fd, prev)

	fmt.Print("robotdbg: s=step  c=continue  q=quit\r\n")

	buf := make([]byte, 1)
	for {
		if ctx.Finished() {
			fmt.Print("\r\nprogram finished. press q to exit.\r\n")
		}
		n, err := os.Stdin.Read(buf)
		if err != nil || n == 0 {
			return
		}
		switch buf[0] {
		case 'q', 'Q', 3: // 3 == Ctrl-C
			return
		case 's', 'S':
			if !ctx.Finished() {
				ctx.Resume()
				ctx.ExecuteNext()
			}
		case 'c', 'C':
			ctx.Resume()
			for !ctx.Finished() {
				ctx.ExecuteNext()
				if ctx.Stopped() && !ctx.Finished() {
					break // parked by a stop=true breakpoint or a host-level Park
				}
			}
		}
	}
}
