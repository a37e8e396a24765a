package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/mna/yarrow/internal/config"
	"github.com/mna/yarrow/lang/errors"
	"github.com/mna/yarrow/lang/gc"
	"github.com/mna/yarrow/lang/vm"
)

// Run compiles and executes each file in turn, sharing one VM (and so one
// globals table and one heap) across all of them, the way a single script
// made of multiple source files would behave.
func (c *Cmd) Run(ctx context.Context, stdio mainer.Stdio, args []string) error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}

	heap := gc.NewWithThreshold(cfg.GCInitialThreshold)
	machine := vm.New(heap, stdio.Stdout)

	for _, path := range args {
		if err := ctx.Err(); err != nil {
			return err
		}
		src, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			return err
		}
		if err := machine.Run(string(src)); err != nil {
			printRunError(stdio, path, err)
			return err
		}
	}
	return nil
}

func printRunError(stdio mainer.Stdio, path string, err error) {
	for _, e := range errors.Errors(err) {
		fmt.Fprintf(stdio.Stderr, "%s: %s\n", path, e)
	}
}
