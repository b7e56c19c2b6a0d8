package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dhamidi/arith/batch"
	"github.com/dhamidi/arith/watch"
)

func newWatchCmd() *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch <path>",
		Short: "Re-evaluate statement files whenever they change",
		Long: `Watch a file, or every .arith file below a directory, and print
the results of each file again whenever it is saved. Stop with Ctrl-C.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			runner := batch.New(settings.Batch.Workers)
			defer runner.Close()

			w := watch.New(args[0], &rerun{ctx: ctx, runner: runner}, interval)
			w.Start()
			<-ctx.Done()
			w.Stop()
			return nil
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", time.Second, "how often to check for changes")

	return cmd
}

// rerun evaluates a file through the batch runner each time it changes.
type rerun struct {
	ctx    context.Context
	runner *batch.Runner
}

func (r *rerun) Changed(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		errorColor.Fprintf(os.Stderr, "%s: %s\n", path, err)
		return
	}

	id := r.runner.Submit(batch.Request{Lines: strings.Split(string(data), "\n")})
	result, err := r.runner.Wait(r.ctx, id)
	if err != nil {
		return
	}

	stageColor.Printf("== %s (%s)\n", path, time.Now().Format(time.TimeOnly))
	printBatch(result)
	if result.Failed > 0 {
		errorColor.Printf("%d of %d statements failed\n", result.Failed, result.Total)
	}
	fmt.Println()
}

func (r *rerun) Removed(path string) {
	stageColor.Printf("== %s removed\n\n", path)
}
