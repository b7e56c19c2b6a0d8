package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dhamidi/arith/batch"
)

func newBatchCmd() *cobra.Command {
	var workers int
	var timeout time.Duration
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "batch <file>",
		Short: "Evaluate every statement of a file concurrently",
		Long: `Evaluate every line of a file and print the results in input
order. Blank lines and lines starting with # are skipped. Use "-" to read
from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("workers") {
				workers = settings.Batch.Workers
			}

			var data []byte
			var err error
			if args[0] == "-" {
				data, err = io.ReadAll(os.Stdin)
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			runner := batch.New(workers)
			defer runner.Close()

			id := runner.Submit(batch.Request{Lines: strings.Split(string(data), "\n")})
			result, err := runner.Wait(ctx, id)
			if err != nil {
				return fmt.Errorf("wait for batch: %w", err)
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(result); err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
			} else {
				printBatch(result)
			}

			if result.Status == batch.StatusFailed {
				return fmt.Errorf("batch failed: %s", result.Error)
			}
			if result.Failed > 0 {
				return fmt.Errorf("%d of %d statements failed", result.Failed, result.Total)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "j", 0, "statements evaluated at once (default from config)")
	cmd.Flags().DurationVarP(&timeout, "timeout", "t", 0, "give up after this long (0 means no limit)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")

	return cmd
}

func printBatch(result *batch.Result) {
	for _, l := range result.Lines {
		if l.OK() {
			fmt.Printf("%d\t%s\n", l.Line, valueColor.Sprint(formatValue(l.Value)))
			continue
		}
		fmt.Printf("%d\t%s %s\n", l.Line, stageColor.Sprintf("[%s]", l.Stage), errorColor.Sprint(l.Error))
	}
}
