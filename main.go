/*
Copyright © 2025 Norio Nomura

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/norio-nomura/uniqview/pkg/bench"
	"github.com/norio-nomura/uniqview/pkg/client"
	"github.com/norio-nomura/uniqview/pkg/future"
	"github.com/norio-nomura/uniqview/pkg/options"
	"github.com/norio-nomura/uniqview/pkg/report"
	"github.com/norio-nomura/uniqview/pkg/xiter"
)

func main() {
	var (
		debug                bool
		readOptionsFromStdin bool
		verifyOnly           bool
		opt                  *options.Options
	)
	flag.BoolVar(&debug, "debug", false, "Enable debug mode")
	flag.BoolVar(&readOptionsFromStdin, "stdin", false, "Read JSON from stdin")
	flag.BoolVar(&verifyOnly, "verify-only", false, "Verify without measuring")
	flag.Parse()
	if debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}
	if readOptionsFromStdin {
		optFromStdin, err := options.FromStdin()
		if err != nil {
			panic(err)
		}
		opt = optFromStdin
	} else {
		optFromEnv, err := options.FromEnv()
		if err != nil {
			panic(err)
		}
		opt = optFromEnv
		// Do not call ExecWithPassingOptionsToStdin() if debug is enabled or there is no secret to hide
		if !debug && opt.HasWebhook() {
			err = optFromEnv.ExecWithPassingOptionsToStdin()
			// if ExecWithPassingOptionsToStdin() returns, it means there was an error
			panic(err)
		}
	}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()
	if err := run(ctx, opt, verifyOnly); err != nil {
		slog.Error("uniqview failed", slog.Any("err", err))
		stop()
		os.Exit(1)
	}
}

var errVerificationFailed = errors.New("verification failed")

// run verifies all cases, measures them unless verifyOnly is set, prints the table and posts it if a webhook is configured.
func run(ctx context.Context, opt *options.Options, verifyOnly bool) error {
	ctx, cancel := opt.ContextWithTimeout(ctx)
	defer cancel()

	cases := bench.Cases(opt.Sizes, opt.Repeats)
	failed := 0
	isFailure := func(r future.Result[bench.Case]) bool { return r.Err != nil }
	for result := range xiter.Filter(bench.VerifyAll(ctx, cases, opt.Parallelism), isFailure) {
		if ctx.Err() != nil {
			// the remaining cases were skipped, not failed
			return fmt.Errorf("verification stopped at %s: %w", result.Value, context.Cause(ctx))
		}
		slog.Error("Verification failed", slog.String("case", result.Value.String()), slog.Any("err", result.Err))
		failed++
	}
	if failed > 0 {
		return fmt.Errorf("%w for %d of %d cases", errVerificationFailed, failed, len(cases))
	}
	slog.Info("Verified", slog.Int("cases", len(cases)))
	if verifyOnly {
		return nil
	}

	var measurements []bench.Measurement
	for m, err := range bench.Run(ctx, cases, opt.Rounds) {
		if err != nil {
			if cause := context.Cause(ctx); cause != nil {
				err = cause
			}
			return fmt.Errorf("failed to measure %s: %w", m.Case, err)
		}
		slog.Info("Measured", slog.String("case", m.Case.String()), slog.Int("slices", m.Slices), slog.Float64("speedup", m.Speedup()))
		measurements = append(measurements, m)
	}
	table := report.Table(measurements)
	fmt.Print(table)

	var poster report.Poster
	if opt.HasWebhook() {
		c, err := client.New(opt)
		if err != nil {
			return err
		}
		defer c.Close(ctx)
		poster = c
	}
	content := report.Content(fmt.Sprintf("uniqview: %d cases, %d rounds", len(cases), opt.Rounds), table, opt.NumberOfLinesToEmbedOutput)
	m, err := report.Post(opt, poster, content).Await(ctx)
	if err != nil {
		return err
	}
	if m != nil {
		slog.Info("Posted report", slog.Any("message.id", m.ID))
	}
	return nil
}
