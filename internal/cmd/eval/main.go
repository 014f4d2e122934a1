// Copyright 2025 Florian Zenker (flo@znkr.io)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// eval validates the diff algorithms on the history of a git repository: every changed file is
// diffed line by line with every algorithm variant, the resulting changes are applied to the old
// file and compared to the new file. Edit counts are compared against diffmatchpatch.
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"runtime"
	"slices"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
	"znkr.io/delta/internal/cmd/eval/internal/git"
)

type config struct {
	repo     string
	sample   int
	seed     uint64
	parallel int
	stats    string
	validate bool
	logLevel string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfg config
	cmd := &cobra.Command{
		Use:          "eval --repo <dir>",
		Short:        "Evaluate the diff algorithms on the history of a git repository",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(cfg.logLevel)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck
			return run(cmd.Context(), &cfg, logger)
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfg.repo, "repo", "", "repository to use for evaluation")
	f.IntVar(&cfg.sample, "sample", 0, "if >0, sample commits to the value of the flag")
	f.Uint64Var(&cfg.seed, "seed", 0, "seed for sampling commits, 0 picks a random seed")
	f.IntVar(&cfg.parallel, "parallel", runtime.GOMAXPROCS(0), "number of evaluations to run in parallel")
	f.StringVar(&cfg.stats, "stats", "", "CSV file to store stats in")
	f.BoolVar(&cfg.validate, "validate", true, "if validation should be performed")
	f.StringVar(&cfg.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	cmd.MarkFlagRequired("repo") //nolint:errcheck
	return cmd
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableStacktrace = true
	return cfg.Build()
}

// sample picks n commit IDs at random, keeping their order.
func sample(commitIDs []string, n int, rnd *rand.Rand) []string {
	if n <= 0 || n >= len(commitIDs) {
		return commitIDs
	}
	picked := rnd.Perm(len(commitIDs))[:n]
	slices.Sort(picked)
	out := make([]string, n)
	for i, j := range picked {
		out[i] = commitIDs[j]
	}
	return out
}

// closeFile closes c and stores the error in err unless err is already set.
func closeFile(c io.Closer, err *error) {
	if cerr := c.Close(); cerr != nil && *err == nil {
		*err = fmt.Errorf("closing stats file: %w", cerr)
	}
}

// summary accumulates the results of one variant.
type summary struct {
	files    int
	edits    int
	tooBig   int
	duration time.Duration
}

func run(ctx context.Context, cfg *config, logger *zap.Logger) (err error) {
	if cfg.parallel < 1 {
		return fmt.Errorf("invalid parallelism %d", cfg.parallel)
	}
	start := time.Now()

	repo, err := git.Open(cfg.repo)
	if err != nil {
		return fmt.Errorf("opening git repository: %w", err)
	}
	commitIDs, err := repo.RevList(ctx)
	if err != nil {
		return fmt.Errorf("reading rev-list: %w", err)
	}
	seed := cfg.seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	commitIDs = sample(commitIDs, cfg.sample, rand.New(rand.NewPCG(seed, seed)))
	logger.Info("evaluating commits", zap.String("repo", cfg.repo), zap.Int("commits", len(commitIDs)), zap.Uint64("seed", seed))

	var stats *csv.Writer
	if cfg.stats != "" {
		f, cerr := os.Create(cfg.stats)
		if cerr != nil {
			return fmt.Errorf("creating stats file: %w", cerr)
		}
		defer closeFile(f, &err)
		stats = csv.NewWriter(f)
		if err := stats.Write([]string{"commit_id", "file", "variant", "N", "M", "D", "too_big", "duration_ns"}); err != nil {
			return fmt.Errorf("writing stats: %w", err)
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	changes := make(chan change)
	results := make(chan []result)
	var failures atomic.Int64

	// Read changed files.
	g.Go(func() error {
		defer close(changes)
		for i, commitID := range commitIDs {
			files, err := repo.DiffTree(ctx, commitID)
			if err != nil {
				return fmt.Errorf("reading commit %s: %w", commitID, err)
			}
			for _, file := range files {
				old, err := repo.ReadBlob(ctx, file.OldID)
				if err != nil {
					return fmt.Errorf("reading %s in %s: %w", file.Name, commitID, err)
				}
				new, err := repo.ReadBlob(ctx, file.NewID)
				if err != nil {
					return fmt.Errorf("reading %s in %s: %w", file.Name, commitID, err)
				}
				if skipFile(file.Name, old, new) {
					continue
				}
				select {
				case changes <- change{commitID: commitID, file: file.Name, old: old, new: new}:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			logger.Debug("commit read", zap.String("commit", commitID), zap.Int("done", i+1), zap.Int("total", len(commitIDs)))
		}
		return nil
	})

	// Diff files.
	var workers sync.WaitGroup
	for range cfg.parallel {
		workers.Add(1)
		g.Go(func() error {
			defer workers.Done()
			for c := range changes {
				res, err := evaluate(c, cfg.validate)
				if err != nil {
					failures.Add(1)
					logger.Warn("evaluation failed", zap.String("commit", c.commitID), zap.String("file", c.file), zap.Error(err))
				}
				select {
				case results <- res:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return nil
		})
	}
	go func() {
		workers.Wait()
		close(results)
	}()

	// Collect results.
	summaries := make(map[string]*summary)
	g.Go(func() error {
		for res := range results {
			for _, r := range res {
				s := summaries[r.variant]
				if s == nil {
					s = &summary{}
					summaries[r.variant] = s
				}
				s.files++
				s.edits += r.D
				s.duration += r.duration
				if r.tooBig {
					s.tooBig++
				}
				if stats == nil {
					continue
				}
				record := []string{
					r.commitID,
					r.file,
					r.variant,
					strconv.Itoa(r.N),
					strconv.Itoa(r.M),
					strconv.Itoa(r.D),
					strconv.FormatBool(r.tooBig),
					strconv.FormatInt(r.duration.Nanoseconds(), 10),
				}
				if err := stats.Write(record); err != nil {
					return fmt.Errorf("writing stats: %w", err)
				}
			}
		}
		if stats != nil {
			stats.Flush()
			if err := stats.Error(); err != nil {
				return fmt.Errorf("flushing stats: %w", err)
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	names := make([]string, 0, len(summaries))
	for name := range summaries {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		s := summaries[name]
		logger.Info("variant summary",
			zap.String("variant", name),
			zap.Int("files", s.files),
			zap.Int("edits", s.edits),
			zap.Int("too_big", s.tooBig),
			zap.Duration("duration", s.duration),
		)
	}
	logger.Info("evaluation done", zap.Duration("elapsed", time.Since(start)), zap.Int64("failures", failures.Load()))

	if n := failures.Load(); n > 0 {
		return fmt.Errorf("%d files failed evaluation", n)
	}
	return nil
}
