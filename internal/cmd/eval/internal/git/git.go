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

// Package git provides a simplified git interface for reading a repository for evaluations.
package git

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ZeroID is the object ID git uses for a missing file.
const ZeroID = "0000000000000000000000000000000000000000"

type Repo struct {
	dir string
}

func Open(dir string) (*Repo, error) {
	fi, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}
	return &Repo{dir: dir}, nil
}

// RevList returns the IDs of all non-merge commits reachable from HEAD, newest first.
func (r *Repo) RevList(ctx context.Context) ([]string, error) {
	out, err := r.git(ctx, "rev-list", "--no-merges", "HEAD")
	if err != nil {
		return nil, err
	}
	return parseRevList(out), nil
}

func parseRevList(out string) []string {
	return strings.Fields(out)
}

type FileDiff struct {
	Name  string
	OldID string
	NewID string
}

// DiffTree returns the files changed by a commit.
func (r *Repo) DiffTree(ctx context.Context, commit string) ([]FileDiff, error) {
	out, err := r.git(ctx, "diff-tree", "-r", commit)
	if err != nil {
		return nil, err
	}
	return parseDiffTree(out)
}

// parseDiffTree parses the output of git diff-tree -r. The first line is the commit ID.
func parseDiffTree(out string) ([]FileDiff, error) {
	lines := strings.Split(out, "\n")
	if len(lines) > 0 {
		lines = lines[1:]
	}
	ret := make([]FileDiff, 0, len(lines))
	for _, line := range lines {
		if len(line) == 0 {
			continue
		}
		if line[0] != ':' {
			return nil, fmt.Errorf("diff-tree file not starting with ':': %q", line)
		}
		fields := strings.Fields(line[1:])
		if len(fields) < 6 {
			return nil, fmt.Errorf("diff-tree line with %d fields, want at least 6: %q", len(fields), line)
		}
		ret = append(ret, FileDiff{
			Name:  fields[len(fields)-1],
			OldID: fields[2],
			NewID: fields[3],
		})
	}
	return ret, nil
}

// ReadBlob returns the contents of a blob. The zero ID reads as the empty string.
func (r *Repo) ReadBlob(ctx context.Context, id string) (string, error) {
	if id == ZeroID {
		return "", nil
	}
	return r.git(ctx, "cat-file", "blob", id)
}

func (r *Repo) git(ctx context.Context, args ...string) (string, error) {
	var wout strings.Builder
	var werr bytes.Buffer
	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", r.dir}, args...)...)
	cmd.Stdout = &wout
	cmd.Stderr = &werr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("running git command %v: %w\n%s", cmd, err, werr.String())
	}
	return wout.String(), nil
}
