// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/aclements/vizrec/classify"
	"github.com/aclements/vizrec/dataset"
	"github.com/aclements/vizrec/interp"
	"github.com/aclements/vizrec/recommend"
	"github.com/aclements/vizrec/selection"
	shellquote "github.com/kballard/go-shellquote"
)

// A session runs script commands against one Coordinator.
type session struct {
	data  *dataset.Dataset
	coord *recommend.Coordinator
	w     io.Writer

	idCol        string
	plotX, plotY string
}

func newSession(d *dataset.Dataset, cfg recommend.Config, w io.Writer, logger *slog.Logger) (*session, error) {
	s := &session{data: d, w: w}
	src := dataset.SourceFunc(func() *dataset.Dataset { return s.data })
	coord, err := recommend.New(src, cfg, recommend.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	s.coord = coord
	return s, nil
}

type command struct {
	args     string
	min, max int // argument count bounds; max < 0 is unbounded
	run      func(s *session, args []string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"assign": {"FIELD VALUE ID...", 2, -1, (*session).assign},
		"clear":  {"FIELD ID...", 1, -1, (*session).clear},
		"reset":  {"FIELD [ID...]", 1, -1, (*session).reset},
		"groups": {"FIELD", 1, 1, (*session).groups},
		"recs":   {"[FIELD]", 0, 1, (*session).recs},
		"scores": {"FIELD", 1, 1, (*session).scores},
		"scale":  {"FIELD ATTR X...", 2, -1, (*session).scale},
		"ticks":  {"FIELD ATTR [N]", 2, 3, (*session).ticks},
		"plot":   {"FILE [X Y]", 1, 3, (*session).plot},
		"load":   {"PATH", 1, 1, (*session).load},
	}
}

// run executes every command read from r. Errors are prefixed with
// name and the line number.
func (s *session) run(name string, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words, err := shellquote.Split(line)
		if err != nil {
			return fmt.Errorf("%s:%d: %w", name, lineno, err)
		}
		if err := s.exec(words); err != nil {
			return fmt.Errorf("%s:%d: %w", name, lineno, err)
		}
	}
	return scanner.Err()
}

// exec executes one command given as words.
func (s *session) exec(words []string) error {
	if len(words) == 0 {
		return nil
	}
	cmd, ok := commands[words[0]]
	if !ok {
		return fmt.Errorf("unknown command %q", words[0])
	}
	args := words[1:]
	if len(args) < cmd.min || (cmd.max >= 0 && len(args) > cmd.max) {
		return fmt.Errorf("usage: %s %s", words[0], cmd.args)
	}
	return cmd.run(s, args)
}

// parseIDs parses record IDs. Each argument is an ID or an inclusive
// range LO-HI, which stands for the records of d whose IDs fall in it.
func parseIDs(d *dataset.Dataset, args []string) (dataset.IDSet, error) {
	ids := dataset.NewIDSet()
	for _, arg := range args {
		if lo, hi, ok := strings.Cut(arg, "-"); ok && lo != "" {
			l, err1 := strconv.Atoi(lo)
			h, err2 := strconv.Atoi(hi)
			if err1 != nil || err2 != nil || l > h {
				return nil, fmt.Errorf("bad ID range %q", arg)
			}
			for _, id := range d.IDs() {
				if int(id) >= l && int(id) <= h {
					ids.Add(id)
				}
			}
			continue
		}
		id, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("bad ID %q", arg)
		}
		ids.Add(dataset.ID(id))
	}
	return ids, nil
}

func (s *session) assign(args []string) error {
	f, err := selection.ParseField(args[0])
	if err != nil {
		return err
	}
	ids, err := parseIDs(s.data, args[2:])
	if err != nil {
		return err
	}
	s.coord.Assign(f, ids, args[1])
	return nil
}

func (s *session) clear(args []string) error {
	f, err := selection.ParseField(args[0])
	if err != nil {
		return err
	}
	ids, err := parseIDs(s.data, args[1:])
	if err != nil {
		return err
	}
	s.coord.Clear(f, ids)
	return nil
}

func (s *session) reset(args []string) error {
	f, err := selection.ParseField(args[0])
	if err != nil {
		return err
	}
	if len(args) == 1 {
		s.coord.Reset(f, nil)
		return nil
	}
	ids, err := parseIDs(s.data, args[1:])
	if err != nil {
		return err
	}
	s.coord.Reset(f, ids)
	return nil
}

func (s *session) groups(args []string) error {
	f, err := selection.ParseField(args[0])
	if err != nil {
		return err
	}
	groups := s.coord.Groups(f)
	if len(groups) == 0 {
		fmt.Fprintf(s.w, "%s: no groups\n", f)
	}
	for _, g := range groups {
		fmt.Fprintf(s.w, "%s\t%s\n", g.Value, g.IDs)
	}
	return nil
}

func (s *session) recs(args []string) error {
	fields := selection.Fields[:]
	if len(args) == 1 {
		f, err := selection.ParseField(args[0])
		if err != nil {
			return err
		}
		fields = []selection.Field{f}
	}
	for _, f := range fields {
		recs := s.coord.Recommendations(f)
		if len(recs) == 0 {
			fmt.Fprintf(s.w, "%s: none\n", f)
			continue
		}
		fmt.Fprintf(s.w, "%s: %s\n", f, strings.Join(recs, " "))
	}
	return nil
}

func (s *session) scores(args []string) error {
	f, err := selection.ParseField(args[0])
	if err != nil {
		return err
	}
	for _, sc := range s.coord.Scores(f) {
		switch {
		case sc.Method == classify.FStatistic:
			fmt.Fprintf(s.w, "%s\tF=%.4g\tp=%.3g\n", sc.Attr, sc.Value, sc.PValue)
		case sc.Value == classify.Unusable:
			fmt.Fprintf(s.w, "%s\tunusable\n", sc.Attr)
		default:
			fmt.Fprintf(s.w, "%s\tratio=%.4g\n", sc.Attr, sc.Value)
		}
	}
	return nil
}

// scaleOf returns the current scale of attr in the named field.
func (s *session) scaleOf(field, attr string) (interp.Scale, error) {
	f, err := selection.ParseField(field)
	if err != nil {
		return nil, err
	}
	sc, ok := s.coord.InterpolatedScale(f, attr)
	if !ok {
		if err := s.coord.ScaleErr(f, attr); err != nil {
			return nil, fmt.Errorf("no %s scale for %s: %w", f, attr, err)
		}
		return nil, fmt.Errorf("%s is not recommended for %s", attr, f)
	}
	return sc, nil
}

func (s *session) scale(args []string) error {
	sc, err := s.scaleOf(args[0], args[1])
	if err != nil {
		return err
	}
	xs := args[2:]
	if len(xs) == 0 {
		min, max := sc.Domain()
		lo, hi := sc.Range()
		fmt.Fprintf(s.w, "%s: [%g, %g] -> [%s, %s]\n", sc.Attr(), min, max, lo, hi)
		return nil
	}
	for _, arg := range xs {
		x, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return fmt.Errorf("bad value %q", arg)
		}
		fmt.Fprintf(s.w, "%g\t%s\n", x, sc.Format(x))
	}
	return nil
}

func (s *session) ticks(args []string) error {
	sc, err := s.scaleOf(args[0], args[1])
	if err != nil {
		return err
	}
	n := 5
	if len(args) == 3 {
		n, err = strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("bad tick count %q", args[2])
		}
	}
	for _, x := range sc.Ticks(n) {
		fmt.Fprintf(s.w, "%g\t%s\n", x, sc.Format(x))
	}
	return nil
}

func (s *session) plot(args []string) error {
	x, y := s.plotX, s.plotY
	if len(args) == 3 {
		x, y = args[1], args[2]
	} else if len(args) != 1 {
		return fmt.Errorf("usage: plot %s", commands["plot"].args)
	}
	f, err := os.Create(args[0])
	if err != nil {
		return err
	}
	if err := s.writePlot(f, x, y); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (s *session) load(args []string) error {
	d, err := loadFile(args[0], s.idCol)
	if err != nil {
		return err
	}
	s.data = d
	s.coord.Reload()
	fmt.Fprintf(s.w, "loaded %d records\n", d.Len())
	return nil
}
