// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command vizrec recommends visual encodings from hand-assigned colors
// and sizes.
//
// vizrec loads a CSV dataset and then runs a script of commands, one
// per line, from the named script files or standard input. Each line
// is split into words like a shell command line. The commands are:
//
//	assign FIELD VALUE ID...   assign VALUE to records ID... in FIELD
//	clear FIELD ID...          remove the assignments of ID...
//	reset FIELD [ID...]        remove ID..., or every assignment
//	groups FIELD               print FIELD's groups
//	recs [FIELD]               print recommended attributes
//	scores FIELD               print every attribute's score
//	scale FIELD ATTR X...      print the scale of ATTR at each X
//	ticks FIELD ATTR [N]       print legend ticks of ATTR's scale
//	plot FILE [X Y]            write an SVG scatterplot to FILE
//	load PATH                  replace the dataset and reset
//
// FIELD is "color" or "size". Colors are written hsl(H, S%, L%) or as
// #rrggbb and sizes are numbers. An ID may also be a range LO-HI,
// which selects the records whose IDs fall in it.
// Lines starting with # are ignored.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/aclements/vizrec/dataset"
	"github.com/aclements/vizrec/recommend"
)

func main() {
	log.SetPrefix("vizrec: ")
	log.SetFlags(0)

	var (
		flagConfig  = flag.String("config", "", "read YAML configuration from `file`")
		flagID      = flag.String("id", "", "use `column` as record IDs (default: row index)")
		flagK       = flag.Int("k", -1, "recommend at most `n` attributes per field (default from config)")
		flagOut     = flag.String("o", "", "write output to `file` (default: stdout)")
		flagX       = flag.String("x", "", "default plot X `column` (default: first numeric)")
		flagY       = flag.String("y", "", "default plot Y `column` (default: second numeric)")
		flagVerbose = flag.Bool("v", false, "log recomputations to stderr")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] data.csv [scripts...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg := recommend.DefaultConfig()
	if *flagConfig != "" {
		var err error
		cfg, err = recommend.LoadConfig(*flagConfig)
		if err != nil {
			log.Fatal(err)
		}
	}
	if *flagK >= 0 {
		cfg.K = *flagK
	}

	level := slog.LevelWarn
	if *flagVerbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	d, err := loadFile(flag.Arg(0), *flagID)
	if err != nil {
		log.Fatal(err)
	}

	// Prepare for output.
	f := os.Stdout
	if *flagOut != "" {
		f, err = os.Create(*flagOut)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
	}

	s, err := newSession(d, cfg, f, logger)
	if err != nil {
		log.Fatal(err)
	}
	s.idCol = *flagID
	s.plotX, s.plotY = *flagX, *flagY

	scripts := flag.Args()[1:]
	if len(scripts) == 0 {
		scripts = []string{"-"}
	}
	for _, path := range scripts {
		func() {
			in := os.Stdin
			name := "<stdin>"
			if path != "-" {
				in, err = os.Open(path)
				if err != nil {
					log.Fatal(err)
				}
				defer in.Close()
				name = path
			}
			if err := s.run(name, in); err != nil {
				log.Fatal(err)
			}
		}()
	}
}

func loadFile(path, idCol string) (*dataset.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	d, err := dataset.Load(f, idCol)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}
