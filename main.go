// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
	"github.com/spf13/pflag"

	"gopkg.microglot.org/afm.go/internal/afm"
	"gopkg.microglot.org/afm.go/internal/fs"
	"gopkg.microglot.org/afm.go/internal/loader"
)

type opts struct {
	Roots        []string
	DumpCommands bool
	DumpTree     bool
	Keywords     []string
	Concurrency  int
	JSON         bool
	Trace        string
}

// tracer traces with key 'afm.cli'
func tracer() tracing.Trace {
	return tracing.Select("afm.cli")
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	op := &opts{}
	flags := pflag.NewFlagSet("afmc", pflag.PanicOnError)
	flags.StringSliceVar(&op.Roots, "root", []string{"."}, "Root search paths for metrics files.")
	flags.BoolVar(&op.DumpCommands, "dump-commands", false, "Output the command stream of each file as it is parsed")
	flags.BoolVar(&op.DumpTree, "dump-tree", false, "Output the document tree after parsing")
	flags.StringSliceVar(&op.Keywords, "keyword", nil, "Only dump commands with these keywords")
	flags.IntVar(&op.Concurrency, "concurrency", 0, "Maximum number of files parsed at once, 0 picks one per CPU")
	flags.BoolVar(&op.JSON, "json", false, "Output the parsed documents as JSON")
	flags.StringVar(&op.Trace, "trace", "Error", "Trace level [Debug|Info|Error]")
	_ = flags.Parse(os.Args[1:])
	targets := flags.Args()

	if err := configureTracing(op.Trace); err != nil {
		fmt.Fprintln(os.Stderr, "error configuring tracing:", err.Error())
		os.Exit(1)
	}

	f, err := loader.NewDefaultFS(os.LookupEnv)
	if err != nil {
		panic(err)
	}

	mf := make(fs.FileSystemMulti, 0, len(op.Roots)+len(f))
	for _, root := range op.Roots {
		absRoot, errAbs := filepath.Abs(root)
		if errAbs != nil {
			panic(errAbs.Error())
		}
		rf, err := fs.NewFileSystemLocal(absRoot)
		if err != nil {
			panic(err.Error())
		}
		mf = append(mf, rf)
	}
	mf = append(mf, f...)

	lopts := []loader.Option{
		loader.OptionWithLookupEnv(os.LookupEnv),
		loader.OptionWithFS(mf),
	}
	if op.Concurrency > 0 {
		lopts = append(lopts, loader.OptionWithMaxConcurrency(op.Concurrency))
	}
	l, err := loader.New(lopts...)
	if err != nil {
		panic(err)
	}

	out, err := l.Load(ctx, &afm.LoadRequest{
		Files:        targets,
		DumpCommands: op.DumpCommands,
		Keywords:     op.Keywords,
	})
	failed := false
	if err != nil {
		var me loader.MultiException
		if !errors.As(err, &me) {
			panic(err)
		}
		for _, err := range me {
			fmt.Fprint(os.Stderr, pterm.Error.Sprintln(err.Error()))
		}
		failed = true
	}
	tracer().Infof("loaded %d of %d targets", len(out.Fonts), len(targets))

	switch {
	case op.JSON:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out.Fonts); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
	case op.DumpTree:
		for _, font := range out.Fonts {
			if err := pterm.DefaultTree.WithRoot(documentTree(font)).Render(); err != nil {
				fmt.Fprintln(os.Stderr, err.Error())
				os.Exit(1)
			}
		}
	case !op.DumpCommands:
		if len(out.Fonts) > 0 {
			if err := pterm.DefaultTable.WithHasHeader().WithData(summary(out.Fonts)).Render(); err != nil {
				fmt.Fprintln(os.Stderr, err.Error())
				os.Exit(1)
			}
		}
	}
	if failed {
		os.Exit(1)
	}
}

func configureTracing(level string) error {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":  "go",
		"trace.afm.cli":    level,
		"trace.afm.loader": level,
		"trace.afm.parser": level,
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return err
	}
	tracing.SetTraceSelector(trace2go.Selector())
	return nil
}
