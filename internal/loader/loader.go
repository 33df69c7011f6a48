// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"strings"
	"sync"

	"gopkg.microglot.org/afm.go/internal/afm"
	"gopkg.microglot.org/afm.go/internal/exc"
	"gopkg.microglot.org/afm.go/internal/fs"
	"gopkg.microglot.org/afm.go/internal/iter"
	"gopkg.microglot.org/afm.go/internal/parser"
	"gopkg.microglot.org/afm.go/internal/target"
)

type Option func(l *loader) error

func OptionWithFS(fs afm.FileSystem) Option {
	return func(l *loader) error {
		l.FS = fs
		return nil
	}
}

func OptionWithLookupEnv(lookupEnv func(string) (string, bool)) Option {
	return func(l *loader) error {
		l.LookupENV = lookupEnv
		return nil
	}
}

func OptionWithExcReporter(reporter exc.Reporter) Option {
	return func(l *loader) error {
		l.Reporter = reporter
		return nil
	}
}

// OptionWithMaxConcurrency bounds how many files are parsed at once. The
// default is the smaller of GOMAXPROCS and the number of CPUs.
func OptionWithMaxConcurrency(n int) Option {
	return func(l *loader) error {
		if n < 1 {
			return fmt.Errorf("max concurrency must be positive, got %d", n)
		}
		l.MaxConcurrency = n
		return nil
	}
}

// OptionWithCommandOutput sets where command dumps are written. The default
// is os.Stdout.
func OptionWithCommandOutput(w io.Writer) Option {
	return func(l *loader) error {
		l.Output = w
		return nil
	}
}

func New(opts ...Option) (afm.Loader, error) {
	l := &loader{}
	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}
	if l.LookupENV == nil {
		l.LookupENV = os.LookupEnv
	}
	if l.FS == nil {
		dfs, err := NewDefaultFS(l.LookupENV)
		if err != nil {
			return nil, err
		}
		l.FS = dfs
	}
	if l.MaxConcurrency == 0 {
		max := runtime.GOMAXPROCS(-1)
		cpus := runtime.NumCPU()
		if max > cpus {
			max = cpus
		}
		l.MaxConcurrency = max
	}
	if l.Semaphore == nil {
		l.Semaphore = newSemaphore(l.MaxConcurrency)
	}
	if l.Reporter == nil {
		l.Reporter = exc.NewReporter(nil)
	}
	if l.Output == nil {
		l.Output = os.Stdout
	}
	return l, nil
}

type loader struct {
	LookupENV      func(string) (string, bool)
	FS             afm.FileSystem
	MaxConcurrency int
	Semaphore      *semaphore
	Reporter       exc.Reporter
	Output         io.Writer
	outputLock     sync.Mutex
}

// Load parses every file the request names. A failing file does not stop
// the others: the response holds every font that parsed and the error is a
// MultiException listing each failure of this call. Every failure is also
// forwarded to the configured reporter.
func (self *loader) Load(ctx context.Context, req *afm.LoadRequest) (*afm.LoadResponse, error) {
	reporter := exc.NewScopedReporter(self.Reporter)
	p := parser.NewParser(reporter)
	files := make([]afm.File, 0, len(req.Files))
	for _, f := range req.Files {
		uri := target.Normalize(f)
		in, err := self.FS.Open(ctx, uri)
		if err != nil {
			_ = reporter.Report(asException(uri, err))
			continue
		}
		for _, inf := range in {
			if inf.Kind(ctx) == afm.FileKindNone {
				continue
			}
			files = append(files, inf)
		}
	}

	loaded := &sync.Map{}
	results := make(chan fileResult, len(files))
	for _, file := range files {
		go func(file afm.File) {
			font, err := self.loadFile(ctx, p, reporter, file, loaded, req)
			results <- fileResult{font, err}
		}(file)
	}

	fonts := make([]*afm.Font, 0, len(files))
	for x := 0; x < len(files); x = x + 1 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case result := <-results:
			if result.err != nil {
				tracer().Debugf("load failed: %s", result.err)
				continue
			}
			if result.font != nil {
				fonts = append(fonts, result.font)
			}
		}
	}
	sort.Slice(fonts, func(i, j int) bool {
		return fonts[i].URI < fonts[j].URI
	})

	caught := reporter.Reported()
	if len(caught) > 0 {
		return &afm.LoadResponse{
			Fonts: fonts,
		}, MultiException(caught)
	}
	return &afm.LoadResponse{
		Fonts: fonts,
	}, nil
}

func (self *loader) loadFile(ctx context.Context, p *parser.Parser, reporter exc.Reporter, file afm.File, loaded *sync.Map, req *afm.LoadRequest) (*afm.Font, error) {
	self.Semaphore.Lock()
	defer self.Semaphore.Unlock()
	uri := file.Path(ctx)
	if _, ok := loaded.LoadOrStore(uri, true); ok {
		return nil, nil
	}
	if kind := file.Kind(ctx); kind != afm.FileKindAFM {
		e := exc.New(exc.Location{URI: uri}, exc.CodeUnsupportedFileFormat, fmt.Sprintf("unsupported file format %s", kind))
		return nil, reporter.Report(e)
	}
	b, err := fs.ReadAll(ctx, file)
	if err != nil {
		e := asException(uri, err)
		tracer().Errorf("reading %s: %s", uri, e)
		return nil, reporter.Report(e)
	}
	if req.DumpCommands {
		self.dumpCommands(ctx, uri, b, req.Keywords)
	}
	doc, err := p.Parse(ctx, uri, b)
	if err != nil {
		tracer().Errorf("%s", err)
		return nil, err
	}
	tracer().Infof("loaded %s: %s with %d glyphs", uri, doc.FontName, len(doc.CharMetrics))
	return &afm.Font{URI: uri, Document: doc}, nil
}

// dumpCommands writes the command stream of one file, optionally restricted
// to the given keywords. Its failures are left to the parse that follows.
func (self *loader) dumpCommands(ctx context.Context, uri string, b []byte, keywords []string) {
	var commands afm.Iterator[parser.Command] = parser.NewParser(exc.NewReporter(nil)).Commands(ctx, uri, b)
	if len(keywords) > 0 {
		keep := make(map[string]bool, len(keywords))
		for _, k := range keywords {
			keep[k] = true
		}
		commands = iter.NewIteratorFilter[parser.Command](commands, iter.FilterFunc[parser.Command](func(ctx context.Context, c parser.Command) bool {
			return keep[c.Keyword()]
		}))
	}
	dump := iter.Collect(ctx, commands)
	_ = commands.Close(ctx)

	self.outputLock.Lock()
	defer self.outputLock.Unlock()
	for _, c := range dump {
		fmt.Fprintf(self.Output, "%s\t%s\n", uri, c)
	}
}

func asException(uri string, err error) exc.Exception {
	var e exc.Exception
	if errors.As(err, &e) {
		return e
	}
	return exc.WrapUnknown(exc.Location{URI: uri}, err)
}

type fileResult struct {
	font *afm.Font
	err  error
}

// MultiException carries every exception reported during a load.
type MultiException []exc.Exception

func (self MultiException) Error() string {
	if len(self) == 0 {
		return "no exceptions"
	}
	var b strings.Builder
	for _, err := range self[:len(self)-1] {
		b.WriteString(err.Error())
		b.WriteString("; ")
	}
	b.WriteString(self[len(self)-1].Error())
	return b.String()
}
