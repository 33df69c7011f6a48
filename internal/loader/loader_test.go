// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package loader

import (
	"bytes"
	"context"
	"errors"
	iofs "io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"

	"gopkg.microglot.org/afm.go/internal/afm"
	"gopkg.microglot.org/afm.go/internal/exc"
	"gopkg.microglot.org/afm.go/internal/fs"
)

const courier = `StartFontMetrics 4.1
Comment Core 14
FontName Courier
IsFixedPitch true
StartCharMetrics 2
C 32 ; WX 600 ; N space ; B 0 0 0 0 ;
C 33 ; WX 600 ; N exclam ; B 236 -15 364 572 ;
EndCharMetrics
EndFontMetrics
`

const times = `StartFontMetrics 4.1
FontName Times-Roman
StartKernData
StartKernPairs 1
KPX A V -135
EndKernPairs
EndKernData
EndFontMetrics
`

func testLoader(t *testing.T, mapFS fstest.MapFS, opts ...Option) afm.Loader {
	t.Helper()
	local, err := fs.NewFileSystemLocal("/", fs.WithOptionFSFactory(func(string) iofs.FS { return mapFS }))
	require.NoError(t, err)
	opts = append([]Option{
		OptionWithFS(local),
		OptionWithLookupEnv(func(string) (string, bool) { return "", false }),
	}, opts...)
	l, err := New(opts...)
	require.NoError(t, err)
	return l
}

func TestLoad(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "afm.loader")
	defer teardown()

	l := testLoader(t, fstest.MapFS{
		"core14/Courier.afm":     {Data: []byte(courier)},
		"core14/Times-Roman.afm": {Data: []byte(times)},
		"core14/README":          {Data: []byte("metrics for the standard 14 fonts")},
	}, OptionWithMaxConcurrency(1))

	resp, err := l.Load(context.Background(), &afm.LoadRequest{
		Files: []string{"core14", "core14/Courier.afm", "file:///core14/Courier.afm"},
	})
	require.NoError(t, err)
	require.Len(t, resp.Fonts, 2)
	require.Equal(t, "/core14/Courier.afm", resp.Fonts[0].URI)
	require.Equal(t, "Courier", resp.Fonts[0].Document.FontName)
	require.Len(t, resp.Fonts[0].Document.CharMetrics, 2)
	require.Equal(t, "/core14/Times-Roman.afm", resp.Fonts[1].URI)
	v, ok := resp.Fonts[1].Document.Kerning("A", "V")
	require.True(t, ok)
	require.Equal(t, -135.0, v.X)
}

func TestLoadFailures(t *testing.T) {
	t.Parallel()

	reporter := exc.NewReporter(nil)
	l := testLoader(t, fstest.MapFS{
		"Courier.afm": {Data: []byte(courier)},
		"Broken.afm":  {Data: []byte("StartFontMetrics 4.1\nStartCharMetrics 2\nC 32 ; N space ;\nEndCharMetrics\nEndFontMetrics\n")},
		"Myriad.amfm": {Data: []byte("StartMasterFontMetrics 4.0\n")},
		"notes/a.txt": {Data: []byte("")},
	}, OptionWithExcReporter(reporter))

	resp, err := l.Load(context.Background(), &afm.LoadRequest{
		Files: []string{"Courier.afm", "Broken.afm", "Myriad.amfm", "Missing.afm", "notes"},
	})
	require.Error(t, err)
	require.NotNil(t, resp)
	require.Len(t, resp.Fonts, 1)
	require.Equal(t, "Courier", resp.Fonts[0].Document.FontName)

	var me MultiException
	require.True(t, errors.As(err, &me))
	require.Len(t, me, 4)
	codes := make(map[string]int)
	for _, e := range me {
		codes[e.Code()] = codes[e.Code()] + 1
	}
	require.Equal(t, map[string]int{
		exc.CodeCountMismatch:         1,
		exc.CodeUnsupportedFileFormat: 1,
		exc.CodeFileNotFound:          2,
	}, codes)
	require.Len(t, reporter.Reported(), 4)
	require.Equal(t, len(me)-1, strings.Count(err.Error(), "; "))
}

func TestLoadDumpCommands(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	l := testLoader(t, fstest.MapFS{
		"Courier.afm": {Data: []byte(courier)},
	}, OptionWithCommandOutput(&out))

	_, err := l.Load(context.Background(), &afm.LoadRequest{
		Files:        []string{"Courier.afm"},
		DumpCommands: true,
		Keywords:     []string{"FontName", "StartCharMetrics"},
	})
	require.NoError(t, err)
	require.Equal(t, "/Courier.afm\tFontName Courier\n/Courier.afm\tStartCharMetrics 2\n", out.String())
}

func TestLoadRepeated(t *testing.T) {
	t.Parallel()

	reporter := exc.NewReporter(nil)
	l := testLoader(t, fstest.MapFS{
		"Courier.afm": {Data: []byte(courier)},
		"Broken.afm":  {Data: []byte("StartFontMetrics 4.1\nEndFontMetric\n")},
	}, OptionWithExcReporter(reporter))

	_, err := l.Load(context.Background(), &afm.LoadRequest{Files: []string{"Broken.afm"}})
	var me MultiException
	require.True(t, errors.As(err, &me))
	require.Len(t, me, 1)
	require.Contains(t, me[0].Error(), "did you mean EndFontMetrics")

	resp, err := l.Load(context.Background(), &afm.LoadRequest{Files: []string{"Courier.afm"}})
	require.NoError(t, err)
	require.Len(t, resp.Fonts, 1)

	_, err = l.Load(context.Background(), &afm.LoadRequest{Files: []string{"Courier.afm", "Missing.afm"}})
	require.True(t, errors.As(err, &me))
	require.Len(t, me, 1)
	require.Equal(t, exc.CodeFileNotFound, me[0].Code())

	require.Len(t, reporter.Reported(), 2)
}

func TestMultiExceptionEmpty(t *testing.T) {
	t.Parallel()

	require.NotPanics(t, func() {
		require.Equal(t, "no exceptions", MultiException{}.Error())
	})
}

func TestOptions(t *testing.T) {
	t.Parallel()

	_, err := New(OptionWithMaxConcurrency(0))
	require.Error(t, err)
}
