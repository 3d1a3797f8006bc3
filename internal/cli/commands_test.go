package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harun/plotpipe/pkg/gnuplot"
	"github.com/harun/plotpipe/pkg/numeric"
	"github.com/harun/plotpipe/pkg/plotspec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestPlotCommand(t *testing.T) {
	tmp := isolatedTempFiles(t)
	engine, transcript := recordingEngine(t)
	data := writeFile(t, t.TempDir(), "data.dat", "# x y\n0 0\n\n1 1\n")

	_, err := runCLI(t, "--engine", engine, "plot", "--title", "T", data)
	require.NoError(t, err)

	lines := readTranscript(t, transcript)
	require.Len(t, lines, 4)
	assert.Equal(t, `set title "T"`, lines[0])
	assert.Equal(t, "set xrange [-0.05:1.05]", lines[1])
	assert.Equal(t, "set yrange [-0.05:1.05]", lines[2])
	assert.True(t, strings.HasPrefix(lines[3], `plot "`+tmp), lines[3])
	assert.True(t, strings.HasSuffix(lines[3], `" title "data.dat" with lines`), lines[3])

	entries, err := os.ReadDir(tmp)
	require.NoError(t, err)
	assert.Empty(t, entries, "temporary files must be removed on exit")
}

func TestPlotCommand_Overlay(t *testing.T) {
	isolatedTempFiles(t)
	engine, transcript := recordingEngine(t)
	dir := t.TempDir()
	a := writeFile(t, dir, "a.dat", "0 1 10\n1 2 20\n")
	b := writeFile(t, dir, "b.dat", "0 3 30\n1 4 40\n")

	_, err := runCLI(t, "--engine", engine, "plot", "--columns", "1:3", "--style", "points", a, b)
	require.NoError(t, err)

	lines := readTranscript(t, transcript)
	require.Len(t, lines, 6)
	assert.Equal(t, "set yrange [9.5:20.5]", lines[1])
	assert.Contains(t, lines[2], `plot "`)
	assert.Contains(t, lines[2], `title "a.dat" with points`)
	assert.Equal(t, "set yrange [29.5:40.5]", lines[4])
	assert.True(t, strings.HasPrefix(lines[5], "replot "), lines[5])
	assert.Contains(t, lines[5], `title "b.dat" with points`)
}

func TestPlotCommand_Errors(t *testing.T) {
	t.Run("bad columns", func(t *testing.T) {
		isolatedTempFiles(t)
		engine, _ := recordingEngine(t)
		data := writeFile(t, t.TempDir(), "data.dat", "0 0\n")

		_, err := runCLI(t, "--engine", engine, "plot", "--columns", "x", data)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid columns")
	})

	t.Run("missing data file", func(t *testing.T) {
		isolatedTempFiles(t)
		engine, transcript := recordingEngine(t)

		_, err := runCLI(t, "--engine", engine, "plot", filepath.Join(t.TempDir(), "missing.dat"))
		require.Error(t, err)
		assert.ErrorIs(t, err, plotspec.ErrDataFile)
		assert.Empty(t, readTranscript(t, transcript))
	})

	t.Run("missing engine", func(t *testing.T) {
		isolatedTempFiles(t)
		data := writeFile(t, t.TempDir(), "data.dat", "0 0\n")

		_, err := runCLI(t, "--engine", "plotpipe-no-such-engine", "plot", data)
		assert.ErrorIs(t, err, gnuplot.ErrSpawnFailure)
	})

	t.Run("engine exits with failure", func(t *testing.T) {
		tmp := isolatedTempFiles(t)
		data := writeFile(t, t.TempDir(), "data.dat", "0 0\n1 1\n")

		_, err := runCLI(t, "--engine", `sh -c 'cat > /dev/null; exit 3'`, "plot", data)
		assert.ErrorIs(t, err, gnuplot.ErrCloseFailure)

		entries, err := os.ReadDir(tmp)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestFuncCommand(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		out, err := runCLI(t, "func", "--list")
		require.NoError(t, err)

		names := strings.Fields(out)
		assert.Contains(t, names, "sin")
		assert.Contains(t, names, "square")
	})

	t.Run("plots sampled functions", func(t *testing.T) {
		isolatedTempFiles(t)
		engine, transcript := recordingEngine(t)

		_, err := runCLI(t, "--engine", engine, "func", "square", "cube",
			"--low", "0", "--high", "1", "--step", "0.5", "--ylabel", "f(x)")
		require.NoError(t, err)

		lines := readTranscript(t, transcript)
		require.Len(t, lines, 7)
		assert.Equal(t, `set ylabel "f(x)"`, lines[0])
		assert.Equal(t, "set xrange [-0.025:0.525]", lines[1])
		assert.Contains(t, lines[3], `title "square" with lines`)
		assert.True(t, strings.HasPrefix(lines[6], "replot "), lines[6])
		assert.Contains(t, lines[6], `title "cube" with lines`)
	})

	t.Run("unknown function", func(t *testing.T) {
		isolatedTempFiles(t)
		engine, transcript := recordingEngine(t)

		_, err := runCLI(t, "--engine", engine, "func", "nope")
		assert.ErrorIs(t, err, plotspec.ErrUnknownFunction)
		assert.Empty(t, readTranscript(t, transcript))
	})

	t.Run("range with too many points", func(t *testing.T) {
		isolatedTempFiles(t)
		engine, _ := recordingEngine(t)

		_, err := runCLI(t, "--engine", engine, "func", "sin", "--low", "0", "--high", "1e15", "--step", "1")
		assert.ErrorIs(t, err, numeric.ErrInvalidRange)
	})

	t.Run("no function named", func(t *testing.T) {
		_, err := runCLI(t, "func")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "available")
	})
}

func TestHistCommand(t *testing.T) {
	isolatedTempFiles(t)
	engine, transcript := recordingEngine(t)
	data := writeFile(t, t.TempDir(), "samples.dat", "1\n2\n2\n3\n")

	_, err := runCLI(t, "--engine", engine, "hist", "--bins", "2", "--bar-style", "fill pattern 2", data)
	require.NoError(t, err)

	lines := readTranscript(t, transcript)
	require.Len(t, lines, 5)
	assert.Equal(t, []string{
		"set style data histogram",
		"set style histogram cluster gap 1",
		"set style fill pattern 2",
		"set key autotitle columnhead",
	}, lines[:4])
	assert.True(t, strings.HasPrefix(lines[4], "plot for [COL=2:2] "), lines[4])
	assert.True(t, strings.HasSuffix(lines[4], " using COL:xticlabels(1)"), lines[4])
}

func TestHistCommand_BadColumn(t *testing.T) {
	isolatedTempFiles(t)
	engine, _ := recordingEngine(t)
	data := writeFile(t, t.TempDir(), "samples.dat", "1\n2\n")

	_, err := runCLI(t, "--engine", engine, "hist", "--column", "2", data)
	assert.ErrorIs(t, err, plotspec.ErrDataFile)
}

func TestRenderCommand(t *testing.T) {
	t.Run("valid descriptor", func(t *testing.T) {
		isolatedTempFiles(t)
		engine, transcript := recordingEngine(t)
		dir := t.TempDir()
		writeFile(t, dir, "points.dat", "0 0\n2 4\n")
		descriptor := writeFile(t, dir, "figure.yaml", `
title: Growth
commands:
  - set grid
series:
  - title: measured
    file: points.dat
`)

		_, err := runCLI(t, "--engine", engine, "render", descriptor)
		require.NoError(t, err)

		lines := readTranscript(t, transcript)
		require.Len(t, lines, 5)
		assert.Equal(t, `set title "Growth"`, lines[0])
		assert.Equal(t, "set grid", lines[1])
		assert.Equal(t, "set xrange [-0.1:2.1]", lines[2])
		assert.Equal(t, "set yrange [-0.2:4.2]", lines[3])
		assert.Contains(t, lines[4], `title "measured" with lines`)
	})

	t.Run("invalid descriptor", func(t *testing.T) {
		isolatedTempFiles(t)
		engine, transcript := recordingEngine(t)
		descriptor := writeFile(t, t.TempDir(), "figure.json", `{"title": "nothing to draw"}`)

		_, err := runCLI(t, "--engine", engine, "render", descriptor)
		assert.ErrorIs(t, err, plotspec.ErrInvalidFigure)

		_, statErr := os.Stat(transcript)
		assert.True(t, os.IsNotExist(statErr), "engine must not start for an invalid descriptor")
	})

	t.Run("unsupported extension", func(t *testing.T) {
		descriptor := writeFile(t, t.TempDir(), "figure.toml", "")

		_, err := runCLI(t, "render", descriptor)
		assert.ErrorIs(t, err, plotspec.ErrUnsupportedFormat)
	})
}

func TestRenderCommand_Journal(t *testing.T) {
	isolatedTempFiles(t)
	engine, _ := recordingEngine(t)
	journal := filepath.Join(t.TempDir(), "journal.jsonl")
	t.Setenv("PLOTPIPE_LOGGING_JOURNAL", journal)

	_, err := runCLI(t, "--engine", engine, "func", "sin", "--low", "0", "--high", "1", "--step", "0.5")
	require.NoError(t, err)

	data, err := os.ReadFile(journal)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `"action":"render"`)
	assert.Contains(t, lines[0], `"status":"success"`)
	assert.Contains(t, lines[0], `"figure":"func"`)
}

func TestVersionCommand(t *testing.T) {
	script := writeFile(t, t.TempDir(), "fake-gnuplot", "#!/bin/sh\necho 'gnuplot 5.4 patchlevel 2'\n")
	require.NoError(t, os.Chmod(script, 0755))

	t.Run("reports engine version", func(t *testing.T) {
		out, err := runCLI(t, "--engine", script, "version")
		require.NoError(t, err)

		assert.Contains(t, out, "plotpipe version "+GetVersion())
		assert.Contains(t, out, "engine: "+script+" 5.4.2")
	})

	t.Run("satisfied constraint", func(t *testing.T) {
		t.Setenv("PLOTPIPE_ENGINE_MIN_VERSION", ">= 4.6")
		out, err := runCLI(t, "--engine", script, "version")
		require.NoError(t, err)
		assert.Contains(t, out, `engine satisfies ">= 4.6"`)
	})

	t.Run("unsatisfied constraint", func(t *testing.T) {
		t.Setenv("PLOTPIPE_ENGINE_MIN_VERSION", ">= 6")
		out, err := runCLI(t, "--engine", script, "version")
		assert.ErrorIs(t, err, gnuplot.ErrEngineVersion)
		assert.Contains(t, out, "does not satisfy")
	})

	t.Run("engine unavailable", func(t *testing.T) {
		out, err := runCLI(t, "--engine", "plotpipe-no-such-engine", "version")
		require.NoError(t, err)
		assert.Contains(t, out, "engine: unavailable")
	})
}

func TestConfigureCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "plotpipe.yaml")

	out, err := runCLI(t, "--config", path, "--engine", "gnuplot -p", "configure")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration saved to: "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "gnuplot -p")

	_, err = runCLI(t, "--config", path, "configure")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = runCLI(t, "--config", path, "--log-level", "debug", "configure", "--force")
	require.NoError(t, err)

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "debug")
	assert.Contains(t, string(data), "gnuplot -p", "settings loaded from the file are kept")
}

func TestWatchCommand(t *testing.T) {
	isolatedTempFiles(t)
	engine, transcript := recordingEngine(t)
	data := writeFile(t, t.TempDir(), "live.dat", "0 0\n1 1\n")

	go func() {
		time.Sleep(400 * time.Millisecond)
		_ = os.WriteFile(data, []byte("0 0\n1 2\n"), 0644)
	}()

	out, err := runCLI(t, "--engine", engine, "watch", "--for", "1500ms", "--debounce", "50ms", data)
	require.NoError(t, err)

	assert.Contains(t, out, "Watching 1 file(s)")
	assert.Contains(t, out, "Stopped after 1 redraw(s)")

	lines := readTranscript(t, transcript)
	require.Len(t, lines, 7)
	assert.Equal(t, "reset", lines[3])
	assert.Equal(t, "set yrange [-0.1:2.1]", lines[5])
	assert.True(t, strings.HasPrefix(lines[6], "plot "), "a redraw starts a fresh plot: %s", lines[6])
}

func TestWatchCommand_Descriptor(t *testing.T) {
	isolatedTempFiles(t)
	engine, transcript := recordingEngine(t)
	descriptor := writeFile(t, t.TempDir(), "figure.yaml", `
functions:
  range: {low: 0, high: 1, step: 0.5}
  plots:
    - name: sin
`)

	go func() {
		time.Sleep(400 * time.Millisecond)
		_ = os.WriteFile(descriptor, []byte(`
title: Edited
functions:
  range: {low: 0, high: 1, step: 0.5}
  plots:
    - name: cos
`), 0644)
	}()

	out, err := runCLI(t, "--engine", engine, "watch", "--for", "1500ms", "--debounce", "50ms", descriptor)
	require.NoError(t, err)
	assert.Contains(t, out, "Watching 1 file(s)")

	lines := readTranscript(t, transcript)
	require.Len(t, lines, 8)
	assert.Contains(t, lines[2], `title "sin"`)
	assert.Equal(t, "reset", lines[3])
	assert.Equal(t, `set title "Edited"`, lines[4])
	assert.Contains(t, lines[7], `title "cos"`)
}
