package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imagefilter/config"
	"imagefilter/types"
)

func TestParseArguments(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		a, err := ParseArguments(nil)
		require.NoError(t, err)
		assert.Equal(t, types.NodeImage, a.NodeType)
		assert.Zero(t, a.Verbosity)
		assert.Empty(t, a.Directory)
		assert.Empty(t, a.ScoreFilters)
	})

	t.Run("long and short flags", func(t *testing.T) {
		a, err := ParseArguments([]string{
			"--dir=/pics",
			"-m", "metas.json",
			"--score", "score >= 5",
			"-s", "< 9",
			"--width=200..1000",
			"--height", "..800",
			"-t", "dir",
			"-c", "/etc/imagefilter.toml",
			"--workers", "4",
			"--logfile", "run.log",
			"-vv",
		})
		require.NoError(t, err)
		assert.Equal(t, "/pics", a.Directory)
		assert.Equal(t, "metas.json", a.MetadataPath)
		assert.Equal(t, []string{"score >= 5", "< 9"}, a.ScoreFilters)
		assert.Equal(t, "200..1000", a.WidthRange)
		assert.Equal(t, "..800", a.HeightRange)
		assert.Equal(t, types.NodeDirectory, a.NodeType)
		assert.Equal(t, "/etc/imagefilter.toml", a.ConfigPath)
		assert.Equal(t, 4, a.Workers)
		assert.Equal(t, "run.log", a.LogFile)
		assert.Equal(t, 2, a.Verbosity)
	})

	t.Run("positional directory", func(t *testing.T) {
		a, err := ParseArguments([]string{"-v", "-v", "-v", "/pics"})
		require.NoError(t, err)
		assert.Equal(t, "/pics", a.Directory)
		assert.Equal(t, 3, a.Verbosity)
	})

	t.Run("directory before flags", func(t *testing.T) {
		a, err := ParseArguments([]string{"/pics", "--width=1920..", "--height=1080.."})
		require.NoError(t, err)
		assert.Equal(t, "/pics", a.Directory)
		assert.Equal(t, "1920..", a.WidthRange)
		assert.Equal(t, "1080..", a.HeightRange)

		a, err = ParseArguments([]string{"/pics", "-m", "metas.json", "-s", "score >= 5.0", "-s", "score < 9", "-vv"})
		require.NoError(t, err)
		assert.Equal(t, "/pics", a.Directory)
		assert.Equal(t, "metas.json", a.MetadataPath)
		assert.Equal(t, []string{"score >= 5.0", "score < 9"}, a.ScoreFilters)
		assert.Equal(t, 2, a.Verbosity)
	})

	t.Run("directory between flags", func(t *testing.T) {
		a, err := ParseArguments([]string{"-q", "/pics", "--type=dir"})
		require.NoError(t, err)
		assert.Equal(t, "/pics", a.Directory)
		assert.True(t, a.Quiet)
		assert.Equal(t, types.NodeDirectory, a.NodeType)
	})

	t.Run("help after directory", func(t *testing.T) {
		a, err := ParseArguments([]string{"/pics", "-h"})
		require.NoError(t, err)
		assert.True(t, a.Help)
	})

	t.Run("double dash ends flags", func(t *testing.T) {
		a, err := ParseArguments([]string{"-q", "--", "-pics"})
		require.NoError(t, err)
		assert.Equal(t, "-pics", a.Directory)
		assert.True(t, a.Quiet)
	})

	t.Run("generate config and help", func(t *testing.T) {
		a, err := ParseArguments([]string{"--generate-config", "-q"})
		require.NoError(t, err)
		assert.True(t, a.GenerateConfig)
		assert.True(t, a.Quiet)

		a, err = ParseArguments([]string{"-h"})
		require.NoError(t, err)
		assert.True(t, a.Help)
	})

	t.Run("errors", func(t *testing.T) {
		for _, args := range [][]string{
			{"--type=file"},
			{"--unknown"},
			{"--dir=/a", "/b"},
			{"/a", "/b"},
			{"/a", "-q", "/b"},
			{"/a", "--unknown"},
			{"--workers=-1"},
			{"--workers=many"},
		} {
			_, err := ParseArguments(args)
			assert.Error(t, err, "%v", args)
		}
	})
}

func TestOverrides(t *testing.T) {
	a := Arguments{
		Directory:    "/pics",
		MetadataPath: "m.yaml",
		ScoreFilters: []string{"> 1"},
		WidthRange:   "1..2",
		HeightRange:  "3..4",
		Workers:      2,
	}
	assert.Equal(t, config.Overrides{
		Directory:    "/pics",
		MetadataPath: "m.yaml",
		ScoreFilters: []string{"> 1"},
		WidthRange:   "1..2",
		HeightRange:  "3..4",
		Workers:      2,
	}, a.Overrides())
}

func TestPrintUsage(t *testing.T) {
	var buf bytes.Buffer
	PrintUsage(&buf)
	assert.Contains(t, buf.String(), "--score")
	assert.Contains(t, buf.String(), "--generate-config")
}
