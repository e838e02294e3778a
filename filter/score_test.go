package filter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"imagefilter/types"
)

func scored(path string, score float64) types.ImageMeta {
	return types.ImageMeta{Path: path, Score: score, HasScore: true}
}

func TestParseScoreFilter(t *testing.T) {
	cases := map[string]ScoreFilter{
		"score >= 5.0": {Op: OpGreaterEqual, Threshold: 5},
		">=5":          {Op: OpGreaterEqual, Threshold: 5},
		"Score<3":      {Op: OpLess, Threshold: 3},
		"score <= -1":  {Op: OpLessEqual, Threshold: -1},
		"= 2.5":        {Op: OpEqual, Threshold: 2.5},
		"score == 2.5": {Op: OpEqual, Threshold: 2.5},
		"score != 0":   {Op: OpNotEqual, Threshold: 0},
		" >  7 ":       {Op: OpGreater, Threshold: 7},
	}
	for in, want := range cases {
		got, err := ParseScoreFilter(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "score", "5.0", "score => 5", "score >= abc", "score >= NaN", "scored > 1"} {
		_, err := ParseScoreFilter(in)
		assert.Error(t, err, in)
	}
}

func TestScoreFilterStringRoundTrip(t *testing.T) {
	f := ScoreFilter{Op: OpGreaterEqual, Threshold: 5.5}
	assert.Equal(t, "score >= 5.5", f.String())

	back, err := ParseScoreFilter(f.String())
	require.NoError(t, err)
	assert.Equal(t, f, back)
}

func TestParseScoreFilters(t *testing.T) {
	filters, err := ParseScoreFilters([]string{">= 1", "< 9"})
	require.NoError(t, err)
	assert.Len(t, filters, 2)

	_, err = ParseScoreFilters([]string{">= 1", "bogus"})
	assert.Error(t, err)
}

func TestEval(t *testing.T) {
	meta := scored("a.png", 5)

	assert.True(t, Eval(meta, ScoreFilter{Op: OpGreaterEqual, Threshold: 5}))
	assert.False(t, Eval(meta, ScoreFilter{Op: OpGreater, Threshold: 5}))
	assert.True(t, Eval(meta, ScoreFilter{Op: OpLessEqual, Threshold: 5}))
	assert.False(t, Eval(meta, ScoreFilter{Op: OpLess, Threshold: 5}))
	assert.True(t, Eval(meta, ScoreFilter{Op: OpEqual, Threshold: 5}))
	assert.False(t, Eval(meta, ScoreFilter{Op: OpNotEqual, Threshold: 5}))
	assert.False(t, Eval(meta, ScoreFilter{Op: "~", Threshold: 5}))

	t.Run("missing score fails every filter", func(t *testing.T) {
		noScore := types.ImageMeta{Path: "b.jpg"}
		nan := scored("c.gif", math.NaN())
		for _, op := range []Operator{OpLess, OpLessEqual, OpEqual, OpNotEqual, OpGreaterEqual, OpGreater} {
			f := ScoreFilter{Op: op, Threshold: 0}
			assert.False(t, Eval(noScore, f), op)
			assert.False(t, Eval(nan, f), op)
		}
	})
}

func TestNarrow(t *testing.T) {
	metas := []types.ImageMeta{
		scored("a.png", 8.2),
		scored("b.jpg", 3.0),
		scored("c.gif", 6.0),
		{Path: "d.webp"},
	}

	t.Run("conjunctive", func(t *testing.T) {
		got := Narrow(metas, []ScoreFilter{
			{Op: OpGreaterEqual, Threshold: 5},
			{Op: OpLess, Threshold: 8},
		}, nil)
		require.Len(t, got, 1)
		assert.Equal(t, "c.gif", got[0].Path)
	})

	t.Run("idempotent", func(t *testing.T) {
		f := ScoreFilter{Op: OpGreaterEqual, Threshold: 5}
		once := Narrow(metas, []ScoreFilter{f}, nil)
		twice := Narrow(metas, []ScoreFilter{f, f}, nil)
		assert.Equal(t, once, twice)
	})

	t.Run("order does not change the result", func(t *testing.T) {
		a := ScoreFilter{Op: OpGreater, Threshold: 2}
		b := ScoreFilter{Op: OpNotEqual, Threshold: 6}
		assert.Equal(t, Narrow(metas, []ScoreFilter{a, b}, nil), Narrow(metas, []ScoreFilter{b, a}, nil))
	})

	t.Run("no filters keeps everything", func(t *testing.T) {
		assert.Equal(t, metas, Narrow(metas, nil, nil))
	})

	t.Run("logs intermediate counts in order", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		Narrow(metas, []ScoreFilter{
			{Op: OpGreaterEqual, Threshold: 5},
			{Op: OpLess, Threshold: 8},
		}, zap.New(core))

		entries := logs.FilterMessage("applied score filter").AllUntimed()
		require.Len(t, entries, 2)
		assert.Equal(t, int64(4), entries[0].ContextMap()["before"])
		assert.Equal(t, int64(2), entries[0].ContextMap()["after"])
		assert.Equal(t, int64(2), entries[1].ContextMap()["before"])
		assert.Equal(t, int64(1), entries[1].ContextMap()["after"])
	})
}
