package filter

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"imagefilter/types"
)

// Operator is a numeric comparison applied to a score
type Operator string

const (
	OpLess         Operator = "<"
	OpLessEqual    Operator = "<="
	OpEqual        Operator = "="
	OpNotEqual     Operator = "!="
	OpGreaterEqual Operator = ">="
	OpGreater      Operator = ">"
)

// longest spellings first so "<=" is not read as "<"
var operatorSpellings = []struct {
	text string
	op   Operator
}{
	{"<=", OpLessEqual},
	{">=", OpGreaterEqual},
	{"==", OpEqual},
	{"!=", OpNotEqual},
	{"<", OpLess},
	{">", OpGreater},
	{"=", OpEqual},
}

// ScoreFilter compares a metadata record's score against a threshold
type ScoreFilter struct {
	Op        Operator
	Threshold float64
}

// String renders the filter in the form accepted by ParseScoreFilter
func (f ScoreFilter) String() string {
	return fmt.Sprintf("score %s %s", f.Op, strconv.FormatFloat(f.Threshold, 'g', -1, 64))
}

// ParseScoreFilter parses expressions like "score >= 5.0", ">=5" or "score!=3"
func ParseScoreFilter(s string) (ScoreFilter, error) {
	expr := strings.TrimSpace(s)
	if len(expr) >= len("score") && strings.EqualFold(expr[:len("score")], "score") {
		expr = strings.TrimSpace(expr[len("score"):])
	}

	for _, spelling := range operatorSpellings {
		rest, ok := strings.CutPrefix(expr, spelling.text)
		if !ok {
			continue
		}
		threshold, err := strconv.ParseFloat(strings.TrimSpace(rest), 64)
		if err != nil || math.IsNaN(threshold) {
			return ScoreFilter{}, fmt.Errorf("invalid score filter %q: bad threshold", s)
		}
		return ScoreFilter{Op: spelling.op, Threshold: threshold}, nil
	}

	return ScoreFilter{}, fmt.Errorf("invalid score filter %q: expected one of < <= = != >= >", s)
}

// ParseScoreFilters parses every expression, failing on the first bad one
func ParseScoreFilters(exprs []string) ([]ScoreFilter, error) {
	filters := make([]ScoreFilter, 0, len(exprs))
	for _, e := range exprs {
		f, err := ParseScoreFilter(e)
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}
	return filters, nil
}

// Eval reports whether meta's score satisfies the filter.
// A record without a usable score never matches.
func Eval(meta types.ImageMeta, f ScoreFilter) bool {
	if !meta.HasScore || math.IsNaN(meta.Score) {
		return false
	}

	switch f.Op {
	case OpLess:
		return meta.Score < f.Threshold
	case OpLessEqual:
		return meta.Score <= f.Threshold
	case OpEqual:
		return meta.Score == f.Threshold
	case OpNotEqual:
		return meta.Score != f.Threshold
	case OpGreaterEqual:
		return meta.Score >= f.Threshold
	case OpGreater:
		return meta.Score > f.Threshold
	default:
		return false
	}
}

// Narrow applies each filter in turn, every pass keeping only the records the previous passes kept
func Narrow(metas []types.ImageMeta, filters []ScoreFilter, logger *zap.Logger) []types.ImageMeta {
	if logger == nil {
		logger = zap.NewNop()
	}

	current := metas
	for i, f := range filters {
		next := make([]types.ImageMeta, 0, len(current))
		for _, meta := range current {
			if Eval(meta, f) {
				next = append(next, meta)
			}
		}
		logger.Info("applied score filter",
			zap.Int("index", i),
			zap.Stringer("filter", f),
			zap.Int("before", len(current)),
			zap.Int("after", len(next)))
		current = next
	}
	return current
}
