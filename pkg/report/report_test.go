package report

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"gotest.tools/v3/assert"

	"github.com/norio-nomura/uniqview/pkg/bench"
	"github.com/norio-nomura/uniqview/pkg/options"
)

func TestTable(t *testing.T) {
	table := Table([]bench.Measurement{
		{Case: bench.Case{Size: 1000, Repeats: 0.5}, Len: 500, Slices: 500, Rounds: 1, Baseline: 3 * time.Microsecond, Stream: 2 * time.Microsecond, View: time.Microsecond},
	})
	lines := strings.Split(strings.TrimSuffix(table, "\n"), "\n")
	assert.Equal(t, len(lines), 2)
	assert.Assert(t, strings.Contains(lines[0], "speedup"))
	fields := strings.Fields(lines[1])
	assert.DeepEqual(t, fields, []string{"1000", "0.5", "500", "500", "3µs", "2µs", "1µs", "3.00x"})
}

func TestTable_Empty(t *testing.T) {
	assert.Equal(t, strings.Count(Table(nil), "\n"), 1)
}

func TestTruncate(t *testing.T) {
	tests := map[string]struct {
		input     string
		maxLines  int
		maxRunes  int
		want      string
		truncated bool
	}{
		"fits":          {"a\nb\n", 5, 100, "a\nb\n", false},
		"exact lines":   {"a\nb\n", 2, 100, "a\nb\n", false},
		"lines":         {"a\nb\nc\n", 2, 100, "a\nb\n", true},
		"no line limit": {"a\nb\nc\n", 0, 100, "a\nb\nc\n", false},
		"runes":         {"あいうえお", 10, 3, "あいう", true},
		"empty":         {"", 1, 0, "", false},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got, truncated := truncate([]byte(test.input), test.maxLines, test.maxRunes)
			assert.Equal(t, got, test.want)
			assert.Equal(t, truncated, test.truncated)
		})
	}
}

func TestContent(t *testing.T) {
	content := Content("title", "a\nb\n", 10)
	assert.Equal(t, content, "title\n```\na\nb\n```")

	long := strings.Repeat(strings.Repeat("x", 79)+"\n", 100)
	content = Content("title", long, 0)
	assert.Assert(t, utf8.RuneCountInString(content) <= contentMax, "content has %d runes", utf8.RuneCountInString(content))
	assert.Assert(t, strings.HasSuffix(content, "```\n(truncated)"))

	content = Content("title", long, 3)
	assert.Equal(t, strings.Count(content, "\n"), 1+1+3+1)
}

type fakePoster struct {
	content string
	opts    int
	err     error
}

func (f *fakePoster) CreateContent(content string, opts ...rest.RequestOpt) (*discord.Message, error) {
	f.content = content
	f.opts = len(opts)
	if f.err != nil {
		return nil, f.err
	}
	return &discord.Message{Content: content}, nil
}

func TestPost(t *testing.T) {
	p := &fakePoster{}
	f := Post(options.Default(), p, "hello")
	assert.Equal(t, p.content, "") // deferred until awaited
	m, err := f.Await(context.Background())
	assert.NilError(t, err)
	assert.Equal(t, m.Content, "hello")
	assert.Equal(t, p.content, "hello")
	assert.Equal(t, p.opts, 1)
}

func TestPost_Error(t *testing.T) {
	errTest := errors.New("boom")
	_, err := Post(options.Default(), &fakePoster{err: errTest}, "hello").Await(context.Background())
	assert.ErrorIs(t, err, errTest)
	assert.ErrorContains(t, err, "failed to post report")
}

func TestPost_NoPoster(t *testing.T) {
	m, err := Post(options.Default(), nil, "hello").Await(context.Background())
	assert.NilError(t, err)
	assert.Assert(t, m == nil)
}
