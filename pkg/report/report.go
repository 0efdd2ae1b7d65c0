// Package report renders harness measurements and publishes them to Discord.
package report

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"

	"github.com/norio-nomura/uniqview/pkg/bench"
	"github.com/norio-nomura/uniqview/pkg/future"
	"github.com/norio-nomura/uniqview/pkg/options"
	"github.com/norio-nomura/uniqview/pkg/xiter"
)

// contentMax is the maximum number of runes in the content of a Discord message.
const contentMax = 2000

// Table renders measurements as a fixed-width text table, one row per measurement.
func Table(ms []bench.Measurement) string {
	header := fmt.Sprintf("%10s %5s %10s %8s %12s %12s %12s %8s", "N", "r", "len", "slices", "compact", "stream", "view", "speedup")
	row := func(m bench.Measurement) string {
		return fmt.Sprintf("%10d %5g %10d %8d %12s %12s %12s %7.2fx",
			m.Case.Size, m.Case.Repeats, m.Len, m.Slices, m.Baseline, m.Stream, m.View, m.Speedup())
	}
	lines := xiter.Concat(xiter.SeqOf(header), xiter.Map(slices.Values(ms), row))
	return strings.Join(slices.Collect(lines), "\n") + "\n"
}

// Content builds Discord message content with title followed by table in a code block.
// The table is cut after maxLines lines (no limit if maxLines <= 0) and to fit the content limit.
func Content(title, table string, maxLines int) string {
	const header = "```\n"
	const footer = "```"
	const truncated = "\n(truncated)"
	limit := contentMax - utf8.RuneCountInString(title) - 1 - len(header) - len(footer) - len(truncated)
	embed, cut := truncate([]byte(table), maxLines, limit)
	content := title + "\n" + header + embed + footer
	if cut {
		content += truncated
	}
	return content
}

// truncate returns the leading part of b that has at most maxLines lines and maxRunes runes,
// and whether anything was cut.
func truncate(b []byte, maxLines, maxRunes int) (string, bool) {
	lineNumber := 0
	runeCount := 0
	for i := 0; i < len(b); {
		if runeCount == maxRunes {
			return string(b[:i]), true
		}
		r, size := utf8.DecodeRune(b[i:])
		i += size
		runeCount++
		if r == '\n' {
			lineNumber++
			if lineNumber == maxLines && i < len(b) {
				return string(b[:i]), true
			}
		}
	}
	return string(b), false
}

// Poster creates a message with plain content. It is implemented by webhook.Client.
type Poster interface {
	CreateContent(content string, opts ...rest.RequestOpt) (*discord.Message, error)
}

// Post returns a future for posting content through p. A nil p posts nothing and resolves to nil.
func Post(o *options.Options, p Poster, content string) future.Future[*discord.Message] {
	if p == nil {
		return future.NewValue[*discord.Message](nil)
	}
	return future.NewDeferred(func(ctx context.Context) (*discord.Message, error) {
		// Ensure the context has a timeout for rest operations.
		ctx, cancel := o.ContextWithRestTimeout(ctx)
		defer cancel()
		m, err := p.CreateContent(content, rest.WithCtx(ctx))
		if err != nil {
			return nil, fmt.Errorf("failed to post report: %w", err)
		}
		return m, nil
	})
}
