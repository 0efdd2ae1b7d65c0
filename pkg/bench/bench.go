// Package bench verifies uniqview against a reference collapse and measures how long both take.
package bench

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"slices"
	"time"

	"github.com/norio-nomura/uniqview/pkg/future"
	"github.com/norio-nomura/uniqview/pkg/uniqview"
	"github.com/norio-nomura/uniqview/pkg/xiter"
)

// Case is one input configuration: Size elements where about a Repeats fraction are duplicates.
type Case struct {
	Size    int
	Repeats float64
}

func (c Case) String() string {
	return fmt.Sprintf("N=%d, r=%g", c.Size, c.Repeats)
}

// Cases returns every combination of sizes and repeats, sizes varying slowest.
func Cases(sizes []int, repeats []float64) []Case {
	cases := make([]Case, 0, len(sizes)*len(repeats))
	for _, size := range sizes {
		for _, r := range repeats {
			cases = append(cases, Case{Size: size, Repeats: r})
		}
	}
	return cases
}

// Generate returns size non-decreasing values i*(1-repeats), truncated, for i in [0, size).
// repeats 0 gives no duplicates and repeats 1 gives size zeros.
func Generate(size int, repeats float64) []uint64 {
	data := make([]uint64, size)
	multiplier := 1.0 - repeats
	for i := range data {
		data[i] = uint64(float64(i) * multiplier)
	}
	return data
}

// Reference returns a copy of data with consecutive duplicates removed by slices.Compact.
func Reference[T comparable](data []T) []T {
	return slices.Compact(slices.Clone(data))
}

// ReferenceSeq returns data with consecutive duplicates removed by xiter.Compact, without copying.
func ReferenceSeq[T comparable](data []T) iter.Seq[T] {
	return xiter.Compact(slices.Values(data))
}

// Candidate is a collapsed sequence under verification.
type Candidate[T any] interface {
	Len() int
	All() iter.Seq[T]
}

// MismatchError reports the first difference between a candidate and the reference.
type MismatchError struct {
	// Position is the index of the first differing element, or -1 if only the lengths differ.
	Position int
	Want     any
	Got      any
	WantLen  int
	GotLen   int
}

func (e *MismatchError) Error() string {
	if e.Position < 0 {
		return fmt.Sprintf("length mismatch: want %d, got %d", e.WantLen, e.GotLen)
	}
	return fmt.Sprintf("element %d mismatch: want %v, got %v", e.Position, e.Want, e.Got)
}

// Verify checks that uniqview.New(data) agrees with Reference(data) through both Len/All and
// the Begin/End iterator protocol.
func Verify[T comparable](data []T) error {
	v := uniqview.New(data)
	if err := VerifyCandidate(data, v); err != nil {
		return err
	}
	walk := func(yield func(T) bool) {
		for it := v.Begin(); !it.Equal(v.End()); it.Next() {
			if !yield(it.Value()) {
				return
			}
		}
	}
	if err := VerifyCandidate[T](data, walker[T]{v.Len(), walk}); err != nil {
		return fmt.Errorf("iterator: %w", err)
	}
	return nil
}

type walker[T any] struct {
	n   int
	seq iter.Seq[T]
}

func (w walker[T]) Len() int         { return w.n }
func (w walker[T]) All() iter.Seq[T] { return w.seq }

// VerifyCandidate checks c against Reference(data) and returns a *MismatchError on the first difference.
func VerifyCandidate[T comparable](data []T, c Candidate[T]) error {
	want := Reference(data)
	if c.Len() != len(want) {
		return &MismatchError{Position: -1, WantLen: len(want), GotLen: c.Len()}
	}
	pos := 0
	for z := range xiter.ZipLongest(slices.Values(want), c.All()) {
		if z.OK1 != z.OK2 || z.V1 != z.V2 {
			e := &MismatchError{Position: pos, WantLen: len(want), GotLen: c.Len()}
			if z.OK1 {
				e.Want = z.V1
			}
			if z.OK2 {
				e.Got = z.V2
			}
			return e
		}
		pos++
	}
	return nil
}

// VerifyAll verifies every case concurrently, with at most about parallelism cases at once,
// and yields the results in the order of cases. Result.Value is always the case.
func VerifyAll(ctx context.Context, cases []Case, parallelism int) iter.Seq[future.Result[Case]] {
	verifyCase := func(c Case) future.Future[Case] {
		return func(ctx context.Context) (Case, error) {
			if err := ctx.Err(); err != nil {
				return c, err
			}
			if err := Verify(Generate(c.Size, c.Repeats)); err != nil {
				return c, fmt.Errorf("%s: %w", c, err)
			}
			return c, nil
		}
	}
	results := future.Await(ctx, xiter.Map(slices.Values(cases), verifyCase), parallelism)
	return func(yield func(future.Result[Case]) bool) {
		for z := range xiter.Zip(slices.Values(cases), results) {
			// skipped and canceled futures carry no value
			result := z.V2
			result.Value = z.V1
			if !yield(result) {
				return
			}
		}
	}
}

// Measurement is the timing of one case. Durations are averages per round.
type Measurement struct {
	Case     Case
	Len      int
	Slices   int
	Rounds   int
	Baseline time.Duration // slices.Compact on a copy
	Stream   time.Duration // xiter.Compact
	View     time.Duration
}

// Speedup returns how many times faster the view was than the baseline, or 0 if unknown.
func (m Measurement) Speedup() float64 {
	if m.View <= 0 {
		return 0
	}
	return float64(m.Baseline) / float64(m.View)
}

// ErrInvalidRounds is returned by Measure when rounds is not positive.
var ErrInvalidRounds = errors.New("rounds must be positive")

var sink uint64

// Measure times rounds runs each of Reference, ReferenceSeq and building a View, each followed by
// summing the collapsed elements. The input is verified first.
func Measure(ctx context.Context, c Case, rounds int) (Measurement, error) {
	if rounds <= 0 {
		return Measurement{}, ErrInvalidRounds
	}
	data := Generate(c.Size, c.Repeats)
	if err := Verify(data); err != nil {
		return Measurement{}, fmt.Errorf("sanity check %s: %w", c, err)
	}

	m := Measurement{Case: c, Rounds: rounds}
	var sum uint64
	start := time.Now()
	for range rounds {
		if err := ctx.Err(); err != nil {
			return Measurement{}, err
		}
		for _, e := range Reference(data) {
			sum += e
		}
	}
	m.Baseline = time.Since(start) / time.Duration(rounds)

	start = time.Now()
	for range rounds {
		if err := ctx.Err(); err != nil {
			return Measurement{}, err
		}
		for e := range ReferenceSeq(data) {
			sum += e
		}
	}
	m.Stream = time.Since(start) / time.Duration(rounds)

	start = time.Now()
	for range rounds {
		if err := ctx.Err(); err != nil {
			return Measurement{}, err
		}
		for e := range uniqview.New(data).All() {
			sum += e
		}
	}
	m.View = time.Since(start) / time.Duration(rounds)
	sink = sum

	v := uniqview.New(data)
	m.Len = v.Len()
	m.Slices = v.NumSlices()
	return m, nil
}

// Run measures the cases one after another and yields each measurement.
// It stops after the first error.
func Run(ctx context.Context, cases []Case, rounds int) iter.Seq2[Measurement, error] {
	return func(yield func(Measurement, error) bool) {
		for _, c := range cases {
			m, err := Measure(ctx, c, rounds)
			if err != nil {
				yield(Measurement{Case: c}, err)
				return
			}
			slog.Debug("measured", slog.String("case", c.String()), slog.Duration("baseline", m.Baseline), slog.Duration("stream", m.Stream), slog.Duration("view", m.View))
			if !yield(m, nil) {
				return
			}
		}
	}
}
