// File: performance_test.go
// Title: Performance Integration Tests
// Description: Benchmarks and growth checks for parsing through the
//              combinator layers.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation of performance integration tests
// - 2026-10-18 v0.2.0: Benchmarks for grammar evaluation

package integration

import (
	"fmt"
	"sync"
	"testing"

	"github.com/msto63/pcomb/foundation/combinator"
	"github.com/msto63/pcomb/foundation/combinator/parser"
	mdwlog "github.com/msto63/pcomb/foundation/core/log"
)

// TestStepsGrowLinearly verifies that flat input costs a constant number
// of steps per term
func TestStepsGrowLinearly(t *testing.T) {
	g := arithmetic(t)

	steps := func(n int) int {
		r, stats, err := g.Start().ParseWithLimits(flat(n), parser.Limits{})
		if err != nil || r.Rest != "" {
			t.Fatalf("flat(%d): result = %v, err = %v", n, r, err)
		}
		return stats.Steps
	}

	s10, s20, s40 := steps(10), steps(20), steps(40)
	if s20-s10 != (s40-s20)/2 {
		t.Errorf("steps not linear: %d, %d, %d", s10, s20, s40)
	}
}

// TestDepthGrowsWithNesting verifies MaxDepth tracks parenthesis nesting
func TestDepthGrowsWithNesting(t *testing.T) {
	g := arithmetic(t)

	var last int
	for _, depth := range []int{1, 5, 10, 20} {
		_, stats, err := g.Start().ParseWithLimits(nested(depth), parser.Limits{})
		if err != nil {
			t.Fatalf("nested(%d) error = %v", depth, err)
		}
		if stats.MaxDepth <= last {
			t.Errorf("nested(%d): MaxDepth = %d, not above %d", depth, stats.MaxDepth, last)
		}
		last = stats.MaxDepth
	}
}

// TestConcurrentParses verifies one grammar serves many goroutines
func TestConcurrentParses(t *testing.T) {
	g := arithmetic(t)
	engine, err := combinator.NewFromGrammar(g, combinator.Options{Logger: mdwlog.NewNop(), RequireComplete: true})
	if err != nil {
		t.Fatalf("NewFromGrammar() error = %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			input := nested(i%8 + 1)
			outcome, err := engine.Parse(input)
			if err != nil {
				errs <- err
				return
			}
			if outcome.Result.Matched != input {
				errs <- fmt.Errorf("goroutine %d matched %q", i, outcome.Result.Matched)
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}

func BenchmarkParseFlat(b *testing.B) {
	g := arithmetic(b)
	for _, n := range []int{10, 100, 1000} {
		input := flat(n)
		b.Run(fmt.Sprintf("terms=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if r := g.Parse(input); r.IsFailure() {
					b.Fatal(r.Error)
				}
			}
		})
	}
}

func BenchmarkParseNested(b *testing.B) {
	g := arithmetic(b)
	for _, depth := range []int{10, 50, 200} {
		input := nested(depth)
		b.Run(fmt.Sprintf("depth=%d", depth), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if r := g.Parse(input); r.IsFailure() {
					b.Fatal(r.Error)
				}
			}
		})
	}
}

func BenchmarkEngineWithLimits(b *testing.B) {
	g := arithmetic(b)
	engine, err := combinator.NewFromGrammar(g, combinator.Options{
		Logger:   mdwlog.NewNop(),
		MaxDepth: 10000,
		MaxSteps: 1000000,
	})
	if err != nil {
		b.Fatal(err)
	}
	input := nested(50)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := engine.Parse(input); err != nil {
			b.Fatal(err)
		}
	}
}
