package store

import (
	"errors"
	"strconv"
	"testing"
)

func TestIDGenerator_ReturnsDecimalIDBelowSpace(t *testing.T) {
	g := NewIDGenerator(0)
	id, err := g.Generate(nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	f, err := strconv.ParseFloat(id, 64)
	if err != nil {
		t.Fatalf("expected numeric id, got %q (%v)", id, err)
	}
	if f < 0 || f >= idSpace {
		t.Fatalf("expected id in [0, %d), got %v", idSpace, f)
	}
}

func TestIDGenerator_SkipsTakenCandidates(t *testing.T) {
	seq := []float64{0.5, 0.5, 0.25}
	g := &IDGenerator{MaxAttempts: 10, Float: func() float64 {
		v := seq[0]
		seq = seq[1:]
		return v
	}}

	taken := map[string]bool{candidateID(0.5): true}
	id, err := g.Generate(taken)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got, want := id, candidateID(0.25); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if len(seq) != 0 {
		t.Fatalf("expected all candidates consumed; %d left", len(seq))
	}
}

func TestIDGenerator_ExhaustedAfterMaxAttempts(t *testing.T) {
	calls := 0
	g := &IDGenerator{MaxAttempts: 3, Float: func() float64 {
		calls++
		return 0.1
	}}

	_, err := g.Generate(map[string]bool{candidateID(0.1): true})
	if !errors.Is(err, ErrIDSpaceExhausted) {
		t.Fatalf("expected ErrIDSpaceExhausted, got %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls)
	}
}

func TestIDGenerator_NilUsesDefaults(t *testing.T) {
	var g *IDGenerator
	if _, err := g.Generate(map[string]bool{}); err != nil {
		t.Fatalf("nil generator: %v", err)
	}
}
