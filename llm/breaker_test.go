package llm_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/zenapp/council/core"
	"github.com/zenapp/council/llm"
)

// flakyGenerator fails until told otherwise and counts invocations.
type flakyGenerator struct {
	calls   int
	failing bool
}

func (g *flakyGenerator) Generate(ctx context.Context, system string, history []core.Message, opts llm.Options) (string, error) {
	g.calls++
	if g.failing {
		return "", fmt.Errorf("%w: backend down", core.ErrGeneration)
	}
	return "ok", nil
}

func TestBreakerPassesThroughSuccess(t *testing.T) {
	inner := &flakyGenerator{}
	breaker := llm.NewBreaker(inner, llm.BreakerConfig{})

	reply, err := breaker.Generate(context.Background(), "system", nil, llm.Options{})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if reply != "ok" {
		t.Errorf("Unexpected reply: %q", reply)
	}
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	inner := &flakyGenerator{failing: true}
	breaker := llm.NewBreaker(inner, llm.BreakerConfig{MaxFailures: 3, Timeout: time.Minute})

	for i := 0; i < 3; i++ {
		if _, err := breaker.Generate(context.Background(), "system", nil, llm.Options{}); !errors.Is(err, core.ErrGeneration) {
			t.Fatalf("Call %d: expected ErrGeneration, got %v", i, err)
		}
	}
	if inner.calls != 3 {
		t.Fatalf("Expected 3 backend calls before tripping, got %d", inner.calls)
	}

	// Circuit is open: the backend must not be called again.
	_, err := breaker.Generate(context.Background(), "system", nil, llm.Options{})
	if !errors.Is(err, core.ErrGeneration) {
		t.Fatalf("Expected ErrGeneration while open, got %v", err)
	}
	if inner.calls != 3 {
		t.Errorf("Open circuit still called the backend: %d calls", inner.calls)
	}
}

func TestBreakerRecoversAfterTimeout(t *testing.T) {
	inner := &flakyGenerator{failing: true}
	breaker := llm.NewBreaker(inner, llm.BreakerConfig{MaxFailures: 2, Timeout: 20 * time.Millisecond})

	for i := 0; i < 2; i++ {
		breaker.Generate(context.Background(), "system", nil, llm.Options{})
	}

	inner.failing = false
	time.Sleep(30 * time.Millisecond)

	reply, err := breaker.Generate(context.Background(), "system", nil, llm.Options{})
	if err != nil {
		t.Fatalf("Half-open probe failed: %v", err)
	}
	if reply != "ok" {
		t.Errorf("Unexpected reply after recovery: %q", reply)
	}
}
