package planner

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// fakeGenerator is a canned TextGenerator for planner tests.
type fakeGenerator struct {
	reply string
	err   error
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return f.reply, f.err
}

func TestPlanParsesNumberedQueries(t *testing.T) {
	gen := &fakeGenerator{reply: `Here are some queries:
1. go generics adoption
2) go runtime scheduler changes
3. `}

	p := New(gen, nil)
	queries := p.Plan(context.Background(), "golang")

	if len(queries) != 2 {
		t.Fatalf("expected 2 queries, got %d: %v", len(queries), queries)
	}
	if queries[0] != "go generics adoption" {
		t.Errorf("unexpected first query: %q", queries[0])
	}
	if queries[1] != "go runtime scheduler changes" {
		t.Errorf("unexpected second query: %q", queries[1])
	}
}

func TestPlanCapsQueries(t *testing.T) {
	gen := &fakeGenerator{reply: `1. one
2. two
3. three
4. four
5. five
6. six
7. seven`}

	p := New(gen, nil)
	queries := p.Plan(context.Background(), "anything")

	if len(queries) != MaxQueries {
		t.Fatalf("expected %d queries, got %d", MaxQueries, len(queries))
	}
}

func TestPlanStripsMarkdownDecorations(t *testing.T) {
	gen := &fakeGenerator{reply: "1. `quantum computing breakthroughs`\n2. **quantum error correction**"}

	p := New(gen, nil)
	queries := p.Plan(context.Background(), "quantum")

	if queries[0] != "quantum computing breakthroughs" {
		t.Errorf("backticks not stripped: %q", queries[0])
	}
	if queries[1] != "quantum error correction" {
		t.Errorf("asterisks not stripped: %q", queries[1])
	}
}

func TestPlanFallsBackOnError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("model unavailable")}

	p := New(gen, nil)
	queries := p.Plan(context.Background(), "climate")

	if len(queries) != len(fallbackQualifiers) {
		t.Fatalf("expected %d fallback queries, got %d", len(fallbackQualifiers), len(queries))
	}
	for _, q := range queries {
		if !strings.HasPrefix(q, "climate ") {
			t.Errorf("fallback query missing topic prefix: %q", q)
		}
	}
}

func TestPlanFallsBackOnUnparseableReply(t *testing.T) {
	gen := &fakeGenerator{reply: "I cannot help with that."}

	p := New(gen, nil)
	queries := p.Plan(context.Background(), "climate")

	if len(queries) != len(fallbackQualifiers) {
		t.Fatalf("expected fallback queries, got %v", queries)
	}
}

func TestPlanWithoutGenerator(t *testing.T) {
	p := New(nil, nil)
	queries := p.Plan(context.Background(), "ai")

	if len(queries) == 0 {
		t.Fatal("expected non-empty fallback queries")
	}
	if queries[0] != "ai latest news" {
		t.Errorf("unexpected first fallback query: %q", queries[0])
	}
}

func TestPlanDirectTopicBypassesGenerator(t *testing.T) {
	gen := &fakeGenerator{reply: "1. should not be used"}

	p := New(gen, []string{"fashion trends"})
	queries := p.Plan(context.Background(), "Fashion Trends 2025")

	if len(queries) != 1 {
		t.Fatalf("expected single verbatim query, got %v", queries)
	}
	if queries[0] != "Fashion Trends 2025" {
		t.Errorf("expected verbatim topic, got %q", queries[0])
	}
}
