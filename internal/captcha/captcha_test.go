package captcha

import (
	"context"
	"strings"
	"testing"
)

func TestCleanSVGStripsDecoyPaths(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		raw   string
		glyph []string
	}{
		{
			name:  "decoy between glyphs",
			raw:   `<svg><path d="M1 1" fill="#000"/><path d="M2 2" stroke="#aaa" fill="none"/><path d="M3 3" fill="#111"/></svg>`,
			glyph: []string{"M1 1", "M3 3"},
		},
		{
			name:  "glyph between decoys",
			raw:   `<svg><path d="M4 4" fill="none"/><path d="M5 5" fill="#222"/><path d="M6 6" stroke="#bbb" fill="none"/></svg>`,
			glyph: []string{"M5 5"},
		},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := CleanSVG(tc.raw)
			if strings.Contains(got, `fill="none"`) {
				t.Fatalf("decoy path survived: %s", got)
			}
			for _, g := range tc.glyph {
				if !strings.Contains(got, g) {
					t.Fatalf("glyph path %q was removed: %s", g, got)
				}
			}
		})
	}
}

type staticFetcher struct{ svg string }

func (f staticFetcher) Recaptcha(ctx context.Context) (string, error) {
	return f.svg, nil
}

type staticSolver struct {
	got      []byte
	solution string
}

func (s *staticSolver) Solve(ctx context.Context, svg []byte) (string, error) {
	s.got = svg
	return s.solution, nil
}

func TestProvisionerCleansBeforeSolving(t *testing.T) {
	t.Parallel()
	solver := &staticSolver{solution: "  nMReQ \n"}
	p := NewProvisioner(staticFetcher{svg: `<svg><path d="M0 0" fill="none"/><path d="M1 1" fill="#000"/></svg>`}, solver)

	token, err := p.Token(context.Background())
	if err != nil {
		t.Fatalf("Token() = %v", err)
	}
	if token != "nMReQ" {
		t.Fatalf("token = %q, want trimmed solution", token)
	}
	if strings.Contains(string(solver.got), `fill="none"`) {
		t.Fatalf("solver received uncleaned SVG")
	}
}

func TestProvisionerRejectsEmptySolution(t *testing.T) {
	t.Parallel()
	p := NewProvisioner(staticFetcher{svg: `<svg/>`}, &staticSolver{solution: "   "})
	if _, err := p.Token(context.Background()); err == nil {
		t.Fatalf("expected error for empty solution")
	}
}

func TestPromptSolverWritesFileAndReadsAnswer(t *testing.T) {
	t.Parallel()
	var out strings.Builder
	solver := &PromptSolver{
		Dir: t.TempDir(),
		In:  strings.NewReader("abc12\n"),
		Out: &out,
	}
	got, err := solver.Solve(context.Background(), []byte("<svg/>"))
	if err != nil {
		t.Fatalf("Solve() = %v", err)
	}
	if got != "abc12" {
		t.Fatalf("answer = %q", got)
	}
	if !strings.Contains(out.String(), "captcha.svg") {
		t.Fatalf("prompt did not mention the image path: %s", out.String())
	}
}
