// Package captcha provisions the solved captcha token a booking needs. The
// solving itself is a human-in-the-loop capability injected through Solver;
// nothing in here, or in the callers, attempts to break the captcha.
package captcha

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// The challenge SVG ships with decoy strokes (unfilled paths) layered over
// the glyphs. Dropping them makes the image readable.
var decoyPath = regexp.MustCompile(`<path d=[^>]*fill="none"/>`)

// CleanSVG strips the decoy paths from the raw challenge markup.
func CleanSVG(raw string) string {
	return decoyPath.ReplaceAllString(raw, "")
}

// Solver turns a captcha challenge image into its plaintext solution.
type Solver interface {
	Solve(ctx context.Context, svg []byte) (string, error)
}

// ChallengeFetcher obtains a fresh challenge from the API.
type ChallengeFetcher interface {
	Recaptcha(ctx context.Context) (string, error)
}

// Provisioner fetches a challenge, cleans it and hands it to the solver.
// The returned token is consumed by exactly one booking request.
type Provisioner struct {
	Fetcher ChallengeFetcher
	Solver  Solver
}

func NewProvisioner(fetcher ChallengeFetcher, solver Solver) *Provisioner {
	return &Provisioner{Fetcher: fetcher, Solver: solver}
}

func (p *Provisioner) Token(ctx context.Context) (string, error) {
	raw, err := p.Fetcher.Recaptcha(ctx)
	if err != nil {
		return "", err
	}
	token, err := p.Solver.Solve(ctx, []byte(CleanSVG(raw)))
	if err != nil {
		return "", err
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", fmt.Errorf("empty captcha solution")
	}
	return token, nil
}

// PromptSolver writes the challenge to captcha.svg and asks the user to
// open it and type the text. It is the default Solver for terminal runs.
type PromptSolver struct {
	Dir string
	In  io.Reader
	Out io.Writer
}

func NewPromptSolver(dir string) *PromptSolver {
	return &PromptSolver{Dir: dir, In: os.Stdin, Out: os.Stdout}
}

func (p *PromptSolver) Solve(ctx context.Context, svg []byte) (string, error) {
	path := filepath.Join(p.Dir, "captcha.svg")
	if err := os.WriteFile(path, svg, 0o644); err != nil {
		return "", fmt.Errorf("writing captcha image: %w", err)
	}
	fmt.Fprintf(p.Out, "Captcha saved to %s, open it in a browser.\n", path)
	fmt.Fprint(p.Out, "Enter the text shown in the captcha: ")

	answer := make(chan string, 1)
	errCh := make(chan error, 1)
	go func() {
		line, err := bufio.NewReader(p.In).ReadString('\n')
		if err != nil && line == "" {
			errCh <- err
			return
		}
		answer <- strings.TrimSpace(line)
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case err := <-errCh:
		return "", fmt.Errorf("reading captcha answer: %w", err)
	case line := <-answer:
		return line, nil
	}
}
