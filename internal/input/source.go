package input

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrCanceled is returned when the user aborts input.
var ErrCanceled = errors.New("input cancelled")

// Source supplies the two opportunity descriptions for one comparison.
type Source interface {
	Descriptions(ctx context.Context) (first, second string, err error)
}

const (
	firstPrompt  = "Introduce la descripción de la primera oportunidad de negocio:"
	secondPrompt = "Introduce la descripción de la segunda oportunidad de negocio:"
)

// ArgsSource returns fixed descriptions, typically positional arguments.
type ArgsSource struct {
	First  string
	Second string
}

// Descriptions returns the fixed pair without touching the terminal.
func (s ArgsSource) Descriptions(_ context.Context) (string, string, error) {
	return s.First, s.Second, nil
}

// PromptSource asks for each description in turn and reads one line per answer.
type PromptSource struct {
	In  io.Reader
	Out io.Writer
}

// NewPromptSource returns a line-oriented prompt over in/out.
func NewPromptSource(in io.Reader, out io.Writer) *PromptSource {
	return &PromptSource{In: in, Out: out}
}

// Descriptions prompts for the first then the second description. Empty
// answers are accepted; end of input yields whatever was typed so far.
func (s *PromptSource) Descriptions(ctx context.Context) (string, string, error) {
	if err := ctx.Err(); err != nil {
		return "", "", err
	}
	br := bufio.NewReader(s.In)

	fmt.Fprintln(s.Out, firstPrompt)
	first, err := readLine(br)
	if err != nil {
		return "", "", err
	}

	fmt.Fprintln(s.Out, "\n"+secondPrompt)
	second, err := readLine(br)
	if err != nil {
		return "", "", err
	}
	return first, second, nil
}

func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read description: %w", err)
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

// Select returns an ArgsSource built from the first two args when at least
// two are given (extras are ignored), otherwise interactive.
func Select(args []string, interactive Source) Source {
	if len(args) >= 2 {
		return ArgsSource{First: args[0], Second: args[1]}
	}
	return interactive
}
