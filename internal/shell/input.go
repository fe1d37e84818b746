package shell

import (
	"bufio"
	"fmt"
	"io"
	"parcel-network-service/internal/domain"
	"strings"
)

// Defaults used when the environment cannot supply interactive input.
const (
	DefaultOrigin      domain.City = "Madrid"
	DefaultDestination domain.City = "Barcelona"
)

// InputSource yields lines typed by the user. ok is false when no input can be
// read (closed stdin, non-interactive environment); callers then fall back to
// documented defaults instead of treating it as an error.
type InputSource interface {
	ReadLine(prompt string) (line string, ok bool)
}

// LineInput reads prompts from a line-oriented reader such as os.Stdin.
type LineInput struct {
	out     io.Writer
	scanner *bufio.Scanner
}

func NewLineInput(in io.Reader, out io.Writer) *LineInput {
	return &LineInput{out: out, scanner: bufio.NewScanner(in)}
}

func (l *LineInput) ReadLine(prompt string) (string, bool) {
	fmt.Fprint(l.out, prompt)
	if !l.scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(l.scanner.Text()), true
}

// ReadCities asks for an origin and a destination, normalizing case.
// If either read fails both defaults are returned and usedDefaults is true.
func ReadCities(src InputSource) (origin, destination domain.City, usedDefaults bool) {
	o, ok := src.ReadLine("Origin city: ")
	if !ok {
		return DefaultOrigin, DefaultDestination, true
	}
	d, ok := src.ReadLine("Destination city: ")
	if !ok {
		return DefaultOrigin, DefaultDestination, true
	}
	return domain.NormalizeCity(o), domain.NormalizeCity(d), false
}
