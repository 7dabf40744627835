package script

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	scriptLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `#[^\n]*`},
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `[\n;]+`},
		{Name: "Number", Pattern: `[-+]?(?:\d+\.\d*|\.\d+|\d+)`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
	})

	scriptParser = participle.MustBuild[Script](
		participle.Lexer(scriptLexer),
		participle.Elide("Whitespace", "Comment"),
		participle.CaseInsensitive("Ident"),
	)
)

// Script is a sequence of interaction commands, one per line.
type Script struct {
	Pos      lexer.Position `parser:""`
	Commands []*Command     `parser:"Newline* ( @@ Newline* )*"`
}

// Command is a single script line.
type Command struct {
	Pos lexer.Position `parser:""`

	Show    bool   `parser:"  @'show'"`
	Hide    bool   `parser:"| @'hide'"`
	Reset   bool   `parser:"| @'reset'"`
	Scatter bool   `parser:"| @'scatter'"`
	Release bool   `parser:"| @'release'"`
	Wait    *int   `parser:"| 'wait' @Number"`
	Grab    *Point `parser:"| 'grab' @@"`
	Drag    *Point `parser:"| 'drag' @@"`
	Hover   *Point `parser:"| 'hover' @@"`
	Resize  *Point `parser:"| 'resize' @@"`
}

// Point is an x, y pair in viewport units.
type Point struct {
	X float64 `parser:"@Number"`
	Y float64 `parser:"@Number"`
}

func (c *Command) String() string {
	switch {
	case c.Show:
		return "show"
	case c.Hide:
		return "hide"
	case c.Reset:
		return "reset"
	case c.Scatter:
		return "scatter"
	case c.Release:
		return "release"
	case c.Wait != nil:
		return fmt.Sprintf("wait %d", *c.Wait)
	case c.Grab != nil:
		return fmt.Sprintf("grab %g %g", c.Grab.X, c.Grab.Y)
	case c.Drag != nil:
		return fmt.Sprintf("drag %g %g", c.Drag.X, c.Drag.Y)
	case c.Hover != nil:
		return fmt.Sprintf("hover %g %g", c.Hover.X, c.Hover.Y)
	case c.Resize != nil:
		return fmt.Sprintf("resize %g %g", c.Resize.X, c.Resize.Y)
	default:
		return "unknown"
	}
}

// Ticks returns the number of ticks the script waits in total.
func (s *Script) Ticks() int {
	n := 0
	for _, c := range s.Commands {
		if c.Wait != nil {
			n += *c.Wait
		}
	}
	return n
}

func (s *Script) String() string {
	lines := make([]string, len(s.Commands))
	for i, c := range s.Commands {
		lines[i] = c.String()
	}
	return strings.Join(lines, "\n")
}

func Parse(r io.Reader) (*Script, error) {
	s, err := scriptParser.Parse("", r)
	if err != nil {
		return nil, err
	}
	return s, s.validate()
}

func ParseString(input string) (*Script, error) {
	s, err := scriptParser.ParseString("", input)
	if err != nil {
		return nil, err
	}
	return s, s.validate()
}

func ParseFile(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := scriptParser.Parse(path, f)
	if err != nil {
		return nil, err
	}
	return s, s.validate()
}

func (s *Script) validate() error {
	if len(s.Commands) == 0 {
		return ErrEmptyScript
	}
	for _, c := range s.Commands {
		if c.Wait != nil && *c.Wait < 0 {
			return fmt.Errorf("%w: %s: negative wait %d", ErrInvalidCommand, c.Pos, *c.Wait)
		}
		if c.Resize != nil && (c.Resize.X <= 0 || c.Resize.Y <= 0) {
			return fmt.Errorf("%w: %s: resize to %gx%g", ErrInvalidCommand, c.Pos, c.Resize.X, c.Resize.Y)
		}
	}
	return nil
}
