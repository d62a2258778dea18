package form

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/vk/hvacgrid/internal/ctxlog"
	"github.com/vk/hvacgrid/internal/editor"
	"github.com/vk/hvacgrid/internal/value"
)

// Outcome is how an interactive edit ended.
type Outcome int

const (
	Saved Outcome = iota
	Cancelled
)

func (o Outcome) String() string {
	if o == Saved {
		return "saved"
	}
	return "cancelled"
}

// ErrInputExhausted is returned when the form keeps handing back the same
// values that cannot be committed, as it does once its input has ended.
var ErrInputExhausted = errors.New("form input ended with invalid values")

// Prompter runs edit sessions as interactive terminal forms.
type Prompter struct {
	accessible bool
	in         io.Reader
	out        io.Writer
	run        func(ctx context.Context, f *huh.Form) error
}

// Option configures a Prompter.
type Option func(*Prompter)

// WithAccessible switches the form to line-by-line prompts without a
// full-screen interface.
func WithAccessible(on bool) Option {
	return func(p *Prompter) { p.accessible = on }
}

// WithIO sets the form's input and output streams.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(p *Prompter) {
		p.in = in
		p.out = out
	}
}

// NewPrompter creates a Prompter reading stdin and writing stderr.
func NewPrompter(opts ...Option) *Prompter {
	p := &Prompter{
		in:  os.Stdin,
		out: os.Stderr,
		run: func(ctx context.Context, f *huh.Form) error { return f.RunWithContext(ctx) },
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// IsInteractive checks if we're running in an interactive terminal.
func (p *Prompter) IsInteractive() bool {
	f, ok := p.in.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Edit shows the session as a form. Save commits the session; if the commit
// rejects a field the form is shown again with the user's text kept. Cancel,
// or aborting the form, discards the session. So does a cancelled context,
// and a rejected commit whose texts match the previous rejected ones, which
// returns ErrInputExhausted.
//
// In accessible mode an empty answer keeps the value shown in the prompt.
func (p *Prompter) Edit(ctx context.Context, s *editor.Session) (Outcome, error) {
	logger := ctxlog.FromContext(ctx).With("session", s.ID())
	texts := snapshotTexts(s)
	var rejected []string

	for {
		if err := ctx.Err(); err != nil {
			s.Discard(ctx)
			return Cancelled, fmt.Errorf("run property form: %w", err)
		}

		save := true
		form := huh.NewForm(p.groups(s, texts, &save)...).
			WithAccessible(p.accessible).
			WithInput(p.in).
			WithOutput(p.out)

		err := p.run(ctx, form)
		if errors.Is(err, huh.ErrUserAborted) {
			logger.Debug("Form aborted by user.")
			s.Discard(ctx)
			return Cancelled, nil
		}
		if err != nil {
			s.Discard(ctx)
			return Cancelled, fmt.Errorf("run property form: %w", err)
		}
		if !save {
			s.Discard(ctx)
			return Cancelled, nil
		}

		err = commitTexts(ctx, s, texts)
		var invalid *editor.InvalidNumericInputError
		if errors.As(err, &invalid) {
			fmt.Fprintln(p.out, err)
			current := flatten(texts)
			if slices.Equal(current, rejected) {
				logger.Debug("Form returned the same rejected values again, giving up.", "field", invalid.Location())
				s.Discard(ctx)
				return Cancelled, fmt.Errorf("%w: %w", ErrInputExhausted, err)
			}
			rejected = current
			logger.Debug("Commit rejected, showing the form again.", "field", invalid.Location())
			continue
		}
		if err != nil {
			s.Discard(ctx)
			return Cancelled, err
		}
		return Saved, nil
	}
}

func (p *Prompter) groups(s *editor.Session, texts [][][]string, save *bool) []*huh.Group {
	validate := validateNumber
	if p.accessible {
		validate = validateNumberOrBlank
	}
	sessionGroups := s.Groups()
	out := make([]*huh.Group, 0, len(sessionGroups)+1)
	for i, g := range sessionGroups {
		fields := make([]huh.Field, 0, g.Len())
		for r := 0; r < g.Rows(); r++ {
			for c := 0; c < g.Cols(); c++ {
				fields = append(fields, huh.NewInput().
					Title(g.Label(r, c)).
					Value(&texts[i][r][c]).
					Validate(validate))
			}
		}
		out = append(out, huh.NewGroup(fields...).
			Title(g.Name()).
			Description(g.Original().Dims()))
	}
	out = append(out, huh.NewGroup(
		huh.NewConfirm().
			Title(SavePrompt).
			Affirmative("Save").
			Negative("Cancel").
			Value(save),
	))
	return out
}

func validateNumber(text string) error {
	_, err := value.ParseNumber(text)
	return err
}

// validateNumberOrBlank accepts a blank answer, which the accessible prompt
// replaces with the field's current text.
func validateNumberOrBlank(text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return validateNumber(text)
}

// snapshotTexts copies the session's text fields, indexed by group, row and
// column.
func snapshotTexts(s *editor.Session) [][][]string {
	groups := s.Groups()
	texts := make([][][]string, len(groups))
	for i, g := range groups {
		texts[i] = make([][]string, g.Rows())
		for r := range texts[i] {
			texts[i][r] = make([]string, g.Cols())
			for c := range texts[i][r] {
				texts[i][r][c] = g.Text(r, c)
			}
		}
	}
	return texts
}

func flatten(texts [][][]string) []string {
	var out []string
	for _, group := range texts {
		for _, row := range group {
			out = append(out, row...)
		}
	}
	return out
}

// commitTexts writes the form's texts into the session and commits it.
func commitTexts(ctx context.Context, s *editor.Session, texts [][][]string) error {
	for i, g := range s.Groups() {
		for r := range texts[i] {
			for c, text := range texts[i][r] {
				if err := s.SetText(editor.Position{Field: g.Name(), Row: r, Col: c}, text); err != nil {
					return err
				}
			}
		}
	}
	return s.Commit(ctx)
}
