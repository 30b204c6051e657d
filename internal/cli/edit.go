package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/oksasatya/catalog-backoffice/pkg/editsession"
)

var errAborted = errors.New("aborted")

// notifier prints session notifications to stderr.
type notifier struct{ w io.Writer }

func (n notifier) Success(msg string) { fmt.Fprintf(n.w, "✔ %s\n", msg) }
func (n notifier) Error(msg string)   { fmt.Fprintf(n.w, "✘ %s\n", msg) }

// navigator "navigates" by printing the listing path.
type navigator struct {
	w    io.Writer
	done chan string
}

func newNavigator(w io.Writer) *navigator {
	return &navigator{w: w, done: make(chan string, 1)}
}

func (n *navigator) Navigate(path string) {
	fmt.Fprintf(n.w, "→ %s\n", path)
	select {
	case n.done <- path:
	default:
	}
}

// editor binds a huh form to a working copy of T.
type editor[T any] interface {
	Form() *huh.Form
	// Apply writes the form values into v.
	Apply(v *T) error
}

type editOptions struct {
	delay time.Duration
}

// runEdit drives one edit session: mount, form, submit, and retry on
// failure with the working copy preserved.
func runEdit[T any](ctx context.Context, app *App, remote editsession.Remote[T], id int64, listPath string, newEditor func(T) editor[T], opts editOptions) error {
	if opts.delay == 0 {
		opts.delay = editsession.DefaultNavigateDelay
	}
	nav := newNavigator(app.Out)
	s, err := editsession.New[T](remote, notifier{w: app.Err}, nav,
		editsession.WithListPath(listPath),
		editsession.WithNavigateDelay(opts.delay),
	)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Mount(ctx, id); err != nil {
		return err
	}
	if s.Degraded() {
		ok, err := app.confirm("The record could not be loaded. Edit a blank form anyway?")
		if err != nil {
			return err
		}
		if !ok {
			return errAborted
		}
	}

	for {
		ed := newEditor(s.Working())
		if err := app.runForm(ed.Form()); err != nil {
			return err
		}
		var applyErr error
		if err := s.Edit(func(v *T) { applyErr = ed.Apply(v) }); err != nil {
			return err
		}
		if applyErr != nil {
			fmt.Fprintf(app.Err, "✘ %s\n", applyErr)
			continue
		}

		if err := s.Submit(ctx); err == nil {
			break
		}
		retry, err := app.confirm("Edit and submit again?")
		if err != nil {
			return err
		}
		if !retry {
			return errAborted
		}
	}

	select {
	case <-nav.done:
	case <-time.After(opts.delay + time.Second):
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}
