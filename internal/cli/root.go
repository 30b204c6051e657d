// Package cli implements adminctl, a terminal front-end for the back-office API.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/oksasatya/catalog-backoffice/pkg/adminclient"
)

const (
	EnvAPIURL = "ADMINCTL_API_URL"
	EnvToken  = "ADMINCTL_TOKEN"
)

// App carries the resolved flags and the I/O the commands use.
type App struct {
	APIURL string
	Token  string
	Out    io.Writer
	Err    io.Writer

	// RunForm shows a huh form and Confirm asks a yes/no question; tests
	// replace both.
	RunForm func(f *huh.Form) error
	Confirm func(title string) (bool, error)
}

func (a *App) client() *adminclient.Client {
	return adminclient.New(a.APIURL, adminclient.WithToken(a.Token))
}

func (a *App) runForm(f *huh.Form) error {
	if a.RunForm != nil {
		return a.RunForm(f)
	}
	return f.Run()
}

func (a *App) confirm(title string) (bool, error) {
	if a.Confirm != nil {
		return a.Confirm(title)
	}
	ok := false
	err := huh.NewForm(huh.NewGroup(huh.NewConfirm().Title(title).Value(&ok))).Run()
	return ok, err
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// NewRootCmd builds the adminctl command tree around app.
func NewRootCmd(app *App) *cobra.Command {
	if app.Out == nil {
		app.Out = os.Stdout
	}
	if app.Err == nil {
		app.Err = os.Stderr
	}
	root := &cobra.Command{
		Use:           "adminctl",
		Short:         "adminctl edits users, products and categories of the catalog back office",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&app.APIURL, "api-url", envOr(EnvAPIURL, adminclient.DefaultBaseURL), "Back-office API base URL (env "+EnvAPIURL+")")
	root.PersistentFlags().StringVar(&app.Token, "token", os.Getenv(EnvToken), "Access token (env "+EnvToken+")")

	root.AddCommand(
		newLoginCmd(app),
		newUsersCmd(app),
		newProductsCmd(app),
		newCategoriesCmd(app),
	)
	return root
}

// Execute runs adminctl and exits non-zero on error. Ctrl-C cancels the
// in-flight request.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := NewRootCmd(&App{}).ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: must be a positive integer", s)
	}
	return id, nil
}
