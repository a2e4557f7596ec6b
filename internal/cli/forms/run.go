// Package forms holds the interactive huh forms used by the CLI
package forms

import (
	"context"
	"errors"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/huh/v2"
	"github.com/thenoetrevino/qitrack/internal/config"
)

// ErrCancelled is returned when the user aborts a form
var ErrCancelled = errors.New("cancelled")

// Run themes form and runs it on stderr so stdout stays clean for command output
func Run(ctx context.Context, form *huh.Form, colors config.ColorScheme) error {
	err := form.
		WithTheme(Theme(colors)).
		WithKeyMap(KeyMap()).
		WithProgramOptions(tea.WithOutput(os.Stderr)).
		RunWithContext(ctx)
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrCancelled
	}
	return err
}

// Confirm asks a yes/no question and reports the answer
func Confirm(ctx context.Context, title string, colors config.ColorScheme) (bool, error) {
	var confirmed bool
	form := ConfirmForm(title, &confirmed)
	if err := Run(ctx, form, colors); err != nil {
		return false, err
	}
	return confirmed, nil
}

// ConfirmForm creates a single yes/no confirmation form
func ConfirmForm(title string, confirmed *bool) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Key("confirm").
			Title(title).
			Affirmative("Yes").
			Negative("No").
			Value(confirmed),
	))
}
