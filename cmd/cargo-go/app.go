package main

import (
	"github.com/spf13/cobra"

	"github.com/terassyi/cargo-go/internal/app"
	"github.com/terassyi/cargo-go/internal/ui"
)

// openApp resolves -g/-G into a mode and opens an App whose reporter
// writes through cmd's own streams (so tests can capture them).
func openApp(cmd *cobra.Command) (*app.App, error) {
	mode, err := resolveMode(cmd)
	if err != nil {
		return nil, err
	}
	reporter := ui.NewReporter(cmd.OutOrStdout(), cmd.ErrOrStderr())
	return app.Open(mode, reporter)
}

// saveAndReturn persists a's catalog and folds any save error into err,
// preferring the original error if both are set.
func saveAndReturn(a *app.App, err error) error {
	if saveErr := a.Save(); saveErr != nil && err == nil {
		return saveErr
	}
	return err
}
