package cli

import (
	"errors"
	"fmt"

	"checklist/internal/store"

	"github.com/spf13/cobra"
)

const capacityMessage = "Sorry, too many items already, cannot add another one"

// reportedError marks an error that was already printed to stderr.
type reportedError struct{ err error }

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

// Reported reports whether err was already shown to the user.
func Reported(err error) bool {
	var r reportedError
	return errors.As(err, &r)
}

// userMessage is the line printed for err.
func userMessage(err error) string {
	if errors.Is(err, store.ErrCapacityExhausted) {
		return capacityMessage
	}
	return err.Error()
}

func writeErr(cmd *cobra.Command, err error) error {
	if Reported(err) {
		return err
	}
	fmt.Fprintln(cmd.ErrOrStderr(), userMessage(err))
	return reportedError{err: err}
}
