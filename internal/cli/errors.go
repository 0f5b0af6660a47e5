package cli

import (
	"errors"
	"fmt"
	"io"

	"sprintboard/internal/client"
	"sprintboard/internal/validation"
)

// printError renders err the way each failure kind is meant to be shown:
// field errors one per line, not found and forbidden with a pointer to the
// parent collection, everything else as a single message.
func printError(w io.Writer, err error, hint string) {
	var fields validation.Errors
	if errors.As(err, &fields) {
		fmt.Fprintln(w, "The given data was invalid.")
		printFields(w, fields)
		return
	}

	switch {
	case client.IsSessionExpired(err):
		fmt.Fprintln(w, "Session expired. Run `sprintboard login` to sign in again.")
		return
	case errors.Is(err, client.ErrNotFound), errors.Is(err, client.ErrForbidden):
		fmt.Fprintln(w, messageOf(err))
		if hint != "" {
			fmt.Fprintf(w, "See `%s`.\n", hint)
		}
		return
	}

	if apiErr, ok := client.AsAPIError(err); ok && apiErr.IsFieldError() {
		fmt.Fprintln(w, apiErr.Message)
		printFields(w, apiErr.FieldErrors())
		return
	}

	fmt.Fprintln(w, messageOf(err))
}

func printFields(w io.Writer, errs validation.Errors) {
	for _, field := range errs.Fields() {
		for _, msg := range errs[field] {
			fmt.Fprintf(w, "  %s: %s\n", field, msg)
		}
	}
}

func messageOf(err error) string {
	if apiErr, ok := client.AsAPIError(err); ok {
		return apiErr.Message
	}
	return err.Error()
}
