package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/emetic/internal/config"
	"github.com/bnema/emetic/internal/domain"
)

const (
	ExitOK             = 0
	ExitFailure        = 1
	ExitConfig         = 3
	ExitLogin          = 4
	ExitUnknownCommand = 5
	ExitConfigWrite    = 6
)

var errNoCommand = errors.New("need a command to be specified; use 'help' command to see usage")

// ExitError pins the process exit code for err.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func exitWith(code int, format string, args ...any) error {
	return &ExitError{Code: code, Err: fmt.Errorf(format, args...)}
}

// ExitCode maps a command error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var exitErr *ExitError
	switch {
	case errors.As(err, &exitErr):
		return exitErr.Code
	case errors.Is(err, config.ErrWrite):
		return ExitConfigWrite
	case errors.Is(err, config.ErrInvalid):
		return ExitConfig
	case errors.Is(err, domain.ErrLoginFailed):
		return ExitLogin
	case strings.HasPrefix(err.Error(), "unknown command"):
		return ExitUnknownCommand
	default:
		return ExitFailure
	}
}
