package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	kerrors "github.com/PolarWolf314/sitelock/internal/errors"
	"github.com/PolarWolf314/sitelock/internal/page"
	"github.com/PolarWolf314/sitelock/internal/ui"
	"github.com/PolarWolf314/sitelock/internal/utils"
	"github.com/briandowns/spinner"
)

// startSpinner creates and starts a spinner with the given message when not in verbose or debug mode.
// Returns the spinner and a function that should be deferred to clean up.
//
// IMPORTANT: spinner.FinalMSG values do NOT need trailing newlines. The cleanup function
// automatically calls ui.EnsureNewline() on the final message before printing it.
// A command that fails returns its error and leaves FinalMSG empty, so
// nothing is printed to stdout on failure.
func startSpinner(message string, verbose bool) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message
	s.Writer = os.Stderr

	err := s.Color("cyan")
	if err != nil {
		// If we can't set spinner color, just continue without it.
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	if !verbose && !debug {
		Logger.Debugf("Starting spinner in non-verbose mode")
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		// Restore log output first.
		if !verbose && !debug {
			Logger.Debugf("Restoring log output")
			log.SetOutput(os.Stderr)
		}

		// Ensure final message ends with a newline.
		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		// Stop the spinner first to clear the spinner line.
		if !verbose && !debug {
			Logger.Debugf("Stopping spinner")
			s.Stop()
		}

		// Print final message to stdout (for tests to capture).
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// pageOptions returns the page text from the loaded config.
func pageOptions() page.Options {
	return page.Options{
		Title:   siteConfig.Site.Title,
		Heading: siteConfig.Site.Heading,
		Prompt:  siteConfig.Site.Prompt,
		Button:  siteConfig.Site.Button,
	}
}

// artifactArg returns the artifact named on the command line, or the
// configured output when none is given.
func artifactArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return siteConfig.Site.Output
}

// resolvePassword reads the password from the configured environment
// variable, falling back to an interactive prompt when stdin is a terminal.
func resolvePassword() (string, error) {
	name := siteConfig.Build.PasswordEnv
	if password := os.Getenv(name); password != "" {
		Logger.Debugf("Using password from %s", name)
		return password, nil
	}

	if !utils.IsTerminal() {
		return "", &kerrors.PreconditionError{
			Name: name,
			Hint: fmt.Sprintf("export %s=<password> or run interactively", name),
			Err:  kerrors.ErrPasswordMissing,
		}
	}

	password, err := utils.ReadPassphrase("Password: ")
	if err != nil {
		return "", err
	}
	if len(password) == 0 {
		return "", &kerrors.PreconditionError{Name: name, Err: kerrors.ErrPasswordMissing}
	}
	return string(password), nil
}

// FormatError renders a command error for the error stream.
func FormatError(err error) string {
	var pre *kerrors.PreconditionError
	var unreadable *kerrors.UnreadableFileError

	switch {
	case errors.As(err, &pre):
		msg := ui.Cross() + " " + ui.Error.Sprint(pre.Err.Error()) + ": " + formatPreconditionName(pre)
		if pre.Hint != "" {
			msg += "\n" + ui.Arrow() + " " + pre.Hint
		}
		return msg
	case errors.As(err, &unreadable):
		return ui.Cross() + " Could not read " + ui.Path.Sprint(unreadable.Path) + ": " + unreadable.Err.Error() +
			"\n" + ui.Arrow() + " No artifact was written"
	case errors.Is(err, kerrors.ErrAuthentication):
		return ui.Cross() + " " + ui.Error.Sprint("Incorrect password")
	case errors.Is(err, kerrors.ErrEnvelopeNotFound):
		return ui.Cross() + " Not a sitelock artifact: " + err.Error()
	case errors.Is(err, kerrors.ErrConfigExists):
		return ui.Cross() + " " + err.Error() + "\n" + ui.Arrow() + " Use " + ui.Flag.Sprint("--force") + " to overwrite it"
	case errors.Is(err, kerrors.ErrAuditDisabled):
		return ui.Cross() + " No audit log configured\n" + ui.Arrow() + " Set " + ui.Code.Sprint("[audit] log") + " in sitelock.toml"
	default:
		return ui.Cross() + " " + err.Error()
	}
}

func formatPreconditionName(pre *kerrors.PreconditionError) string {
	if errors.Is(pre.Err, kerrors.ErrPasswordMissing) {
		return ui.Env.Sprint(pre.Name)
	}
	return ui.Path.Sprint(pre.Name)
}
