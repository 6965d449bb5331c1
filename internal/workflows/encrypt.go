package workflows

import (
	"context"
	"fmt"
	"os"

	"github.com/PolarWolf314/sitelock/internal/audit"
	"github.com/PolarWolf314/sitelock/internal/envelope"
	kerrors "github.com/PolarWolf314/sitelock/internal/errors"
	logger "github.com/PolarWolf314/sitelock/internal/logging"
	"github.com/PolarWolf314/sitelock/internal/page"
	"github.com/PolarWolf314/sitelock/internal/site"
	"github.com/PolarWolf314/sitelock/internal/utils"
)

// EncryptOptions configures the encrypt workflow.
type EncryptOptions struct {
	// Input is the built site directory.
	Input string

	// Output is the path of the generated HTML artifact.
	Output string

	// PasswordEnv names the environment variable holding the password.
	PasswordEnv string

	// Exclude holds doublestar patterns for files to leave out.
	Exclude []string

	// Page is the visible text of the password page.
	Page page.Options

	// AuditLog is the audit log path. Empty disables audit logging.
	AuditLog string

	// Cipher overrides the encryption parameters. Nil uses the defaults.
	// Its iteration count is written into the page either way.
	Cipher *envelope.Cipher

	// Log receives debug notes from collection, such as skipped links.
	Log logger.Logger
}

// EncryptResult contains the outcome of an encrypt operation.
type EncryptResult struct {
	// Output is the path the artifact was written to.
	Output string

	// Files lists the collected paths in sorted order.
	Files []string

	// PayloadBytes is the size of the JSON payload before encryption.
	PayloadBytes int

	// OutputBytes is the size of the written artifact.
	OutputBytes int64

	// AuditErr is set when the build succeeded but the audit entry could
	// not be written.
	AuditErr error
}

// Encrypt bundles a built site into a single password-protected HTML file.
//
// Returns a *PreconditionError wrapping ErrPasswordMissing when the password
// variable is unset or empty, ErrInputDirMissing when the input directory
// does not exist, or ErrMissingIndex when the site has no index.html.
// Returns an *UnreadableFileError if any file cannot be read. The output is
// written atomically, so no artifact exists after a failed run.
func Encrypt(ctx context.Context, opts EncryptOptions) (*EncryptResult, error) {
	password, err := lookupPassword(opts.PasswordEnv)
	if err != nil {
		return nil, err
	}

	if err := checkInputDir(opts.Input); err != nil {
		return nil, err
	}

	files, err := site.Collect(opts.Input, site.CollectOptions{Exclude: opts.Exclude, Log: opts.Log})
	if err != nil {
		return nil, err
	}

	if _, ok := files.Index(); !ok {
		return nil, &kerrors.PreconditionError{
			Name: site.IndexPath,
			Hint: "the input directory must contain the built site's entry page",
			Err:  kerrors.ErrMissingIndex,
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	payload, err := files.Marshal()
	if err != nil {
		return nil, fmt.Errorf("encoding payload: %w", err)
	}

	c := opts.Cipher
	if c == nil {
		c = envelope.New()
	}

	encoded, err := c.Encrypt(payload, password)
	if err != nil {
		return nil, fmt.Errorf("encrypting payload: %w", err)
	}

	pageOpts := opts.Page
	pageOpts.Iterations = c.IterationCount()

	artifact, err := page.Generate(encoded, pageOpts)
	if err != nil {
		return nil, fmt.Errorf("generating page: %w", err)
	}

	// #nosec G306 -- the artifact is meant to be served publicly
	if err := utils.WriteFileAtomic(opts.Output, artifact, 0644); err != nil {
		return nil, err
	}

	result := &EncryptResult{
		Output:       opts.Output,
		Files:        files.Paths(),
		PayloadBytes: len(payload),
		OutputBytes:  int64(len(artifact)),
	}

	entry := audit.NewEntry("encrypt")
	entry.Input = opts.Input
	entry.Output = opts.Output
	entry.FilesCount = len(result.Files)
	entry.Bytes = result.OutputBytes
	result.AuditErr = audit.Log(opts.AuditLog, entry)

	return result, nil
}

func lookupPassword(name string) (string, error) {
	if name == "" {
		name = "SITE_PASSWORD"
	}

	password, ok := os.LookupEnv(name)
	if !ok || password == "" {
		return "", &kerrors.PreconditionError{
			Name: name,
			Hint: fmt.Sprintf("export %s=<password>", name),
			Err:  kerrors.ErrPasswordMissing,
		}
	}
	return password, nil
}

func checkInputDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return &kerrors.PreconditionError{
			Name: dir,
			Hint: "build the site first",
			Err:  kerrors.ErrInputDirMissing,
		}
	}
	return nil
}
