package workflows

import (
	"context"
	"fmt"
	"os"

	"github.com/PolarWolf314/sitelock/internal/envelope"
	"github.com/PolarWolf314/sitelock/internal/page"
	"github.com/PolarWolf314/sitelock/internal/site"
	"github.com/PolarWolf314/sitelock/internal/unlock"
	"github.com/PolarWolf314/sitelock/internal/utils"
)

// DecryptOptions configures the decrypt workflow.
type DecryptOptions struct {
	// Artifact is the path of a generated HTML artifact.
	Artifact string

	// Password unlocks the artifact.
	Password string

	// ExtractDir, when set, receives the original site files.
	ExtractDir string

	// Output, when set, receives a single rehydrated HTML document whose
	// asset references are inlined as data: URLs.
	Output string

	// Cipher overrides the decryption parameters. Nil reads the iteration
	// count from the artifact.
	Cipher *envelope.Cipher
}

// DecryptResult contains the outcome of a decrypt operation.
type DecryptResult struct {
	// Files lists the paths found in the artifact in sorted order.
	Files []string

	// Extracted is the directory the files were written to, if any.
	Extracted string

	// Rehydrated is the path of the rehydrated document, if any.
	Rehydrated string
}

// Decrypt opens an artifact with a password, the same way the browser
// does, and optionally writes its contents back out.
//
// Returns ErrEnvelopeNotFound if the file is not an artifact and
// ErrAuthentication for every failure to open it.
func Decrypt(ctx context.Context, opts DecryptOptions) (*DecryptResult, error) {
	html, err := os.ReadFile(opts.Artifact)
	if err != nil {
		return nil, fmt.Errorf("reading artifact: %w", err)
	}

	encoded, err := page.ExtractEnvelope(html)
	if err != nil {
		return nil, err
	}

	c := opts.Cipher
	if c == nil {
		c = envelope.New()
		if constants, err := page.ExtractConstants(html); err == nil {
			c.Iterations = constants.Iterations
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	files, err := unlock.Decrypt(c, encoded, opts.Password)
	if err != nil {
		return nil, err
	}

	result := &DecryptResult{Files: files.Paths()}

	if opts.ExtractDir != "" {
		if err := site.WriteTree(opts.ExtractDir, files); err != nil {
			return nil, err
		}
		result.Extracted = opts.ExtractDir
	}

	if opts.Output != "" {
		doc := &unlock.Capture{}
		if err := unlock.Rehydrate(doc, unlock.DataURLs{}, files); err != nil {
			return nil, err
		}
		rendered, _ := doc.HTML()
		// #nosec G306 -- the rehydrated page holds what the user asked to decrypt
		if err := utils.WriteFileAtomic(opts.Output, []byte(rendered), 0644); err != nil {
			return nil, err
		}
		result.Rehydrated = opts.Output
	}

	return result, nil
}
