package workflows

import (
	"context"
	"fmt"
	"os"

	"github.com/PolarWolf314/sitelock/internal/envelope"
	"github.com/PolarWolf314/sitelock/internal/page"
)

// InspectResult describes an artifact without decrypting it.
type InspectResult struct {
	ArtifactBytes   int64
	EnvelopeChars   int
	SaltBytes       int
	IVBytes         int
	CiphertextBytes int

	// Constants are the values baked into the artifact's unlock script.
	Constants page.Constants

	// Compatible is true when the baked constants match this build.
	Compatible bool
}

// Inspect reports the envelope layout and baked constants of an artifact.
// No password is needed.
func Inspect(ctx context.Context, artifact string) (*InspectResult, error) {
	html, err := os.ReadFile(artifact)
	if err != nil {
		return nil, fmt.Errorf("reading artifact: %w", err)
	}

	encoded, err := page.ExtractEnvelope(html)
	if err != nil {
		return nil, err
	}

	parts, err := envelope.Decode(encoded)
	if err != nil {
		return nil, err
	}

	constants, err := page.ExtractConstants(html)
	if err != nil {
		return nil, err
	}

	return &InspectResult{
		ArtifactBytes:   int64(len(html)),
		EnvelopeChars:   len(encoded),
		SaltBytes:       len(parts.Salt),
		IVBytes:         len(parts.IV),
		CiphertextBytes: len(parts.Ciphertext),
		Constants:       constants,
		Compatible:      constants == page.Current(),
	}, nil
}
