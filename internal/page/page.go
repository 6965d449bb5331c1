package page

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"text/template"

	"github.com/PolarWolf314/sitelock/internal/envelope"
	kerrors "github.com/PolarWolf314/sitelock/internal/errors"
	"github.com/PolarWolf314/sitelock/internal/site"
)

//go:embed assets/shell.html.tmpl assets/unlock.js.tmpl
var assets embed.FS

var funcs = template.FuncMap{
	"json": func(v any) (string, error) {
		// encoding/json escapes <, > and &, so the output is safe inside <script>.
		b, err := json.Marshal(v)
		return string(b), err
	},
}

var (
	shellTemplate  = template.Must(template.New("shell.html.tmpl").Funcs(funcs).ParseFS(assets, "assets/shell.html.tmpl"))
	scriptTemplate = template.Must(template.New("unlock.js.tmpl").Funcs(funcs).ParseFS(assets, "assets/unlock.js.tmpl"))
)

// Options holds the visible text of the password page and the iteration
// count written into its script.
type Options struct {
	Title        string
	Heading      string
	Prompt       string
	Button       string
	ErrorMessage string

	// Iterations must match the count the envelope was sealed with. Zero
	// means envelope.Iterations.
	Iterations int
}

// DefaultOptions returns the text used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Title:        "Protected site",
		Heading:      "Protected site",
		Prompt:       "Enter password to access the site",
		Button:       "Unlock",
		ErrorMessage: "Incorrect password",
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Title == "" {
		o.Title = d.Title
	}
	if o.Heading == "" {
		o.Heading = o.Title
	}
	if o.Prompt == "" {
		o.Prompt = d.Prompt
	}
	if o.Button == "" {
		o.Button = d.Button
	}
	if o.ErrorMessage == "" {
		o.ErrorMessage = d.ErrorMessage
	}
	if o.Iterations <= 0 {
		o.Iterations = envelope.Iterations
	}
	return o
}

type scriptData struct {
	Iterations int
	SaltLength int
	IVLength   int
	StorageKey string
	IndexPath  string
	MIMETypes  map[string]string
}

type shellData struct {
	Options
	Envelope string
	Script   string
}

var base64Text = regexp.MustCompile(`^[A-Za-z0-9+/]*={0,2}$`)

// Generate renders the artifact for an encoded envelope.
func Generate(encoded string, opts Options) ([]byte, error) {
	if !base64Text.MatchString(encoded) {
		return nil, fmt.Errorf("envelope is not base64 text")
	}

	opts = opts.withDefaults()

	var script bytes.Buffer
	err := scriptTemplate.Execute(&script, scriptData{
		Iterations: opts.Iterations,
		SaltLength: envelope.SaltLength,
		IVLength:   envelope.IVLength,
		StorageKey: envelope.SessionStorageKey,
		IndexPath:  site.IndexPath,
		MIMETypes:  site.MIMETypes,
	})
	if err != nil {
		return nil, fmt.Errorf("rendering unlock script: %w", err)
	}

	var out bytes.Buffer
	err = shellTemplate.Execute(&out, shellData{
		Options:  opts,
		Envelope: encoded,
		Script:   script.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("rendering page: %w", err)
	}

	return out.Bytes(), nil
}

var envelopeElement = regexp.MustCompile(`(?s)<script id="encrypted-data" type="application/octet-stream">(.*?)</script>`)

// ExtractEnvelope returns the envelope text embedded in an artifact.
func ExtractEnvelope(html []byte) (string, error) {
	m := envelopeElement.FindSubmatch(html)
	if m == nil {
		return "", kerrors.ErrEnvelopeNotFound
	}
	return strings.TrimSpace(string(m[1])), nil
}

// Constants are the compatibility values written into an artifact's script.
type Constants struct {
	Iterations int
	SaltLength int
	IVLength   int
}

var constantPatterns = map[string]*regexp.Regexp{
	"PBKDF2_ITERATIONS": regexp.MustCompile(`const PBKDF2_ITERATIONS = (\d+);`),
	"SALT_LENGTH":       regexp.MustCompile(`const SALT_LENGTH = (\d+);`),
	"IV_LENGTH":         regexp.MustCompile(`const IV_LENGTH = (\d+);`),
}

// ExtractConstants reads the compatibility constants back from an artifact.
func ExtractConstants(html []byte) (Constants, error) {
	values := make(map[string]int, len(constantPatterns))
	for name, re := range constantPatterns {
		m := re.FindSubmatch(html)
		if m == nil {
			return Constants{}, fmt.Errorf("artifact does not define %s", name)
		}
		n, err := strconv.Atoi(string(m[1]))
		if err != nil {
			return Constants{}, fmt.Errorf("parsing %s: %w", name, err)
		}
		values[name] = n
	}

	return Constants{
		Iterations: values["PBKDF2_ITERATIONS"],
		SaltLength: values["SALT_LENGTH"],
		IVLength:   values["IV_LENGTH"],
	}, nil
}

// Current returns the constants this build writes into new artifacts.
func Current() Constants {
	return Constants{
		Iterations: envelope.Iterations,
		SaltLength: envelope.SaltLength,
		IVLength:   envelope.IVLength,
	}
}
