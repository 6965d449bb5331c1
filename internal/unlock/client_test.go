package unlock

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/sitelock/internal/envelope"
	kerrors "github.com/PolarWolf314/sitelock/internal/errors"
	"github.com/PolarWolf314/sitelock/internal/site"
	"github.com/stretchr/testify/require"
)

func TestClientManualSuccess(t *testing.T) {
	c := testCipher()
	env := sealFiles(t, c, sampleSite(), "secret")
	p := newTestPage()

	client := NewClient(env, p.Page(), c)
	require.Equal(t, Idle, client.State())

	require.NoError(t, client.Submit("secret"))
	require.Equal(t, Unlocked, client.State())

	_, replaced := p.doc.HTML()
	require.True(t, replaced)

	cached, ok := p.session.Get(envelope.SessionStorageKey)
	require.True(t, ok)
	require.Equal(t, "secret", cached)
	require.False(t, p.form.ErrorVisible())
}

func TestClientManualFailureThenRetry(t *testing.T) {
	c := testCipher()
	env := sealFiles(t, c, sampleSite(), "secret")
	p := newTestPage()
	client := NewClient(env, p.Page(), c)

	err := client.Submit("wrong")
	require.ErrorIs(t, err, kerrors.ErrAuthentication)
	require.Equal(t, Failed, client.State())
	require.True(t, p.form.ErrorVisible())
	require.False(t, p.form.Busy(), "form must be enabled again after a failure")

	_, replaced := p.doc.HTML()
	require.False(t, replaced)
	_, cached := p.session.Get(envelope.SessionStorageKey)
	require.False(t, cached, "failed attempts must not be cached")

	require.NoError(t, client.Submit("secret"))
	require.Equal(t, Unlocked, client.State())
	require.False(t, p.form.ErrorVisible())
}

type failingObjects struct{}

func (failingObjects) CreateObjectURL([]byte, string) (string, error) {
	return "", errors.New("object store unavailable")
}

func TestClientRehydrateFailureIsNotCached(t *testing.T) {
	c := testCipher()
	env := sealFiles(t, c, sampleSite(), "secret")
	p := newTestPage()
	pg := p.Page()
	pg.Objects = failingObjects{}
	client := NewClient(env, pg, c)

	err := client.Submit("secret")
	require.ErrorIs(t, err, kerrors.ErrAuthentication)
	require.Equal(t, Failed, client.State())
	require.True(t, p.form.ErrorVisible())
	require.False(t, p.form.Busy(), "form must be enabled again after a failure")

	_, replaced := p.doc.HTML()
	require.False(t, replaced)
	_, cached := p.session.Get(envelope.SessionStorageKey)
	require.False(t, cached, "a password is cached only once the site is shown")

	// The guard is released, so another attempt is accepted.
	require.ErrorIs(t, client.Submit("secret"), kerrors.ErrAuthentication)
}

func TestClientCachedPasswordReplay(t *testing.T) {
	c := testCipher()
	env := sealFiles(t, c, sampleSite(), "secret")

	// First visit unlocks by hand and caches the password.
	first := newTestPage()
	require.NoError(t, NewClient(env, first.Page(), c).Submit("secret"))

	// A fresh load in the same session unlocks without the form.
	second := newTestPage()
	second.session = first.session
	client := NewClient(env, second.Page(), c)

	require.True(t, client.Load())
	require.Equal(t, Unlocked, client.State())
	_, replaced := second.doc.HTML()
	require.True(t, replaced)
}

func TestClientStaleCachedPasswordFallsBackSilently(t *testing.T) {
	c := testCipher()
	env := sealFiles(t, c, sampleSite(), "secret")
	p := newTestPage()
	p.session.Set(envelope.SessionStorageKey, "old password")

	client := NewClient(env, p.Page(), c)

	require.False(t, client.Load())
	require.Equal(t, Idle, client.State())
	require.False(t, p.form.ErrorVisible(), "auto-attempt must not show the error banner")
	require.False(t, p.form.Busy())
}

func TestClientLoadWithoutCache(t *testing.T) {
	p := newTestPage()
	client := NewClient("irrelevant", p.Page(), testCipher())

	require.False(t, client.Load())
	require.Equal(t, Idle, client.State())

	noSession := NewClient("irrelevant", Page{Document: &Capture{}, Objects: &MemoryObjects{}}, testCipher())
	require.False(t, noSession.Load())
}

// reentrantDocument submits again while the first attempt is still running.
type reentrantDocument struct {
	client *Client
	busy   bool
	err    error
}

func (d *reentrantDocument) Replace(string) {
	d.busy = d.client.page.Form.(*FormState).Busy()
	d.err = d.client.Submit("secret")
}

func TestClientRejectsConcurrentAttempt(t *testing.T) {
	c := testCipher()
	env := sealFiles(t, c, sampleSite(), "secret")

	doc := &reentrantDocument{}
	client := NewClient(env, Page{
		Document: doc,
		Objects:  &MemoryObjects{},
		Session:  &MemorySession{},
		Form:     &FormState{},
	}, c)
	doc.client = client

	require.NoError(t, client.Submit("secret"))
	require.True(t, doc.busy, "form must be disabled while decrypting")
	require.ErrorIs(t, doc.err, kerrors.ErrAttemptInFlight)
	require.Equal(t, Unlocked, client.State())

	// Once unlocked, further submissions are no-ops.
	require.NoError(t, client.Submit("anything"))
}

func TestClientWithoutForm(t *testing.T) {
	c := testCipher()
	env := sealFiles(t, c, sampleSite(), "secret")

	client := NewClient(env, Page{Document: &Capture{}, Objects: DataURLs{}}, c)
	require.ErrorIs(t, client.Submit("nope"), kerrors.ErrAuthentication)
	require.NoError(t, client.Submit("secret"))
}

func TestStateString(t *testing.T) {
	require.Equal(t, "idle", Idle.String())
	require.Equal(t, "decrypting", Decrypting.String())
	require.Equal(t, "unlocked", Unlocked.String())
	require.Equal(t, "failed", Failed.String())
	require.Equal(t, "unknown", State(42).String())
}

// TestEndToEnd collects {index.html, app.js, logo.png}, encrypts with
// "secret" at the production iteration count, and unlocks it again.
func TestEndToEnd(t *testing.T) {
	root := t.TempDir()
	appJS := []byte("document.title = 'unlocked';\n")
	logo := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0xde, 0xad, 0xbe, 0xef}
	index := []byte(`<!doctype html><html><head><script type="module" src="./app.js"></script></head><body><img src="/logo.png"></body></html>`)

	for name, data := range map[string][]byte{"index.html": index, "app.js": appJS, "logo.png": logo} {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), data, 0644))
	}

	files, err := site.Collect(root, site.CollectOptions{})
	require.NoError(t, err)
	payload, err := files.Marshal()
	require.NoError(t, err)

	env, err := envelope.Encrypt(payload, "secret")
	require.NoError(t, err)

	p := newTestPage()
	client := NewClient(env, p.Page(), nil)
	require.NoError(t, client.Submit("secret"))

	html, ok := p.doc.HTML()
	require.True(t, ok)
	require.NotContains(t, html, "./app.js")
	require.NotContains(t, html, "/logo.png")

	srcs := extractSrcs(html)
	require.Len(t, srcs, 2)

	want := map[string][]byte{"application/javascript": appJS, "image/png": logo}
	for _, src := range srcs {
		require.True(t, strings.HasPrefix(src, "blob:"))
		obj, ok := p.objects.Resolve(src)
		require.True(t, ok, "reference %q must be loadable", src)
		require.True(t, bytes.Equal(want[obj.MIMEType], obj.Data), "content for %s", obj.MIMEType)
	}
}
