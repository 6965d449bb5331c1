package unlock

import (
	"testing"

	"github.com/PolarWolf314/sitelock/internal/envelope"
	"github.com/PolarWolf314/sitelock/internal/site"
	"github.com/stretchr/testify/require"
)

func testCipher() *envelope.Cipher {
	return &envelope.Cipher{Iterations: 1000}
}

func sealFiles(t *testing.T, c *envelope.Cipher, files site.FileMap, password string) string {
	t.Helper()
	payload, err := files.Marshal()
	require.NoError(t, err)
	env, err := c.Encrypt(payload, password)
	require.NoError(t, err)
	return env
}

func sampleSite() site.FileMap {
	files := make(site.FileMap)
	files.Add(site.TextRecord("index.html", `<html><head><script src="./app.js"></script></head><body><img src="/logo.png"></body></html>`))
	files.Add(site.TextRecord("app.js", "console.log('hi')"))
	files.Add(site.BinaryRecord("logo.png", []byte{0x89, 'P', 'N', 'G', 0, 1, 2}))
	return files
}

type testPage struct {
	doc     *Capture
	objects *MemoryObjects
	session *MemorySession
	form    *FormState
}

func newTestPage() testPage {
	return testPage{
		doc:     &Capture{},
		objects: &MemoryObjects{},
		session: &MemorySession{},
		form:    &FormState{},
	}
}

func (p testPage) Page() Page {
	return Page{Document: p.doc, Objects: p.objects, Session: p.session, Form: p.form}
}
