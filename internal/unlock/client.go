package unlock

import (
	"sync"

	"github.com/PolarWolf314/sitelock/internal/envelope"
	kerrors "github.com/PolarWolf314/sitelock/internal/errors"
	"go.uber.org/atomic"
)

// State is the position of the password form in its lifecycle.
type State int

const (
	Idle State = iota
	Decrypting
	Unlocked
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Decrypting:
		return "decrypting"
	case Unlocked:
		return "unlocked"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Client drives one password page.
type Client struct {
	envelope string
	cipher   *envelope.Cipher
	page     Page

	inFlight atomic.Bool

	mu    sync.Mutex
	state State
}

// NewClient returns a client in the Idle state. A nil cipher uses the
// compatibility defaults.
func NewClient(encoded string, page Page, c *envelope.Cipher) *Client {
	if c == nil {
		c = envelope.New()
	}
	return &Client{envelope: encoded, cipher: c, page: page}
}

// State returns the current state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Client) setState(s State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = s
}

// Load tries the password cached in the session, if any. A failure is
// silent and leaves the client Idle. It reports whether the page unlocked.
func (c *Client) Load() bool {
	if c.page.Session == nil {
		return false
	}
	password, ok := c.page.Session.Get(envelope.SessionStorageKey)
	if !ok || password == "" {
		return false
	}
	return c.attempt(password, false) == nil
}

// Submit is a manual attempt from the form. On failure the error banner is
// shown and the form is enabled again.
func (c *Client) Submit(password string) error {
	return c.attempt(password, true)
}

func (c *Client) attempt(password string, manual bool) error {
	if c.State() == Unlocked {
		return nil
	}
	if !c.inFlight.CompareAndSwap(false, true) {
		return kerrors.ErrAttemptInFlight
	}
	defer c.inFlight.Store(false)

	c.setState(Decrypting)
	c.setBusy(true)
	c.showError(false)

	err := c.unlock(password)
	if err != nil {
		if manual {
			c.showError(true)
			c.setState(Failed)
		} else {
			c.setState(Idle)
		}
		c.setBusy(false)
		return kerrors.ErrAuthentication
	}

	c.setState(Unlocked)
	return nil
}

func (c *Client) unlock(password string) error {
	files, err := Decrypt(c.cipher, c.envelope, password)
	if err != nil {
		return err
	}

	if err := Rehydrate(c.page.Document, c.page.Objects, files); err != nil {
		return err
	}

	if c.page.Session != nil {
		c.page.Session.Set(envelope.SessionStorageKey, password)
	}
	return nil
}

func (c *Client) setBusy(busy bool) {
	if c.page.Form != nil {
		c.page.Form.SetBusy(busy)
	}
}

func (c *Client) showError(visible bool) {
	if c.page.Form != nil {
		c.page.Form.ShowError(visible)
	}
}
