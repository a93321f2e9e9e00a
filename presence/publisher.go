package presence

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/yllada/pxls-desktop/common"
	"golang.org/x/sync/singleflight"
)

// State is the connection state of a Publisher.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
)

// String returns a human-readable state.
func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "Disconnected"
	case StateConnecting:
		return "Connecting..."
	case StateConnected:
		return "Connected"
	default:
		return "Unknown"
	}
}

// Dialog titles shown when an operation fails.
const (
	UpdateFailedTitle = "Cannot update rich presence"
	ClearFailedTitle  = "Cannot clear rich presence"
)

var log = common.Named("presence")

// Publisher owns the single Discord connection of the process. Every
// Publish and Clear waits on the same connection attempt; once it succeeds
// the connection is reused until it breaks.
type Publisher struct {
	dial     DialFunc
	reporter common.ErrorReporter
	pid      int
	timeout  time.Duration

	group singleflight.Group

	mu         sync.Mutex
	client     Client
	connecting bool
	closed     bool
}

// NewPublisher creates a publisher. reporter may be nil.
func NewPublisher(dial DialFunc, reporter common.ErrorReporter) *Publisher {
	return &Publisher{
		dial:     dial,
		reporter: reporter,
		pid:      os.Getpid(),
		timeout:  common.PresenceTimeout,
	}
}

// State returns the current connection state.
func (p *Publisher) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch {
	case p.closed:
		return StateDisconnected
	case p.client != nil:
		return StateConnected
	case p.connecting:
		return StateConnecting
	default:
		return StateDisconnected
	}
}

// Connect starts the connection attempt in the background. Later calls
// join it instead of dialing again.
func (p *Publisher) Connect() {
	go func() {
		if _, err := p.connection(context.Background()); err != nil {
			log.Warn("Connection attempt failed: %v", err)
		}
	}()
}

// Publish shows payload on the user's profile. Failures are reported to
// the user and returned; they are never retried.
func (p *Publisher) Publish(ctx context.Context, payload Payload) error {
	err := p.do(ctx, func(ctx context.Context, c Client) error {
		return c.SetActivity(ctx, p.pid, payload.Activity())
	})
	if err != nil {
		p.report(UpdateFailedTitle, err)
		return err
	}
	log.Debug("Published %q", payload.State)
	return nil
}

// Clear removes the status. Failures are handled like Publish.
func (p *Publisher) Clear(ctx context.Context) error {
	err := p.do(ctx, func(ctx context.Context, c Client) error {
		return c.ClearActivity(ctx, p.pid)
	})
	if err != nil {
		p.report(ClearFailedTitle, err)
		return err
	}
	log.Debug("Cleared activity")
	return nil
}

// Close closes the connection if one is open. A dial still in flight
// closes its client when it completes, and later calls fail with
// common.ErrPresenceClosed.
func (p *Publisher) Close() error {
	p.mu.Lock()
	c := p.client
	p.client = nil
	p.closed = true
	p.mu.Unlock()

	if c == nil {
		return nil
	}
	return c.Close()
}

func (p *Publisher) do(ctx context.Context, call func(context.Context, Client) error) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	c, err := p.connection(ctx)
	if err != nil {
		return err
	}

	if err := call(ctx, c); err != nil {
		if isBroken(err) {
			p.drop(c)
		}
		return err
	}
	return nil
}

// connection returns the cached client or joins the in-flight dial. A
// failed dial is not remembered; the next call dials again.
func (p *Publisher) connection(ctx context.Context) (Client, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, common.ErrPresenceClosed
	}
	if p.client != nil {
		c := p.client
		p.mu.Unlock()
		return c, nil
	}
	p.mu.Unlock()

	ch := p.group.DoChan("connect", func() (interface{}, error) {
		p.mu.Lock()
		if c := p.client; c != nil {
			p.mu.Unlock()
			return c, nil
		}
		p.mu.Unlock()

		p.setConnecting(true)
		defer p.setConnecting(false)

		// The dial outlives any single caller's context.
		dialCtx, cancel := context.WithTimeout(context.Background(), p.timeout)
		defer cancel()

		c, err := p.dial(dialCtx)
		if err != nil {
			return nil, err
		}

		p.mu.Lock()
		if p.closed {
			p.mu.Unlock()
			_ = c.Close()
			return nil, common.ErrPresenceClosed
		}
		p.client = c
		p.mu.Unlock()
		return c, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(Client), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (p *Publisher) setConnecting(v bool) {
	p.mu.Lock()
	p.connecting = v
	p.mu.Unlock()
}

// drop forgets c if it is still the cached client.
func (p *Publisher) drop(c Client) {
	p.mu.Lock()
	if p.client == c {
		p.client = nil
	}
	p.mu.Unlock()
	_ = c.Close()
	log.Info("Dropped broken Discord connection")
}

func (p *Publisher) report(title string, err error) {
	log.Warn("%s: %v", title, err)
	if p.reporter != nil {
		p.reporter.ReportError(title, err.Error())
	}
}
