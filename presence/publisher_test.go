package presence

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yllada/pxls-desktop/common"
)

type call struct {
	op       string
	activity *Activity
}

type fakeClient struct {
	mu     sync.Mutex
	calls  []call
	err    error
	closed bool
}

func (f *fakeClient) SetActivity(_ context.Context, _ int, a *Activity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{op: "set", activity: a})
	return f.err
}

func (f *fakeClient) ClearActivity(context.Context, int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{op: "clear"})
	return f.err
}

func (f *fakeClient) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

type fakeReporter struct {
	mu      sync.Mutex
	reports [][2]string
}

func (r *fakeReporter) ReportError(title, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, [2]string{title, message})
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state    State
		expected string
	}{
		{StateDisconnected, "Disconnected"},
		{StateConnecting, "Connecting..."},
		{StateConnected, "Connected"},
		{State(99), "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.state.String())
		})
	}
}

func TestPayload_Activity(t *testing.T) {
	boot := time.UnixMilli(1_600_000_000_123)
	a := DefaultPayload(boot).Activity()

	assert.Equal(t, common.PresenceState, a.State)
	require.NotNil(t, a.Timestamps)
	assert.Equal(t, int64(1_600_000_000_123), a.Timestamps.Start)
	require.NotNil(t, a.Assets)
	assert.Equal(t, common.PresenceImageKey, a.Assets.LargeImage)
	assert.True(t, a.Instance)

	empty := Payload{}.Activity()
	assert.Nil(t, empty.Timestamps)
	assert.Nil(t, empty.Assets)
}

func TestPublisher_ConcurrentCallersShareOneDial(t *testing.T) {
	client := &fakeClient{}
	release := make(chan struct{})
	var dials atomic.Int32

	p := NewPublisher(func(ctx context.Context) (Client, error) {
		dials.Add(1)
		<-release
		return client, nil
	}, nil)

	p.Connect()
	assert.Eventually(t, func() bool { return p.State() == StateConnecting }, time.Second, 5*time.Millisecond)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, p.Publish(context.Background(), DefaultPayload(time.Now())))
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), dials.Load())
	assert.Equal(t, StateConnected, p.State())
	assert.Len(t, client.calls, 8)

	require.NoError(t, p.Clear(context.Background()))
	assert.Equal(t, int32(1), dials.Load(), "connected publisher reuses the client")
}

func TestPublisher_DialFailureIsReported(t *testing.T) {
	reporter := &fakeReporter{}
	var dials atomic.Int32
	p := NewPublisher(func(ctx context.Context) (Client, error) {
		dials.Add(1)
		return nil, common.ErrPresenceUnavailable
	}, reporter)

	err := p.Publish(context.Background(), DefaultPayload(time.Now()))
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrPresenceUnavailable))

	err = p.Clear(context.Background())
	require.Error(t, err)

	require.Len(t, reporter.reports, 2)
	assert.Equal(t, UpdateFailedTitle, reporter.reports[0][0])
	assert.Equal(t, common.ErrPresenceUnavailable.Error(), reporter.reports[0][1])
	assert.Equal(t, ClearFailedTitle, reporter.reports[1][0])

	assert.Equal(t, int32(2), dials.Load(), "each user action dials afresh after a failure")
	assert.Equal(t, StateDisconnected, p.State())
}

func TestPublisher_RPCErrorKeepsConnection(t *testing.T) {
	client := &fakeClient{err: &RPCError{Code: 4000, Message: "bad activity"}}
	reporter := &fakeReporter{}
	p := NewPublisher(func(context.Context) (Client, error) { return client, nil }, reporter)

	err := p.Publish(context.Background(), DefaultPayload(time.Now()))
	var rpcErr *RPCError
	require.True(t, errors.As(err, &rpcErr))
	assert.Equal(t, 4000, rpcErr.Code)

	assert.Equal(t, StateConnected, p.State())
	assert.False(t, client.closed)
	require.Len(t, reporter.reports, 1)
	assert.Contains(t, reporter.reports[0][1], "bad activity")
}

func TestPublisher_BrokenConnectionIsDropped(t *testing.T) {
	broken := &fakeClient{err: common.ErrPresenceClosed}
	healthy := &fakeClient{}
	clients := []*fakeClient{broken, healthy}
	var dials atomic.Int32

	p := NewPublisher(func(context.Context) (Client, error) {
		c := clients[dials.Load()]
		dials.Add(1)
		return c, nil
	}, &fakeReporter{})

	require.Error(t, p.Publish(context.Background(), DefaultPayload(time.Now())))
	assert.True(t, broken.closed)
	assert.Equal(t, StateDisconnected, p.State())

	require.NoError(t, p.Publish(context.Background(), DefaultPayload(time.Now())))
	assert.Equal(t, int32(2), dials.Load())
	assert.Len(t, healthy.calls, 1)
}

func TestPublisher_RepeatedPublishIsHarmless(t *testing.T) {
	client := &fakeClient{}
	p := NewPublisher(func(context.Context) (Client, error) { return client, nil }, nil)
	payload := DefaultPayload(time.Unix(100, 0))

	for i := 0; i < 3; i++ {
		require.NoError(t, p.Publish(context.Background(), payload))
	}

	require.Len(t, client.calls, 3)
	for _, c := range client.calls {
		assert.Equal(t, payload.Activity(), c.activity)
	}
}

func TestPublisher_Close(t *testing.T) {
	client := &fakeClient{}
	p := NewPublisher(func(context.Context) (Client, error) { return client, nil }, nil)

	require.NoError(t, p.Clear(context.Background()))
	require.NoError(t, p.Close())
	require.NoError(t, p.Close(), "closing twice is fine")
	assert.True(t, client.closed)
	assert.Equal(t, StateDisconnected, p.State())

	err := p.Publish(context.Background(), DefaultPayload(time.Now()))
	assert.True(t, errors.Is(err, common.ErrPresenceClosed))
}

func TestPublisher_CloseDuringDial(t *testing.T) {
	client := &fakeClient{}
	dialing := make(chan struct{})
	release := make(chan struct{})
	p := NewPublisher(func(context.Context) (Client, error) {
		close(dialing)
		<-release
		return client, nil
	}, nil)

	p.Connect()
	<-dialing
	assert.Equal(t, StateConnecting, p.State())

	require.NoError(t, p.Close())
	close(release)

	require.Eventually(t, func() bool {
		client.mu.Lock()
		defer client.mu.Unlock()
		return client.closed
	}, time.Second, 5*time.Millisecond, "a client dialed after Close must be closed")
	assert.Equal(t, StateDisconnected, p.State())
}
