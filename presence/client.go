package presence

import (
	"context"
	"errors"

	"github.com/yllada/pxls-desktop/common"
)

// Client is a connected rich presence session.
type Client interface {
	SetActivity(ctx context.Context, pid int, activity *Activity) error
	ClearActivity(ctx context.Context, pid int) error
	Close() error
}

// DialFunc opens a Client.
type DialFunc func(ctx context.Context) (Client, error)

// rpcClient implements Client on top of an IPC Conn.
type rpcClient struct {
	conn *Conn
}

type setActivityArgs struct {
	PID      int       `json:"pid"`
	Activity *Activity `json:"activity,omitempty"`
}

func (c *rpcClient) SetActivity(ctx context.Context, pid int, activity *Activity) error {
	_, err := c.conn.Command(ctx, "SET_ACTIVITY", setActivityArgs{PID: pid, Activity: activity})
	return err
}

// ClearActivity sends SET_ACTIVITY without an activity, which Discord
// treats as a clear.
func (c *rpcClient) ClearActivity(ctx context.Context, pid int) error {
	_, err := c.conn.Command(ctx, "SET_ACTIVITY", setActivityArgs{PID: pid})
	return err
}

func (c *rpcClient) Close() error {
	return c.conn.Close()
}

// Dialer returns a DialFunc that tries each endpoint in order and
// handshakes with the first one that accepts.
func Dialer(clientID string, endpoints ...string) DialFunc {
	return func(ctx context.Context) (Client, error) {
		candidates := endpoints
		if len(candidates) == 0 {
			candidates = Endpoints()
		}

		var lastErr error
		for _, endpoint := range candidates {
			rwc, err := dialEndpoint(ctx, endpoint)
			if err != nil {
				lastErr = err
				continue
			}

			conn, err := NewConn(ctx, rwc, clientID)
			if err != nil {
				// A live socket that rejects us is a real answer.
				return nil, err
			}
			log.Info("Connected to Discord at %s", endpoint)
			return &rpcClient{conn: conn}, nil
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if lastErr != nil {
			log.Debug("Last dial error: %v", lastErr)
		}
		return nil, common.ErrPresenceUnavailable
	}
}

// isBroken reports whether err means the connection can no longer be used.
// Errors reported by Discord itself leave the stream intact; anything else
// (I/O failures, a close frame, an interrupted read) does not.
func isBroken(err error) bool {
	var rpcErr *RPCError
	return !errors.As(err, &rpcErr)
}
