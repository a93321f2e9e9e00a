package presence

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/yllada/pxls-desktop/common"
)

// Opcode identifies an IPC frame.
type Opcode uint32

const (
	OpHandshake Opcode = iota
	OpFrame
	OpClose
	OpPing
	OpPong
)

// maxFrameSize caps a single incoming frame; Discord replies are tiny.
const maxFrameSize = 1 << 20

// RPCError is an error reported by the Discord client.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("discord error %d: %s", e.Code, e.Message)
}

// message is the envelope of every OpFrame payload.
type message struct {
	Cmd   string          `json:"cmd"`
	Evt   string          `json:"evt,omitempty"`
	Nonce string          `json:"nonce,omitempty"`
	Args  interface{}     `json:"args,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Conn is a handshaken IPC connection. Commands are serialized; Discord
// answers them in order on a single stream.
type Conn struct {
	mu  sync.Mutex
	rwc io.ReadWriteCloser
}

// NewConn performs the handshake over rwc and waits for READY.
func NewConn(ctx context.Context, rwc io.ReadWriteCloser, clientID string) (*Conn, error) {
	c := &Conn{rwc: rwc}

	stop := c.closeOnDone(ctx)
	defer stop()

	handshake := map[string]interface{}{"v": 1, "client_id": clientID}
	if err := writeFrame(rwc, OpHandshake, handshake); err != nil {
		rwc.Close()
		return nil, fmt.Errorf("handshake: %w", err)
	}

	msg, err := c.awaitMessage(ctx)
	if err != nil {
		rwc.Close()
		return nil, fmt.Errorf("handshake: %w", ctxErr(ctx, err))
	}
	if msg.Cmd != "DISPATCH" || msg.Evt != "READY" {
		rwc.Close()
		return nil, fmt.Errorf("handshake: unexpected %s/%s", msg.Cmd, msg.Evt)
	}

	return c, nil
}

// Command sends cmd with args and returns the reply's data.
func (c *Conn) Command(ctx context.Context, cmd string, args interface{}) (json.RawMessage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stop := c.closeOnDone(ctx)
	defer stop()

	nonce := uuid.NewString()
	if err := writeFrame(c.rwc, OpFrame, message{Cmd: cmd, Nonce: nonce, Args: args}); err != nil {
		return nil, ctxErr(ctx, err)
	}

	for {
		msg, err := c.awaitMessage(ctx)
		if err != nil {
			return nil, ctxErr(ctx, err)
		}
		if msg.Nonce != nonce {
			continue
		}
		if msg.Evt == "ERROR" {
			rpcErr := &RPCError{}
			if err := json.Unmarshal(msg.Data, rpcErr); err != nil {
				return nil, fmt.Errorf("malformed error reply: %w", err)
			}
			return nil, rpcErr
		}
		return msg.Data, nil
	}
}

// Close sends a close frame and closes the stream.
func (c *Conn) Close() error {
	_ = writeFrame(c.rwc, OpClose, map[string]interface{}{})
	return c.rwc.Close()
}

// readMessage reads frames until an OpFrame arrives, answering pings and
// turning close frames into errors.
func (c *Conn) readMessage() (*message, error) {
	for {
		op, body, err := readFrame(c.rwc)
		if err != nil {
			return nil, err
		}

		switch op {
		case OpFrame:
			msg := &message{}
			if err := json.Unmarshal(body, msg); err != nil {
				return nil, fmt.Errorf("malformed frame: %w", err)
			}
			return msg, nil
		case OpPing:
			if err := writeRaw(c.rwc, OpPong, body); err != nil {
				return nil, err
			}
		case OpClose:
			rpcErr := &RPCError{}
			if json.Unmarshal(body, rpcErr) == nil && rpcErr.Message != "" {
				return nil, fmt.Errorf("%w: %s", common.ErrPresenceClosed, rpcErr.Message)
			}
			return nil, common.ErrPresenceClosed
		}
	}
}

// awaitMessage is readMessage bounded by ctx. Closing a stream does not
// interrupt a blocking read on every platform (synchronous named pipes on
// Windows), so the read runs on its own goroutine and is abandoned when
// ctx ends. The stream is closed then and the connection is unusable.
func (c *Conn) awaitMessage(ctx context.Context) (*message, error) {
	if ctx.Done() == nil {
		return c.readMessage()
	}

	type result struct {
		msg *message
		err error
	}
	ch := make(chan result, 1)
	go func() {
		msg, err := c.readMessage()
		ch <- result{msg, err}
	}()

	select {
	case r := <-ch:
		return r.msg, r.err
	case <-ctx.Done():
		c.rwc.Close()
		return nil, ctx.Err()
	}
}

// closeOnDone closes the stream if ctx ends before the returned stop is
// called, unblocking any pending read.
func (c *Conn) closeOnDone(ctx context.Context) (stop func()) {
	if ctx.Done() == nil {
		return func() {}
	}
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			c.rwc.Close()
		case <-done:
		}
	}()
	return func() { close(done) }
}

func writeFrame(w io.Writer, op Opcode, v interface{}) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return writeRaw(w, op, body)
}

func writeRaw(w io.Writer, op Opcode, body []byte) error {
	buf := make([]byte, 8+len(body))
	binary.LittleEndian.PutUint32(buf[0:4], uint32(op))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(len(body)))
	copy(buf[8:], body)
	_, err := w.Write(buf)
	return err
}

func readFrame(r io.Reader) (Opcode, []byte, error) {
	var header [8]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return 0, nil, err
	}
	op := Opcode(binary.LittleEndian.Uint32(header[0:4]))
	size := binary.LittleEndian.Uint32(header[4:8])
	if size > maxFrameSize {
		return 0, nil, fmt.Errorf("frame of %d bytes exceeds limit", size)
	}
	body := make([]byte, size)
	if _, err := io.ReadFull(r, body); err != nil {
		return 0, nil, err
	}
	return op, body, nil
}

// ctxErr prefers the context's error when the stream was closed because
// the context ended.
func ctxErr(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return common.ErrPresenceClosed
	}
	return err
}
