// Package presence publishes Discord rich presence over the local IPC
// endpoint exposed by the Discord desktop client.
//
// # Protocol
//
// The client listens on a unix socket (discord-ipc-N under the runtime or
// temp directory) or a Windows named pipe. Every frame is an 8-byte little
// endian header, opcode then body length, followed by a JSON body. After a
// handshake answered by DISPATCH/READY, commands carry a nonce that the
// matching reply echoes.
//
// # Connection sharing
//
// Publisher starts one connection attempt at startup. Publish and Clear
// calls made while it is in flight wait for the same attempt instead of
// opening their own, and reuse the connection once it is up.
package presence
