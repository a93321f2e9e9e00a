package presence

import (
	"time"

	"github.com/yllada/pxls-desktop/common"
)

// Payload is the status the application shows on the user's profile.
type Payload struct {
	State          string
	StartTimestamp time.Time
	LargeImageKey  string
	Instance       bool
}

// DefaultPayload returns the status published while the canvas is open.
// bootTime is fixed for the life of the process.
func DefaultPayload(bootTime time.Time) Payload {
	return Payload{
		State:          common.PresenceState,
		StartTimestamp: bootTime,
		LargeImageKey:  common.PresenceImageKey,
		Instance:       true,
	}
}

// Activity is the wire form of a payload in a SET_ACTIVITY command.
type Activity struct {
	State      string      `json:"state,omitempty"`
	Timestamps *Timestamps `json:"timestamps,omitempty"`
	Assets     *Assets     `json:"assets,omitempty"`
	Instance   bool        `json:"instance"`
}

// Timestamps holds epoch milliseconds.
type Timestamps struct {
	Start int64 `json:"start,omitempty"`
	End   int64 `json:"end,omitempty"`
}

// Assets names uploaded art.
type Assets struct {
	LargeImage string `json:"large_image,omitempty"`
	LargeText  string `json:"large_text,omitempty"`
	SmallImage string `json:"small_image,omitempty"`
	SmallText  string `json:"small_text,omitempty"`
}

// Activity converts the payload into its wire form.
func (p Payload) Activity() *Activity {
	a := &Activity{
		State:    p.State,
		Instance: p.Instance,
	}
	if !p.StartTimestamp.IsZero() {
		a.Timestamps = &Timestamps{Start: p.StartTimestamp.UnixMilli()}
	}
	if p.LargeImageKey != "" {
		a.Assets = &Assets{LargeImage: p.LargeImageKey}
	}
	return a
}
