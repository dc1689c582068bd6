package errdetect

// Sender turns a payload into a transmittable frame (data followed by its
// check value).
type Sender interface {
	Send(payload string) (frame string, steps Trace, err error)
}

// Receiver recomputes the check over a received frame.
type Receiver interface {
	Receive(frame string) (valid bool, steps Trace, err error)
}

// Codec is implemented by the parity, checksum, lrc and crc packages.
type Codec interface {
	Name() string
	Sender
	Receiver
}
