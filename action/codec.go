package action

import (
	"github.com/cockroachdb/errors"
)

var (
	ErrUnsupportedAction = errors.New("action: unsupported action")
	ErrShortBuffer       = errors.New("action: destination buffer too short")
)

// Codec is the stateless action list codec.
type Codec struct{}

func (Codec) ActionLen(a Action) (int, error) {
	if a == nil {
		return 0, errors.Wrap(ErrUnsupportedAction, "nil action")
	}
	return a.Len(), nil
}

// PackAction writes a into data and returns the bytes written.
func (Codec) PackAction(a Action, data []byte) (int, error) {
	if a == nil {
		return 0, errors.Wrap(ErrUnsupportedAction, "nil action")
	}
	length := a.Len()
	if len(data) < length {
		return 0, errors.Wrapf(ErrShortBuffer, "action type %d needs %d bytes, have %d", a.Type(), length, len(data))
	}
	a.put(data[:length])
	return length, nil
}

// Len sums the wire length of an action list.
func Len(actions []Action) int {
	length := 0
	for _, a := range actions {
		length += a.Len()
	}
	return length
}

// Marshal packs an action list into a new buffer.
func Marshal(actions []Action) []byte {
	buf := make([]byte, Len(actions))
	cur := 0
	for _, a := range actions {
		length := a.Len()
		a.put(buf[cur : cur+length])
		cur += length
	}
	return buf
}
