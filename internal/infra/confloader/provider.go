package confloader

import "errors"

// ErrReadBytesNotSupported is returned when ReadBytes is called on the
// in-memory provider.
var ErrReadBytesNotSupported = errors.New("confloader: in-memory provider has no byte form, use Read()")

// mapProvider adapts an already-parsed configuration map to the koanf
// provider interface. koanf calls Read() when ReadBytes() reports it is
// unsupported.
type mapProvider map[string]any

func (m mapProvider) ReadBytes() ([]byte, error) {
	return nil, ErrReadBytesNotSupported
}

func (m mapProvider) Read() (map[string]any, error) {
	return m, nil
}
