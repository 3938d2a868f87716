package loader

import "context"

// BytesLoader serves fixed in-memory content regardless of the requested
// file. It adapts already-read bytes, multipart uploads for example, to APIs
// that expect a FileLoader.
type BytesLoader struct {
	Data []byte
}

// Load returns the wrapped bytes.
func (b BytesLoader) Load(_ context.Context, _ InputFile) ([]byte, error) {
	return b.Data, nil
}
