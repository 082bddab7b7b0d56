package handler

import (
	"bytes"
	"sync"
)

// Responses are small JSON documents, so a modest starting capacity covers
// nearly all of them without growth. Buffers that ballooned past the cap
// are dropped rather than pinned in the pool.
const (
	encodeBufferStartSize = 512
	encodeBufferMaxPooled = 64 * 1024
)

var encodeBuffers = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, encodeBufferStartSize))
	},
}

func borrowBuffer() *bytes.Buffer {
	return encodeBuffers.Get().(*bytes.Buffer)
}

func returnBuffer(buf *bytes.Buffer) {
	if buf.Cap() > encodeBufferMaxPooled {
		return
	}
	buf.Reset()
	encodeBuffers.Put(buf)
}
