// Package wire frames payloads for the coordinator/worker stream protocol.
//
// Each frame is a 1-byte kind tag, a big-endian uint32 body length, and the
// body. Chunk bodies are raw UTF-8 text, table bodies are JSON objects, and
// the shutdown sentinel has an empty body. The tag makes a chunk whose text
// happens to be "DONE" structurally distinct from the shutdown sentinel.
package wire

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrMalformedPayload is returned when a frame is truncated, oversized, or
// carries a body that does not parse. It terminates the current connection
// only; no resync is attempted.
var ErrMalformedPayload = errors.New("wire: malformed payload")

// MaxBodySize caps a single frame body. A length prefix beyond this is
// treated as corruption rather than an allocation request.
const MaxBodySize = 64 << 20

const (
	kindChunk byte = 0x01
	kindTable byte = 0x02
	kindDone  byte = 0x03
)

const headerSize = 5

// Payload is the tagged union carried by one frame: Chunk, Table, or Done.
type Payload interface {
	kind() byte
}

// Chunk is a contiguous slice of the input text assigned to one worker.
type Chunk struct {
	Text string
}

func (Chunk) kind() byte { return kindChunk }

// Table is a word-frequency table, the partial or aggregate count result.
type Table map[string]int

func (Table) kind() byte { return kindTable }

// Done is the termination sentinel. Receiving it tells a worker to shut down.
type Done struct{}

func (Done) kind() byte { return kindDone }

// WritePayload encodes p as one frame on w.
func WritePayload(w io.Writer, p Payload) error {
	var body []byte
	switch v := p.(type) {
	case Chunk:
		body = []byte(v.Text)
	case Table:
		var err error
		body, err = json.Marshal(v)
		if err != nil {
			return fmt.Errorf("wire: encode table: %w", err)
		}
	case Done:
	default:
		return fmt.Errorf("wire: unknown payload type %T", p)
	}

	header := make([]byte, headerSize)
	header[0] = p.kind()
	binary.BigEndian.PutUint32(header[1:], uint32(len(body)))
	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("wire: write header: %w", err)
	}
	if len(body) > 0 {
		if _, err := w.Write(body); err != nil {
			return fmt.Errorf("wire: write body: %w", err)
		}
	}
	return nil
}

// ReadPayload decodes exactly one frame from r. A clean EOF before any byte
// of the header arrives is reported as io.EOF so callers can tell a peer
// hangup apart from a corrupt frame; everything else that cuts a frame short
// is ErrMalformedPayload.
func ReadPayload(r io.Reader) (Payload, error) {
	header := make([]byte, headerSize)
	if _, err := io.ReadFull(r, header); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("%w: short header: %v", ErrMalformedPayload, err)
	}

	size := binary.BigEndian.Uint32(header[1:])
	if size > MaxBodySize {
		return nil, fmt.Errorf("%w: body length %d exceeds limit", ErrMalformedPayload, size)
	}

	body := make([]byte, size)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, fmt.Errorf("%w: short body: %v", ErrMalformedPayload, err)
	}

	switch header[0] {
	case kindChunk:
		return Chunk{Text: string(body)}, nil
	case kindTable:
		table := Table{}
		if err := json.Unmarshal(body, &table); err != nil {
			return nil, fmt.Errorf("%w: table body: %v", ErrMalformedPayload, err)
		}
		return table, nil
	case kindDone:
		if size != 0 {
			return nil, fmt.Errorf("%w: sentinel with %d-byte body", ErrMalformedPayload, size)
		}
		return Done{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown kind 0x%02x", ErrMalformedPayload, header[0])
	}
}
