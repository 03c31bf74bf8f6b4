package protocol

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
)

// EncodeRLE encodes a sequence of tile codes into base64(varint
// stream). The stream opens with the total element count, then (code,
// run_len) pairs. Terrain over the arena order is dominated by long
// ocean runs, so this shrinks a compact snapshot to a fraction of the
// per-tile form. The leading count lets a decoder size its output up
// front and reject truncated payloads.
func EncodeRLE(codes []uint16) string {
	var buf bytes.Buffer
	var tmp [binary.MaxVarintLen64]byte

	n := binary.PutUvarint(tmp[:], uint64(len(codes)))
	buf.Write(tmp[:n])

	i := 0
	for i < len(codes) {
		c := codes[i]
		run := 1
		for j := i + 1; j < len(codes) && codes[j] == c && run < 1<<31; j++ {
			run++
		}

		n = binary.PutUvarint(tmp[:], uint64(c))
		buf.Write(tmp[:n])
		n = binary.PutUvarint(tmp[:], uint64(run))
		buf.Write(tmp[:n])

		i += run
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func DecodeRLE(b64 string) ([]uint16, error) {
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, err
	}
	total, n := binary.Uvarint(raw)
	if n <= 0 {
		return nil, fmt.Errorf("missing element count")
	}
	if total > 1<<26 {
		return nil, fmt.Errorf("element count too large: %d", total)
	}
	i := n

	out := make([]uint16, 0, total)
	for i < len(raw) {
		c, n := binary.Uvarint(raw[i:])
		if n <= 0 {
			return nil, fmt.Errorf("bad varint at %d", i)
		}
		i += n
		run, n := binary.Uvarint(raw[i:])
		if n <= 0 {
			return nil, fmt.Errorf("bad varint at %d", i)
		}
		i += n
		if c > 0xFFFF {
			return nil, fmt.Errorf("tile code too large: %d", c)
		}
		if run == 0 || uint64(len(out))+run > total {
			return nil, fmt.Errorf("run overflows declared count %d", total)
		}
		for k := 0; k < int(run); k++ {
			out = append(out, uint16(c))
		}
	}
	if uint64(len(out)) != total {
		return nil, fmt.Errorf("truncated stream: %d of %d elements", len(out), total)
	}
	return out, nil
}
