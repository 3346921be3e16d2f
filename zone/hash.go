package zone

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// contentHash computes the stable u64 hash of a zone's content plus its
// rect, per §3: "content_hash is recomputed whenever content or rect
// changes". xxhash gives a fast, stable, non-cryptographic digest — exactly
// what dirty-tracking needs and nothing more.
func contentHash(lines []string, rect Rect) uint64 {
	h := xxhash.New()
	var hdr [8]byte
	binary.LittleEndian.PutUint16(hdr[0:2], rect.X)
	binary.LittleEndian.PutUint16(hdr[2:4], rect.Y)
	binary.LittleEndian.PutUint16(hdr[4:6], rect.Width)
	binary.LittleEndian.PutUint16(hdr[6:8], rect.Height)
	_, _ = h.Write(hdr[:])
	for _, line := range lines {
		_, _ = h.WriteString(line)
		_, _ = h.Write([]byte{0}) // separator so {"ab","c"} != {"a","bc"}
	}
	return h.Sum64()
}
