package dispatch

import "bytes"

// newPacketReader adapts one already-received datagram to the io.Reader
// discriminator.NewSource expects, so ServePacket can reuse the same
// Namespace.Parse path Serve uses for streams.
func newPacketReader(b []byte) *bytes.Reader {
	return bytes.NewReader(b)
}
