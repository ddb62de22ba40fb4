// Package codec adapts the concrete encoding library — treated as an
// external collaborator — into the decoder contract scan.Scan drives.
//
// Every mission owns exactly one Decoder instance, created once (by Factory)
// and fed successive windows for the lifetime of a scan. A Decoder never
// does BOM sniffing: mission.Build selects an encoding explicitly, and BOM
// handling is out of scope entirely.
package codec

// Decoder is a stateful decoder bound to one encoding. It behaves like
// golang.org/x/text/transform.Transformer.Transform, which has exactly the
// (dst, src, atEOF) -> (nDst, nSrc, err) shape this decoder contract
// needs; Decode just replaces the transform-package error sentinels with
// the three-way Status enum scan.Scan switches on.
type Decoder interface {
	// Decode writes as much decoded UTF-8 as fits into dst, consuming from
	// src. atEOF tells the decoder that src is the final bytes of the
	// entire input stream (the "extra round" flush).
	Decode(dst, src []byte, atEOF bool) (status Status, nDst, nSrc int)

	// Reset clears any carried decoder state (shift state, pending
	// continuation bytes) so the same Decoder instance can be reused for
	// an unrelated stream, per the ScannerState lifecycle.
	Reset()
}

// Factory creates a fresh Decoder for one mission's encoding, with no BOM
// handling — the decoder factory field on Mission.
type Factory func() Decoder
