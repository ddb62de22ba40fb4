package scan

import (
	"github.com/coregx/glyphscan/codec"
	"github.com/coregx/glyphscan/mission"
)

// ScannerState is the per-mission mutable state a scan() call advances.
// Exactly one ScannerState exists per Mission for the lifetime of a scan.
type ScannerState struct {
	Mission *mission.Mission

	decoder                codec.Decoder
	leftover               []byte
	rawResidue             []byte
	prevPrintedAndMaybeCut bool
	consumedBytes          uint64
}

// NewScannerState builds a fresh ScannerState bound to m, with
// consumed_bytes initialized to m.CounterOffset.
func NewScannerState(m *mission.Mission) *ScannerState {
	return &ScannerState{
		Mission:       m,
		decoder:       m.NewDecoder(),
		consumedBytes: m.CounterOffset,
	}
}

// Reset returns the state to Initial so it can be reused for an unrelated
// stream.
func (s *ScannerState) Reset() {
	s.decoder.Reset()
	s.leftover = s.leftover[:0]
	s.rawResidue = s.rawResidue[:0]
	s.prevPrintedAndMaybeCut = false
	s.consumedBytes = s.Mission.CounterOffset
}

// ConsumedBytes reports the offset of the next unprocessed input byte
// relative to the virtual stream start.
func (s *ScannerState) ConsumedBytes() uint64 { return s.consumedBytes }
