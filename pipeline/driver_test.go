package pipeline

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/coregx/glyphscan/mission"
	"github.com/coregx/glyphscan/scan"
)

type fakeSlicer struct {
	chunks [][]byte
	i      int
}

func (f *fakeSlicer) Next() ([]byte, *uint8, bool, error) {
	chunk := f.chunks[f.i]
	isLast := f.i == len(f.chunks)-1
	f.i++
	return chunk, nil, isLast, nil
}

type fakeWriter struct {
	findings []scan.Finding
	flushed  bool
}

func (w *fakeWriter) WriteFinding(f scan.Finding) error {
	w.findings = append(w.findings, f)
	return nil
}

func (w *fakeWriter) Flush() error {
	w.flushed = true
	return nil
}

func TestDriverFansOutAndMergesInOrder(t *testing.T) {
	mAscii, err := mission.Build("ascii,3", mission.Override{}, 0, 0, 80, false)
	if err != nil {
		t.Fatal(err)
	}
	mUTF8, err := mission.Build("utf8,3", mission.Override{}, 1, 0, 80, false)
	if err != nil {
		t.Fatal(err)
	}

	states := []*scan.ScannerState{
		scan.NewScannerState(&mAscii),
		scan.NewScannerState(&mUTF8),
	}

	slicer := &fakeSlicer{chunks: [][]byte{[]byte("foobar baz")}}
	writer := &fakeWriter{}
	logger := zap.NewNop().Sugar()

	d := NewDriver(slicer, states, writer, logger)
	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if !writer.flushed {
		t.Fatal("expected writer to be flushed")
	}
	if len(writer.findings) == 0 {
		t.Fatal("expected at least one finding")
	}
	for i := 1; i < len(writer.findings); i++ {
		if scan.Less(writer.findings[i], writer.findings[i-1]) {
			t.Fatalf("findings not in merge order: %+v before %+v", writer.findings[i-1], writer.findings[i])
		}
	}
}
