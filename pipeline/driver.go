// Package pipeline drives the Slicer/scan/merge loop: for every chunk, fan
// a scan task out to each mission's ScannerState, then k-way merge their
// findings into the output sink.
package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/coregx/glyphscan/scan"
)

// Writer is the subset of format.Writer the driver depends on.
type Writer interface {
	WriteFinding(f scan.Finding) error
	Flush() error
}

// Slicer is the subset of input.Slicer the driver depends on.
type Slicer interface {
	Next() (chunk []byte, sourceID *uint8, isLast bool, err error)
}

// Driver owns one Slicer and one ScannerState per mission for the
// lifetime of a scan.
type Driver struct {
	slicer Slicer
	states []*scan.ScannerState
	writer Writer
	log    *zap.SugaredLogger
}

// NewDriver builds a Driver. Run hands every chunk to every state in
// states; the merge orders findings by scan.Less, so the order of states
// does not affect the output (config.Build builds them in mission_id
// order).
func NewDriver(slicer Slicer, states []*scan.ScannerState, writer Writer, log *zap.SugaredLogger) *Driver {
	return &Driver{slicer: slicer, states: states, writer: writer, log: log}
}

// Run drives the scan to completion: it reads chunks from the Slicer until
// the final one, fanning each out to every mission and merging the
// resulting findings into the writer, then flushes the writer.
//
// ctx cancellation stops the fan-out at the next chunk boundary; it does
// not interrupt a scan call already in flight — scanners always complete
// their current chunk before a cancellation takes effect.
func (d *Driver) Run(ctx context.Context) error {
	for {
		chunk, sourceID, isLast, err := d.slicer.Next()
		if err != nil {
			return fmt.Errorf("pipeline: reading input: %w", err)
		}

		collections := make([]*scan.FindingCollection, len(d.states))
		g, gctx := errgroup.WithContext(ctx)
		for i, st := range d.states {
			i, st := i, st
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				collections[i] = scan.Scan(st, sourceID, chunk, isLast)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return fmt.Errorf("pipeline: scanning chunk: %w", err)
		}

		for i, c := range collections {
			if c.Overflow {
				d.log.Warnw("scratch overflow: findings lost for this window",
					"mission_id", d.states[i].Mission.MissionID,
					"source_id", sourceID,
				)
			}
		}

		if err := mergeWrite(collections, d.writer); err != nil {
			return fmt.Errorf("pipeline: writing output: %w", err)
		}

		if isLast {
			break
		}
	}
	return d.writer.Flush()
}
