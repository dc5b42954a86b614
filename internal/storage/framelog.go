package storage

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/san-kum/isocontour/internal/sim"
)

// FrameLog streams frame rows to w as a run progresses. It implements
// sim.Observer; write failures are kept and reported by Err.
type FrameLog struct {
	w             io.Writer
	headerWritten bool
	err           error
}

func NewFrameLog(w io.Writer) *FrameLog {
	return &FrameLog{w: w}
}

func (l *FrameLog) OnFrame(f sim.Frame) {
	if l.err != nil {
		return
	}
	records := FrameRecords([]sim.Stats{f.Stats()})

	if !l.headerWritten {
		if err := gocsv.Marshal(records, l.w); err != nil {
			l.err = fmt.Errorf("writing frame: %w", err)
			return
		}
		l.headerWritten = true
		return
	}
	if err := gocsv.MarshalWithoutHeaders(records, l.w); err != nil {
		l.err = fmt.Errorf("writing frame: %w", err)
	}
}

func (l *FrameLog) Err() error { return l.err }
