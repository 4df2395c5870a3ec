package game

import (
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// Recorder writes snapshots as a msgpack stream, one value per recorded frame
type Recorder struct {
	enc    *msgpack.Encoder
	every  int
	seen   int
	frames int
	err    error
}

// NewRecorder creates a recorder that keeps every n-th frame (n < 1 keeps all)
func NewRecorder(w io.Writer, every int) *Recorder {
	return &Recorder{
		enc:   msgpack.NewEncoder(w),
		every: max(1, every),
	}
}

// Frame records a snapshot. The first encoding error stops recording.
func (r *Recorder) Frame(snap Snapshot) {
	if r.err != nil {
		return
	}
	r.seen++
	if (r.seen-1)%r.every != 0 && snap.Running {
		return
	}
	if err := r.enc.Encode(&snap); err != nil {
		r.err = fmt.Errorf("encode frame %d: %w", snap.Frame, err)
		return
	}
	r.frames++
}

// Frames returns the number of snapshots written
func (r *Recorder) Frames() int {
	return r.frames
}

// Err returns the first encoding error
func (r *Recorder) Err() error {
	return r.err
}

// ReadTrace decodes every snapshot of a recorded stream
func ReadTrace(rd io.Reader) ([]Snapshot, error) {
	dec := msgpack.NewDecoder(rd)
	var snaps []Snapshot
	for {
		var snap Snapshot
		err := dec.Decode(&snap)
		if errors.Is(err, io.EOF) {
			return snaps, nil
		}
		if err != nil {
			return snaps, fmt.Errorf("decode frame %d: %w", len(snaps), err)
		}
		snaps = append(snaps, snap)
	}
}

// MultiSink fans a snapshot out to several sinks
type MultiSink []FrameSink

func (m MultiSink) Frame(snap Snapshot) {
	for _, s := range m {
		if s != nil {
			s.Frame(snap)
		}
	}
}
