package viz

import (
	"bufio"
	"io"
	"sync"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/klauspost/compress/gzip"
	"github.com/segmentio/encoding/json"
	"github.com/skuggalabs/skuggi/fov"
	"github.com/skuggalabs/skuggi/models"
)

// Recorder writes draw commands as gzip-compressed JSON lines, one command
// per line, for offline replay. Draw calls after a write error are dropped;
// the error surfaces from Close.
type Recorder struct {
	mutex sync.Mutex
	gzip  *gzip.Writer
	buf   *bufio.Writer
	err   error
}

func NewRecorder(w io.Writer) *Recorder {
	gz := gzip.NewWriter(w)
	return &Recorder{
		gzip: gz,
		buf:  bufio.NewWriter(gz),
	}
}

func (r *Recorder) DrawRect(plane fov.Plane, depth float32, rect fov.Rect, c fov.Color) {
	r.record(rectCommand(plane, depth, rect, c))
}

func (r *Recorder) DrawLine(from, to models.Vec3f, c fov.Color) {
	r.record(lineCommand(from, to, c))
}

func (r *Recorder) record(cmd Command) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.err != nil {
		return
	}

	b, err := json.Marshal(cmd)
	if err != nil {
		r.err = errors.New("encoding draw command failed").Wrap(err)
		return
	}
	b = append(b, '\n')

	if _, err := r.buf.Write(b); err != nil {
		r.err = errors.New("writing draw command failed").Wrap(err)
	}
}

// Close flushes the recording and returns the first error hit while writing,
// if any.
func (r *Recorder) Close() error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if err := r.buf.Flush(); err != nil && r.err == nil {
		r.err = errors.New("flushing draw commands failed").Wrap(err)
	}
	if err := r.gzip.Close(); err != nil && r.err == nil {
		r.err = errors.New("closing recording failed").Wrap(err)
	}
	return r.err
}
