package stream

import (
	"fmt"

	"github.com/tidemill/tilestream/stream/chunk"
)

// worker continuously processes generation tasks from the job queue. Each
// worker runs in its own goroutine and terminates when the Streamer is
// closed.
func (s *Streamer) worker() {
	defer s.running.Done()
	for {
		select {
		case t := <-s.jobs:
			s.runTask(t)
		case <-s.closing:
			return
		}
	}
}

// runTask executes the generation task passed and deposits exactly one
// result into the completion or failure channel. It never touches the
// scheduler's sets or the renderer; those are owned by the scheduling
// timeline.
func (s *Streamer) runTask(t task) {
	data, err := s.generate(t)
	if err != nil {
		select {
		case s.failures <- failureResult{pos: t.pos, epoch: t.epoch, err: err}:
		case <-s.closing:
		}
		return
	}
	select {
	case s.completions <- completion{data: data, epoch: t.epoch}:
	case <-s.closing:
	}
}

// generate runs the generator with a panic guard so that a worker always
// survives a faulty generator and still deposits a result for the task.
func (s *Streamer) generate(t task) (data *chunk.Data, err error) {
	defer func() {
		if r := recover(); r != nil {
			data, err = nil, fmt.Errorf("generate chunk %v: panic: %v", t.pos, r)
		}
	}()
	data, err = s.conf.Generator.GenerateChunk(t.pos)
	switch {
	case err != nil:
		return nil, fmt.Errorf("generate chunk %v: %w", t.pos, err)
	case data == nil:
		return nil, fmt.Errorf("generate chunk %v: generator returned no data", t.pos)
	}
	return data, nil
}
