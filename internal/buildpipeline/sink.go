package buildpipeline

import "time"

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// EmitQueued marks every file as waiting for the first stage.
func EmitQueued(sink ProgressSink, files []string) {
	if sink == nil {
		return
	}
	for _, file := range files {
		sink.OnEvent(Event{File: file, Stage: StageTokenize, Status: StatusQueued})
	}
}

// EmitFile reports one file's progress through a stage.
func EmitFile(sink ProgressSink, file string, stage Stage, status Status, err error) {
	if sink == nil {
		return
	}
	sink.OnEvent(Event{File: file, Stage: stage, Status: status, Err: err})
}

// EmitFinished reports a file's terminal state with its total duration.
// failed означает диагностики уровня error, а не сбой Go-уровня.
func EmitFinished(sink ProgressSink, file string, stage Stage, failed bool, elapsed time.Duration) {
	if sink == nil {
		return
	}
	status := StatusDone
	if failed {
		status = StatusError
	}
	sink.OnEvent(Event{File: file, Stage: stage, Status: status, Elapsed: elapsed})
}
