package driver

import "shiftscan/internal/peaklist"

// Stage identifies a step of the batch pipeline.
type Stage uint8

const (
	StageRead Stage = iota + 1
	StageParse
	StageScore
	StageWrite
)

// String returns the string representation of Stage.
func (s Stage) String() string {
	switch s {
	case StageRead:
		return "read"
	case StageParse:
		return "parse"
	case StageScore:
		return "score"
	case StageWrite:
		return "write"
	default:
		return "unknown"
	}
}

// Status reports how far along a stage or row is.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	StatusError
)

// Event describes batch progress for interactive renderers.
// Row is empty for stage-wide events.
type Event struct {
	Row    string
	Stage  Stage
	Status Status
}

func sendEvent(ch chan<- Event, ev Event) {
	if ch == nil {
		return
	}
	ch <- ev
}

func stageStart(ch chan<- Event, s Stage) {
	sendEvent(ch, Event{Stage: s, Status: StatusWorking})
}

func stageDone(ch chan<- Event, s Stage) {
	sendEvent(ch, Event{Stage: s, Status: StatusDone})
}

func stageFail(ch chan<- Event, s Stage) {
	sendEvent(ch, Event{Stage: s, Status: StatusError})
}

// announceRows queues every residue so renderers can build their item list
// before scoring starts.
func announceRows(ch chan<- Event, peaks []peaklist.TitrationPeak) {
	if ch == nil {
		return
	}
	for _, pk := range peaks {
		ch <- Event{Row: pk.ID, Stage: StageScore, Status: StatusQueued}
	}
}
