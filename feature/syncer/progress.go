package syncer

// Progress is one milestone of a run.
type Progress struct {
	State   State  `json:"state"`
	Message string `json:"message"`
	Percent int    `json:"progress"`
}

// ProgressFunc receives progress milestones. It is called from the run's goroutine.
type ProgressFunc func(Progress)

// Percentages at the run's milestones. Resolving fills searchDone to
// resolveDone and merging fills resolveDone to recordsDone.
const (
	fetchDone   = 20
	searchDone  = 40
	resolveDone = 70
	recordsDone = 95
)

// tracker forwards milestones to a ProgressFunc, keeping percentages
// monotonic and throttling per-record updates.
type tracker struct {
	fn    ProgressFunc
	every int
	step  int

	last       int
	phase      State
	lastRecord int
}

func newTracker(fn ProgressFunc, every, step int) *tracker {
	if every <= 0 {
		every = 10
	}
	if step <= 0 {
		step = 5
	}
	return &tracker{fn: fn, every: every, step: step, last: -1}
}

func (t *tracker) report(state State, percent int, message string) {
	percent = min(max(percent, t.last, 0), 100)
	t.last = percent
	if t.fn != nil {
		t.fn(Progress{State: state, Message: message, Percent: percent})
	}
}

// record reports the i-th of n records processed in state, mapping progress
// onto the from..to span. It reports when enough records or enough percent
// have passed since the last report, and always for the last one.
func (t *tracker) record(state State, from, to, i, n int, message string) {
	if n <= 0 {
		return
	}
	if state != t.phase {
		t.phase = state
		t.lastRecord = 0
	}
	percent := from + (to-from)*i/n
	if i != n && i-t.lastRecord < t.every && percent-t.last < t.step {
		return
	}
	t.lastRecord = i
	t.report(state, percent, message)
}
