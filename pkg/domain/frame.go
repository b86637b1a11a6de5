package domain

// Frame is one picture of a run with symbol and state names resolved.
// Handlers receive a Frame before every traced step.
type Frame struct {
	// Start is the position of Cells[0].
	Start int
	Cells []string
	Blank string
	Head  int
	State string
}

// FrameOf rebuilds the final frame of a persisted run, padding Cells with
// blank so the window always covers the head.
func FrameOf(rec RunRecord, blank string) Frame {
	f := Frame{
		Start: rec.TapeStart,
		Cells: append([]string(nil), rec.Tape...),
		Blank: blank,
		Head:  rec.Head,
		State: rec.State,
	}
	if len(f.Cells) == 0 {
		f.Start = rec.Head
		f.Cells = []string{blank}
		return f
	}
	for f.Head < f.Start {
		f.Cells = append([]string{blank}, f.Cells...)
		f.Start--
	}
	for f.Head >= f.Start+len(f.Cells) {
		f.Cells = append(f.Cells, blank)
	}
	return f
}
