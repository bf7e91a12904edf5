package drill

// Fever is the depth-milestone invulnerability window.
type Fever struct {
	Active    bool
	Remaining int
	LastDepth int // Milestone that triggered the most recent fever
	Interval  int
}

// NewFever creates a fever tracker that fires every interval rows.
func NewFever(interval int) *Fever {
	return &Fever{Interval: interval}
}

// Tick counts down an active fever. It returns true on the tick the
// fever ends.
func (f *Fever) Tick() bool {
	if !f.Active {
		return false
	}
	f.Remaining--
	if f.Remaining <= 0 {
		f.Active = false
		f.Remaining = 0
		return true
	}
	return false
}

// MaybeTrigger starts a fever lasting duration ticks when score has
// reached the next milestone past LastDepth. A score that jumps several
// milestones at once still triggers only once.
func (f *Fever) MaybeTrigger(score, duration int) bool {
	if f.Active || f.Interval <= 0 || score <= 0 {
		return false
	}
	if score < f.LastDepth+f.Interval {
		return false
	}
	f.Active = true
	f.Remaining = duration
	f.LastDepth = score - score%f.Interval
	return true
}
