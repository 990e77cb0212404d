package editor

// IDs hands out monotonically increasing local ids for buttons and images.
// The zero value starts at 1.
type IDs struct {
	next int
}

// Next returns a fresh id.
func (a *IDs) Next() int {
	if a.next < 1 {
		a.next = 1
	}
	id := a.next
	a.next++
	return id
}

// Peek returns the id the next call to Next will hand out.
func (a *IDs) Peek() int {
	if a.next < 1 {
		return 1
	}
	return a.next
}

// ResetTo makes next the following id, as when restoring preserved entries.
func (a *IDs) ResetTo(next int) {
	if next < 1 {
		next = 1
	}
	a.next = next
}
