package composer

// Accumulator tracks the verified-correct prefix of the reference text.
type Accumulator struct {
	entered string
}

// Entered returns the last reported value.
func (a *Accumulator) Entered() string {
	return a.entered
}

// Update recomputes prefix+correct and reports whether it changed.
func (a *Accumulator) Update(prefix, correct string) (string, bool) {
	next := prefix + correct
	if next == a.entered {
		return next, false
	}
	a.entered = next
	return next, true
}

// Clear resets the value and reports whether it was non-empty.
func (a *Accumulator) Clear() bool {
	changed := a.entered != ""
	a.entered = ""
	return changed
}
