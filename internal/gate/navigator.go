package gate

// Redirect is a Navigator for a single HTTP response. It records the target
// instead of writing it so the handler can issue one redirect after the gate
// has rendered.
type Redirect struct {
	target string
	calls  int
}

// GoTo records path. Repeated calls with the same path leave the target as is.
func (r *Redirect) GoTo(path string) {
	r.calls++
	r.target = path
}

// Target returns the recorded path, or "" when no navigation was requested.
func (r *Redirect) Target() string {
	return r.target
}

// Calls returns how many times GoTo was invoked.
func (r *Redirect) Calls() int {
	return r.calls
}
