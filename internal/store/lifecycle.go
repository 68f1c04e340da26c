// Package store holds the canonical client-side copy of each resource
// domain (auth and properties) together with the request lifecycle flags the
// views render from. Each operation dispatches exactly one request and moves
// the domain through pending and then fulfilled or rejected, applying a
// deterministic merge on success.
package store

// Lifecycle describes the state of the most recently dispatched operation
// for one domain. At most one of IsLoading, IsError and IsSuccess describes
// the active phase; IsLoading is true only while a request is in flight.
type Lifecycle struct {
	IsLoading bool   `json:"isLoading"`
	IsError   bool   `json:"isError"`
	IsSuccess bool   `json:"isSuccess"`
	Message   string `json:"message"`
}

// pending marks a new dispatch, clearing any flags left by the previous
// operation so stale error or success state cannot leak into this one.
func (l *Lifecycle) pending() {
	l.IsLoading = true
	l.IsError = false
	l.IsSuccess = false
	l.Message = ""
}

// fulfilled marks a successful completion.
func (l *Lifecycle) fulfilled() {
	l.IsLoading = false
	l.IsSuccess = true
	l.Message = ""
}

// rejected marks a failed completion. Domain data is never cleared here;
// only the merge rules of a fulfilled operation touch it.
func (l *Lifecycle) rejected(message string) {
	l.IsLoading = false
	l.IsError = true
	l.Message = message
}

// clear resets all flags and the message, as when a view unmounts.
func (l *Lifecycle) clear() {
	*l = Lifecycle{}
}
