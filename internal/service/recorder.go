package service

// Recorder receives domain events for metrics.
type Recorder interface {
	PersonCreated(withPhoto bool)
	PersonUpdated(photoReplaced bool)
	PersonDeleted()
	UserCreated()
	LoginAttempt(succeeded bool)
}

type nopRecorder struct{}

func (nopRecorder) PersonCreated(bool) {}
func (nopRecorder) PersonUpdated(bool) {}
func (nopRecorder) PersonDeleted()     {}
func (nopRecorder) UserCreated()       {}
func (nopRecorder) LoginAttempt(bool)  {}
