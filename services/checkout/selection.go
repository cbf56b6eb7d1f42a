package checkout

import (
	"sync"

	"deskhive/models"
)

// SelectionStep is the derived wizard step of a checkout selection.
type SelectionStep int

const (
	StepNoLocation SelectionStep = iota
	StepLocationSelected
	StepLocationAndServiceSelected
)

func (s SelectionStep) String() string {
	switch s {
	case StepNoLocation:
		return "NoLocation"
	case StepLocationSelected:
		return "LocationSelected"
	case StepLocationAndServiceSelected:
		return "LocationAndServiceSelected"
	default:
		return "Unknown"
	}
}

// Selection tracks the user's current location and service choice. Packages
// are location-scoped, so changing the location always clears the service.
// The single writer is the UI event loop; the zero value is ready to use.
type Selection struct {
	mu       sync.Mutex
	location *models.Location
	service  *models.ServiceOffering

	// OnTransition, if set, is invoked after every step change. Presentation
	// code may hook scroll behaviour here; the machine itself never touches
	// anything UI-shaped.
	OnTransition func(SelectionStep)
}

// SelectLocation records a location choice. Selecting any location, including
// the one already selected, clears the current service choice.
func (s *Selection) SelectLocation(loc models.Location) {
	s.mu.Lock()
	s.location = &loc
	s.service = nil
	s.mu.Unlock()
	s.notify()
}

// SelectService records a service choice. It is ignored unless a location is
// selected and the offering is an active package of that location.
func (s *Selection) SelectService(off models.ServiceOffering) bool {
	s.mu.Lock()
	if s.location == nil || off.LocationID != s.location.ID || !off.IsActive {
		s.mu.Unlock()
		return false
	}
	s.service = &off
	s.mu.Unlock()
	s.notify()
	return true
}

// Clear resets the selection to its initial state.
func (s *Selection) Clear() {
	s.mu.Lock()
	s.location = nil
	s.service = nil
	s.mu.Unlock()
	s.notify()
}

// Step returns the current wizard step.
func (s *Selection) Step() SelectionStep {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stepLocked()
}

func (s *Selection) stepLocked() SelectionStep {
	switch {
	case s.location == nil:
		return StepNoLocation
	case s.service == nil:
		return StepLocationSelected
	default:
		return StepLocationAndServiceSelected
	}
}

// Location returns the selected location, or nil.
func (s *Selection) Location() *models.Location {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.location
}

// Service returns the selected offering, or nil.
func (s *Selection) Service() *models.ServiceOffering {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.service
}

func (s *Selection) notify() {
	if s.OnTransition != nil {
		s.OnTransition(s.Step())
	}
}
