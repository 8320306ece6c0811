package state

import (
	"gamesearch/internal/domain"
)

// RequestState is the lifecycle of the current submission.
// It is one of Idle, Pending, Success or Failure.
type RequestState interface {
	isRequestState()
}

// Idle is the state before the first submission
type Idle struct{}

// Pending means a request is in flight and nothing is displayed yet
type Pending struct {
	Seq uint64
}

// Success holds the results of the settled request
type Success struct {
	Seq     uint64
	Results domain.ResultSet
}

// Failure holds the reason the settled request produced no results
type Failure struct {
	Seq    uint64
	Reason string
	Err    error
}

func (Idle) isRequestState()    {}
func (Pending) isRequestState() {}
func (Success) isRequestState() {}
func (Failure) isRequestState() {}

// IsPending reports whether the loading indicator should be visible
func IsPending(s RequestState) bool {
	_, ok := s.(Pending)
	return ok
}

// Results returns the displayed result set, empty unless s is Success
func Results(s RequestState) domain.ResultSet {
	if success, ok := s.(Success); ok {
		return success.Results
	}
	return nil
}

// Name is a short label used in logs and tests
func Name(s RequestState) string {
	switch s.(type) {
	case Pending:
		return "pending"
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return "idle"
	}
}
