package service

import (
	"time"

	"github.com/livingprogress/mentorme/internal/model"
)

// Transition is the edge a completion evaluation crossed, if any.
type Transition int

const (
	TransitionNone Transition = iota
	TransitionCompleted
	TransitionReopened
)

func (t Transition) String() string {
	switch t {
	case TransitionCompleted:
		return "completed"
	case TransitionReopened:
		return "reopened"
	default:
		return "none"
	}
}

// EvaluateCompletion derives a program's completion state from program.Goals.
//
// A program is completed when it has at least one goal and every goal is
// completed. CompletedOn is stamped with now on the Incomplete to Completed
// edge and kept as is while the program stays completed; it is cleared
// whenever the program is not completed.
//
// The input is not modified; the returned program shares its Goals slice.
func EvaluateCompletion(program model.Program, now time.Time) (model.Program, Transition) {
	wasCompleted := program.Completed

	completed := len(program.Goals) > 0
	for _, goal := range program.Goals {
		if !goal.Completed {
			completed = false
			break
		}
	}

	program.Completed = completed
	switch {
	case !completed:
		program.CompletedOn = nil
	case !wasCompleted || program.CompletedOn == nil:
		stamp := now
		program.CompletedOn = &stamp
	}

	switch {
	case completed && !wasCompleted:
		return program, TransitionCompleted
	case !completed && wasCompleted:
		return program, TransitionReopened
	default:
		return program, TransitionNone
	}
}
