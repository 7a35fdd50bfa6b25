package service

import (
	"context"
	"errors"

	"github.com/livingprogress/mentorme/internal/model"
	"github.com/livingprogress/mentorme/internal/repository"
)

// ProgramCompletionNotifier emails the mentor and mentee of a completed program.
type ProgramCompletionNotifier struct {
	mentorRepo repository.MentorRepository
	menteeRepo repository.MenteeRepository
	email      *EmailService
}

func NewProgramCompletionNotifier(mentorRepo repository.MentorRepository, menteeRepo repository.MenteeRepository, email *EmailService) *ProgramCompletionNotifier {
	return &ProgramCompletionNotifier{
		mentorRepo: mentorRepo,
		menteeRepo: menteeRepo,
		email:      email,
	}
}

func (n *ProgramCompletionNotifier) ProgramCompleted(ctx context.Context, program *model.Program) error {
	mentor, err := n.mentorRepo.ByID(ctx, program.MentorID)
	if err != nil {
		return wrapRepoErr(err)
	}

	mentee, err := n.menteeRepo.ByID(ctx, program.MenteeID)
	if err != nil {
		return wrapRepoErr(err)
	}

	// Try both recipients even if the first send fails
	mentorErr := n.email.SendProgramCompletedEmail(ctx, mentor.Email, mentor.FirstName, program.Title, program.ID)
	menteeErr := n.email.SendProgramCompletedEmail(ctx, mentee.Email, mentee.FirstName, program.Title, program.ID)

	return errors.Join(mentorErr, menteeErr)
}
