package casenote

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Ang3lito/rabiesresq/internal/model"
	"github.com/Ang3lito/rabiesresq/internal/repository"
	"github.com/Ang3lito/rabiesresq/internal/service/audit"
)

type Service struct {
	caseRepo repository.CaseRepository
	auditor  *audit.Service
}

func NewService(caseRepo repository.CaseRepository, auditor *audit.Service) *Service {
	return &Service{caseRepo: caseRepo, auditor: auditor}
}

// Append adds a free-text note to a case. Notes are never edited or
// removed; corrections are new notes.
func (s *Service) Append(ctx context.Context, authorUserID, personnelID, caseID uuid.UUID, text string) (*model.CaseNote, error) {
	if _, err := s.caseRepo.Get(ctx, caseID); err != nil {
		return nil, err
	}

	note := &model.CaseNote{
		CaseID:       caseID,
		AuthorUserID: authorUserID,
		Note:         text,
	}
	if err := s.caseRepo.AddNote(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to add note: %w", err)
	}

	s.auditor.Log(ctx, personnelID, model.AuditActionInsert, model.AuditEntityCaseNote, note.ID, &audit.LogOptions{
		CaseID: &caseID,
	})
	return note, nil
}

// List returns a case's notes oldest first.
func (s *Service) List(ctx context.Context, caseID uuid.UUID) ([]*model.CaseNote, error) {
	return s.caseRepo.ListNotes(ctx, caseID)
}
