package service

import (
	"context"
	"fmt"
	"log"

	"gorm.io/gorm"

	"gatepass/internal/errors"
	"gatepass/internal/model"
	"gatepass/internal/repository"
)

// CreatePassInput carries the fields of a new pass request.
type CreatePassInput struct {
	OutDate         string
	OutTime         string
	InDate          string
	InTime          string
	Reason          string
	Destination     string
	ContactNumber   string
	ParentContactNo string
}

// ReviewInput carries a warden's decision on a pending pass.
type ReviewInput struct {
	PassID     uint
	Status     model.PassStatus
	WardenNote string
}

// PassService handles the gate-pass workflow.
type PassService interface {
	Create(ctx context.Context, student *model.User, input CreatePassInput) (*model.Pass, error)
	ListForStudent(ctx context.Context, studentID uint) ([]model.Pass, error)
	ListByStatus(ctx context.Context, status model.PassStatus, date string) ([]model.Pass, error)
	Review(ctx context.Context, warden *model.User, input ReviewInput) (*model.Pass, error)
}

type passService struct {
	passRepo         repository.PassRepository
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
}

// NewPassService creates a new pass service.
func NewPassService(passRepo repository.PassRepository, userRepo repository.UserRepository, notificationRepo repository.NotificationRepository) PassService {
	return &passService{
		passRepo:         passRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
	}
}

// Create inserts a pending pass for the student and notifies every warden.
// The duplicate-slot check and the insert run in one transaction with the
// slot rows locked, so two concurrent submissions for the same slot
// serialize instead of both passing the check.
func (s *passService) Create(ctx context.Context, student *model.User, input CreatePassInput) (*model.Pass, error) {
	pass := &model.Pass{
		UserID:          student.ID,
		OutDate:         input.OutDate,
		OutTime:         input.OutTime,
		InDate:          input.InDate,
		InTime:          input.InTime,
		Reason:          input.Reason,
		Destination:     input.Destination,
		ContactNumber:   input.ContactNumber,
		ParentContactNo: input.ParentContactNo,
		Status:          model.PassPending,
	}

	err := s.passRepo.WithTransaction(ctx, func(ctx context.Context, repo repository.PassRepository) error {
		count, err := repo.CountActiveSlot(ctx, student.ID, input.OutDate, input.OutTime)
		if err != nil {
			return fmt.Errorf("check duplicate slot: %w", err)
		}
		if count > 0 {
			return errors.ErrDuplicatePass
		}
		return repo.Create(ctx, pass)
	})
	if err != nil {
		return nil, err
	}

	s.notifyWardens(ctx, student)

	return pass, nil
}

// ListForStudent returns the student's passes, newest first.
func (s *passService) ListForStudent(ctx context.Context, studentID uint) ([]model.Pass, error) {
	return s.passRepo.ListByUser(ctx, studentID)
}

// ListByStatus returns passes in the given status with the owning student
// attached. A non-empty date narrows the listing to that out-date.
func (s *passService) ListByStatus(ctx context.Context, status model.PassStatus, date string) ([]model.Pass, error) {
	if date != "" {
		return s.passRepo.ListByStatusAndDate(ctx, status, date)
	}
	return s.passRepo.ListByStatus(ctx, status)
}

// Review transitions a pending pass to approved or rejected and notifies the
// owning student. Approved and rejected are terminal: a pass that already
// left pending cannot be reviewed again.
func (s *passService) Review(ctx context.Context, warden *model.User, input ReviewInput) (*model.Pass, error) {
	if input.Status != model.PassApproved && input.Status != model.PassRejected {
		return nil, errors.ErrPassNotPending
	}

	var reviewed *model.Pass
	err := s.passRepo.WithTransaction(ctx, func(ctx context.Context, repo repository.PassRepository) error {
		pass, err := repo.FindByIDForUpdate(ctx, input.PassID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrPassNotFound
			}
			return fmt.Errorf("find pass: %w", err)
		}

		if pass.Status != model.PassPending {
			return errors.ErrPassNotPending
		}

		pass.Status = input.Status
		pass.WardenID = &warden.ID
		if input.WardenNote != "" {
			note := input.WardenNote
			pass.WardenNote = &note
		}

		if err := repo.Update(ctx, pass); err != nil {
			return fmt.Errorf("update pass: %w", err)
		}

		reviewed = pass
		return nil
	})
	if err != nil {
		return nil, err
	}

	notification := &model.Notification{
		UserID: reviewed.UserID,
		Message: fmt.Sprintf("Your gate pass request for %s (%s) has been %s",
			reviewed.OutDate, reviewed.OutTime, reviewed.Status),
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		log.Printf("notify student %d about pass %d: %v", reviewed.UserID, reviewed.ID, err)
	}

	return reviewed, nil
}

// notifyWardens appends one notification per warden account. The pass is
// already committed at this point, so fan-out failures are logged rather
// than surfaced to the student.
func (s *passService) notifyWardens(ctx context.Context, student *model.User) {
	wardens, err := s.userRepo.ListByRole(ctx, model.RoleWarden)
	if err != nil {
		log.Printf("list wardens for notification: %v", err)
		return
	}

	for _, warden := range wardens {
		notification := &model.Notification{
			UserID:  warden.ID,
			Message: fmt.Sprintf("New gate pass request from %s", student.Name),
		}
		if err := s.notificationRepo.Create(ctx, notification); err != nil {
			log.Printf("notify warden %d: %v", warden.ID, err)
		}
	}
}
