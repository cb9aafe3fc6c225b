// internal/services/submission_service.go
package services

import (
	"context"
	"regexp"
	"strings"

	"github.com/chukainspires/coachsite/internal/apperrors"
	"github.com/chukainspires/coachsite/internal/models"
	"github.com/chukainspires/coachsite/internal/store"
	"github.com/chukainspires/coachsite/internal/utils"
)

// Contact-form field names.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldMessage = "message"
)

// emailPattern accepts the simple local@domain.tld shape. Full RFC 5322
// compliance is intentionally out of scope.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// SubmissionService validates and stores visitor contact messages, and lets
// the operator review and delete them.
type SubmissionService struct {
	store  store.Store
	logger *utils.Logger
}

// NewSubmissionService creates the contact-form intake service.
func NewSubmissionService(st store.Store, logger *utils.Logger) *SubmissionService {
	return &SubmissionService{store: st, logger: logger}
}

// ValidateField checks one field and returns an error message, or "" when
// the value is acceptable. Unknown fields validate clean.
func (s *SubmissionService) ValidateField(field, value string) string {
	switch field {
	case FieldName:
		if strings.TrimSpace(value) == "" {
			return "Full Name is required."
		}
	case FieldEmail:
		if strings.TrimSpace(value) == "" {
			return "Email Address is required."
		}
		if !emailPattern.MatchString(value) {
			return "Please enter a valid email address."
		}
	case FieldMessage:
		if strings.TrimSpace(value) == "" {
			return "Message is required."
		}
		if len(strings.TrimSpace(value)) < 10 {
			return "Message must be at least 10 characters long."
		}
	}
	return ""
}

// ValidateAll checks every field and returns the per-field messages for the
// ones that failed. An empty map means the submission may proceed.
func (s *SubmissionService) ValidateAll(name, email, message string) map[string]string {
	errors := make(map[string]string)
	for field, value := range map[string]string{
		FieldName:    name,
		FieldEmail:   email,
		FieldMessage: message,
	} {
		if msg := s.ValidateField(field, value); msg != "" {
			errors[field] = msg
		}
	}
	return errors
}

// Submit validates and inserts a contact message. Validation failures are
// returned as a field→message map and are never logged; store failures
// surface to the caller so the client keeps the form filled for a retry.
func (s *SubmissionService) Submit(ctx context.Context, name, email, message string) (*models.FormSubmission, map[string]string, error) {
	if fieldErrors := s.ValidateAll(name, email, message); len(fieldErrors) > 0 {
		return nil, fieldErrors, nil
	}

	sub := &models.FormSubmission{
		Name:    name,
		Email:   email,
		Message: message,
	}
	if err := s.store.AddSubmission(ctx, sub); err != nil {
		s.logger.Error("storing submission failed", map[string]interface{}{"error": err})
		return nil, nil, apperrors.NewStoreError("failed to send message", err)
	}
	return sub, nil, nil
}

// List returns all submissions, newest first. Operator only.
func (s *SubmissionService) List(ctx context.Context) ([]models.FormSubmission, error) {
	subs, err := s.store.ListSubmissions(ctx)
	if err != nil {
		return nil, apperrors.NewStoreError("failed to load submissions", err)
	}
	return subs, nil
}

// Delete removes a submission by id. Operator only.
func (s *SubmissionService) Delete(ctx context.Context, id int64) error {
	err := s.store.DeleteSubmission(ctx, id)
	if err == store.ErrNotFound {
		return apperrors.NewNotFoundError("submission not found")
	}
	if err != nil {
		return apperrors.NewStoreError("failed to delete submission", err)
	}
	return nil
}
