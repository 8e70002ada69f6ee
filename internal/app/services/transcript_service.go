package services

import (
	"context"

	"github.com/deniz/courseloop/internal/app/gpa"
	"github.com/deniz/courseloop/internal/app/models"
	"github.com/deniz/courseloop/internal/app/models/dto"
)

// TranscriptService manages academic records and GPA computation over them.
type TranscriptService interface {
	AddRecord(ctx context.Context, userID int64, req *dto.AddAcademicRecordRequest) (*models.AcademicRecord, error)
	ListRecords(ctx context.Context, userID int64) ([]models.AcademicRecord, error)
	GPA(ctx context.Context, userID int64, scheme string) (*float64, string, error)
	GPADetailed(ctx context.Context, userID int64, scheme string) (*gpa.Breakdown, error)
	GPAForTerm(ctx context.Context, userID int64, term models.Term, year int, scheme string) (*gpa.TermBreakdown, error)
	GPAByTerm(ctx context.Context, userID int64, scheme string) (map[string]gpa.TermBreakdown, error)
}

type transcriptService struct {
	userRepo UserStore
}

// NewTranscriptService creates a new TranscriptService
func NewTranscriptService(userRepo UserStore) TranscriptService {
	return &transcriptService{userRepo: userRepo}
}

func (s *transcriptService) AddRecord(ctx context.Context, userID int64, req *dto.AddAcademicRecordRequest) (*models.AcademicRecord, error) {
	record := &models.AcademicRecord{
		UserID:       userID,
		Subject:      req.Subject,
		CourseNumber: req.CourseNumber,
		Grade:        req.Grade,
		CreditHours:  req.CreditHours,
		Term:         req.Term,
		Year:         req.Year,
	}

	if err := gpa.ValidateRecord(*record); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.AddAcademicRecord(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *transcriptService) ListRecords(ctx context.Context, userID int64) ([]models.AcademicRecord, error) {
	return s.userRepo.ListAcademicRecords(ctx, userID)
}

func (s *transcriptService) GPA(ctx context.Context, userID int64, scheme string) (*float64, string, error) {
	records, err := s.userRepo.ListAcademicRecords(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	resolved := resolveScheme(scheme)
	return gpa.Calculate(records, resolved), resolved, nil
}

func (s *transcriptService) GPADetailed(ctx context.Context, userID int64, scheme string) (*gpa.Breakdown, error) {
	records, err := s.userRepo.ListAcademicRecords(ctx, userID)
	if err != nil {
		return nil, err
	}

	breakdown := gpa.CalculateDetailed(records, resolveScheme(scheme))
	return &breakdown, nil
}

func (s *transcriptService) GPAForTerm(ctx context.Context, userID int64, term models.Term, year int, scheme string) (*gpa.TermBreakdown, error) {
	records, err := s.userRepo.ListAcademicRecords(ctx, userID)
	if err != nil {
		return nil, err
	}

	breakdown := gpa.CalculateTerm(records, term, year, resolveScheme(scheme))
	return &breakdown, nil
}

func (s *transcriptService) GPAByTerm(ctx context.Context, userID int64, scheme string) (map[string]gpa.TermBreakdown, error) {
	records, err := s.userRepo.ListAcademicRecords(ctx, userID)
	if err != nil {
		return nil, err
	}

	return gpa.ByTerm(records, resolveScheme(scheme)), nil
}

// resolveScheme maps an empty or unknown scheme name to the default, so the
// response always names the scheme actually applied.
func resolveScheme(scheme string) string {
	if scheme == "" || !gpa.KnownScheme(scheme) {
		return gpa.DefaultSchemeKey
	}
	return scheme
}
