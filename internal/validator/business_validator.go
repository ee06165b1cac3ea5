package validator

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/EduPort-F-2025/portfolio-service/internal/models"
)

// PDFMimeType is the only MIME type the upload boundary accepts.
const PDFMimeType = "application/pdf"

// BusinessValidator handles business rule validation
type BusinessValidator struct {
	validate *validator.Validate
}

// ValidationError represents a business validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule,omitempty"`
}

type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	if len(ve) == 1 {
		return fmt.Sprintf("validation failed: %s %s", ve[0].Field, ve[0].Message)
	}
	return fmt.Sprintf("validation failed: %d field errors", len(ve))
}

// NewBusinessValidator creates a new business validator
func NewBusinessValidator() *BusinessValidator {
	validate := validator.New()

	bv := &BusinessValidator{validate: validate}
	bv.registerBusinessRules()

	return bv
}

// Validate validates a struct against its tag rules
func (bv *BusinessValidator) Validate(s interface{}) ValidationErrors {
	var errors ValidationErrors

	err := bv.validate.Struct(s)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			errors = append(errors, ValidationError{
				Field:   err.Field(),
				Message: bv.getErrorMessage(err),
				Value:   err.Value(),
				Rule:    err.Tag(),
			})
		}
	}

	return errors
}

// ValidatePracticeCreate validates practice creation business rules
func (bv *BusinessValidator) ValidatePracticeCreate(req *PracticeCreateRequest) ValidationErrors {
	return bv.Validate(req)
}

// ValidateSeminarCreate validates seminar creation business rules.
// Besides tag rules, the range must not be inverted.
func (bv *BusinessValidator) ValidateSeminarCreate(req *SeminarCreateRequest) ValidationErrors {
	errors := bv.Validate(req)
	errors = append(errors, bv.validateDateRange(req.FromDate, req.ToDate)...)
	return errors
}

// ValidateProofUpload validates the file input boundary. A non-PDF MIME
// type is an input rejection: the upload aborts with no state change.
func (bv *BusinessValidator) ValidateProofUpload(req *ProofUploadRequest) ValidationErrors {
	return bv.Validate(req)
}

// ValidateRecordOwner checks that a record's teacher id references a
// roster entry with the teacher role. The store itself never re-checks
// ownership; this is the only enforcement point for API-created records.
func (bv *BusinessValidator) ValidateRecordOwner(state *models.SystemState, teacherID string) ValidationErrors {
	owner := state.TeacherByID(teacherID)
	if owner == nil {
		return ValidationErrors{{
			Field:   "teacher_id",
			Message: "owning teacher is not in the roster",
			Value:   teacherID,
			Rule:    "business_logic",
		}}
	}
	if owner.Role != models.RoleTeacher {
		return ValidationErrors{{
			Field:   "teacher_id",
			Message: "owning user does not have the teacher role",
			Value:   teacherID,
			Rule:    "business_logic",
		}}
	}
	return nil
}

func (bv *BusinessValidator) validateDateRange(from, to string) ValidationErrors {
	fromDate, errFrom := time.Parse("2006-01-02", from)
	toDate, errTo := time.Parse("2006-01-02", to)
	if errFrom != nil || errTo != nil {
		// Tag validation already reported the malformed date.
		return nil
	}
	if toDate.Before(fromDate) {
		return ValidationErrors{{
			Field:   "to_date",
			Message: "to date must not precede from date",
			Value:   to,
			Rule:    "business_logic",
		}}
	}
	return nil
}

// registerBusinessRules registers custom business rule validators
func (bv *BusinessValidator) registerBusinessRules() {
	// Record dates are calendar days, serialized as YYYY-MM-DD
	bv.validate.RegisterValidation("record_date", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("2006-01-02", fl.Field().String())
		return err == nil
	})

	// The upload boundary accepts exactly one MIME type
	bv.validate.RegisterValidation("pdf_mime", func(fl validator.FieldLevel) bool {
		return fl.Field().String() == PDFMimeType
	})
}

func (bv *BusinessValidator) getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", err.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", err.Param())
	case "record_date":
		return "must be a date in YYYY-MM-DD format"
	case "pdf_mime":
		return "must be application/pdf"
	default:
		return fmt.Sprintf("failed %s validation", err.Tag())
	}
}
