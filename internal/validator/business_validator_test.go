package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/EduPort-F-2025/portfolio-service/internal/models"
)

func TestBusinessValidator_ValidateProofUpload(t *testing.T) {
	bv := NewBusinessValidator()

	tests := []struct {
		name    string
		req     ProofUploadRequest
		wantErr bool
	}{
		{
			name: "pdf accepted",
			req:  ProofUploadRequest{FileName: "cert.pdf", MimeType: "application/pdf", Data: []byte("%PDF-")},
		},
		{
			name:    "png rejected",
			req:     ProofUploadRequest{FileName: "photo.png", MimeType: "image/png", Data: []byte("x")},
			wantErr: true,
		},
		{
			name:    "pdf with parameters rejected",
			req:     ProofUploadRequest{FileName: "cert.pdf", MimeType: "application/pdf; charset=binary", Data: []byte("x")},
			wantErr: true,
		},
		{
			name:    "empty payload rejected",
			req:     ProofUploadRequest{FileName: "cert.pdf", MimeType: "application/pdf"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := bv.ValidateProofUpload(&tt.req)
			if tt.wantErr {
				assert.NotEmpty(t, errs)
			} else {
				assert.Empty(t, errs)
			}
		})
	}
}

func TestBusinessValidator_ValidateSeminarCreate(t *testing.T) {
	bv := NewBusinessValidator()

	tests := []struct {
		name    string
		req     SeminarCreateRequest
		wantErr bool
	}{
		{
			name: "valid range",
			req:  SeminarCreateRequest{Title: "Workshop", FromDate: "2024-03-01", ToDate: "2024-03-03"},
		},
		{
			name: "single day",
			req:  SeminarCreateRequest{Title: "Workshop", FromDate: "2024-03-01", ToDate: "2024-03-01"},
		},
		{
			name:    "inverted range",
			req:     SeminarCreateRequest{Title: "Workshop", FromDate: "2024-03-03", ToDate: "2024-03-01"},
			wantErr: true,
		},
		{
			name:    "malformed date",
			req:     SeminarCreateRequest{Title: "Workshop", FromDate: "03/01/2024", ToDate: "2024-03-01"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := bv.ValidateSeminarCreate(&tt.req)
			if tt.wantErr {
				assert.NotEmpty(t, errs)
			} else {
				assert.Empty(t, errs)
			}
		})
	}
}

func TestBusinessValidator_ValidateRecordOwner(t *testing.T) {
	bv := NewBusinessValidator()
	state := models.NewSeedState()
	state.Teachers = append(state.Teachers, models.User{
		ID: "admin-1", Name: "Super Admin", Email: "admin@edu.com", Role: models.RoleAdmin,
	})

	assert.Empty(t, bv.ValidateRecordOwner(state, "t1"))
	assert.NotEmpty(t, bv.ValidateRecordOwner(state, "ghost"))
	assert.NotEmpty(t, bv.ValidateRecordOwner(state, "admin-1"))
}
