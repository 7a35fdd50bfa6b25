package validation

import (
	"bytes"
	"math"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/livingprogress/mentorme/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructGoal(t *testing.T) {
	tests := []struct {
		name    string
		goal    model.Goal
		wantErr string
	}{
		{"valid", model.Goal{ProgramID: 1, Subject: "Read a book"}, ""},
		{"missing subject", model.Goal{ProgramID: 1}, "subject is required"},
		{"missing program", model.Goal{Subject: "Read"}, "programId must be greater than 0"},
		{"long description", model.Goal{ProgramID: 1, Subject: "Read", Description: string(make([]byte, 2001))}, "description is too long (max 2000 characters)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(&tt.goal)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestStructIgnoresNestedProgram(t *testing.T) {
	goal := &model.Goal{ProgramID: 1, Subject: "Read", Program: &model.Program{}}
	assert.NoError(t, Struct(goal))
}

func TestStructMentor(t *testing.T) {
	mentor := &model.Mentor{FirstName: "Grace", LastName: "Hopper", Email: "not-an-email"}
	assert.EqualError(t, Struct(mentor), "email must be a valid email address")

	mentor.Email = "grace@example.com"
	mentor.MentorType = "coach"
	assert.EqualError(t, Struct(mentor), "mentorType must be one of: male_mentor female_mentor other")

	mentor.MentorType = model.MentorTypeFemale
	assert.NoError(t, Struct(mentor))
}

func TestValidatePaging(t *testing.T) {
	assert.NoError(t, ValidatePaging(model.Paging{}))
	assert.NoError(t, ValidatePaging(model.Paging{PageNumber: 0, PageSize: 10}))
	assert.Error(t, ValidatePaging(model.Paging{PageNumber: -1, PageSize: 10}))
	assert.Error(t, ValidatePaging(model.Paging{PageNumber: 1, PageSize: 0}))
	assert.Error(t, ValidatePaging(model.Paging{PageSize: MaxPageSize + 1}))
}

func TestValidatePagingRejectsOffsetOverflow(t *testing.T) {
	err := ValidatePaging(model.Paging{PageNumber: math.MaxInt / 4, PageSize: 4})
	assert.NoError(t, err)

	err = ValidatePaging(model.Paging{PageNumber: math.MaxInt/4 + 1, PageSize: 4})
	assert.EqualError(t, err, "pageNumber is too large")

	err = ValidatePaging(model.Paging{PageNumber: math.MaxInt, PageSize: 1})
	assert.NoError(t, err)
}

func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	return req.MultipartForm.File["file"][0]
}

func TestValidateFile(t *testing.T) {
	pdf := append([]byte("%PDF-1.4\n"), bytes.Repeat([]byte("x"), 64)...)

	mimeType, err := ValidateFile(fileHeader(t, "plan.pdf", pdf), DocumentConstraints)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", mimeType)

	mimeType, err = ValidateFile(fileHeader(t, "notes.txt", []byte("weekly notes")), DocumentConstraints)
	require.NoError(t, err)
	assert.Equal(t, "text/plain; charset=utf-8", mimeType)

	_, err = ValidateFile(fileHeader(t, "plan.exe", pdf), DocumentConstraints)
	assert.EqualError(t, err, "invalid file extension: .exe")

	_, err = ValidateFile(fileHeader(t, "plan.pdf", pdf), DocumentConstraints.WithMaxSize(8))
	assert.EqualError(t, err, "file too large: maximum size is 0 MB")
}
