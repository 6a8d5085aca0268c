package validation_test

import (
	"testing"
	"time"

	"recruitment-console/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleForm struct {
	FullName    string     `json:"fullName" validate:"required,no_emoji"`
	Email       string     `json:"email" validate:"required,email"`
	Phone       string     `json:"phoneNumber" validate:"valid_phone"`
	DateOfBirth time.Time  `json:"dateOfBirth" validate:"required,past_date"`
	Joined      *time.Time `json:"joined" validate:"omitempty,past_date"`
	Skills      []string   `json:"skills" validate:"min=1"`
	Note        string     `json:"note" validate:"max=500"`
	Start       string     `json:"scheduleStart" validate:"clock"`
}

func validSample() sampleForm {
	return sampleForm{
		FullName:    "Nguyen Van A",
		Email:       "a@example.com",
		Phone:       "+84 (912) 345-678",
		DateOfBirth: time.Date(1990, 1, 2, 0, 0, 0, 0, time.UTC),
		Skills:      []string{"Go"},
		Start:       "09:30",
	}
}

func TestStructAcceptsValidForm(t *testing.T) {
	v := validation.New()
	form := validSample()
	assert.NoError(t, validation.Struct(v, &form))
}

func TestStructRejectsInvalidForm(t *testing.T) {
	v := validation.New()
	future := time.Now().Add(24 * time.Hour)
	form := sampleForm{
		FullName:    "Bad 😀",
		Email:       "not-an-email",
		Phone:       "12",
		DateOfBirth: future,
		Joined:      &future,
		Note:        string(make([]byte, 501)),
		Start:       "25:99",
	}

	err := validation.Struct(v, &form)
	formErr, ok := validation.AsFormError(err)
	require.True(t, ok)

	assert.Equal(t, "Full name must not contain emoji or symbols", formErr.Fields["fullName"])
	assert.Equal(t, "Invalid email address", formErr.Fields["email"])
	assert.Contains(t, formErr.Fields["phoneNumber"], "7-15 digits")
	assert.Equal(t, "Date of Birth must be in the past", formErr.Fields["dateOfBirth"])
	assert.Equal(t, "Joined must be in the past", formErr.Fields["joined"])
	assert.Equal(t, "At least one skill is required", formErr.Fields["skills"])
	assert.Equal(t, "Note must be 500 characters or less", formErr.Fields["note"])
	assert.Equal(t, "Schedule start must be a time (HH:mm)", formErr.Fields["scheduleStart"])
}

func TestRequiredDateOfBirth(t *testing.T) {
	v := validation.New()
	form := validSample()
	form.DateOfBirth = time.Time{}

	formErr, ok := validation.AsFormError(validation.Struct(v, &form))
	require.True(t, ok)
	assert.Equal(t, "Date of birth is required", formErr.Fields["dateOfBirth"])
}

func TestFieldLabel(t *testing.T) {
	assert.Equal(t, "Current position", validation.FieldLabel("currentPosition"))
	assert.Equal(t, "Years of experience", validation.FieldLabel("yearsOfExperience"))
	assert.Equal(t, "Email", validation.FieldLabel("email"))
}

func TestFormErrorAddKeepsFirst(t *testing.T) {
	formErr := validation.NewFormError("scheduleEnd", "End time must be after start time")
	formErr.Add("scheduleEnd", "ignored")
	formErr.Add("location", "Location is required")

	assert.Equal(t, "End time must be after start time", formErr.Fields["scheduleEnd"])
	assert.Len(t, formErr.Fields, 2)
	assert.Contains(t, formErr.Error(), "location: Location is required")
}
