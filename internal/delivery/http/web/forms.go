package web

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"recruitment-console/internal/domain"
	"recruitment-console/pkg/validation"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidDate   = "Invalid date"
	msgInvalidNumber = "Must be a number"
	msgSelectOption  = "Please select an option"
)

// formReader reads typed values from a submitted form and collects the
// values that could not be parsed.
type formReader struct {
	c    *gin.Context
	errs validation.FormError
}

func newFormReader(c *gin.Context) *formReader {
	return &formReader{c: c}
}

func (f *formReader) str(name string) string {
	return strings.TrimSpace(f.c.PostForm(name))
}

// strs returns the non-empty values of a multi-select.
func (f *formReader) strs(name string) []string {
	var out []string
	for _, v := range f.c.PostFormArray(name) {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (f *formReader) date(name string) domain.Date {
	d, err := domain.ParseDate(f.c.PostForm(name))
	if err != nil {
		f.errs.Add(name, msgInvalidDate)
	}
	return d
}

func (f *formReader) optDate(name string) *domain.Date {
	d := f.date(name)
	if d.IsZero() {
		return nil
	}
	return &d
}

func (f *formReader) optInt(name string) *int {
	raw := f.str(name)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		f.errs.Add(name, msgInvalidNumber)
		return nil
	}
	return &n
}

func (f *formReader) optFloat(name string) *float64 {
	raw := f.str(name)
	if raw == "" {
		return nil
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		f.errs.Add(name, msgInvalidNumber)
		return nil
	}
	return &n
}

func (f *formReader) float(name string) float64 {
	if n := f.optFloat(name); n != nil {
		return *n
	}
	return 0
}

// id reads a select holding a record id. Empty means nothing selected.
func (f *formReader) id(name string) int64 {
	raw := f.str(name)
	if raw == "" {
		return 0
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		f.errs.Add(name, msgSelectOption)
		return 0
	}
	return n
}

// err returns the parse failures, or nil.
func (f *formReader) err() error {
	if len(f.errs.Fields) == 0 {
		return nil
	}
	return &f.errs
}

func candidateFromForm(f *formReader) *domain.Candidate {
	return &domain.Candidate{
		FullName:          f.str("fullName"),
		Email:             f.str("email"),
		Gender:            f.str("gender"),
		DateOfBirth:       f.date("dateOfBirth"),
		Address:           f.str("address"),
		PhoneNumber:       f.str("phoneNumber"),
		CVAttachment:      f.str("cvAttachment"),
		CVAttachmentName:  f.str("cvAttachmentName"),
		CurrentPosition:   f.str("currentPosition"),
		Skills:            f.strs("skills"),
		YearsOfExperience: f.optInt("yearsOfExperience"),
		HighestLevel:      f.str("highestLevel"),
		RecruiterOwner:    f.str("recruiterOwner"),
		Note:              f.str("note"),
		Status:            f.str("status"),
	}
}

// cvFromForm opens the uploaded CV, if any. The caller closes it.
func cvFromForm(c *gin.Context) (*domain.CVUpload, io.Closer, error) {
	header, err := c.FormFile("cvFile")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, validation.NewFormError("cvAttachment", "Could not read the uploaded file")
	}
	file, err := header.Open()
	if err != nil {
		return nil, nil, validation.NewFormError("cvAttachment", "Could not read the uploaded file")
	}
	return &domain.CVUpload{Filename: header.Filename, Content: file}, file, nil
}

func userFromForm(f *formReader) *domain.UserForm {
	return &domain.UserForm{
		FullName:    f.str("fullName"),
		Email:       f.str("email"),
		DOB:         f.optDate("dob"),
		PhoneNumber: f.str("phoneNumber"),
		Role:        f.str("role"),
		Status:      f.str("status"),
		Address:     f.str("address"),
		Gender:      f.str("gender"),
		Department:  f.str("department"),
		Note:        f.str("note"),
	}
}

func jobFromForm(f *formReader) *domain.Job {
	return &domain.Job{
		Title:           f.str("title"),
		StartDate:       f.date("startDate"),
		EndDate:         f.date("endDate"),
		Level:           f.strs("level"),
		RequiredSkills:  f.strs("requiredSkills"),
		Benefits:        f.strs("benefits"),
		Description:     f.str("description"),
		WorkingAddress:  f.str("workingAddress"),
		SalaryRangeFrom: f.optFloat("salaryRangeFrom"),
		SalaryRangeTo:   f.optFloat("salaryRangeTo"),
		Status:          f.str("status"),
	}
}

func interviewFromForm(f *formReader) *domain.Interview {
	return &domain.Interview{
		Title:         f.str("title"),
		CandidateID:   f.id("candidateId"),
		JobID:         f.id("jobId"),
		Interviewer:   f.str("interviewer"),
		ScheduleDate:  f.date("scheduleDate"),
		ScheduleStart: f.str("scheduleStart"),
		ScheduleEnd:   f.str("scheduleEnd"),
		Location:      f.str("location"),
		MeetingLink:   f.str("meetingLink"),
		Note:          f.str("note"),
		Result:        f.str("result"),
		Status:        f.str("status"),
	}
}

func offerFromForm(f *formReader) *domain.Offer {
	return &domain.Offer{
		Status:              f.str("status"),
		Notes:               f.str("notes"),
		InterviewID:         f.id("interviewId"),
		CandidateID:         f.id("candidateId"),
		UserID:              f.id("userId"),
		Department:          f.str("department"),
		Position:            f.str("position"),
		ContractType:        f.str("contractType"),
		Level:               f.str("level"),
		ContractPeriodStart: f.date("contractPeriodStart"),
		ContractPeriodEnd:   f.date("contractPeriodEnd"),
		DueDate:             f.date("dueDate"),
		BaseSalary:          f.float("baseSalary"),
	}
}
