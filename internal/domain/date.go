package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"recruitment-console/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// Date is a calendar day exchanged as "yyyy-MM-dd".
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a form value. An empty string yields the zero Date.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	if len(s) > len(validation.DateLayout) {
		s = s[:len(validation.DateLayout)]
	}
	t, err := time.Parse(validation.DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q", s)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(validation.DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Timestamp is a read-only server time. The resource servers emit several
// layouts, with and without zone, and sometimes epoch milliseconds.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	validation.DateLayout,
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339))
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*t = Timestamp{}
		return nil
	}
	if ms, err := strconv.ParseInt(string(data), 10, 64); err == nil {
		*t = Timestamp{time.UnixMilli(ms).UTC()}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*t = Timestamp{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			*t = Timestamp{parsed}
			return nil
		}
	}
	return fmt.Errorf("invalid timestamp %q", s)
}

// Display renders the timestamp for tables.
func (t Timestamp) Display() string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006 15:04")
}

// NewValidator returns the shared validator with Date support, so that
// required, past_date and gtefield see Date fields as time.Time.
func NewValidator() *validator.Validate {
	v := validation.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(Date); ok {
			return d.Time
		}
		return nil
	}, Date{})
	return v
}
