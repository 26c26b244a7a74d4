package booking

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Field error codes. Validation errors are field-scoped and recoverable by
// the user; the full set is always returned so every violation can be shown
// at once.
const (
	CodeRequired       = "RequiredField"
	CodeTooLong        = "TooLong"
	CodeInvalidFormat  = "InvalidFormat"
	CodeInvalidRoom    = "InvalidRoom"
	CodePastDateTime   = "PastDateTime"
	CodeEndBeforeStart = "EndBeforeStart"
)

const (
	maxNameLen    = 100
	maxPurposeLen = 500
	minPhoneLen   = 10
	maxPhoneLen   = 13
)

// emailShape requires a non-whitespace local part and a non-whitespace
// domain containing a dot.
var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var nonDigits = regexp.MustCompile(`\D`)

// FieldError is one violation on a single request field.
type FieldError struct {
	Code    string
	Message string
}

// FieldErrors holds at most one violation per known request field.
// A nil slot means the field passed.
type FieldErrors struct {
	RoomID        *FieldError
	BorrowerName  *FieldError
	BorrowerEmail *FieldError
	BorrowerPhone *FieldError
	StartTime     *FieldError
	EndTime       *FieldError
	Purpose       *FieldError
}

// Empty reports whether no field has a violation.
func (e *FieldErrors) Empty() bool {
	return e.RoomID == nil && e.BorrowerName == nil && e.BorrowerEmail == nil &&
		e.BorrowerPhone == nil && e.StartTime == nil && e.EndTime == nil &&
		e.Purpose == nil
}

// ByField returns the violations keyed by wire field name, the shape the
// presentation layer renders per field.
func (e *FieldErrors) ByField() map[string][]string {
	out := map[string][]string{}
	add := func(field string, fe *FieldError) {
		if fe != nil {
			out[field] = []string{fe.Message}
		}
	}
	add("roomId", e.RoomID)
	add("borrowerName", e.BorrowerName)
	add("borrowerEmail", e.BorrowerEmail)
	add("borrowerPhone", e.BorrowerPhone)
	add("startTime", e.StartTime)
	add("endTime", e.EndTime)
	add("purpose", e.Purpose)
	return out
}

// ValidationError carries a full set of field violations across the service
// boundary as a single error value.
type ValidationError struct {
	Fields *FieldErrors
}

func (e *ValidationError) Error() string {
	return "booking request validation failed"
}

// Request is a proposed booking, as submitted for create or for a full
// field edit of a pending booking.
type Request struct {
	RoomID        int64
	BorrowerName  string
	BorrowerEmail string
	BorrowerPhone string
	StartTime     time.Time
	EndTime       time.Time
	Purpose       string
}

// NormalizedRequest is an accepted request with trimmed strings and times
// truncated to minute precision, ready for the store.
type NormalizedRequest struct {
	RoomID        int64
	BorrowerName  string
	BorrowerEmail string
	BorrowerPhone string
	StartTime     time.Time
	EndTime       time.Time
	Purpose       string
}

// Validate checks a booking request against the acceptance rules. It is a
// pure function: the reference clock is the injected now, never the wall
// clock. All fields are checked independently and every violation is
// collected; a nil FieldErrors result means the request was accepted.
func Validate(req Request, now time.Time) (*NormalizedRequest, *FieldErrors) {
	ferr := &FieldErrors{}

	if req.RoomID <= 0 {
		ferr.RoomID = &FieldError{Code: CodeInvalidRoom, Message: "a room must be selected"}
	}

	name := strings.TrimSpace(req.BorrowerName)
	if name == "" {
		ferr.BorrowerName = &FieldError{Code: CodeRequired, Message: "borrower name is required"}
	} else if utf8.RuneCountInString(name) > maxNameLen {
		ferr.BorrowerName = &FieldError{Code: CodeTooLong, Message: fmt.Sprintf("borrower name must be at most %d characters", maxNameLen)}
	}

	email := strings.TrimSpace(req.BorrowerEmail)
	if email == "" {
		ferr.BorrowerEmail = &FieldError{Code: CodeRequired, Message: "borrower email is required"}
	} else if !emailShape.MatchString(email) {
		ferr.BorrowerEmail = &FieldError{Code: CodeInvalidFormat, Message: "borrower email format is invalid"}
	}

	phone := strings.TrimSpace(req.BorrowerPhone)
	if phone == "" {
		ferr.BorrowerPhone = &FieldError{Code: CodeRequired, Message: "borrower phone is required"}
	} else if n := len(nonDigits.ReplaceAllString(phone, "")); n < minPhoneLen || n > maxPhoneLen {
		ferr.BorrowerPhone = &FieldError{Code: CodeInvalidFormat, Message: fmt.Sprintf("borrower phone must contain %d-%d digits", minPhoneLen, maxPhoneLen)}
	}

	if req.StartTime.IsZero() {
		ferr.StartTime = &FieldError{Code: CodeRequired, Message: "start time is required"}
	} else if req.StartTime.Before(now) {
		ferr.StartTime = &FieldError{Code: CodePastDateTime, Message: "start time must not be in the past"}
	}

	if req.EndTime.IsZero() {
		ferr.EndTime = &FieldError{Code: CodeRequired, Message: "end time is required"}
	} else if !req.StartTime.IsZero() && !req.EndTime.After(req.StartTime) {
		ferr.EndTime = &FieldError{Code: CodeEndBeforeStart, Message: "end time must be after start time"}
	}

	purpose := strings.TrimSpace(req.Purpose)
	if utf8.RuneCountInString(purpose) > maxPurposeLen {
		ferr.Purpose = &FieldError{Code: CodeTooLong, Message: fmt.Sprintf("purpose must be at most %d characters", maxPurposeLen)}
	}

	if !ferr.Empty() {
		return nil, ferr
	}

	return &NormalizedRequest{
		RoomID:        req.RoomID,
		BorrowerName:  name,
		BorrowerEmail: email,
		BorrowerPhone: phone,
		StartTime:     req.StartTime.Truncate(time.Minute),
		EndTime:       req.EndTime.Truncate(time.Minute),
		Purpose:       purpose,
	}, nil
}
