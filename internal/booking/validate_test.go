package booking

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

func validRequest() Request {
	return Request{
		RoomID:        5,
		BorrowerName:  "Ana",
		BorrowerEmail: "ana@x.com",
		BorrowerPhone: "0812345678",
		StartTime:     testNow.Add(21 * time.Hour), // tomorrow 09:00
		EndTime:       testNow.Add(22 * time.Hour), // tomorrow 10:00
	}
}

func TestValidateAcceptsWellFormedRequest(t *testing.T) {
	norm, ferr := Validate(validRequest(), testNow)
	require.Nil(t, ferr)
	require.NotNil(t, norm)

	assert.Equal(t, int64(5), norm.RoomID)
	assert.Equal(t, "Ana", norm.BorrowerName)
	assert.Equal(t, "ana@x.com", norm.BorrowerEmail)
	assert.Equal(t, "0812345678", norm.BorrowerPhone)
}

func TestValidateIsIdempotent(t *testing.T) {
	req := validRequest()
	req.BorrowerName = "  Ana  "
	req.StartTime = req.StartTime.Add(30 * time.Second)

	first, ferr := Validate(req, testNow)
	require.Nil(t, ferr)
	second, ferr := Validate(req, testNow)
	require.Nil(t, ferr)

	assert.Equal(t, first, second)
	assert.Equal(t, "Ana", first.BorrowerName)
	// Normalized times are minute-grained, like the form inputs.
	assert.Zero(t, first.StartTime.Second())
}

func TestValidateRoomID(t *testing.T) {
	for _, id := range []int64{0, -1} {
		req := validRequest()
		req.RoomID = id

		_, ferr := Validate(req, testNow)
		require.NotNil(t, ferr)
		require.NotNil(t, ferr.RoomID)
		assert.Equal(t, CodeInvalidRoom, ferr.RoomID.Code)
	}
}

func TestValidateBorrowerName(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		wantCode string
	}{
		{"empty", "", CodeRequired},
		{"whitespace only", "   ", CodeRequired},
		{"too long", strings.Repeat("a", 101), CodeTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			req.BorrowerName = tt.value

			_, ferr := Validate(req, testNow)
			require.NotNil(t, ferr)
			require.NotNil(t, ferr.BorrowerName)
			assert.Equal(t, tt.wantCode, ferr.BorrowerName.Code)
		})
	}

	t.Run("exactly 100 chars is fine", func(t *testing.T) {
		req := validRequest()
		req.BorrowerName = strings.Repeat("a", 100)

		_, ferr := Validate(req, testNow)
		assert.Nil(t, ferr)
	})
}

func TestValidateBorrowerEmail(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		wantCode string
	}{
		{"empty", "", CodeRequired},
		{"no at sign", "ana.example.com", CodeInvalidFormat},
		{"no dot in domain", "ana@example", CodeInvalidFormat},
		{"whitespace in local part", "a na@example.com", CodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			req.BorrowerEmail = tt.value

			_, ferr := Validate(req, testNow)
			require.NotNil(t, ferr)
			require.NotNil(t, ferr.BorrowerEmail)
			assert.Equal(t, tt.wantCode, ferr.BorrowerEmail.Code)
		})
	}
}

// The digit count after stripping non-digits is the sole determinant of
// phone validity.
func TestValidateBorrowerPhoneDigitCount(t *testing.T) {
	tests := []struct {
		phone string
		valid bool
	}{
		{"08123456789", true},      // 11 digits
		{"081-234", false},         // 6 digits
		{"0812-3456-789-00", true}, // 13 digits after stripping
		{"081234567", false},       // 9 digits
		{"0812345678", true},       // 10 digits
		{"08123456789012", false},  // 14 digits
		{"(0812) 345-6789", true},  // 11 digits with punctuation
	}

	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			req := validRequest()
			req.BorrowerPhone = tt.phone

			_, ferr := Validate(req, testNow)
			if tt.valid {
				assert.Nil(t, ferr)
			} else {
				require.NotNil(t, ferr)
				require.NotNil(t, ferr.BorrowerPhone)
				assert.Equal(t, CodeInvalidFormat, ferr.BorrowerPhone.Code)
			}
		})
	}

	t.Run("empty phone is a required error, not a format error", func(t *testing.T) {
		req := validRequest()
		req.BorrowerPhone = ""

		_, ferr := Validate(req, testNow)
		require.NotNil(t, ferr)
		require.NotNil(t, ferr.BorrowerPhone)
		assert.Equal(t, CodeRequired, ferr.BorrowerPhone.Code)
	})
}

func TestValidateStartTimeInPast(t *testing.T) {
	req := validRequest()
	req.StartTime = testNow.Add(-time.Minute)

	_, ferr := Validate(req, testNow)
	require.NotNil(t, ferr)
	require.NotNil(t, ferr.StartTime)
	assert.Equal(t, CodePastDateTime, ferr.StartTime.Code)
	// endTime is still after startTime, so no time-ordering error on it.
	assert.Nil(t, ferr.EndTime)
}

func TestValidateEndBeforeStart(t *testing.T) {
	t.Run("end before start", func(t *testing.T) {
		req := validRequest()
		req.EndTime = req.StartTime.Add(-time.Hour)

		_, ferr := Validate(req, testNow)
		require.NotNil(t, ferr)
		require.NotNil(t, ferr.EndTime)
		assert.Equal(t, CodeEndBeforeStart, ferr.EndTime.Code)
		assert.Nil(t, ferr.StartTime)
	})

	t.Run("end equal to start is rejected", func(t *testing.T) {
		req := validRequest()
		req.EndTime = req.StartTime

		_, ferr := Validate(req, testNow)
		require.NotNil(t, ferr)
		require.NotNil(t, ferr.EndTime)
		assert.Equal(t, CodeEndBeforeStart, ferr.EndTime.Code)
	})
}

func TestValidateMissingTimes(t *testing.T) {
	req := validRequest()
	req.StartTime = time.Time{}
	req.EndTime = time.Time{}

	_, ferr := Validate(req, testNow)
	require.NotNil(t, ferr)
	require.NotNil(t, ferr.StartTime)
	require.NotNil(t, ferr.EndTime)
	assert.Equal(t, CodeRequired, ferr.StartTime.Code)
	assert.Equal(t, CodeRequired, ferr.EndTime.Code)
}

func TestValidatePurpose(t *testing.T) {
	t.Run("optional", func(t *testing.T) {
		req := validRequest()
		req.Purpose = ""

		_, ferr := Validate(req, testNow)
		assert.Nil(t, ferr)
	})

	t.Run("too long", func(t *testing.T) {
		req := validRequest()
		req.Purpose = strings.Repeat("p", 501)

		_, ferr := Validate(req, testNow)
		require.NotNil(t, ferr)
		require.NotNil(t, ferr.Purpose)
		assert.Equal(t, CodeTooLong, ferr.Purpose.Code)
	})
}

// Every violation is collected in one pass so the form can show them all at
// once.
func TestValidateCollectsAllErrors(t *testing.T) {
	req := Request{
		RoomID:        0,
		BorrowerName:  "",
		BorrowerEmail: "not-an-email",
		BorrowerPhone: "123",
		StartTime:     testNow.Add(-time.Hour),
		EndTime:       testNow.Add(-2 * time.Hour),
		Purpose:       strings.Repeat("p", 501),
	}

	_, ferr := Validate(req, testNow)
	require.NotNil(t, ferr)

	assert.NotNil(t, ferr.RoomID)
	assert.NotNil(t, ferr.BorrowerName)
	assert.NotNil(t, ferr.BorrowerEmail)
	assert.NotNil(t, ferr.BorrowerPhone)
	assert.NotNil(t, ferr.StartTime)
	assert.NotNil(t, ferr.EndTime)
	assert.NotNil(t, ferr.Purpose)
	assert.Len(t, ferr.ByField(), 7)
}
