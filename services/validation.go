package services

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

// MaxUploadSize is the per-file cap for photos and attachments (5 MiB).
const MaxUploadSize = 5 << 20

// MinComplaintDescription is the minimum trimmed description length.
const MinComplaintDescription = 20

// Validation regex patterns
var (
	namePattern    = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	addressPattern = regexp.MustCompile(`^[a-zA-Z0-9\s,.\-]+$`)
	phonePattern   = regexp.MustCompile(`^[6-9][0-9]{9}$`)
	aadharPattern  = regexp.MustCompile(`^[0-9]{12}$`)
	emailPattern   = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// allowedAttachmentTypes is the MIME allow-list for complaint attachments.
var allowedAttachmentTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"application/pdf",
	"text/plain",
}

// Upload describes a received multipart file for validation purposes.
// Data holds the full content so the MIME type can be sniffed.
type Upload struct {
	Name string
	Size int64
	Data []byte
}

// ValidateName validates a name-like field (letters and spaces only).
func ValidateName(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && namePattern.MatchString(v)
}

// ValidateAddressLine validates an address-like field.
func ValidateAddressLine(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && addressPattern.MatchString(v)
}

// ValidatePhone validates an Indian mobile number (10 digits starting with 6-9).
// Embedded whitespace is stripped before matching.
func ValidatePhone(phone string) bool {
	phone = stripWhitespace(phone)
	return phonePattern.MatchString(phone)
}

// ValidateAadhar validates an Aadhaar number (exactly 12 digits).
// Embedded whitespace is stripped before matching.
func ValidateAadhar(aadhar string) bool {
	aadhar = stripWhitespace(aadhar)
	return aadharPattern.MatchString(aadhar)
}

// ValidateEmail validates an email address format. Empty is acceptable; the
// caller decides whether the field is required.
func ValidateEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return true
	}
	return emailPattern.MatchString(email)
}

// AgeFromDOB derives age by calendar-year subtraction. This deliberately
// matches the portal's historical behavior: a birthday later this year still
// counts the full year.
func AgeFromDOB(dob string, now time.Time) (int, bool) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(dob))
	if err != nil {
		return 0, false
	}
	return now.Year() - t.Year(), true
}

// AttachmentTypeAllowed sniffs the content and reports whether its MIME type
// is on the attachment allow-list.
func AttachmentTypeAllowed(data []byte) bool {
	detected := mimetype.Detect(data)
	for _, allowed := range allowedAttachmentTypes {
		if detected.Is(allowed) {
			return true
		}
	}
	return false
}

func stripWhitespace(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// ValidateMembership checks a membership registration and returns a map of
// field -> error message. An empty map means the submission may proceed.
func ValidateMembership(fields map[string]string, photo *Upload, now time.Time) map[string]string {
	errors := make(map[string]string)

	requireName(errors, fields, "full_name", "Full name")
	requireName(errors, fields, "father_name", "Father's name")
	requireName(errors, fields, "caste", "Caste")
	requireAddress(errors, fields, "village", "Village")
	requireAddress(errors, fields, "full_address", "Full address")

	checkPhone(errors, fields["phone"])

	if a := fields["aadhar"]; strings.TrimSpace(a) == "" {
		errors["aadhar"] = "Aadhaar number is required"
	} else if !ValidateAadhar(a) {
		errors["aadhar"] = "Aadhaar number must be exactly 12 digits"
	}

	checkEmail(errors, fields["email"])

	if dob := fields["dob"]; strings.TrimSpace(dob) == "" {
		errors["dob"] = "Date of birth is required"
	} else if age, ok := AgeFromDOB(dob, now); !ok {
		errors["dob"] = "Date of birth must be in YYYY-MM-DD format"
	} else if age < 18 {
		errors["dob"] = "Applicant must be at least 18 years old"
	}

	if g := fields["gender"]; g == "" {
		errors["gender"] = "Gender is required"
	} else if !ValidStatus(GenderOptions, g) {
		errors["gender"] = "Invalid gender selection"
	}

	checkLocation(errors, fields, true)

	if photo == nil || len(photo.Data) == 0 {
		errors["photo"] = "Photo is required"
	} else if photo.Size > MaxUploadSize {
		errors["photo"] = "Photo must be 5 MB or smaller"
	}

	return errors
}

// ValidateComplaint checks a complaint submission. The attachment is
// optional; when present its size and MIME type are checked independently so
// each violation carries its own message.
func ValidateComplaint(fields map[string]string, attachment *Upload) map[string]string {
	errors := make(map[string]string)

	requireName(errors, fields, "full_name", "Full name")
	checkPhone(errors, fields["phone"])
	checkEmail(errors, fields["email"])

	if strings.TrimSpace(fields["subject"]) == "" {
		errors["subject"] = "Subject is required"
	}

	desc := strings.TrimSpace(fields["description"])
	if desc == "" {
		errors["description"] = "Description is required"
	} else if len(desc) < MinComplaintDescription {
		errors["description"] = "Description must be at least 20 characters"
	}

	checkLocation(errors, fields, true)

	if attachment != nil && len(attachment.Data) > 0 {
		if attachment.Size > MaxUploadSize {
			errors["attachment"] = "Attachment must be 5 MB or smaller"
		}
		if !AttachmentTypeAllowed(attachment.Data) {
			errors["attachment"] = "Unsupported file type (allowed: JPEG, PNG, GIF, PDF, plain text)"
		}
	}

	return errors
}

// ValidateDonation checks a donation submission.
func ValidateDonation(fields map[string]string) map[string]string {
	errors := make(map[string]string)

	requireName(errors, fields, "donor_name", "Donor name")
	checkPhone(errors, fields["phone"])
	checkEmail(errors, fields["email"])

	if amt := strings.TrimSpace(fields["amount"]); amt == "" {
		errors["amount"] = "Amount is required"
	} else if v, err := strconv.ParseFloat(amt, 64); err != nil || v <= 0 {
		errors["amount"] = "Amount must be a positive number"
	}

	if p := fields["purpose"]; p == "" {
		errors["purpose"] = "Purpose is required"
	} else if !ValidStatus(DonationPurposes, p) {
		errors["purpose"] = "Invalid purpose selection"
	}

	// Location is optional on donations but must be cascade-consistent.
	if !ValidLocation(fields["state"], fields["district"], fields["mandal"]) {
		errors["district"] = "Selected location is not available"
	}

	return errors
}

func requireName(errors, fields map[string]string, key, label string) {
	v := strings.TrimSpace(fields[key])
	if v == "" {
		errors[key] = label + " is required"
	} else if !namePattern.MatchString(v) {
		errors[key] = label + " may contain letters and spaces only"
	}
}

func requireAddress(errors, fields map[string]string, key, label string) {
	v := strings.TrimSpace(fields[key])
	if v == "" {
		errors[key] = label + " is required"
	} else if !addressPattern.MatchString(v) {
		errors[key] = label + " contains unsupported characters"
	}
}

func checkPhone(errors map[string]string, phone string) {
	if strings.TrimSpace(phone) == "" {
		errors["phone"] = "Phone number is required"
	} else if !ValidatePhone(phone) {
		errors["phone"] = "Invalid phone number (expected: 10 digits starting with 6-9)"
	}
}

func checkEmail(errors map[string]string, email string) {
	if !ValidateEmail(email) {
		errors["email"] = "Invalid email format"
	}
}

// checkLocation enforces the cascading select invariants server-side: each
// level requires its parent, and every value must exist in the table.
func checkLocation(errors, fields map[string]string, required bool) {
	state := fields["state"]
	district := fields["district"]
	mandal := fields["mandal"]

	if required {
		if state == "" {
			errors["state"] = "State is required"
		}
		if district == "" {
			errors["district"] = "District is required"
		}
		if mandal == "" {
			errors["mandal"] = "Mandal is required"
		}
		if errors["state"] != "" || errors["district"] != "" || errors["mandal"] != "" {
			return
		}
	}

	if !ValidLocation(state, district, mandal) {
		switch {
		case state != "" && len(Districts(state)) == 0:
			errors["state"] = "Selected state is not available"
		case district != "" && len(Mandals(state, district)) == 0:
			errors["district"] = "Selected district is not available"
		default:
			errors["mandal"] = "Selected mandal is not available"
		}
	}
}
