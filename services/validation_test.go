package services

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"reflect"
	"strings"
	"testing"
	"time"
)

var testNow = time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

func validMembershipFields() map[string]string {
	return map[string]string{
		"full_name":    "Ravi Kumar",
		"father_name":  "Suresh Kumar",
		"caste":        "Mudiraj",
		"village":      "Chevella Village 2",
		"full_address": "H-12, Main Road, Chevella",
		"phone":        "9876543210",
		"aadhar":       "123412341234",
		"email":        "ravi@example.com",
		"dob":          "1990-03-12",
		"gender":       "Male",
		"state":        "Telangana",
		"district":     "Rangareddy",
		"mandal":       "Chevella",
	}
}

func testPhoto(t *testing.T) *Upload {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test photo: %v", err)
	}
	return &Upload{Name: "photo.png", Size: int64(buf.Len()), Data: buf.Bytes()}
}

func TestValidateMembership_AllValid(t *testing.T) {
	errs := ValidateMembership(validMembershipFields(), testPhoto(t), testNow)
	if len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestValidateMembership_Idempotent(t *testing.T) {
	fields := validMembershipFields()
	fields["phone"] = "12345"
	fields["caste"] = ""
	photo := testPhoto(t)

	first := ValidateMembership(fields, photo, testNow)
	second := ValidateMembership(fields, photo, testNow)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("validation not idempotent:\nfirst  %v\nsecond %v", first, second)
	}
}

func TestValidatePhoneVectors(t *testing.T) {
	cases := []struct {
		phone string
		want  bool
	}{
		{"9876543210", true},
		{"98765 43210", true}, // embedded whitespace stripped
		{"1876543210", false}, // bad first digit
		{"98765432100", false}, // 11 digits
		{"987654321", false},
		{"", false},
	}
	for _, c := range cases {
		if got := ValidatePhone(c.phone); got != c.want {
			t.Errorf("ValidatePhone(%q) = %v, want %v", c.phone, got, c.want)
		}
	}
}

func TestValidateAadharVectors(t *testing.T) {
	cases := []struct {
		aadhar string
		want   bool
	}{
		{"123412341234", true},
		{"1234 1234 1234", true},
		{"12341234123", false},  // 11 digits
		{"1234123412345", false}, // 13 digits
		{"12341234123a", false},
		{"", false},
	}
	for _, c := range cases {
		if got := ValidateAadhar(c.aadhar); got != c.want {
			t.Errorf("ValidateAadhar(%q) = %v, want %v", c.aadhar, got, c.want)
		}
	}
}

func TestNameFieldRejectsNonLetters(t *testing.T) {
	fields := validMembershipFields()
	fields["full_name"] = "Ravi Kumar 2"
	errs := ValidateMembership(fields, testPhoto(t), testNow)
	if errs["full_name"] == "" {
		t.Error("expected an error for digits in full_name")
	}
	if !strings.Contains(errs["full_name"], "letters and spaces") {
		t.Errorf("expected the specific message, got %q", errs["full_name"])
	}
}

func TestAddressFieldAllowsPunctuation(t *testing.T) {
	fields := validMembershipFields()
	fields["full_address"] = "H-12, Main Rd. Chevella"
	errs := ValidateMembership(fields, testPhoto(t), testNow)
	if errs["full_address"] != "" {
		t.Errorf("unexpected error for valid address: %q", errs["full_address"])
	}

	fields["full_address"] = "H-12 @ Main Road"
	errs = ValidateMembership(fields, testPhoto(t), testNow)
	if errs["full_address"] == "" {
		t.Error("expected an error for '@' in address field")
	}
}

func TestAgeBoundary(t *testing.T) {
	// Calendar-year rule: only the birth year counts, not month/day.
	exactly18 := fmt.Sprintf("%d-12-31", testNow.Year()-18)
	age, ok := AgeFromDOB(exactly18, testNow)
	if !ok || age != 18 {
		t.Fatalf("AgeFromDOB(%q) = %d, %v; want 18, true", exactly18, age, ok)
	}

	fields := validMembershipFields()
	fields["dob"] = exactly18
	if errs := ValidateMembership(fields, testPhoto(t), testNow); errs["dob"] != "" {
		t.Errorf("age exactly 18 should pass, got %q", errs["dob"])
	}

	fields["dob"] = fmt.Sprintf("%d-01-01", testNow.Year()-17)
	if errs := ValidateMembership(fields, testPhoto(t), testNow); errs["dob"] == "" {
		t.Error("age 17 should fail")
	}
}

func TestEmailOptional(t *testing.T) {
	fields := validMembershipFields()
	fields["email"] = ""
	if errs := ValidateMembership(fields, testPhoto(t), testNow); errs["email"] != "" {
		t.Errorf("empty email should be accepted, got %q", errs["email"])
	}

	fields["email"] = "not-an-email"
	if errs := ValidateMembership(fields, testPhoto(t), testNow); errs["email"] == "" {
		t.Error("malformed email should be rejected")
	}
}

func TestPhotoRules(t *testing.T) {
	fields := validMembershipFields()

	if errs := ValidateMembership(fields, nil, testNow); errs["photo"] == "" {
		t.Error("missing photo should be rejected")
	}

	big := testPhoto(t)
	big.Size = MaxUploadSize + 1
	if errs := ValidateMembership(fields, big, testNow); errs["photo"] == "" {
		t.Error("oversize photo should be rejected")
	}
}

func TestMembershipLocationCascade(t *testing.T) {
	fields := validMembershipFields()
	fields["district"] = "Guntur" // belongs to Andhra Pradesh, not Telangana
	fields["mandal"] = "Tenali"
	errs := ValidateMembership(fields, testPhoto(t), testNow)
	if errs["district"] == "" {
		t.Errorf("district under the wrong state should be rejected, got %v", errs)
	}
}

func TestValidateComplaint(t *testing.T) {
	fields := map[string]string{
		"full_name":   "Lakshmi Devi",
		"phone":       "8765432109",
		"subject":     "Road condition",
		"description": "The approach road to the community hall has been impassable for two months.",
		"state":       "Telangana",
		"district":    "Nalgonda",
		"mandal":      "Chityal",
	}

	if errs := ValidateComplaint(fields, nil); len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}

	short := map[string]string{}
	for k, v := range fields {
		short[k] = v
	}
	short["description"] = "   too short   "
	errs := ValidateComplaint(short, nil)
	if !strings.Contains(errs["description"], "at least 20") {
		t.Errorf("expected minimum-length message, got %q", errs["description"])
	}
}

func TestComplaintAttachmentRules(t *testing.T) {
	fields := map[string]string{
		"full_name":   "Lakshmi Devi",
		"phone":       "8765432109",
		"subject":     "Road condition",
		"description": "The approach road to the community hall has been impassable for two months.",
		"state":       "Telangana",
		"district":    "Nalgonda",
		"mandal":      "Chityal",
	}

	// PNG is on the allow-list.
	okFile := func(t *testing.T) *Upload { t.Helper(); return testPhoto(t) }(t)
	if errs := ValidateComplaint(fields, okFile); errs["attachment"] != "" {
		t.Errorf("PNG attachment should be accepted, got %q", errs["attachment"])
	}

	// Plain text is on the allow-list.
	txt := &Upload{Name: "note.txt", Size: 11, Data: []byte("plain notes")}
	if errs := ValidateComplaint(fields, txt); errs["attachment"] != "" {
		t.Errorf("text attachment should be accepted, got %q", errs["attachment"])
	}

	// ZIP is not, regardless of size.
	zip := &Upload{Name: "a.zip", Size: 22, Data: []byte("PK\x03\x04............")}
	errs := ValidateComplaint(fields, zip)
	if !strings.Contains(errs["attachment"], "Unsupported file type") {
		t.Errorf("expected type message for zip, got %q", errs["attachment"])
	}
}

func TestValidateDonation(t *testing.T) {
	fields := map[string]string{
		"donor_name": "Anil Reddy",
		"phone":      "7654321098",
		"amount":     "1501.50",
		"purpose":    "Education Support",
	}
	if errs := ValidateDonation(fields); len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}

	fields["amount"] = "-5"
	if errs := ValidateDonation(fields); errs["amount"] == "" {
		t.Error("negative amount should be rejected")
	}

	fields["amount"] = "100"
	fields["purpose"] = "Yachts"
	if errs := ValidateDonation(fields); errs["purpose"] == "" {
		t.Error("unknown purpose should be rejected")
	}
}
