package services

// GenderOptions is the list of accepted gender selections.
var GenderOptions = []string{"Male", "Female", "Other"}

// DonationPurposes is the list of donation purpose options.
var DonationPurposes = []string{
	"General Fund",
	"Education Support",
	"Medical Relief",
	"Community Hall",
	"Annadanam",
}

// MembershipStatuses is the membership application lifecycle.
var MembershipStatuses = []string{"pending", "approved", "rejected"}

// ComplaintStatuses is the complaint lifecycle.
var ComplaintStatuses = []string{"open", "in_progress", "resolved", "rejected"}

// DonationStatuses is the donation lifecycle.
var DonationStatuses = []string{"received", "acknowledged", "refunded"}

// ValidStatus reports whether value is one of the allowed statuses.
func ValidStatus(allowed []string, value string) bool {
	for _, s := range allowed {
		if s == value {
			return true
		}
	}
	return false
}
