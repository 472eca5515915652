package collections

import (
	"fmt"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"communityportal/services"
)

// ── Definition structs ───────────────────────────────────────────────────

type memberDef struct {
	fullName     string
	fatherName   string
	gender       string
	caste        string
	dob          string
	phone        string
	aadhar       string
	email        string
	village      string
	fullAddress  string
	state        string
	district     string
	mandal       string
	status       string
	membershipID string // only for approved members
}

type donationDef struct {
	donorName string
	phone     string
	amount    float64
	purpose   string
	state     string
	district  string
	status    string
}

type complaintDef struct {
	fullName    string
	phone       string
	subject     string
	description string
	state       string
	district    string
	mandal      string
	status      string
}

// Seed populates the collections with a small set of realistic sample
// records. It is safe to call on every startup because it returns early if
// any member records already exist.
func Seed(app *pocketbase.PocketBase) error {
	membersCol, err := app.FindCollectionByNameOrId("members")
	if err != nil {
		return fmt.Errorf("seed: could not find members collection: %w", err)
	}
	existing, err := app.FindAllRecords(membersCol)
	if err != nil {
		return fmt.Errorf("seed: could not query members: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	fy := services.FiscalYear(time.Now())

	members := []memberDef{
		{
			fullName: "Ravi Kumar", fatherName: "Suresh Kumar", gender: "Male",
			caste: "Mudiraj", dob: "1988-04-19", phone: "9876543210",
			aadhar: "234523452345", email: "ravi.kumar@example.com",
			village: "Chevella", fullAddress: "H-12, Main Road, Chevella",
			state: "Telangana", district: "Rangareddy", mandal: "Chevella",
			status: "approved", membershipID: fmt.Sprintf("SNG-MEM-%s-0001", fy),
		},
		{
			fullName: "Lakshmi Devi", fatherName: "Venkat Rao", gender: "Female",
			caste: "Yadav", dob: "1992-11-02", phone: "8765432109",
			village: "Pedakakani", fullAddress: "Plot 4, Temple Street, Pedakakani",
			aadhar: "345634563456",
			state: "Andhra Pradesh", district: "Guntur", mandal: "Pedakakani",
			status: "approved", membershipID: fmt.Sprintf("SNG-MEM-%s-0002", fy),
		},
		{
			fullName: "Anil Reddy", fatherName: "Pratap Reddy", gender: "Male",
			caste: "Reddy", dob: "1997-06-30", phone: "7654321098",
			aadhar: "456745674567", email: "anil.r@example.com",
			village: "Hunsur", fullAddress: "21, Market Lane, Hunsur",
			state: "Karnataka", district: "Mysuru", mandal: "Hunsur",
			status: "pending",
		},
	}

	for _, def := range members {
		record := core.NewRecord(membersCol)
		record.Set("full_name", def.fullName)
		record.Set("father_name", def.fatherName)
		record.Set("gender", def.gender)
		record.Set("caste", def.caste)
		record.Set("dob", def.dob)
		record.Set("phone", def.phone)
		record.Set("aadhar", def.aadhar)
		record.Set("email", def.email)
		record.Set("village", def.village)
		record.Set("full_address", def.fullAddress)
		record.Set("state", def.state)
		record.Set("district", def.district)
		record.Set("mandal", def.mandal)
		record.Set("status", def.status)
		record.Set("membership_id", def.membershipID)
		if err := app.Save(record); err != nil {
			return fmt.Errorf("seed: could not save member %q: %w", def.fullName, err)
		}
	}

	donationsCol, err := app.FindCollectionByNameOrId("donations")
	if err != nil {
		return fmt.Errorf("seed: could not find donations collection: %w", err)
	}
	donations := []donationDef{
		{donorName: "Ravi Kumar", phone: "9876543210", amount: 5001,
			purpose: "Community Hall", state: "Telangana", district: "Rangareddy",
			status: "acknowledged"},
		{donorName: "Sunitha Rao", phone: "9123456780", amount: 1500,
			purpose: "Education Support", status: "received"},
	}
	for i, def := range donations {
		record := core.NewRecord(donationsCol)
		record.Set("donor_name", def.donorName)
		record.Set("phone", def.phone)
		record.Set("amount", def.amount)
		record.Set("purpose", def.purpose)
		record.Set("state", def.state)
		record.Set("district", def.district)
		record.Set("status", def.status)
		record.Set("reference_id", fmt.Sprintf("SNG-DON-%s-%04d", fy, i+1))
		if err := app.Save(record); err != nil {
			return fmt.Errorf("seed: could not save donation from %q: %w", def.donorName, err)
		}
	}

	complaintsCol, err := app.FindCollectionByNameOrId("complaints")
	if err != nil {
		return fmt.Errorf("seed: could not find complaints collection: %w", err)
	}
	complaints := []complaintDef{
		{
			fullName: "Lakshmi Devi", phone: "8765432109",
			subject:     "Community hall access road",
			description: "The approach road to the community hall has been impassable since the last rains.",
			state:       "Andhra Pradesh", district: "Guntur", mandal: "Pedakakani",
			status: "open",
		},
		{
			fullName: "Mahesh Goud", phone: "9988776655",
			subject:     "Drinking water supply",
			description: "Borewell near the school compound has not been repaired for over three weeks.",
			state:       "Telangana", district: "Nalgonda", mandal: "Chityal",
			status: "in_progress",
		},
	}
	for i, def := range complaints {
		record := core.NewRecord(complaintsCol)
		record.Set("full_name", def.fullName)
		record.Set("phone", def.phone)
		record.Set("subject", def.subject)
		record.Set("description", def.description)
		record.Set("state", def.state)
		record.Set("district", def.district)
		record.Set("mandal", def.mandal)
		record.Set("status", def.status)
		record.Set("reference_id", fmt.Sprintf("SNG-CMP-%s-%04d", fy, i+1))
		if err := app.Save(record); err != nil {
			return fmt.Errorf("seed: could not save complaint from %q: %w", def.fullName, err)
		}
	}

	return nil
}
