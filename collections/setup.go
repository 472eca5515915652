package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"communityportal/services"
)

// imageMimeTypes is what the membership photo upload accepts.
var imageMimeTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// attachmentMimeTypes mirrors the complaint attachment allow-list.
var attachmentMimeTypes = []string{"image/jpeg", "image/png", "image/gif", "application/pdf", "text/plain"}

// Setup programmatically creates/ensures the members, donations and
// complaints collections exist.
func Setup(app *pocketbase.PocketBase) {
	ensureCollection(app, "members", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "full_name", Required: true})
		c.Fields.Add(&core.TextField{Name: "father_name", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "gender",
			Required:  true,
			Values:    services.GenderOptions,
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "caste", Required: true})
		c.Fields.Add(&core.TextField{Name: "dob", Required: true})
		c.Fields.Add(&core.TextField{Name: "phone", Required: true})
		c.Fields.Add(&core.TextField{Name: "aadhar", Required: true})
		c.Fields.Add(&core.TextField{Name: "email", Required: false})
		c.Fields.Add(&core.TextField{Name: "village", Required: true})
		c.Fields.Add(&core.TextField{Name: "full_address", Required: true})
		c.Fields.Add(&core.TextField{Name: "state", Required: true})
		c.Fields.Add(&core.TextField{Name: "district", Required: true})
		c.Fields.Add(&core.TextField{Name: "mandal", Required: true})
		c.Fields.Add(&core.FileField{
			Name:      "photo",
			MaxSelect: 1,
			MaxSize:   services.MaxUploadSize,
			MimeTypes: imageMimeTypes,
		})
		// Legacy records imported from the old site carry a remote photo URL
		// instead of an uploaded file.
		c.Fields.Add(&core.TextField{Name: "photo_url", Required: false})
		c.Fields.Add(&core.TextField{Name: "membership_id", Required: false})
		c.Fields.Add(&core.FileField{
			Name:      "id_card",
			MaxSelect: 1,
			MaxSize:   services.MaxUploadSize,
			MimeTypes: []string{"image/png"},
		})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    services.MembershipStatuses,
			MaxSelect: 1,
		})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "donations", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "donor_name", Required: true})
		c.Fields.Add(&core.TextField{Name: "phone", Required: true})
		c.Fields.Add(&core.TextField{Name: "email", Required: false})
		c.Fields.Add(&core.TextField{Name: "state", Required: false})
		c.Fields.Add(&core.TextField{Name: "district", Required: false})
		c.Fields.Add(&core.TextField{Name: "mandal", Required: false})
		c.Fields.Add(&core.NumberField{Name: "amount", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "purpose",
			Required:  true,
			Values:    services.DonationPurposes,
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "reference_id", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    services.DonationStatuses,
			MaxSelect: 1,
		})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "complaints", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "full_name", Required: true})
		c.Fields.Add(&core.TextField{Name: "phone", Required: true})
		c.Fields.Add(&core.TextField{Name: "email", Required: false})
		c.Fields.Add(&core.TextField{Name: "state", Required: true})
		c.Fields.Add(&core.TextField{Name: "district", Required: true})
		c.Fields.Add(&core.TextField{Name: "mandal", Required: true})
		c.Fields.Add(&core.TextField{Name: "subject", Required: true})
		c.Fields.Add(&core.TextField{Name: "description", Required: true})
		c.Fields.Add(&core.FileField{
			Name:      "attachment",
			MaxSelect: 1,
			MaxSize:   services.MaxUploadSize,
			MimeTypes: attachmentMimeTypes,
		})
		c.Fields.Add(&core.TextField{Name: "reference_id", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    services.ComplaintStatuses,
			MaxSelect: 1,
		})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
