package services

import (
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/content"
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/models"
)

// NewContentRegistry registers every model that reports, comments and the
// media library may point at.
func NewContentRegistry() *content.Registry {
	r := content.NewRegistry()
	r.Register(&content.Kind{
		Name:   models.KindUser,
		Label:  "User",
		Lookup: content.ModelLookup[models.User](),
		Media:  content.FieldFilter{Include: []string{"avatar"}},
	})
	r.Register(&content.Kind{
		Name:   models.KindComment,
		Label:  "Comment",
		Lookup: content.ModelLookup[models.Comment]("Author"),
	})
	r.Register(&content.Kind{
		Name:   models.KindFAQ,
		Label:  "FAQ",
		Lookup: content.ModelLookup[models.FAQ](),
	})
	r.Register(&content.Kind{
		Name:   models.KindSocialMediaLink,
		Label:  "Social media link",
		Lookup: content.ModelLookup[models.SocialMediaLink](),
	})
	r.Register(&content.Kind{
		Name:   models.KindContact,
		Label:  "Contact request",
		Lookup: content.ModelLookup[models.ContactRequest](),
	})
	return r
}
