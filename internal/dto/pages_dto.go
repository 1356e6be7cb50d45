package dto

type PublishTermsRequest struct {
	Terms string `json:"terms"`
}

type PublishPrivacyRequest struct {
	Policy string `json:"policy"`
}

type CreateFAQRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type SocialLinkResponse struct {
	ID           uint   `json:"id"`
	PlatformName string `json:"platform_name"`
	ProfileURL   string `json:"profile_url"`
	ImageURL     string `json:"image_url,omitempty"`
}
