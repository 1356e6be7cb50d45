package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/validation"
	"github.com/patrickmn/go-cache"
	"gorm.io/gorm"
)

var ErrPageNotFound = errors.New("page not published yet")

const (
	cacheKeyFAQs        = "faqs"
	cacheKeySocialLinks = "social_media_links"
)

// PagesService serves the static-ish site pages: terms, privacy policy,
// FAQs and social links. Lists are cached until an admin write.
type PagesService struct {
	db    *gorm.DB
	media *MediaService
	cache *cache.Cache
}

func NewPagesService(db *gorm.DB, media *MediaService, ttl time.Duration) *PagesService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &PagesService{
		db:    db,
		media: media,
		cache: cache.New(ttl, ttl*2),
	}
}

// latest loads the newest row of a versioned page.
func latest[T any](ctx context.Context, db *gorm.DB) (*T, error) {
	var row T
	if err := db.WithContext(ctx).Order("created_at DESC, id DESC").First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (s *PagesService) Terms(ctx context.Context) (*models.TermsAndConditions, error) {
	return latest[models.TermsAndConditions](ctx, s.db)
}

func (s *PagesService) Privacy(ctx context.Context) (*models.PrivacyPolicy, error) {
	return latest[models.PrivacyPolicy](ctx, s.db)
}

// PublishTerms stores a new version; older versions are kept.
func (s *PagesService) PublishTerms(ctx context.Context, text string) (*models.TermsAndConditions, error) {
	if err := validation.Var("terms", text, "required"); err != nil {
		return nil, err
	}
	row := models.TermsAndConditions{Terms: text}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("failed to publish terms: %w", err)
	}
	return &row, nil
}

func (s *PagesService) PublishPrivacy(ctx context.Context, text string) (*models.PrivacyPolicy, error) {
	if err := validation.Var("policy", text, "required"); err != nil {
		return nil, err
	}
	row := models.PrivacyPolicy{Policy: text}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("failed to publish privacy policy: %w", err)
	}
	return &row, nil
}

func (s *PagesService) FAQs(ctx context.Context) ([]models.FAQ, error) {
	if cached, found := s.cache.Get(cacheKeyFAQs); found {
		return cached.([]models.FAQ), nil
	}
	var faqs []models.FAQ
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&faqs).Error; err != nil {
		return nil, err
	}
	s.cache.Set(cacheKeyFAQs, faqs, cache.DefaultExpiration)
	return faqs, nil
}

type faqInput struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}

func (s *PagesService) CreateFAQ(ctx context.Context, question, answer string) (*models.FAQ, error) {
	if err := validation.Struct(faqInput{Question: question, Answer: answer}); err != nil {
		return nil, err
	}
	faq := models.FAQ{Question: question, Answer: answer}
	if err := s.db.WithContext(ctx).Create(&faq).Error; err != nil {
		return nil, fmt.Errorf("failed to create faq: %w", err)
	}
	s.cache.Delete(cacheKeyFAQs)
	return &faq, nil
}

func (s *PagesService) SocialLinks(ctx context.Context) ([]models.SocialMediaLink, error) {
	if cached, found := s.cache.Get(cacheKeySocialLinks); found {
		return cached.([]models.SocialMediaLink), nil
	}
	var links []models.SocialMediaLink
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&links).Error; err != nil {
		return nil, err
	}
	s.cache.Set(cacheKeySocialLinks, links, cache.DefaultExpiration)
	return links, nil
}

type socialLinkInput struct {
	PlatformName string `json:"platform_name" validate:"required,max=100"`
	ProfileURL   string `json:"profile_url" validate:"required,url,max=2048"`
}

// CreateSocialLink stores a link whose image (an object name, may be empty)
// has already been uploaded, then indexes the image.
func (s *PagesService) CreateSocialLink(ctx context.Context, platform, profileURL, image string) (*models.SocialMediaLink, error) {
	if err := validation.Struct(socialLinkInput{PlatformName: platform, ProfileURL: profileURL}); err != nil {
		return nil, err
	}
	link := models.SocialMediaLink{PlatformName: platform, ProfileURL: profileURL, Image: image}
	if err := s.db.WithContext(ctx).Create(&link).Error; err != nil {
		return nil, fmt.Errorf("failed to create social link: %w", err)
	}
	s.cache.Delete(cacheKeySocialLinks)

	if _, err := s.media.SyncFor(ctx, &link); err != nil {
		return nil, err
	}
	return &link, nil
}
