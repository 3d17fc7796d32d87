package service

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/identitylab/account-system/internal/core/domain"
	"github.com/identitylab/account-system/internal/core/ports"
)

const (
	avatarWidth  = 200
	avatarHeight = 200
)

// ImageProcessor is the injectable avatar-handling strategy.
type ImageProcessor interface {
	Process(path string, width, height int) (string, error)
}

// SimulatedImageProcessor mimics resizing by tagging the path with the
// target dimensions.
type SimulatedImageProcessor struct{}

func (SimulatedImageProcessor) Process(path string, width, height int) (string, error) {
	return fmt.Sprintf("processed_%dx%d_%s", width, height, path), nil
}

// ProfileService updates one account's mutable profile fields, delegating
// avatar handling to the image-processing strategy.
type ProfileService struct {
	account *domain.Account
	images  ImageProcessor
	log     zerolog.Logger
}

func NewProfileService(account *domain.Account, images ImageProcessor, log zerolog.Logger) *ProfileService {
	if images == nil {
		images = SimulatedImageProcessor{}
	}
	return &ProfileService{account: account, images: images, log: log}
}

// UpdateProfile applies the non-nil fields of update. Unset fields are left
// exactly as they were.
func (s *ProfileService) UpdateProfile(update ports.ProfileUpdate) error {
	var avatarURL *string
	if update.AvatarPath != nil {
		processed, err := s.images.Process(*update.AvatarPath, avatarWidth, avatarHeight)
		if err != nil {
			return fmt.Errorf("process avatar: %w", err)
		}
		avatarURL = &processed
	}
	s.account.ApplyProfile(update.PhoneNumber, avatarURL)
	s.log.Info().Str("account_id", s.account.ID).Msg("profile updated")
	return nil
}
