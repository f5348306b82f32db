package services

import (
	"context"

	"github.com/RomaniOSDev/17PaperRoost/internal/repositories/kv"
)

const KeyOnboardingComplete = "OnboardingComplete"

// Preferences are app-level flags that are not part of authentication.
type Preferences struct {
	repo kv.Repository
}

func NewPreferences(repo kv.Repository) *Preferences {
	return &Preferences{repo: repo}
}

// OnboardingComplete reports whether the intro has been shown. A missing
// key reads as false.
func (p *Preferences) OnboardingComplete(ctx context.Context) (bool, error) {
	v, _, err := kv.GetBool(ctx, p.repo, KeyOnboardingComplete)
	return v, err
}

func (p *Preferences) SetOnboardingComplete(ctx context.Context, done bool) error {
	return kv.SetBool(ctx, p.repo, KeyOnboardingComplete, done)
}
