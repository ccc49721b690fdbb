package usecase

import (
	"github.com/hospitalops/pulse/pkg/domain/interfaces"
	"github.com/hospitalops/pulse/pkg/service/analytics"
)

// UseCases orchestrates repository access and alert event broadcasting.
type UseCases struct {
	repository interfaces.Repository
	notifier   interfaces.AlertNotifier
	analytics  *analytics.Client
}

var _ interfaces.AlertUsecases = &UseCases{}

type Option func(*UseCases)

func WithNotifier(notifier interfaces.AlertNotifier) Option {
	return func(u *UseCases) {
		u.notifier = notifier
	}
}

func WithAnalytics(client *analytics.Client) Option {
	return func(u *UseCases) {
		u.analytics = client
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repository: repo,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}
