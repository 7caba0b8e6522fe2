package usecase

import (
	"github.com/secmon-lab/ariadne/pkg/domain/interfaces"
	"github.com/secmon-lab/ariadne/pkg/service/classifier"
	"github.com/secmon-lab/ariadne/pkg/service/responder"
	"github.com/secmon-lab/ariadne/pkg/service/websearch"
)

type UseCases struct {
	repo       interfaces.Repository
	classifier *classifier.Classifier
	search     websearch.Service
	responder  responder.Service

	Chat *ChatUseCase
	Auth AuthUseCaseInterface
}

type Option func(*UseCases)

// WithClassifier overrides the default search-need classifier
func WithClassifier(c *classifier.Classifier) Option {
	return func(uc *UseCases) {
		uc.classifier = c
	}
}

// WithSearch enables web search grounding. A nil service keeps search
// disabled and every message goes to the model ungrounded.
func WithSearch(svc websearch.Service) Option {
	return func(uc *UseCases) {
		uc.search = svc
	}
}

func WithAuth(auth AuthUseCaseInterface) Option {
	return func(uc *UseCases) {
		uc.Auth = auth
	}
}

func New(repo interfaces.Repository, rsp responder.Service, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:       repo,
		classifier: classifier.New(classifier.Config{}),
		responder:  rsp,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Chat = NewChatUseCase(repo, uc.classifier, uc.search, uc.responder)

	return uc
}
