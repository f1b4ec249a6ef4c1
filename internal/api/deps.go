package api

import (
	"github.com/usicttechiete/boli.ai/internal/cache"
	"github.com/usicttechiete/boli.ai/internal/onboarding"
	"github.com/usicttechiete/boli.ai/internal/pipeline"
	"github.com/usicttechiete/boli.ai/internal/repository"
)

// Package-level collaborators, wired once from main before routes are served.
var (
	runner        *pipeline.Runner
	sessionRepo   repository.SessionRepository
	profileRepo   repository.DialectProfileRepository
	onboardingSvc *onboarding.Service
	store         *cache.Cache
)

// Init wires the handler dependencies.
func Init(r *pipeline.Runner, sessions repository.SessionRepository, profiles repository.DialectProfileRepository, ob *onboarding.Service, c *cache.Cache) {
	runner = r
	sessionRepo = sessions
	profileRepo = profiles
	onboardingSvc = ob
	store = c
}
