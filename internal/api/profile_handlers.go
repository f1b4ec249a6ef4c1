package api

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/usicttechiete/boli.ai/internal/cache"
	"github.com/usicttechiete/boli.ai/internal/model"
	"github.com/usicttechiete/boli.ai/internal/utils"
)

const profileCacheTTL = 120 * time.Second

// getMyProfile handles GET /api/profile/me
//
// Returns the caller's dialect profile, built during onboarding. 404 until
// onboarding has run.
func getMyProfile(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	cacheKey := cache.ProfileKey(userID.String())

	var cached model.DialectProfile
	if store.Get(c.Request.Context(), cacheKey, &cached) {
		utils.Success(c, cached)
		return
	}

	profile, err := profileRepo.GetByUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			utils.Error(c, http.StatusNotFound, "NOT_FOUND", "Profile not found")
			return
		}
		log.Printf("[API] Failed to fetch profile for user %s: %v", userID, err)
		utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch profile")
		return
	}

	store.Set(c.Request.Context(), cacheKey, profile, profileCacheTTL)

	utils.Success(c, profile)
}
