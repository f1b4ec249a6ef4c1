package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/usicttechiete/boli.ai/internal/onboarding"
	"github.com/usicttechiete/boli.ai/internal/pipeline"
	"github.com/usicttechiete/boli.ai/internal/utils"
)

const maxSeedFiles = 5

// analyzeOnboarding handles POST /api/onboarding/analyze
//
// Accepts up to 5 seed audio files (fields seed_0..seed_4) plus a
// nativeLanguage field, builds the user's dialect profile and marks
// onboarding complete.
func analyzeOnboarding(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "multipart form is required")
		return
	}

	var seeds []onboarding.Seed
	for i := 0; i < maxSeedFiles; i++ {
		headers := form.File[fmt.Sprintf("seed_%d", i)]
		if len(headers) == 0 {
			continue
		}
		header := headers[0]

		file, err := header.Open()
		if err != nil {
			log.Printf("[API] Failed to open seed_%d: %v", i, err)
			continue
		}
		audio, err := io.ReadAll(file)
		file.Close()
		if err != nil || len(audio) == 0 {
			log.Printf("[API] Failed to read seed_%d", i)
			continue
		}

		seeds = append(seeds, onboarding.Seed{Audio: audio, Filename: header.Filename})
	}

	if len(seeds) == 0 {
		utils.Error(c, http.StatusBadRequest, "VALIDATION_ERROR",
			"At least one seed audio file (seed_0..seed_4) is required")
		return
	}

	nativeLanguage := c.PostForm("nativeLanguage")
	if nativeLanguage == "" {
		nativeLanguage = defaultNativeLang
	}

	// Like the analysis pipeline, onboarding runs to completion even if the
	// client disconnects midway.
	profile, err := onboardingSvc.BuildProfile(context.Background(), userID, seeds, nativeLanguage)
	if err != nil {
		var coded *pipeline.CodedError
		if errors.As(err, &coded) && coded.Code == pipeline.CodeSTTFailed {
			utils.Error(c, http.StatusBadGateway, coded.Code, "Speech recognition failed for all seed recordings")
			return
		}
		log.Printf("[API] Onboarding analyze failed for user %s: %v", userID, err)
		utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Onboarding analysis failed")
		return
	}

	utils.Success(c, gin.H{
		"dialectProfile": gin.H{
			"detectedRegion": profile.DetectedRegion,
			"avgWpmBaseline": profile.AvgWPMBaseline,
			"fillerPatterns": profile.FillerPatterns,
		},
		"message": "Voice profile created successfully",
	})
}
