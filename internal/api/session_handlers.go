package api

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/usicttechiete/boli.ai/internal/cache"
	"github.com/usicttechiete/boli.ai/internal/model"
	"github.com/usicttechiete/boli.ai/internal/pipeline"
	"github.com/usicttechiete/boli.ai/internal/utils"
)

const (
	maxAudioBytes       = 10 * 1024 * 1024 // 10 MB
	historyCacheTTL     = 60 * time.Second // first page only
	defaultNativeLang   = "hindi"
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// analyzeSession handles POST /api/session/analyze
func analyzeSession(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("audio")
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Audio file is required")
		return
	}
	if fileHeader.Size > maxAudioBytes {
		utils.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Audio file exceeds 10MB limit")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Failed to read audio file")
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil || len(audio) == 0 {
		utils.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Audio file is empty or unreadable")
		return
	}

	kind := model.SessionKind(c.PostForm("type"))
	if !kind.Valid() {
		kind = model.KindPractice
	}

	var promptText *string
	if p := c.PostForm("promptText"); p != "" {
		promptText = &p
	}

	durationSecs, _ := strconv.ParseFloat(c.PostForm("duration"), 64)
	if durationSecs < 0 {
		durationSecs = 0
	}

	nativeLanguage := c.PostForm("nativeLanguage")
	if nativeLanguage == "" {
		nativeLanguage = defaultNativeLang
	}

	// The pipeline runs to completion even if the client goes away, so the
	// request context (which gin cancels on disconnect) is not used here.
	result, err := runner.Run(context.Background(), model.AnalysisInput{
		Audio:          audio,
		Filename:       fileHeader.Filename,
		DurationSecs:   durationSecs,
		Kind:           kind,
		PromptText:     promptText,
		UserID:         userID,
		NativeLanguage: nativeLanguage,
	})
	if err != nil {
		var coded *pipeline.CodedError
		if errors.As(err, &coded) {
			switch coded.Code {
			case pipeline.CodeStorageFailed:
				utils.Error(c, http.StatusBadGateway, coded.Code, "Audio storage failed. Please try again.")
			case pipeline.CodeSTTFailed:
				utils.Error(c, http.StatusBadGateway, coded.Code, "Speech recognition failed. Please try again.")
			default:
				utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Analysis failed unexpectedly")
			}
			return
		}
		log.Printf("[API] Session analyze failed for user %s: %v", userID, err)
		utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Analysis failed unexpectedly")
		return
	}

	// Invalidate session history cache. Uses the same background context as
	// the pipeline run: the invalidation must happen even if the client has
	// disconnected, or stale history survives until the TTL expires.
	store.Del(context.Background(),
		cache.SessionHistoryKey(userID.String(), ""),
		cache.SessionHistoryKey(userID.String(), string(kind)),
	)

	utils.Success(c, result)
}

// historyPage is the cached/returned shape of one history page
type historyPage struct {
	Sessions []model.Session `json:"sessions"`
	Total    int             `json:"total"`
}

// getSessionHistory handles GET /api/sessions/history
func getSessionHistory(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultHistoryLimit)))
	if err != nil || limit < 1 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	var kind *model.SessionKind
	kindParam := c.Query("type")
	if kindParam != "" {
		k := model.SessionKind(kindParam)
		if !k.Valid() {
			utils.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid session type")
			return
		}
		kind = &k
	}

	// The key covers user+type only, so a first page cached at one limit is
	// served for any requested limit until it expires or is invalidated.
	cacheKey := cache.SessionHistoryKey(userID.String(), kindParam)

	// Cache only the first page
	if offset == 0 {
		var cached historyPage
		if store.Get(c.Request.Context(), cacheKey, &cached) {
			utils.Success(c, cached)
			return
		}
	}

	sessions, total, err := sessionRepo.ListByUser(c.Request.Context(), userID, kind, limit, offset)
	if err != nil {
		log.Printf("[API] Failed to fetch session history for user %s: %v", userID, err)
		utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch session history")
		return
	}
	if sessions == nil {
		sessions = []model.Session{}
	}

	page := historyPage{Sessions: sessions, Total: total}
	if offset == 0 {
		store.Set(c.Request.Context(), cacheKey, page, historyCacheTTL)
	}

	utils.Success(c, page)
}

// getSessionDetail handles GET /api/sessions/:id
func getSessionDetail(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid session id format")
		return
	}

	session, err := sessionRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			utils.Error(c, http.StatusNotFound, "NOT_FOUND", "Session not found")
			return
		}
		log.Printf("[API] Failed to fetch session %s: %v", id, err)
		utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch session")
		return
	}

	// A session belonging to another user is indistinguishable from a
	// missing one.
	if session.UserID != userID {
		utils.Error(c, http.StatusNotFound, "NOT_FOUND", "Session not found")
		return
	}

	utils.Success(c, session)
}

// requireUserID reads the caller's user id from the X-User-ID header or the
// user_id query parameter. Authentication itself lives in front of this
// service; this layer only needs the identity.
func requireUserID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.GetHeader("X-User-ID")
	if raw == "" {
		raw = c.Query("user_id")
	}
	if raw == "" {
		raw = c.PostForm("user_id")
	}
	if raw == "" {
		utils.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "user_id is required (X-User-ID header or user_id parameter)")
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(raw)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid user_id format")
		return uuid.Nil, false
	}
	return userID, true
}
