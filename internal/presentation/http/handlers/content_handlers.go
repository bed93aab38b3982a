package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/audiencelab/redditpulse/internal/domain/engagement"
	"github.com/audiencelab/redditpulse/internal/infrastructure/observability/logging"
	"github.com/audiencelab/redditpulse/internal/presentation/http/middleware"
)

// ContentHandlers contains handlers for locally authored content: archived
// comments and generated posts.
type ContentHandlers struct {
	repo   engagement.Repository
	logger *logging.ChanneledLogger
}

// NewContentHandlers creates content handlers with injected dependencies
func NewContentHandlers(repo engagement.Repository, logger *logging.ChanneledLogger) *ContentHandlers {
	return &ContentHandlers{repo: repo, logger: logger}
}

type archiveCommentRequest struct {
	Subreddit string `json:"subreddit" binding:"required"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Reply     string `json:"reply" binding:"required"`
	SourceURL string `json:"sourceUrl"`
	CreatedAt string `json:"createdAt"`
}

// HandleArchiveComment handles POST /api/v1/content/comments
func (h *ContentHandlers) HandleArchiveComment(c *gin.Context) {
	username, exists := middleware.GetUsername(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "authenticated user not found"})
		return
	}

	var req archiveCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "subreddit and reply are required"})
		return
	}

	comment := engagement.ArchivedComment{
		UserID:    username,
		Subreddit: req.Subreddit,
		Title:     req.Title,
		Body:      req.Body,
		Reply:     req.Reply,
		SourceURL: req.SourceURL,
	}
	if req.CreatedAt != "" {
		if created, err := engagement.ParseTimestamp(req.CreatedAt); err == nil {
			comment.CreatedAt = created
		}
	}

	if err := h.repo.SaveArchivedComment(c.Request.Context(), &comment); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.logger.System().Info("Comment archived", "username", username, "subreddit", req.Subreddit)
	c.JSON(http.StatusCreated, comment)
}

// HandleListComments handles GET /api/v1/content/comments
func (h *ContentHandlers) HandleListComments(c *gin.Context) {
	username, exists := middleware.GetUsername(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "authenticated user not found"})
		return
	}

	comments, err := h.repo.ListArchivedComments(c.Request.Context(), username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

type generatedPostRequest struct {
	Subreddit      string `json:"subreddit" binding:"required"`
	Title          string `json:"title" binding:"required"`
	Body           string `json:"body"`
	PostType       string `json:"postType"`
	TargetAudience string `json:"targetAudience"`
	Status         string `json:"status"`
}

// HandleSavePost handles POST /api/v1/content/posts
func (h *ContentHandlers) HandleSavePost(c *gin.Context) {
	username, exists := middleware.GetUsername(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "authenticated user not found"})
		return
	}

	var req generatedPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "subreddit and title are required"})
		return
	}

	if req.Status == "" {
		req.Status = "draft"
	}
	post := engagement.GeneratedPost{
		UserID:         username,
		Subreddit:      req.Subreddit,
		Title:          req.Title,
		Body:           req.Body,
		PostType:       req.PostType,
		TargetAudience: req.TargetAudience,
		Status:         req.Status,
		CreatedAt:      time.Now().UTC(),
	}

	if err := h.repo.SaveGeneratedPost(c.Request.Context(), &post); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.logger.System().Info("Generated post saved", "username", username, "subreddit", req.Subreddit)
	c.JSON(http.StatusCreated, post)
}

// HandleListPosts handles GET /api/v1/content/posts
func (h *ContentHandlers) HandleListPosts(c *gin.Context) {
	username, exists := middleware.GetUsername(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "authenticated user not found"})
		return
	}

	posts, err := h.repo.ListGeneratedPosts(c.Request.Context(), username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}
