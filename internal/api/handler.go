package api

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"tutorbot/internal/domain"
	"tutorbot/internal/i18n"
	"tutorbot/internal/service"
)

// Handler handles the chatbot HTTP surface
type Handler struct {
	chat        *service.ChatService
	assignments *service.AssignmentService
	health      map[string]string
}

// NewHandler creates a new handler
func NewHandler(chat *service.ChatService, assignments *service.AssignmentService, health map[string]string) *Handler {
	return &Handler{chat: chat, assignments: assignments, health: health}
}

// RegisterRoutes registers all routes
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/chat", h.Chat)
	r.GET("/ask", h.Chat)
	r.POST("/ask", h.Chat)
	r.GET("/api/ask", h.Chat)
	r.POST("/api/ask", h.Chat)

	r.POST("/reset_session", h.ResetSession)
	r.POST("/set_language", h.SetLanguage)

	r.GET("/courses", h.Courses)
	r.GET("/chapters/:course_id", h.Chapters)
	r.GET("/languages", h.Languages)
	r.GET("/health", h.Health)

	r.POST("/submit_solution", h.SubmitSolution)
}

type sessionRequest struct {
	SessionID string `json:"session_id" form:"session_id"`
	Language  string `json:"language" form:"language"`
}

// Chat handles one chat turn (message and/or file upload)
func (h *Handler) Chat(c *gin.Context) {
	var req domain.ChatRequest
	var file *multipart.FileHeader

	switch {
	case c.Request.Method == http.MethodGet:
		req.SessionID = c.Query("session_id")
		req.Message = c.Query("message")
		req.Language = c.Query("language")
	case strings.HasPrefix(c.ContentType(), "application/json"):
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	default:
		req.SessionID = c.PostForm("session_id")
		req.Message = c.PostForm("message")
		req.Language = c.PostForm("language")
		if f, err := c.FormFile("file"); err == nil {
			file = f
		}
	}

	resp, err := h.chat.Handle(c.Request.Context(), &req, file)
	if err != nil {
		lang := i18n.Normalize(req.Language)
		switch {
		case errors.Is(err, domain.ErrInvalidRequest):
			c.JSON(http.StatusBadRequest, gin.H{"error": i18n.T(lang, "EmptyMessage")})
		case errors.Is(err, domain.ErrUnsupportedFile):
			c.JSON(http.StatusBadRequest, gin.H{"error": i18n.Td(lang, "FileRejected", map[string]any{
				"Extensions": strings.Join(h.chat.AllowedExtensions(), ", "),
			})})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": i18n.T(lang, "FileProcessingError")})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ResetSession restores a session to its initial state
func (h *Handler) ResetSession(c *gin.Context) {
	req, ok := h.bindSessionRequest(c)
	if !ok {
		return
	}

	sess, found := h.chat.Sessions().Get(req.SessionID)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": i18n.T(i18n.Default(), "SessionNotFound")})
		return
	}
	sess.Reset()

	c.JSON(http.StatusOK, gin.H{"message": i18n.T(sess.Language, "ResetOK")})
}

// SetLanguage updates a session's language
func (h *Handler) SetLanguage(c *gin.Context) {
	req, ok := h.bindSessionRequest(c)
	if !ok {
		return
	}

	lang, err := h.chat.Sessions().SetLanguage(req.SessionID, req.Language)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": i18n.T(i18n.Default(), "SessionNotFound")})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  i18n.T(lang, "LanguageUpdated"),
		"language": lang,
	})
}

func (h *Handler) bindSessionRequest(c *gin.Context) (*sessionRequest, bool) {
	var req sessionRequest
	if strings.HasPrefix(c.ContentType(), "application/json") {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return nil, false
		}
	} else {
		req.SessionID = c.PostForm("session_id")
		req.Language = c.PostForm("language")
	}
	if req.SessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
		return nil, false
	}
	return &req, true
}

// Courses lists the available courses
func (h *Handler) Courses(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"courses": h.chat.Courses()})
}

// Chapters lists the chapters of a course
func (h *Handler) Chapters(c *gin.Context) {
	courseID := c.Param("course_id")
	c.JSON(http.StatusOK, gin.H{"chapters": h.chat.Chapters(courseID)})
}

// Languages lists the supported locales
func (h *Handler) Languages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"languages": i18n.Languages(),
		"default":   i18n.Default(),
	})
}

// Health reports component availability
func (h *Handler) Health(c *gin.Context) {
	resp := gin.H{"status": "healthy"}
	for component, status := range h.health {
		resp[component] = status
	}
	c.JSON(http.StatusOK, resp)
}

// SubmitSolution grades a submitted solution file against an assignment
func (h *Handler) SubmitSolution(c *gin.Context) {
	idValue := c.PostForm("assignment_id")
	assignmentID, err := strconv.ParseInt(idValue, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "assignment_id is required"})
		return
	}

	file, err := c.FormFile("solution_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "solution_file is required"})
		return
	}

	result, err := h.assignments.SubmitSolution(c.Request.Context(), assignmentID, file)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": i18n.T(i18n.Default(), "AssignmentNotFound")})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": i18n.T(i18n.Default(), "GenericError")})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
