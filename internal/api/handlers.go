// internal/api/handlers.go
package api

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/chukainspires/coachsite/internal/models"
	"github.com/chukainspires/coachsite/internal/services"
)

// Handler carries the services the HTTP layer fronts.
type Handler struct {
	content     *services.ContentService
	drafts      *services.DraftService
	auth        *services.AuthService
	submissions *services.SubmissionService
	images      *services.ImageService
	rh          *ResponseHelper
}

// NewHandler creates the API handler.
func NewHandler(
	content *services.ContentService,
	drafts *services.DraftService,
	auth *services.AuthService,
	submissions *services.SubmissionService,
	images *services.ImageService,
) *Handler {
	return &Handler{
		content:     content,
		drafts:      drafts,
		auth:        auth,
		submissions: submissions,
		images:      images,
		rh:          NewResponseHelper(),
	}
}

// ===============================
// Public endpoints
// ===============================

// GetContent returns the published page content.
func (h *Handler) GetContent(c *gin.Context) {
	h.rh.Success(c, h.content.Current())
}

// contactRequest is a visitor contact-form submission.
type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// SubmitContact validates and stores a contact message. Field failures come
// back as a per-field map so the form can render them inline.
func (h *Handler) SubmitContact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.rh.BadRequest(c, "invalid request body")
		return
	}

	sub, fieldErrors, err := h.submissions.Submit(c.Request.Context(), req.Name, req.Email, req.Message)
	if err != nil {
		h.rh.FromError(c, err)
		return
	}
	if len(fieldErrors) > 0 {
		h.rh.ValidationFailed(c, fieldErrors)
		return
	}

	h.rh.Created(c, sub, "Message sent successfully")
}

// Health is a liveness endpoint.
func (h *Handler) Health(c *gin.Context) {
	h.rh.Success(c, gin.H{"status": "ok"})
}

// ===============================
// Operator authentication
// ===============================

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login checks the operator credentials and returns a session token.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.rh.BadRequest(c, "invalid request body")
		return
	}

	token, err := h.auth.Authenticate(req.Username, req.Password)
	if err != nil {
		h.rh.FromError(c, err)
		return
	}

	h.rh.Success(c, gin.H{"token": token})
}

// Logout discards the session's draft. The token itself simply expires.
func (h *Handler) Logout(c *gin.Context) {
	h.drafts.Discard(sessionID(c))
	h.rh.Success(c, nil, "logged out")
}

// ===============================
// Draft editing (operator)
// ===============================

// GetDraft returns the session's draft and dirty flag.
func (h *Handler) GetDraft(c *gin.Context) {
	draft, err := h.drafts.Get(sessionID(c))
	if err != nil {
		h.rh.FromError(c, err)
		return
	}
	h.rh.Success(c, draft)
}

// BeginDraft opens (or reopens) an edit session seeded from the published
// content.
func (h *Handler) BeginDraft(c *gin.Context) {
	h.rh.Success(c, h.drafts.BeginEdit(sessionID(c)))
}

type setFieldRequest struct {
	Section string `json:"section" binding:"required"`
	Field   string `json:"field" binding:"required"`
	Value   string `json:"value"`
}

// SetDraftField updates one flat field on the draft.
func (h *Handler) SetDraftField(c *gin.Context) {
	var req setFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.rh.BadRequest(c, "invalid request body")
		return
	}

	if err := h.drafts.SetField(sessionID(c), req.Section, req.Field, req.Value); err != nil {
		h.rh.FromError(c, err)
		return
	}
	h.rh.Success(c, nil)
}

type setItemFieldRequest struct {
	Section string `json:"section" binding:"required"`
	Index   *int   `json:"index" binding:"required"`
	Field   string `json:"field" binding:"required"`
	Value   string `json:"value"`
}

// SetDraftItemField updates one field of an item record on the draft.
func (h *Handler) SetDraftItemField(c *gin.Context) {
	var req setItemFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.rh.BadRequest(c, "invalid request body")
		return
	}

	if err := h.drafts.SetItemField(sessionID(c), req.Section, *req.Index, req.Field, req.Value); err != nil {
		h.rh.FromError(c, err)
		return
	}
	h.rh.Success(c, nil)
}

type addItemRequest struct {
	Section string `json:"section" binding:"required"`
}

// AddDraftItem appends a default record to an item section of the draft.
func (h *Handler) AddDraftItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.rh.BadRequest(c, "invalid request body")
		return
	}

	if err := h.drafts.AddItem(sessionID(c), req.Section); err != nil {
		h.rh.FromError(c, err)
		return
	}
	h.rh.Success(c, nil)
}

// RemoveDraftItem deletes an item record from the draft by index.
func (h *Handler) RemoveDraftItem(c *gin.Context) {
	section := c.Param("section")
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		h.rh.BadRequest(c, "index must be an integer")
		return
	}

	if err := h.drafts.RemoveItem(sessionID(c), section, index); err != nil {
		h.rh.FromError(c, err)
		return
	}
	h.rh.Success(c, nil)
}

// SaveDraft persists the whole draft as the new published content.
func (h *Handler) SaveDraft(c *gin.Context) {
	if err := h.drafts.Save(c.Request.Context(), sessionID(c)); err != nil {
		h.rh.FromError(c, err)
		return
	}
	h.rh.Success(c, nil, "Content saved")
}

// ResetDraft discards the draft's changes, reseeding from the published
// baseline.
func (h *Handler) ResetDraft(c *gin.Context) {
	draft, err := h.drafts.Reset(sessionID(c))
	if err != nil {
		h.rh.FromError(c, err)
		return
	}
	h.rh.Success(c, draft)
}

// ===============================
// Submissions (operator)
// ===============================

// ListSubmissions returns all contact messages, newest first.
func (h *Handler) ListSubmissions(c *gin.Context) {
	subs, err := h.submissions.List(c.Request.Context())
	if err != nil {
		h.rh.FromError(c, err)
		return
	}
	h.rh.Success(c, subs)
}

// DeleteSubmission removes a contact message by id.
func (h *Handler) DeleteSubmission(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.rh.BadRequest(c, "id must be an integer")
		return
	}

	if err := h.submissions.Delete(c.Request.Context(), id); err != nil {
		h.rh.FromError(c, err)
		return
	}
	h.rh.Success(c, nil, "Submission deleted")
}

// ===============================
// Images (operator)
// ===============================

// ListImages returns all named image records.
func (h *Handler) ListImages(c *gin.Context) {
	images, err := h.images.List(c.Request.Context())
	if err != nil {
		h.rh.FromError(c, err)
		return
	}
	h.rh.Success(c, images)
}

// SaveImage upserts a named image record. The content watcher picks the
// change up from the store feed and republishes.
func (h *Handler) SaveImage(c *gin.Context) {
	var img models.ImageRecord
	if err := c.ShouldBindJSON(&img); err != nil {
		h.rh.BadRequest(c, "invalid request body")
		return
	}

	if err := h.images.Save(c.Request.Context(), &img); err != nil {
		h.rh.FromError(c, err)
		return
	}
	h.rh.Created(c, img)
}

// DeleteImage removes a named image record by id.
func (h *Handler) DeleteImage(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.rh.BadRequest(c, "id must be an integer")
		return
	}

	if err := h.images.Delete(c.Request.Context(), id); err != nil {
		h.rh.FromError(c, err)
		return
	}
	h.rh.Success(c, nil, "Image deleted")
}
