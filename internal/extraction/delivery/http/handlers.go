package http

import (
	"github.com/gin-gonic/gin"

	"voicetask/internal/model"
	"voicetask/pkg/response"
)

// Extract handles POST /api/v1/extraction/extract: transcript in, ordered
// task drafts out.
func (h *handler) Extract(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processExtractReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.Extract(ctx, h.scope(c), req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Extract: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newExtractResp(output))
}

// Confirm handles POST /api/v1/extraction/confirm: user-approved drafts in,
// scheduled tasks out.
func (h *handler) Confirm(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processConfirmReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.Confirm(ctx, h.scope(c), req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Confirm: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newConfirmResp(output))
}

// scope builds the caller scope from request headers. An anonymous caller is
// allowed, the extraction pipeline is not per-user.
func (h *handler) scope(c *gin.Context) model.Scope {
	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		userID = "anonymous"
	}
	return model.Scope{UserID: userID}
}
