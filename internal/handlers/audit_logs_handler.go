package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/orders-api/internal/audit"
	"github.com/BruksfildServices01/orders-api/internal/httperr"
	"github.com/BruksfildServices01/orders-api/internal/httpresp"
	"github.com/BruksfildServices01/orders-api/internal/models"
)

type AuditReader interface {
	List(ctx context.Context, f audit.Filter) ([]models.AuditLog, int64, error)
}

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	reader AuditReader
}

func NewAuditLogsHandler(reader AuditReader) *AuditLogsHandler {
	return &AuditLogsHandler{reader: reader}
}

type AuditLogsQuery struct {
	Action string `form:"action"`
	Entity string `form:"entity"`
	From   string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To     string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=200"`
}

// List is reserved to admins. from/to are inclusive calendar days.
func (h *AuditLogsHandler) List(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	if !p.IsAdmin() {
		writeError(c, httperr.ErrBusiness("access_denied"))
		return
	}

	var q AuditLogsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	f := audit.Filter{
		Action: q.Action,
		Entity: q.Entity,
		Page:   q.Page,
		Limit:  q.Limit,
	}
	if f.Page == 0 {
		f.Page = 1
	}
	if f.Limit == 0 {
		f.Limit = 50
	}
	if q.From != "" {
		from, _ := time.Parse(time.DateOnly, q.From)
		f.From = &from
	}
	if q.To != "" {
		to, _ := time.Parse(time.DateOnly, q.To)
		to = to.Add(24 * time.Hour)
		f.To = &to
	}

	logs, total, err := h.reader.List(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Page(c, logs, total, f.Page, f.Limit)
}
