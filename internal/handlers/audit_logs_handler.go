package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/saloes-online/internal/audit"
	"github.com/BruksfildServices01/saloes-online/internal/httperr"
	"github.com/BruksfildServices01/saloes-online/internal/httpresp"
	"github.com/BruksfildServices01/saloes-online/internal/timezone"
)

type AuditLogReader interface {
	List(ctx context.Context, f audit.Filter) (audit.Page, error)
}

// AuditLogsHandler lista a trilha de auditoria. Sem banco os eventos só vão
// para o log da aplicação e a listagem responde 503.
type AuditLogsHandler struct {
	logs AuditLogReader
}

func NewAuditLogsHandler(logs AuditLogReader) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	if h.logs == nil {
		httperr.ServiceUnavailable(c, "remote_not_configured", "Banco remoto não configurado.")
		return
	}

	f := audit.Filter{
		Action:   strings.TrimSpace(c.Query("action")),
		Entity:   strings.TrimSpace(c.Query("entity")),
		EntityID: strings.TrimSpace(c.Query("entity_id")),
		Actor:    strings.TrimSpace(c.Query("actor")),
	}
	f.Page, f.Limit = pagination(c)

	// datas são dias inteiros no fuso do painel; "to" inclui o dia informado
	var ok bool
	if f.From, ok = parseDay(c.Query("from")); !ok {
		httperr.BadRequest(c, "invalid_date", "Data inicial inválida. Use AAAA-MM-DD.")
		return
	}
	if f.To, ok = parseDay(c.Query("to")); !ok {
		httperr.BadRequest(c, "invalid_date", "Data final inválida. Use AAAA-MM-DD.")
		return
	}
	if !f.To.IsZero() {
		f.To = f.To.AddDate(0, 0, 1)
	}

	page, err := h.logs.List(c.Request.Context(), f)
	if err != nil {
		if errors.Is(err, audit.ErrNoStore) {
			httperr.ServiceUnavailable(c, "remote_not_configured", "Banco remoto não configurado.")
			return
		}
		httperr.BadGateway(c, "audit_list_failed", "Erro ao listar logs.")
		return
	}

	httpresp.OK(c, page)
}

func parseDay(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, true
	}
	t, err := time.ParseInLocation("2006-01-02", value, timezone.Location(""))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// pagination lê page/limit com os mesmos limites em todas as listagens.
func pagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return page, limit
}
