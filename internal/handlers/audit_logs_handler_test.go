package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/saloes-online/internal/audit"
	"github.com/BruksfildServices01/saloes-online/internal/models"
	"github.com/BruksfildServices01/saloes-online/internal/timezone"
)

type fakeAuditReader struct {
	got audit.Filter
	err error
}

func (f *fakeAuditReader) List(_ context.Context, filter audit.Filter) (audit.Page, error) {
	f.got = filter
	if f.err != nil {
		return audit.Page{}, f.err
	}
	return audit.Page{
		Page:  filter.Page,
		Limit: filter.Limit,
		Total: 1,
		Logs:  []models.AuditLog{{ID: 1, Actor: "admin", Action: audit.ActionSalonCreated}},
	}, nil
}

func auditRouter(reader AuditLogReader) *gin.Engine {
	r := gin.New()
	r.GET("/audit-logs", NewAuditLogsHandler(reader).List)
	return r
}

func TestAuditLogsFilters(t *testing.T) {
	reader := &fakeAuditReader{}
	w := doJSON(t, auditRouter(reader), http.MethodGet,
		"/audit-logs?action=salon_created&actor=admin&from=2026-10-01&to=2026-10-19&page=2&limit=500", nil)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"total":1`)

	loc := timezone.Location("")
	require.Equal(t, "salon_created", reader.got.Action)
	require.Equal(t, "admin", reader.got.Actor)
	require.Equal(t, 2, reader.got.Page)
	require.Equal(t, 50, reader.got.Limit)
	require.True(t, reader.got.From.Equal(time.Date(2026, 10, 1, 0, 0, 0, 0, loc)))
	require.True(t, reader.got.To.Equal(time.Date(2026, 10, 20, 0, 0, 0, 0, loc)))
}

func TestAuditLogsErrors(t *testing.T) {
	w := doJSON(t, auditRouter(nil), http.MethodGet, "/audit-logs", nil)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = doJSON(t, auditRouter(&fakeAuditReader{}), http.MethodGet, "/audit-logs?from=01/10/2026", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "invalid_date")

	w = doJSON(t, auditRouter(&fakeAuditReader{err: audit.ErrNoStore}), http.MethodGet, "/audit-logs", nil)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = doJSON(t, auditRouter(&fakeAuditReader{err: errors.New("timeout")}), http.MethodGet, "/audit-logs", nil)
	require.Equal(t, http.StatusBadGateway, w.Code)
}
