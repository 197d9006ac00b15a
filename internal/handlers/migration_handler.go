package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/saloes-online/internal/catalog"
	"github.com/BruksfildServices01/saloes-online/internal/domain/salon"
	"github.com/BruksfildServices01/saloes-online/internal/httperr"
	"github.com/BruksfildServices01/saloes-online/internal/usecase/migration"
)

type MigrationHandler struct {
	migrator    *migration.Migrator
	store       *catalog.Store
	backupDir   string
	refreshWait time.Duration
}

func NewMigrationHandler(m *migration.Migrator, store *catalog.Store, backupDir string, refreshWait time.Duration) *MigrationHandler {
	return &MigrationHandler{
		migrator:    m,
		store:       store,
		backupDir:   backupDir,
		refreshWait: refreshWait,
	}
}

// RunMigrationRequest traz as respostas das perguntas feitas durante a
// migração. Todas são "não" por padrão.
type RunMigrationRequest struct {
	ProceedIfRemoteHasData bool `json:"proceed_if_remote_has_data"`
	Backup                 bool `json:"backup"`
	ClearLocal             bool `json:"clear_local"`
}

func (r RunMigrationRequest) confirm(question string) bool {
	switch question {
	case migration.QuestionProceed:
		return r.ProceedIfRemoteHasData
	case migration.QuestionBackup:
		return r.Backup
	case migration.QuestionClear:
		return r.ClearLocal
	}
	return false
}

func (h *MigrationHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.migrator.Status(c.Request.Context()))
}

func (h *MigrationHandler) Run(c *gin.Context) {
	var req RunMigrationRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
			return
		}
	}

	res, err := h.migrator.Run(c.Request.Context(), migration.Options{
		Confirm:   req.confirm,
		BackupDir: h.backupDir,
	})
	if err != nil && res.Outcome != migration.OutcomeCompleted {
		writeMigrationError(c, err)
		return
	}

	if res.Outcome == migration.OutcomeCompleted {
		h.store.ScheduleRefresh(h.refreshWait)
	}

	body := gin.H{"result": res}
	if err != nil {
		// inserção feita, mas backup ou limpeza do cache falharam
		body["warning"] = err.Error()
	}
	c.JSON(http.StatusOK, body)
}

func writeMigrationError(c *gin.Context, err error) {
	if httperr.Code(err) != "" || errors.Is(err, salon.ErrNotConfigured) {
		writeError(c, err)
		return
	}
	httperr.BadGateway(c, "migration_failed", "Erro durante a migração: "+err.Error())
}
