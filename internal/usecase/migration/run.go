package migration

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/saloes-online/internal/audit"
	"github.com/BruksfildServices01/saloes-online/internal/domain/salon"
	"github.com/BruksfildServices01/saloes-online/internal/timezone"
)

const (
	QuestionProceed = "Já existem dados no banco remoto. Deseja continuar com a migração? Registros com o mesmo id serão ignorados."
	QuestionBackup  = "Migração concluída! Deseja fazer backup dos dados locais antes de limpá-los?"
	QuestionClear   = "Deseja limpar os dados locais agora que estão no banco remoto?"
)

type Outcome string

const (
	OutcomeNothingToMigrate Outcome = "nothing_to_migrate"
	OutcomeCancelled        Outcome = "cancelled"
	OutcomeCompleted        Outcome = "completed"
)

// Confirm responde às perguntas feitas durante a migração.
type Confirm func(question string) bool

// Always confirma tudo (flag --yes da CLI).
func Always(string) bool { return true }

type Options struct {
	Confirm   Confirm
	BackupDir string
	// Now é usado no nome e no conteúdo do backup; vazio = timezone.Now.
	Now func() time.Time
}

type Result struct {
	Outcome      Outcome `json:"outcome"`
	Found        int     `json:"found"`
	Migrated     int     `json:"migrated"`
	Skipped      int     `json:"skipped"`
	BackupFile   string  `json:"backup_file,omitempty"`
	CacheCleared bool    `json:"cache_cleared"`
}

type backupFile struct {
	Timestamp string        `json:"timestamp"`
	Saloes    []salon.Salon `json:"saloes"`
}

// Run executa a migração completa. As perguntas seguem a ordem: continuar
// quando o remoto já tem dados, gerar backup, limpar o cache local.
func (m *Migrator) Run(ctx context.Context, opts Options) (Result, error) {
	if m.remote == nil {
		return Result{}, fmt.Errorf("migração: %w", salon.ErrNotConfigured)
	}
	if opts.Confirm == nil {
		opts.Confirm = func(string) bool { return false }
	}
	if opts.Now == nil {
		opts.Now = timezone.Now
	}

	existing, err := m.remote.Count(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("erro de conexão com o banco remoto: %w", err)
	}

	local, found, err := m.cache.Load(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("erro ao ler dados locais: %w", err)
	}
	if !found || len(local) == 0 {
		m.log.Info("migration: nothing to migrate")
		return Result{Outcome: OutcomeNothingToMigrate}, nil
	}

	res := Result{Found: len(local)}

	toInsert := prepare(local)
	if existing > 0 {
		if !opts.Confirm(QuestionProceed) {
			m.log.Info("migration cancelled by user")
			res.Outcome = OutcomeCancelled
			return res, nil
		}

		current, err := m.remote.List(ctx)
		if err != nil {
			return Result{}, fmt.Errorf("erro ao verificar dados existentes: %w", err)
		}
		toInsert = withoutExisting(toInsert, current)
		res.Skipped = len(local) - len(toInsert)
	}

	n, err := m.remote.InsertMany(ctx, toInsert)
	if err != nil {
		return Result{}, fmt.Errorf("erro ao inserir dados: %w", err)
	}
	res.Migrated = n
	res.Outcome = OutcomeCompleted

	m.log.Info("migration completed",
		zap.Int("found", res.Found),
		zap.Int("migrated", res.Migrated),
		zap.Int("skipped", res.Skipped),
	)

	if opts.Confirm(QuestionBackup) {
		path, err := writeBackup(opts.BackupDir, opts.Now(), local)
		if err != nil {
			// os dados já estão no remoto; sem backup o cache fica intacto
			m.log.Error("migration backup failed", zap.Error(err))
			return res, fmt.Errorf("erro ao gravar backup: %w", err)
		}
		res.BackupFile = path
	}

	if opts.Confirm(QuestionClear) {
		if err := m.cache.Clear(ctx); err != nil {
			return res, fmt.Errorf("erro ao limpar dados locais: %w", err)
		}
		res.CacheCleared = true
	}

	m.audit.Dispatch(audit.Event{
		Actor:    "admin",
		Action:   audit.ActionMigrationCompleted,
		Entity:   "salao",
		Metadata: res,
	})

	return res, nil
}

// AutoMigrateIfNeeded pergunta uma única vez quando há dados locais e o
// remoto está vazio. Devolve true se a migração rodou.
func (m *Migrator) AutoMigrateIfNeeded(ctx context.Context, opts Options) (bool, error) {
	if m.remote == nil {
		return false, nil
	}

	st := m.Status(ctx)
	if !st.HasLocalData || st.HasRemoteData {
		return false, nil
	}

	question := fmt.Sprintf(
		"Encontrados %d salões no armazenamento local. Deseja migrar esses dados para o banco remoto agora?",
		st.LocalCount,
	)
	if opts.Confirm == nil || !opts.Confirm(question) {
		return false, nil
	}

	if _, err := m.Run(ctx, opts); err != nil {
		return false, err
	}
	return true, nil
}

// prepare aplica os defaults de cada campo antes da inserção.
func prepare(list []salon.Salon) []salon.Salon {
	out := make([]salon.Salon, 0, len(list))
	for _, s := range list {
		out = append(out, salon.Normalize(s))
	}
	return out
}

func withoutExisting(list, current []salon.Salon) []salon.Salon {
	seen := make(map[string]bool, len(current))
	for _, s := range current {
		seen[s.ID] = true
	}

	out := make([]salon.Salon, 0, len(list))
	for _, s := range list {
		if s.ID != "" && seen[s.ID] {
			continue
		}
		out = append(out, s)
	}
	return out
}

// BackupName segue o padrão saloes-backup-AAAA-MM-DD.json.
func BackupName(t time.Time) string {
	return fmt.Sprintf("saloes-backup-%s.json", t.Format("2006-01-02"))
}

func writeBackup(dir string, now time.Time, list []salon.Salon) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(backupFile{
		Timestamp: now.Format(time.RFC3339),
		Saloes:    list,
	}, "", "  ")
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, BackupName(now))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
