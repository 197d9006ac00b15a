package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/saloes-online/internal/app"
	"github.com/BruksfildServices01/saloes-online/internal/cache"
	"github.com/BruksfildServices01/saloes-online/internal/domain/salon"
	"github.com/BruksfildServices01/saloes-online/internal/usecase/migration"
)

func (c Commands) newMigrationCmds() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migration",
		Short: "Migração do cache local para o banco remoto",
	}

	cmd.PersistentFlags().String("file", "", "arquivo JSON do cache local (padrão: CACHE_FILE/REDIS)")

	cmd.AddCommand(
		c.newMigrationStatusCmd(),
		c.newMigrationRunCmd(),
	)
	return cmd
}

// migrator monta o caso de uso; --file troca o cache configurado por um
// arquivo específico (ex.: um backup antigo).
func (c Commands) migrator(cmd *cobra.Command) (*migration.Migrator, func()) {
	var local salon.Cache
	closeFn := func() {}

	if file, _ := cmd.Flags().GetString("file"); file != "" {
		local = cache.NewFileCache(file)
	} else {
		local, closeFn = app.Cache(cmd.Context(), c.cfg, c.log)
	}

	// com o banco fora do ar remote falha em toda chamada; status mostra
	// remoto vazio e run devolve o erro de conexão
	_, remote, _ := app.Remote(c.cfg, c.log)
	return migration.New(remote, local, nil, c.log), closeFn
}

func (c Commands) newMigrationStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Mostra quantos salões existem no cache local e no banco remoto",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, closeFn := c.migrator(cmd)
			defer closeFn()

			st := m.Status(cmd.Context())
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Local:  %d salões\n", st.LocalCount)
			if c.cfg.DatabaseConfigured() {
				fmt.Fprintf(out, "Remoto: %d salões\n", st.RemoteCount)
			} else {
				fmt.Fprintln(out, "Remoto: não configurado")
			}
			if st.HasLocalData && !st.HasRemoteData && c.cfg.DatabaseConfigured() {
				fmt.Fprintln(out, "💡 Rode \"saloesctl migration run\" para migrar.")
			}
			return nil
		},
	}
}

func (c Commands) newMigrationRunCmd() *cobra.Command {
	var (
		yes       bool
		backupDir string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Copia os salões do cache local para o banco remoto",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !c.cfg.DatabaseConfigured() {
				return errors.New("banco remoto não configurado (DATABASE_URL)")
			}

			m, closeFn := c.migrator(cmd)
			defer closeFn()

			confirm := promptConfirm(c.in, cmd.OutOrStdout())
			if yes {
				confirm = migration.Always
			}

			res, err := m.Run(cmd.Context(), migration.Options{
				Confirm:   confirm,
				BackupDir: backupDir,
			})
			if err != nil {
				return fmt.Errorf("erro durante a migração: %w", err)
			}

			out := cmd.OutOrStdout()
			switch res.Outcome {
			case migration.OutcomeNothingToMigrate:
				fmt.Fprintln(out, "ℹ️ Nenhum salão para migrar.")
			case migration.OutcomeCancelled:
				fmt.Fprintln(out, "❌ Migração cancelada.")
			case migration.OutcomeCompleted:
				fmt.Fprintf(out, "✅ Migração concluída! %d salões migrados", res.Migrated)
				if res.Skipped > 0 {
					fmt.Fprintf(out, ", %d já existiam", res.Skipped)
				}
				fmt.Fprintln(out, ".")
				if res.BackupFile != "" {
					fmt.Fprintf(out, "💾 Backup salvo em %s\n", res.BackupFile)
				}
				if res.CacheCleared {
					fmt.Fprintln(out, "🧹 Cache local limpo.")
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "responde sim a todas as perguntas")
	cmd.Flags().StringVar(&backupDir, "backup-dir", c.cfg.MigrationBackupDir, "diretório do backup")
	return cmd
}
