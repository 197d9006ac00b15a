package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/saloes-online/internal/cache"
	"github.com/BruksfildServices01/saloes-online/internal/config"
	"github.com/BruksfildServices01/saloes-online/internal/domain/salon"
)

// findCmd procura um subcomando pelo nome do Use.
func findCmd(cmd *cobra.Command, names ...string) *cobra.Command {
	cur := cmd
	for _, name := range names {
		var next *cobra.Command
		for _, sub := range cur.Commands() {
			if sub.Name() == name {
				next = sub
				break
			}
		}
		if next == nil {
			return nil
		}
		cur = next
	}
	return cur
}

func localConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		CacheBackend:       "file",
		CacheFile:          filepath.Join(t.TempDir(), "saloes.json"),
		MigrationBackupDir: t.TempDir(),
		S3Bucket:           "saloes-logos",
	}
}

func run(t *testing.T, c Commands, args ...string) (string, error) {
	t.Helper()
	root := c.NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCmd(t *testing.T) {
	root := New(localConfig(t), nil).NewRootCmd()

	require.Equal(t, "saloesctl", root.Use)
	for _, name := range []string{"test-connection", "check", "ensure-bucket", "list-logos", "migration", "hash-password"} {
		require.NotNil(t, findCmd(root, name), name)
	}
	require.NotNil(t, findCmd(root, "migration", "status"))

	runCmd := findCmd(root, "migration", "run")
	require.NotNil(t, runCmd)
	require.NotNil(t, runCmd.Flags().Lookup("yes"))
	require.NotNil(t, runCmd.Flags().Lookup("backup-dir"))
	require.NotNil(t, runCmd.InheritedFlags().Lookup("file"))
	require.NotNil(t, findCmd(root, "check").Flags().Lookup("json"))
}

func TestHashPassword(t *testing.T) {
	t.Run("argument", func(t *testing.T) {
		out, err := run(t, New(localConfig(t), nil), "hash-password", "segredo")
		require.NoError(t, err)
		hash := strings.TrimSpace(out)
		require.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("segredo")))
	})

	t.Run("stdin", func(t *testing.T) {
		c := New(localConfig(t), nil).WithInput(strings.NewReader("outra\n"))
		out, err := run(t, c, "hash-password")
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(out), "\n")
		hash := strings.TrimPrefix(lines[len(lines)-1], "Senha: ")
		require.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("outra")))
	})

	t.Run("empty", func(t *testing.T) {
		c := New(localConfig(t), nil).WithInput(strings.NewReader("\n"))
		_, err := run(t, c, "hash-password")
		require.Error(t, err)
	})
}

func TestMigrationStatusLocalOnly(t *testing.T) {
	cfg := localConfig(t)
	require.NoError(t, cache.NewFileCache(cfg.CacheFile).Save(context.Background(), salon.Samples()))

	out, err := run(t, New(cfg, nil), "migration", "status")
	require.NoError(t, err)
	require.Contains(t, out, "Local:  3 salões")
	require.Contains(t, out, "Remoto: não configurado")
}

func TestMigrationStatusFromFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "backup.json")
	require.NoError(t, cache.NewFileCache(file).Save(context.Background(), salon.Samples()[:1]))

	out, err := run(t, New(localConfig(t), nil), "migration", "status", "--file", file)
	require.NoError(t, err)
	require.Contains(t, out, "Local:  1 salões")
}

func TestMigrationRunRequiresDatabase(t *testing.T) {
	_, err := run(t, New(localConfig(t), nil), "migration", "run", "--yes")
	require.ErrorContains(t, err, "DATABASE_URL")
}

func TestEnsureBucketRequiresStorage(t *testing.T) {
	_, err := run(t, New(localConfig(t), nil), "ensure-bucket")
	require.ErrorContains(t, err, "storage não configurado")
}

func TestCheckNothingConfigured(t *testing.T) {
	out, err := run(t, New(localConfig(t), nil), "check")
	require.NoError(t, err)
	require.Contains(t, out, "Banco remoto não configurado")
	require.Contains(t, out, "Storage de logos não configurado")

	out, err = run(t, New(localConfig(t), nil), "check", "--json")
	require.NoError(t, err)
	require.Contains(t, out, `"database_configured": false`)
}

func TestPromptConfirm(t *testing.T) {
	var out bytes.Buffer
	confirm := promptConfirm(strings.NewReader("s\nnao\nYES\n"), &out)

	require.True(t, confirm("Primeira?"))
	require.False(t, confirm("Segunda?"))
	require.True(t, confirm("Terceira?"))
	require.False(t, confirm("Sem resposta?"))
	require.Contains(t, out.String(), "Primeira? [s/N] ")
}

func TestListLogosRequiresStorage(t *testing.T) {
	_, err := run(t, New(localConfig(t), nil), "list-logos")
	require.ErrorContains(t, err, "storage não configurado")
}
