// Package cli reúne os comandos do saloesctl: diagnóstico do banco e do
// bucket, status e execução da migração do cache local.
package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/saloes-online/internal/config"
	"github.com/BruksfildServices01/saloes-online/internal/usecase/migration"
)

type Commands struct {
	cfg *config.Config
	log *zap.Logger
	in  io.Reader
}

func New(cfg *config.Config, log *zap.Logger) Commands {
	if log == nil {
		log = zap.NewNop()
	}
	return Commands{cfg: cfg, log: log, in: os.Stdin}
}

// WithInput troca a entrada usada nas confirmações.
func (c Commands) WithInput(in io.Reader) Commands {
	c.in = in
	return c
}

func (c Commands) NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "saloesctl",
		Short:         "Ferramentas de operação do Salões Online",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		c.newTestConnectionCmd(),
		c.newCheckCmd(),
		c.newEnsureBucketCmd(),
		c.newListLogosCmd(),
		c.newMigrationCmds(),
		c.newHashPasswordCmd(),
	)

	return root
}

// promptConfirm pergunta no terminal; só "s", "sim", "y" e "yes" confirmam.
func promptConfirm(in io.Reader, out io.Writer) migration.Confirm {
	reader := bufio.NewReader(in)
	return func(question string) bool {
		fmt.Fprintf(out, "%s [s/N] ", question)
		line, _ := reader.ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "s", "sim", "y", "yes":
			return true
		}
		return false
	}
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
