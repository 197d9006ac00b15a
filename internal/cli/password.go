package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/saloes-online/internal/auth"
)

func (c Commands) newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [senha]",
		Short: "Gera o valor de ADMIN_PASSWORD_HASH",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var password string
			if len(args) == 1 {
				password = args[0]
			} else {
				fmt.Fprint(cmd.ErrOrStderr(), "Senha: ")
				line, _ := bufio.NewReader(c.in).ReadString('\n')
				password = strings.TrimRight(line, "\r\n")
			}
			if password == "" {
				return errors.New("senha vazia")
			}

			hash, err := auth.HashPassword(password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}
