package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/saloes-online/internal/app"
	dbpkg "github.com/BruksfildServices01/saloes-online/internal/db"
	"github.com/BruksfildServices01/saloes-online/internal/diagnostics"
	"github.com/BruksfildServices01/saloes-online/internal/infra/repository"
	"github.com/BruksfildServices01/saloes-online/internal/timezone"
)

func (c Commands) newTestConnectionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test-connection",
		Short: "Testa a conexão com o banco remoto",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			db, err := dbpkg.OpenRaw(c.cfg)
			if err != nil {
				return err
			}
			schema := diagnostics.NewGormSchema(db)
			if err := schema.Ping(cmd.Context()); err != nil {
				return fmt.Errorf("erro de conexão: %s", diagnostics.Explain(err))
			}
			fmt.Fprintln(out, "✅ Conexão estabelecida.")

			if !schema.HasTable(cmd.Context(), "saloes") {
				fmt.Fprintln(out, "⚠️ Tabela saloes não existe; ela é criada na subida do servidor.")
				return nil
			}

			n, err := repository.NewSalonGormRepository(db).Count(cmd.Context())
			if err != nil {
				return fmt.Errorf("erro ao contar salões: %s", diagnostics.Explain(err))
			}
			fmt.Fprintf(out, "📊 %d salões cadastrados.\n", n)
			return nil
		},
	}
}

func (c Commands) newCheckCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verifica tabelas, colunas e o bucket de logos",
		RunE: func(cmd *cobra.Command, args []string) error {
			probe, err := c.probe()
			if err != nil {
				return err
			}

			report := probe.Run(cmd.Context())
			if asJSON {
				if err := printJSON(cmd.OutOrStdout(), report); err != nil {
					return err
				}
			} else {
				printReport(cmd.OutOrStdout(), report)
			}

			if !report.OK() {
				return errors.New("verificação encontrou problemas")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "imprime o relatório em JSON")
	return cmd
}

func (c Commands) probe() (*diagnostics.Probe, error) {
	var schema diagnostics.Schema
	if c.cfg.DatabaseConfigured() {
		db, err := dbpkg.OpenRaw(c.cfg)
		if err != nil {
			return nil, err
		}
		schema = diagnostics.NewGormSchema(db)
	}

	var bucket diagnostics.Bucket
	if logos := app.Storage(c.cfg); logos != nil {
		bucket = logos
	}

	return diagnostics.NewProbe(schema, bucket), nil
}

func printReport(out io.Writer, r diagnostics.Report) {
	if !r.DatabaseConfigured {
		fmt.Fprintln(out, "ℹ️ Banco remoto não configurado (DATABASE_URL).")
	} else if !r.Connected {
		fmt.Fprintf(out, "❌ Banco remoto: %s\n", r.ConnectionError)
	} else {
		fmt.Fprintln(out, "✅ Banco remoto conectado.")
		for _, t := range r.Tables {
			mark := "✅"
			if !t.Exists {
				mark = "❌"
			}
			fmt.Fprintf(out, "%s Tabela %s\n", mark, t.Name)
		}
		for _, col := range r.MissingColumns {
			fmt.Fprintf(out, "❌ Coluna saloes.%s ausente\n", col)
		}
	}

	switch {
	case !r.StorageConfigured:
		fmt.Fprintln(out, "ℹ️ Storage de logos não configurado.")
	case r.BucketError != "":
		fmt.Fprintf(out, "❌ Bucket %s: %s\n", r.BucketName, r.BucketError)
	case !r.BucketExists:
		fmt.Fprintf(out, "⚠️ Bucket %s não encontrado. Rode \"saloesctl ensure-bucket\".\n", r.BucketName)
	default:
		fmt.Fprintf(out, "✅ Bucket %s existe.\n", r.BucketName)
	}
}

func (c Commands) newEnsureBucketCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ensure-bucket",
		Short: "Cria o bucket de logos se ele ainda não existir",
		RunE: func(cmd *cobra.Command, args []string) error {
			logos := app.Storage(c.cfg)
			if logos == nil {
				return errors.New("storage não configurado (S3_BUCKET, S3_ACCESS_KEY, S3_SECRET_KEY)")
			}

			created, err := logos.EnsureBucket(cmd.Context())
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "✅ Bucket %s criado.\n", logos.Bucket())
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "✅ Bucket %s já existe.\n", logos.Bucket())
			}
			return nil
		},
	}
}

func (c Commands) newListLogosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-logos",
		Short: "Lista os logos enviados ao bucket",
		RunE: func(cmd *cobra.Command, args []string) error {
			logos := app.Storage(c.cfg)
			if logos == nil {
				return errors.New("storage não configurado (S3_BUCKET, S3_ACCESS_KEY, S3_SECRET_KEY)")
			}

			objects, err := logos.List(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, o := range objects {
				fmt.Fprintf(out, "%s\t%d bytes\t%s\n", o.URL, o.Size, timezone.FormatDate(o.LastModified))
			}
			fmt.Fprintf(out, "%d arquivos\n", len(objects))
			return nil
		},
	}
}
