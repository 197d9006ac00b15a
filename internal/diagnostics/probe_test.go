package diagnostics

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

type fakeSchema struct {
	pingErr error
	tables  map[string]bool
	columns map[string]bool
}

func (f fakeSchema) Ping(context.Context) error { return f.pingErr }

func (f fakeSchema) HasTable(_ context.Context, table string) bool { return f.tables[table] }

func (f fakeSchema) HasColumn(_ context.Context, table, column string) bool {
	return f.columns[table+"."+column]
}

type fakeBucket struct {
	exists bool
	err    error
}

func (fakeBucket) Bucket() string { return "saloes-logos" }

func (f fakeBucket) BucketExists(context.Context) (bool, error) { return f.exists, f.err }

func fullSchema() fakeSchema {
	cols := map[string]bool{}
	for _, c := range SalonColumns {
		cols["saloes."+c] = true
	}
	return fakeSchema{
		tables:  map[string]bool{"saloes": true, "clientes": true},
		columns: cols,
	}
}

func TestProbeNothingConfigured(t *testing.T) {
	r := NewProbe(nil, nil).Run(context.Background())
	require.False(t, r.DatabaseConfigured)
	require.False(t, r.StorageConfigured)
	require.True(t, r.OK())
}

func TestProbeHealthy(t *testing.T) {
	r := NewProbe(fullSchema(), fakeBucket{exists: true}).Run(context.Background())
	require.True(t, r.Connected)
	require.Empty(t, r.MissingColumns)
	require.Equal(t, []TableReport{{Name: "saloes", Exists: true}, {Name: "clientes", Exists: true}}, r.Tables)
	require.Equal(t, "saloes-logos", r.BucketName)
	require.True(t, r.OK())
}

func TestProbeMissingColumns(t *testing.T) {
	s := fullSchema()
	delete(s.columns, "saloes.ativo")
	delete(s.columns, "saloes.descricao")

	r := NewProbe(s, nil).Run(context.Background())
	require.Equal(t, []string{"ativo", "descricao"}, r.MissingColumns)
	require.False(t, r.OK())
}

func TestProbeMissingTable(t *testing.T) {
	s := fullSchema()
	s.tables["clientes"] = false

	r := NewProbe(s, nil).Run(context.Background())
	require.Equal(t, TableReport{Name: "clientes", Exists: false}, r.Tables[1])
	require.False(t, r.OK())
}

func TestProbeConnectionFailure(t *testing.T) {
	r := NewProbe(fakeSchema{pingErr: errors.New("dial tcp: i/o timeout")}, nil).Run(context.Background())
	require.False(t, r.Connected)
	require.Equal(t, "dial tcp: i/o timeout", r.ConnectionError)
	require.Empty(t, r.Tables)
	require.False(t, r.OK())
}

func TestProbeBucket(t *testing.T) {
	r := NewProbe(nil, fakeBucket{err: errors.New("forbidden")}).Run(context.Background())
	require.True(t, r.StorageConfigured)
	require.False(t, r.BucketExists)
	require.Equal(t, "forbidden", r.BucketError)
	require.False(t, r.OK())
}

func TestExplain(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "auth",
			err:  &pgconn.PgError{Code: "28P01", Message: `password authentication failed for user "postgres"`},
			want: `credenciais inválidas: password authentication failed for user "postgres"`,
		},
		{
			name: "undefined table wrapped",
			err:  fmt.Errorf("list: %w", &pgconn.PgError{Code: "42P01", Message: `relation "saloes" does not exist`}),
			want: `tabela não existe: relation "saloes" does not exist`,
		},
		{
			name: "other code",
			err:  &pgconn.PgError{Code: "53300", Message: "too many connections"},
			want: "too many connections (53300)",
		},
		{
			name: "plain",
			err:  errors.New("boom"),
			want: "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Explain(tt.err))
		})
	}
}
