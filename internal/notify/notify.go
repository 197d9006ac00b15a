package notify

import "context"

// Lead é o contato enviado pelo formulário público.
type Lead struct {
	Nome     string `json:"nome"`
	Email    string `json:"email"`
	Telefone string `json:"telefone"`
	Endereco string `json:"endereco,omitempty"`
	Mensagem string `json:"mensagem,omitempty"`
}

type Notifier interface {
	Notify(ctx context.Context, lead Lead) error
}

const (
	defaultEndereco = "Não informado"
	defaultMensagem = "Nenhuma mensagem adicional"
)

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
