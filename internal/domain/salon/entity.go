package salon

import (
	"errors"
	"strings"

	"github.com/BruksfildServices01/saloes-online/internal/httperr"
)

var (
	ErrNotFound      = errors.New("salon not found")
	ErrNotConfigured = errors.New("remote backend not configured")
)

// Salon é o registro exposto para a UI e guardado no cache local.
// Os nomes JSON seguem o formato do cache ("siteUrl", "horarioFuncionamento").
type Salon struct {
	ID                   string   `json:"id"`
	Nome                 string   `json:"nome"`
	Endereco             string   `json:"endereco"`
	Telefone             string   `json:"telefone"`
	Email                string   `json:"email"`
	Logo                 string   `json:"logo"`
	SiteURL              string   `json:"siteUrl"`
	HorarioFuncionamento string   `json:"horarioFuncionamento"`
	Servicos             []string `json:"servicos"`
	Descricao            string   `json:"descricao"`
	Ativo                bool     `json:"ativo"`
}

// Input é o formulário de criação.
type Input struct {
	Nome                 string   `json:"nome"`
	Endereco             string   `json:"endereco"`
	Telefone             string   `json:"telefone"`
	Email                string   `json:"email"`
	Logo                 string   `json:"logo"`
	SiteURL              string   `json:"siteUrl"`
	HorarioFuncionamento string   `json:"horarioFuncionamento"`
	Servicos             []string `json:"servicos"`
	Descricao            string   `json:"descricao"`
	Ativo                *bool    `json:"ativo,omitempty"`
}

func (in Input) Validate() error {
	switch {
	case strings.TrimSpace(in.Nome) == "":
		return httperr.ErrBusiness("nome_required")
	case strings.TrimSpace(in.Endereco) == "":
		return httperr.ErrBusiness("endereco_required")
	case strings.TrimSpace(in.Telefone) == "":
		return httperr.ErrBusiness("telefone_required")
	}
	return nil
}

// Build aplica os defaults de criação. O ID fica a cargo de quem persiste.
func (in Input) Build(id string) Salon {
	ativo := true
	if in.Ativo != nil {
		ativo = *in.Ativo
	}

	return Salon{
		ID:                   id,
		Nome:                 in.Nome,
		Endereco:             in.Endereco,
		Telefone:             in.Telefone,
		Email:                in.Email,
		Logo:                 in.Logo,
		SiteURL:              in.SiteURL,
		HorarioFuncionamento: in.HorarioFuncionamento,
		Servicos:             CleanServicos(in.Servicos),
		Descricao:            in.Descricao,
		Ativo:                ativo,
	}
}

// Patch é uma atualização parcial: campos nil ficam como estão.
type Patch struct {
	Nome                 *string   `json:"nome,omitempty"`
	Endereco             *string   `json:"endereco,omitempty"`
	Telefone             *string   `json:"telefone,omitempty"`
	Email                *string   `json:"email,omitempty"`
	Logo                 *string   `json:"logo,omitempty"`
	SiteURL              *string   `json:"siteUrl,omitempty"`
	HorarioFuncionamento *string   `json:"horarioFuncionamento,omitempty"`
	Servicos             *[]string `json:"servicos,omitempty"`
	Descricao            *string   `json:"descricao,omitempty"`
	Ativo                *bool     `json:"ativo,omitempty"`
}

func (p Patch) Validate() error {
	if p.Nome != nil && strings.TrimSpace(*p.Nome) == "" {
		return httperr.ErrBusiness("nome_required")
	}
	if p.Endereco != nil && strings.TrimSpace(*p.Endereco) == "" {
		return httperr.ErrBusiness("endereco_required")
	}
	if p.Telefone != nil && strings.TrimSpace(*p.Telefone) == "" {
		return httperr.ErrBusiness("telefone_required")
	}
	return nil
}

func (p Patch) IsEmpty() bool {
	return p == Patch{}
}

// Apply devolve uma cópia de s com o patch aplicado.
func (p Patch) Apply(s Salon) Salon {
	if p.Nome != nil {
		s.Nome = *p.Nome
	}
	if p.Endereco != nil {
		s.Endereco = *p.Endereco
	}
	if p.Telefone != nil {
		s.Telefone = *p.Telefone
	}
	if p.Email != nil {
		s.Email = *p.Email
	}
	if p.Logo != nil {
		s.Logo = *p.Logo
	}
	if p.SiteURL != nil {
		s.SiteURL = *p.SiteURL
	}
	if p.HorarioFuncionamento != nil {
		s.HorarioFuncionamento = *p.HorarioFuncionamento
	}
	if p.Servicos != nil {
		s.Servicos = CleanServicos(*p.Servicos)
	} else {
		s.Servicos = append([]string{}, s.Servicos...)
	}
	if p.Descricao != nil {
		s.Descricao = *p.Descricao
	}
	if p.Ativo != nil {
		s.Ativo = *p.Ativo
	}
	return s
}

// Normalize deixa um registro vindo de qualquer fonte no formato esperado.
func Normalize(s Salon) Salon {
	s.ID = strings.TrimSpace(s.ID)
	s.Servicos = CleanServicos(s.Servicos)
	return s
}

// ParseServicos converte "Corte, Coloração," em ["Corte", "Coloração"].
func ParseServicos(raw string) []string {
	return CleanServicos(strings.Split(raw, ","))
}

// CleanServicos remove espaços e itens vazios; nunca devolve nil.
func CleanServicos(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Clone copia a lista inteira, incluindo os slices de serviços.
func Clone(list []Salon) []Salon {
	out := make([]Salon, len(list))
	for i, s := range list {
		s.Servicos = append([]string{}, s.Servicos...)
		out[i] = s
	}
	return out
}
