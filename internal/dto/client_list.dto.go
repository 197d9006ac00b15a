package dto

import "time"

type ClientListDTO struct {
	ID        string    `json:"id"`
	SalaoID   *string   `json:"salao_id"`
	SalaoNome string    `json:"salao_nome,omitempty"`
	Nome      string    `json:"nome"`
	Email     string    `json:"email"`
	Telefone  string    `json:"telefone"`
	Endereco  string    `json:"endereco"`
	CreatedAt time.Time `json:"created_at"`
}
