package models

import "time"

// Cliente cadastrado pelo painel, opcionalmente ligado a um salão.
type Client struct {
	ID       string  `gorm:"primaryKey;type:text" json:"id"`
	SalaoID  *string `gorm:"column:salao_id;type:text;index" json:"salao_id"`
	Salao    *Salon  `gorm:"foreignKey:SalaoID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
	Nome     string  `gorm:"type:text;not null" json:"nome"`
	Email    string  `gorm:"type:text" json:"email"`
	Telefone string  `gorm:"type:text" json:"telefone"`
	Endereco string  `gorm:"type:text" json:"endereco"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Client) TableName() string {
	return "clientes"
}
