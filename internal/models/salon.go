package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Salon é a linha da tabela saloes.
//
// Ativo é ponteiro porque o gorm omite do INSERT campos com valor zero que
// tenham default; com bool, um salão inativo seria gravado como ativo.
type Salon struct {
	ID                   string     `gorm:"primaryKey;type:text" json:"id"`
	Nome                 string     `gorm:"type:text;not null" json:"nome"`
	Endereco             string     `gorm:"type:text" json:"endereco"`
	Telefone             string     `gorm:"type:text" json:"telefone"`
	Email                string     `gorm:"type:text" json:"email"`
	Logo                 string     `gorm:"type:text" json:"logo"`
	LogoURL              string     `gorm:"column:logo_url;type:text" json:"logo_url"`
	SiteURL              string     `gorm:"column:site_url;type:text" json:"site_url"`
	HorarioFuncionamento string     `gorm:"type:text" json:"horario_funcionamento"`
	Servicos             StringList `gorm:"type:jsonb;default:'[]'" json:"servicos"`
	Descricao            string     `gorm:"type:text" json:"descricao"`
	Ativo                *bool      `gorm:"not null;default:true" json:"ativo"`
	CreatedAt            time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

func (Salon) TableName() string {
	return "saloes"
}

// StringList guarda a lista de serviços como jsonb.
type StringList []string

func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *StringList) Scan(value interface{}) error {
	var b []byte
	switch v := value.(type) {
	case nil:
		*s = StringList{}
		return nil
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return errors.New("type assertion to []byte failed")
	}

	var out []string
	if err := json.Unmarshal(b, &out); err != nil {
		return err
	}
	if out == nil {
		out = []string{}
	}
	*s = out
	return nil
}
