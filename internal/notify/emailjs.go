package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const DefaultEmailJSEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

type EmailJSConfig struct {
	ServiceID  string
	TemplateID string
	PublicKey  string
	PrivateKey string
	Endpoint   string
}

// EmailJS envia o lead pelo template configurado no EmailJS.
type EmailJS struct {
	cfg    EmailJSConfig
	client *http.Client
}

func NewEmailJS(cfg EmailJSConfig, client *http.Client) *EmailJS {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEmailJSEndpoint
	}
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &EmailJS{cfg: cfg, client: client}
}

type emailJSRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

// TemplateParams monta as variáveis usadas no template de e-mail.
func TemplateParams(lead Lead) map[string]string {
	return map[string]string{
		"to_name":    "Administrador",
		"from_name":  lead.Nome,
		"from_email": lead.Email,
		"phone":      lead.Telefone,
		"address":    orDefault(lead.Endereco, defaultEndereco),
		"message":    orDefault(lead.Mensagem, defaultMensagem),
		"reply_to":   lead.Email,
	}
}

func (e *EmailJS) Notify(ctx context.Context, lead Lead) error {
	body, err := json.Marshal(emailJSRequest{
		ServiceID:      e.cfg.ServiceID,
		TemplateID:     e.cfg.TemplateID,
		UserID:         e.cfg.PublicKey,
		AccessToken:    e.cfg.PrivateKey,
		TemplateParams: TemplateParams(lead),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("emailjs request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("emailjs status %d: %s", resp.StatusCode, strings.TrimSpace(string(text)))
	}
	return nil
}
