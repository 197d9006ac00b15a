package lead

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/saloes-online/internal/audit"
	"github.com/BruksfildServices01/saloes-online/internal/httperr"
	"github.com/BruksfildServices01/saloes-online/internal/notify"
)

type fakeNotifier struct {
	sent []notify.Lead
	err  error
}

func (f *fakeNotifier) Notify(_ context.Context, l notify.Lead) error {
	f.sent = append(f.sent, l)
	return f.err
}

type fakeRecorder struct {
	mu     sync.Mutex
	events []audit.Event
}

func (f *fakeRecorder) Dispatch(ev audit.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
}

func anyDomain(context.Context, string) bool { return true }

func validInput() Input {
	return Input{Nome: " Ana ", Email: "ana@exemplo.com", Telefone: "11999990000"}
}

func TestSubmitLeadValidation(t *testing.T) {
	tests := []struct {
		name   string
		in     Input
		domain DomainValidator
		code   string
	}{
		{name: "missing nome", in: Input{Email: "ana@exemplo.com", Telefone: "1"}, code: "missing_required_fields"},
		{name: "missing email", in: Input{Nome: "Ana", Telefone: "1"}, code: "missing_required_fields"},
		{name: "blank telefone", in: Input{Nome: "Ana", Email: "ana@exemplo.com", Telefone: "  "}, code: "missing_required_fields"},
		{name: "bad email", in: Input{Nome: "Ana", Email: "ana@", Telefone: "1"}, code: "invalid_email"},
		{
			name:   "unknown domain",
			in:     validInput(),
			domain: func(context.Context, string) bool { return false },
			code:   "invalid_email_domain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			email := &fakeNotifier{}
			uc := NewSubmitLead(email, nil, tt.domain, nil, nil)

			_, err := uc.Execute(context.Background(), tt.in)
			require.True(t, httperr.IsBusiness(err, tt.code), "got %v", err)
			require.Empty(t, email.sent)
		})
	}
}

func TestSubmitLeadSendsEmail(t *testing.T) {
	email := &fakeNotifier{}
	rec := &fakeRecorder{}
	uc := NewSubmitLead(email, nil, anyDomain, rec, nil)

	res, err := uc.Execute(context.Background(), validInput())
	require.NoError(t, err)
	require.True(t, res.Delivered)
	require.False(t, res.SMSSent)

	require.Len(t, email.sent, 1)
	require.Equal(t, "Ana", email.sent[0].Nome)
	require.Len(t, rec.events, 1)
	require.Equal(t, audit.ActionLeadSubmitted, rec.events[0].Action)
}

func TestSubmitLeadWithoutEmailConfigured(t *testing.T) {
	uc := NewSubmitLead(nil, nil, anyDomain, nil, nil)

	res, err := uc.Execute(context.Background(), validInput())
	require.NoError(t, err)
	require.False(t, res.Delivered)
}

func TestSubmitLeadEmailFailure(t *testing.T) {
	sms := &fakeNotifier{}
	uc := NewSubmitLead(&fakeNotifier{err: errors.New("quota")}, sms, anyDomain, nil, nil)

	_, err := uc.Execute(context.Background(), validInput())
	require.True(t, httperr.IsBusiness(err, "email_send_failed"))
	require.Empty(t, sms.sent)
}

func TestSubmitLeadSMSIsBestEffort(t *testing.T) {
	uc := NewSubmitLead(&fakeNotifier{}, &fakeNotifier{err: errors.New("invalid number")}, anyDomain, nil, nil)

	res, err := uc.Execute(context.Background(), validInput())
	require.NoError(t, err)
	require.True(t, res.Delivered)
	require.False(t, res.SMSSent)

	uc = NewSubmitLead(&fakeNotifier{}, &fakeNotifier{}, anyDomain, nil, nil)
	res, err = uc.Execute(context.Background(), validInput())
	require.NoError(t, err)
	require.True(t, res.SMSSent)
}
