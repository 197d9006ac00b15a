package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/saloes-online/internal/domain/salon"
	"github.com/BruksfildServices01/saloes-online/internal/httperr"
)

// Source diz de onde veio a coleção atual.
type Source string

const (
	SourceNone    Source = ""
	SourceRemote  Source = "remote"
	SourceCache   Source = "cache"
	SourceSamples Source = "samples"
	SourceLocal   Source = "local"
)

// State é o retrato exposto ao painel.
type State struct {
	Source           Source `json:"source"`
	RemoteConfigured bool   `json:"remote_configured"`
	Busy             bool   `json:"busy"`
	Error            string `json:"error,omitempty"`
	Total            int    `json:"total"`
}

// Store mantém a coleção de salões em memória, vinda do backend remoto quando
// ele responde e do cache local (ou dos exemplos) quando não.
//
// Escritas vão primeiro ao remoto e depois recarregam a coleção inteira; sem
// remoto configurado elas são aplicadas em memória e persistidas no cache.
// Escritas (e recargas) são serializadas por writeMu; leituras só usam mu.
//
// A lista remota nunca é gravada no cache local, que é a origem da migração;
// ela vai para o espelho (WithMirror), quando houver.
type Store struct {
	remote   salon.Repository
	cache    salon.Cache
	mirrorTo salon.Cache
	log      *zap.Logger
	newID  func() string

	writeMu sync.Mutex

	mu      sync.RWMutex
	saloes  []salon.Salon
	source  Source
	lastErr string

	busy atomic.Int32
}

type Option func(*Store)

func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithMirror define onde guardar a última lista lida do remoto. Ela é a
// primeira opção de fallback quando o remoto cair.
func WithMirror(c salon.Cache) Option {
	return func(s *Store) { s.mirrorTo = c }
}

func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// New cria o store. remote nil significa backend não configurado.
func New(remote salon.Repository, cache salon.Cache, opts ...Option) *Store {
	s := &Store{
		remote: remote,
		cache:  cache,
		log:    zap.NewNop(),
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ======================================================
// LEITURA
// ======================================================

func (s *Store) RemoteConfigured() bool {
	return s.remote != nil
}

func (s *Store) All() []salon.Salon {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return salon.Clone(s.saloes)
}

// Active é o que a listagem pública enxerga.
func (s *Store) Active() []salon.Salon {
	return salon.FilterActive(s.All())
}

func (s *Store) Search(term string, onlyActive bool) []salon.Salon {
	list := s.All()
	if onlyActive {
		list = salon.FilterActive(list)
	}
	return salon.Search(list, term)
}

func (s *Store) Get(id string) (salon.Salon, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	found, ok := salon.Find(s.saloes, id)
	if !ok {
		return salon.Salon{}, false
	}
	return salon.Clone([]salon.Salon{found})[0], true
}

func (s *Store) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *Store) Busy() bool {
	return s.busy.Load() > 0
}

func (s *Store) Source() Source {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{
		Source:           s.source,
		RemoteConfigured: s.remote != nil,
		Busy:             s.busy.Load() > 0,
		Error:            s.lastErr,
		Total:            len(s.saloes),
	}
}

// ======================================================
// CARGA
// ======================================================

// Refresh recarrega a coleção. Com remoto configurado e respondendo, a lista
// remota substitui a atual e é copiada para o espelho. Se o remoto falhar, a
// coleção passa a ser o espelho, o cache local, ou os exemplos na primeira vez.
// O erro do remoto é devolvido mesmo quando o fallback funcionou.
func (s *Store) Refresh(ctx context.Context) error {
	defer s.track()()

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if s.remote == nil {
		s.loadLocal(ctx)
		s.setError("")
		return nil
	}

	list, err := s.remote.List(ctx)
	if err != nil {
		s.log.Warn("remote fetch failed, using local fallback", zap.Error(err))
		s.loadLocal(ctx)
		s.setError(fmt.Sprintf("Erro ao carregar salões: %v", err))
		return fmt.Errorf("fetch saloes: %w", err)
	}

	s.replace(normalizeAll(list), SourceRemote)
	s.mirror(ctx)
	s.setError("")
	return nil
}

// ScheduleRefresh agenda uma única recarga; usado depois da migração em lote.
func (s *Store) ScheduleRefresh(d time.Duration) *time.Timer {
	return time.AfterFunc(d, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.Refresh(ctx); err != nil {
			s.log.Warn("scheduled refresh failed", zap.Error(err))
		}
	})
}

func (s *Store) loadLocal(ctx context.Context) {
	if s.remote != nil && s.mirrorTo != nil {
		list, found, err := s.mirrorTo.Load(ctx)
		if err != nil {
			s.log.Warn("remote mirror unreadable", zap.Error(err))
		}
		if err == nil && found {
			s.replace(list, SourceCache)
			return
		}
	}

	list, found, err := s.cache.Load(ctx)
	if err != nil {
		s.log.Warn("local cache unreadable", zap.Error(err))
	}
	if err != nil || !found {
		s.replace(salon.Samples(), SourceSamples)
		return
	}
	s.replace(list, SourceCache)
}

// resync é a recarga feita depois de uma escrita remota. Se falhar, o estado
// anterior fica como está.
func (s *Store) resync(ctx context.Context) error {
	list, err := s.remote.List(ctx)
	if err != nil {
		return err
	}
	s.replace(normalizeAll(list), SourceRemote)
	s.mirror(ctx)
	return nil
}

func (s *Store) mirror(ctx context.Context) {
	if s.mirrorTo == nil {
		return
	}
	if err := s.mirrorTo.Save(ctx, s.All()); err != nil {
		s.log.Warn("failed to mirror remote saloes", zap.Error(err))
	}
}

// ======================================================
// ESCRITA
// ======================================================

func (s *Store) Add(ctx context.Context, in salon.Input) (salon.Salon, error) {
	defer s.track()()

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := in.Validate(); err != nil {
		return salon.Salon{}, s.fail("Erro ao adicionar salão", err)
	}

	novo := in.Build(s.uniqueID())

	if s.remote != nil {
		created, err := s.remote.Create(ctx, novo)
		if err != nil {
			return salon.Salon{}, s.fail("Erro ao adicionar salão", err)
		}
		s.afterRemoteWrite(ctx, "Erro ao recarregar salões")
		return created, nil
	}

	s.mu.Lock()
	s.saloes = append(s.saloes, novo)
	s.source = SourceLocal
	s.mu.Unlock()

	s.persistLocal(ctx)
	s.setError("")
	return novo, nil
}

func (s *Store) Update(ctx context.Context, id string, p salon.Patch) (salon.Salon, error) {
	defer s.track()()

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := p.Validate(); err != nil {
		return salon.Salon{}, s.fail("Erro ao atualizar salão", err)
	}

	if s.remote != nil {
		if err := s.remote.Update(ctx, id, p); err != nil {
			return salon.Salon{}, s.fail("Erro ao atualizar salão", err)
		}
		s.afterRemoteWrite(ctx, "Erro ao recarregar salões")
		return s.current(ctx, id)
	}

	s.mu.Lock()
	idx := indexOf(s.saloes, id)
	if idx < 0 {
		s.mu.Unlock()
		return salon.Salon{}, s.fail("Erro ao atualizar salão", salon.ErrNotFound)
	}
	s.saloes[idx] = p.Apply(s.saloes[idx])
	updated := salon.Clone(s.saloes[idx : idx+1])[0]
	s.source = SourceLocal
	s.mu.Unlock()

	s.persistLocal(ctx)
	s.setError("")
	return updated, nil
}

// Delete não falha quando o id não existe.
func (s *Store) Delete(ctx context.Context, id string) error {
	defer s.track()()

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if s.remote != nil {
		if err := s.remote.Delete(ctx, id); err != nil {
			return s.fail("Erro ao excluir salão", err)
		}
		s.afterRemoteWrite(ctx, "Erro ao recarregar salões")
		return nil
	}

	s.mu.Lock()
	idx := indexOf(s.saloes, id)
	if idx >= 0 {
		s.saloes = append(s.saloes[:idx:idx], s.saloes[idx+1:]...)
		s.source = SourceLocal
	}
	s.mu.Unlock()

	if idx >= 0 {
		s.persistLocal(ctx)
	}
	s.setError("")
	return nil
}

func (s *Store) ToggleActive(ctx context.Context, id string) (salon.Salon, error) {
	defer s.track()()

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if s.remote != nil {
		cur, ok := s.Get(id)
		if !ok {
			var err error
			if cur, err = s.remote.Get(ctx, id); err != nil {
				return salon.Salon{}, s.fail("Erro ao alterar status do salão", err)
			}
		}
		if err := s.remote.SetActive(ctx, id, !cur.Ativo); err != nil {
			return salon.Salon{}, s.fail("Erro ao alterar status do salão", err)
		}
		s.afterRemoteWrite(ctx, "Erro ao recarregar salões")
		return s.current(ctx, id)
	}

	s.mu.Lock()
	idx := indexOf(s.saloes, id)
	if idx < 0 {
		s.mu.Unlock()
		return salon.Salon{}, s.fail("Erro ao alterar status do salão", salon.ErrNotFound)
	}
	s.saloes[idx].Ativo = !s.saloes[idx].Ativo
	updated := salon.Clone(s.saloes[idx : idx+1])[0]
	s.source = SourceLocal
	s.mu.Unlock()

	s.persistLocal(ctx)
	s.setError("")
	return updated, nil
}

// ======================================================
// HELPERS
// ======================================================

func (s *Store) afterRemoteWrite(ctx context.Context, msg string) {
	if err := s.resync(ctx); err != nil {
		s.log.Warn("resync after write failed", zap.Error(err))
		s.setError(fmt.Sprintf("%s: %v", msg, err))
		return
	}
	s.setError("")
}

// current lê o registro já sincronizado, indo ao remoto se a recarga falhou.
func (s *Store) current(ctx context.Context, id string) (salon.Salon, error) {
	if found, ok := s.Get(id); ok {
		return found, nil
	}
	return s.remote.Get(ctx, id)
}

func (s *Store) persistLocal(ctx context.Context) {
	if err := s.cache.Save(ctx, s.All()); err != nil {
		s.log.Error("failed to persist local cache", zap.Error(err))
	}
}

func (s *Store) uniqueID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for {
		id := s.newID()
		if indexOf(s.saloes, id) < 0 {
			return id
		}
	}
}

func (s *Store) replace(list []salon.Salon, src Source) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saloes = salon.Clone(list)
	s.source = src
}

func (s *Store) setError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = msg
}

func (s *Store) fail(prefix string, err error) error {
	s.setError(fmt.Sprintf("%s: %s", prefix, Message(err)))
	return err
}

func (s *Store) track() func() {
	s.busy.Add(1)
	return func() { s.busy.Add(-1) }
}

func indexOf(list []salon.Salon, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}

func normalizeAll(list []salon.Salon) []salon.Salon {
	out := make([]salon.Salon, len(list))
	for i, s := range list {
		out[i] = salon.Normalize(s)
	}
	return out
}

var validationMessages = map[string]string{
	"nome_required":     "nome é obrigatório",
	"endereco_required": "endereço é obrigatório",
	"telefone_required": "telefone é obrigatório",
}

// Message traduz os erros conhecidos para o texto mostrado no painel.
func Message(err error) string {
	if m, ok := validationMessages[httperr.Code(err)]; ok {
		return m
	}

	switch {
	case err == nil:
		return ""
	case errors.Is(err, salon.ErrNotFound):
		return "salão não encontrado"
	case errors.Is(err, salon.ErrNotConfigured):
		return "backend remoto não configurado"
	}
	return err.Error()
}
