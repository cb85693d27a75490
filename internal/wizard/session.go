package wizard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"resolver-wizard/internal/apiserver"
	"resolver-wizard/internal/diagnostic"
	"resolver-wizard/internal/graphqlapi"
	"resolver-wizard/internal/grpcdesc"
	"resolver-wizard/internal/resolver"
)

var (
	ErrClosed             = errors.New("wizard is closed")
	ErrReadOnly           = errors.New("console is read-only")
	ErrBusy               = errors.New("a request is already in flight")
	ErrNothingToRemove    = errors.New("field has no resolver to remove")
	ErrRemoveNotRequested = errors.New("removal was not requested")
)

// API is the part of the API server a session talks to.
type API interface {
	ListUpstreams(ctx context.Context) ([]apiserver.Upstream, error)
	ValidateResolverSchema(ctx context.Context, ref graphqlapi.ClusterObjectRef, item *resolver.Item, protoDescriptor string) error
	UpdateResolver(
		ctx context.Context,
		ref graphqlapi.ClusterObjectRef,
		item *resolver.Item,
		protoDescriptor string,
		isDelete bool,
	) (*graphqlapi.GraphqlApi, error)
}

// Target is the field a session configures.
type Target struct {
	API          graphqlapi.ClusterObjectRef
	ObjectType   string
	Field        string
	ReturnType   string
	ResolverName string
	// Existing is the field's current resolution, nil for a new resolver.
	Existing *resolver.Resolution
	// ProtoDescriptor is the API's stored descriptor set, base64.
	ProtoDescriptor string
}

// TargetFor describes field of objectType within api.
func TargetFor(api *graphqlapi.GraphqlApi, objectType, field string) (Target, error) {
	exec, err := api.Executable()
	if err != nil {
		return Target{}, err
	}

	sch, err := graphqlapi.ParseSchema(exec.SchemaDefinition)
	if err != nil {
		return Target{}, err
	}

	info, err := sch.Field(objectType, field)
	if err != nil {
		return Target{}, err
	}

	t := Target{
		API:          api.Ref(),
		ObjectType:   objectType,
		Field:        field,
		ReturnType:   info.ReturnType,
		ResolverName: info.ResolverName,
	}

	if info.ResolverName != "" {
		t.Existing, _ = exec.Resolution(info.ResolverName)
	}

	if reg := exec.GrpcDescriptorRegistry; reg != nil {
		t.ProtoDescriptor = reg.ProtoDescriptorBin
	}

	return t, nil
}

// Session is one run of the wizard for one field.
type Session struct {
	id       uuid.UUID
	api      API
	target   Target
	asm      *resolver.Assembler
	logger   *slog.Logger
	readOnly bool

	closed   atomic.Bool
	inFlight atomic.Bool

	mu       sync.Mutex
	state    State
	uploaded bool
	removing bool
	warning  string
}

// NewSession opens a wizard on target, seeded from its existing resolution.
func NewSession(api API, target Target, opts ...Option) *Session {
	options := NewOptions(opts...)

	s := &Session{
		id:       uuid.New(),
		api:      api,
		target:   target,
		asm:      options.Assembler,
		readOnly: options.ReadOnly,
	}
	s.logger = options.Logger.With("session", s.id.String(), "field", target.ObjectType+"."+target.Field)

	kind := resolver.KindREST
	if k := target.Existing.Kind(); k.Valid() {
		kind = k
	}

	config, diags := s.asm.Render(target.Existing, kind)

	s.state = State{
		Step:   StepResolverType,
		Kind:   kind,
		Config: config,
	}
	s.warning = diags.Summary()

	if target.Existing != nil {
		s.state.Upstream = resolver.UpstreamID(target.Existing.Upstream())
	}

	if target.ProtoDescriptor != "" {
		desc, err := grpcdesc.Parse([]byte(target.ProtoDescriptor))
		if err != nil {
			s.logger.Warn("ignoring stored proto descriptor", "error", err)
		} else {
			s.state.Proto = desc
		}
	}

	s.logger.Debug("wizard opened", "kind", kind.String(), "new", s.IsNew())

	return s
}

func (s *Session) ID() uuid.UUID {
	return s.id
}

// IsNew reports whether the field had no resolver when the session opened.
func (s *Session) IsNew() bool {
	return s.target.Existing == nil
}

func (s *Session) Closed() bool {
	return s.closed.Load()
}

// State returns a snapshot of the collected values.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// Warning returns the banner text: the last rejection or parse problem.
func (s *Session) Warning() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.warning
}

// ConfirmingRemove reports whether a removal awaits confirmation.
func (s *Session) ConfirmingRemove() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.removing
}

// SelectKind changes the resolver kind. A blank configuration, or one still
// holding a template, is replaced with the new kind's template.
func (s *Session) SelectKind(k resolver.Kind) error {
	if !k.Valid() {
		return fmt.Errorf("%w: %d", resolver.ErrUnknownKind, int(k))
	}

	return s.update(func(st *State) {
		if st.Kind == k {
			return
		}

		st.Kind = k

		if strings.TrimSpace(st.Config) == "" || resolver.IsTemplate(st.Config) {
			st.Config = resolver.DefaultTemplate(k)
		}

		if k == resolver.KindMock {
			st.Upstream = ""
		}

		if st.Step == StepProtoUpload && k != resolver.KindGRPC {
			st.Step = StepResolverType
		}
	})
}

// SelectUpstream sets the upstream id ("name::namespace").
func (s *Session) SelectUpstream(id string) error {
	return s.update(func(st *State) {
		st.Upstream = id
	})
}

// SetConfig replaces the configuration text. Text that does not parse sets
// the warning but is kept.
func (s *Session) SetConfig(text string) error {
	return s.update(func(st *State) {
		st.Config = text
		s.warning = ""

		if _, err := resolver.ParseConfig(text); err != nil {
			s.warning = err.Error()
		}
	})
}

// UploadProto parses a descriptor set (binary or base64) for a gRPC
// resolver. A configuration naming a method the set lacks is only warned
// about.
func (s *Session) UploadProto(data []byte) error {
	if s.closed.Load() {
		return ErrClosed
	}

	desc, err := grpcdesc.Parse(data)
	if err != nil {
		s.setWarning(err.Error())
		return err
	}

	return s.update(func(st *State) {
		st.Proto = desc
		s.uploaded = true
		s.warning = s.methodWarning(*st)
	})
}

func (s *Session) methodWarning(st State) string {
	if st.Kind != resolver.KindGRPC || st.Proto == nil {
		return ""
	}

	item, _, err := s.asm.Assemble(resolver.Input{Config: st.Config, Kind: st.Kind})
	if err != nil || item.GrpcRequest == nil || item.GrpcRequest.ServiceName == "" {
		return ""
	}

	req := item.GrpcRequest
	if st.Proto.HasMethod(req.ServiceName, req.MethodName) {
		return ""
	}

	var d diagnostic.Diagnostics
	d.AddWarning(diagnostic.CodeUnknownGrpcMethod,
		fmt.Sprintf("%s/%s is not defined in the uploaded proto descriptor.", req.ServiceName, req.MethodName),
		"requestTransform")

	return d.Summary()
}

// Next advances to the following step.
func (s *Session) Next() error {
	return s.move(ActionNext)
}

// Back returns to the previous step.
func (s *Session) Back() error {
	return s.move(ActionBack)
}

func (s *Session) move(a Action) error {
	if s.closed.Load() {
		return ErrClosed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := Reduce(s.state, a)
	if err != nil {
		return err
	}

	s.logger.Debug("wizard step", "action", a.String(), "from", s.state.Step.String(), "to", next.Step.String())
	s.state = next

	return nil
}

// Upstreams lists the upstreams the user can pick from.
func (s *Session) Upstreams(ctx context.Context) ([]apiserver.Upstream, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}

	return s.api.ListUpstreams(ctx)
}

// Submit assembles the configuration, validates it against the API server
// and stores it. Local problems never reach the server. On success the
// session closes; on failure it stays open with the reason as its warning.
func (s *Session) Submit(ctx context.Context) (*graphqlapi.GraphqlApi, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.inFlight.Store(false)

	s.mu.Lock()
	st := s.state
	uploaded := s.uploaded
	s.mu.Unlock()

	if err := Ready(st); err != nil {
		s.setWarning(err.Error())
		return nil, err
	}

	item, diags, err := s.asm.Assemble(resolver.Input{
		Config:   st.Config,
		Kind:     st.Kind,
		Field:    s.target.Field,
		Upstream: st.Upstream,
		Extras: resolver.Extras{
			ObjectType:   s.target.ObjectType,
			ReturnType:   s.target.ReturnType,
			ResolverName: s.target.ResolverName,
			IsNew:        s.IsNew(),
		},
	})
	if err != nil {
		s.setWarning(err.Error())
		return nil, err
	}

	s.setWarning(diags.Summary())

	var proto string
	if uploaded && st.Kind == resolver.KindGRPC {
		proto = st.Proto.Base64()
	}

	if err := s.api.ValidateResolverSchema(ctx, s.target.API, item, proto); err != nil {
		return nil, s.fail("validate", err)
	}

	if s.closed.Load() {
		s.logger.Info("dropping validate response after close")
		return nil, ErrClosed
	}

	updated, err := s.api.UpdateResolver(ctx, s.target.API, item, proto, false)
	if err != nil {
		return nil, s.fail("update", err)
	}

	if s.closed.Load() {
		s.logger.Info("dropping update response after close")
		return nil, ErrClosed
	}

	s.logger.Info("resolver saved", "kind", st.Kind.String(), "upstream", st.Upstream)
	s.Close()

	return updated, nil
}

// RequestRemove asks for confirmation before removing the field's resolver.
func (s *Session) RequestRemove() error {
	if s.closed.Load() {
		return ErrClosed
	}

	if s.readOnly {
		return ErrReadOnly
	}

	if s.IsNew() {
		return ErrNothingToRemove
	}

	s.mu.Lock()
	s.removing = true
	s.mu.Unlock()

	return nil
}

// CancelRemove withdraws a pending removal.
func (s *Session) CancelRemove() {
	s.mu.Lock()
	s.removing = false
	s.mu.Unlock()
}

// ConfirmRemove removes the field's resolver. A failure cancels the pending
// removal and sets the warning.
func (s *Session) ConfirmRemove(ctx context.Context) (*graphqlapi.GraphqlApi, error) {
	s.mu.Lock()
	removing := s.removing
	s.mu.Unlock()

	if !removing {
		return nil, ErrRemoveNotRequested
	}

	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.inFlight.Store(false)

	item := &resolver.Item{
		Kind:         s.target.Existing.Kind(),
		Field:        s.target.Field,
		ObjectType:   s.target.ObjectType,
		ReturnType:   s.target.ReturnType,
		ResolverName: s.target.ResolverName,
	}

	updated, err := s.api.UpdateResolver(ctx, s.target.API, item, "", true)
	if err != nil {
		s.CancelRemove()
		return nil, s.fail("remove", err)
	}

	if s.closed.Load() {
		s.logger.Info("dropping remove response after close")
		return nil, ErrClosed
	}

	s.logger.Info("resolver removed")
	s.Close()

	return updated, nil
}

// Close discards the session. Calls still in flight complete but their
// results are dropped.
func (s *Session) Close() {
	if s.closed.Swap(true) {
		return
	}

	s.mu.Lock()
	s.state = State{}
	s.warning = ""
	s.removing = false
	s.mu.Unlock()

	s.logger.Debug("wizard closed")
}

func (s *Session) begin() error {
	if s.closed.Load() {
		return ErrClosed
	}

	if s.readOnly {
		return ErrReadOnly
	}

	if !s.inFlight.CompareAndSwap(false, true) {
		return ErrBusy
	}

	return nil
}

func (s *Session) update(fn func(st *State)) error {
	if s.closed.Load() {
		return ErrClosed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	fn(&s.state)

	return nil
}

func (s *Session) setWarning(msg string) {
	s.mu.Lock()
	s.warning = msg
	s.mu.Unlock()
}

func (s *Session) fail(op string, err error) error {
	if s.closed.Load() {
		s.logger.Info("dropping failed response after close", "op", op, "error", err)
		return ErrClosed
	}

	s.logger.Warn("resolver "+op+" rejected", "error", err)
	s.setWarning(err.Error())

	return err
}
