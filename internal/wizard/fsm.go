package wizard

import (
	"errors"
	"fmt"
	"strings"

	"resolver-wizard/internal/grpcdesc"
	"resolver-wizard/internal/resolver"
)

var (
	// ErrStepIncomplete is matched by every *StepError.
	ErrStepIncomplete = errors.New("step incomplete")
	// ErrNoTransition is returned when an action is not defined for the current step.
	ErrNoTransition = errors.New("no transition")
)

// StepError reports why the wizard cannot leave a step.
type StepError struct {
	Step    Step
	Message string
}

func (e *StepError) Error() string {
	return e.Message
}

func (e *StepError) Is(target error) bool {
	return target == ErrStepIncomplete
}

// State is everything the wizard has collected so far.
type State struct {
	Step     Step
	Kind     resolver.Kind
	Upstream string
	Proto    *grpcdesc.Descriptor
	Config   string
}

type transitionKey struct {
	step   Step
	kind   resolver.Kind
	action Action
}

// transitions maps (step, kind, action) to the next step. The proto upload
// step exists only for gRPC.
var transitions = buildTransitions()

func buildTransitions() map[transitionKey]Step {
	t := map[transitionKey]Step{
		{StepResolverType, resolver.KindGRPC, ActionNext}: StepProtoUpload,
		{StepProtoUpload, resolver.KindGRPC, ActionNext}:  StepUpstream,
		{StepProtoUpload, resolver.KindGRPC, ActionBack}:  StepResolverType,
		{StepUpstream, resolver.KindGRPC, ActionBack}:     StepProtoUpload,
	}

	for _, k := range resolver.Kinds {
		if k != resolver.KindGRPC {
			t[transitionKey{StepResolverType, k, ActionNext}] = StepUpstream
			t[transitionKey{StepUpstream, k, ActionBack}] = StepResolverType
		}

		t[transitionKey{StepUpstream, k, ActionNext}] = StepConfig
		t[transitionKey{StepConfig, k, ActionBack}] = StepUpstream
	}

	return t
}

// Steps returns the steps a wizard for k walks through, in order.
func Steps(k resolver.Kind) []Step {
	if k == resolver.KindGRPC {
		return []Step{StepResolverType, StepProtoUpload, StepUpstream, StepConfig}
	}

	return []Step{StepResolverType, StepUpstream, StepConfig}
}

// Reduce applies a to s. Next is refused while the current step is
// incomplete; an action with no transition leaves s unchanged.
func Reduce(s State, a Action) (State, error) {
	if a == ActionNext {
		if err := Check(s, s.Step); err != nil {
			return s, err
		}
	}

	next, ok := transitions[transitionKey{s.Step, s.Kind, a}]
	if !ok {
		return s, fmt.Errorf("%w: %s from %s", ErrNoTransition, a, s.Step)
	}

	s.Step = next

	return s, nil
}

// Check reports whether step is complete in s.
func Check(s State, step Step) error {
	switch step {
	case StepResolverType:
		if !s.Kind.Valid() {
			return &StepError{Step: step, Message: "You need to specify a resolver type."}
		}
	case StepProtoUpload:
		if s.Kind == resolver.KindGRPC && s.Proto == nil {
			return &StepError{Step: step, Message: "You need to upload a proto descriptor."}
		}
	case StepUpstream:
		if s.Kind.NeedsUpstream() && s.Upstream == "" {
			return &StepError{Step: step, Message: "You need to specify an upstream."}
		}
	case StepConfig:
		if strings.TrimSpace(s.Config) == "" {
			return &StepError{Step: step, Message: "You need to specify a resolver configuration."}
		}

		if _, err := resolver.ParseConfig(s.Config); err != nil {
			return &StepError{Step: step, Message: err.Error()}
		}
	}

	return nil
}

// Ready checks every step k walks through and returns the first failure.
func Ready(s State) error {
	for _, step := range Steps(s.Kind) {
		if err := Check(s, step); err != nil {
			return err
		}
	}

	return nil
}
