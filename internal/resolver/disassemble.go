package resolver

import (
	"encoding/json"
	"fmt"

	"resolver-wizard/internal/diagnostic"
)

// Disassemble renders res as configuration text for kind k. When res has no
// resolver of that kind, or nothing is left once empty values are removed,
// the default template is returned. A zero k selects the populated variant.
func (a *Assembler) Disassemble(res *Resolution, k Kind) string {
	text, _ := a.Render(res, k)
	return text
}

// Render is Disassemble that also returns what was found along the way:
// properties the type does not declare and values in the legacy encoding.
func (a *Assembler) Render(res *Resolution, k Kind) (string, *diagnostic.Diagnostics) {
	diags := &diagnostic.Diagnostics{}

	if !k.Valid() {
		k = res.Kind()
	}

	v := res.variant(k)
	if v == nil {
		return DefaultTemplate(k), diags
	}

	obj, err := toPlain(v)
	if err != nil {
		a.logger.Warn("failed to copy resolver, using template", "kind", k.String(), "error", err)
		return DefaultTemplate(k), diags
	}

	delete(obj, upstreamRefKey)

	// Empty values are stripped only after the walk: a pair list or a
	// tagged value holding "" is still well formed on the wire.
	parsed, walk := a.registry.PostUnmarshal(obj, k.TypeName())
	diags.Merge(walk)

	out, _ := Compact(parsed).(map[string]any)
	if len(out) == 0 {
		return DefaultTemplate(k), diags
	}

	text, err := EncodeYAML(out)
	if err != nil {
		a.logger.Warn("failed to render resolver, using template", "kind", k.String(), "error", err)
		return DefaultTemplate(k), diags
	}

	return text, diags
}

// toPlain deep copies a resolver into plain JSON values.
func toPlain(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode resolver: %w", err)
	}

	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("failed to decode resolver: %w", err)
	}

	if obj == nil {
		obj = map[string]any{}
	}

	return obj, nil
}
