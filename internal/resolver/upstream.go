package resolver

import (
	"strings"

	"resolver-wizard/internal/common"
)

const upstreamSeparator = "::"

// UpstreamID returns the "name::namespace" id used to select an upstream.
func UpstreamID(ref ResourceRef) string {
	return ref.Name + upstreamSeparator + ref.Namespace
}

// ParseUpstreamID splits an id produced by UpstreamID. Missing parts are
// left empty and anything after a second separator is ignored.
func ParseUpstreamID(id string) ResourceRef {
	if id == "" {
		return ResourceRef{}
	}

	name, namespace := common.Unpack2(strings.Split(id, upstreamSeparator))

	return ResourceRef{Name: name, Namespace: namespace}
}

func (r ResourceRef) String() string {
	return UpstreamID(r)
}
