package resolver

import (
	"strings"
)

const restTemplate = `request:
  headers:
  queryParams:
  body:
response:
  resultRoot:
  setters:
`

const grpcTemplate = `requestTransform:
  serviceName:
  methodName:
  requestMetadata:
  outgoingMessageJson:
`

const mockTemplate = `syncResponse:
`

// DefaultTemplate returns the skeleton YAML offered for a new resolver of
// kind k. An unknown kind gets the REST template.
func DefaultTemplate(k Kind) string {
	switch k {
	case KindGRPC:
		return grpcTemplate
	case KindMock:
		return mockTemplate
	default:
		return restTemplate
	}
}

// IsTemplate reports whether text is one of the default templates, ignoring
// surrounding whitespace.
func IsTemplate(text string) bool {
	t := strings.TrimSpace(text)

	for _, k := range Kinds {
		if t == strings.TrimSpace(DefaultTemplate(k)) {
			return true
		}
	}

	return false
}
