package grpcdesc

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"slices"
	"strings"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
)

// ErrEmpty is returned when the upload holds no data.
var ErrEmpty = errors.New("proto descriptor is empty")

// Descriptor is a parsed FileDescriptorSet.
type Descriptor struct {
	raw     []byte
	files   *protoregistry.Files
	methods []string
}

// Parse reads a binary FileDescriptorSet, or its base64 text.
func Parse(data []byte) (*Descriptor, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, ErrEmpty
	}

	raw := data
	if IsBase64(string(trimmed)) {
		decoded, err := base64.StdEncoding.DecodeString(string(trimmed))
		if err != nil {
			return nil, fmt.Errorf("failed to decode base64 descriptor: %w", err)
		}

		raw = decoded
	}

	var set descriptorpb.FileDescriptorSet
	if err := proto.Unmarshal(raw, &set); err != nil {
		return nil, fmt.Errorf("failed to parse proto descriptor: %w", err)
	}

	if len(set.GetFile()) == 0 {
		return nil, ErrEmpty
	}

	files, err := protodesc.NewFiles(&set)
	if err != nil {
		return nil, fmt.Errorf("failed to build proto descriptor: %w", err)
	}

	d := &Descriptor{raw: raw, files: files}

	files.RangeFiles(func(fd protoreflect.FileDescriptor) bool {
		services := fd.Services()
		for i := range services.Len() {
			sd := services.Get(i)
			methods := sd.Methods()

			for j := range methods.Len() {
				d.methods = append(d.methods, string(sd.FullName())+"/"+string(methods.Get(j).Name()))
			}
		}

		return true
	})

	slices.Sort(d.methods)

	return d, nil
}

// Methods returns every method as "package.Service/Method", sorted.
func (d *Descriptor) Methods() []string {
	return slices.Clone(d.methods)
}

// Services returns the full names of all services, sorted.
func (d *Descriptor) Services() []string {
	var out []string

	for _, m := range d.methods {
		svc, _, _ := strings.Cut(m, "/")
		if len(out) == 0 || out[len(out)-1] != svc {
			out = append(out, svc)
		}
	}

	return out
}

// HasMethod reports whether service (a full name) defines method.
func (d *Descriptor) HasMethod(service, method string) bool {
	_, found := slices.BinarySearch(d.methods, service+"/"+method)
	return found
}

// Base64 returns the binary descriptor as base64 text.
func (d *Descriptor) Base64() string {
	return base64.StdEncoding.EncodeToString(d.raw)
}

// IsBase64 reports whether s is non-blank, canonical standard base64.
func IsBase64(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}

	decoded, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return false
	}

	return base64.StdEncoding.EncodeToString(decoded) == s
}
