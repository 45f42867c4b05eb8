// SPDX-License-Identifier: MPL-2.0

// Package imageref validates and composes container image references.
package imageref

import (
	"errors"
	"fmt"
	"strings"

	"github.com/distribution/reference"
)

// ErrInvalidReference is the sentinel wrapped by InvalidReferenceError.
var ErrInvalidReference = errors.New("invalid image reference")

type (
	// Reference is an immutable image name and tag, e.g. ample2:local.
	Reference struct {
		name string
		tag  string
	}

	// InvalidReferenceError is returned when a name, tag or composed remote
	// reference fails reference grammar validation.
	InvalidReferenceError struct {
		Value string
		Cause error
	}
)

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("invalid image reference %q: %v", e.Value, e.Cause)
}

// Unwrap returns ErrInvalidReference and the grammar error.
func (e *InvalidReferenceError) Unwrap() []error {
	return []error{ErrInvalidReference, e.Cause}
}

// New validates name and tag and returns the Reference. Surrounding
// whitespace is trimmed.
func New(name, tag string) (Reference, error) {
	name = strings.TrimSpace(name)
	tag = strings.TrimSpace(tag)
	if name == "" {
		return Reference{}, &InvalidReferenceError{Value: name, Cause: errors.New("name is empty")}
	}
	if tag == "" {
		return Reference{}, &InvalidReferenceError{Value: name, Cause: errors.New("tag is empty")}
	}

	full := name + ":" + tag
	parsed, err := reference.Parse(full)
	if err != nil {
		return Reference{}, &InvalidReferenceError{Value: full, Cause: err}
	}
	if _, ok := parsed.(reference.Tagged); !ok {
		return Reference{}, &InvalidReferenceError{Value: full, Cause: errors.New("tag is missing")}
	}
	return Reference{name: name, tag: tag}, nil
}

// MustNew is like New but panics on invalid input. For constants.
func MustNew(name, tag string) Reference {
	r, err := New(name, tag)
	if err != nil {
		panic(err)
	}
	return r
}

// Name returns the repository name.
func (r Reference) Name() string { return r.name }

// Tag returns the tag.
func (r Reference) Tag() string { return r.tag }

// IsZero reports whether r is the zero Reference.
func (r Reference) IsZero() bool { return r.name == "" }

// Local returns name:tag.
func (r Reference) Local() string {
	return r.name + ":" + r.tag
}

func (r Reference) String() string { return r.Local() }

// Remote composes host/repository:tag and validates it.
func Remote(host, repository, tag string) (string, error) {
	full := strings.TrimSpace(host) + "/" + strings.TrimSpace(repository) + ":" + strings.TrimSpace(tag)
	named, err := reference.ParseNamed(full)
	if err != nil {
		return "", &InvalidReferenceError{Value: full, Cause: err}
	}
	if _, ok := named.(reference.Tagged); !ok {
		return "", &InvalidReferenceError{Value: full, Cause: errors.New("tag is missing")}
	}
	return named.String(), nil
}
