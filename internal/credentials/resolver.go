// SPDX-License-Identifier: MPL-2.0

// Package credentials decides which AWS credentials a push runs with.
//
// Credentials are never written to the process environment. Resolve returns an
// Env that the push applies to each of its own invocations.
package credentials

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

const (
	// SourceAmbient trusts whatever the AWS CLI already resolves (profile,
	// environment, SSO, instance role).
	SourceAmbient Source = "ambient"
	// SourceExplicit uses the access key, secret key and session token given
	// for this push.
	SourceExplicit Source = "explicit"
)

const (
	EnvRegion          = "AWS_REGION"
	EnvDefaultRegion   = "AWS_DEFAULT_REGION"
	EnvAccessKeyID     = "AWS_ACCESS_KEY_ID"
	EnvSecretAccessKey = "AWS_SECRET_ACCESS_KEY"
	EnvSessionToken    = "AWS_SESSION_TOKEN"
)

var (
	// ErrMissingCredential is the sentinel wrapped by MissingCredentialError.
	ErrMissingCredential = errors.New("missing credential")

	// ErrInvalidSource is the sentinel wrapped by InvalidSourceError.
	ErrInvalidSource = errors.New("invalid credential source")

	// ErrMissingRegion is returned when no region is given.
	ErrMissingRegion = errors.New("region is required")
)

type (
	// Source selects where credentials come from.
	Source string

	// Explicit holds user-supplied credentials. String redacts every value.
	Explicit struct {
		AccessKeyID     string
		SecretAccessKey string
		SessionToken    string
	}

	// Env is a set of per-invocation environment overrides.
	Env map[string]string

	// MissingCredentialError lists the explicit fields that were empty after
	// trimming.
	MissingCredentialError struct {
		Fields []string
	}

	// InvalidSourceError is returned for an unrecognized Source.
	InvalidSourceError struct {
		Value Source
	}
)

func (e *MissingCredentialError) Error() string {
	return "explicit credentials incomplete: missing " + strings.Join(e.Fields, ", ")
}

// Unwrap returns ErrMissingCredential for errors.Is() compatibility.
func (e *MissingCredentialError) Unwrap() error { return ErrMissingCredential }

func (e *InvalidSourceError) Error() string {
	return fmt.Sprintf("invalid credential source %q (valid: ambient, explicit)", e.Value)
}

// Unwrap returns ErrInvalidSource for errors.Is() compatibility.
func (e *InvalidSourceError) Unwrap() error { return ErrInvalidSource }

// Validate returns an error if the source is not recognized.
func (s Source) Validate() error {
	switch s {
	case SourceAmbient, SourceExplicit:
		return nil
	default:
		return &InvalidSourceError{Value: s}
	}
}

// String keeps secrets out of logs and error messages.
func (c Explicit) String() string {
	mask := func(v string) string {
		if strings.TrimSpace(v) == "" {
			return "<empty>"
		}
		return "<redacted>"
	}
	return fmt.Sprintf("{AccessKeyID:%s SecretAccessKey:%s SessionToken:%s}",
		mask(c.AccessKeyID), mask(c.SecretAccessKey), mask(c.SessionToken))
}

// GoString keeps secrets out of %#v output.
func (c Explicit) GoString() string { return c.String() }

// Resolve returns the environment overrides for a push. The region is always
// exported. Explicit credentials must all be present after trimming; ambient
// credentials are not read at all.
func Resolve(source Source, explicit Explicit, region string) (Env, error) {
	if err := source.Validate(); err != nil {
		return nil, err
	}
	region = strings.TrimSpace(region)
	if region == "" {
		return nil, ErrMissingRegion
	}

	env := Env{
		EnvDefaultRegion: region,
		EnvRegion:        region,
	}
	if source == SourceAmbient {
		return env, nil
	}

	fields := []struct{ key, name, value string }{
		{EnvAccessKeyID, "access key ID", explicit.AccessKeyID},
		{EnvSecretAccessKey, "secret access key", explicit.SecretAccessKey},
		{EnvSessionToken, "session token", explicit.SessionToken},
	}
	var missing []string
	for _, f := range fields {
		v := strings.TrimSpace(f.value)
		if v == "" {
			missing = append(missing, f.name)
			continue
		}
		env[f.key] = v
	}
	if len(missing) > 0 {
		return nil, &MissingCredentialError{Fields: missing}
	}
	return env, nil
}

// Redacted returns "KEY=value" pairs in key order with secret values masked.
func (e Env) Redacted() []string {
	out := make([]string, 0, len(e))
	for _, k := range slices.Sorted(maps.Keys(e)) {
		v := e[k]
		if k == EnvAccessKeyID || k == EnvSecretAccessKey || k == EnvSessionToken {
			v = "****"
		}
		out = append(out, k+"="+v)
	}
	return out
}
