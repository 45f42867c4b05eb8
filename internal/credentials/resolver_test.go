// SPDX-License-Identifier: MPL-2.0

package credentials

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"
)

func TestResolve_Ambient(t *testing.T) {
	t.Parallel()

	env, err := Resolve(SourceAmbient, Explicit{AccessKeyID: "AKIA", SecretAccessKey: "s", SessionToken: "t"}, " ap-south-1 ")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if env[EnvDefaultRegion] != "ap-south-1" || env[EnvRegion] != "ap-south-1" {
		t.Errorf("region not exported: %v", env)
	}
	for _, k := range []string{EnvAccessKeyID, EnvSecretAccessKey, EnvSessionToken} {
		if _, ok := env[k]; ok {
			t.Errorf("ambient source must not export %s", k)
		}
	}
}

func TestResolve_Explicit(t *testing.T) {
	t.Parallel()

	env, err := Resolve(SourceExplicit, Explicit{
		AccessKeyID:     " AKIAEXAMPLE ",
		SecretAccessKey: "secret\n",
		SessionToken:    "\ttoken",
	}, "us-east-1")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	want := Env{
		EnvDefaultRegion:   "us-east-1",
		EnvRegion:          "us-east-1",
		EnvAccessKeyID:     "AKIAEXAMPLE",
		EnvSecretAccessKey: "secret",
		EnvSessionToken:    "token",
	}
	for k, v := range want {
		if env[k] != v {
			t.Errorf("env[%s] = %q, want %q", k, env[k], v)
		}
	}
}

func TestResolve_ExplicitMissing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		creds Explicit
		want  []string
	}{
		{"all empty", Explicit{}, []string{"access key ID", "secret access key", "session token"}},
		{"whitespace token", Explicit{AccessKeyID: "a", SecretAccessKey: "b", SessionToken: "   "}, []string{"session token"}},
		{"missing secret", Explicit{AccessKeyID: "a", SessionToken: "c"}, []string{"secret access key"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env, err := Resolve(SourceExplicit, tt.creds, "ap-south-1")
			if env != nil {
				t.Errorf("env = %v, want nil", env)
			}
			if !errors.Is(err, ErrMissingCredential) {
				t.Fatalf("error = %v, want ErrMissingCredential", err)
			}
			mce, _ := errors.AsType[*MissingCredentialError](err)
			if !slices.Equal(mce.Fields, tt.want) {
				t.Errorf("Fields = %q, want %q", mce.Fields, tt.want)
			}
		})
	}
}

func TestResolve_InvalidInput(t *testing.T) {
	t.Parallel()

	if _, err := Resolve("vault", Explicit{}, "ap-south-1"); !errors.Is(err, ErrInvalidSource) {
		t.Errorf("error = %v, want ErrInvalidSource", err)
	}
	if _, err := Resolve(SourceAmbient, Explicit{}, "  "); !errors.Is(err, ErrMissingRegion) {
		t.Errorf("error = %v, want ErrMissingRegion", err)
	}
}

func TestExplicit_StringRedacts(t *testing.T) {
	t.Parallel()

	c := Explicit{AccessKeyID: "AKIAEXAMPLE", SecretAccessKey: "wJalrXUtnFEMI", SessionToken: ""}
	for _, s := range []string{c.String(), fmt.Sprintf("%v", c), fmt.Sprintf("%+v", c), fmt.Sprintf("%#v", c)} {
		if strings.Contains(s, "AKIAEXAMPLE") || strings.Contains(s, "wJalrXUtnFEMI") {
			t.Errorf("secret leaked: %s", s)
		}
	}
	if !strings.Contains(c.String(), "SessionToken:<empty>") {
		t.Errorf("String() = %s", c.String())
	}
}

func TestEnv_Redacted(t *testing.T) {
	t.Parallel()

	env := Env{EnvDefaultRegion: "ap-south-1", EnvSecretAccessKey: "s3cr3t"}
	got := env.Redacted()
	want := []string{"AWS_DEFAULT_REGION=ap-south-1", "AWS_SECRET_ACCESS_KEY=****"}
	if !slices.Equal(got, want) {
		t.Errorf("Redacted() = %q, want %q", got, want)
	}
}
