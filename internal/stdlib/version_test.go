// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stdlib

import (
	"testing"

	"github.com/chordkit/chordkit/internal/eval"
	"github.com/chordkit/chordkit/internal/value"
)

func TestBiVersionReturnsBuildVersionString(t *testing.T) {
	it := eval.New(0)
	prev := BuildVersion
	BuildVersion = "v1.2.3"
	defer func() { BuildVersion = prev }()

	v, err := biVersion(it, nil)
	if err != nil {
		t.Fatalf("biVersion: %v", err)
	}
	s, ok := it.Strings.Lookup(v.ID())
	if !ok || s != "v1.2.3" {
		t.Fatalf("biVersion = %q; want v1.2.3", s)
	}
}

func TestBiVersionFallsBackOnInvalidSemver(t *testing.T) {
	it := eval.New(0)
	prev := BuildVersion
	BuildVersion = "not-semver"
	defer func() { BuildVersion = prev }()

	v, err := biVersion(it, nil)
	if err != nil {
		t.Fatalf("biVersion: %v", err)
	}
	s, ok := it.Strings.Lookup(v.ID())
	if !ok || s != "v0.0.0-invalid" {
		t.Fatalf("biVersion = %q; want v0.0.0-invalid", s)
	}
}

func TestBiVersionRejectsArguments(t *testing.T) {
	it := eval.New(0)
	if _, err := biVersion(it, []value.Value{value.Int(1)}); err == nil {
		t.Fatal("biVersion with an argument returned no error")
	}
}
