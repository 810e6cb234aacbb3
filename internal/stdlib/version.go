// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stdlib

import (
	"golang.org/x/mod/semver"

	"github.com/chordkit/chordkit/internal/eval"
	"github.com/chordkit/chordkit/internal/value"
)

// BuildVersion is the embedded build version string, validated as
// well-formed semver both here and by `cmd/chordkitd`'s `-version`
// flag (SPEC_FULL.md §11). Overwritten at link time via
// -ldflags "-X .../internal/stdlib.BuildVersion=v1.2.3" in release
// builds; defaults to a development placeholder otherwise.
var BuildVersion = "v0.0.0-dev"

// biVersion exposes the build version to guest code as `(version)`.
func biVersion(it *eval.Interp, args []value.Value) (value.Value, error) {
	if len(args) != 0 {
		return arityError(0, len(args), "version")
	}
	v := BuildVersion
	if !semver.IsValid(v) {
		v = "v0.0.0-invalid"
	}
	return value.Str(it.Strings.Intern(v)), nil
}
