// SPDX-License-Identifier: MPL-2.0

package lesson

import (
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// SchemaVersion is the lesson layout version this build reads. Files may
// declare meta.schema_version; any version matching ^SchemaVersion is accepted.
const SchemaVersion = "1.0.0"

// ErrIncompatibleSchemaVersion is returned when meta.schema_version is outside
// the supported range.
var ErrIncompatibleSchemaVersion = errors.New("incompatible schema version")

var schemaConstraint = mustConstraint("^" + SchemaVersion)

func mustConstraint(c string) *semver.Constraints {
	constraint, err := semver.NewConstraint(c)
	if err != nil {
		panic(fmt.Sprintf("invalid schema version constraint %q: %v", c, err))
	}
	return constraint
}

// CheckSchemaVersion validates a declared schema version. An empty version is
// treated as compatible because the field is optional.
func CheckSchemaVersion(declared string) error {
	if declared == "" {
		return nil
	}
	v, err := semver.NewVersion(declared)
	if err != nil {
		return fmt.Errorf("%w: %q is not a semantic version: %w", ErrIncompatibleSchemaVersion, declared, err)
	}
	if !schemaConstraint.Check(v) {
		return fmt.Errorf("%w: %s does not satisfy ^%s", ErrIncompatibleSchemaVersion, v, SchemaVersion)
	}
	return nil
}
