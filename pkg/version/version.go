// Package version owns semantic-version parsing, comparison and the bump/set
// transitions used by the pack lifecycle. Versions are canonical
// MAJOR.MINOR.REVISION triples with no pre-release or build-metadata suffixes.
package version

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	goversion "github.com/hashicorp/go-version"

	"github.com/gocortexio/spellbook/pkg/errors"
)

// Default is the version assigned to packs that have never been released.
const Default = "1.0.0"

var versionPattern = regexp.MustCompile(`^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)$`)

// Kind selects which component a bump advances.
type Kind string

// Supported bump kinds.
const (
	KindRevision Kind = "revision"
	KindMinor    Kind = "minor"
	KindMajor    Kind = "major"
)

// Version is a semantic version triple.
type Version struct {
	Major    int
	Minor    int
	Revision int
}

// Parse parses a canonical MAJOR.MINOR.REVISION string. Leading zeros,
// pre-release suffixes and build metadata are rejected.
func Parse(text string) (Version, error) {
	m := versionPattern.FindStringSubmatch(text)
	if m == nil {
		return Version{}, errors.Wrapf(ErrInvalidFormat, "%q", text)
	}
	major, _ := strconv.Atoi(m[1])
	minor, _ := strconv.Atoi(m[2])
	revision, _ := strconv.Atoi(m[3])
	return Version{Major: major, Minor: minor, Revision: revision}, nil
}

// MustParse parses a version string and panics on failure. For use with
// literals in tests and defaults.
func MustParse(text string) Version {
	v, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return v
}

// String formats the version as MAJOR.MINOR.REVISION.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Revision)
}

// Compare returns -1, 0 or 1 ordering v against other by major, then minor,
// then revision.
func (v Version) Compare(other Version) int {
	if v.Major != other.Major {
		return compareInt(v.Major, other.Major)
	}
	if v.Minor != other.Minor {
		return compareInt(v.Minor, other.Minor)
	}
	return compareInt(v.Revision, other.Revision)
}

// Less reports whether v orders before other.
func (v Version) Less(other Version) bool { return v.Compare(other) < 0 }

// Equal reports whether v and other are the same version.
func (v Version) Equal(other Version) bool { return v.Compare(other) == 0 }

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Bump returns the next version for the given kind. A major bump resets minor
// and revision, a minor bump resets revision.
func Bump(current Version, kind Kind) Version {
	switch kind {
	case KindMajor:
		return Version{Major: current.Major + 1}
	case KindMinor:
		return Version{Major: current.Major, Minor: current.Minor + 1}
	default:
		return Version{Major: current.Major, Minor: current.Minor, Revision: current.Revision + 1}
	}
}

// Set validates an explicit version change. Regressions are rejected unless
// force is set; pack authors may legitimately need to correct a premature bump.
func Set(current, target Version, force bool) (Version, error) {
	if target.Less(current) && !force {
		return Version{}, errors.Wrapf(ErrRegression,
			"%s is lower than current %s (use --force to override)", target, current)
	}
	return target, nil
}

// Latest returns the highest of the given versions. The second return is
// false when the slice is empty.
func Latest(versions []Version) (Version, bool) {
	if len(versions) == 0 {
		return Version{}, false
	}
	latest := versions[0]
	for _, v := range versions[1:] {
		if latest.Less(v) {
			latest = v
		}
	}
	return latest, true
}

// CheckConstraint reports whether v satisfies a go-version constraint
// expression such as ">= 1.2.0, < 2.0.0".
func CheckConstraint(v Version, constraint string) (bool, error) {
	c, err := goversion.NewConstraint(constraint)
	if err != nil {
		return false, errors.Wrapf(ErrInvalidConstraint, "%q: %v", constraint, err)
	}
	gv, err := goversion.NewVersion(v.String())
	if err != nil {
		return false, errors.Wrapf(ErrInvalidFormat, "%q", v.String())
	}
	return c.Check(gv), nil
}

// ValidateConstraint checks that a constraint expression parses.
func ValidateConstraint(constraint string) error {
	if _, err := goversion.NewConstraint(constraint); err != nil {
		return errors.Wrapf(ErrInvalidConstraint, "%q: %v", constraint, err)
	}
	return nil
}

// TagName formats the version-control tag for a pack release. Downstream
// release automation matches this exact pattern.
func TagName(packName string, v Version) string {
	return fmt.Sprintf("%s-v%s", packName, v)
}

// ParseTag extracts the version from a tag belonging to the given pack.
// Tags for other packs or with non-canonical versions return false.
func ParseTag(tag, packName string) (Version, bool) {
	prefix := packName + "-v"
	if !strings.HasPrefix(tag, prefix) {
		return Version{}, false
	}
	v, err := Parse(strings.TrimPrefix(tag, prefix))
	if err != nil {
		return Version{}, false
	}
	return v, true
}

// LatestTag returns the highest version among tags matching the pack's tag
// pattern, sorted with go-version semantics. The second return is false when
// no tag matches.
func LatestTag(tags []string, packName string) (Version, bool) {
	var collection goversion.Collection
	for _, tag := range tags {
		v, ok := ParseTag(tag, packName)
		if !ok {
			continue
		}
		gv, err := goversion.NewVersion(v.String())
		if err != nil {
			continue
		}
		collection = append(collection, gv)
	}
	if len(collection) == 0 {
		return Version{}, false
	}
	sort.Sort(collection)
	return MustParse(collection[len(collection)-1].String()), true
}
