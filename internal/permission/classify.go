package permission

import (
	"strings"

	"cliprobe/internal/tools"
)

// conflictMarkers must all appear in the diagnostic text for a failure to count
// as a root/permission conflict. Matching is case-insensitive.
var conflictMarkers = []string{"dangerously-skip-permissions", "root"}

// ClassifyFailure maps the stderr of a failed run to a failure kind: a
// permission conflict when every conflict marker is present, otherwise a plain
// non-zero exit.
func ClassifyFailure(stderr string) tools.ErrorKind {
	s := strings.ToLower(stderr)
	for _, m := range conflictMarkers {
		if !strings.Contains(s, m) {
			return tools.KindNonZeroExit
		}
	}
	return tools.KindPermissionConflict
}
