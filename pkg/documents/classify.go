package documents

import (
	"strings"

	"github.com/agentstation/blueprint/pkg/constants"
)

// kindTags maps each version-tag prefix to its kind. Version tags are
// matched case-insensitively by prefix so revisions such as "aimtable.v2"
// still classify.
var kindTags = []struct {
	prefix string
	kind   Kind
}{
	{constants.AimTableTag, KindAimTable},
	{constants.HierarchyTag, KindHierarchy},
	{constants.PlannerTag, KindPlannerBundle},
}

// kindKeywords maps file-name substrings to kinds for documents without a
// recognizable version tag. Checked in order, first match wins.
var kindKeywords = []struct {
	keyword string
	kind    Kind
}{
	{"aim", KindAimTable},
	{"hierarchy", KindHierarchy},
	{"planner", KindPlannerBundle},
}

// Classify determines a document's kind. The embedded version tag is
// authoritative when it matches a known prefix; otherwise the file name is
// consulted for a kind keyword. Documents that match neither are
// KindUnknown, never an error.
func Classify(body map[string]any, name string) Kind {
	if version := strings.ToLower(strings.TrimSpace(Version(body))); version != "" {
		for _, t := range kindTags {
			if strings.HasPrefix(version, t.prefix) {
				return t.kind
			}
		}
	}

	lower := strings.ToLower(name)
	for _, k := range kindKeywords {
		if strings.Contains(lower, k.keyword) {
			return k.kind
		}
	}
	return KindUnknown
}
