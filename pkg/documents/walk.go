package documents

import "fmt"

// ReferenceType names the id namespace a planner reference points into.
type ReferenceType string

// Reference types, matching the field names that carry them.
const (
	ReferenceAim   ReferenceType = "aimId"
	ReferenceMicro ReferenceType = "microId"
)

// Reference is one id reference found inside a PlannerBundle, together with
// the dotted path of the field holding it.
type Reference struct {
	// Type tells which of Aim or Micro is set.
	Type ReferenceType

	// Aim is the referenced aim id when Type is ReferenceAim.
	Aim AimID

	// Micro is the referenced micro id when Type is ReferenceMicro.
	Micro MicroID

	// Path locates the reference inside the document, for example
	// "projects[0].paths[1].slices[2].callouts.positiveEffects[0]".
	Path string
}

// ID returns the referenced id as a plain string.
func (r Reference) ID() string {
	if r.Type == ReferenceMicro {
		return string(r.Micro)
	}
	return string(r.Aim)
}

// CollectMicroIDs walks a Hierarchy document's pillars, their subs, and
// their micros, returning every micro id in document order. Duplicates are
// kept; deduplication is the reconciler's concern.
func CollectMicroIDs(body map[string]any) []MicroID {
	var ids []MicroID
	for _, pillar := range asSlice(body["pillars"]) {
		for _, sub := range asSlice(asMap(pillar)["subs"]) {
			for _, micro := range asSlice(asMap(sub)["micros"]) {
				if id, ok := asMap(micro)["id"].(string); ok {
					ids = append(ids, MicroID(id))
				}
			}
		}
	}
	return ids
}

// CollectPlannerRefs walks a PlannerBundle's projects, their paths, and
// their slices, returning every outbound reference in document order. Per
// slice that order is positive callouts, negative callouts, then the dod
// micro list. Fields that are absent or not strings contribute nothing.
func CollectPlannerRefs(body map[string]any) []Reference {
	var refs []Reference
	for i, project := range asSlice(body["projects"]) {
		for j, path := range asSlice(asMap(project)["paths"]) {
			for k, slice := range asSlice(asMap(path)["slices"]) {
				at := fmt.Sprintf("projects[%d].paths[%d].slices[%d]", i, j, k)
				s := asMap(slice)

				callouts := asMap(s["callouts"])
				refs = appendAimRefs(refs, asSlice(callouts["positiveEffects"]), at+".callouts.positiveEffects")
				refs = appendAimRefs(refs, asSlice(callouts["negativeEffects"]), at+".callouts.negativeEffects")

				for n, v := range asSlice(asMap(s["dod"])["includesMicros"]) {
					id, ok := v.(string)
					if !ok {
						continue
					}
					refs = append(refs, Reference{
						Type:  ReferenceMicro,
						Micro: MicroID(id),
						Path:  fmt.Sprintf("%s.dod.includesMicros[%d]", at, n),
					})
				}
			}
		}
	}
	return refs
}

// appendAimRefs collects the aimId of every effect in one callout list.
func appendAimRefs(refs []Reference, effects []any, at string) []Reference {
	for n, effect := range effects {
		id, ok := asMap(effect)["aimId"].(string)
		if !ok {
			continue
		}
		refs = append(refs, Reference{
			Type: ReferenceAim,
			Aim:  AimID(id),
			Path: fmt.Sprintf("%s[%d]", at, n),
		})
	}
	return refs
}
