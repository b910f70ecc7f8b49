package content

import "sort"

// Plan is the minimal set of operations that reconciles the remote container
// with the local directory. It is recomputed on every sync and never
// persisted.
type Plan struct {
	// Uploads are local files that are absent remotely or whose content
	// hash differs from the remote entry.
	Uploads []LocalFile

	// Deletes are remote keys with no corresponding local file.
	Deletes []string
}

// HasChanges reports whether applying the plan would mutate the remote side.
func (p *Plan) HasChanges() bool {
	return len(p.Uploads) > 0 || len(p.Deletes) > 0
}

// Diff computes the sync plan between local files and remote objects.
// Ordering is deterministic (sorted by key) so logs and tests are stable.
func Diff(local []LocalFile, remote []RemoteObject) *Plan {
	remoteByKey := make(map[string]RemoteObject, len(remote))
	for _, obj := range remote {
		remoteByKey[obj.Key] = obj
	}

	localKeys := make(map[string]bool, len(local))
	plan := &Plan{}

	for _, f := range local {
		localKeys[f.Key] = true
		existing, exists := remoteByKey[f.Key]
		if !exists || existing.ETag != f.ETag {
			plan.Uploads = append(plan.Uploads, f)
		}
	}

	for _, obj := range remote {
		if !localKeys[obj.Key] {
			plan.Deletes = append(plan.Deletes, obj.Key)
		}
	}

	sort.Slice(plan.Uploads, func(i, j int) bool { return plan.Uploads[i].Key < plan.Uploads[j].Key })
	sort.Strings(plan.Deletes)

	return plan
}
