package content

import "testing"

func TestDiff_UploadsModifiedAndNew_DeletesOrphans(t *testing.T) {
	local := []LocalFile{
		{Key: "b", ETag: "b-modified"},
		{Key: "c", ETag: "c-hash"},
	}
	remote := []RemoteObject{
		{Key: "a", ETag: "a-hash"},
		{Key: "b", ETag: "b-hash"},
	}

	plan := Diff(local, remote)

	if len(plan.Uploads) != 2 {
		t.Fatalf("expected 2 uploads, got %d", len(plan.Uploads))
	}
	if plan.Uploads[0].Key != "b" || plan.Uploads[1].Key != "c" {
		t.Errorf("expected uploads [b c], got [%s %s]", plan.Uploads[0].Key, plan.Uploads[1].Key)
	}
	if len(plan.Deletes) != 1 || plan.Deletes[0] != "a" {
		t.Errorf("expected deletes [a], got %v", plan.Deletes)
	}
	if !plan.HasChanges() {
		t.Error("expected HasChanges to be true")
	}
}

func TestDiff_IdenticalSides_NoChanges(t *testing.T) {
	local := []LocalFile{
		{Key: "index.html", ETag: "h1"},
		{Key: "css/site.css", ETag: "h2"},
	}
	remote := []RemoteObject{
		{Key: "css/site.css", ETag: "h2"},
		{Key: "index.html", ETag: "h1"},
	}

	plan := Diff(local, remote)

	if plan.HasChanges() {
		t.Errorf("expected no changes, got uploads=%d deletes=%d", len(plan.Uploads), len(plan.Deletes))
	}
}

func TestDiff_EmptyRemote_UploadsEverything(t *testing.T) {
	local := []LocalFile{
		{Key: "index.html", ETag: "h1"},
	}

	plan := Diff(local, nil)

	if len(plan.Uploads) != 1 || len(plan.Deletes) != 0 {
		t.Errorf("expected 1 upload and 0 deletes, got %d/%d", len(plan.Uploads), len(plan.Deletes))
	}
}

func TestDiff_EmptyLocal_DeletesEverything(t *testing.T) {
	remote := []RemoteObject{
		{Key: "old.html", ETag: "h1"},
		{Key: "gone.js", ETag: "h2"},
	}

	plan := Diff(nil, remote)

	if len(plan.Uploads) != 0 || len(plan.Deletes) != 2 {
		t.Errorf("expected 0 uploads and 2 deletes, got %d/%d", len(plan.Uploads), len(plan.Deletes))
	}
	if plan.Deletes[0] != "gone.js" || plan.Deletes[1] != "old.html" {
		t.Errorf("expected sorted deletes [gone.js old.html], got %v", plan.Deletes)
	}
}
