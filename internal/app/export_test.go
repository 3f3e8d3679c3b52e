package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"draftforge/pkg/domain"
)

// recordingArchive captures uploads for assertions.
type recordingArchive struct {
	keys []string
	fail bool
}

func (r *recordingArchive) Put(_ context.Context, key string, reader io.Reader, _ int64, _ string) error {
	if r.fail {
		return errors.New("archive unavailable")
	}
	_, _ = io.Copy(io.Discard, reader)
	r.keys = append(r.keys, key)
	return nil
}

func (r *recordingArchive) PresignGet(context.Context, string, time.Duration) (string, error) {
	return "", errors.New("not implemented")
}

func (r *recordingArchive) Delete(context.Context, string) error { return nil }

func TestExportEmptyProjectFails(t *testing.T) {
	a := newTestApp(t, nil)
	owner := registerTestUser(t, a, "a@x.com")
	project := createWordProject(t, a, owner)

	_, err := a.ExportProject(context.Background(), owner, project.ID)
	if !errors.Is(err, ErrExportIncomplete) {
		t.Fatalf("expected ErrExportIncomplete, got %v", err)
	}
}

func TestExportPartialProjectFails(t *testing.T) {
	gen := &scriptGenerator{outputs: []string{"Only the first section."}}
	a := newTestApp(t, gen)
	owner := registerTestUser(t, a, "a@x.com")
	project := createWordProject(t, a, owner)
	project, _ = a.UpdateProject(owner, project.ID, ProjectPatch{Items: itemsTitled("Intro", "Body")})
	fillItem(t, a, owner, project, project.Items[0].ID)

	_, err := a.ExportProject(context.Background(), owner, project.ID)
	if !errors.Is(err, ErrExportIncomplete) {
		t.Fatalf("expected ErrExportIncomplete, got %v", err)
	}
	// A failed export never marks the project completed.
	reloaded, _ := a.GetProject(owner, project.ID)
	if reloaded.Status == domain.StatusCompleted {
		t.Fatal("incomplete project must not be completed")
	}
}

func TestExportCompleteProject(t *testing.T) {
	gen := &scriptGenerator{outputs: []string{"Full section text."}}
	a := newTestApp(t, gen)
	archive := &recordingArchive{}
	a.archive = archive
	owner := registerTestUser(t, a, "a@x.com")
	project := createWordProject(t, a, owner)
	project, _ = a.UpdateProject(owner, project.ID, ProjectPatch{Items: itemsTitled("Intro")})
	fillItem(t, a, owner, project, project.Items[0].ID)

	result, err := a.ExportProject(context.Background(), owner, project.ID)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if result.Filename != "Q1 Report.docx" {
		t.Fatalf("filename = %q", result.Filename)
	}
	if !bytes.HasPrefix(result.Data, []byte("PK")) {
		t.Fatal("expected zip container magic")
	}
	reloaded, _ := a.GetProject(owner, project.ID)
	if reloaded.Status != domain.StatusCompleted {
		t.Fatalf("status = %q, want completed", reloaded.Status)
	}
	if len(archive.keys) != 1 || !strings.HasPrefix(archive.keys[0], "exports/"+project.ID+"/") {
		t.Fatalf("archive keys = %v", archive.keys)
	}
}

func TestExportSucceedsWhenArchiveFails(t *testing.T) {
	gen := &scriptGenerator{outputs: []string{"Full section text."}}
	a := newTestApp(t, gen)
	a.archive = &recordingArchive{fail: true}
	owner := registerTestUser(t, a, "a@x.com")
	project := createWordProject(t, a, owner)
	project, _ = a.UpdateProject(owner, project.ID, ProjectPatch{Items: itemsTitled("Intro")})
	fillItem(t, a, owner, project, project.Items[0].ID)

	if _, err := a.ExportProject(context.Background(), owner, project.ID); err != nil {
		t.Fatalf("export should survive archive outage: %v", err)
	}
}

func TestPreviewExportCounts(t *testing.T) {
	gen := &scriptGenerator{outputs: []string{"Section text."}}
	a := newTestApp(t, gen)
	owner := registerTestUser(t, a, "a@x.com")
	project := createWordProject(t, a, owner)
	project, _ = a.UpdateProject(owner, project.ID, ProjectPatch{Items: itemsTitled("Intro", "Body")})
	fillItem(t, a, owner, project, project.Items[0].ID)

	preview, err := a.PreviewExport(owner, project.ID)
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if preview.Ready {
		t.Fatal("half-filled project must not be ready")
	}
	if preview.TotalItems != 2 || preview.ItemsWith != 1 {
		t.Fatalf("counts = %d/%d, want 1 of 2", preview.ItemsWith, preview.TotalItems)
	}
	if !preview.Items[0].HasContent || preview.Items[1].HasContent {
		t.Fatalf("per-item flags wrong: %+v", preview.Items)
	}
}
