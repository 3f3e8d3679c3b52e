package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"draftforge/internal/metrics"
	"draftforge/internal/util"
	"draftforge/pkg/domain"
	"draftforge/pkg/export"
)

// ExportProject builds the project's office document. Every item must
// have generated content; otherwise the export fails without producing
// a partial file. On success the project is marked completed and, when
// an archive is configured, a copy is uploaded.
func (a *App) ExportProject(ctx context.Context, owner domain.User, projectID string) (export.Result, error) {
	project, err := a.GetProject(owner, projectID)
	if err != nil {
		return export.Result{}, err
	}
	result, err := export.Build(project)
	if err != nil {
		if errors.Is(err, export.ErrIncomplete) {
			metrics.ExportsBuilt.WithLabelValues(string(project.DocumentType), "incomplete").Inc()
			return export.Result{}, fmt.Errorf("%w: %v", ErrExportIncomplete, err)
		}
		metrics.ExportsBuilt.WithLabelValues(string(project.DocumentType), "error").Inc()
		return export.Result{}, fmt.Errorf("build document: %w", err)
	}
	metrics.ExportsBuilt.WithLabelValues(string(project.DocumentType), "ok").Inc()

	if project.Status != domain.StatusCompleted {
		project.Status = domain.StatusCompleted
		if err := a.persistStatus(project); err != nil {
			return export.Result{}, err
		}
	}

	if a.archive != nil {
		key := path.Join("exports", project.ID, fmt.Sprintf("%d-%s", time.Now().UTC().Unix(), result.Filename))
		if err := a.archive.Put(ctx, key, bytes.NewReader(result.Data), int64(len(result.Data)), result.MIMEType); err != nil {
			// The download still succeeds when archiving does not.
			util.LoggerFromContext(ctx).Warn("archive export failed", "project_id", project.ID, "error", err)
		}
	}
	return result, nil
}

// ExportPreview describes the document structure without building it.
type ExportPreview struct {
	ProjectID    string              `json:"projectId"`
	Title        string              `json:"title"`
	DocumentType domain.DocumentType `json:"documentType"`
	Ready        bool                `json:"ready"`
	TotalItems   int                 `json:"totalItems"`
	ItemsWith    int                 `json:"itemsWithContent"`
	Items        []PreviewItem       `json:"items"`
}

// PreviewItem is one entry of the export preview.
type PreviewItem struct {
	ID         string `json:"id"`
	Order      int    `json:"order"`
	Title      string `json:"title"`
	HasContent bool   `json:"hasContent"`
}

// PreviewExport reports which items are ready so clients can show export
// readiness without downloading anything.
func (a *App) PreviewExport(owner domain.User, projectID string) (ExportPreview, error) {
	project, err := a.GetProject(owner, projectID)
	if err != nil {
		return ExportPreview{}, err
	}
	preview := ExportPreview{
		ProjectID:    project.ID,
		Title:        project.Title,
		DocumentType: project.DocumentType,
		TotalItems:   len(project.Items),
	}
	for _, item := range project.Items {
		has := item.HasContent(project.DocumentType)
		if has {
			preview.ItemsWith++
		}
		preview.Items = append(preview.Items, PreviewItem{
			ID:         item.ID,
			Order:      item.Order,
			Title:      item.Title,
			HasContent: has,
		})
	}
	preview.Ready = preview.TotalItems > 0 && preview.ItemsWith == preview.TotalItems
	return preview, nil
}
