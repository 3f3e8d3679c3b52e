// Package export serializes finished projects into office documents.
package export

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"baliance.com/gooxml/document"
	"baliance.com/gooxml/presentation"

	"draftforge/pkg/domain"
)

const (
	mimeWord  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeSlide = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
)

// ErrIncomplete is returned when a content item has no generated content.
// Export is all-or-nothing; partial documents are never produced.
var ErrIncomplete = fmt.Errorf("project has items without generated content")

// Result is a rendered document ready for download.
type Result struct {
	Data     []byte
	MIMEType string
	Filename string
}

// Build renders the project into its binary office format.
func Build(project domain.Project) (Result, error) {
	items := append([]domain.ContentItem(nil), project.Items...)
	sort.Slice(items, func(i, j int) bool { return items[i].Order < items[j].Order })
	if len(items) == 0 {
		return Result{}, fmt.Errorf("no content items: %w", ErrIncomplete)
	}
	for _, item := range items {
		if !item.HasContent(project.DocumentType) {
			return Result{}, fmt.Errorf("item %q: %w", item.Title, ErrIncomplete)
		}
	}

	var (
		data []byte
		mime string
		err  error
	)
	switch project.DocumentType {
	case domain.DocTypeSlide:
		data, err = buildPresentation(project, items)
		mime = mimeSlide
	default:
		data, err = buildDocument(project, items)
		mime = mimeWord
	}
	if err != nil {
		return Result{}, err
	}
	return Result{
		Data:     data,
		MIMEType: mime,
		Filename: fmt.Sprintf("%s.%s", safeFilename(project.Title), project.DocumentType),
	}, nil
}

func buildDocument(project domain.Project, items []domain.ContentItem) ([]byte, error) {
	doc := document.New()

	title := doc.AddParagraph()
	title.SetStyle("Title")
	title.AddRun().AddText(project.Title)

	if strings.TrimSpace(project.Description) != "" {
		doc.AddParagraph().AddRun().AddText(project.Description)
	}

	for _, item := range items {
		heading := doc.AddParagraph()
		heading.SetStyle("Heading1")
		heading.AddRun().AddText(item.Title)
		for _, para := range splitParagraphs(item.Text) {
			doc.AddParagraph().AddRun().AddText(para)
		}
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}
	return buf.Bytes(), nil
}

func buildPresentation(project domain.Project, items []domain.ContentItem) ([]byte, error) {
	ppt := presentation.New()

	cover := ppt.AddSlide()
	coverBox := cover.AddTextBox()
	coverBox.AddParagraph().AddRun().SetText(project.Title)
	subtitle := strings.TrimSpace(project.Description)
	if subtitle == "" {
		subtitle = "A presentation about " + project.Topic
	}
	coverBox.AddParagraph().AddRun().SetText(subtitle)

	for _, item := range items {
		slide := ppt.AddSlide()
		titleBox := slide.AddTextBox()
		titleBox.AddParagraph().AddRun().SetText(item.Title)
		bodyBox := slide.AddTextBox()
		for _, bullet := range item.Bullets {
			bodyBox.AddParagraph().AddRun().SetText(bullet)
		}
	}

	var buf bytes.Buffer
	if err := ppt.Save(&buf); err != nil {
		return nil, fmt.Errorf("save presentation: %w", err)
	}
	return buf.Bytes(), nil
}

func splitParagraphs(text string) []string {
	parts := strings.Split(text, "\n\n")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// safeFilename strips characters that break Content-Disposition headers.
func safeFilename(title string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	name := strings.TrimSpace(b.String())
	if name == "" {
		name = "Document"
	}
	return name
}
