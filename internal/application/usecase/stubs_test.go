package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/diillson/momcarebot/internal/domain/entity"
)

type stubSheets struct {
	grid  entity.Grid
	err   error
	calls int
}

func (s *stubSheets) ReadSheet(_ context.Context, _ string, _ string) (entity.Grid, error) {
	s.calls++
	return s.grid, s.err
}

type stubExport struct {
	docs  []entity.PlanDocument
	paths []string
	err   error
}

func (s *stubExport) RenderPlanPDF(doc entity.PlanDocument, outPath string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.docs = append(s.docs, doc)
	s.paths = append(s.paths, outPath)
	return outPath, nil
}

type sentDocument struct {
	path    string
	caption string
}

// stubNotifier fails any text starting with one of failPrefixes and, when
// failAll is set, everything.
type stubNotifier struct {
	texts        []string
	documents    []sentDocument
	failPrefixes []string
	failDocs     bool
	failAll      bool
}

var errSendFailed = errors.New("send failed")

func (s *stubNotifier) SendText(_ context.Context, message string) error {
	if s.failAll {
		return errSendFailed
	}
	for _, p := range s.failPrefixes {
		if strings.HasPrefix(message, p) {
			return errSendFailed
		}
	}
	s.texts = append(s.texts, message)
	return nil
}

func (s *stubNotifier) SendDocument(_ context.Context, path string, caption string) error {
	if s.failAll || s.failDocs {
		return errSendFailed
	}
	s.documents = append(s.documents, sentDocument{path: path, caption: caption})
	return nil
}

type stubEvents struct {
	events []entity.Event
	err    error
}

func (s *stubEvents) Append(event entity.Event) error {
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, event)
	return nil
}

func (s *stubEvents) statuses() []string {
	out := make([]string, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, string(e.Status)+" "+e.Message)
	}
	return out
}
