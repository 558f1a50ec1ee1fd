package chi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/kailas-cloud/docfind/internal/domain"
	domdoc "github.com/kailas-cloud/docfind/internal/domain/document"
	"github.com/kailas-cloud/docfind/internal/domain/document/patch"
	documentuc "github.com/kailas-cloud/docfind/internal/usecase/document"
)

// CreateDocument handles POST /api/v1/documents.
func (s *Server) CreateDocument(w http.ResponseWriter, r *http.Request) {
	var req DocumentRequest
	if !decodeJSON(w, r, maxDocumentBody, &req) {
		return
	}

	doc, err := s.documents.Create(r.Context(), inputFromRequest(req))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/v1/documents/"+doc.ID())
	writeJSON(w, http.StatusCreated, documentToResponse(&doc))
}

// ImportDocuments handles POST /api/v1/documents/import.
func (s *Server) ImportDocuments(w http.ResponseWriter, r *http.Request) {
	var req ImportRequest
	if !decodeJSON(w, r, maxImportBody, &req) {
		return
	}

	ins := make([]documentuc.Input, len(req.Documents))
	for i, d := range req.Documents {
		ins[i] = inputFromRequest(d)
	}

	docs, err := s.documents.Import(r.Context(), ins)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	ids := make([]string, len(docs))
	for i := range docs {
		ids[i] = docs[i].ID()
	}
	writeJSON(w, http.StatusOK, ImportResponse{Imported: len(ids), IDs: ids})
}

// GetDocument handles GET /api/v1/documents/{id}.
func (s *Server) GetDocument(w http.ResponseWriter, r *http.Request) {
	id, err := bindDocumentID(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	doc, err := s.documents.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, documentToResponse(&doc))
}

// UpdateDocumentBody handles PUT /api/v1/documents/{id}/body.
func (s *Server) UpdateDocumentBody(w http.ResponseWriter, r *http.Request) {
	id, err := bindDocumentID(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	var req BodyRequest
	if !decodeJSON(w, r, maxDocumentBody, &req) {
		return
	}

	doc, err := s.documents.UpdateBody(r.Context(), id, req.Body)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, documentToResponse(&doc))
}

// PatchDocument handles PATCH /api/v1/documents/{id}.
func (s *Server) PatchDocument(w http.ResponseWriter, r *http.Request) {
	id, err := bindDocumentID(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	var req PatchRequest
	if !decodeJSON(w, r, maxDocumentBody, &req) {
		return
	}

	p, err := patch.New(req.Title, req.Body, req.Tags)
	if err != nil {
		s.handleDomainError(w, r, fmt.Errorf("%w: %w", domain.ErrInvalidDocument, err))
		return
	}

	doc, err := s.documents.Patch(r.Context(), id, p)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, documentToResponse(&doc))
}

// DeleteDocument handles DELETE /api/v1/documents/{id}.
func (s *Server) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	id, err := bindDocumentID(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	if err := s.documents.Delete(r.Context(), id); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func inputFromRequest(req DocumentRequest) documentuc.Input {
	var created time.Time
	if req.CreatedAt != nil {
		created = *req.CreatedAt
	}
	return documentuc.Input{
		ID:        req.ID,
		Title:     req.Title,
		Body:      req.Body,
		Tags:      req.Tags,
		CreatedAt: created,
		Attachment: domdoc.Attachment{
			Filename: req.Filename,
			MimeType: req.MimeType,
			Size:     req.Size,
		},
	}
}

func documentToResponse(doc *domdoc.Document) DocumentResponse {
	tags := doc.Tags()
	if tags == nil {
		tags = []string{}
	}
	att := doc.Attachment()
	return DocumentResponse{
		ID:        doc.ID(),
		Title:     doc.Title(),
		Body:      doc.Body(),
		Tags:      tags,
		CreatedAt: doc.CreatedAt(),
		Filename:  att.Filename,
		MimeType:  att.MimeType,
		Size:      att.Size,
	}
}
