package document

import (
	"encoding/json"
	"strconv"
	"time"

	domdoc "github.com/kailas-cloud/docfind/internal/domain/document"
)

// Hash field names.
const (
	fieldTitle     = "title"
	fieldBody      = "body"
	fieldTags      = "tags"
	fieldCreatedAt = "created_at"
	fieldFilename  = "filename"
	fieldMimeType  = "mime_type"
	fieldSize      = "size"
)

// buildHashFields converts a domain Document into a flat map[string]string for HSET.
// Tags are stored as a JSON array to keep their order.
func buildHashFields(doc *domdoc.Document) map[string]string {
	tags, _ := json.Marshal(doc.Tags()) // []string always marshals
	att := doc.Attachment()
	return map[string]string{
		fieldTitle:     doc.Title(),
		fieldBody:      doc.Body(),
		fieldTags:      string(tags),
		fieldCreatedAt: doc.CreatedAt().UTC().Format(time.RFC3339Nano),
		fieldFilename:  att.Filename,
		fieldMimeType:  att.MimeType,
		fieldSize:      strconv.FormatInt(att.Size, 10),
	}
}

// parseHashFields converts a flat hash map back into a domain Document.
// Malformed optional fields degrade to zero values instead of failing the read.
func parseHashFields(id string, m map[string]string) domdoc.Document {
	var tags []string
	if raw := m[fieldTags]; raw != "" && raw != "null" {
		if err := json.Unmarshal([]byte(raw), &tags); err != nil {
			tags = nil
		}
	}

	var created time.Time
	if raw := m[fieldCreatedAt]; raw != "" {
		if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			created = t
		}
	}

	size, _ := strconv.ParseInt(m[fieldSize], 10, 64)

	return domdoc.Reconstruct(id, m[fieldTitle], m[fieldBody], tags, created, domdoc.Attachment{
		Filename: m[fieldFilename],
		MimeType: m[fieldMimeType],
		Size:     size,
	})
}
