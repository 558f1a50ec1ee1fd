package chi

import "time"

// ErrorCode is a machine-readable error code in error responses.
type ErrorCode string

// Error codes.
const (
	CodeBadRequest            ErrorCode = "bad_request"
	CodeValidationFailed      ErrorCode = "validation_failed"
	CodeQuerySyntaxError      ErrorCode = "query_syntax_error"
	CodeDocumentNotFound      ErrorCode = "document_not_found"
	CodeDocumentAlreadyExists ErrorCode = "document_already_exists"
	CodeUnauthorized          ErrorCode = "unauthorized"
	CodeNotFound              ErrorCode = "not_found"
	CodeMethodNotAllowed      ErrorCode = "method_not_allowed"
	CodeTimeout               ErrorCode = "timeout"
	CodeInternalError         ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
// Position and Token are set for query syntax errors only.
type ErrorResponse struct {
	Code     ErrorCode `json:"code"`
	Message  string    `json:"message"`
	Position *int      `json:"position,omitempty"`
	Token    *string   `json:"token,omitempty"`
}

// DocumentRequest creates a document. An empty ID is generated server-side.
type DocumentRequest struct {
	ID        string     `json:"id,omitempty"`
	Title     string     `json:"title"`
	Body      string     `json:"body,omitempty"`
	Tags      []string   `json:"tags,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	Filename  string     `json:"filename,omitempty"`
	MimeType  string     `json:"mime_type,omitempty"`
	Size      int64      `json:"size,omitempty"`
}

// DocumentResponse is a stored document.
type DocumentResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	Filename  string    `json:"filename,omitempty"`
	MimeType  string    `json:"mime_type,omitempty"`
	Size      int64     `json:"size,omitempty"`
}

// ImportRequest upserts many documents at once.
type ImportRequest struct {
	Documents []DocumentRequest `json:"documents"`
}

// ImportResponse lists the stored IDs in request order.
type ImportResponse struct {
	Imported int      `json:"imported"`
	IDs      []string `json:"ids"`
}

// PatchRequest partially updates a document. Omitted fields are unchanged.
type PatchRequest struct {
	Title *string   `json:"title,omitempty"`
	Body  *string   `json:"body,omitempty"`
	Tags  *[]string `json:"tags,omitempty"`
}

// BodyRequest replaces a document's OCR body.
type BodyRequest struct {
	Body string `json:"body"`
}

// Highlight is a matched span in original-text byte offsets.
type Highlight struct {
	Field string `json:"field"`
	Index int    `json:"index"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text"`
}

// SearchHit is one ranked match.
type SearchHit struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	Tags       []string    `json:"tags"`
	CreatedAt  time.Time   `json:"created_at"`
	Filename   string      `json:"filename,omitempty"`
	Score      float64     `json:"score"`
	Highlights []Highlight `json:"highlights"`
}

// SearchResponse is one page of results.
type SearchResponse struct {
	Query         string      `json:"query"`
	Sort          string      `json:"sort"`
	Items         []SearchHit `json:"items"`
	Page          int         `json:"page"`
	PageSize      int         `json:"page_size"`
	TotalPages    int         `json:"total_pages"`
	TotalItems    int         `json:"total_items"`
	RequestedPage int         `json:"requested_page"`
	Clamped       bool        `json:"clamped"`
	HasNext       bool        `json:"has_next"`
	HasPrev       bool        `json:"has_prev"`
}

// Suggestion is a completion candidate.
type Suggestion struct {
	Text string `json:"text"`
	Kind string `json:"kind"`
}

// SuggestionListResponse wraps suggestions.
type SuggestionListResponse struct {
	Items []Suggestion `json:"items"`
}

// HistoryEntry is a recorded search.
type HistoryEntry struct {
	Query string    `json:"query"`
	Hits  int       `json:"hits"`
	At    time.Time `json:"at"`
}

// HistoryListResponse wraps history entries, newest first.
type HistoryListResponse struct {
	Items []HistoryEntry `json:"items"`
}

// StatsResponse summarizes the corpus.
type StatsResponse struct {
	TotalDocuments int   `json:"total_documents"`
	PageSize       int   `json:"page_size"`
	TotalPages     int   `json:"total_pages"`
	SearchesToday  int64 `json:"searches_today"`
}

// HealthResponse reports component health.
type HealthResponse struct {
	Status        string             `json:"status"`
	Checks        map[string]string  `json:"checks"`
	LatencyMS     map[string]float64 `json:"latency_ms"`
	Documents     int                `json:"documents"`
	SearchesToday int64              `json:"searches_today"`
}
