package apiclient

import (
	"context"
	"io"
	"net/url"
)

const documentEndpoint = "pdf"

// DocumentService exposes the backend's PDF document resource.
type DocumentService struct {
	client *Client
}

func NewDocumentService(client *Client) *DocumentService {
	return &DocumentService{client: client}
}

// Upload sends the document as a multipart request: a "file" part plus
// a "secondary_file_name" form field carrying the display title.
func (s *DocumentService) Upload(ctx context.Context, filename string, file io.Reader, displayTitle string) (Response, error) {
	fields := map[string]string{
		"secondary_file_name": displayTitle,
	}
	return s.client.Upload(ctx, documentEndpoint, fields, "file", filename, file)
}

func (s *DocumentService) ListDocuments(ctx context.Context) (Response, error) {
	return s.client.Get(ctx, documentEndpoint, nil)
}

// Document fetches one document together with its table of contents.
func (s *DocumentService) Document(ctx context.Context, documentID string) (Response, error) {
	return s.client.Get(ctx, documentEndpoint+"/"+documentID, nil)
}

func (s *DocumentService) DocumentContent(ctx context.Context, documentID string, subsection string) (Response, error) {
	return s.client.Get(ctx, documentEndpoint+"/"+documentID+"/"+subsection, nil)
}

func (s *DocumentService) UpdateTitle(ctx context.Context, documentID string, title string) (Response, error) {
	params := url.Values{"title": {title}}
	return s.client.Patch(ctx, documentEndpoint+"/"+documentID, params)
}

func (s *DocumentService) DeleteDocument(ctx context.Context, documentID string) (Response, error) {
	return s.client.Delete(ctx, documentEndpoint+"/"+documentID)
}
