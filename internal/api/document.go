package api

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"docuflow/internal/domain"
	apperrors "docuflow/pkg/errors"
)

const documentPath = apiPrefix + "/document"

// ListDocuments fetches one page of documents. Absent filters are omitted
// from the request rather than sent as empty values.
func (c *Client) ListDocuments(ctx context.Context, q domain.ListQuery) (*domain.DocumentListResponse, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(q.Page))
	query.Set("size", strconv.Itoa(q.Size))
	if q.Sort != "" {
		query.Set("sort", q.Sort)
	}
	if q.Status != "" {
		query.Set("status", string(q.Status))
	}
	if q.CreatorID != "" {
		query.Set("creatorId", q.CreatorID)
	}
	if q.CreatorEmail != "" {
		query.Set("creatorEmail", q.CreatorEmail)
	}

	req, err := c.newRequest(ctx, http.MethodGet, documentPath, query, nil, "")
	if err != nil {
		return nil, err
	}
	var resp domain.DocumentListResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetDocument fetches a single document by id.
func (c *Client) GetDocument(ctx context.Context, id string) (*domain.Document, error) {
	var doc domain.Document
	if err := c.doJSON(ctx, http.MethodGet, documentPath+"/"+id, nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// UploadDocument uploads a file plus metadata as a multipart form and returns
// the created document.
func (c *Client) UploadDocument(ctx context.Context, name string, status domain.DocumentStatus, filename string, file io.Reader) (*domain.Document, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build upload form", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, apperrors.NewInternalError("failed to read upload file", err)
	}
	if err := writer.WriteField("name", name); err != nil {
		return nil, apperrors.NewInternalError("failed to build upload form", err)
	}
	if err := writer.WriteField("status", string(status)); err != nil {
		return nil, apperrors.NewInternalError("failed to build upload form", err)
	}
	if err := writer.Close(); err != nil {
		return nil, apperrors.NewInternalError("failed to build upload form", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, documentPath, nil, &body, writer.FormDataContentType())
	if err != nil {
		return nil, err
	}
	var doc domain.Document
	if err := c.do(req, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// RenameDocument updates a document's name. Name is the only mutable field.
func (c *Client) RenameDocument(ctx context.Context, id, name string) error {
	payload := map[string]string{"name": name}
	return c.doJSON(ctx, http.MethodPatch, documentPath+"/"+id, payload, nil)
}

// DeleteDocument removes a document. The backend rejects deletes outside
// DRAFT/REVOKE or by non-creators; the client does not pre-check.
func (c *Client) DeleteDocument(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, documentPath+"/"+id, nil, nil)
}

// SendToReview moves a DRAFT document into READY_FOR_REVIEW.
func (c *Client) SendToReview(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodPost, documentPath+"/"+id+"/send-to-review", nil, nil)
}

// RevokeReview pulls a READY_FOR_REVIEW document back from review.
func (c *Client) RevokeReview(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodPost, documentPath+"/"+id+"/revoke-review", nil, nil)
}

// ChangeStatus applies a reviewer status transition. Transition legality is
// enforced server-side.
func (c *Client) ChangeStatus(ctx context.Context, id string, status domain.DocumentStatus) error {
	payload := map[string]domain.DocumentStatus{"status": status}
	return c.doJSON(ctx, http.MethodPost, documentPath+"/"+id+"/change-status", payload, nil)
}
