package view

import (
	"context"
	"io"

	"docuflow/internal/domain"
	"docuflow/internal/state"
)

// uploadForm is the validated metadata of the upload dialog.
type uploadForm struct {
	Name   string                `validate:"required"`
	Status domain.DocumentStatus `validate:"required"`
}

// UploadDialog is the modal form that uploads a file plus metadata. The file
// is always uploaded as DRAFT; when the chosen status is READY_FOR_REVIEW a
// follow-up send-to-review call promotes it, and that call's failure is
// reported separately from an upload failure. The dialog closes with
// refresh=true only when the whole flow succeeded.
type UploadDialog struct {
	api    DocumentAPI
	toast  domain.Notifier
	logger domain.Logger
	close  func(refresh bool)

	form     uploadForm
	filename string
	file     io.Reader
	loading  *state.Cell[bool]
}

// NewUploadDialog creates the dialog. onClose receives true when the caller
// should refresh its listing.
func NewUploadDialog(api DocumentAPI, toast domain.Notifier, logger domain.Logger, onClose func(refresh bool)) *UploadDialog {
	return &UploadDialog{
		api:     api,
		toast:   toast,
		logger:  logger,
		close:   onClose,
		form:    uploadForm{Status: domain.StatusDraft},
		loading: state.NewCell(false),
	}
}

// SetName sets the document name field.
func (d *UploadDialog) SetName(name string) {
	d.form.Name = name
}

// SetStatus sets the requested initial status.
func (d *UploadDialog) SetStatus(status domain.DocumentStatus) {
	d.form.Status = status
}

// OnFileSelected records the chosen file. No size or type validation beyond
// what the picker exposes.
func (d *UploadDialog) OnFileSelected(filename string, file io.Reader) {
	d.filename = filename
	d.file = file
}

// Cancel closes the dialog without uploading.
func (d *UploadDialog) Cancel() {
	d.close(false)
}

// Submit validates the form and runs the upload flow. An invalid form or a
// missing file blocks submission silently, matching the disabled-submit gate
// of the original dialog.
func (d *UploadDialog) Submit(ctx context.Context) {
	if err := validate.Struct(d.form); err != nil || d.file == nil {
		return
	}

	d.loading.Set(true)
	defer d.loading.Set(false)

	doc, err := d.api.UploadDocument(ctx, d.form.Name, domain.StatusDraft, d.filename, d.file)
	if err != nil {
		d.logger.Error("Upload failed", err, "name", d.form.Name)
		d.toast.Show("File upload failed", domain.NotifyError)
		return
	}

	if d.form.Status == domain.StatusReadyForReview {
		if err := d.api.SendToReview(ctx, doc.ID); err != nil {
			d.toast.Show("Failed to send document to review", domain.NotifyError)
			return
		}
		d.toast.Show("Document sent to review successfully", domain.NotifySuccess)
		d.close(true)
		return
	}

	d.toast.Show("File uploaded successfully", domain.NotifySuccess)
	d.close(true)
}

// Loading reports whether a submit is in flight.
func (d *UploadDialog) Loading() bool {
	return d.loading.Get()
}
