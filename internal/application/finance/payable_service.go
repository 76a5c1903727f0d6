package finance

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/finance"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxAttachmentSize caps a single uploaded file
const MaxAttachmentSize = 10 << 20

// AllowedAttachmentTypes is the upload whitelist for payable attachments
var AllowedAttachmentTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"application/pdf": true,
	"text/plain":      true,
	"text/csv":        true,
}

// AttachmentStorage stores attachment files. Implemented by the S3 adapter
// and the in-memory stub.
type AttachmentStorage interface {
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
	DeleteObject(ctx context.Context, storageKey string) error
}

// PayableService provides payable operations. It is also the payables
// fetcher for reports: every read is office scoped and uncached.
type PayableService struct {
	repo      finance.PayableRepository
	storage   AttachmentStorage
	publisher shared.EventPublisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewPayableService creates a new PayableService
func NewPayableService(repo finance.PayableRepository, storage AttachmentStorage, publisher shared.EventPublisher, logger *zap.Logger) *PayableService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PayableService{
		repo:      repo,
		storage:   storage,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// Fetch loads the payables matching filter for the session office
func (s *PayableService) Fetch(ctx context.Context, session shared.Session, filter finance.PayableFilter) ([]finance.Payable, error) {
	if err := session.Validate(); err != nil {
		return nil, err
	}
	items, err := s.repo.FindAllForOffice(ctx, session.OfficeID, filter)
	if err != nil {
		return nil, humanize(ctx, s.logger, err, shared.NewFetchError("payables"))
	}
	return items, nil
}

// List returns a page of payables
func (s *PayableService) List(ctx context.Context, session shared.Session, filter PayableListFilter) ([]PayableResponse, int64, error) {
	domainFilter := finance.PayableFilter{
		ContractID: filter.ContractID,
		Statuses:   toStrings[finance.PayableStatus](filter.Statuses),
		Categories: toStrings[finance.PayableCategory](filter.Categories),
		Types:      toStrings[finance.PayableType](filter.Types),
		FromDate:   filter.FromDate,
		ToDate:     filter.ToDate,
	}
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize

	items, err := s.Fetch(ctx, session, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountForOffice(ctx, session.OfficeID, domainFilter)
	if err != nil {
		return nil, 0, humanize(ctx, s.logger, err, shared.NewFetchError("payables"))
	}

	out := make([]PayableResponse, len(items))
	for i := range items {
		out[i] = *toPayableResponse(&items[i])
	}
	return out, total, nil
}

// Get returns one payable
func (s *PayableService) Get(ctx context.Context, session shared.Session, id uuid.UUID) (*PayableResponse, error) {
	p, err := s.load(ctx, session, id)
	if err != nil {
		return nil, err
	}
	return toPayableResponse(p), nil
}

// Load returns the payable aggregate, used by the receipt printer
func (s *PayableService) Load(ctx context.Context, session shared.Session, id uuid.UUID) (*finance.Payable, error) {
	return s.load(ctx, session, id)
}

func (s *PayableService) load(ctx context.Context, session shared.Session, id uuid.UUID) (*finance.Payable, error) {
	if err := session.Validate(); err != nil {
		return nil, err
	}
	p, err := s.repo.FindByIDForOffice(ctx, session.OfficeID, id)
	if err != nil {
		return nil, humanize(ctx, s.logger, err, shared.NewFetchError("the payable"))
	}
	if p == nil {
		return nil, notFound("Payable")
	}
	return p, nil
}

// Create raises a new payable
func (s *PayableService) Create(ctx context.Context, session shared.Session, req CreatePayableRequest) (*PayableResponse, error) {
	if err := session.Validate(); err != nil {
		return nil, err
	}
	p, err := finance.NewPayable(session.OfficeID, finance.NewPayableInput{
		ContractID: req.ContractID,
		Amount:     req.Amount,
		Category:   finance.PayableCategory(req.Category),
		Type:       finance.PayableType(req.Type),
		DueDate:    req.DueDate,
		Notes:      req.Notes,
	})
	if err != nil {
		return nil, err
	}
	p.SetCreatedBy(session.UserID)

	return s.save(ctx, p, false)
}

// Update edits an open payable
func (s *PayableService) Update(ctx context.Context, session shared.Session, id uuid.UUID, req UpdatePayableRequest) (*PayableResponse, error) {
	p, err := s.load(ctx, session, id)
	if err != nil {
		return nil, err
	}
	if err := p.Update(finance.PayableUpdate{
		Amount:         req.Amount,
		Category:       finance.PayableCategory(req.Category),
		Type:           finance.PayableType(req.Type),
		DueDate:        req.DueDate,
		TransactionRef: req.TransactionRef,
		Notes:          req.Notes,
	}); err != nil {
		return nil, err
	}
	return s.save(ctx, p, true)
}

// MarkPaid settles a payable
func (s *PayableService) MarkPaid(ctx context.Context, session shared.Session, id uuid.UUID, req MarkPaidRequest) (*PayableResponse, error) {
	p, err := s.load(ctx, session, id)
	if err != nil {
		return nil, err
	}
	paidOn := s.now()
	if req.PaymentDate != nil {
		paidOn = *req.PaymentDate
	}
	if err := p.MarkAsPaid(paidOn, finance.PaymentMethod(req.PaymentMethod), req.TransactionRef); err != nil {
		return nil, err
	}
	return s.save(ctx, p, true)
}

// Cancel voids a payable
func (s *PayableService) Cancel(ctx context.Context, session shared.Session, id uuid.UUID, req CancelRequest) (*PayableResponse, error) {
	p, err := s.load(ctx, session, id)
	if err != nil {
		return nil, err
	}
	if err := p.Cancel(req.Reason); err != nil {
		return nil, err
	}
	return s.save(ctx, p, true)
}

// Delete removes a payable and its stored files
func (s *PayableService) Delete(ctx context.Context, session shared.Session, id uuid.UUID) error {
	p, err := s.load(ctx, session, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteForOffice(ctx, session.OfficeID, id); err != nil {
		return humanize(ctx, s.logger, err, shared.NewSaveError("payable"))
	}
	for _, a := range p.Attachments {
		s.deleteObject(ctx, a.URL)
	}
	return nil
}

// AddAttachment stores a file under <office>/<payable>/<unix ms>.<ext> and
// appends it to the payable
func (s *PayableService) AddAttachment(ctx context.Context, session shared.Session, id uuid.UUID, upload AttachmentUpload) (*PayableResponse, error) {
	if s.storage == nil {
		return nil, shared.NewDomainError("STORAGE_UNAVAILABLE", "File uploads are not available right now")
	}
	if len(upload.Data) == 0 {
		return nil, shared.NewDomainError("INVALID_ATTACHMENT", "The uploaded file is empty")
	}
	if len(upload.Data) > MaxAttachmentSize {
		return nil, shared.NewDomainError("INVALID_ATTACHMENT", "Files must be 10 MB or smaller")
	}
	contentType := strings.ToLower(strings.TrimSpace(strings.Split(upload.ContentType, ";")[0]))
	if !AllowedAttachmentTypes[contentType] {
		return nil, shared.NewDomainError("INVALID_ATTACHMENT", "This file type cannot be attached")
	}

	p, err := s.load(ctx, session, id)
	if err != nil {
		return nil, err
	}

	uploadedAt := s.now()
	ext := strings.TrimPrefix(filepath.Ext(upload.Name), ".")
	if ext == "" {
		ext = "bin"
	}
	key := fmt.Sprintf("%s/%s/%d.%s", session.OfficeID, p.ID, uploadedAt.UnixMilli(), ext)

	if err := s.storage.Upload(ctx, key, upload.Data, contentType); err != nil {
		return nil, humanize(ctx, s.logger, err, shared.NewDomainError("UPLOAD_FAILED", "We couldn't upload the file. Please try again"))
	}

	if err := p.AddAttachment(finance.Attachment{
		ID:          uuid.NewString(),
		Name:        filepath.Base(upload.Name),
		URL:         key,
		ContentType: contentType,
		UploadedAt:  uploadedAt,
	}); err != nil {
		s.deleteObject(ctx, key)
		return nil, err
	}

	resp, err := s.save(ctx, p, true)
	if err != nil {
		s.deleteObject(ctx, key)
		return nil, err
	}
	return resp, nil
}

// RemoveAttachment deletes the stored file and drops it from the payable
func (s *PayableService) RemoveAttachment(ctx context.Context, session shared.Session, id uuid.UUID, attachmentID string) (*PayableResponse, error) {
	p, err := s.load(ctx, session, id)
	if err != nil {
		return nil, err
	}
	removed, err := p.RemoveAttachment(attachmentID)
	if err != nil {
		return nil, err
	}
	resp, err := s.save(ctx, p, true)
	if err != nil {
		return nil, err
	}
	s.deleteObject(ctx, removed.URL)
	return resp, nil
}

// AttachmentURL returns a short-lived download link for an attachment
func (s *PayableService) AttachmentURL(ctx context.Context, session shared.Session, id uuid.UUID, attachmentID string) (string, error) {
	if s.storage == nil {
		return "", shared.NewDomainError("STORAGE_UNAVAILABLE", "File downloads are not available right now")
	}
	p, err := s.load(ctx, session, id)
	if err != nil {
		return "", err
	}
	for _, a := range p.Attachments {
		if a.ID == attachmentID {
			url, _, err := s.storage.GenerateDownloadURL(ctx, a.URL, 15*time.Minute)
			if err != nil {
				return "", humanize(ctx, s.logger, err, shared.NewFetchError("the attachment"))
			}
			return url, nil
		}
	}
	return "", notFound("Attachment")
}

func (s *PayableService) save(ctx context.Context, p *finance.Payable, existing bool) (*PayableResponse, error) {
	var err error
	if existing {
		err = s.repo.SaveWithLock(ctx, p)
	} else {
		err = s.repo.Save(ctx, p)
	}
	if err != nil {
		return nil, humanize(ctx, s.logger, err, shared.NewSaveError("payable"))
	}
	publishEvents(ctx, s.logger, s.publisher, p)
	return toPayableResponse(p), nil
}

func (s *PayableService) deleteObject(ctx context.Context, key string) {
	if s.storage == nil || key == "" {
		return
	}
	if err := s.storage.DeleteObject(ctx, key); err != nil {
		s.logger.Warn("failed to delete attachment object", zap.String("key", key), zap.Error(err))
	}
}
