package service

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"path"
	"strings"

	"github.com/google/uuid"

	"qalib/internal/config"
	"qalib/internal/docsource"
	"qalib/internal/domain"
	"qalib/internal/filler"
	"qalib/internal/loader"
	"qalib/internal/port"
)

// FillInput is the DTO for single template fill requests.
type FillInput struct {
	Template      []byte
	TemplateName  string
	Data          io.Reader
	DataFormat    domain.DataFormat
	CoerceNumbers bool
	Store         bool
}

// FillOutput carries the filled document and, when stored, its artifact.
type FillOutput struct {
	Result   *filler.Result
	Artifact *domain.StoredArtifact
}

// BatchFillInput is the DTO for multi-job batch fill requests. Source is a
// DOCX document holding one or more job blocks.
type BatchFillInput struct {
	Template  []byte
	Source    []byte
	SingleJob bool
	Store     bool
}

// BatchFillOutput carries the ZIP of filled documents.
type BatchFillOutput struct {
	ZIP      []byte
	Count    int
	Names    []string
	Artifact *domain.StoredArtifact
}

// ArtifactOutput carries a stored document fetched back from object storage.
type ArtifactOutput struct {
	Bytes       []byte
	ContentType string
}

// FillService defines the template filling contract.
type FillService interface {
	Fill(ctx context.Context, input FillInput) (*FillOutput, error)
	FillBatch(ctx context.Context, input BatchFillInput) (*BatchFillOutput, error)
	Artifact(ctx context.Context, key string) (*ArtifactOutput, error)
}

type fillService struct {
	storage port.ObjectStorage
	cfg     *config.Config
}

// NewFillService creates a new FillService implementation. storage may be
// nil when artifact storage is disabled.
func NewFillService(storage port.ObjectStorage, cfg *config.Config) FillService {
	return &fillService{storage: storage, cfg: cfg}
}

func (s *fillService) Fill(ctx context.Context, input FillInput) (*FillOutput, error) {
	if err := s.checkSize(int64(len(input.Template))); err != nil {
		return nil, err
	}

	record, err := loader.Load(input.Data, input.DataFormat)
	if err != nil {
		return nil, fmt.Errorf("fill.Load: %w", err)
	}

	result, err := filler.FillWithOptions(input.Template, record, filler.Options{
		CoerceNumbers: input.CoerceNumbers,
	})
	if err != nil {
		return nil, fmt.Errorf("fill.Fill: %w", err)
	}

	out := &FillOutput{Result: result}
	if input.Store {
		artifact, err := s.store(ctx, result.Bytes, result.ContentType, string(result.Format))
		if err != nil {
			return nil, err
		}
		out.Artifact = artifact
	}
	return out, nil
}

func (s *fillService) FillBatch(ctx context.Context, input BatchFillInput) (*BatchFillOutput, error) {
	if err := s.checkSize(int64(len(input.Template)) + int64(len(input.Source))); err != nil {
		return nil, err
	}

	format, err := filler.DetectFormat(input.Template)
	if err != nil {
		return nil, fmt.Errorf("fill.FillBatch: %w", err)
	}

	paras, err := docsource.Paragraphs(input.Source)
	if err != nil {
		return nil, fmt.Errorf("fill.FillBatch: %w", err)
	}
	blocks, err := docsource.SliceJobs(paras, input.SingleJob)
	if err != nil {
		return nil, fmt.Errorf("fill.FillBatch: %w", err)
	}

	var (
		buf   bytes.Buffer
		names []string
	)
	zw := zip.NewWriter(&buf)
	used := map[string]int{}
	for _, block := range blocks {
		result, err := filler.Fill(input.Template, block.FlatRecord())
		if err != nil {
			return nil, fmt.Errorf("fill.FillBatch %q: %w", block.Title, err)
		}

		name := entryName(block.Title, string(format), used)
		names = append(names, name)

		w, err := zw.Create(name)
		if err != nil {
			return nil, fmt.Errorf("fill.FillBatch zip entry: %w", err)
		}
		if _, err := w.Write(result.Bytes); err != nil {
			return nil, fmt.Errorf("fill.FillBatch zip write: %w", err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("fill.FillBatch zip close: %w", err)
	}

	log.Printf("service.FillService: batch filled %d jobs", len(blocks))

	out := &BatchFillOutput{ZIP: buf.Bytes(), Count: len(blocks), Names: names}
	if input.Store {
		artifact, err := s.store(ctx, out.ZIP, domain.ContentTypeZIP, "zip")
		if err != nil {
			return nil, err
		}
		out.Artifact = artifact
	}
	return out, nil
}

// Artifact fetches a previously stored fill result straight from object
// storage, for callers that cannot follow presigned URLs. Keys outside the
// fills/ prefix are rejected.
func (s *fillService) Artifact(ctx context.Context, key string) (*ArtifactOutput, error) {
	if s.storage == nil || !s.cfg.Storage.Enabled() {
		return nil, fmt.Errorf("%w: artifact storage is not configured", domain.ErrStoreFailed)
	}
	if !strings.HasPrefix(key, "fills/") || strings.Contains(key, "..") {
		return nil, fmt.Errorf("%w: invalid artifact key %q", domain.ErrParse, key)
	}

	data, err := s.storage.Download(ctx, s.cfg.Storage.Bucket, key)
	if err != nil {
		return nil, fmt.Errorf("%w: downloading %s: %v", domain.ErrStoreFailed, key, err)
	}
	return &ArtifactOutput{Bytes: data, ContentType: artifactContentType(key)}, nil
}

// artifactContentType maps a stored key's extension back to its MIME type.
func artifactContentType(key string) string {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(key)), ".")
	if ext == "zip" {
		return domain.ContentTypeZIP
	}
	if ct, ok := domain.TemplateContentTypes[domain.TemplateFormat(ext)]; ok {
		return ct
	}
	return "application/octet-stream"
}

func (s *fillService) checkSize(size int64) error {
	maxBytes := s.cfg.Limits.MaxUploadMB * 1024 * 1024
	if maxBytes > 0 && size > maxBytes {
		return fmt.Errorf("%w: %d bytes exceeds %dMB limit", domain.ErrFileTooLarge, size, s.cfg.Limits.MaxUploadMB)
	}
	return nil
}

func (s *fillService) store(ctx context.Context, data []byte, contentType, ext string) (*domain.StoredArtifact, error) {
	if s.storage == nil || !s.cfg.Storage.Enabled() {
		return nil, fmt.Errorf("%w: artifact storage is not configured", domain.ErrStoreFailed)
	}

	key := fmt.Sprintf("fills/%s.%s", uuid.New().String(), ext)
	_, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Storage.Bucket,
		Key:         key,
		Body:        bytes.NewReader(data),
		ContentType: contentType,
		Size:        int64(len(data)),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreFailed, err)
	}

	url, err := s.storage.GetPresignedURL(ctx, s.cfg.Storage.Bucket, key, s.cfg.Storage.PresignExpiry)
	if err != nil {
		// Do not leave an orphaned object behind a failed presign.
		if delErr := s.storage.Delete(ctx, s.cfg.Storage.Bucket, key); delErr != nil {
			log.Printf("service.FillService: cleanup of %s failed: %v", key, delErr)
		}
		return nil, fmt.Errorf("%w: presigning: %v", domain.ErrStoreFailed, err)
	}

	return &domain.StoredArtifact{
		Bucket:      s.cfg.Storage.Bucket,
		Key:         key,
		ContentType: contentType,
		Size:        int64(len(data)),
		DownloadURL: url,
	}, nil
}

// entryName builds a safe, unique ZIP entry name from a job title.
func entryName(title, ext string, used map[string]int) string {
	base := strings.TrimSpace(title)
	base = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '-'
		}
		return r
	}, base)
	if base == "" {
		base = "job"
	}
	used[base]++
	if n := used[base]; n > 1 {
		return fmt.Sprintf("%s (%d).%s", base, n, ext)
	}
	return base + "." + ext
}
