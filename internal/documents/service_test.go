package documents

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"tprm-backend/internal/shared/storage/object/local"
)

func newTestService(t *testing.T) (*Service, *MemoryRepo) {
	t.Helper()
	repo := NewMemoryRepo()
	return &Service{Store: local.New(t.TempDir()), Repo: repo}, repo
}

func TestServiceUpload(t *testing.T) {
	svc, _ := newTestService(t)

	doc, err := svc.Upload(context.Background(), "vendor-1", "soc2.txt", TypeSOC2, bytes.NewReader([]byte("soc2 report body")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.ID == "" || doc.StorageKey == "" {
		t.Fatalf("identity/storage missing: %+v", doc)
	}
	if doc.AnalysisStatus != StatusNotAnalyzed {
		t.Fatalf("status = %s, want Not Analyzed", doc.AnalysisStatus)
	}
	if doc.SizeBytes != int64(len("soc2 report body")) {
		t.Fatalf("sizeBytes = %d", doc.SizeBytes)
	}

	stored, err := svc.Get(context.Background(), doc.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.FileName != "soc2.txt" || stored.DocumentType != TypeSOC2 {
		t.Fatalf("stored = %+v", stored)
	}
}

func TestServiceUploadValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Upload(ctx, "", "a.txt", TypeGeneral, bytes.NewReader(nil)); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("missing vendor: expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Upload(ctx, "vendor-1", "a.txt", "Resume", bytes.NewReader(nil)); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unknown type: expected ErrInvalidInput, got %v", err)
	}
}

func TestServiceUploadRejectsUnsupportedFiles(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name     string
		fileName string
		content  []byte
	}{
		{"executable extension", "malware.exe", []byte{0x4d, 0x5a, 0x90, 0x00, 0x03, 0x00}},
		{"content does not match extension", "report.pdf", []byte("plain text pretending to be a pdf")},
		{"empty file", "empty.txt", nil},
		{"file name too long", strings.Repeat("a", 300) + ".txt", []byte("body")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Upload(ctx, "vendor-1", tc.fileName, TypeGeneral, bytes.NewReader(tc.content)); !errors.Is(err, ErrUnsupportedFile) {
				t.Fatalf("expected ErrUnsupportedFile, got %v", err)
			}
		})
	}
}

func TestServiceUploadAcceptsKnownFormats(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	var zipBuf bytes.Buffer
	zw := zip.NewWriter(&zipBuf)
	if _, err := zw.Create("word/document.xml"); err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	cases := []struct {
		fileName string
		content  []byte
	}{
		{"scan.pdf", []byte("%PDF-1.4\n1 0 obj\n")},
		{"policy.docx", zipBuf.Bytes()},
		{"notes.txt", []byte("plain notes")},
	}

	for _, tc := range cases {
		doc, err := svc.Upload(ctx, "vendor-1", tc.fileName, TypeGeneral, bytes.NewReader(tc.content))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.fileName, err)
		}
		if doc.SizeBytes != int64(len(tc.content)) {
			t.Fatalf("%s: sizeBytes = %d, want %d", tc.fileName, doc.SizeBytes, len(tc.content))
		}
	}
}

func TestServiceUploadDefaultsType(t *testing.T) {
	svc, _ := newTestService(t)

	doc, err := svc.Upload(context.Background(), "vendor-1", "misc.txt", "", bytes.NewReader([]byte("text")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.DocumentType != TypeGeneral {
		t.Fatalf("type = %s, want General", doc.DocumentType)
	}
}

func TestServiceDelete(t *testing.T) {
	svc, _ := newTestService(t)

	doc, err := svc.Upload(context.Background(), "vendor-1", "a.txt", TypeGeneral, bytes.NewReader([]byte("x")))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if err := svc.Delete(context.Background(), doc.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(context.Background(), doc.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestMemoryRepoStatusTransitions(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	doc := Document{ID: "doc-1", VendorID: "vendor-1", FileName: "a.txt", AnalysisStatus: StatusNotAnalyzed}
	if err := repo.Create(ctx, doc); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := repo.UpdateStatus(ctx, "doc-1", StatusAnalyzing); err != nil {
		t.Fatalf("update status: %v", err)
	}
	if err := repo.UpdateAnalysis(ctx, "doc-1", StatusCompleted, 55, "Medium", []string{"gap"}, []string{"fix"}); err != nil {
		t.Fatalf("update analysis: %v", err)
	}

	got, err := repo.GetByID(ctx, "doc-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.AnalysisStatus != StatusCompleted || got.RiskScore == nil || *got.RiskScore != 55 {
		t.Fatalf("analysis not persisted: %+v", got)
	}

	if err := repo.UpdateStatus(ctx, "missing", StatusFailed); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
