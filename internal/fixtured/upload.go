package fixtured

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/iamaray/fixturegen/pkg/fixture"
	"github.com/iamaray/fixturegen/pkg/fixture/httpx"
)

const uploadBufferSize = 1 << 20

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.catalog.maxUploadBytes)

	mr, err := r.MultipartReader()
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return nil
	}

	part, err := filePart(mr)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return nil
	}
	defer part.Close()

	m, err := s.catalog.StoreUpload(part, part.FileName())
	if err != nil {
		switch {
		case errors.Is(err, fixture.ErrNotCSV):
			httpx.Error(w, http.StatusUnsupportedMediaType, err.Error())
		case errors.Is(err, fixture.ErrUploadEmpty):
			httpx.Error(w, http.StatusBadRequest, err.Error())
		case isMaxBytesError(err):
			httpx.Error(w, http.StatusRequestEntityTooLarge, "upload exceeds size limit")
		default:
			return err
		}
		return nil
	}

	httpx.JSON(w, http.StatusCreated, m)
	return nil
}

// filePart scans the multipart stream for the "file" field
func filePart(mr *multipart.Reader) (*multipart.Part, error) {
	for {
		p, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, fixture.ErrNoFilePart
		}
		if err != nil {
			return nil, err
		}

		if p.FormName() == "file" {
			return p, nil
		}
		_ = p.Close()
	}
}

// StoreUpload streams one uploaded file into the fixture tree and catalogs
// it. The file lands under a dated directory via a temp path rename, so a
// failed upload leaves no partial file behind.
func (c *Catalog) StoreUpload(src io.Reader, filename string) (*fixture.Manifest, error) {
	id := uuid.New().String()
	now := time.Now()

	dir := filepath.Join(c.uploadDir, now.Format("2006"), now.Format("01"))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}

	tmpPath := filepath.Join(dir, id+".csv.part")
	finalPath := strings.TrimSuffix(tmpPath, ".part")

	dst, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", tmpPath, err)
	}
	defer func() {
		dst.Close()
		if _, statErr := os.Stat(finalPath); os.IsNotExist(statErr) {
			_ = os.Remove(tmpPath)
		}
	}()

	bufWriter := bufio.NewWriterSize(dst, uploadBufferSize)

	// Sniff the content type from the first 512 bytes before committing
	// anything to disk
	head := make([]byte, 512)
	nHead, _ := io.ReadFull(src, head)
	head = head[:nHead]

	contentType := http.DetectContentType(pad512(head))
	mediaType := contentType
	if mt, _, err := mime.ParseMediaType(contentType); err == nil {
		mediaType = mt
	}
	if !isAllowedCSV(mediaType, filename) {
		return nil, fmt.Errorf("%w: %s (%s)", fixture.ErrNotCSV, filename, contentType)
	}

	h := sha256.New()
	mw := io.MultiWriter(bufWriter, h)

	var written int64
	if nHead > 0 {
		if _, err := mw.Write(head); err != nil {
			return nil, fmt.Errorf("write %s: %w", tmpPath, err)
		}
		written += int64(nHead)
	}

	n, err := io.Copy(mw, src)
	written += n
	if err != nil {
		return nil, fmt.Errorf("write %s: %w", tmpPath, err)
	}

	if written == 0 {
		return nil, fixture.ErrUploadEmpty
	}

	if err := bufWriter.Flush(); err != nil {
		return nil, fmt.Errorf("flush %s: %w", tmpPath, err)
	}
	if err := dst.Close(); err != nil {
		return nil, fmt.Errorf("close %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, finalPath); err != nil {
		return nil, fmt.Errorf("rename %s: %w", tmpPath, err)
	}

	m := &fixture.Manifest{
		ID:          id,
		Filename:    filepath.Base(filename),
		StoredPath:  finalPath,
		Bytes:       written,
		SHA256:      hex.EncodeToString(h.Sum(nil)),
		ContentType: contentType,
		Source:      fixture.SourceUploaded,
		CreatedAt:   now,
		Status:      fixture.StatusOK,
	}

	if err := c.SaveFixture(m); err != nil {
		os.Remove(finalPath)
		return nil, err
	}

	slog.Info("fixture uploaded", "id", id, "filename", m.Filename,
		"size", humanize.Bytes(uint64(written)), "sha256", m.SHA256[:12])

	return m, nil
}

// pad512 pads the sniff buffer so short files still classify consistently
func pad512(b []byte) []byte {
	if len(b) >= 512 {
		return b[:512]
	}
	tmp := make([]byte, 512)
	copy(tmp, b)
	return tmp
}

// isAllowedCSV accepts the media types CSV payloads commonly sniff as, and
// requires a .csv extension. The caller strips mime parameters first.
func isAllowedCSV(mediaType, filename string) bool {
	switch mediaType {
	case "text/csv", "application/vnd.ms-excel", "text/plain", "application/octet-stream":
	default:
		return false
	}
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".csv"
}

// isMaxBytesError reports whether err came from http.MaxBytesReader
func isMaxBytesError(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
