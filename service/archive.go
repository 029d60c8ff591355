package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/klauspost/compress/zip"
	"github.com/ncobase/calcgate/logging/logger"
	"github.com/ncobase/calcgate/workspace"
)

// ArchiveService packages the output of a calculation.
type ArchiveService struct {
	ws     *workspace.Workspace
	logger *logger.Logger
}

// NewArchiveService creates a new archive service.
func NewArchiveService(ws *workspace.Workspace, logger *logger.Logger) *ArchiveService {
	return &ArchiveService{ws: ws, logger: logger}
}

// FileName returns the download name of the archive of id.
func (s *ArchiveService) FileName(id string) string {
	return fmt.Sprintf("model-calculation-%s.zip", id)
}

// Exists reports whether id has a directory to archive.
func (s *ArchiveService) Exists(id string) bool {
	if !workspace.ValidName(id) {
		return false
	}
	info, err := os.Stat(s.ws.Dir(id))
	return err == nil && info.IsDir()
}

// Write streams a zip of the directory of id to w. Configuration documents
// (*.json) are left out; paths are relative to the calculation directory.
func (s *ArchiveService) Write(ctx context.Context, id string, w io.Writer) error {
	if !s.Exists(id) {
		return ErrNotFound
	}

	objects, err := s.ws.List(id)
	if err != nil {
		return err
	}

	zw := zip.NewWriter(w)
	for _, obj := range objects {
		if err := ctx.Err(); err != nil {
			return err
		}
		if strings.EqualFold(path.Ext(obj.Name), ".json") {
			continue
		}
		if err := s.add(zw, id, obj.Path); err != nil {
			return fmt.Errorf("archive %s: %w", obj.Path, err)
		}
	}
	return zw.Close()
}

func (s *ArchiveService) add(zw *zip.Writer, id, rel string) error {
	src, err := s.ws.GetStream(path.Join(id, rel))
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := zw.Create(rel)
	if err != nil {
		return err
	}
	_, err = io.Copy(dst, src)
	return err
}
