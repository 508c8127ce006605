package web

import (
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/caixalabs/caixa2alterdata/internal/domain/engine"
)

const maxUploadBytes = 64 << 20

// viewData feeds the index template.
type viewData struct {
	Error     string
	Summary   *engine.Summary
	Issues    []engine.Issue
	Downloads map[string]string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, viewData{})
}

// handleConvert receives the uploaded spreadsheets, runs the pipeline in a
// fresh session directory and renders the summary with download links. The
// upload directory is removed as soon as the run finishes; the output
// directory lives until the sweeper collects it.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.render(w, viewData{Error: "Falha no envio dos arquivos."})
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		s.render(w, viewData{Error: "Nenhum arquivo selecionado. Por favor, escolha uma ou mais planilhas."})
		return
	}

	session := uuid.NewString()
	uploadPath := filepath.Join(s.cfg.UploadDir, session)
	outputPath := filepath.Join(s.cfg.OutputDir, session)
	for _, dir := range []string{uploadPath, outputPath} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			s.serverError(w, "creating session directory", err)
			return
		}
	}
	defer os.RemoveAll(uploadPath)

	for _, header := range files {
		if err := saveUpload(header, uploadPath); err != nil {
			s.serverError(w, "saving upload", err)
			return
		}
	}

	result, err := s.runner.Run(uploadPath, outputPath)
	if err != nil {
		s.serverError(w, "running pipeline", err)
		return
	}

	uploadsTotal.Inc()
	rowsExported.Add(float64(result.Summary.RowsExported))
	if result.Summary.HasIssues {
		runsWithIssues.Inc()
	}

	downloads := make(map[string]string, len(result.Summary.Outputs))
	for key, path := range result.Summary.Outputs {
		downloads[key] = fmt.Sprintf("/download/%s/%s", session, filepath.Base(path))
	}

	s.logger.Info("upload processed",
		slog.String("session", session),
		slog.Int("files", result.Summary.FilesFound),
		slog.Int("rows", result.Summary.RowsExported),
	)
	s.render(w, viewData{
		Summary:   &result.Summary,
		Issues:    result.Issues,
		Downloads: downloads,
	})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	session := chi.URLParam(r, "session")
	filename := chi.URLParam(r, "filename")

	if _, err := uuid.Parse(session); err != nil {
		http.NotFound(w, r)
		return
	}
	if filename == "" || filename != filepath.Base(filename) {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(s.cfg.OutputDir, session, filename)
	if _, err := os.Stat(path); err != nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	http.ServeFile(w, r, path)
}

func (s *Server) render(w http.ResponseWriter, data viewData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		s.logger.Error("rendering template", slog.Any("error", err))
	}
}

func (s *Server) serverError(w http.ResponseWriter, msg string, err error) {
	s.logger.Error(msg, slog.Any("error", err))
	s.render(w, viewData{Error: "Erro interno ao processar as planilhas."})
}

// saveUpload writes one uploaded file into the session upload directory,
// keeping only the base of the client-supplied name.
func saveUpload(header *multipart.FileHeader, dir string) error {
	name := filepath.Base(strings.ReplaceAll(header.Filename, "\\", "/"))
	if name == "." || name == ".." || name == "" {
		return fmt.Errorf("invalid file name %q", header.Filename)
	}

	src, err := header.Open()
	if err != nil {
		return fmt.Errorf("opening upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	return nil
}
