package backup

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"fintrack/internal/services/storage"
	"fintrack/internal/version"
)

var store *storage.Store

// Initialize sets up the backup package with required dependencies
func Initialize(s *storage.Store) {
	store = s
}

// RegisterRoutes registers health and backup routes
func RegisterRoutes(r chi.Router) {
	r.Get("/api/health", HandleHealth)
	r.Get("/api/backup", HandleBackup)
	r.Post("/api/restore", HandleRestore)
}

func HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"version": version.Get(),
	})
}

// HandleBackup streams all stored documents as a zip archive. Documents
// are written decrypted for portability.
func HandleBackup(w http.ResponseWriter, r *http.Request) {
	keys, err := store.Keys()
	if err != nil {
		http.Error(w, "Error listing data: "+err.Error(), http.StatusInternalServerError)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("fintrack_backup_%s.zip", timestamp)

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	zw := zip.NewWriter(w)
	defer zw.Close()

	for _, key := range keys {
		data, err := store.Read(key)
		if err != nil {
			log.Printf("Error reading %q for backup: %v", key, err)
			continue
		}

		f, err := zw.Create(key + ".json")
		if err != nil {
			log.Printf("Error creating backup entry %q: %v", key, err)
			return
		}
		if _, err := f.Write(data); err != nil {
			log.Printf("Error writing backup entry %q: %v", key, err)
			return
		}
	}
}

// HandleRestore replaces stored documents with the entries of an
// uploaded backup zip.
func HandleRestore(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(50 << 20); err != nil {
		http.Error(w, "File too large", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Error reading file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "Error reading upload", http.StatusBadRequest)
		return
	}

	zr, err := zip.NewReader(strings.NewReader(string(data)), int64(len(data)))
	if err != nil {
		http.Error(w, "Invalid backup archive", http.StatusBadRequest)
		return
	}

	restored := 0
	for _, entry := range zr.File {
		name := filepath.Base(entry.Name)
		if !strings.HasSuffix(name, ".json") {
			continue
		}
		key := strings.TrimSuffix(name, ".json")

		rc, err := entry.Open()
		if err != nil {
			http.Error(w, "Error reading archive entry: "+err.Error(), http.StatusBadRequest)
			return
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			http.Error(w, "Error reading archive entry: "+err.Error(), http.StatusBadRequest)
			return
		}

		if err := store.Write(key, content); err != nil {
			http.Error(w, "Error restoring "+key+": "+err.Error(), http.StatusInternalServerError)
			return
		}
		restored++
	}

	log.Printf("Restored %d documents from %s", restored, header.Filename)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":   "ok",
		"restored": restored,
		"note":     "restart the server to load the restored data",
	})
}
