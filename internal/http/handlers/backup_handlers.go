package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/rogerio-castellano/expiry-tracker/internal/backup"
	"github.com/rogerio-castellano/expiry-tracker/internal/repo"
)

// ExportBackupHandler godoc
// @Summary Export a backup
// @Description Downloads the full product set and current settings as a single
// @Description JSON document. The file re-imports losslessly.
// @Tags backup
// @Produce json
// @Success 200 {object} backup.Backup
// @Failure 500 {string} string "Internal error"
// @Router /backup/export [get]
func ExportBackupHandler(w http.ResponseWriter, r *http.Request) {
	products, err := productRepo.GetAll()
	if err != nil {
		http.Error(w, "could not fetch products", http.StatusInternalServerError)
		return
	}

	b := backup.Serialize(products, settingsStore.Get(), time.Now())
	data, err := backup.Marshal(b)
	if err != nil {
		http.Error(w, "could not serialize backup", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("expiry-tracker-backup-%s.json", b.ExportedAt[:10])
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(data)
}

// ImportBackupHandler godoc
// @Summary Import a backup
// @Description Replaces the entire product set and settings with the uploaded
// @Description backup. All records are validated first; on any invalid record
// @Description nothing changes. Hand-edited files with comments or trailing
// @Description commas are accepted.
// @Tags backup
// @Accept json
// @Produce json
// @Success 200 {object} ImportResult
// @Failure 400 {string} string "Invalid backup"
// @Failure 500 {string} string "Internal error"
// @Router /backup/import [post]
func ImportBackupHandler(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 10485760))
	if err != nil {
		http.Error(w, "could not read backup", http.StatusBadRequest)
		return
	}

	b, err := backup.Parse(data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := backup.Restore(b, productRepo); err != nil {
		if errors.Is(err, repo.ErrInvalidProduct) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "could not restore backup", http.StatusInternalServerError)
		return
	}

	if b.Settings != nil {
		settingsStore.Update(*b.Settings)
	}
	// The previous selection referenced ids from the replaced data set.
	selectionMgr.DeselectAll()

	slog.Info("backup imported", "products", len(b.Products), "snapshotId", b.SnapshotID)
	writeJSON(w, http.StatusOK, ImportResult{
		ImportedProductsCount: len(b.Products),
		SnapshotID:            b.SnapshotID,
	})
}

// SnapshotHandler godoc
// @Summary Write a backup snapshot
// @Description Writes a backup to the local snapshot directory and, when an S3
// @Description bucket is configured, uploads a copy there.
// @Tags backup
// @Produce json
// @Success 201 {object} SnapshotResult
// @Failure 500 {string} string "Internal error"
// @Router /backup/snapshot [post]
func SnapshotHandler(w http.ResponseWriter, r *http.Request) {
	products, err := productRepo.GetAll()
	if err != nil {
		http.Error(w, "could not fetch products", http.StatusInternalServerError)
		return
	}

	b := backup.Serialize(products, settingsStore.Get(), time.Now())
	path, err := backupStore.Write(b)
	if err != nil {
		slog.Error("snapshot write failed", "err", err)
		http.Error(w, "could not write snapshot", http.StatusInternalServerError)
		return
	}

	result := SnapshotResult{Path: path}
	if backupUploads != nil {
		key, err := backupUploads.Upload(r.Context(), b)
		if err != nil {
			// The local copy exists; report the partial success.
			slog.Error("snapshot upload failed", "err", err)
		} else {
			result.S3Key = key
		}
	}

	writeJSON(w, http.StatusCreated, result)
}
