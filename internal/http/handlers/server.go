package handlers

import (
	"github.com/rogerio-castellano/expiry-tracker/internal/alerts"
	"github.com/rogerio-castellano/expiry-tracker/internal/backup"
	"github.com/rogerio-castellano/expiry-tracker/internal/repo"
	"github.com/rogerio-castellano/expiry-tracker/internal/selection"
	"github.com/rogerio-castellano/expiry-tracker/internal/settings"
)

var (
	productRepo   repo.ProductRepository
	settingsStore *settings.Store
	selectionMgr  *selection.Manager
	notifier      *alerts.Notifier
	backupStore   *backup.LocalStore
	backupUploads *backup.S3Uploader
)

func SetProductRepo(r repo.ProductRepository) {
	productRepo = r
}

func SetSettingsStore(s *settings.Store) {
	settingsStore = s
}

func SetSelectionManager(m *selection.Manager) {
	selectionMgr = m
}

func SetNotifier(n *alerts.Notifier) {
	notifier = n
}

func SetBackupStore(s *backup.LocalStore) {
	backupStore = s
}

func SetBackupUploader(u *backup.S3Uploader) {
	backupUploads = u
}
