package controllers

import (
	"encoding/json"
	"net/http"

	"agropos/database"
	"agropos/services"

	"github.com/gorilla/mux"
)

// BackupController обрабатывает запросы резервного копирования
type BackupController struct {
	backupService *services.BackupService
}

// NewBackupController создает новый экземпляр BackupController
func NewBackupController(db *database.Database, hmacKey string) *BackupController {
	return &BackupController{
		backupService: services.NewBackupService(db.DB, hmacKey),
	}
}

// Export обрабатывает запрос на выгрузку подписанной резервной копии
func (c *BackupController) Export(w http.ResponseWriter, r *http.Request) {
	backup, err := c.backupService.Export()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="backup.json"`)
	writeJSON(w, http.StatusOK, backup)
}

// Restore обрабатывает запрос на восстановление из резервной копии.
// Копия с недействительной подписью отклоняется до каких-либо изменений.
func (c *BackupController) Restore(w http.ResponseWriter, r *http.Request) {
	var backup services.SignedBackup
	if err := json.NewDecoder(r.Body).Decode(&backup); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := c.backupService.Restore(backup); err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Восстановление выполнено",
	})
}

// RegisterRoutes регистрирует маршруты контроллера
func (c *BackupController) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/backup", c.Export).Methods("GET")
	router.HandleFunc("/backup/restore", c.Restore).Methods("POST")
}
