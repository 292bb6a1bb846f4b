// routes/backup_handlers.go
package routes

import (
	"log"
	"net/http"
	"path/filepath"

	"github.com/LilVoxy/coursework_marketing/backup"
)

// CreateBackupHandler создает резервную копию справочников по запросу администратора
func CreateBackupHandler(service *backup.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path, err := service.Create()
		if err != nil {
			log.Printf("❌ Ошибка при создании резервной копии: %v", err)
			http.Error(w, "Ошибка при создании резервной копии", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{
			"status": "success",
			"file":   filepath.Base(path),
		})
		log.Printf("✅ Резервная копия создана: %s", filepath.Base(path))
	}
}
