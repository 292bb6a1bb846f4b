// routes/report_handlers.go
package routes

import (
	"log"
	"net/http"
	"path/filepath"

	"github.com/LilVoxy/coursework_marketing/reports"
)

// DownloadReportHandler отдает последний сформированный Excel-отчет по продажам
func DownloadReportHandler(service *reports.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path, err := service.LatestReportPath()
		if err != nil {
			log.Printf("❌ Ошибка при поиске отчета: %v", err)
			http.Error(w, "Ошибка при поиске отчета", http.StatusInternalServerError)
			return
		}
		if path == "" {
			http.Error(w, "Отчеты еще не сформированы", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Disposition", "attachment; filename="+filepath.Base(path))
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		http.ServeFile(w, r, path)

		log.Printf("✅ Отчет %s отправлен клиенту", filepath.Base(path))
	}
}
