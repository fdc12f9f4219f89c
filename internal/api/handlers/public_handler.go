package handlers

import (
	"fmt"
	"log"
	"net/http"
)

// PublicHandlerFunc は動作確認用の公開エンドポイントです。
// GET /api/public
func PublicHandlerFunc(w http.ResponseWriter, r *http.Request) {
	log.Println("Request to public endpoint: /api/public")
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintf(w, "Salnameh backend is running. (From /api/public)")
}
