package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"github.com/Jen866/cvapp/internal/api"
	"github.com/Jen866/cvapp/internal/config"
	"github.com/Jen866/cvapp/internal/export"
	"github.com/Jen866/cvapp/internal/extract"
	"github.com/Jen866/cvapp/internal/ingestion"
	"github.com/Jen866/cvapp/internal/llm"
)

func main() {
	// A .env file is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	ctx := context.Background()

	// Prefer Gemini when a Google Cloud project is configured, otherwise fall
	// back to the regex extractor so the app still works offline
	var extractor extract.Extractor
	if cfg.GoogleCloudProject != "" {
		llmClient, err := llm.NewVertexAIClient(ctx)
		if err != nil {
			log.Fatalf("Failed to initialize Vertex AI client: %v", err)
		}
		defer llmClient.Close()
		extractor = extract.NewGeminiExtractor(llmClient)
		log.Println("Using Gemini extractor")
	} else {
		extractor = extract.NewHeuristicExtractor()
		log.Println("GOOGLE_CLOUD_PROJECT not set, using heuristic extractor")
	}

	var exporter api.Exporter
	if cfg.ExportSheetID != "" {
		sheetsExporter, err := export.NewSheetsExporter(ctx, cfg.GoogleCredentialsPath, cfg.ExportSheetID)
		if err != nil {
			log.Fatalf("Failed to initialize Sheets exporter: %v", err)
		}
		exporter = sheetsExporter
		log.Printf("Exporting to %s", sheetsExporter.SheetURL())
	} else {
		log.Println("EXPORT_SHEET_ID not set, Google Sheets export disabled")
	}

	service := extract.NewService(extractor)
	files := ingestion.NewFileHandler(cfg.UploadsDir)
	server := api.NewServer(cfg, service, files, exporter)

	fmt.Printf("Starting CV extractor (%s mode) on port %s...\n", cfg.Mode, cfg.Port)
	fmt.Printf("Endpoints:\n")
	fmt.Printf("  GET  /            - Upload page\n")
	fmt.Printf("  POST /upload      - Extract one PDF to a field map\n")
	fmt.Printf("  POST /extract     - Extract up to %d PDFs to rows\n", cfg.MaxFiles)
	fmt.Printf("  POST /export      - Append rows to the configured Google Sheet\n")
	fmt.Printf("  GET  /export.xlsx - Download the last result as XLSX\n")

	if err := http.ListenAndServe(":"+cfg.Port, server.Router()); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
