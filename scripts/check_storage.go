package main

import (
	"fmt"
	"log"

	"github.com/KAMEVETRICS/gensyn-portal/internal/config"
	"github.com/KAMEVETRICS/gensyn-portal/internal/storage"
)

// Round-trips a small file through the configured storage backend. Useful
// for verifying credentials and bucket policy before deploying.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := storage.Initialize(cfg); err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	fmt.Printf("Storage provider: %s\n", cfg.Storage.Provider)

	content := []byte("storage check")
	locator, err := storage.Get().Put(content, storage.CategoryArtworks, "check.png", "image/png")
	if err != nil {
		log.Fatalf("Failed to store test file: %v", err)
	}
	fmt.Printf("Stored test file at %s\n", locator)

	if err := storage.Get().Delete(locator); err != nil {
		log.Fatalf("Failed to delete test file: %v", err)
	}
	fmt.Println("Deleted test file")

	fmt.Println("Storage check completed successfully!")
}
