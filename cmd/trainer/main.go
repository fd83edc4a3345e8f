package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"wayfarer/internal/infra"
	"wayfarer/internal/models/db_models"
	"wayfarer/internal/repositories"
	"wayfarer/internal/services"
	"wayfarer/pkg/utils"
)

const embeddingBatchSize = 64

// The trainer rebuilds the per-domain TF-IDF artifacts from the live
// catalog and, with -embed, refreshes the dense vectors used by the
// recommend endpoint. Run it after every catalog import.
func main() {
	embed := flag.Bool("embed", false, "also refresh dense catalog embeddings")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	artifactsDir := os.Getenv("ARTIFACTS_DIR")
	if artifactsDir == "" {
		artifactsDir = "./artifacts"
	}

	db := infra.InitPostgresql()
	defer infra.ClosePostgresql(db)

	ctx := context.Background()
	catalogRepo := repositories.NewCatalogRepository(db)
	items, err := catalogRepo.ListAll(ctx)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	if len(items) == 0 {
		log.Fatal("Catalog is empty, nothing to train on")
	}

	snapshot := services.NewCatalogSnapshot(items)
	log.Printf("Training on catalog snapshot %s (%d items)", snapshot.Version, len(items))

	for _, domain := range db_models.AllDomains {
		entries := snapshot.Domain(domain)
		if len(entries) == 0 {
			log.Printf("Domain %s has no items, skipping", domain)
			continue
		}
		ix := services.BuildDomainIndex(entries, snapshot.Version)
		if err := services.SaveDomainIndex(artifactsDir, domain, ix); err != nil {
			log.Fatalf("Failed to save artifacts for domain %s: %v", domain, err)
		}
		log.Printf("Saved similarity artifacts for domain %s (%d items, %d terms)",
			domain, len(ix.IDMap), len(ix.Vectorizer.IDF))
	}

	if *embed {
		seedEmbeddings(ctx, snapshot, repositories.NewEmbeddingRepository(db))
	}
}

func seedEmbeddings(ctx context.Context, snapshot *services.CatalogSnapshot, embeddingRepo repositories.IEmbeddingRepository) {
	client := newEmbeddingClient()

	var entries []services.CatalogEntry
	for _, domain := range db_models.AllDomains {
		entries = append(entries, snapshot.Domain(domain)...)
	}

	for start := 0; start < len(entries); start += embeddingBatchSize {
		end := start + embeddingBatchSize
		if end > len(entries) {
			end = len(entries)
		}
		batch := entries[start:end]

		texts := make([]string, len(batch))
		for i, e := range batch {
			texts[i] = e.SearchText
		}

		vectors, err := client.GetEmbeddings(ctx, texts)
		if err != nil {
			log.Fatalf("Failed to embed batch starting at %d: %v", start, err)
		}

		for i, e := range batch {
			err := embeddingRepo.UpsertEmbedding(db_models.CatalogEmbedding{
				ItemID:    e.ID,
				Domain:    e.Domain,
				Name:      e.Name,
				City:      e.City,
				Tags:      e.Tags,
				Embedding: vectors[i],
			})
			if err != nil {
				log.Fatalf("Failed to upsert embedding for item %s: %v", e.ID, err)
			}
		}
		log.Printf("Seeded embeddings %d-%d of %d", start+1, end, len(entries))
	}
}

func newEmbeddingClient() utils.EmbeddingClientInterface {
	if os.Getenv("EMBEDDING_PROVIDER") == "gemini" {
		client, err := utils.NewGeminiEmbeddingClient(os.Getenv("GEMINI_API_KEY"), "")
		if err != nil {
			log.Fatalf("Failed to init Gemini embedding client: %v", err)
		}
		return client
	}
	return utils.NewOpenAIEmbeddingClient(os.Getenv("OPENAI_API_KEY"))
}
