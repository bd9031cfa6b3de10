package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/jafarshop/myorders/internal/catalog"
	"github.com/jafarshop/myorders/internal/config"
	"github.com/jafarshop/myorders/internal/service"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/find-product/main.go <ware-id> [ware-id...]")
		fmt.Println("Example: go run cmd/find-product/main.go 5001 5002")
		os.Exit(1)
	}

	wareIDs := make([]int64, 0, len(os.Args)-1)
	for _, arg := range os.Args[1:] {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid ware id %q\n", arg)
			os.Exit(1)
		}
		wareIDs = append(wareIDs, id)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	client := catalog.NewClient(cfg.Catalog, nil, logger)
	enricher := service.NewCatalogEnricher(client, nil, logger)

	fmt.Printf("🔍 Looking up %d ware id(s): %s\n\n", len(wareIDs), catalog.WareIDFilter(wareIDs))

	products := enricher.Enrich(context.Background(), wareIDs, len(wareIDs))

	missing := 0
	for _, id := range wareIDs {
		product, ok := products.Lookup(id)
		if !ok {
			fmt.Printf("❌ %d: not in the catalog index, order lines fall back to ERP data\n", id)
			missing++
			continue
		}

		fmt.Printf("✅ %d: %s\n", id, product.Title)
		fmt.Printf("  Product ID: %s\n", product.ID)
		fmt.Printf("  Brand: %s\n", product.TrademarkName)
		fmt.Printf("  UPC: %s\n", product.UPC)
		if image := product.DefaultImage(); image != nil {
			fmt.Printf("  Default image: %s\n", *image)
		} else {
			fmt.Printf("  Default image: none (no image with display order 1)\n")
		}
	}

	if missing > 0 {
		os.Exit(1)
	}
}
