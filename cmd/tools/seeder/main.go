// Seeder prepares a data directory for a fresh register: demo catalog,
// default settings and the admin account. Running it against an existing
// directory is safe unless -reset is given.
package main

import (
	"flag"
	"log"

	"github.com/shopspring/decimal"

	"github.com/ploychompoo03/management-market/internal/catalog"
	"github.com/ploychompoo03/management-market/internal/settings"
	"github.com/ploychompoo03/management-market/internal/store"
	"github.com/ploychompoo03/management-market/internal/user"
)

func main() {
	var (
		dataDir = flag.String("data-dir", "data", "data directory to seed")
		vatRate = flag.Int64("vat", 7, "VAT rate percent to write into settings")
		shop    = flag.String("shop", "ระฆังทอง", "shop name to write into settings")
		reset   = flag.Bool("reset", false, "clear existing slots before seeding")
	)
	flag.Parse()

	fileStore, err := store.NewFileStore(*dataDir)
	if err != nil {
		log.Fatalf("open data dir: %v", err)
	}

	if *reset {
		for _, key := range []string{store.KeyProducts, store.KeyCategories, store.KeyUsers, store.KeySettings, store.KeySales, store.KeyCheckout, store.KeyEvents} {
			if err := fileStore.Delete(key); err != nil {
				log.Fatalf("clear %s: %v", key, err)
			}
		}
	}

	catalogRepo := &catalog.Repository{S: fileStore}
	items, err := catalogRepo.Load()
	if err != nil {
		log.Fatalf("seed catalog: %v", err)
	}
	log.Printf("catalog: %d products", len(items))

	categories, err := catalogRepo.LoadCategories()
	if err != nil {
		log.Fatalf("seed categories: %v", err)
	}
	log.Printf("categories: %d", len(categories))

	userRepo := &user.Repository{S: fileStore}
	users, err := userRepo.Load()
	if err != nil {
		log.Fatalf("seed users: %v", err)
	}
	log.Printf("users: %d accounts", len(users))

	settingsRepo := &settings.Repository{S: fileStore}
	current := settingsRepo.Load()
	if current.ShopName == "" {
		current = settings.Settings{
			ShopName:       *shop,
			VATRatePercent: decimal.NewFromInt(*vatRate),
		}
		if err := settingsRepo.Save(current); err != nil {
			log.Fatalf("seed settings: %v", err)
		}
	}
	log.Printf("settings: shop=%q vat=%s%%", current.ShopName, current.VATRatePercent)
}
