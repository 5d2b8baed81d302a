package main

import (
	"flag"
	"log"

	"triton-system/config"
	"triton-system/internal/database"
	"triton-system/internal/fixtures"
)

func main() {
	defaults := fixtures.DefaultOptions()

	newUsers := flag.Int("new-users", defaults.NewUsers, "number of new-user widget rows")
	activeAuthors := flag.Int("active-authors", defaults.ActiveAuthors, "number of active-author rows")
	designations := flag.Int("designations", defaults.Designations, "number of designation rows")
	jewellery := flag.Int("jewellery", 0, "number of demo jewellery items")
	rfid := flag.Int("rfid", 0, "number of demo RFID tags")
	mappings := flag.Int("mappings", 0, "number of demo jewellery/RFID mappings to attempt")
	flag.Parse()

	cfg := config.LoadConfig()

	db, err := database.NewConnection(cfg.DB.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	opts := fixtures.Options{
		NewUsers:      *newUsers,
		ActiveAuthors: *activeAuthors,
		Designations:  *designations,
	}
	if err := fixtures.Load(db, opts); err != nil {
		log.Fatalf("Failed to load dashboard fixtures: %v", err)
	}
	log.Println("Dashboard fixtures loaded")

	if *jewellery > 0 || *rfid > 0 {
		if err := fixtures.LoadInventory(db, *jewellery, *rfid, *mappings); err != nil {
			log.Fatalf("Failed to load inventory fixtures: %v", err)
		}
		log.Println("Inventory fixtures loaded")
	}
}
