// seed-accounts fills a local database with fake accounts for manual testing
// of the dashboard and directory code.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/oklog/ulid/v2"

	"github.com/medpriceai/medprice-web/storage"
	"github.com/medpriceai/medprice-web/storage/db"
)

func main() {
	dbPath := flag.String("db", "./data/database.db", "path to the SQLite database")
	count := flag.Int("n", 10, "number of accounts to create")
	provider := flag.String("provider", "supabase", "provider name recorded on each account")
	flag.Parse()

	store, err := storage.New(*dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	ctx := context.Background()
	now := time.Now()

	for i := 0; i < *count; i++ {
		first, last := gofakeit.FirstName(), gofakeit.LastName()
		seen := now.Add(-time.Duration(gofakeit.IntRange(0, 90*24)) * time.Hour).Unix()

		account, err := store.Queries.UpsertAccount(ctx, db.UpsertAccountParams{
			ID:          ulid.Make().String(),
			Provider:    *provider,
			Subject:     gofakeit.UUID(),
			Email:       gofakeit.Email(),
			FullName:    first + " " + last,
			SeenAt:      seen,
			StaleBefore: seen,
		})
		if err != nil {
			log.Fatal("Error creating account:", err)
		}
		fmt.Printf("Created account %s (%s)\n", account.ID, account.Email)
	}

	total, err := store.Queries.CountAccounts(ctx)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Database now holds %d accounts\n", total)
}
