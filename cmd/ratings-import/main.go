package main

import (
	"flag"
	"log"

	"github.com/ghighcove/movie-ratings-analysis/internal/db"
	"github.com/ghighcove/movie-ratings-analysis/internal/imdb"
)

func main() {
	var basicsPath string
	var ratingsPath string
	var dbPath string
	var migrationsDir string
	var forceVersion int
	var minVotes int

	flag.StringVar(&basicsPath, "basics", "title.basics.tsv.gz", "path to IMDb title.basics dump")
	flag.StringVar(&ratingsPath, "ratings", "title.ratings.tsv.gz", "path to IMDb title.ratings dump")
	flag.StringVar(&dbPath, "db", "movies.db", "path to sqlite db")
	flag.StringVar(&migrationsDir, "migrations", "", "optional migrations dir to apply before import")
	flag.IntVar(&forceVersion, "force-version", -1, "reset a dirty migration state to this version before migrating (-1 disables)")
	flag.IntVar(&minVotes, "min-votes", 0, "drop movies with fewer votes (0 keeps all)")
	flag.Parse()

	movies, err := imdb.LoadMovies(basicsPath, ratingsPath, imdb.Options{MinVotes: minVotes})
	if err != nil {
		log.Fatalf("load imdb dumps: %v", err)
	}

	store, err := db.New(dbPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer store.Close()

	if migrationsDir != "" {
		if forceVersion >= 0 {
			if err := store.MigrateForce(migrationsDir, forceVersion); err != nil {
				log.Fatalf("force migration version: %v", err)
			}
		}
		if err := store.MigrateUp(migrationsDir); err != nil {
			log.Fatalf("migrate: %v", err)
		}
	}

	if err := store.SaveMovies(movies); err != nil {
		log.Fatalf("save movies: %v", err)
	}
	log.Printf("imported %d movies into %s", len(movies), dbPath)
}
