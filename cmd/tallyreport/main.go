package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/vncsmyrnk/votemap/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/votemap/internal/core/domain"
	"github.com/vncsmyrnk/votemap/internal/core/services"
	"github.com/vncsmyrnk/votemap/internal/platform/config"
	"github.com/vncsmyrnk/votemap/internal/platform/logger"
)

type topicReport struct {
	TopicID int64         `json:"topic_id"`
	Results *domain.Tally `json:"results"`
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	pg := config.PostgresFromEnv()
	flag.StringVar(&pg.Host, "db-host", pg.Host, "Database host")
	flag.StringVar(&pg.Port, "db-port", pg.Port, "Database port")
	flag.StringVar(&pg.User, "db-user", pg.User, "Database user")
	flag.StringVar(&pg.Password, "db-pass", pg.Password, "Database password")
	flag.StringVar(&pg.DB, "db-name", pg.DB, "Database name")
	timeout := flag.Duration("timeout", 5*time.Minute, "Job timeout")
	flag.Parse()

	logg := logger.NewWithWriter(os.Stderr, os.Getenv("LOG_LEVEL"))

	db, err := sql.Open("postgres", pg.ConnString())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	topics := postgres.NewTopicRepository(db)
	results := services.NewResultService(postgres.NewVoteRepository(db), services.WithResultLogger(logg))
	reports := services.NewReportService(topics, results)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	logg.Info("starting tally report")

	tallies, err := reports.ReportOngoing(ctx)
	if err != nil {
		log.Fatalf("Error computing tally report: %v", err)
	}

	if err := writeReport(os.Stdout, tallies); err != nil {
		log.Fatal(err)
	}
	logg.Info("tally report completed", "topics", len(tallies))
}

// writeReport prints one entry per topic ordered by topic id.
func writeReport(w io.Writer, tallies map[int64]*domain.Tally) error {
	out := make([]topicReport, 0, len(tallies))
	for id, tally := range tallies {
		out = append(out, topicReport{TopicID: id, Results: tally})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TopicID < out[j].TopicID })

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
