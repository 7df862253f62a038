package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/yedell/color-challenge/internal/config"
	"github.com/yedell/color-challenge/internal/repository/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	dbPath := flag.String("db", cfg.DatabasePath, "Database path")
	limit := flag.Int("limit", 20, "Number of sessions to list")
	id := flag.String("id", "", "Show the frames of one session")
	flag.Parse()

	if _, err := os.Stat(*dbPath); err != nil {
		log.Fatalf("No journal at %s: %v", *dbPath, err)
	}

	db, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	sessions := sqlite.NewSessionRepository(db)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	if *id != "" {
		session, err := sessions.GetByID(*id)
		if err != nil {
			log.Fatalf("Failed to read session: %v", err)
		}
		if session == nil {
			log.Fatalf("Session %s not found", *id)
		}
		frames, err := sqlite.NewFrameRepository(db).GetBySession(*id)
		if err != nil {
			log.Fatalf("Failed to read frames: %v", err)
		}

		fmt.Printf("📼 Session %s (%s, %dx%d)\n\n", session.ID, session.Reason, session.Width, session.Height)
		fmt.Fprintln(w, "SEQ\tCOLOR\tDISPLAYED\tSNAPSHOT")
		for _, f := range frames {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", f.Seq, f.Color, f.DisplayedAt.Local().Format(time.TimeOnly), f.SnapshotPath)
		}
		return
	}

	list, err := sessions.List(*limit, 0)
	if err != nil {
		log.Fatalf("Failed to list sessions: %v", err)
	}
	total, err := sessions.Count()
	if err != nil {
		total = len(list)
	}

	fmt.Printf("📊 %d session(s) in %s\n\n", total, *dbPath)
	fmt.Fprintln(w, "ID\tSTARTED\tSIZE\tREQUESTED\tDISPLAYED\tDRAINED\tREASON")
	for _, s := range list {
		fmt.Fprintf(w, "%s\t%s\t%dx%d\t%d\t%d\t%d\t%s\n",
			s.ID, s.StartedAt.Local().Format(time.DateTime), s.Width, s.Height, s.Requested, s.Displayed, s.Drained, s.Reason)
	}
}
