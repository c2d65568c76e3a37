package cli

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/openshelf/openshelf/internal/audit"
	"github.com/openshelf/openshelf/internal/config"
	"github.com/openshelf/openshelf/internal/database"
	auditrepo "github.com/openshelf/openshelf/internal/database/audit"
)

// PurgeAuditCommand removes operational audit events past the retention
// window. Download records are never touched; they have no retention.
type PurgeAuditCommand struct {
	RetentionDays int
	DatabasePath  string
	DryRun        bool
}

func NewPurgeAuditCommand() *PurgeAuditCommand {
	return &PurgeAuditCommand{}
}

func (cmd *PurgeAuditCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("purge-audit", flag.ExitOnError)

	fs.IntVar(&cmd.RetentionDays, "retention-days", 0, "Retention window in days (defaults to AUDIT_RETENTION_DAYS)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Report what would be deleted without deleting")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s purge-audit [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Delete audit events older than the retention window.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *PurgeAuditCommand) Run() error {
	cfg := config.NewConfig()
	retentionDays := cmd.RetentionDays
	if retentionDays <= 0 {
		retentionDays = cfg.Audit.RetentionDays
	}
	retention := time.Duration(retentionDays) * 24 * time.Hour

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	repo := auditrepo.NewRepository(db.DB)

	if cmd.DryRun {
		cutoff := time.Now().Add(-retention)
		count, err := repo.CountOlderThan(cutoff)
		if err != nil {
			return fmt.Errorf("failed to count old audit events: %w", err)
		}
		fmt.Printf("Would delete %d audit events older than %d days\n", count, retentionDays)
		return nil
	}

	auditService := audit.NewService(repo)
	deleted, err := auditService.DeleteOldEvents(retention)
	if err != nil {
		return fmt.Errorf("failed to delete old audit events: %w", err)
	}

	fmt.Printf("Deleted %d audit events older than %d days\n", deleted, retentionDays)
	return nil
}
