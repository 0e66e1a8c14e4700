package main

import (
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"github.com/satyanetra/trust_go_server/config"
	"github.com/satyanetra/trust_go_server/internal/database"
	"github.com/satyanetra/trust_go_server/internal/repository"
)

var (
	dryRun     = flag.Bool("dry-run", true, "Dry run mode, don't actually delete logs")
	retainDays = flag.Int("retain-days", 7, "Days to keep logs of finished jobs")
	batchSize  = flag.Int("batch-size", 500, "Max jobs to clean per run")
)

func main() {
	flag.Parse()

	log.Println("🧹 Starting cleanup task...")
	log.Printf("Mode: dry-run=%v, retain-days=%d", *dryRun, *retainDays)

	// 加载配置
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 连接数据库
	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	jobRepo := repository.NewJobRepository(db)
	jobLogRepo := repository.NewJobLogRepository(db)

	cutoff := time.Now().Add(-time.Duration(*retainDays) * 24 * time.Hour)
	jobs, err := jobRepo.ListTerminalBefore(cutoff, *batchSize)
	if err != nil {
		log.Fatalf("Failed to list finished jobs: %v", err)
	}

	var deletedLogs int64
	cleanedJobs := 0
	for _, job := range jobs {
		if *dryRun {
			cleanedJobs++
			continue
		}
		count, err := jobLogRepo.DeleteByJobID(job.ID)
		if err != nil {
			log.Printf("Failed to delete logs for job %s: %v", job.ID, err)
			continue
		}
		deletedLogs += count
		cleanedJobs++
	}

	// 输出统计
	log.Println("\n" + strings.Repeat("=", 60))
	log.Println("📊 Cleanup Summary")
	log.Println(strings.Repeat("=", 60))
	log.Printf("Finished jobs older than %d days: %d", *retainDays, len(jobs))
	log.Printf("Jobs cleaned: %d", cleanedJobs)
	log.Printf("Log rows deleted: %d", deletedLogs)
	if *dryRun {
		log.Println("\n⚠️  DRY RUN MODE - No logs were actually deleted")
		log.Println("   Run with -dry-run=false to actually delete logs")
	} else {
		log.Println("\n✅ Cleanup completed!")
	}
	log.Println(strings.Repeat("=", 60))
}
