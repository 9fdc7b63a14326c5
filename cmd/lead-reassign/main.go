package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"leadscout_backend/internal/events"
	"leadscout_backend/internal/leads/domain"
	"leadscout_backend/internal/leads/repository"
	"leadscout_backend/internal/leads/service"
	"leadscout_backend/platform/config"
	"leadscout_backend/platform/db"
	"leadscout_backend/platform/logger"
)

func main() {
	owner := flag.String("owner", "", "owner key that receives every lead")
	email := flag.String("email", "", "email of the user that receives every lead")
	flag.Parse()

	if (strings.TrimSpace(*owner) == "") == (strings.TrimSpace(*email) == "") {
		fmt.Fprintln(os.Stderr, "usage: lead-reassign -owner <id> | -email <address>")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting lead reassignment")

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	catalog, err := domain.LoadCatalog(cfg.GetPipelineCatalogPath())
	if err != nil {
		log.Error("failed to load pipeline catalog", "error", err)
		panic("failed to load pipeline catalog: " + err.Error())
	}

	eventBus := events.NewInMemoryBus(log)
	merger := service.NewMerger(repository.New(pool), catalog, eventBus, log, cfg.GetDefaultPhoneRegion())

	var (
		target = strings.TrimSpace(*owner)
		count  int64
	)
	if target != "" {
		count, err = merger.ReassignAll(ctx, target)
	} else {
		target, count, err = merger.ReassignAllToEmail(ctx, strings.TrimSpace(*email))
	}
	eventBus.Wait()
	if err != nil {
		log.Error("lead reassignment failed", "error", err)
		pool.Close()
		os.Exit(1)
	}

	log.Info("lead reassignment complete", "targetOwner", target, "count", count)
	fmt.Println(count)
}
