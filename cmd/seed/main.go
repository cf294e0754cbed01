// Package main provides a CLI tool for creating the report schema and seeding demo data.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"textile/internal/config"
	"textile/internal/domain/reports"
	"textile/internal/infrastructure/cache"
	"textile/internal/infrastructure/storage/postgres"
	"textile/pkg/logger"
)

const schema = `
CREATE TABLE IF NOT EXISTS items (
	name            TEXT PRIMARY KEY,
	item_name       TEXT NOT NULL DEFAULT '',
	fabric_material TEXT,
	fabric_type     TEXT
);

CREATE TABLE IF NOT EXISTS work_orders (
	name              TEXT PRIMARY KEY,
	print_order       TEXT,
	production_item   TEXT NOT NULL,
	item_name         TEXT,
	stock_uom         TEXT,
	customer          TEXT,
	customer_name     TEXT,
	process_item      TEXT,
	process_item_name TEXT,
	fabric_item       TEXT REFERENCES items (name),
	fabric_item_name  TEXT
);

CREATE TABLE IF NOT EXISTS stock_entries (
	name             TEXT PRIMARY KEY,
	company          TEXT NOT NULL,
	posting_date     DATE NOT NULL,
	posting_time     TIME NOT NULL,
	work_order       TEXT NOT NULL REFERENCES work_orders (name),
	fabric_printer   TEXT,
	fg_completed_qty NUMERIC(18, 6) NOT NULL DEFAULT 0,
	docstatus        SMALLINT NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_stock_entries_posting
	ON stock_entries (posting_date, posting_time, fabric_printer)
	WHERE docstatus = 1;

CREATE TABLE IF NOT EXISTS global_defaults (
	key   TEXT PRIMARY KEY,
	value TEXT
);
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := logger.WithLogger(context.Background(), log)

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.Database.URL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	txManager := postgres.NewTxManager(pool, cfg.Database.StatementTimeout)

	if err := txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := txManager.GetQuerier(ctx).Exec(ctx, schema); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		return seedDefaults(ctx, txManager)
	}); err != nil {
		log.Fatalw("failed to prepare schema", "error", err)
	}
	log.Info("schema ready")

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := txManager.RunInTransaction(ctx, func(ctx context.Context) error {
			return seedDemoData(ctx, txManager, log)
		}); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	invalidateDefaultsCache(ctx, cfg, log)

	log.Info("seeding completed successfully")
}

// seedDefaults writes naming defaults unless they are already set.
func seedDefaults(ctx context.Context, txm *postgres.TxManager) error {
	defaults := map[string]string{
		reports.DefaultItemNamingBy:   getEnv("SEED_ITEM_NAMING_BY", reports.NamingByNamingSeries),
		reports.DefaultCustMasterName: getEnv("SEED_CUST_MASTER_NAME", "Customer Name"),
	}
	for key, value := range defaults {
		_, err := txm.GetQuerier(ctx).Exec(ctx, `
			INSERT INTO global_defaults (key, value)
			VALUES ($1, $2)
			ON CONFLICT (key) DO NOTHING
		`, key, value)
		if err != nil {
			return fmt.Errorf("seed default %s: %w", key, err)
		}
	}
	return nil
}

func seedDemoData(ctx context.Context, txm *postgres.TxManager, log *logger.Logger) error {
	log.Info("seeding demo data...")

	if _, err := txm.GetQuerier(ctx).Exec(ctx,
		`TRUNCATE stock_entries, work_orders, items`,
	); err != nil {
		return fmt.Errorf("truncate demo tables: %w", err)
	}

	inserter := postgres.NewBatchInserter(txm)

	items := [][]any{
		{"FAB-COT-60", "Cotton Poplin 60", "Cotton", "Woven"},
		{"FAB-SIL-40", "Silk Crepe 40", "Silk", "Woven"},
		{"FAB-JER-30", "Cotton Jersey 30", "Cotton", "Knitted"},
		{"PRC-PIG", "Pigment Printing", nil, nil},
		{"PRC-SUB", "Sublimation Printing", nil, nil},
	}
	if _, err := inserter.CopyFromSlice(ctx, "items",
		[]string{"name", "item_name", "fabric_material", "fabric_type"}, items,
	); err != nil {
		return err
	}

	type workOrder struct {
		name, printOrder, design, designName, customer, customerName, process, fabric string
	}
	workOrders := []workOrder{
		{"WO-0001", "PO-0001", "DSN-FLORAL-01", "Floral Bloom", "CUST-0001", "Indigo House", "PRC-PIG", "FAB-COT-60"},
		{"WO-0002", "PO-0001", "DSN-FLORAL-02", "Floral Vine", "CUST-0001", "Indigo House", "PRC-PIG", "FAB-JER-30"},
		{"WO-0003", "PO-0002", "DSN-GEO-01", "Geometric Tile", "CUST-0002", "Loom & Co", "PRC-SUB", "FAB-SIL-40"},
		{"WO-0004", "PO-0003", "DSN-PAIS-01", "Paisley Classic", "CUST-0003", "Block Print Traders", "PRC-PIG", "FAB-COT-60"},
	}
	itemNames := make(map[string]string, len(items))
	for _, it := range items {
		itemNames[it[0].(string)] = it[1].(string)
	}
	woRows := make([][]any, 0, len(workOrders))
	for _, wo := range workOrders {
		woRows = append(woRows, []any{
			wo.name, wo.printOrder, wo.design, wo.designName, "Meter",
			wo.customer, wo.customerName,
			wo.process, itemNames[wo.process],
			wo.fabric, itemNames[wo.fabric],
		})
	}
	if _, err := inserter.CopyFromSlice(ctx, "work_orders", []string{
		"name", "print_order", "production_item", "item_name", "stock_uom",
		"customer", "customer_name", "process_item", "process_item_name",
		"fabric_item", "fabric_item_name",
	}, woRows); err != nil {
		return err
	}

	printers := []string{"PRINTER-A", "PRINTER-B"}
	start := time.Now().AddDate(0, 0, -14).Truncate(24 * time.Hour)
	var entries [][]any
	for day := 0; day < 14; day++ {
		for i, wo := range workOrders {
			if (day+i)%3 == 0 {
				continue
			}
			docstatus := 1
			if (day+i)%7 == 0 {
				docstatus = 2
			}
			entries = append(entries, []any{
				fmt.Sprintf("STE-%05d", len(entries)+1),
				"Textile Mills Ltd",
				start.AddDate(0, 0, day),
				pgtype.Time{Microseconds: int64(8+i*2) * int64(time.Hour/time.Microsecond), Valid: true},
				wo.name,
				printers[(day+i)%len(printers)],
				float64(50+(day*13+i*7)%120) + 0.5,
				docstatus,
			})
		}
	}
	n, err := inserter.CopyFromSlice(ctx, "stock_entries", []string{
		"name", "company", "posting_date", "posting_time", "work_order",
		"fabric_printer", "fg_completed_qty", "docstatus",
	}, entries)
	if err != nil {
		return err
	}

	log.Infow("demo data seeded", "items", len(items), "work_orders", len(woRows), "stock_entries", n)
	return nil
}

// invalidateDefaultsCache drops cached naming defaults so the server rereads them.
func invalidateDefaultsCache(ctx context.Context, cfg *config.Config, log *logger.Logger) {
	if cfg.Redis.Addr == "" {
		return
	}
	rdb, err := cache.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Warnw("redis unavailable, defaults cache not invalidated", "error", err)
		return
	}
	defer rdb.Close()

	defaultsCache := cache.NewDefaultsCache(nil, rdb, cfg.Redis.DefaultsTTL)
	if err := defaultsCache.Invalidate(ctx, reports.DefaultItemNamingBy, reports.DefaultCustMasterName); err != nil {
		log.Warnw("failed to invalidate defaults cache", "error", err)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
