package jobs

// Job functions referenced by config.CronJobs. This package must not import
// config (config imports it for the job map), so jobs open their own DB
// handle from the environment.

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"storefront.GO/service/catalogsync"
	"storefront.GO/service/media"
)

func jobDB() (*gorm.DB, error) {
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		user := os.Getenv("MYSQL_USER")
		pass := os.Getenv("MYSQL_PASS")
		host := os.Getenv("MYSQL_HOST")
		port := os.Getenv("MYSQL_PORT")
		db := os.Getenv("MYSQL_DB")
		if port == "" {
			port = "3306"
		}
		dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&loc=Local", user, pass, host, port, db)
	}
	return gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
}

// CategorySyncJob pulls category trees from every configured marketplace.
func CategorySyncJob(args ...string) {
	db, err := jobDB()
	if err != nil {
		log.Printf("category sync job: db: %v", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	catalogsync.SyncAll(ctx, db)
}

// MediaThumbsJob regenerates product image thumbnails.
func MediaThumbsJob(args ...string) {
	src := os.Getenv("MEDIA_SRC_DIR")
	if src == "" {
		src = "media/catalog"
	}
	dst := os.Getenv("MEDIA_THUMB_DIR")
	if dst == "" {
		dst = "media/thumbs"
	}
	res, err := media.GenerateThumbnails(src, dst, media.Options{})
	if err != nil {
		log.Printf("media thumbs job: %v", err)
		return
	}
	log.Printf("media thumbs job: processed=%d skipped=%d in %s",
		res.Processed, res.Skipped, res.TotalTime.Round(time.Millisecond))
	for _, w := range res.Warnings {
		log.Printf("media thumbs job: [warn] %s", w)
	}
}
