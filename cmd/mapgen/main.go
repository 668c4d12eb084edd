// Command mapgen builds the slug -> tenant domain table used by the API in
// production, writes it to MAPPING_FILE and, when MAPPING_S3_BUCKET is set,
// publishes it to S3. It prints the public routes to prerender.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/BruksfildServices01/vetcard/internal/config"
	"github.com/BruksfildServices01/vetcard/internal/directory"
	"github.com/BruksfildServices01/vetcard/internal/logx"
	"github.com/BruksfildServices01/vetcard/internal/mapping"
)

func main() {
	cfg := config.Load()
	logger := logx.New("vetcard-mapgen", cfg.IsDevelopment())

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client := directory.NewClient(directory.Options{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.HTTPClientTimeout,
		Logger:  logger,
	})

	clinics := mapping.Fetch(ctx, client, logger)
	table := mapping.Build(clinics)

	if err := mapping.WriteFile(cfg.Mapping.File, table); err != nil {
		logger.Error("mapping.write_failed", "path", cfg.Mapping.File, "err", err)
		os.Exit(1)
	}
	logger.Info("mapping.written", "path", cfg.Mapping.File, "clinics", len(table))

	if cfg.Mapping.S3Bucket != "" {
		store := mapping.NewS3Store(mapping.S3Config{
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Bucket:    cfg.Mapping.S3Bucket,
			Key:       cfg.Mapping.S3Key,
		})
		if err := store.Put(ctx, table); err != nil {
			logger.Error("mapping.publish_failed", "bucket", cfg.Mapping.S3Bucket, "err", err)
			os.Exit(1)
		}
		logger.Info("mapping.published", "bucket", cfg.Mapping.S3Bucket, "key", cfg.Mapping.S3Key)
	}

	for _, route := range mapping.Routes(clinics) {
		fmt.Println(route)
	}
}
