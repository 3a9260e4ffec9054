package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/rechesh-io/rechesh/internal/attachment"
	attachmentStore "github.com/rechesh-io/rechesh/internal/attachment/store"
	"github.com/rechesh-io/rechesh/internal/blob"
	"github.com/rechesh-io/rechesh/internal/blob/memory"
	"github.com/rechesh-io/rechesh/internal/blob/s3"
	"github.com/rechesh-io/rechesh/internal/config"
	"github.com/rechesh-io/rechesh/internal/database"
	"github.com/rechesh-io/rechesh/internal/export"
	"github.com/rechesh-io/rechesh/internal/hierarchy"
	hierarchyStore "github.com/rechesh-io/rechesh/internal/hierarchy/store"
	recheshHttp "github.com/rechesh-io/rechesh/internal/http"
	attachmentHandler "github.com/rechesh-io/rechesh/internal/http/attachment"
	"github.com/rechesh-io/rechesh/internal/http/auth"
	exportHandler "github.com/rechesh-io/rechesh/internal/http/export"
	hierarchyHandler "github.com/rechesh-io/rechesh/internal/http/hierarchy"
	importHandler "github.com/rechesh-io/rechesh/internal/http/importcsv"
	purchaseHandler "github.com/rechesh-io/rechesh/internal/http/purchase"
	purposeHandler "github.com/rechesh-io/rechesh/internal/http/purpose"
	supplierHandler "github.com/rechesh-io/rechesh/internal/http/supplier"
	"github.com/rechesh-io/rechesh/internal/importer"
	"github.com/rechesh-io/rechesh/internal/purchase"
	purchaseStore "github.com/rechesh-io/rechesh/internal/purchase/store"
	"github.com/rechesh-io/rechesh/internal/purpose"
	purposeStore "github.com/rechesh-io/rechesh/internal/purpose/store"
	"github.com/rechesh-io/rechesh/internal/supplier"
	supplierStore "github.com/rechesh-io/rechesh/internal/supplier/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.EnsureSchema(ctx, db); err != nil {
		slog.Error("failed to apply schema", "error", err)
		os.Exit(1)
	}

	blobs, err := newBlobStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to set up blob store", "error", err)
		os.Exit(1)
	}

	authenticator := auth.New(auth.Config{
		Enabled:  cfg.Auth.Enabled,
		Secret:   cfg.Auth.Secret,
		Issuer:   cfg.Auth.Issuer,
		Audience: cfg.Auth.Audience,
	})

	var (
		hierarchyService  = hierarchy.NewService(hierarchyStore.New(db))
		purposeService    = purpose.NewService(purposeStore.New(db), hierarchyService, auth.Username)
		purchaseService   = purchase.NewService(purchaseStore.New(db))
		attachmentService = attachment.NewService(attachmentStore.New(db), blobs)
		exportService     = export.NewService(purposeService, hierarchyService)
		supplierService   = supplier.NewService(supplierStore.New(db))
		importService     = importer.NewService()
	)

	var (
		purposeH    = purposeHandler.NewHandler(purposeService, attachmentService)
		purchaseH   = purchaseHandler.NewHandler(purchaseService, purposeService)
		hierarchyH  = hierarchyHandler.NewHandler(hierarchyService)
		attachmentH = attachmentHandler.NewHandler(attachmentService)
		exportH     = exportHandler.NewHandler(exportService)
		importH     = importHandler.NewHandler(importService, purposeService, supplierService)
		supplierH   = supplierHandler.NewHandler(supplierService)
	)

	router := recheshHttp.New(
		authenticator,
		db,
		cfg.Server.AllowedOrigins,
		purposeH,
		purchaseH,
		hierarchyH,
		attachmentH,
		exportH,
		importH,
		supplierH,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

// newBlobStore picks S3 when an endpoint or credentials are configured
// and falls back to the in-memory store for local runs.
func newBlobStore(ctx context.Context, cfg *config.Config) (blob.Store, error) {
	if cfg.S3.Endpoint == "" && cfg.S3.AccessKey == "" {
		slog.Warn("no s3 endpoint configured, file contents will not survive restarts")
		return memory.New(), nil
	}

	return s3.New(ctx, s3.Config{
		Endpoint:     cfg.S3.Endpoint,
		Region:       cfg.S3.Region,
		Bucket:       cfg.S3.Bucket,
		AccessKey:    cfg.S3.AccessKey,
		SecretKey:    cfg.S3.SecretKey,
		UsePathStyle: cfg.S3.UsePathStyle,
		PresignTTL:   cfg.S3.PresignTTL,
	})
}
