package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/faq-assistant/internal/bootstrap"
	"github.com/yanqian/faq-assistant/internal/domain/faq"
	"github.com/yanqian/faq-assistant/internal/infra/config"
	"github.com/yanqian/faq-assistant/internal/infra/faqsource"
	"github.com/yanqian/faq-assistant/internal/infra/faqstore"
	"github.com/yanqian/faq-assistant/pkg/metrics"
)

func provideFAQConfig(cfg *config.Config) faq.Config {
	return faq.Config{
		AcceptThreshold:    cfg.FAQ.AcceptThreshold,
		SuggestThreshold:   cfg.FAQ.SuggestThreshold,
		ShortlistSize:      cfg.FAQ.ShortlistSize,
		NoMatchAnswer:      cfg.FAQ.NoMatchAnswer,
		Greeting:           cfg.FAQ.Greeting,
		LoadFailureNotice:  cfg.FAQ.LoadFailureNotice,
		TopRecommendations: cfg.FAQ.TopRecommendations,
	}
}

// provideFAQSource selects the table source. The cleanup closes the Postgres
// pool when one was opened.
func provideFAQSource(cfg *config.Config, logger *slog.Logger) (faq.Source, func(), error) {
	noop := func() {}
	src := cfg.FAQ.Source
	switch src.Kind {
	case config.SourceHTTP:
		logger.Info("faq source: http", "url", src.URL)
		return faqsource.NewHTTPSource(src.URL, src.Timeout), noop, nil
	case config.SourceS3:
		logger.Info("faq source: object storage", "bucket", src.S3.Bucket, "key", src.S3.Key)
		objectSource, err := faqsource.NewObjectSource(faqsource.ObjectConfig{
			Endpoint:  src.S3.Endpoint,
			AccessKey: src.S3.AccessKey,
			SecretKey: src.S3.SecretKey,
			Bucket:    src.S3.Bucket,
			Region:    src.S3.Region,
			Key:       src.S3.Key,
		})
		if err != nil {
			return nil, nil, err
		}
		return objectSource, noop, nil
	case config.SourcePostgres:
		pool, err := openPostgresPool(src.Postgres)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("faq source: postgres", "table", src.Postgres.Table)
		cleanup := func() {
			pool.Close()
			logger.Info("faq postgres pool closed")
		}
		return faqsource.NewPostgresSource(pool, src.Postgres.Table), cleanup, nil
	case config.SourceStatic:
		logger.Info("faq source: static")
		return faqsource.NewStaticSource(src.Static), noop, nil
	default:
		logger.Info("faq source: file", "path", src.Path, "watch", src.Watch)
		return faqsource.NewFileSource(src.Path, logger), noop, nil
	}
}

func openPostgresPool(cfg config.PostgresConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(strings.TrimSpace(cfg.DSN))
	if err != nil {
		return nil, fmt.Errorf("invalid postgres dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolConfig.MinConns = cfg.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, fmt.Errorf("init postgres pool: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	return pool, nil
}

// provideFAQStore prefers Valkey and falls back to memory. The cleanup closes
// the Valkey client when one is in use.
func provideFAQStore(cfg *config.Config, logger *slog.Logger) (faq.Store, func()) {
	noop := func() {}
	if !cfg.FAQ.Redis.Enabled {
		return faqstore.NewMemoryStore(), noop
	}
	opt, err := buildValkeyOptions(cfg)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
		return faqstore.NewMemoryStore(), noop
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory store", "error", err)
		return faqstore.NewMemoryStore(), noop
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory store", "error", err)
		client.Close()
		return faqstore.NewMemoryStore(), noop
	}
	logger.Info("faq valkey store enabled", "addr", cfg.FAQ.Redis.Addr)
	cleanup := func() {
		client.Close()
		logger.Info("faq valkey client closed")
	}
	return faqstore.NewValkeyStore(client, cfg.FAQ.Redis.Prefix), cleanup
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	if strings.Contains(cfg.FAQ.Redis.Addr, "://") {
		return valkey.ParseURL(cfg.FAQ.Redis.Addr)
	}
	return valkey.ClientOption{InitAddress: []string{cfg.FAQ.Redis.Addr}}, nil
}

func provideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func provideRecorder(reg *prometheus.Registry) *metrics.Recorder {
	return metrics.NewRecorder(reg)
}

// provideFileWatcher returns nil unless the table is a watched local file.
func provideFileWatcher(cfg *config.Config, source faq.Source) bootstrap.Watcher {
	if !cfg.FAQ.Source.Watch {
		return nil
	}
	fileSource, ok := source.(*faqsource.FileSource)
	if !ok {
		return nil
	}
	return fileSource
}
