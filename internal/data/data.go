package data

import (
	"context"
	"fmt"

	"Chirpio/internal/conf"
	"Chirpio/internal/model"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Data 持有所有存储句柄，进程内只创建一次，通过构造函数注入各 Repository
type Data struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewData(ctx context.Context, cfg *conf.Config, log *zap.Logger) (*Data, func(), error) {
	// 1. 连接 Postgres
	db, err := OpenPostgres(cfg.Data.DatabaseSource)
	if err != nil {
		return nil, nil, err
	}
	log.Info("✅ PostgreSQL 连接成功")

	// 2. 连接 Redis (OAuth state 存储)
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Data.RedisAddr,
		Password: cfg.Data.RedisPassword,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		closeDB(db)
		return nil, nil, fmt.Errorf("redis ping failed: %w", err)
	}
	log.Info("✅ Redis 连接成功", zap.String("addr", cfg.Data.RedisAddr))

	d := &Data{DB: db, Redis: rdb}

	cleanup := func() {
		log.Info("正在关闭数据层资源...")
		closeDB(d.DB)
		if err := d.Redis.Close(); err != nil {
			log.Warn("关闭 Redis 失败", zap.Error(err))
		}
	}
	return d, cleanup, nil
}

// OpenPostgres 只建立连接，不做迁移；密码在 DSN 里，不要打印
func OpenPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// Migrate 自动建表；Supabase 里已有表时只会补齐缺失的列和索引
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Organisation{},
		&model.OrganisationMember{},
		&model.Post{},
		&model.SocialAccount{},
		&model.SuggestionLog{},
	); err != nil {
		return fmt.Errorf("schema migration failed: %w", err)
	}
	return nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
