package database

import (
	"context"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/gocql/gocql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"ayana_shop/internal/config"
)

// Clients regroupe les connexions ouvertes au démarrage.
// Elastic, MinIO et Scylla sont optionnels et restent nil s'ils ne sont pas configurés.
type Clients struct {
	Postgres *sqlx.DB
	Redis    *redis.Client
	Elastic  *elasticsearch.Client
	MinIO    *minio.Client
	Scylla   *gocql.Session
}

func Connect(ctx context.Context, cfg config.Config, log logrus.FieldLogger) (*Clients, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	clients := &Clients{}
	var err error

	// 1. Postgres
	if clients.Postgres, err = connectPostgres(ctx, cfg.Postgres); err != nil {
		return nil, err
	}
	log.Info("✅ Connecté à Postgres")

	// 2. Redis
	if clients.Redis, err = connectRedis(ctx, cfg.Redis); err != nil {
		clients.Close()
		return nil, err
	}
	log.Info("✅ Connecté à Redis")

	// 3. Elasticsearch
	if cfg.Elastic.URL != "" {
		if clients.Elastic, err = connectElastic(cfg.Elastic); err != nil {
			log.WithError(err).Warn("⚠️ Elasticsearch indisponible, recherche directe en base")
		} else {
			log.Info("✅ Connecté à Elasticsearch")
		}
	}

	// 4. MinIO
	if cfg.MinIO.Endpoint != "" {
		if clients.MinIO, err = connectMinIO(ctx, cfg.MinIO, log); err != nil {
			log.WithError(err).Warn("⚠️ MinIO indisponible, pas d'archivage des fichiers")
		} else {
			log.Info("✅ Connecté à MinIO : ", cfg.MinIO.Endpoint)
		}
	}

	// 5. ScyllaDB (journal d'audit)
	if len(cfg.Scylla.Hosts) > 0 {
		if clients.Scylla, err = connectScylla(cfg.Scylla); err != nil {
			log.WithError(err).Warn("⚠️ ScyllaDB indisponible, audit dans les logs")
		} else {
			log.Infof("✅ Session ScyllaDB pour keyspace '%s'", cfg.Scylla.Keyspace)
		}
	}

	return clients, nil
}

func (c *Clients) Close() {
	if c.Postgres != nil {
		c.Postgres.Close()
	}
	if c.Redis != nil {
		c.Redis.Close()
	}
	if c.Scylla != nil {
		c.Scylla.Close()
	}
}

func connectPostgres(ctx context.Context, cfg config.PostgresConfig) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", cfg.DSN)
	if err != nil {
		return nil, errors.Wrap(err, "connexion postgres")
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnLifetime)
	return db, nil
}

func connectRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Host,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrap(err, "connexion redis")
	}
	return client, nil
}

func connectElastic(cfg config.ElasticConfig) (*elasticsearch.Client, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.URL},
		Username:  cfg.User,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, errors.Wrap(err, "création client elasticsearch")
	}

	res, err := client.Info()
	if err != nil {
		return nil, errors.Wrap(err, "connexion elasticsearch")
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch: %s", res.Status())
	}
	return client, nil
}

// connectMinIO crée aussi les buckets manquants
func connectMinIO(ctx context.Context, cfg config.MinIOConfig, log logrus.FieldLogger) (*minio.Client, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "connexion minio")
	}

	for _, bucket := range []string{cfg.ImageBucket, cfg.ReportBucket} {
		exists, err := client.BucketExists(ctx, bucket)
		if err != nil {
			return nil, errors.Wrapf(err, "vérification bucket %s", bucket)
		}
		if exists {
			continue
		}
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, errors.Wrapf(err, "création bucket %s", bucket)
		}
		log.Info("🪣 Bucket créé : ", bucket)
	}
	return client, nil
}

func connectScylla(cfg config.ScyllaConfig) (*gocql.Session, error) {
	cluster := gocql.NewCluster(cfg.Hosts...)
	cluster.Keyspace = cfg.Keyspace
	cluster.Consistency = gocql.Quorum
	cluster.Timeout = 5 * time.Second
	cluster.ReconnectInterval = time.Second
	if cfg.Username != "" {
		cluster.Authenticator = gocql.PasswordAuthenticator{
			Username: cfg.Username,
			Password: cfg.Password,
		}
	}
	cluster.PoolConfig.HostSelectionPolicy = gocql.TokenAwareHostPolicy(gocql.RoundRobinHostPolicy())

	session, err := cluster.CreateSession()
	if err != nil {
		return nil, errors.Wrapf(err, "session scylla %s", cfg.Keyspace)
	}
	return session, nil
}
