package services

import (
	"context"
	"io"
	"net/url"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
)

// MinIOStorage images produits et rapports xlsx
type MinIOStorage struct {
	client   *minio.Client
	endpoint string
	secure   bool
}

func NewMinIOStorage(client *minio.Client, secure bool) *MinIOStorage {
	return &MinIOStorage{client: client, endpoint: client.EndpointURL().Host, secure: secure}
}

// Put renvoie l'URL publique de l'objet
func (s *MinIOStorage) Put(ctx context.Context, bucket, key string, r io.Reader, size int64, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", errors.Wrapf(err, "upload %s/%s", bucket, key)
	}
	return s.objectURL(bucket, key), nil
}

func (s *MinIOStorage) objectURL(bucket, key string) string {
	scheme := "http"
	if s.secure {
		scheme = "https"
	}
	u := url.URL{Scheme: scheme, Host: s.endpoint, Path: "/" + bucket + "/" + key}
	return u.String()
}
