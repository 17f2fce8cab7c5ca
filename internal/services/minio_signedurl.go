package services

import (
	"context"
	"net/url"
	"time"

	"github.com/pkg/errors"
)

// ReportLinkTTL durée de validité d'un lien de téléchargement de rapport
const ReportLinkTTL = 15 * time.Minute

// SignedURL lien temporaire vers un objet privé
func (s *MinIOStorage) SignedURL(ctx context.Context, bucket, key string, duration time.Duration) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, bucket, key, duration, make(url.Values))
	if err != nil {
		return "", errors.Wrapf(err, "lien signé %s/%s", bucket, key)
	}
	return u.String(), nil
}
