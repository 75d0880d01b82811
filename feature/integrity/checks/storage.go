package checks

import (
	"context"
	"fmt"

	"broad-babel/core/storage"

	"github.com/minio/minio-go/v7"
)

// CheckStorage returns the objects that are missing from the bucket.
func CheckStorage(ctx context.Context, client storage.Client, bucket string, objects []string) ([]string, error) {
	missing := []string{}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", bucket)
	}

	for _, object := range objects {
		_, err := client.StatObject(ctx, bucket, object, minio.StatObjectOptions{})
		if err == nil {
			continue
		}
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			missing = append(missing, object)
			continue
		}
		return nil, fmt.Errorf("failed to stat %s: %w", object, err)
	}

	return missing, nil
}
