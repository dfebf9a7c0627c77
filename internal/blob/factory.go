package blob

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// OpenFromEnv constructs a blob store from process environment.
//
// Environment variables:
//
//	SUBWAYLOG_BLOB_DRIVER      fs | s3 | memory (default fs)
//	SUBWAYLOG_BLOB_FS_ROOT     root directory for the fs driver (default ./subwaylogexports)
//	SUBWAYLOG_BLOB_S3_BUCKET   bucket name (required for s3)
//	SUBWAYLOG_BLOB_S3_REGION   region (default us-east-1)
//	SUBWAYLOG_BLOB_S3_ENDPOINT custom endpoint, e.g. MinIO (optional)
//	SUBWAYLOG_BLOB_S3_PATH_STYLE true|false (default false)
//	AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY / AWS_SESSION_TOKEN (optional)
func OpenFromEnv(ctx context.Context) (Store, error) {
	driver := Driver(strings.ToLower(strings.TrimSpace(os.Getenv("SUBWAYLOG_BLOB_DRIVER"))))
	if driver == "" {
		driver = DriverFilesystem
	}
	switch driver {
	case DriverFilesystem:
		root := os.Getenv("SUBWAYLOG_BLOB_FS_ROOT")
		if root == "" {
			root = "./subwaylogexports"
		}
		return NewFilesystemStore(root)
	case DriverS3:
		bucket := os.Getenv("SUBWAYLOG_BLOB_S3_BUCKET")
		if bucket == "" {
			return nil, fmt.Errorf("blob: SUBWAYLOG_BLOB_S3_BUCKET required for s3 driver")
		}
		return NewS3Store(ctx, S3Config{
			Bucket:          bucket,
			Region:          os.Getenv("SUBWAYLOG_BLOB_S3_REGION"),
			Endpoint:        os.Getenv("SUBWAYLOG_BLOB_S3_ENDPOINT"),
			AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
			SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
			PathStyle:       strings.EqualFold(os.Getenv("SUBWAYLOG_BLOB_S3_PATH_STYLE"), "true"),
		})
	case DriverMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("blob: unknown driver %q", driver)
	}
}
