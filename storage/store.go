// Package storage keeps uploaded documents (exam-form scans, course notes)
// behind one interface so the backend can be switched by configuration.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	config "github.com/anjiri1684/institute_manager/configs"
)

type Store interface {
	// Put writes r under key and returns the URL the file is reachable at.
	Put(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// Files is the process-wide store, set by Init.
var Files Store

func Init() error {
	s, err := New(config.ConfigDefault("STORAGE_DRIVER", "local"))
	if err != nil {
		return err
	}
	Files = s
	return nil
}

func New(driver string) (Store, error) {
	switch driver {
	case "local":
		return NewLocalStore(config.ConfigDefault("UPLOAD_DIR", "./uploads"), config.ConfigDefault("UPLOAD_URL_PREFIX", "/uploads"))
	case "s3":
		return NewS3Store(S3Config{
			Bucket:    config.Config("S3_BUCKET"),
			Region:    config.ConfigDefault("S3_REGION", "ap-south-1"),
			Endpoint:  config.Config("S3_ENDPOINT"),
			AccessKey: config.Config("S3_ACCESS_KEY"),
			SecretKey: config.Config("S3_SECRET_KEY"),
			PublicURL: config.Config("S3_PUBLIC_URL"),
			UseSSL:    config.ConfigBool("S3_USE_SSL", true),
		})
	case "cloudinary":
		return NewCloudinaryStore(config.Config("CLOUDINARY_URL"), config.ConfigDefault("CLOUDINARY_FOLDER", "institute_uploads"))
	default:
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q", driver)
	}
}

func cleanKey(key string) (string, error) {
	key = strings.TrimPrefix(path.Clean("/"+key), "/")
	if key == "" || key == "." {
		return "", fmt.Errorf("empty storage key")
	}
	return key, nil
}
