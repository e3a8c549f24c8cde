package handlers

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"path"

	config "github.com/anjiri1684/institute_manager/configs"
	"github.com/anjiri1684/institute_manager/pkg/apperrors"
	"github.com/anjiri1684/institute_manager/services"
	"github.com/anjiri1684/institute_manager/storage"
	"github.com/anjiri1684/institute_manager/utils"
	"github.com/gofiber/fiber/v2"
)

const defaultMaxUpload = 5 << 20

func maxUploadBytes() int64 {
	return int64(config.ConfigInt("MAX_UPLOAD_BYTES", defaultMaxUpload))
}

// readUpload returns nil when the field was not sent.
func readUpload(c *fiber.Ctx, field string) (*services.UploadedFile, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, nil
	}
	if fh.Size > maxUploadBytes() {
		return nil, apperrors.NewValidationError(field, fmt.Sprintf("file exceeds %d bytes", maxUploadBytes()))
	}
	data, err := readMultipart(fh)
	if err != nil {
		return nil, apperrors.NewValidationError(field, "cannot read uploaded file")
	}
	return &services.UploadedFile{
		Field:        field,
		OriginalName: fh.Filename,
		MimeType:     fh.Header.Get(fiber.HeaderContentType),
		Content:      data,
	}, nil
}

func readMultipart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, fh.Size+1))
}

// savePhoto stores an optional photo upload under dir and returns its URL.
func savePhoto(c *fiber.Ctx, dir string) (*string, error) {
	up, err := readUpload(c, "photo")
	if err != nil || up == nil {
		return nil, err
	}
	key := path.Join(dir, utils.UniqueFilename(up.OriginalName))
	url, err := storage.Files.Put(c.UserContext(), key, bytes.NewReader(up.Content), up.MimeType)
	if err != nil {
		return nil, apperrors.NewStorageError("store photo", err)
	}
	return &url, nil
}
