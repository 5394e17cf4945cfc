package service

import (
	"io"
	"mime/multipart"
	"os"
)

// saveMultipart copies an uploaded file to dest.
func saveMultipart(file *multipart.FileHeader, dest string) error {
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}
