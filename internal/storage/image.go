package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

const MaxImageSize = 5 * 1024 * 1024

var ErrInvalidImage = errors.New("invalid image")

var allowedExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
}

type imageFormat struct {
	ext    string
	format imaging.Format
}

// formats is keyed by sniffed content type. The stored extension and the
// re-encode format come from here, never from the uploaded file name.
var formats = map[string]imageFormat{
	"image/jpeg": {".jpg", imaging.JPEG},
	"image/png":  {".png", imaging.PNG},
	"image/gif":  {".gif", imaging.GIF},
	"image/webp": {".webp", -1},
	"image/bmp":  {".bmp", imaging.BMP},
}

// maxWidth caps the stored width per folder. Wider images are scaled
// down keeping their aspect ratio.
var maxWidth = map[string]int{
	FolderCategoryIcon: 256,
	FolderAuthorFoto:   512,
	FolderIklan:        1200,
	FolderHeadline:     1600,
}

type Image struct {
	Data        []byte
	Ext         string
	ContentType string
	Width       int
	Height      int
}

func ValidateImageBySniff(filename string, head []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExt[ext] {
		return "", fmt.Errorf("%w: only JPG, JPEG, PNG, GIF, WEBP and BMP are supported", ErrInvalidImage)
	}

	detected := http.DetectContentType(head)
	if strings.HasPrefix(detected, "text/") || strings.Contains(detected, "xml") {
		return "", fmt.Errorf("%w: markup is not allowed", ErrInvalidImage)
	}
	if _, ok := formats[detected]; !ok {
		return "", fmt.Errorf("%w: unsupported content type %s", ErrInvalidImage, detected)
	}
	return detected, nil
}

// Prepare reads file, checks it is an image and downsizes it for folder.
func Prepare(folder string, file *multipart.FileHeader) (*Image, error) {
	if file.Size > MaxImageSize {
		return nil, fmt.Errorf("%w: file exceeds %d MB", ErrInvalidImage, MaxImageSize/(1024*1024))
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, MaxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(data) > MaxImageSize {
		return nil, fmt.Errorf("%w: file exceeds %d MB", ErrInvalidImage, MaxImageSize/(1024*1024))
	}

	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	contentType, err := ValidateImageBySniff(file.Filename, head)
	if err != nil {
		return nil, err
	}

	f := formats[contentType]
	out := &Image{Data: data, Ext: f.ext, ContentType: contentType}

	// animated gifs and webp are stored as uploaded
	if contentType == "image/gif" || contentType == "image/webp" {
		return out, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: cannot decode image", ErrInvalidImage)
	}
	out.Width, out.Height = img.Bounds().Dx(), img.Bounds().Dy()

	limit, ok := maxWidth[folder]
	if !ok || out.Width <= limit {
		return out, nil
	}

	resized := imaging.Resize(img, limit, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, f.format, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	out.Data = buf.Bytes()
	out.Width, out.Height = resized.Bounds().Dx(), resized.Bounds().Dy()
	return out, nil
}
