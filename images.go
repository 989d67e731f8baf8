package atelier

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"
)

const (
	maxImageWidth = 800
	jpegQuality   = 80
	maxUploadSize = 10 << 20 // 10MB
	uploadsSubdir = "uploads"
)

// processImage decodes an image from src, optionally resizes it to
// maxImageWidth, and encodes it as JPEG. Returns metadata and the bytes.
func processImage(src io.Reader, originalName string) (Image, []byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return Image{}, nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	// Resize if wider than max
	if w > maxImageWidth {
		newH := h * maxImageWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
		w = maxImageWidth
		h = newH
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return Image{}, nil, fmt.Errorf("encode jpeg: %w", err)
	}

	filename := slugifyFilename(originalName) + ".jpg"

	return Image{
		Filename:     filename,
		OriginalName: originalName,
		Width:        w,
		Height:       h,
		Size:         buf.Len(),
		UploadedAt:   time.Now().UTC().Format(time.RFC3339),
	}, buf.Bytes(), nil
}

// slugifyFilename converts a filename (without extension) to a URL-safe slug.
func slugifyFilename(name string) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	slug := strings.ToLower(Slugify(base))
	if slug == "" {
		slug = fmt.Sprintf("image-%d", time.Now().UnixMilli())
	}
	return slug
}

// ensureUniqueFilename appends a counter if filename already exists in
// the uploads directory or the database.
func (a *App) ensureUniqueFilename(img *Image) {
	dir := filepath.Join(a.staticDir, uploadsSubdir)
	base := strings.TrimSuffix(img.Filename, ".jpg")
	candidate := img.Filename
	counter := 1
	for {
		if _, err := os.Stat(filepath.Join(dir, candidate)); err == nil {
			counter++
			candidate = fmt.Sprintf("%s-%d.jpg", base, counter)
			continue
		}
		existing, _ := a.Store.ListImages()
		found := false
		for _, ex := range existing {
			if ex.Filename == candidate {
				found = true
				break
			}
		}
		if found {
			counter++
			candidate = fmt.Sprintf("%s-%d.jpg", base, counter)
			continue
		}
		break
	}
	img.Filename = candidate
}

// handleImageUpload processes an admin upload and returns the public URL
// of the stored image, for use in post and gallery forms.
func (a *App) handleImageUpload(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "No image file provided")
	}
	if file.Size > maxUploadSize {
		return errJSON(c, http.StatusBadRequest, "File too large (max 10MB)")
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	img, data, err := processImage(src, file.Filename)
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "Invalid image: "+err.Error())
	}

	a.ensureUniqueFilename(&img)

	dir := filepath.Join(a.staticDir, uploadsSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create uploads dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, img.Filename), data, 0o644); err != nil {
		return fmt.Errorf("write image: %w", err)
	}
	if err := a.Store.SaveImage(img); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]string{
		"url":      "/api/images/" + img.Filename,
		"filename": img.Filename,
	})
}

// handleImageServe streams an uploaded image. The filename is sanitized
// to its base so the route cannot escape the uploads directory.
func (a *App) handleImageServe(c echo.Context) error {
	filename := filepath.Base(c.Param("filename"))
	if filename == "." || filename == "/" {
		return errJSON(c, http.StatusBadRequest, "Filename required")
	}
	path := filepath.Join(a.staticDir, uploadsSubdir, filename)
	if _, err := os.Stat(path); err != nil {
		return errJSON(c, http.StatusNotFound, "File not found")
	}
	return c.File(path)
}

// handleImageDelete removes an uploaded image and its metadata.
func (a *App) handleImageDelete(c echo.Context) error {
	filename := filepath.Base(c.Param("filename"))
	if filename == "." || filename == "/" {
		return errJSON(c, http.StatusBadRequest, "Filename required")
	}
	// ignore filesystem error if the file is already gone
	_ = os.Remove(filepath.Join(a.staticDir, uploadsSubdir, filename))
	if err := a.Store.DeleteImage(filename); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Deleted successfully"})
}

// handleImageList returns uploaded image metadata for the admin UI.
func (a *App) handleImageList(c echo.Context) error {
	images, err := a.Store.ListImages()
	if err != nil {
		return err
	}
	if images == nil {
		images = []Image{}
	}
	return c.JSON(http.StatusOK, images)
}
