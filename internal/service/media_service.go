package service

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // register PNG decoder
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"glimpse/internal/config"
	"glimpse/internal/models"
	"glimpse/internal/observability"

	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder
)

const (
	DefaultMediaDir         = "./media"
	DefaultMediaBaseURL     = "/media"
	MediaMaxUploadSizeBytes = 5 * 1024 * 1024
	MasterMaxSize           = 2048
	ThumbSize               = 256
	JPEGQuality             = 82
	WebPQuality             = 70
)

// StoreMediaInput is a raw upload as received from the client.
type StoreMediaInput struct {
	Filename    string
	ContentType string
	Content     []byte
}

// StoredMedia describes the on-disk objects written for one upload.
type StoredMedia struct {
	Hash     string
	ImageURL string
	ThumbURL string
	Paths    []string
}

// MediaService validates uploaded images and writes the master plus thumbnail
// variants to a content-addressed directory.
type MediaService struct {
	dir     string
	baseURL string
}

func NewMediaService(cfg *config.Config) *MediaService {
	dir := DefaultMediaDir
	baseURL := DefaultMediaBaseURL
	if cfg != nil {
		if cfg.MediaDir != "" {
			dir = cfg.MediaDir
		}
		if cfg.MediaBaseURL != "" {
			baseURL = cfg.MediaBaseURL
		}
	}
	return &MediaService{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

// Dir returns the root of the media directory, for static file serving.
func (s *MediaService) Dir() string {
	return s.dir
}

// Store validates, decodes and persists one upload. The master is re-encoded
// as JPEG capped at 2048px; a 256px thumbnail is written in both JPEG and
// WebP. Files are named by the SHA-256 of the uploaded bytes, so re-uploading
// identical content overwrites in place instead of duplicating.
func (s *MediaService) Store(in StoreMediaInput) (*StoredMedia, error) {
	if len(in.Content) == 0 {
		return nil, models.NewValidationError("No file uploaded")
	}
	if int64(len(in.Content)) > MediaMaxUploadSizeBytes {
		return nil, models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", MediaMaxUploadSizeBytes/(1024*1024)))
	}

	detectedType := http.DetectContentType(in.Content)
	if !isAllowedImageMIME(detectedType) {
		return nil, models.NewValidationError("Invalid image type")
	}

	decoded, format, err := image.Decode(bytes.NewReader(in.Content))
	if err != nil {
		return nil, models.NewValidationError("Invalid image file")
	}
	if !isSupportedDecodedFormat(format) {
		return nil, models.NewValidationError("Unsupported image format")
	}
	if provided := normalizeContentType(in.ContentType); strings.HasPrefix(provided, "image/") && !isMatchingContentType(provided, decodedFormatToMime(format)) {
		return nil, models.NewValidationError("Image content type mismatch")
	}

	master := resizeToFit(decoded, MasterMaxSize, MasterMaxSize)
	thumb := resizeToFit(decoded, ThumbSize, ThumbSize)

	masterJPG, err := encodeJPEG(master, JPEGQuality)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	thumbJPG, err := encodeJPEG(thumb, JPEGQuality)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	thumbWebP, err := encodeWebP(thumb, WebPQuality)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	sum := sha256.Sum256(in.Content)
	hash := hex.EncodeToString(sum[:])

	masterRel := filepath.ToSlash(filepath.Join("p", hash+".jpg"))
	thumbRel := filepath.ToSlash(filepath.Join("p", hash+"_thumb.jpg"))
	thumbWebPRel := filepath.ToSlash(filepath.Join("p", hash+"_thumb.webp"))

	stored := &StoredMedia{
		Hash:     hash,
		ImageURL: s.baseURL + "/" + masterRel,
		ThumbURL: s.baseURL + "/" + thumbRel,
	}
	for rel, data := range map[string][]byte{
		masterRel:    masterJPG,
		thumbRel:     thumbJPG,
		thumbWebPRel: thumbWebP,
	} {
		abs := filepath.Join(s.dir, filepath.FromSlash(rel))
		if err := writeBytesToFile(abs, data); err != nil {
			s.Remove(stored.Paths)
			observability.MediaOperations.WithLabelValues("store", "error").Inc()
			return nil, models.NewInternalError(err)
		}
		stored.Paths = append(stored.Paths, abs)
	}

	observability.MediaOperations.WithLabelValues("store", "ok").Inc()
	return stored, nil
}

// Remove deletes stored objects best-effort; missing files are ignored.
func (s *MediaService) Remove(paths []string) {
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			observability.MediaOperations.WithLabelValues("remove", "error").Inc()
			continue
		}
		observability.MediaOperations.WithLabelValues("remove", "ok").Inc()
	}
}

func resizeToFit(src image.Image, maxWidth, maxHeight int) image.Image {
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w <= 0 || h <= 0 {
		return src
	}
	if w <= maxWidth && h <= maxHeight {
		return src
	}

	scaleW := float64(maxWidth) / float64(w)
	scaleH := float64(maxHeight) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeWebP(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := webp.Encode(buf, img, &webp.Options{Quality: float32(quality)}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isAllowedImageMIME(contentType string) bool {
	switch normalizeContentType(contentType) {
	case "image/jpeg", "image/jpg", "image/png", "image/webp":
		return true
	default:
		return false
	}
}

func normalizeContentType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return strings.ToLower(strings.TrimSpace(mediaType))
}

func isMatchingContentType(provided, detected string) bool {
	p := normalizeContentType(provided)
	d := normalizeContentType(detected)
	if p == d {
		return true
	}
	return (p == "image/jpg" && d == "image/jpeg") || (p == "image/jpeg" && d == "image/jpg")
}

func isSupportedDecodedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "jpeg", "jpg", "png", "webp":
		return true
	default:
		return false
	}
}

func decodedFormatToMime(format string) string {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "jpeg", "jpg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "webp":
		return "image/webp"
	default:
		return ""
	}
}

func writeBytesToFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
