package handler

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	xdraw "golang.org/x/image/draw"
)

// Uploaded images larger than this on either axis get downscaled before
// they are stored.
const maxImageDimension = 1600

// saveFeaturedImage stores an optional uploaded image and returns its public
// URL path. No file in the request means no upload: the empty reference lets
// the caller keep the placeholder sentinel or the previous image.
func (a *API) saveFeaturedImage(c *gin.Context, field string) (string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return "", nil
	}

	// 检查文件类型
	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		a.log.Warn("ignoring non-image upload",
			zap.String("field", field),
			zap.String("contentType", contentType))
		return "", nil
	}

	// 创建上传目录
	if err := os.MkdirAll(a.uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	// 生成唯一文件名
	ext := strings.ToLower(filepath.Ext(file.Filename))
	name := fmt.Sprintf("%s-%s%s", time.Now().Format("20060102"), uuid.New().String(), ext)
	dst := filepath.Join(a.uploadDir, name)

	if err := a.writeImage(c, file, dst, ext); err != nil {
		return "", err
	}

	return path.Join(a.uploadURL, name), nil
}

// writeImage re-encodes decodable images, shrinking oversized ones on the
// way. Anything image.Decode cannot handle is stored byte for byte.
func (a *API) writeImage(c *gin.Context, file *multipart.FileHeader, dst, ext string) error {
	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	decoded, _, err := image.Decode(src)
	if err != nil {
		return c.SaveUploadedFile(file, dst)
	}

	if bounds := decoded.Bounds(); bounds.Dx() > maxImageDimension || bounds.Dy() > maxImageDimension {
		decoded = downscale(decoded)
	}

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create upload file: %w", err)
	}
	defer out.Close()

	switch ext {
	case ".png":
		return png.Encode(out, decoded)
	case ".gif":
		return gif.Encode(out, decoded, nil)
	default:
		return jpeg.Encode(out, decoded, &jpeg.Options{Quality: 85})
	}
}

func downscale(src image.Image) image.Image {
	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	scale := float64(maxImageDimension) / float64(width)
	if height > width {
		scale = float64(maxImageDimension) / float64(height)
	}

	target := image.Rect(0, 0, int(float64(width)*scale), int(float64(height)*scale))
	resized := image.NewRGBA(target)
	xdraw.CatmullRom.Scale(resized, target, src, bounds, xdraw.Over, nil)
	return resized
}
