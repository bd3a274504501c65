package handler

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "golang.org/x/image/webp"
)

const maxUploadBytes = 10 << 20

var imageExtensions = map[string]string{
	"png":  ".png",
	"jpeg": ".jpg",
	"gif":  ".gif",
	"webp": ".webp",
}

// UploadImage 处理图片上传请求，按实际解码出的格式校验并记录尺寸。
func (a *API) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		respondError(c, http.StatusBadRequest, "image file is required")
		return
	}
	if file.Size > maxUploadBytes {
		respondError(c, http.StatusBadRequest, "image exceeds the 10MB limit")
		return
	}

	src, err := file.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "failed to read image")
		return
	}
	cfg, format, err := image.DecodeConfig(src)
	src.Close()
	if err != nil {
		respondError(c, http.StatusBadRequest, "only png, jpeg, gif and webp images are allowed")
		return
	}
	ext, ok := imageExtensions[format]
	if !ok {
		respondError(c, http.StatusBadRequest, "only png, jpeg, gif and webp images are allowed")
		return
	}

	if err := os.MkdirAll(a.uploadDir, 0o755); err != nil {
		a.log.Error("create upload dir failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to store image")
		return
	}

	// 生成唯一文件名
	name := fmt.Sprintf("%s-%s%s", a.now().Format("20060102"), uuid.NewString(), ext)
	if err := c.SaveUploadedFile(file, filepath.Join(a.uploadDir, name)); err != nil {
		a.log.Error("save upload failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to store image")
		return
	}

	url := path.Join("/", strings.Trim(a.uploadURL, "/"), name)
	a.log.Info("image uploaded", zap.String("url", url), zap.String("format", format))
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"url":     url,
		"width":   cfg.Width,
		"height":  cfg.Height,
		"format":  format,
	})
}
