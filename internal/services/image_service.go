package services

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/text/unicode/norm"
)

// UploadURLPrefix 是上传文件对外暴露的 URL 前缀
const UploadURLPrefix = "/uploads/"

// sniffLen 是内容类型探测读取的字节数
const sniffLen = 3072

// ImageStore 把上传的图片保存到磁盘目录，文件名为 <毫秒时间戳>-<原始文件名>
type ImageStore struct {
	dir     string
	allowed []string
	now     func() time.Time
	logger  *slog.Logger
}

// NewImageStore 创建 ImageStore。allowedTypes 为空时不限制内容类型。
func NewImageStore(dir string, allowedTypes []string, logger *slog.Logger) *ImageStore {
	var allowed []string
	for _, t := range allowedTypes {
		if t = strings.TrimSpace(t); t != "" {
			allowed = append(allowed, t)
		}
	}
	return &ImageStore{dir: dir, allowed: allowed, now: time.Now, logger: logger}
}

// WithClock 替换生成文件名前缀所用的时间源，用于测试
func (s *ImageStore) WithClock(now func() time.Time) *ImageStore {
	s.now = now
	return s
}

// StoredName 返回原始文件名对应的磁盘文件名
func (s *ImageStore) StoredName(originalName string) (string, error) {
	base := sanitizeFileName(originalName)
	if base == "" {
		return "", fmt.Errorf("invalid file name %q", originalName)
	}
	return fmt.Sprintf("%d-%s", s.now().UnixMilli(), base), nil
}

// Save 保存图片并返回其 URL，例如 /uploads/1700000000000-photo.png
func (s *ImageStore) Save(originalName string, r io.Reader) (string, error) {
	const op = "images.save"

	name, err := s.StoredName(originalName)
	if err != nil {
		return "", newError(KindValidation, op, "No file uploaded.", err)
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", newError(KindUpstream, op, "Error uploading image", err)
	}
	head = head[:n]

	if !s.allowedType(head) {
		detected := mimetype.Detect(head).String()
		s.logger.Warn("rejected upload", "file", originalName, "type", detected)
		return "", newError(KindValidation, op, "File type not allowed.", fmt.Errorf("content type %s", detected))
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", newError(KindUpstream, op, "Error uploading image", err)
	}
	if err := writeNewFile(filepath.Join(s.dir, name), head, r); err != nil {
		return "", newError(KindUpstream, op, "Error uploading image", err)
	}

	s.logger.Info("image uploaded", "file", name)
	return UploadURLPrefix + name, nil
}

// Remove 删除 URL 指向的上传文件。文件不存在或 URL 不是本地上传时忽略。
func (s *ImageStore) Remove(imageURL string) error {
	if !strings.HasPrefix(imageURL, UploadURLPrefix) {
		return nil
	}
	name := path.Base(strings.TrimPrefix(imageURL, UploadURLPrefix))
	if name == "." || name == "/" || name == ".." {
		return nil
	}

	err := os.Remove(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Warn("image already missing", "file", name)
		return nil
	}
	if err != nil {
		return fmt.Errorf("removing %s: %w", name, err)
	}
	s.logger.Info("image removed", "file", name)
	return nil
}

// writeNewFile 创建 target 并写入 head 与 r 的剩余内容，失败时删除半成品
func writeNewFile(target string, head []byte, r io.Reader) error {
	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	_, err = f.Write(head)
	if err == nil {
		_, err = io.Copy(f, r)
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(target)
	}
	return err
}

func (s *ImageStore) allowedType(head []byte) bool {
	if len(s.allowed) == 0 {
		return true
	}
	detected := mimetype.Detect(head)
	for _, t := range s.allowed {
		if detected.Is(t) {
			return true
		}
	}
	return false
}

// sanitizeFileName 去掉目录部分并做 NFC 规范化
func sanitizeFileName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	base := path.Base(norm.NFC.String(strings.TrimSpace(name)))
	switch base {
	case ".", "/", "..":
		return ""
	}
	return base
}
