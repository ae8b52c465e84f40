package utils

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var reUnsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._\-]`)

// SanitizeFilename 清洗上传文件名
// 文件名来自客户端不可信，去掉路径成分和特殊字符后才能用于文件系统
func SanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "..", "")
	name = reUnsafeFilenameChars.ReplaceAllString(name, "_")
	if name == "" || name == "." {
		name = "upload"
	}
	return name
}

// TempUploadPath 为上传文件生成临时存放路径，uuid前缀避免并发请求之间的重名
func TempUploadPath(dir, originalName string) string {
	return filepath.Join(dir, uuid.NewString()+"_"+SanitizeFilename(originalName))
}
