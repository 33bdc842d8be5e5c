package trees

import (
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Attribute keys added to file metadata when augmentation is enabled.
const (
	AttrSize       = "size"
	AttrModifiedAt = "modified_at"
	AttrMode       = "mode"
	AttrExtension  = "extension"
	AttrCategory   = "category"
)

// FileAttributes derives basic attributes of a file from its FileInfo.
func FileAttributes(info fs.FileInfo) map[string]string {
	attrs := map[string]string{
		AttrSize:       strconv.FormatInt(info.Size(), 10),
		AttrModifiedAt: info.ModTime().UTC().Format(time.RFC3339),
		AttrMode:       info.Mode().Perm().String(),
	}

	ext := strings.ToLower(filepath.Ext(info.Name()))
	if ext != "" {
		attrs[AttrExtension] = ext[1:]
	}
	if category := CategoryForExtension(ext); category != "" {
		attrs[AttrCategory] = category
	}
	return attrs
}

// MergeAttributes adds attrs to metadata without replacing any key already
// present. Annotations always win over derived attributes.
func MergeAttributes(metadata, attrs map[string]string) {
	for k, v := range attrs {
		if _, exists := metadata[k]; !exists {
			metadata[k] = v
		}
	}
}

// CategoryForExtension maps a file extension (with or without the leading
// dot) to a coarse content category.
func CategoryForExtension(ext string) string {
	switch strings.TrimPrefix(strings.ToLower(ext), ".") {
	case "txt", "md", "doc", "docx", "rtf", "rst", "pdf":
		return "document"
	case "jpg", "jpeg", "png", "gif", "bmp", "svg", "webp":
		return "image"
	case "mp4", "avi", "mkv", "mov", "wmv", "flv", "webm":
		return "video"
	case "mp3", "wav", "flac", "aac", "ogg", "m4a":
		return "audio"
	case "zip", "rar", "7z", "tar", "gz", "bz2":
		return "archive"
	case "js", "ts", "py", "go", "cpp", "c", "h", "java", "rs", "php", "rb", "sh":
		return "code"
	case "html", "htm", "css", "scss", "less":
		return "web"
	case "json", "xml", "yaml", "yml", "toml", "csv", "ini":
		return "data"
	default:
		return ""
	}
}
