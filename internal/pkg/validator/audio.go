package validator

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/futig/lifestory-backend/internal/entity"
)

// AllowedAudioExtensions are the recorder and upload formats the transcription service accepts
var AllowedAudioExtensions = map[string]bool{
	".webm": true,
	".wav":  true,
	".mp3":  true,
	".m4a":  true,
	".ogg":  true,
	".mpeg": true,
}

var allowedAudioContentTypes = map[string]bool{
	"audio/webm":               true,
	"video/webm":               true,
	"audio/wav":                true,
	"audio/x-wav":              true,
	"audio/wave":               true,
	"audio/mpeg":               true,
	"audio/mp3":                true,
	"audio/mp4":                true,
	"audio/x-m4a":              true,
	"audio/ogg":                true,
	"application/octet-stream": true,
}

// ValidateAudioFile validates a recorded answer upload
func (v *Validator) ValidateAudioFile(file *multipart.FileHeader) error {
	if file == nil {
		return fmt.Errorf("%w: audio file", entity.ErrMissingField)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !AllowedAudioExtensions[ext] {
		return fmt.Errorf("%w: %s (allowed: webm, wav, mp3, m4a, ogg, mpeg)", entity.ErrInvalidExtension, ext)
	}

	if file.Size == 0 {
		return fmt.Errorf("%w: file '%s' is empty", entity.ErrInvalidFile, file.Filename)
	}

	if file.Size > v.cfg.MaxAudioFileSize {
		return fmt.Errorf("%w: file '%s' is %d bytes (max %d)", entity.ErrFileTooLarge, file.Filename, file.Size, v.cfg.MaxAudioFileSize)
	}

	// Browsers append codec parameters, e.g. audio/webm;codecs=opus
	contentType := strings.TrimSpace(strings.SplitN(file.Header.Get("Content-Type"), ";", 2)[0])
	if contentType != "" && !allowedAudioContentTypes[strings.ToLower(contentType)] {
		return fmt.Errorf("%w: content type '%s'", entity.ErrInvalidExtension, contentType)
	}

	return nil
}

// SanitizeFilename sanitizes a filename before it is forwarded to the transcription service
func SanitizeFilename(filename string) string {
	filename = filepath.Base(filename)
	replacer := strings.NewReplacer(
		" ", "_",
		"(", "",
		")", "",
		"[", "",
		"]", "",
		"{", "",
		"}", "",
	)
	return replacer.Replace(filename)
}
