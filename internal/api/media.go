package api

import (
	"fmt"
	"strings"
)

// mediaExtensions lists the accepted URL extensions per question type.
var mediaExtensions = map[string][]string{
	QuestionTypeImage: {".jpg", ".jpeg", ".png", ".gif"},
	QuestionTypeVideo: {".mp4", ".webm"},
	QuestionTypeAudio: {".mp3", ".wav"},
}

// ValidateMediaURL checks a media URL's extension against the question type
// before the question is sent to the backend. Text questions take no media.
func ValidateMediaURL(mediaURL, questionType string) error {
	if questionType == QuestionTypeText {
		if mediaURL != "" {
			return fmt.Errorf("text questions do not take a media url")
		}
		return nil
	}
	extensions, ok := mediaExtensions[questionType]
	if !ok {
		return fmt.Errorf("unknown question type %q", questionType)
	}
	if mediaURL == "" {
		return fmt.Errorf("%s questions require a media url", questionType)
	}
	lower := strings.ToLower(mediaURL)
	for _, ext := range extensions {
		if strings.HasSuffix(lower, ext) {
			return nil
		}
	}
	return fmt.Errorf("invalid media url for type %s: expected one of %s",
		questionType, strings.Join(extensions, ", "))
}
