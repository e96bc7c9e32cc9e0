package gemini

import (
	"errors"
	"strings"
)

// ErrNoImage is returned when the model completes without producing an
// image-bearing part. This is not a transport failure: the credential is
// still good and the session stays authenticated.
var ErrNoImage = errors.New("model completed without producing an image")

// Kind buckets a transport or service failure for user-facing reporting.
type Kind int

const (
	// KindTransient covers anything not otherwise classified.
	KindTransient Kind = iota
	// KindCredential means the API key is invalid, expired, or unknown to
	// the service; the session must re-authenticate.
	KindCredential
	// KindQuota means a billing or quota problem; the credential itself
	// still works.
	KindQuota
)

// Marker substrings the Gemini API is known to include in failure messages.
var credentialMarkers = []string{
	"requested entity was not found",
	"api key not valid",
	"api_key_invalid",
	"permission_denied",
	"unauthenticated",
}

var quotaMarkers = []string{
	"resource_exhausted",
	"quota",
	"billing",
	"429",
}

// ClassifyError buckets err by inspecting its text for known failure
// markers. Credential markers win over quota markers.
func ClassifyError(err error) Kind {
	if err == nil {
		return KindTransient
	}
	text := strings.ToLower(err.Error())
	for _, m := range credentialMarkers {
		if strings.Contains(text, m) {
			return KindCredential
		}
	}
	for _, m := range quotaMarkers {
		if strings.Contains(text, m) {
			return KindQuota
		}
	}
	return KindTransient
}
