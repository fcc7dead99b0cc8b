package app

import (
	"net/http"
	"strings"

	"quirknotes/internal/client"
)

// errorText prefers the backend's own message for server failures.
func errorText(err error) string {
	if err == nil {
		return ""
	}
	if apiErr := client.AsAPIError(err); apiErr != nil && strings.TrimSpace(apiErr.Message) != "" {
		return apiErr.Message
	}
	return err.Error()
}

func failureKindLabel(err error) string {
	return client.FailureKindOf(err).String()
}

// noteAlreadyGone reports a delete the backend rejected because the note does
// not exist, which leaves the same end state as a successful delete.
func noteAlreadyGone(err error) bool {
	apiErr := client.AsAPIError(err)
	return apiErr != nil && apiErr.StatusCode == http.StatusNotFound
}
