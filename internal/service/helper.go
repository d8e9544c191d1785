package service

import (
	"strings"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"smartblog/pkg/apperror"
)

// strictPolicy strips every HTML element from user-supplied text.
var strictPolicy = bluemonday.StrictPolicy()

func sanitizeText(raw string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(raw))
}

func parseUUID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperror.ErrBadRequest
	}
	return id, nil
}
