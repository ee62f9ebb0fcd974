package services

import (
	"fmt"
	"path"
	"slices"
	"strings"

	"schooladmin/internal/domain"
)

func publish(feed domain.ChangeFeed, collection string, op domain.ChangeOp, id string) {
	if feed == nil {
		return
	}
	feed.Publish(domain.Change{Collection: collection, Op: op, ID: id})
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, fmt.Sprintf(format, args...))
}

func validateClassification(subject domain.Subject, level domain.Level) error {
	if !subject.Valid() {
		return invalidf("subject must be one of english, filipino, math")
	}
	if !level.Valid() {
		return invalidf("type must be one of 1st, 2nd, 3rd, 4th, advanced")
	}
	return nil
}

// uploadKey checks an upload against the accepted content types and size limit
// and returns the storage key prefix+<base name>.
func uploadKey(u *domain.Upload, prefix string, maxSize int64, contentTypes ...string) (string, error) {
	if !slices.Contains(contentTypes, u.ContentType) {
		return "", fmt.Errorf("%w: content type %q not accepted", domain.ErrInvalidFile, u.ContentType)
	}
	if u.Size > maxSize {
		return "", fmt.Errorf("%w: %d bytes exceeds %d", domain.ErrFileTooLarge, u.Size, maxSize)
	}
	name := path.Base(strings.ReplaceAll(u.Name, `\`, "/"))
	if name == "." || name == "/" || name == ".." {
		return "", fmt.Errorf("%w: missing file name", domain.ErrInvalidFile)
	}
	return prefix + name, nil
}
