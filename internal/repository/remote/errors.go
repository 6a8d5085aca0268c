// Package remote implements the domain repositories over the resource
// server and recruitment API HTTP endpoints.
package remote

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"recruitment-console/pkg/apperror"
	"recruitment-console/pkg/resource"
)

// mapError turns a transport error into an AppError. what names the failed
// operation for messages, e.g. "fetch candidates".
func mapError(err error, what string) error {
	if err == nil {
		return nil
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}

	switch resource.StatusCode(err) {
	case http.StatusUnauthorized:
		return apperror.New(http.StatusUnauthorized, "Session expired, please sign in again", err)
	case http.StatusForbidden:
		return apperror.New(http.StatusForbidden, "You do not have permission to "+what, err)
	case http.StatusNotFound:
		return apperror.New(http.StatusNotFound, "Not found", err)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return apperror.New(http.StatusBadRequest, "Failed to "+what+": the server rejected the request", err)
	}
	return apperror.RequestFailed("Failed to "+what, fmt.Errorf("%s: %w", what, err))
}

func pagingQuery(pageKey string, page, size int) url.Values {
	q := url.Values{}
	q.Set(pageKey, strconv.Itoa(page))
	if size > 0 {
		q.Set("pageSize", strconv.Itoa(size))
	}
	return q
}

func setIfNotEmpty(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}

func idPath(base string, id int64) string {
	return base + "/" + strconv.FormatInt(id, 10)
}
