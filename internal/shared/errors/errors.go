package errors

import "errors"

var (
	ErrAllSourcesFailed  = errors.New("all feed sources failed and no cached news is available")
	ErrInvalidFeedSource = errors.New("feed source requires both name and url")
	ErrNoSnapshot        = errors.New("no news snapshot available")
)
