package db

import "errors"

var ErrNotConfigured = errors.New("database not configured")
