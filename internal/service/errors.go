package service

import "errors"

var ErrNoStore = errors.New("no secure item store configured")
