package errors

import "errors"

var (
	// Input errors ✏️
	ErrInvalidInput = errors.New("❌ invalid input")
	ErrInvalidName  = errors.New("❌ invalid trainer name")

	// Format errors 💾
	ErrUnknownFormat = errors.New("❌ unknown save format")
	ErrImageTooSmall = errors.New("❌ save image too small for layout")

	// Write errors 📝
	ErrBackupFailed = errors.New("❌ backup failed")
	ErrReadFailed   = errors.New("❌ reading save file failed")
	ErrWriteFailed  = errors.New("❌ writing save file failed")
)
