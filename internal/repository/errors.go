package repository

import "errors"

var (
	ErrInvalidID            = errors.New("invalid id")
	ErrMissionNotFound      = errors.New("mission not found")
	ErrDuplicateMission     = errors.New("an active mission already exists for this driver")
	ErrFuelRequestNotFound  = errors.New("fuel request not found")
	ErrReportNotFound       = errors.New("report not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrUserNotFound         = errors.New("user not found")
)
