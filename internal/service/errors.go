package service

import "errors"

var (
	ErrEmptyTopic   = errors.New("topic must not be empty")
	ErrNoTopic      = errors.New("no topic yet: generate a roadmap first")
	ErrNoRoadmap    = errors.New("no roadmap has been generated")
	ErrNoFeedback   = errors.New("no feedback to export: grade a submission first")
	ErrNoAssignment = errors.New("no assignment to export: generate one first")
	ErrNoSubmission = errors.New("a submission image is required")
)
