package models

import "errors"

//---------------------------------ERROR-CODES---------------------------------

// The closed taxonomy. Every operation of the engine fails with one of these.
var ErrNodeDoesNotExist = errors.New("node does not exist in the graph")
var ErrSelfReferenceNotAllowed = errors.New("self-reference edges are not allowed")
var ErrRandomChoice = errors.New("weighted choice failed over degenerate weights")
var ErrNoPathExists = errors.New("no usable walks exist for the ego")
var ErrNodeIDParse = errors.New("malformed node identifier")
var ErrInvalidNode = errors.New("absent node used where a concrete node is required")

// RandomWalk errors
var ErrNilWalkPointer = errors.New("nil RandomWalk pointer")
var ErrEmptyWalk = errors.New("RandomWalk is empty")
var ErrWalkNotTerminated = errors.New("RandomWalk has not been terminated")
