package tga

import "errors"

// ErrModelEmpty is returned by Generate when the model has no segments,
// i.e. it was trained on an empty seed corpus.
var ErrModelEmpty = errors.New("tga: model has no segments")

// ErrTrainFailed is returned by New for an unknown Kind. Neither model's
// Train returns it: every seed corpus, including an empty one, is accepted.
var ErrTrainFailed = errors.New("tga: training failed")

// ErrUnderflow signals that GenerateUnique could not collect the requested
// count of unique addresses within its attempt budget. It is non-fatal:
// the caller still receives whatever addresses were collected.
var ErrUnderflow = errors.New("tga: generate_unique underflow")
