package round

import "errors"

// ErrEmptyInput is an error when a hand declaration is empty or blank
var ErrEmptyInput = errors.New("input may not be empty")

// ErrWrongTokenCount is an error when a hand declaration does not have exactly six tokens
var ErrWrongTokenCount = errors.New("input requires 6 space-delimited tokens")

// ErrInvalidOwnerID is an error when the first token is not an integer
var ErrInvalidOwnerID = errors.New("first token must be an integer owner id")

// ErrDuplicateOwner is an error when an owner id was already used this round
var ErrDuplicateOwner = errors.New("owner id already in use")

// ErrInvalidCard is an error when a card token matches no rank or no suit
var ErrInvalidCard = errors.New("invalid card token")

// ErrDuplicateCard is an error when a card was already played this round
var ErrDuplicateCard = errors.New("card already in play")

// ErrUnclassified is an error when a hand is ranked without a classifier
var ErrUnclassified = errors.New("hand has not been classified")
