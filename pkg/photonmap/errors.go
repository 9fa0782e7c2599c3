package photonmap

import "errors"

var (
	// ErrNoPhotons is returned by Balance when nothing was stored
	ErrNoPhotons = errors.New("photon map: no photons stored")
	// ErrAlreadyBalanced is returned by a second call to Balance
	ErrAlreadyBalanced = errors.New("photon map: already balanced")
	// ErrNotBalanced is returned by queries issued before Balance
	ErrNotBalanced = errors.New("photon map: not balanced")
)
