package services

import "time"

// Clock di-inject supaya expiry bisa dites deterministik.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock mengembalikan clock berbasis time.Now.
func SystemClock() Clock { return systemClock{} }
