package ports

import "time"

// Clock supplies the instant a command happens at.
type Clock interface {
	Now() time.Time
}
