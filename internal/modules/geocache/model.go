// README: Shared lookup cache for resolved stop locations.
package geocache

import (
	"time"
)

const DefaultTTL = 24 * time.Hour
