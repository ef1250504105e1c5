package badge

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateEmployeeID returns EMP + yyyymmddHHMMSS + a random 3 digit suffix.
func GenerateEmployeeID(now time.Time) string {
	return fmt.Sprintf("EMP%s%d", now.Format("20060102150405"), 100+rand.Intn(900))
}
