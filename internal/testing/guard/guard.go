// Package guard forces test mode for packages that import it blank.
package guard

import (
	"os"
	"sync"
)

var once sync.Once

func init() {
	once.Do(func() {
		if os.Getenv("CARGODESK_TEST_MODE") == "" {
			_ = os.Setenv("CARGODESK_TEST_MODE", "1")
		}
	})
}
