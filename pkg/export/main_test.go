package export

import (
	"os"
	"testing"

	"github.com/vanderheijden86/vidaboard/pkg/debug"
)

func TestMain(m *testing.M) {
	// Keep timing lines out of test output even when VB_DEBUG is set.
	debug.SetEnabled(false)

	os.Exit(m.Run())
}
