package stores

import (
	"testing"

	"go.uber.org/goleak"
)

// The concurrency tests spawn goroutines against shared stores; none
// of them may outlive their test.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
