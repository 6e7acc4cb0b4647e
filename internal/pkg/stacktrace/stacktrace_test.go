package stacktrace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInternalPaths(t *testing.T) {
	stack := []byte(`goroutine 1 [running]:
runtime/debug.Stack()
	/usr/local/go/src/runtime/debug/stack.go:26 +0x5e
github.com/shandysiswandi/astra/internal/otp/usecase.(*Usecase).Issue(...)
	/app/internal/otp/usecase/issue.go:42 +0x1b
main.main()
	/app/main.go:10 +0x2`)

	assert.Equal(t, []string{"internal/otp/usecase/issue.go:42"}, InternalPaths(stack))
	assert.Empty(t, InternalPaths([]byte("nothing here")))
}
