package logsvc

import "fmt"

// fmtArg renders errors with their pkg/errors stack, when they carry one.
func fmtArg(arg interface{}) string {
	if id, ok := arg.(RequestID); ok {
		return "request_id=" + string(id)
	}
	return fmt.Sprintf("%+v", arg)
}
