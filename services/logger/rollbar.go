package logsvc

import (
	"io"
	"log"
	"os"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"

	"github.com/jamespares/chinaprof/core"
)

// RequestID tags a logged item with the id of the HTTP request it happened in.
type RequestID string

type RollbarLogger struct {
	component string
	std       *log.Logger
}

var _ core.Logger = (*RollbarLogger)(nil)

// NewRollbarLogger logs to stdout with a "<component> : " prefix and reports to Rollbar.
func NewRollbarLogger(component string, conf *core.Config) *RollbarLogger {
	return newRollbarLogger(component, os.Stdout, conf)
}

func newRollbarLogger(component string, out io.Writer, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Host)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)
	return &RollbarLogger{
		component: component,
		std:       log.New(out, component+" : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
	}
}

func (l RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

// expected fmt: msg | error, map[string]interface{}, RequestID
func (l RollbarLogger) prepare(msg string, args []interface{}) []interface{} {
	extras := map[string]interface{}{"component": l.component}
	newArgs := make([]interface{}, 0, len(args)+2)
	newArgs = append(newArgs, msg)
	for _, arg := range args {
		switch v := arg.(type) {
		case RequestID:
			extras["request_id"] = string(v)
		case map[string]interface{}:
			for key, val := range v {
				extras[key] = val
			}
		default:
			newArgs = append(newArgs, arg)
		}
	}
	return append(newArgs, extras)
}

func (l RollbarLogger) print(msg string, args []interface{}) {
	_ = l.std.Output(3, msg)
	for _, arg := range args {
		_ = l.std.Output(3, fmtArg(arg))
	}
}

func (l RollbarLogger) Debug(msg string, args ...interface{}) {
	rollbar.Debug(l.prepare(msg, args)...)
	l.print(msg, args)
}

func (l RollbarLogger) Info(msg string, args ...interface{}) {
	rollbar.Info(l.prepare(msg, args)...)
	l.print(msg, args)
}

func (l RollbarLogger) Warn(msg string, args ...interface{}) {
	rollbar.Warning(l.prepare(msg, args)...)
	l.print(msg, args)
}

func (l RollbarLogger) Error(msg string, args ...interface{}) {
	rollbar.Error(l.prepare(msg, args)...)
	l.print(msg, args)
}

func (l RollbarLogger) Fatal(msg string, args ...interface{}) {
	rollbar.Critical(l.prepare(msg, args)...)
	rollbar.Wait()
	l.print(msg, args)
	l.std.Fatal(msg)
}
