package tests

import (
	"os"
	"testing"

	"github.com/jamespares/chinaprof/core"
	"github.com/jamespares/chinaprof/core/grammar"
)

func TestMain(m *testing.M) {
	validate, translator = core.NewValidator()
	grammar.InitValidators(validate, translator)

	os.Exit(m.Run())
}
