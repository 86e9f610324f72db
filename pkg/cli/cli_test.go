package cli

import (
	"errors"
	"fmt"
	"testing"

	charmlog "github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"

	"github.com/AnonymousPurplePotato/geogen/pkg/input"
	"github.com/AnonymousPurplePotato/geogen/pkg/runner"
)

func TestExitCodes(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("bad input: %w", input.ErrParseFailure), ExitInputParse},
		{&input.ParseError{File: "x", Line: 1, Col: 1, Msg: "boom"}, ExitInputParse},
		{fmt.Errorf("%w: malformed", runner.ErrTemplateLoad), ExitTemplateParse},
		{fmt.Errorf("%w: degenerate", runner.ErrStartupAnalytic), ExitAnalyticFault},
		{errors.New("anything else"), ExitFailure},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.code, exitCode(tc.err), "error %v", tc.err)
	}
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, charmlog.DebugLevel, logLevel(true))

	t.Setenv("GEOGEN_LOG_LEVEL", "error")
	assert.Equal(t, charmlog.ErrorLevel, logLevel(false))
	t.Setenv("GEOGEN_LOG_LEVEL", "warn")
	assert.Equal(t, charmlog.WarnLevel, logLevel(false))
	t.Setenv("GEOGEN_LOG_LEVEL", "debug")
	assert.Equal(t, charmlog.DebugLevel, logLevel(false))
	t.Setenv("GEOGEN_LOG_LEVEL", "")
	assert.Equal(t, charmlog.InfoLevel, logLevel(false))
}
